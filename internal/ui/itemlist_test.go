package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-testutil"
)

type defStore map[string]*item.Def

func (m defStore) Save(id string, v *item.Def) error { m[id] = v; return nil }
func (m defStore) Get(id string) *item.Def           { return m[id] }
func (m defStore) GetAll() map[string]*item.Def      { return m }

// newContainer fills a container with groups distinct item groups. Groups
// are added in code order, so the newest ends up first.
func newContainer(t *testing.T, groups int) *item.Container {
	t.Helper()

	defs := defStore{}
	var codes []string
	for i := range groups {
		code := fmt.Sprintf("item%02d", i)
		defs[code] = &item.Def{Name: code, KindStr: "other"}
		codes = append(codes, code)
	}

	items, err := item.NewCatalog(defs).Parse(strings.Join(codes, " "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := item.NewContainer()
	for _, it := range items {
		if err := c.Add(it); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return c
}

func TestItemList_PageClamp(t *testing.T) {
	tests := map[string]struct {
		groups  int
		setPage int
		moves   []int
		expPage int
	}{
		"empty container": {
			setPage: 3,
			expPage: 0,
		},
		"past last page": {
			groups:  7,
			setPage: 5,
			expPage: 1,
		},
		"exact multiple drops the empty page": {
			groups:  6,
			setPage: 1,
			expPage: 0,
		},
		"next page stops at last": {
			groups:  12,
			setPage: 1,
			moves:   []int{1, 1},
			expPage: 1,
		},
		"prev page stops at zero": {
			groups:  13,
			setPage: 0,
			moves:   []int{-1},
			expPage: 0,
		},
		"next then prev": {
			groups:  13,
			moves:   []int{1, 1, -1},
			expPage: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewItemList(newContainer(t, tt.groups))
			l.SetPage(tt.setPage)
			for _, m := range tt.moves {
				if m > 0 {
					l.NextPage()
				} else {
					l.PrevPage()
				}
			}

			testutil.AssertEqual(t, "page", l.Page(), tt.expPage)
		})
	}
}

func TestItemList_Rows(t *testing.T) {
	tests := map[string]struct {
		groups   int
		page     int
		expCodes []string
		expPages int
	}{
		"empty": {
			expPages: 1,
		},
		"partial first page": {
			groups:   2,
			expCodes: []string{"item01", "item00"},
			expPages: 1,
		},
		"second page": {
			groups:   8,
			page:     1,
			expCodes: []string{"item01", "item00"},
			expPages: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewItemList(newContainer(t, tt.groups))
			l.SetPage(tt.page)

			var codes []string
			for _, r := range l.Rows() {
				codes = append(codes, r.Code)
			}
			testutil.AssertEqual(t, "codes", codes, tt.expCodes)
			testutil.AssertEqual(t, "pages", l.PageCount(), tt.expPages)
		})
	}
}

func TestItemList_RowsClampAfterShrink(t *testing.T) {
	c := newContainer(t, 7)
	l := NewItemList(c)
	l.SetPage(1)

	c.Remove(c.Group(6)[0])

	testutil.AssertEqual(t, "rows", len(l.Rows()), 6)
	testutil.AssertEqual(t, "page", l.Page(), 0)
}

func TestItemList_Select(t *testing.T) {
	tests := map[string]struct {
		row     int
		expOk   bool
		expCode string
	}{
		"first row": {
			row:     0,
			expOk:   true,
			expCode: "item02",
		},
		"last row": {
			row:     2,
			expOk:   true,
			expCode: "item00",
		},
		"past end": {
			row: 3,
		},
		"negative": {
			row: -1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newContainer(t, 3)
			l := NewItemList(c)

			it, ok := l.Select(tt.row)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			if !tt.expOk {
				testutil.AssertEqual(t, "selected", l.Selected() == nil, true)
				return
			}

			testutil.AssertEqual(t, "code", it.Code(), tt.expCode)
			testutil.AssertEqual(t, "seen", c.IsNew(tt.row), false)

			var selected []string
			for _, r := range l.Rows() {
				if r.Selected {
					selected = append(selected, r.Code)
				}
			}
			testutil.AssertEqual(t, "selected rows", selected, []string{tt.expCode})
		})
	}
}
