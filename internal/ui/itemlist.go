package ui

import "github.com/pixil98/go-sol/internal/item"

// ItemsPerPage is how many item groups one page of an ItemList shows.
const ItemsPerPage = 6

// Row is one group of identical items as shown in a list.
type Row struct {
	Code     string
	Name     string
	Amount   int
	New      bool
	Selected bool
}

// ItemList pages through the groups of a container.
type ItemList struct {
	container *item.Container
	page      int
	selected  *item.Item
}

func NewItemList(c *item.Container) *ItemList {
	l := &ItemList{}
	l.SetContainer(c)
	return l
}

// SetContainer switches the list to c and clears the selection.
func (l *ItemList) SetContainer(c *item.Container) {
	l.container = c
	l.selected = nil
	l.clampPage()
}

func (l *ItemList) Page() int {
	return l.page
}

// SetPage jumps to page p, clamped to the pages that exist.
func (l *ItemList) SetPage(p int) {
	l.page = p
	l.clampPage()
}

func (l *ItemList) NextPage() {
	l.page++
	l.clampPage()
}

func (l *ItemList) PrevPage() {
	l.page--
	l.clampPage()
}

// PageCount is the number of pages, at least one.
func (l *ItemList) PageCount() int {
	n := l.groupCount()
	if n == 0 {
		return 1
	}
	return (n + ItemsPerPage - 1) / ItemsPerPage
}

func (l *ItemList) clampPage() {
	n := l.groupCount()
	if l.page > n/ItemsPerPage {
		l.page = n / ItemsPerPage
	} else if n%ItemsPerPage == 0 && l.page == n/ItemsPerPage {
		l.page--
	}
	if l.page < 0 {
		l.page = 0
	}
}

func (l *ItemList) groupCount() int {
	if l.container == nil {
		return 0
	}
	return l.container.GroupCount()
}

// Rows returns the groups on the current page. The page is clamped first
// since the container may have shrunk since the last call.
func (l *ItemList) Rows() []Row {
	l.clampPage()

	var rows []Row
	start := l.page * ItemsPerPage
	for i := start; i < l.groupCount() && i < start+ItemsPerPage; i++ {
		g := l.container.Group(i)
		rows = append(rows, Row{
			Code:     g[0].Code(),
			Name:     g[0].Name(),
			Amount:   len(g),
			New:      l.container.IsNew(i),
			Selected: l.selected != nil && l.selected.IsSame(g[0]),
		})
	}
	return rows
}

// Select selects the group shown at row of the current page and marks it
// seen. It returns the first item of that group.
func (l *ItemList) Select(row int) (*item.Item, bool) {
	l.clampPage()

	i := l.page*ItemsPerPage + row
	if row < 0 || row >= ItemsPerPage || i >= l.groupCount() {
		return nil, false
	}

	l.selected = l.container.Group(i)[0]
	l.container.Seen(i)
	return l.selected, true
}

func (l *ItemList) Selected() *item.Item {
	return l.selected
}
