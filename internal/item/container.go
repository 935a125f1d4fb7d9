package item

import (
	"errors"
	"slices"
)

const (
	// ItemGroupsPerPage is how many groups one inventory page shows.
	ItemGroupsPerPage = 8
	MaxInventoryPages = 4
	MaxGroupSize      = 30
)

var (
	ErrNilItem       = errors.New("item is nil")
	ErrItemOwned     = errors.New("item already belongs to a container")
	ErrContainerFull = errors.New("container is full")
)

type group struct {
	items []*Item
	isNew bool
}

// Container is an inventory: an ordered list of groups, each holding items
// of the same code. New groups go to the front and stay flagged as new
// until seen.
type Container struct {
	groups []*group
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) find(it *Item) (int, int) {
	for gi, g := range c.groups {
		if ii := slices.Index(g.items, it); ii >= 0 {
			return gi, ii
		}
	}
	return -1, -1
}

func (c *Container) groupFor(it *Item) *group {
	for _, g := range c.groups {
		if g.items[0].IsSame(it) {
			return g
		}
	}
	return nil
}

// CanAdd reports whether an item like example would fit.
func (c *Container) CanAdd(example *Item) bool {
	if example == nil {
		return false
	}
	if g := c.groupFor(example); g != nil {
		return len(g.items) < MaxGroupSize
	}
	return len(c.groups) < MaxInventoryPages*ItemGroupsPerPage
}

// Add takes ownership of it.
func (c *Container) Add(it *Item) error {
	if it == nil {
		return ErrNilItem
	}
	if it.owner != nil {
		return ErrItemOwned
	}
	if !c.CanAdd(it) {
		return ErrContainerFull
	}

	if g := c.groupFor(it); g != nil {
		g.items = append(g.items, it)
	} else {
		c.groups = slices.Insert(c.groups, 0, &group{items: []*Item{it}, isNew: true})
	}
	it.owner = c
	return nil
}

// Remove releases it. Empty groups are dropped.
func (c *Container) Remove(it *Item) bool {
	gi, ii := c.find(it)
	if gi < 0 {
		return false
	}

	g := c.groups[gi]
	g.items = slices.Delete(g.items, ii, ii+1)
	if len(g.items) == 0 {
		c.groups = slices.Delete(c.groups, gi, gi+1)
	}
	it.owner = nil
	return true
}

func (c *Container) Contains(it *Item) bool {
	return it != nil && it.owner == c
}

func (c *Container) GroupCount() int {
	return len(c.groups)
}

// Size is the total number of items.
func (c *Container) Size() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.items)
	}
	return n
}

// Group returns a copy of the items in group i.
func (c *Container) Group(i int) []*Item {
	if i < 0 || i >= len(c.groups) {
		return nil
	}
	return slices.Clone(c.groups[i].items)
}

// Groups returns a copy of every group in order.
func (c *Container) Groups() [][]*Item {
	out := make([][]*Item, len(c.groups))
	for i, g := range c.groups {
		out[i] = slices.Clone(g.items)
	}
	return out
}

// Items returns every item, group by group.
func (c *Container) Items() []*Item {
	var out []*Item
	for _, g := range c.groups {
		out = append(out, g.items...)
	}
	return out
}

// Count returns how many items share code.
func (c *Container) Count(code string) int {
	for _, g := range c.groups {
		if g.items[0].Code() == code {
			return len(g.items)
		}
	}
	return 0
}

// TryConsume removes and returns the last item with code, if any.
func (c *Container) TryConsume(code string) *Item {
	for _, g := range c.groups {
		if g.items[0].Code() == code {
			it := g.items[len(g.items)-1]
			c.Remove(it)
			return it
		}
	}
	return nil
}

func (c *Container) IsNew(i int) bool {
	return i >= 0 && i < len(c.groups) && c.groups[i].isNew
}

func (c *Container) HasNew() bool {
	return slices.ContainsFunc(c.groups, func(g *group) bool { return g.isNew })
}

func (c *Container) Seen(i int) {
	if i >= 0 && i < len(c.groups) {
		c.groups[i].isNew = false
	}
}

func (c *Container) SeenAll() {
	for _, g := range c.groups {
		g.isNew = false
	}
}

// Clear releases every item.
func (c *Container) Clear() {
	for _, g := range c.groups {
		for _, it := range g.items {
			it.owner = nil
		}
	}
	c.groups = nil
}
