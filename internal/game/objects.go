package game

import (
	"context"
	"fmt"
	"slices"
)

const (
	// FarDistance is how far from the camera an object must be before its
	// updates are throttled.
	FarDistance = 40

	// FarUpdateDelay is the simulated time between updates of far objects.
	FarUpdateDelay = 1
)

// ObjectManager owns the list of live objects. Additions and removals
// requested during a frame are applied at the start of the next update.
type ObjectManager struct {
	objs     []Object
	toAdd    []Object
	toRemove []Object
	delays   map[Object]float32
}

func NewObjectManager() *ObjectManager {
	return &ObjectManager{delays: map[Object]float32{}}
}

func (m *ObjectManager) AddDelayed(o Object) {
	m.toAdd = append(m.toAdd, o)
}

func (m *ObjectManager) RemoveDelayed(o Object) {
	if !slices.Contains(m.toRemove, o) {
		m.toRemove = append(m.toRemove, o)
	}
}

// Objects returns the committed object list. Callers must not modify it.
func (m *ObjectManager) Objects() []Object {
	return m.objs
}

// Live calls fn for every object that will be live after pending changes
// apply, in list order followed by pending additions, until fn returns
// false.
func (m *ObjectManager) Live(fn func(Object) bool) {
	for _, o := range m.objs {
		if slices.Contains(m.toRemove, o) {
			continue
		}
		if !fn(o) {
			return
		}
	}
	for _, o := range m.toAdd {
		if slices.Contains(m.toRemove, o) {
			continue
		}
		if !fn(o) {
			return
		}
	}
}

// Contains reports whether o is live.
func (m *ObjectManager) Contains(o Object) bool {
	found := false
	m.Live(func(x Object) bool {
		found = x == o
		return !found
	})
	return found
}

// Update applies pending changes then updates every object. Objects far
// from the camera are updated once per FarUpdateDelay.
func (m *ObjectManager) Update(ctx context.Context, g *Game) error {
	m.commit()

	cam := g.Camera().Position()
	for _, o := range m.objs {
		if o.Position().Dst(cam) > FarDistance {
			d := m.delays[o] - g.TimeStep()
			if d > 0 {
				m.delays[o] = d
				continue
			}
			m.delays[o] = FarUpdateDelay
		} else {
			delete(m.delays, o)
		}

		if err := o.Update(ctx, g); err != nil {
			return fmt.Errorf("updating %T: %w", o, err)
		}
		if o.ShouldBeRemoved(g) {
			if s, ok := o.(*Ship); ok && s == g.Hero() {
				g.BeforeHeroDeath(ctx)
			}
			m.RemoveDelayed(o)
		}
	}
	return nil
}

// ResetDelays makes every far object update on the next frame.
func (m *ObjectManager) ResetDelays() {
	clear(m.delays)
}

// Dispose drops every object.
func (m *ObjectManager) Dispose() {
	m.objs = nil
	m.toAdd = nil
	m.toRemove = nil
	clear(m.delays)
}

func (m *ObjectManager) commit() {
	for _, o := range m.toRemove {
		if i := slices.Index(m.objs, o); i >= 0 {
			m.objs = slices.Delete(m.objs, i, i+1)
		}
		delete(m.delays, o)
	}
	for _, o := range m.toAdd {
		if !slices.Contains(m.toRemove, o) {
			m.objs = append(m.objs, o)
		}
	}
	m.toAdd = nil
	m.toRemove = nil
}
