// Package entity is a small entity-component store with an event system.
// Components are keyed by name; receivers are registered explicitly for an
// event name and the set of components an entity must carry to receive it.
package entity

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	goerrors "github.com/pixil98/go-errors"
)

var ErrEntityNotFound = errors.New("entity not found")

// AnyEvent registers a receiver for every event name.
const AnyEvent = "*"

// Ref identifies an entity.
type Ref string

// Component is a piece of data attached to an entity.
type Component interface {
	ComponentName() string
}

// Event is delivered to receivers.
type Event interface {
	EventName() string
}

// ReceiverFunc handles an event sent to an entity.
type ReceiverFunc func(ctx context.Context, ev Event, ref Ref) error

type receiver struct {
	event    string
	required []string
	fn       ReceiverFunc
}

// Manager owns every entity and its components. It is not safe for
// concurrent use; the game goroutine is its only caller.
type Manager struct {
	entities   []Ref
	components map[string]map[Ref]Component
	receivers  []receiver
}

func NewManager() *Manager {
	return &Manager{
		components: map[string]map[Ref]Component{},
	}
}

// CreateEntity creates an entity carrying the given components.
func (m *Manager) CreateEntity(components ...Component) Ref {
	ref := Ref(uuid.New().String())
	m.entities = append(m.entities, ref)
	for _, c := range components {
		m.set(ref, c)
	}
	return ref
}

// Exists reports whether ref is a live entity.
func (m *Manager) Exists(ref Ref) bool {
	return slices.Contains(m.entities, ref)
}

// AddComponent attaches c to ref, replacing a component of the same name.
func (m *Manager) AddComponent(ref Ref, c Component) error {
	if !m.Exists(ref) {
		return fmt.Errorf("adding %s to %s: %w", c.ComponentName(), ref, ErrEntityNotFound)
	}
	m.set(ref, c)
	return nil
}

func (m *Manager) set(ref Ref, c Component) {
	store, ok := m.components[c.ComponentName()]
	if !ok {
		store = map[Ref]Component{}
		m.components[c.ComponentName()] = store
	}
	store[ref] = c
}

// Component returns the named component of ref.
func (m *Manager) Component(ref Ref, name string) (Component, bool) {
	c, ok := m.components[name][ref]
	return c, ok
}

// RemoveComponent detaches the named component from ref.
func (m *Manager) RemoveComponent(ref Ref, name string) {
	delete(m.components[name], ref)
}

// Destroy removes ref and all of its components.
func (m *Manager) Destroy(ref Ref) {
	i := slices.Index(m.entities, ref)
	if i < 0 {
		return
	}
	m.entities = slices.Delete(m.entities, i, i+1)
	for _, store := range m.components {
		delete(store, ref)
	}
}

// Iterate returns, in creation order, every entity holding all named components.
func (m *Manager) Iterate(names ...string) []Ref {
	var refs []Ref
	for _, ref := range m.entities {
		if m.hasAll(ref, names) {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (m *Manager) hasAll(ref Ref, names []string) bool {
	for _, n := range names {
		if _, ok := m.components[n][ref]; !ok {
			return false
		}
	}
	return true
}

// Register adds a receiver for event, limited to entities holding every
// component in required.
func (m *Manager) Register(event string, required []string, fn ReceiverFunc) {
	m.receivers = append(m.receivers, receiver{event: event, required: required, fn: fn})
}

// SendEvent delivers ev to every entity holding all named components.
func (m *Manager) SendEvent(ctx context.Context, ev Event, components ...string) error {
	el := goerrors.NewErrorList()
	for _, ref := range m.Iterate(components...) {
		el.Add(m.SendEventTo(ctx, ev, ref))
	}
	return el.Err()
}

// SendEventTo delivers ev to a single entity. Every matching receiver runs;
// their errors are collected.
func (m *Manager) SendEventTo(ctx context.Context, ev Event, ref Ref) error {
	if !m.Exists(ref) {
		return fmt.Errorf("sending %s to %s: %w", ev.EventName(), ref, ErrEntityNotFound)
	}

	el := goerrors.NewErrorList()
	for _, r := range m.receivers {
		if (r.event != AnyEvent && r.event != ev.EventName()) || !m.hasAll(ref, r.required) {
			continue
		}
		if err := r.fn(ctx, ev, ref); err != nil {
			el.Add(fmt.Errorf("%s receiver: %w", ev.EventName(), err))
		}
	}
	return el.Err()
}
