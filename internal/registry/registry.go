// Package registry holds the engine-wide services that used to live in
// static fields. A Registry is built once at startup, handed to modules
// and subsystems explicitly, and closed at shutdown.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pixil98/go-errors"
)

type Registry struct {
	mu      sync.RWMutex
	values  map[reflect.Type]any
	closers []closer
	closed  bool
}

type closer struct {
	name string
	fn   func() error
}

func New() *Registry {
	return &Registry{values: map[reflect.Type]any{}}
}

// Put stores v under its static type T, replacing any previous value.
func Put[T any](r *Registry, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[reflect.TypeFor[T]()] = v
}

// Get returns the value stored under type T.
func Get[T any](r *Registry) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// OnClose registers fn to run when the registry is closed. Closers run in
// reverse registration order.
func (r *Registry) OnClose(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closers = append(r.closers, closer{name: name, fn: fn})
}

// Close runs every closer once and drops all values.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	closers := r.closers
	r.closers = nil
	r.values = map[reflect.Type]any{}
	r.mu.Unlock()

	el := errors.NewErrorList()
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].fn(); err != nil {
			el.Add(fmt.Errorf("closing %s: %w", closers[i].name, err))
		}
	}
	return el.Err()
}
