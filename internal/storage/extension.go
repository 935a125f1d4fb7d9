package storage

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ExtensionState carries opaque per-module data alongside a spec. Each module
// owns one key and decides the shape of its value.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(k string, v any) error {
	if *e == nil {
		*e = ExtensionState{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", k, err)
	}

	(*e)[k] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Update loads key into out (leaving out untouched when absent), applies fn
// and stores the result back under key.
func (e *ExtensionState) Update(key string, out any, fn func() error) error {
	if _, err := e.Get(key, out); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return fmt.Errorf("update extension %q: %w", key, err)
	}
	return e.Set(key, out)
}

// Delete removes the extension key, if present.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Keys returns the extension keys in sorted order.
func (e ExtensionState) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
