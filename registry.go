package sscene

import (
	"fmt"

	"cogentcore.org/core/base/ordmap"
)

// registry is an insertion-ordered name -> resource map that rejects
// duplicate names. Iteration order is the render order.
type registry[V any] struct {
	kind  string
	items *ordmap.Map[string, V]
}

func newRegistry[V any](kind string) *registry[V] {
	return &registry[V]{kind: kind, items: ordmap.New[string, V]()}
}

// checkFree fails with ErrDuplicateName when name is taken.
func (r *registry[V]) checkFree(name string) error {
	if _, ok := r.items.ValueByKeyTry(name); ok {
		return fmt.Errorf("%s %q: %w", r.kind, name, ErrDuplicateName)
	}
	return nil
}

func (r *registry[V]) add(name string, v V) error {
	if err := r.checkFree(name); err != nil {
		return err
	}
	r.items.Add(name, v)
	return nil
}

func (r *registry[V]) get(name string) (V, error) {
	v, ok := r.items.ValueByKeyTry(name)
	if !ok {
		return v, fmt.Errorf("%s %q: %w", r.kind, name, ErrNotFound)
	}
	return v, nil
}

func (r *registry[V]) remove(name string) (V, error) {
	v, err := r.get(name)
	if err != nil {
		return v, err
	}
	r.items.DeleteKey(name)
	return v, nil
}

func (r *registry[V]) len() int { return r.items.Len() }

func (r *registry[V]) names() []string { return r.items.Keys() }

func (r *registry[V]) each(fn func(name string, v V)) {
	for _, kv := range r.items.Order {
		fn(kv.Key, kv.Value)
	}
}

func (r *registry[V]) reset() { r.items.Reset() }
