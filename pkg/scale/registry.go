package scale

import (
	"fmt"

	"fortio.org/safecast"
)

// Registry issues scales with stable IDs. The ID of a scale is its index in
// the registry's arena; index 0 is reserved as the invalid sentinel.
type Registry struct {
	scales []Scale
	byName map[string]ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scales: []Scale{nil},
		byName: make(map[string]ID),
	}
}

// NewLinear creates and registers a linear scale.
func (r *Registry) NewLinear(name string, opts ...Option) *Linear {
	s := newLinear(r.next(), name, opts)
	r.add(s)
	return s
}

// NewOrdinal creates and registers an ordinal scale.
func (r *Registry) NewOrdinal(name string, opts ...Option) *Ordinal {
	s := newOrdinal(r.next(), name, opts)
	r.add(s)
	return s
}

// New creates a scale of the given kind. Unknown kinds yield nil.
func (r *Registry) New(kind Kind, name string, opts ...Option) Scale {
	switch kind {
	case KindLinear:
		return r.NewLinear(name, opts...)
	case KindOrdinal:
		return r.NewOrdinal(name, opts...)
	}
	return nil
}

func (r *Registry) next() ID {
	n, err := safecast.Conv[uint32](len(r.scales))
	if err != nil {
		panic(fmt.Errorf("scale registry overflow: %w", err))
	}
	return ID(n)
}

func (r *Registry) add(s Scale) {
	r.scales = append(r.scales, s)
	if s.Name() != "" {
		r.byName[s.Name()] = s.ID()
	}
}

// Lookup returns the scale with the given ID.
func (r *Registry) Lookup(id ID) (Scale, bool) {
	if id == NoID || int(id) >= len(r.scales) {
		return nil, false
	}
	return r.scales[id], true
}

// ByName returns the most recently registered scale with name.
func (r *Registry) ByName(name string) (Scale, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.Lookup(id)
}

// All returns the registered scales in ID order.
func (r *Registry) All() []Scale {
	out := make([]Scale, 0, len(r.scales)-1)
	return append(out, r.scales[1:]...)
}

// Len returns the number of registered scales.
func (r *Registry) Len() int { return len(r.scales) - 1 }
