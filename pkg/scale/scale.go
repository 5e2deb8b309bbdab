package scale

import (
	"math"
	"slices"
)

// ID identifies a scale within a [Registry]. The zero value is never issued.
type ID uint32

// NoID is the invalid scale identifier.
const NoID ID = 0

// Kind names a scale implementation.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindOrdinal Kind = "ordinal"
)

// Scale is the interface the layout core needs from a scale.
type Scale interface {
	ID() ID
	Name() string
	Kind() Kind

	// ComputeAndSetDomain replaces the contribution of owner with values
	// and recomputes the merged domain.
	ComputeAndSetDomain(values []float64, owner string)

	// DelDomain withdraws the contribution of owner. Unknown owners are
	// ignored.
	DelDomain(owner string)

	// SetRange sets the pixel interval the scale maps onto.
	SetRange(r [2]float64)
	Range() [2]float64

	// AllowPadding reports whether marks on this scale respect negotiated
	// padding. Scales that disallow it always use the unpadded range.
	AllowPadding() bool

	// Owners lists the owners that currently contribute to the domain.
	Owners() []string
}

// Option configures a scale at creation.
type Option func(*base)

// WithAllowPadding sets whether the scale honours negotiated padding.
// Scales allow padding by default.
func WithAllowPadding(allow bool) Option {
	return func(b *base) { b.allowPadding = allow }
}

// WithRange sets the initial pixel range.
func WithRange(r [2]float64) Option {
	return func(b *base) { b.rng = r }
}

// base holds what every scale kind shares.
type base struct {
	id           ID
	name         string
	allowPadding bool
	rng          [2]float64
	domains      contributions
}

func newBase(id ID, name string, opts []Option) base {
	b := base{
		id:           id,
		name:         name,
		allowPadding: true,
		rng:          [2]float64{0, 1},
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) ID() ID                { return b.id }
func (b *base) Name() string          { return b.name }
func (b *base) AllowPadding() bool    { return b.allowPadding }
func (b *base) SetRange(r [2]float64) { b.rng = r }
func (b *base) Range() [2]float64     { return b.rng }
func (b *base) Owners() []string      { return slices.Clone(b.domains.owners) }

// contributions stores per-owner domain values in first-registration order
// so merged domains are deterministic.
type contributions struct {
	owners []string
	values map[string][]float64
}

func (c *contributions) set(owner string, values []float64) {
	if c.values == nil {
		c.values = make(map[string][]float64)
	}
	if _, ok := c.values[owner]; !ok {
		c.owners = append(c.owners, owner)
	}
	c.values[owner] = slices.Clone(values)
}

func (c *contributions) del(owner string) bool {
	if _, ok := c.values[owner]; !ok {
		return false
	}
	delete(c.values, owner)
	c.owners = slices.DeleteFunc(c.owners, func(o string) bool { return o == owner })
	return true
}

func (c *contributions) each(fn func(values []float64)) {
	for _, o := range c.owners {
		fn(c.values[o])
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
