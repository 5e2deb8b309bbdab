package scale

import (
	"math"
	"slices"
)

// Ordinal is a discrete scale. Its domain is the union of all contributed
// values, in owner registration order then value order, without duplicates.
// Each domain value owns one band of equal width in the range.
type Ordinal struct {
	base
	domain []float64
}

var _ Scale = (*Ordinal)(nil)

func newOrdinal(id ID, name string, opts []Option) *Ordinal {
	return &Ordinal{base: newBase(id, name, opts)}
}

// Kind returns [KindOrdinal].
func (s *Ordinal) Kind() Kind { return KindOrdinal }

// ComputeAndSetDomain replaces owner's contribution.
func (s *Ordinal) ComputeAndSetDomain(values []float64, owner string) {
	s.domains.set(owner, values)
	s.merge()
}

// DelDomain withdraws owner's contribution.
func (s *Ordinal) DelDomain(owner string) {
	if s.domains.del(owner) {
		s.merge()
	}
}

func (s *Ordinal) merge() {
	s.domain = s.domain[:0]
	seen := make(map[float64]struct{})
	s.domains.each(func(values []float64) {
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			s.domain = append(s.domain, v)
		}
	})
}

// Domain returns a copy of the merged domain.
func (s *Ordinal) Domain() []float64 { return slices.Clone(s.domain) }

// Bandwidth is the pixel width of one band.
func (s *Ordinal) Bandwidth() float64 {
	if len(s.domain) == 0 {
		return 0
	}
	return (s.rng[1] - s.rng[0]) / float64(len(s.domain))
}

// Map returns the start of v's band. ok is false when v is not in the
// domain.
func (s *Ordinal) Map(v float64) (px float64, ok bool) {
	i := slices.Index(s.domain, v)
	if i < 0 {
		return 0, false
	}
	return s.rng[0] + float64(i)*s.Bandwidth(), true
}
