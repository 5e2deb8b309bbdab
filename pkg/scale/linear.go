package scale

import "math"

// Linear is a continuous scale whose domain is the [min, max] interval over
// every owner's contribution. Non-finite values are ignored.
type Linear struct {
	base
	min, max float64
}

var _ Scale = (*Linear)(nil)

func newLinear(id ID, name string, opts []Option) *Linear {
	return &Linear{base: newBase(id, name, opts), min: math.NaN(), max: math.NaN()}
}

// Kind returns [KindLinear].
func (s *Linear) Kind() Kind { return KindLinear }

// ComputeAndSetDomain replaces owner's contribution.
func (s *Linear) ComputeAndSetDomain(values []float64, owner string) {
	s.domains.set(owner, values)
	s.merge()
}

// DelDomain withdraws owner's contribution.
func (s *Linear) DelDomain(owner string) {
	if s.domains.del(owner) {
		s.merge()
	}
}

func (s *Linear) merge() {
	s.min, s.max = math.NaN(), math.NaN()
	s.domains.each(func(values []float64) {
		for _, v := range values {
			if !finite(v) {
				continue
			}
			if math.IsNaN(s.min) || v < s.min {
				s.min = v
			}
			if math.IsNaN(s.max) || v > s.max {
				s.max = v
			}
		}
	})
}

// Domain returns the merged interval and whether any finite value exists.
func (s *Linear) Domain() (lo, hi float64, ok bool) {
	if math.IsNaN(s.min) {
		return 0, 0, false
	}
	return s.min, s.max, true
}

// Map projects v onto the pixel range. A degenerate or empty domain maps
// everything to the middle of the range.
func (s *Linear) Map(v float64) float64 {
	lo, hi, ok := s.Domain()
	if !ok || hi == lo {
		return (s.rng[0] + s.rng[1]) / 2
	}
	t := (v - lo) / (hi - lo)
	return s.rng[0] + t*(s.rng[1]-s.rng[0])
}
