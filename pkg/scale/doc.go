// Package scale provides owner-keyed scales and a registry that issues them
// stable identifiers.
//
// A scale maps data values onto a pixel range. Several marks may write to
// the same scale; every contribution is stored under an owner key (for a
// bars mark "<mark>_x", "<mark>_y" or "<mark>_color") so one owner can
// replace or withdraw its contribution without touching the others. The
// authoritative domain is the merge of all current contributions.
//
// Scales are identified by [ID] values issued by a [Registry]. IDs are
// indexes into the registry's arena, so other components (for example the
// padding negotiator) can keep per-scale records in plain slices instead of
// maps keyed by object identity.
//
//	reg := scale.NewRegistry()
//	x := reg.NewOrdinal("x")
//	y := reg.NewLinear("y")
//	y.ComputeAndSetDomain([]float64{-3, 6, 0}, "bars1_y")
//	y.SetRange([2]float64{400, 0})
//	px := y.Map(0)
package scale
