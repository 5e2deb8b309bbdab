package bars

// Number is any Go numeric type a series may be supplied as.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Floats converts a numeric slice of any element type to float64, so plain
// and fixed-width arrays are handled the same way.
func Floats[T Number](v []T) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i, e := range v {
		out[i] = float64(e)
	}
	return out
}

// Series normalizes one or more value sequences into the nested form the
// stack engine consumes. A single flat sequence becomes one series.
func Series[T Number](series ...[]T) [][]float64 {
	out := make([][]float64, 0, len(series))
	for _, s := range series {
		out = append(out, Floats(s))
	}
	return out
}
