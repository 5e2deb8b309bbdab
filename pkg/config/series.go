package config

import (
	"encoding/json"
	"fmt"
	"math"
)

// Series holds the magnitude series of a mark. In a document it may be
// written flat (one series) or nested (one array per series).
type Series [][]float64

// UnmarshalTOML implements toml.Unmarshaler.
func (s *Series) UnmarshalTOML(v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("y: expected an array, got %T", v)
	}
	out, err := decodeSeries(items)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// UnmarshalJSON accepts the same two shapes as the TOML form.
func (s *Series) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	out, err := decodeSeries(items)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

func decodeSeries(items []any) (Series, error) {
	if len(items) == 0 {
		return Series{}, nil
	}
	if _, nested := items[0].([]any); !nested {
		flat, err := decodeNumbers(items)
		if err != nil {
			return nil, err
		}
		return Series{flat}, nil
	}
	out := make(Series, 0, len(items))
	for i, item := range items {
		inner, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("y[%d]: cannot mix numbers and arrays", i)
		}
		values, err := decodeNumbers(inner)
		if err != nil {
			return nil, fmt.Errorf("y[%d]: %w", i, err)
		}
		out = append(out, values)
	}
	return out, nil
}

func decodeNumbers(items []any) ([]float64, error) {
	out := make([]float64, len(items))
	for i, item := range items {
		v, ok := number(item)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a number, got %T", i, item)
		}
		out[i] = v
	}
	return out, nil
}

// number converts the numeric types produced by the TOML and JSON decoders.
// JSON null and TOML nan both become NaN.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case nil:
		return math.NaN(), true
	}
	return 0, false
}

// Numbers is a flat array of numbers. Integers and floats may be mixed.
type Numbers []float64

// UnmarshalTOML implements toml.Unmarshaler.
func (n *Numbers) UnmarshalTOML(v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expected an array, got %T", v)
	}
	out, err := decodeNumbers(items)
	if err != nil {
		return err
	}
	*n = out
	return nil
}
