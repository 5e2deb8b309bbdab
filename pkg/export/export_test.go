package export

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sandutsar/bqplot/pkg/errors"
	"github.com/sandutsar/bqplot/pkg/figure"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Chart:     "revenue",
		Container: figure.Size{Width: 800, Height: 500},
		Layout: figure.Layout{
			Size:       figure.Size{Width: 800, Height: 500},
			Margin:     figure.UniformMargin(60),
			PlotWidth:  680,
			PlotHeight: 380,
		},
		PaddingY: 0.025,
		Scales: []Scale{
			{Name: "x", Kind: "ordinal", Domain: []float64{1, 2}, Range: [2]float64{4, 676}, AllowPadding: true, PaddingH: Number(4)},
			{Name: "y", Kind: "linear", Domain: []float64{-3, 6}, Range: [2]float64{370.5, 9.5}, AllowPadding: true},
		},
		Marks: []Mark{{
			Name:         "sales",
			Type:         "stacked",
			Orientation:  "vertical",
			ColorScope:   "group",
			OpacityScope: "group",
			XScale:       "x",
			YScale:       "y",
			Groups: []Group{
				{Key: Number(1), PosExtent: 5, Segments: []Segment{{Low: 0, High: 5, Magnitude: 5, Raw: Number(5), Fill: "steelblue", Opacity: 1}}},
				{Key: Number(2), NegExtent: -3, Segments: []Segment{{Low: -3, High: 0, Magnitude: -3, Raw: Number(math.NaN()), ColorIndex: 1, Fill: "steelblue", Opacity: 1}}},
			},
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleSnapshot()
	for f := range ValidFormats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(want, f)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			got, err := Unmarshal(data, f)
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Unmarshal(Marshal()) = %+v, want %+v", got, want)
			}
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := Marshal(sampleSnapshot(), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	layout := doc["layout"].(map[string]any)
	if layout["plot_width"] != 680.0 {
		t.Errorf("layout.plot_width = %v, want 680", layout["plot_width"])
	}
	x := doc["scales"].([]any)[0].(map[string]any)
	if x["padding_horizontal"] != 4.0 {
		t.Errorf("scales[0].padding_horizontal = %v, want 4", x["padding_horizontal"])
	}
	if _, ok := x["padding_vertical"]; ok {
		t.Error("unused role padding should be omitted")
	}
	if strings.Contains(string(data), "NaN") {
		t.Error("NaN leaked into JSON")
	}
}

func TestNumber(t *testing.T) {
	if Number(math.NaN()) != nil {
		t.Error("Number(NaN) should be nil")
	}
	if p := Number(2); p == nil || *p != 2 {
		t.Errorf("Number(2) = %v", p)
	}
}

func TestInvalidFormat(t *testing.T) {
	if _, err := Marshal(sampleSnapshot(), "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Marshal(yaml) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
	if _, err := Unmarshal([]byte("{"), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal(bad json) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.json", FormatJSON},
		{"out.BSON", FormatBSON},
		{"out.msgpack", FormatMsgpack},
		{"out.mpk", FormatMsgpack},
		{"out", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	want := sampleSnapshot()
	for _, name := range []string{"s.json", "s.bson", "s.mpk"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(want, path); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if got.Chart != want.Chart || len(got.Marks) != 1 {
			t.Errorf("ReadFile(%s) = %+v", name, got)
		}
	}

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestWriteJSONNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSnapshot(), FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestSnapshotLookups(t *testing.T) {
	s := sampleSnapshot()
	if _, ok := s.FindScale("y"); !ok {
		t.Error("FindScale(y) not found")
	}
	if _, ok := s.FindScale("z"); ok {
		t.Error("FindScale(z) found")
	}
	m, ok := s.FindMark("sales")
	if !ok {
		t.Fatal("FindMark(sales) not found")
	}
	if got := m.SegmentCount(); got != 2 {
		t.Errorf("SegmentCount() = %d, want 2", got)
	}
}
