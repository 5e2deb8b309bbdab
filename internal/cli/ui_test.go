package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/sandutsar/bqplot/pkg/pipeline"
)

func TestResultSummary(t *testing.T) {
	tests := []struct {
		name string
		res  pipeline.Result
		want []string
		skip string
	}{
		{
			name: "fresh",
			res: pipeline.Result{
				Stats: pipeline.Stats{Marks: 2, Segments: 6, BuildTime: 1500 * time.Microsecond},
			},
			want: []string{"2 marks", "6 segments", "layout miss", "artifact miss", "1.5ms"},
		},
		{
			name: "cached",
			res: pipeline.Result{
				Stats:     pipeline.Stats{Marks: 1, Segments: 1, BuildTime: time.Second},
				CacheInfo: pipeline.CacheInfo{LayoutHit: true, ArtifactHit: true},
			},
			want: []string{"1 mark", "1 segment", "layout hit", "artifact hit"},
			skip: "1s",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultSummary(&tt.res)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("resultSummary() = %q, missing %q", got, w)
				}
			}
			if tt.skip != "" && strings.Contains(got, tt.skip) {
				t.Errorf("resultSummary() = %q, should omit build time for cached layouts", got)
			}
		})
	}
}
