package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

func TestMapShape(t *testing.T) {
	tests := []struct {
		name  string
		stats pipeline.Stats
		want  string
		not   string
	}{
		{"concepts only", pipeline.Stats{NodeCount: 1}, "1 concepts", "categories"},
		{"with categories", pipeline.Stats{NodeCount: 9, CategoryCount: 3}, "9 concepts · 3 categories", "sources"},
		{"research", pipeline.Stats{NodeCount: 12, CategoryCount: 4, ResearchSources: 5}, "4 categories · 5 sources", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapShape(tt.stats)
			if !strings.Contains(got, tt.want) {
				t.Errorf("mapShape() = %q, want %q", got, tt.want)
			}
			if tt.not != "" && strings.Contains(got, tt.not) {
				t.Errorf("mapShape() = %q, should omit %q", got, tt.not)
			}
		})
	}
}

func TestBackendLine(t *testing.T) {
	tests := []struct {
		name string
		res  pipeline.Result
		want string
	}{
		{"offline", pipeline.Result{BackendUsed: "mock"}, "offline"},
		{"offline research", pipeline.Result{BackendUsed: "mock (research)"}, "offline"},
		{"cached", pipeline.Result{BackendUsed: "gemini", CacheInfo: pipeline.CacheInfo{ExtractHit: true}}, "cached"},
		{"fresh", pipeline.Result{BackendUsed: "mistral", Stats: pipeline.Stats{ExtractTime: 1500 * time.Millisecond}}, "1.5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := backendLine(&tt.res)
			if !strings.Contains(got, tt.res.BackendUsed) || !strings.Contains(got, tt.want) {
				t.Errorf("backendLine() = %q, want backend and %q", got, tt.want)
			}
		})
	}
}
