package delivery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
	"github.com/heatwatch/landsat-uhi-cli/internal/properties"
)

// TestPeriodLabel covers the suffix convention and the fallback for
// files outside it.
func TestPeriodLabel(t *testing.T) {
	cases := map[string]string{
		"hot_may_2023" + properties.SceneSuffix: "hot_may_2023",
		"cold_dec-jan_2024_clipped_NGP.tif":     "cold_dec-jan_2024",
		"extra_scene.tif":                       "extra_scene",
		"UPPER.TIF":                             "UPPER",
	}
	for filename, expected := range cases {
		if got := PeriodLabel(filename); got != expected {
			t.Errorf("%s: expected %q, got %q", filename, expected, got)
		}
	}
}

// TestDiscoverScenes checks filtering and ordering of the input
// folder listing.
func TestDiscoverScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_clipped_NGP.tif", "a_clipped_NGP.tif", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to seed input dir: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.tif"), 0755); err != nil {
		t.Fatalf("failed to seed input dir: %v", err)
	}

	a := NewAnalysis(dir, t.TempDir(), 1)
	got := a.DiscoverScenes()

	want := []string{"a_clipped_NGP.tif", "b_clipped_NGP.tif"}
	if len(got) != len(want) {
		t.Fatalf("expected %d scenes, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scene %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestDiscoverScenesMissingDir treats an absent input folder as an
// empty scene set, not an error.
func TestDiscoverScenesMissingDir(t *testing.T) {
	a := NewAnalysis(filepath.Join(t.TempDir(), "does-not-exist"), t.TempDir(), 1)
	if got := a.DiscoverScenes(); len(got) != 0 {
		t.Errorf("expected no scenes, got %v", got)
	}
}

// TestRunEmptySceneSet verifies that a batch over zero scenes
// completes without error and writes no summary.
func TestRunEmptySceneSet(t *testing.T) {
	outputDir := t.TempDir()
	a := NewAnalysis(t.TempDir(), outputDir, 1)

	if err := a.Run(); err != nil {
		t.Fatalf("expected clean completion, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, properties.SummaryFile)); !os.IsNotExist(err) {
		t.Errorf("expected no summary file, stat err = %v", err)
	}
}

// TestBuildSummary keeps only succeeded periods, in the given order —
// a failing middle scene drops out without touching its neighbours.
func TestBuildSummary(t *testing.T) {
	results := map[string]analysis.SceneStats{
		"first": {Period: "first"},
		"third": {Period: "third"},
	}
	rows := BuildSummary(results, []string{"first", "second", "third"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Period != "first" || rows[1].Period != "third" {
		t.Errorf("unexpected row order: %q, %q", rows[0].Period, rows[1].Period)
	}
}

// TestNewAnalysisWorkerFloor ensures the worker count never drops
// below one.
func TestNewAnalysisWorkerFloor(t *testing.T) {
	if a := NewAnalysis("in", "out", 0); a.Workers != 1 {
		t.Errorf("expected floor of 1 worker, got %d", a.Workers)
	}
	if a := NewAnalysis("in", "out", 4); a.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", a.Workers)
	}
}
