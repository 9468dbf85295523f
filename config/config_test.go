package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Marker.ProgressEvery != 1000 {
		t.Fatalf("ProgressEvery = %d, want 1000", cfg.Marker.ProgressEvery)
	}
	if cfg.Viz.HighlightColor != "palegreen" {
		t.Fatalf("HighlightColor = %q, want palegreen", cfg.Viz.HighlightColor)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checker.yaml")
	contents := `
kind: checker
def:
  marker:
    workers: 4
    progressEvery: 50
  viz:
    highlightColor: lightblue
  dashboard:
    addr: ":9090"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Marker.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Marker.Workers)
	}
	if cfg.Marker.ProgressEvery != 50 {
		t.Errorf("ProgressEvery = %d, want 50", cfg.Marker.ProgressEvery)
	}
	if cfg.Viz.HighlightColor != "lightblue" {
		t.Errorf("HighlightColor = %q, want lightblue", cfg.Viz.HighlightColor)
	}
	if cfg.Dashboard.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Dashboard.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/checker.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
