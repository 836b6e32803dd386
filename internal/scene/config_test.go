package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	want := Defaults()
	if cfg.ChunkCount != want.ChunkCount || cfg.ChunkLength != want.ChunkLength {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	data := "chunk_count: 5\nchunk_length: 500\ntheme: neon\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChunkCount != 5 || cfg.ChunkLength != 500 || cfg.Theme != "neon" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep defaults.
	if cfg.TargetFPS != Defaults().TargetFPS {
		t.Fatalf("unrelated field lost default: %+v", cfg)
	}
}

func TestNormalizeSwapsReversedRanges(t *testing.T) {
	cfg := Defaults()
	cfg.HeightMin = 80
	cfg.HeightMax = 10
	cfg.Normalize()
	if cfg.HeightMin != 10 || cfg.HeightMax != 80 {
		t.Fatalf("reversed range not swapped: min=%v max=%v", cfg.HeightMin, cfg.HeightMax)
	}
}

func TestNormalizeRepairsDegenerates(t *testing.T) {
	cfg := Defaults()
	cfg.ChunkCount = 0
	cfg.ChunkLength = -5
	cfg.MinPixelRatio = 0.1
	cfg.Far = cfg.Near - 1
	cfg.Normalize()

	if cfg.ChunkCount < 1 {
		t.Fatalf("chunk count %d", cfg.ChunkCount)
	}
	if cfg.ChunkLength <= 0 {
		t.Fatalf("chunk length %v", cfg.ChunkLength)
	}
	if cfg.MinPixelRatio < 1 {
		t.Fatalf("min pixel ratio %v", cfg.MinPixelRatio)
	}
	if cfg.Far <= cfg.Near {
		t.Fatalf("far %v not beyond near %v", cfg.Far, cfg.Near)
	}
}

func TestCityParamsMobileReduction(t *testing.T) {
	cfg := Defaults()
	cfg.BuildingsPerChunk = 20
	cfg.MobileBuildFactor = 0.5

	if got := cfg.cityParams(TierDesktop).Buildings; got != 20 {
		t.Fatalf("desktop buildings %d, want 20", got)
	}
	if got := cfg.cityParams(TierMobile).Buildings; got != 10 {
		t.Fatalf("mobile buildings %d, want 10", got)
	}
}
