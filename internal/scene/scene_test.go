package scene

import (
	"errors"
	"testing"

	"github.com/kpab/nightwalk/internal/city"
)

type fakeSurface struct {
	w, h    int
	ratio   float64
	gradTop city.RGB
	gradBot city.RGB
	gradSet bool
}

func (s *fakeSurface) Size() (int, int)    { return s.w, s.h }
func (s *fakeSurface) PixelRatio() float64 { return s.ratio }
func (s *fakeSurface) SetBackgroundGradient(top, bottom city.RGB) {
	s.gradTop, s.gradBot, s.gradSet = top, bottom, true
}

type stubRenderer struct {
	uploaded int
	draws    int
	resizes  []int
	ratios   []float64
	closed   bool
}

func (r *stubRenderer) UploadChunks(chunks []*city.Chunk) error {
	r.uploaded = len(chunks)
	return nil
}
func (r *stubRenderer) DrawFrame(f *Frame)          { r.draws++ }
func (r *stubRenderer) Resize(w, h int)             { r.resizes = append(r.resizes, w) }
func (r *stubRenderer) SetPixelRatio(ratio float64) { r.ratios = append(r.ratios, ratio) }
func (r *stubRenderer) Close()                      { r.closed = true }

func stubFactory(r *stubRenderer) RendererFactory {
	return func(w, h int, ratio float64) (Renderer, error) { return r, nil }
}

func testConfig() Config {
	cfg := Defaults()
	cfg.Seed = 42
	cfg.BuildingsPerChunk = 4
	return cfg
}

func TestFallbackWhenRendererUnavailable(t *testing.T) {
	surf := &fakeSurface{w: 1280, h: 720, ratio: 2}
	s := New(testConfig(), surf, func(w, h int, ratio float64) (Renderer, error) {
		return nil, errors.New("no gl context")
	})

	if err := s.Init(); err != nil {
		t.Fatalf("Init must not fail on renderer error, got %v", err)
	}
	if !s.Fallback() {
		t.Fatal("scene not in fallback mode")
	}
	if !surf.gradSet {
		t.Fatal("no background gradient set on fallback")
	}
	if (surf.gradTop == city.RGB{}) && (surf.gradBot == city.RGB{}) {
		t.Fatal("fallback gradient is blank")
	}

	// Stepping and disposing an inert scene must be safe.
	s.Step(0.016, 0.016)
	s.Dispose()
}

func TestDisposeWithoutInit(t *testing.T) {
	s := New(testConfig(), &fakeSurface{w: 800, h: 600, ratio: 1}, stubFactory(&stubRenderer{}))
	s.Dispose() // no Init: nothing to release, must not panic
}

func TestInitUploadsAllChunks(t *testing.T) {
	rend := &stubRenderer{}
	cfg := testConfig()
	cfg.ChunkCount = 3
	s := New(cfg, &fakeSurface{w: 1280, h: 720, ratio: 1}, stubFactory(rend))

	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if rend.uploaded != 3 {
		t.Fatalf("%d chunks uploaded, want 3", rend.uploaded)
	}
}

func TestStepDrawsOnlyWhileVisible(t *testing.T) {
	rend := &stubRenderer{}
	s := New(testConfig(), &fakeSurface{w: 1280, h: 720, ratio: 1}, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	s.Step(0.016, 0.016)
	s.SetVisible(false)
	s.Step(0.032, 0.016)
	s.Step(0.048, 0.016)
	s.SetVisible(true)
	s.Step(0.064, 0.016)

	if rend.draws != 2 {
		t.Fatalf("%d draws, want 2 (hidden steps must not draw)", rend.draws)
	}
}

func TestQualityDropPropagatesToRenderer(t *testing.T) {
	rend := &stubRenderer{}
	cfg := testConfig()
	cfg.QualityInterval = 2
	cfg.DesktopRatioCap = 2
	s := New(cfg, &fakeSurface{w: 1280, h: 720, ratio: 2}, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Frames a full second apart: measured fps ~1, far below target.
	now := 0.0
	for i := 0; i < 10; i++ {
		now += 1.0
		s.Step(now, 1.0)
	}

	if len(rend.ratios) == 0 {
		t.Fatal("low fps never reduced the pixel ratio")
	}
	prev := 2.0
	for _, r := range rend.ratios {
		if r >= prev {
			t.Fatalf("pixel ratio not strictly decreasing: %v", rend.ratios)
		}
		if r < 1.0 {
			t.Fatalf("pixel ratio %v below 1.0", r)
		}
		prev = r
	}
}

func TestLateFirstFrameKeepsQuality(t *testing.T) {
	rend := &stubRenderer{}
	cfg := testConfig()
	cfg.QualityInterval = 30
	s := New(cfg, &fakeSurface{w: 1280, h: 720, ratio: 2}, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Window and pool construction delay the first frame well past the host
	// clock's epoch; a steady 60 fps afterwards must never downgrade.
	now := 2.0
	for i := 0; i < 180; i++ {
		s.Step(now, 1.0/60.0)
		now += 1.0 / 60.0
	}
	if len(rend.ratios) != 0 {
		t.Fatalf("steady 60fps triggered downgrade: %v", rend.ratios)
	}
}

func TestResizeDebounced(t *testing.T) {
	rend := &stubRenderer{}
	s := New(testConfig(), &fakeSurface{w: 1280, h: 720, ratio: 1}, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	s.Step(0.0, 0.016)
	s.RequestResize(640, 480)
	s.RequestResize(800, 600)
	s.Step(0.05, 0.016) // within debounce window
	if len(rend.resizes) != 0 {
		t.Fatalf("resize applied before debounce elapsed: %v", rend.resizes)
	}
	s.Step(0.30, 0.016) // past debounce
	if len(rend.resizes) != 1 || rend.resizes[0] != 800 {
		t.Fatalf("resizes %v, want one apply of latest width 800", rend.resizes)
	}
}

func TestResizeReclampsPixelRatio(t *testing.T) {
	rend := &stubRenderer{}
	cfg := testConfig()
	cfg.DesktopRatioCap = 2
	surf := &fakeSurface{w: 1280, h: 720, ratio: 2}
	s := New(cfg, surf, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Dragged to a 1x monitor: the native ratio drops below the running
	// ratio and must be re-clamped when the debounced resize applies.
	surf.ratio = 1
	s.Step(0.0, 0.016)
	s.RequestResize(1024, 768)
	s.Step(0.30, 0.016)

	if len(rend.ratios) != 1 || rend.ratios[0] != 1.0 {
		t.Fatalf("ratios %v, want one re-clamp to 1.0", rend.ratios)
	}
}

func TestDisposeClosesRenderer(t *testing.T) {
	rend := &stubRenderer{}
	s := New(testConfig(), &fakeSurface{w: 1280, h: 720, ratio: 1}, stubFactory(rend))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.Dispose()
	if !rend.closed {
		t.Fatal("renderer not closed on dispose")
	}
	s.Dispose() // idempotent
}

func TestPixelRatioCappedPerTier(t *testing.T) {
	var gotRatio float64
	cfg := testConfig()
	cfg.DesktopRatioCap = 1.5
	s := New(cfg, &fakeSurface{w: 1920, h: 1080, ratio: 3}, func(w, h int, ratio float64) (Renderer, error) {
		gotRatio = ratio
		return &stubRenderer{}, nil
	})
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if gotRatio != 1.5 {
		t.Fatalf("initial ratio %v, want capped 1.5", gotRatio)
	}
}
