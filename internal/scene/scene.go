package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kpab/nightwalk/internal/city"
)

// Surface abstracts the drawable target and its hosting container: pixel
// dimensions, the native pixel ratio, and a static background used when no
// GL context can be created.
type Surface interface {
	Size() (w, h int)
	PixelRatio() float64
	SetBackgroundGradient(top, bottom city.RGB)
}

// Frame carries everything the backend needs for one draw.
type Frame struct {
	View mgl32.Mat4
	Proj mgl32.Mat4

	// Chunks in pool order, nearest first, with current offsets.
	Chunks []*city.Chunk

	Sky        city.RGB
	FogColor   city.RGB
	FogDensity float32

	Ambient   float32
	MoonDir   mgl32.Vec3 // direction toward the light
	MoonColor city.RGB
	FillPos   mgl32.Vec3
	FillColor city.RGB

	Time float32 // scene seconds, drives beacon pulse
}

// Renderer is the GPU backend. Chunk geometry and facade textures are
// uploaded exactly once; per-frame draws only rebind and set uniforms.
type Renderer interface {
	UploadChunks(chunks []*city.Chunk) error
	DrawFrame(f *Frame)
	Resize(w, h int)
	SetPixelRatio(ratio float64)
	Close()
}

// RendererFactory builds the backend for a surface of the given pixel size.
// Injected so the fallback path is testable without a GL context.
type RendererFactory func(w, h int, pixelRatio float64) (Renderer, error)

const resizeDebounce = 0.15 // seconds

var moonDir = mgl32.Vec3{0.35, 0.8, 0.45}.Normalize()

// Scene is the render-loop controller: it owns the camera, light rig, fog,
// chunk pool, and the per-frame update/draw cycle. One Scene per surface;
// no package-level state, so independent scenes coexist.
type Scene struct {
	cfg         Config
	surface     Surface
	newRenderer RendererFactory

	theme   *city.Theme
	tier    DeviceTier
	pool    *city.Pool
	cam     Camera
	meter   *FPSMeter
	quality *QualityController
	rend    Renderer

	fallback bool
	visible  bool
	width    int
	height   int

	clock float64
	order []*city.Chunk

	resizeW, resizeH int
	resizeAt         float64 // clock time to apply pending resize; <0 = none
}

func New(cfg Config, surface Surface, factory RendererFactory) *Scene {
	cfg.Normalize()
	return &Scene{
		cfg:         cfg,
		surface:     surface,
		newRenderer: factory,
		theme:       city.ThemeByName(cfg.Theme),
		visible:     true,
		resizeAt:    -1,
	}
}

// Init classifies the device, builds the chunk pool, and brings up the
// renderer. A failed renderer is not an error: the surface gets a static
// gradient in the scene's palette and the scene stays inert.
func (s *Scene) Init() error {
	w, h := s.surface.Size()
	s.width, s.height = w, h
	s.tier = DetectTier(w, s.cfg.MobileWidthCutoff)

	ratio := s.surface.PixelRatio()
	if lim := s.cfg.ratioCap(s.tier); ratio > lim {
		ratio = lim
	}
	if ratio < s.cfg.MinPixelRatio {
		ratio = s.cfg.MinPixelRatio
	}

	s.pool = city.NewPool(s.cfg.Seed, s.cfg.ChunkCount, s.cfg.cityParams(s.tier))
	s.cam = Camera{
		Height:     s.cfg.CameraHeight,
		FOV:        s.cfg.FOV,
		Near:       s.cfg.Near,
		Far:        s.cfg.Far,
		SwayAmp:    s.cfg.SwayAmp,
		SwayPeriod: s.cfg.SwayPeriod,
	}
	s.quality = NewQualityController(
		s.cfg.TargetFPS, s.cfg.QualityInterval,
		s.cfg.QualityStep, s.cfg.MinPixelRatio, ratio)

	rend, err := s.newRenderer(w, h, ratio)
	if err != nil {
		s.fallback = true
		s.surface.SetBackgroundGradient(s.theme.Sky, s.theme.Horizon)
		return nil
	}
	s.rend = rend

	chunks := make([]*city.Chunk, 0, s.pool.Len())
	if err := rend.UploadChunks(s.pool.Ordered(chunks)); err != nil {
		return fmt.Errorf("upload chunks: %w", err)
	}
	return nil
}

// Fallback reports whether the scene is showing the static gradient.
func (s *Scene) Fallback() bool {
	return s.fallback
}

// Tier returns the detected device tier.
func (s *Scene) Tier() DeviceTier {
	return s.tier
}

// PixelRatio returns the quality controller's current ratio.
func (s *Scene) PixelRatio() float64 {
	if s.quality == nil {
		return 1
	}
	return s.quality.Ratio()
}

// SetVisible pauses or resumes the scene. While hidden, Step is a no-op and
// no state advances; resuming continues exactly where travel stopped.
func (s *Scene) SetVisible(v bool) {
	s.visible = v
}

// RequestResize records new container dimensions. The actual renderer resize
// is debounced into a later Step so drag-resizing doesn't thrash the GPU.
func (s *Scene) RequestResize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.resizeW, s.resizeH = w, h
	s.resizeAt = s.clock + resizeDebounce
}

// Step runs one update-then-draw cycle. now is wall-clock seconds, dt the
// frame delta. Exactly one Step is in flight at a time; the host only
// schedules the next frame after this one returns.
func (s *Scene) Step(now, dt float64) {
	s.clock = now
	if s.fallback || !s.visible || s.rend == nil {
		return
	}

	if s.resizeAt >= 0 && now >= s.resizeAt {
		s.width, s.height = s.resizeW, s.resizeH
		s.rend.Resize(s.width, s.height)

		// The native ratio may have changed with the move; re-clamp the
		// running ratio against the tier cap.
		native := s.surface.PixelRatio()
		if lim := s.cfg.ratioCap(s.tier); native > lim {
			native = lim
		}
		if ratio, changed := s.quality.ClampMax(native); changed {
			s.rend.SetPixelRatio(ratio)
		}
		s.resizeAt = -1
	}

	dist := s.cfg.CameraSpeed * dt
	s.cam.Advance(dist)
	s.pool.Advance(dist)

	// The meter anchors to the host clock on the first frame; window and
	// pool construction can eat host time before stepping begins, and a
	// fixed epoch would close a giant first window with one frame in it.
	if s.meter == nil {
		s.meter = NewFPSMeter(now, s.cfg.TargetFPS)
	}
	fps := s.meter.Tick(now)
	if ratio, changed := s.quality.Tick(fps); changed {
		s.rend.SetPixelRatio(ratio)
	}

	s.order = s.pool.Ordered(s.order[:0])
	aspect := float64(s.width) / float64(s.height)

	f := Frame{
		View:       s.cam.View(now),
		Proj:       s.cam.Projection(aspect),
		Chunks:     s.order,
		Sky:        s.theme.Sky,
		FogColor:   s.theme.Horizon,
		FogDensity: float32(s.cfg.FogDensity),
		Ambient:    float32(s.theme.Ambient),
		MoonDir:    moonDir,
		MoonColor:  s.theme.MoonColor,
		FillPos:    mgl32.Vec3{0, 10, float32(s.cam.Z - 50)},
		FillColor:  s.theme.FillColor,
		Time:       float32(now),
	}
	s.rend.DrawFrame(&f)
}

// Dispose releases the renderer and drops all scene state. Safe after a
// partial Init: every handle is nil-checked before release.
func (s *Scene) Dispose() {
	if s.rend != nil {
		s.rend.Close()
		s.rend = nil
	}
	s.pool = nil
	s.order = nil
}
