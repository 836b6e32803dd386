// Command nightwalk flies a camera down an endless procedural night city.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kpab/nightwalk/internal/ambience"
	"github.com/kpab/nightwalk/internal/city"
	"github.com/kpab/nightwalk/internal/render"
	"github.com/kpab/nightwalk/internal/scene"
)

const humVolume = 0.5

func main() {
	runtime.LockOSThread()

	var (
		configPath = flag.String("config", "", "path to a scene yaml file")
		seedFlag   = flag.Uint64("seed", 0, "world seed (0 = env or clock)")
		width      = flag.Int("width", 1280, "window width")
		height     = flag.Int("height", 720, "window height")
		themeFlag  = flag.String("theme", "", "palette override: dusk, midnight or neon")
		mute       = flag.Bool("mute", false, "disable the ambient hum")
	)
	flag.Parse()

	cfg, err := scene.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = resolveSeed(*seedFlag, cfg.Seed)
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	window, err := initWindow(*width, *height)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if !*mute {
		hum, err := ambience.Start(cfg.Seed, humVolume)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		} else {
			defer hum.Close()
		}
	}

	surf := &glfwSurface{window: window}
	sc := scene.New(cfg, surf, func(w, h int, pixelRatio float64) (scene.Renderer, error) {
		r, err := render.New(w, h, pixelRatio)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
	if err := sc.Init(); err != nil {
		panic(fmt.Errorf("scene init: %w", err))
	}
	defer sc.Dispose()
	if sc.Fallback() {
		fmt.Fprintln(os.Stderr, "renderer unavailable, showing static backdrop")
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		sc.RequestResize(w, h)
	})
	window.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		sc.SetVisible(!iconified)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		sc.Step(now, dt)
		window.SwapBuffers()
	}
}

func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(width, height, "nightwalk", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// resolveSeed prefers the flag, then the environment, then the config file,
// then the clock.
func resolveSeed(flagSeed, cfgSeed uint64) uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if s := os.Getenv("NIGHTWALK_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v
		}
	}
	if cfgSeed != 0 {
		return cfgSeed
	}
	return uint64(time.Now().UnixNano())
}

// glfwSurface adapts the window to the scene's surface contract.
type glfwSurface struct {
	window *glfw.Window
}

func (s *glfwSurface) Size() (int, int) {
	return s.window.GetFramebufferSize()
}

func (s *glfwSurface) PixelRatio() float64 {
	sx, _ := s.window.GetContentScale()
	return float64(sx)
}

// SetBackgroundGradient is only called on the no-renderer path, where no GL
// calls are possible; the palette is reported so the failure is not silent.
func (s *glfwSurface) SetBackgroundGradient(top, bottom city.RGB) {
	fmt.Fprintf(os.Stderr, "static backdrop: sky #%02x%02x%02x horizon #%02x%02x%02x\n",
		top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
}
