package scene

import "runtime"

// DeviceTier is a coarse runtime classification driving quality defaults.
type DeviceTier int

const (
	TierDesktop DeviceTier = iota
	TierMobile
)

func (t DeviceTier) String() string {
	if t == TierMobile {
		return "mobile"
	}
	return "desktop"
}

// DetectTier classifies the device once at scene start. Heuristic, not
// authoritative: a wrong answer only shifts quality defaults.
func DetectTier(viewportWidth, cutoff int) DeviceTier {
	if runtime.GOOS == "android" || runtime.GOOS == "ios" {
		return TierMobile
	}
	if viewportWidth > 0 && viewportWidth < cutoff {
		return TierMobile
	}
	return TierDesktop
}

// FPSMeter estimates achieved frame rate over a rolling wall-clock window of
// about one second. Between window boundaries the estimate is stale, never
// undefined.
type FPSMeter struct {
	windowStart float64 // seconds
	frames      int
	estimate    float64
}

const fpsWindow = 1.0 // seconds

// NewFPSMeter starts a meter at the given clock with an optimistic initial
// estimate so the quality controller doesn't downgrade before the first
// full window.
func NewFPSMeter(now, initial float64) *FPSMeter {
	return &FPSMeter{windowStart: now, estimate: initial}
}

// Tick records one frame and returns the current estimate.
func (m *FPSMeter) Tick(now float64) float64 {
	m.frames++
	elapsed := now - m.windowStart
	if elapsed >= fpsWindow {
		elapsedMs := elapsed * 1000
		m.estimate = float64(m.frames) * 1000 / elapsedMs
		m.frames = 0
		m.windowStart = now
	}
	return m.estimate
}

// Estimate returns the last computed frame rate.
func (m *FPSMeter) Estimate() float64 {
	return m.estimate
}
