package scene

import (
	"math"
	"testing"
)

func TestFPSMeterWindowMath(t *testing.T) {
	m := NewFPSMeter(0, 60)

	// 30 frames over exactly one second.
	var fps float64
	for i := 1; i <= 30; i++ {
		fps = m.Tick(float64(i) / 30.0)
	}
	if math.Abs(fps-30) > 0.5 {
		t.Fatalf("estimate %v, want ~30", fps)
	}
}

func TestFPSMeterStaleBetweenWindows(t *testing.T) {
	m := NewFPSMeter(0, 60)

	// Initial estimate holds until the first window closes.
	if got := m.Tick(0.5); got != 60 {
		t.Fatalf("mid-window estimate %v, want initial 60", got)
	}

	m.Tick(1.0) // closes first window: 2 frames / 1s
	if got := m.Estimate(); math.Abs(got-2) > 0.01 {
		t.Fatalf("estimate %v after window, want 2", got)
	}

	// Stale but defined between boundaries.
	if got := m.Tick(1.2); math.Abs(got-2) > 0.01 {
		t.Fatalf("estimate %v between windows, want stale 2", got)
	}
}

func TestFPSMeterLongFrame(t *testing.T) {
	m := NewFPSMeter(0, 60)

	// One frame taking 2.5 seconds: estimate 1/2.5 = 0.4.
	got := m.Tick(2.5)
	if math.Abs(got-0.4) > 0.01 {
		t.Fatalf("estimate %v, want 0.4", got)
	}
}

func TestDetectTierWidthCutoff(t *testing.T) {
	if tier := DetectTier(640, 900); tier != TierMobile {
		t.Fatalf("640px wide classified %v, want mobile", tier)
	}
	if tier := DetectTier(1920, 900); tier != TierDesktop {
		t.Fatalf("1920px wide classified %v, want desktop", tier)
	}
	// Unknown width degrades to desktop settings.
	if tier := DetectTier(0, 900); tier != TierDesktop {
		t.Fatalf("unknown width classified %v, want desktop", tier)
	}
}
