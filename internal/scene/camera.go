package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera flies forward along -Z at constant speed with a gentle lateral sway.
// Chunks never move toward the camera; the camera travels and the pool
// teleports trailing chunks ahead of it.
type Camera struct {
	Z      float64 // longitudinal position, decreasing with travel
	Height float64
	FOV    float64 // degrees
	Near   float64
	Far    float64

	SwayAmp    float64
	SwayPeriod float64
}

// Advance moves the camera forward by dist world units.
func (c *Camera) Advance(dist float64) {
	c.Z -= dist
}

// swayX returns the lateral offset at scene time t.
func (c *Camera) swayX(t float64) float64 {
	if c.SwayAmp == 0 || c.SwayPeriod == 0 {
		return 0
	}
	return c.SwayAmp * math.Sin(2*math.Pi*t/c.SwayPeriod)
}

// View returns the view matrix at scene time t. The look target sits ahead
// and slightly below eye level so tall facades dominate the frame.
func (c *Camera) View(t float64) mgl32.Mat4 {
	x := c.swayX(t)
	eye := mgl32.Vec3{float32(x), float32(c.Height), float32(c.Z)}
	target := mgl32.Vec3{float32(x * 0.4), float32(c.Height * 0.8), float32(c.Z - 40)}
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(
		mgl32.DegToRad(float32(c.FOV)),
		float32(aspect),
		float32(c.Near),
		float32(c.Far),
	)
}
