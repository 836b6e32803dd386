package scene

// QualityController trades render resolution for frame rate. Every interval
// frames it compares the FPS estimate against 80% of the target and steps the
// pixel ratio down by a fixed decrement, floored at the minimum. Reductions
// are permanent: no recovery, no oscillation.
type QualityController struct {
	target   float64
	interval int
	step     float64
	min      float64

	frames int
	ratio  float64
}

const lowFPSFraction = 0.8

func NewQualityController(targetFPS float64, interval int, step, min, start float64) *QualityController {
	if start < min {
		start = min
	}
	return &QualityController{
		target:   targetFPS,
		interval: interval,
		step:     step,
		min:      min,
		ratio:    start,
	}
}

// Tick counts one frame. At each interval boundary it samples fps and may
// lower the ratio. Returns the current ratio and whether it just changed.
func (q *QualityController) Tick(fps float64) (float64, bool) {
	q.frames++
	if q.frames < q.interval {
		return q.ratio, false
	}
	q.frames = 0

	if fps >= q.target*lowFPSFraction {
		return q.ratio, false
	}
	next := q.ratio - q.step
	if next < q.min {
		next = q.min
	}
	if next == q.ratio {
		return q.ratio, false
	}
	q.ratio = next
	return q.ratio, true
}

// ClampMax lowers the ratio if it exceeds max, never below the floor and
// never upward. Applied when the surface's native ratio changes, e.g. the
// window moves to a lower-density monitor.
func (q *QualityController) ClampMax(max float64) (float64, bool) {
	if max < q.min {
		max = q.min
	}
	if max >= q.ratio {
		return q.ratio, false
	}
	q.ratio = max
	return q.ratio, true
}

// Ratio returns the current pixel ratio.
func (q *QualityController) Ratio() float64 {
	return q.ratio
}
