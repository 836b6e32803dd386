// Package ambience synthesizes the looping low-frequency city bed: a pair of
// detuned drones under a slow swell, with filtered noise standing in for
// distant traffic. Everything is generated from the scene seed; there are no
// audio assets.
package ambience

import (
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"github.com/kpab/nightwalk/internal/city"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float little endian
	frameBytes   = channelCount * 4
)

// Hum owns the audio context and the single looping player.
type Hum struct {
	mu     sync.Mutex
	player oto.Player
	closed bool
}

// Start opens the audio device and begins the hum. The player is created on
// a goroutine once the device signals ready, so Start never blocks the
// render loop.
func Start(seed uint64, volume float64) (*Hum, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}

	h := &Hum{}
	go func() {
		<-ready
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return
		}
		p := ctx.NewPlayer(newHumReader(seed))
		p.SetVolume(clampF(volume, 0, 1))
		p.Play()
		h.player = p
	}()
	return h, nil
}

// Close stops playback. Safe if the device never became ready.
func (h *Hum) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.player != nil {
		h.player.Close()
		h.player = nil
	}
}

// humReader streams the hum endlessly; it never returns io.EOF.
type humReader struct {
	rng    *city.Rand
	frame  float64
	noiseL float64
	noiseR float64
}

func newHumReader(seed uint64) *humReader {
	return &humReader{rng: city.NewRand(seed ^ 0xA0D10)}
}

const (
	droneLow    = 48.0  // Hz
	droneHigh   = 96.5  // slightly off the octave so the beat never locks
	swellRate   = 0.07  // Hz
	noiseCutoff = 0.015 // one-pole lowpass coefficient
)

func (r *humReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	for i := 0; i < frames; i++ {
		t := r.frame / sampleRate
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*swellRate*t)
		drone := 0.10*math.Sin(2*math.Pi*droneLow*t) +
			0.05*math.Sin(2*math.Pi*droneHigh*t)

		// Independent noise per channel widens the stereo image.
		r.noiseL += noiseCutoff * ((r.rng.Float64()*2 - 1) - r.noiseL)
		r.noiseR += noiseCutoff * ((r.rng.Float64()*2 - 1) - r.noiseR)

		putStereoF32LR(p, i,
			swell*(drone+0.06*r.noiseL),
			swell*(drone+0.06*r.noiseR))
		r.frame++
	}
	return frames * frameBytes, nil
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	l := math.Float32bits(float32(left))
	r := math.Float32bits(float32(right))
	buf[i*8] = byte(l)
	buf[i*8+1] = byte(l >> 8)
	buf[i*8+2] = byte(l >> 16)
	buf[i*8+3] = byte(l >> 24)
	buf[i*8+4] = byte(r)
	buf[i*8+5] = byte(r >> 8)
	buf[i*8+6] = byte(r >> 16)
	buf[i*8+7] = byte(r >> 24)
}

func clampF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
