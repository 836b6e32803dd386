package city

// Chunk is one fixed-length segment of the corridor. Contents are immutable
// after construction; only Offset changes, when the pool recycles the chunk
// from trailing to leading position.
//
// Chunk-local space runs z in (-Length, 0], so a chunk at Offset o spans
// world z in (o-Length, o].
type Chunk struct {
	Slot   int
	Offset float64
	Length float64

	Buildings []*Building
	Ground    Mesh
}

// Ground planes extend slightly past the chunk span so floating-point camera
// positions never expose a seam between neighbours.
const groundOverlap = 0.01

// Road stripe layout, in world units.
const (
	stripeLen = 3.0
	stripeGap = 5.0
	stripeW   = 0.3
)

// BuildChunk populates one chunk for the given slot. The slot's RNG stream is
// derived from the world seed, so a seed reproduces the exact corridor.
func BuildChunk(seed uint64, slot int, p Params) *Chunk {
	rng := NewRand(hash2D(seed, slot, 1))

	c := &Chunk{
		Slot:   slot,
		Offset: -float64(slot) * p.ChunkLength,
		Length: p.ChunkLength,
	}

	c.buildGround(p)

	minX := p.RoadWidth*0.5 + p.LaneMargin
	for i := 0; i < p.Buildings; i++ {
		w := rng.RangeF(p.WidthMin, p.WidthMax)
		d := rng.RangeF(p.DepthMin, p.DepthMax)
		h := rng.RangeF(p.HeightMin, p.HeightMax)
		if rng.Chance(p.LandmarkChance) {
			h *= p.LandmarkScale
		}

		side := 1.0
		if rng.Chance(0.5) {
			side = -1.0
		}
		x := side * rng.RangeF(minX+w*0.5, p.Spread)
		z := -rng.RangeF(0, p.ChunkLength)

		c.Buildings = append(c.Buildings, GenerateBuilding(rng, &p, x, z, w, d, h))
	}
	return c
}

func (c *Chunk) buildGround(p Params) {
	theme := p.Theme
	over := float32(p.ChunkLength * groundOverlap)
	z0 := float32(-p.ChunkLength) - over
	z1 := over
	ext := float32(p.Spread + p.WidthMax)

	c.Ground.AppendQuadXZ(-ext, z0, ext, z1, 0, theme.Ground, 0)

	halfRoad := float32(p.RoadWidth * 0.5)
	c.Ground.AppendQuadXZ(-halfRoad, z0, halfRoad, z1, 0.02, theme.Road, 0)

	// Dashed centre line.
	for z := 0.0; z < p.ChunkLength; z += stripeLen + stripeGap {
		s0 := float32(-z)
		s1 := s0 - float32(stripeLen)
		c.Ground.AppendQuadXZ(-stripeW/2, s1, stripeW/2, s0, 0.04, theme.Stripe, 0.3)
	}
}

// Span returns the chunk's current world-space extent (far, near].
func (c *Chunk) Span() (far, near float64) {
	return c.Offset - c.Length, c.Offset
}
