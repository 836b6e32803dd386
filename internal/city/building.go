package city

// StyleTag identifies one construction rule from the closed style set.
type StyleTag uint8

const (
	StyleSimpleBox StyleTag = iota
	StyleSetback
	StyleTwinTower
	StyleTapered
	StyleLShaped
	styleCount
)

func (s StyleTag) String() string {
	switch s {
	case StyleSimpleBox:
		return "simple-box"
	case StyleSetback:
		return "setback"
	case StyleTwinTower:
		return "twin-tower"
	case StyleTapered:
		return "tapered"
	case StyleLShaped:
		return "l-shaped"
	}
	return "unknown"
}

var styleWeights = []int{35, 20, 15, 15, 15}

// Block is one massing block in building-local coordinates: X/Z offset of the
// footprint centre, Y the base height.
type Block struct {
	X, Y, Z float64
	W, H, D float64
}

// Building is a composite of massing blocks plus rooftop clutter, with one
// independently generated window texture shared by its blocks. Created once
// per chunk slot; never mutated afterwards.
type Building struct {
	Style  StyleTag
	X, Z   float64 // footprint origin in chunk-local space
	Height float64
	Blocks []Block

	Facade     *WindowTexture
	FacadeMesh Mesh // textured walls, baked into chunk-local space
	SolidMesh  Mesh // roofs are part of FacadeMesh; this holds clutter/beacon

	HasBeacon bool
}

// GenerateBuilding produces one building at chunk-local (x, z) with footprint
// w×d and total height h. Style selection and all proportions draw from rng.
func GenerateBuilding(rng *Rand, p *Params, x, z, w, d, h float64) *Building {
	style := StyleTag(rng.WeightedPick(styleWeights))
	blocks := styleBlocks(rng, style, w, d, h)

	b := &Building{
		Style:  style,
		X:      x,
		Z:      z,
		Height: h,
		Blocks: blocks,
	}

	theme := p.Theme
	b.Facade = GenerateWindowTexture(rng, w/h, theme)

	wall := theme.Structure[rng.Intn(len(theme.Structure))]
	jit := rng.Range(-6, 6)
	roof := wall.Add(jit-10, jit-10, jit-8)

	for _, bl := range blocks {
		b.FacadeMesh.AppendFacadeBox(
			float32(x+bl.X), float32(bl.Y), float32(z+bl.Z),
			float32(bl.W), float32(bl.H), float32(bl.D), roof)
	}

	b.addRoofClutter(rng, p, roof)
	return b
}

// styleBlocks applies one decomposition rule. Every rule keeps the composite
// inside the w×d footprint and tops out at exactly h.
func styleBlocks(rng *Rand, style StyleTag, w, d, h float64) []Block {
	switch style {
	case StyleSetback:
		split := rng.RangeF(0.50, 0.68)
		upperW := w * rng.RangeF(0.58, 0.75)
		upperD := d * rng.RangeF(0.58, 0.75)
		return []Block{
			{W: w, H: h * split, D: d},
			{Y: h * split, W: upperW, H: h * (1 - split), D: upperD},
		}

	case StyleTwinTower:
		towerW := w * 0.40
		towerD := d * rng.RangeF(0.70, 0.90)
		off := w*0.5 - towerW*0.5
		second := h * rng.RangeF(0.60, 0.85)
		link := h * rng.RangeF(0.12, 0.22)
		return []Block{
			{X: -off, W: towerW, H: h, D: towerD},
			{X: off, W: towerW, H: second, D: towerD},
			{W: w - towerW, H: link, D: towerD * 0.8},
		}

	case StyleTapered:
		h0 := h * rng.RangeF(0.45, 0.55)
		h1 := h * rng.RangeF(0.25, 0.32)
		return []Block{
			{W: w, H: h0, D: d},
			{Y: h0, W: w * 0.75, H: h1, D: d * 0.75},
			{Y: h0 + h1, W: w * 0.5, H: h - h0 - h1, D: d * 0.5},
		}

	case StyleLShaped:
		armW := w * rng.RangeF(0.50, 0.62)
		armH := h * rng.RangeF(0.55, 0.90)
		return []Block{
			{Z: -d * 0.20, W: w, H: h, D: d * 0.60},
			{X: w*0.5 - armW*0.5, Z: d * 0.25, W: armW, H: armH, D: d * 0.50},
		}

	default: // StyleSimpleBox
		return []Block{{W: w, H: h, D: d}}
	}
}

// addRoofClutter places mechanical boxes, an antenna, and a blinking beacon
// on the tallest block's roof.
func (b *Building) addRoofClutter(rng *Rand, p *Params, roof RGB) {
	top := b.Blocks[0]
	for _, bl := range b.Blocks[1:] {
		if bl.Y+bl.H > top.Y+top.H {
			top = bl
		}
	}
	roofY := top.Y + top.H
	cx := b.X + top.X
	cz := b.Z + top.Z
	dark := roof.Add(-12, -12, -10)

	if rng.Chance(0.6) {
		for i, n := 0, rng.Range(1, 3); i < n; i++ {
			bw := top.W * rng.RangeF(0.10, 0.22)
			bd := top.D * rng.RangeF(0.10, 0.22)
			bh := rng.RangeF(0.6, 1.8)
			ox := rng.RangeF(-0.3, 0.3) * top.W
			oz := rng.RangeF(-0.3, 0.3) * top.D
			b.SolidMesh.AppendBox(
				float32(cx+ox), float32(roofY), float32(cz+oz),
				float32(bw), float32(bh), float32(bd), dark, 0)
		}
	}

	if rng.Chance(0.35) {
		ah := rng.RangeF(2.0, 5.0)
		b.SolidMesh.AppendBox(
			float32(cx), float32(roofY), float32(cz),
			0.25, float32(ah), 0.25, dark, 0)
		roofY += ah
	}

	if b.Height > p.BeaconMinHeight {
		b.HasBeacon = true
		b.SolidMesh.AppendBox(
			float32(cx), float32(roofY), float32(cz),
			0.5, 0.5, 0.5, p.Theme.Beacon, 1)
	}
}
