package city

// WindowStyle selects one of the closed set of facade grid presets.
type WindowStyle uint8

const (
	WindowOffice  WindowStyle = iota // square cells, visible mullions
	WindowSlit                       // narrow vertical slits
	WindowCurtain                    // dense curtain-wall grid
)

// ColorMood tags which window palette a facade draws from.
type ColorMood uint8

const (
	MoodWarm ColorMood = iota
	MoodCool
	MoodMixed
)

// Per-floor lighting probabilities. An "active" floor has most windows lit;
// inactive floors keep a residual chance of a single late worker.
const (
	floorActiveChance = 0.40
	windowLitChance   = 0.65
	residualLitChance = 0.05
)

// Raster size limits. Height is fixed and width follows the facade aspect
// ratio, clamped so extreme aspect ratios stay cheap and terminate.
const (
	texBaseHeight = 128
	texMinDim     = 8
	texMaxDim     = 256
)

// WindowTexture is a generated facade raster. The image doubles as its own
// emissive mask: lit windows are bright, walls are near-black.
type WindowTexture struct {
	W, H  int
	Pix   []uint8 // RGBA8
	Style WindowStyle
	Mood  ColorMood
}

type windowPreset struct {
	cellW, cellH int
	gap          int
	weight       int
}

var windowPresets = [...]windowPreset{
	WindowOffice:  {cellW: 6, cellH: 6, gap: 3, weight: 50},
	WindowSlit:    {cellW: 3, cellH: 7, gap: 4, weight: 25},
	WindowCurtain: {cellW: 5, cellH: 5, gap: 1, weight: 25},
}

// GenerateWindowTexture builds one facade raster for the given width/height
// aspect ratio. Each call is independent; textures are never shared or cached
// across buildings.
func GenerateWindowTexture(rng *Rand, aspect float64, theme *Theme) *WindowTexture {
	if aspect <= 0 || aspect != aspect { // also guards NaN
		aspect = 1
	}

	h := float64(texBaseHeight)
	w := aspect * h
	if w > texMaxDim {
		h *= texMaxDim / w
		w = texMaxDim
	}
	width := clamp(int(w+0.5), texMinDim, texMaxDim)
	height := clamp(int(h+0.5), texMinDim, texMaxDim)

	weights := make([]int, len(windowPresets))
	for i, p := range windowPresets {
		weights[i] = p.weight
	}
	style := WindowStyle(rng.WeightedPick(weights))
	preset := windowPresets[style]

	mood := pickMood(rng)

	t := &WindowTexture{
		W:     width,
		H:     height,
		Pix:   make([]uint8, width*height*4),
		Style: style,
		Mood:  mood,
	}
	t.fill(theme.Facade)

	stepX := preset.cellW + preset.gap
	stepY := preset.cellH + preset.gap
	// A raster narrower than one cell still gets a single column of panes;
	// fillRect clips to the raster edges.
	cols := width / stepX
	if cols < 1 {
		cols = 1
	}
	rows := height / stepY
	if rows < 1 {
		rows = 1
	}

	for row := 0; row < rows; row++ {
		active := rng.Chance(floorActiveChance)
		for col := 0; col < cols; col++ {
			lit := false
			if active {
				lit = rng.Chance(windowLitChance)
			} else {
				lit = rng.Chance(residualLitChance)
			}
			col0 := theme.Facade.Add(6, 6, 10) // faint unlit pane
			if lit {
				col0 = windowColor(rng, mood, theme)
			}
			t.fillRect(col*stepX+preset.gap/2, row*stepY+preset.gap/2,
				preset.cellW, preset.cellH, col0)
		}
	}
	return t
}

func pickMood(rng *Rand) ColorMood {
	switch rng.WeightedPick([]int{40, 35, 25}) {
	case 0:
		return MoodWarm
	case 1:
		return MoodCool
	default:
		return MoodMixed
	}
}

func windowColor(rng *Rand, mood ColorMood, theme *Theme) RGB {
	pal := theme.WindowWarm
	switch mood {
	case MoodCool:
		pal = theme.WindowCool
	case MoodMixed:
		if rng.Chance(0.5) {
			pal = theme.WindowCool
		}
	}
	c := pal[rng.Intn(len(pal))]
	// Slight per-window brightness jitter.
	d := rng.Range(-18, 10)
	return c.Add(d, d, d)
}

func (t *WindowTexture) fill(c RGB) {
	for i := 0; i < len(t.Pix); i += 4 {
		t.Pix[i+0] = c.R
		t.Pix[i+1] = c.G
		t.Pix[i+2] = c.B
		t.Pix[i+3] = 255
	}
}

func (t *WindowTexture) fillRect(x, y, w, h int, c RGB) {
	x1 := clamp(x+w, 0, t.W)
	y1 := clamp(y+h, 0, t.H)
	x = clamp(x, 0, t.W)
	y = clamp(y, 0, t.H)
	for py := y; py < y1; py++ {
		o := (py*t.W + x) * 4
		for px := x; px < x1; px++ {
			t.Pix[o+0] = c.R
			t.Pix[o+1] = c.G
			t.Pix[o+2] = c.B
			t.Pix[o+3] = 255
			o += 4
		}
	}
}
