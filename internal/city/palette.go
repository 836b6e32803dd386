package city

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Vec returns the colour as normalized float components for shader uniforms
// and vertex streams.
func (c RGB) Vec() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// Theme bundles every colour the generator and renderer draw from. Sky and
// Horizon double as the static gradient shown when no GL context is available.
type Theme struct {
	Name string

	Sky     RGB // clear colour / gradient top
	Horizon RGB // fog colour / gradient bottom

	Structure  []RGB // massing block walls
	WindowWarm []RGB // lit office windows, warm mood
	WindowCool []RGB // lit office windows, cool mood
	Facade     RGB   // unlit facade base in window rasters

	Ground RGB
	Road   RGB
	Stripe RGB
	Beacon RGB

	MoonColor RGB
	FillColor RGB
	Ambient   float64 // 0..1 ambient light level
}

var themeDusk = Theme{
	Name:    "dusk",
	Sky:     RGB{R: 24, G: 22, B: 48},
	Horizon: RGB{R: 86, G: 44, B: 78},
	Structure: []RGB{
		{R: 38, G: 40, B: 54},
		{R: 46, G: 44, B: 60},
		{R: 30, G: 34, B: 46},
		{R: 52, G: 48, B: 58},
	},
	WindowWarm: []RGB{
		{R: 255, G: 214, B: 140},
		{R: 255, G: 196, B: 110},
		{R: 250, G: 230, B: 180},
	},
	WindowCool: []RGB{
		{R: 150, G: 200, B: 255},
		{R: 180, G: 220, B: 250},
		{R: 120, G: 170, B: 235},
	},
	Facade:    RGB{R: 14, G: 14, B: 22},
	Ground:    RGB{R: 20, G: 20, B: 30},
	Road:      RGB{R: 28, G: 30, B: 38},
	Stripe:    RGB{R: 120, G: 118, B: 100},
	Beacon:    RGB{R: 255, G: 60, B: 50},
	MoonColor: RGB{R: 110, G: 120, B: 160},
	FillColor: RGB{R: 200, G: 120, B: 170},
	Ambient:   0.30,
}

var themeMidnight = Theme{
	Name:    "midnight",
	Sky:     RGB{R: 6, G: 8, B: 18},
	Horizon: RGB{R: 22, G: 30, B: 52},
	Structure: []RGB{
		{R: 22, G: 24, B: 34},
		{R: 28, G: 30, B: 40},
		{R: 18, G: 20, B: 28},
	},
	WindowWarm: []RGB{
		{R: 255, G: 208, B: 128},
		{R: 244, G: 188, B: 104},
	},
	WindowCool: []RGB{
		{R: 128, G: 180, B: 245},
		{R: 160, G: 205, B: 250},
	},
	Facade:    RGB{R: 8, G: 9, B: 14},
	Ground:    RGB{R: 10, G: 11, B: 18},
	Road:      RGB{R: 16, G: 18, B: 24},
	Stripe:    RGB{R: 96, G: 94, B: 80},
	Beacon:    RGB{R: 255, G: 48, B: 40},
	MoonColor: RGB{R: 90, G: 105, B: 150},
	FillColor: RGB{R: 80, G: 110, B: 180},
	Ambient:   0.22,
}

var themeNeon = Theme{
	Name:    "neon",
	Sky:     RGB{R: 16, G: 10, B: 40},
	Horizon: RGB{R: 150, G: 40, B: 110},
	Structure: []RGB{
		{R: 30, G: 26, B: 52},
		{R: 40, G: 30, B: 62},
		{R: 24, G: 22, B: 44},
	},
	WindowWarm: []RGB{
		{R: 255, G: 120, B: 200},
		{R: 255, G: 170, B: 120},
	},
	WindowCool: []RGB{
		{R: 110, G: 240, B: 255},
		{R: 140, G: 130, B: 255},
	},
	Facade:    RGB{R: 12, G: 10, B: 24},
	Ground:    RGB{R: 16, G: 13, B: 28},
	Road:      RGB{R: 22, G: 20, B: 36},
	Stripe:    RGB{R: 180, G: 90, B: 200},
	Beacon:    RGB{R: 255, G: 70, B: 160},
	MoonColor: RGB{R: 130, G: 100, B: 200},
	FillColor: RGB{R: 255, G: 80, B: 160},
	Ambient:   0.34,
}

// ThemeByName resolves a configured theme name, defaulting to dusk.
func ThemeByName(name string) *Theme {
	switch name {
	case themeMidnight.Name:
		return &themeMidnight
	case themeNeon.Name:
		return &themeNeon
	default:
		return &themeDusk
	}
}
