package scene

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kpab/nightwalk/internal/city"
)

// Config is the full scene parameter set. Every numeric range is normalized
// on load: a reversed min/max pair is swapped rather than rejected, so a bad
// hand edit degrades to a fixed-size draw instead of a crash.
type Config struct {
	Seed  uint64 `yaml:"seed"`
	Theme string `yaml:"theme"`

	ChunkCount        int     `yaml:"chunk_count"`
	ChunkLength       float64 `yaml:"chunk_length"`
	BuildingsPerChunk int     `yaml:"buildings_per_chunk"`
	MobileBuildFactor float64 `yaml:"mobile_building_factor"`

	RoadWidth  float64 `yaml:"road_width"`
	LaneMargin float64 `yaml:"lane_margin"`
	Spread     float64 `yaml:"spread"`

	WidthMin  float64 `yaml:"width_min"`
	WidthMax  float64 `yaml:"width_max"`
	DepthMin  float64 `yaml:"depth_min"`
	DepthMax  float64 `yaml:"depth_max"`
	HeightMin float64 `yaml:"height_min"`
	HeightMax float64 `yaml:"height_max"`

	LandmarkChance  float64 `yaml:"landmark_chance"`
	LandmarkScale   float64 `yaml:"landmark_scale"`
	BeaconMinHeight float64 `yaml:"beacon_min_height"`

	FogDensity float64 `yaml:"fog_density"`

	FOV          float64 `yaml:"fov"` // degrees
	Near         float64 `yaml:"near"`
	Far          float64 `yaml:"far"`
	CameraHeight float64 `yaml:"camera_height"`
	CameraSpeed  float64 `yaml:"camera_speed"` // world units per second
	SwayAmp      float64 `yaml:"sway_amplitude"`
	SwayPeriod   float64 `yaml:"sway_period"`

	TargetFPS       float64 `yaml:"target_fps"`
	QualityInterval int     `yaml:"quality_interval"` // frames between checks
	QualityStep     float64 `yaml:"quality_step"`
	MinPixelRatio   float64 `yaml:"min_pixel_ratio"`
	DesktopRatioCap float64 `yaml:"desktop_pixel_ratio_cap"`
	MobileRatioCap  float64 `yaml:"mobile_pixel_ratio_cap"`

	MobileWidthCutoff int `yaml:"mobile_width_cutoff"` // framebuffer px
}

func Defaults() Config {
	return Config{
		Theme:             "dusk",
		ChunkCount:        3,
		ChunkLength:       240,
		BuildingsPerChunk: 26,
		MobileBuildFactor: 0.5,
		RoadWidth:         10,
		LaneMargin:        3,
		Spread:            70,
		WidthMin:          5,
		WidthMax:          14,
		DepthMin:          5,
		DepthMax:          14,
		HeightMin:         8,
		HeightMax:         55,
		LandmarkChance:    0.04,
		LandmarkScale:     1.9,
		BeaconMinHeight:   48,
		FogDensity:        0.0065,
		FOV:               62,
		Near:              0.5,
		Far:               600,
		CameraHeight:      14,
		CameraSpeed:       22,
		SwayAmp:           3.5,
		SwayPeriod:        14,
		TargetFPS:         60,
		QualityInterval:   60,
		QualityStep:       0.25,
		MinPixelRatio:     1.0,
		DesktopRatioCap:   2.0,
		MobileRatioCap:    1.5,
		MobileWidthCutoff: 900,
	}
}

// Load reads a YAML config over the defaults. An empty path returns the
// defaults unchanged (normalized).
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("scene config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize repairs degenerate values in place: reversed ranges are swapped,
// counts and lengths are floored at workable minimums.
func (c *Config) Normalize() {
	swap := func(min, max *float64) {
		if *min > *max {
			*min, *max = *max, *min
		}
	}
	swap(&c.WidthMin, &c.WidthMax)
	swap(&c.DepthMin, &c.DepthMax)
	swap(&c.HeightMin, &c.HeightMax)

	if c.ChunkCount < 1 {
		c.ChunkCount = 1
	}
	if c.ChunkLength <= 0 {
		c.ChunkLength = Defaults().ChunkLength
	}
	if c.BuildingsPerChunk < 0 {
		c.BuildingsPerChunk = 0
	}
	if c.MobileBuildFactor <= 0 || c.MobileBuildFactor > 1 {
		c.MobileBuildFactor = Defaults().MobileBuildFactor
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = Defaults().TargetFPS
	}
	if c.QualityInterval < 1 {
		c.QualityInterval = Defaults().QualityInterval
	}
	if c.QualityStep <= 0 {
		c.QualityStep = Defaults().QualityStep
	}
	if c.MinPixelRatio < 1 {
		c.MinPixelRatio = 1
	}
	if c.Near <= 0 {
		c.Near = Defaults().Near
	}
	if c.Far <= c.Near {
		c.Far = c.Near + 100
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = Defaults().FOV
	}
	if c.MobileWidthCutoff <= 0 {
		c.MobileWidthCutoff = Defaults().MobileWidthCutoff
	}
}

// cityParams maps the config onto generator parameters for a device tier.
func (c *Config) cityParams(tier DeviceTier) city.Params {
	buildings := c.BuildingsPerChunk
	if tier == TierMobile {
		buildings = int(float64(buildings) * c.MobileBuildFactor)
		if buildings < 1 && c.BuildingsPerChunk > 0 {
			buildings = 1
		}
	}
	return city.Params{
		ChunkLength:     c.ChunkLength,
		Buildings:       buildings,
		RoadWidth:       c.RoadWidth,
		LaneMargin:      c.LaneMargin,
		Spread:          c.Spread,
		WidthMin:        c.WidthMin,
		WidthMax:        c.WidthMax,
		DepthMin:        c.DepthMin,
		DepthMax:        c.DepthMax,
		HeightMin:       c.HeightMin,
		HeightMax:       c.HeightMax,
		LandmarkChance:  c.LandmarkChance,
		LandmarkScale:   c.LandmarkScale,
		BeaconMinHeight: c.BeaconMinHeight,
		Theme:           city.ThemeByName(c.Theme),
	}
}

// ratioCap returns the configured pixel-ratio ceiling for a tier.
func (c *Config) ratioCap(tier DeviceTier) float64 {
	if tier == TierMobile {
		return c.MobileRatioCap
	}
	return c.DesktopRatioCap
}
