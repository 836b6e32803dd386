package city

// Params bounds every random draw the generator makes. Values arrive
// pre-validated; reversed ranges degrade to fixed-size output (RangeF
// collapses to min) rather than failing.
type Params struct {
	ChunkLength float64 // longitudinal extent of one chunk
	Buildings   int     // buildings per chunk

	RoadWidth  float64 // central lane kept clear of buildings
	LaneMargin float64 // extra clearance between road edge and facades
	Spread     float64 // max lateral distance of a footprint centre

	WidthMin, WidthMax   float64
	DepthMin, DepthMax   float64
	HeightMin, HeightMax float64

	LandmarkChance float64 // probability of an outsized tower
	LandmarkScale  float64 // height multiplier for landmarks

	BeaconMinHeight float64 // rooftop beacon above this height

	Theme *Theme
}
