package engine

// Engine tuning constants. Defaults mirror the arena's reference setup.
const (
	DefaultAcceleration = 0.33 // dv added per held direction per tick
	DefaultDissipation  = 0.1
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultBallRadius   = 10

	MinDistance      = 1e-3 // floor for center distances and squared distances
	WallClearance    = 2    // pixels left between a ball and the wall side it bounced off
	SeparationMargin = 0.5  // extra push added to each ball when separating an overlap
)
