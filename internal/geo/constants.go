package geo

// Collider tags reported by the ray caster.
const (
	TagWall   = "Wall"
	TagPlayer = "Player"
)

// Grid defaults.
const (
	DefaultCellSize = 1.0
)

// Pathfinding configuration.
const (
	MaxPathfindIterations = 7000
	MaxSmoothPasses       = 3

	// A* weights.
	WeightLow      = 1.0
	WeightDiagonal = 1.41421356237 // sqrt(2)
)

// Ray marching: fraction of a cell advanced per wall probe.
const rayStepFraction = 0.25
