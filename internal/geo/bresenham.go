package geo

// LineIterator implements the 2D Bresenham line algorithm over grid cells.
// Steps through every cell from start to end inclusive.
type LineIterator struct {
	currentX, currentZ int32
	targetX, targetZ   int32
	deltaX, deltaZ     int32
	stepX, stepZ       int32
	err                int32
	started            bool
}

// NewLineIterator creates a line iterator from (sx, sz) to (ex, ez).
func NewLineIterator(sx, sz, ex, ez int32) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentZ: sz,
		targetX: ex, targetZ: ez,
		deltaX: abs32(ex - sx),
		deltaZ: -abs32(ez - sz),
		stepX:  1,
		stepZ:  1,
	}
	if sx > ex {
		it.stepX = -1
	}
	if sz > ez {
		it.stepZ = -1
	}
	it.err = it.deltaX + it.deltaZ
	return it
}

// Next advances the iterator to the next cell.
// Returns false when the target has already been reached.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true // Return start point
	}

	if it.currentX == it.targetX && it.currentZ == it.targetZ {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaZ {
		it.err += it.deltaZ
		it.currentX += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.currentZ += it.stepZ
	}

	return true
}

// X returns current cell X.
func (it *LineIterator) X() int32 { return it.currentX }

// Z returns current cell Z.
func (it *LineIterator) Z() int32 { return it.currentZ }

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
