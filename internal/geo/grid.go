package geo

import (
	"math"

	"github.com/udisondev/warden/internal/model"
)

// Grid is a walkable/blocked cell map on the ground plane (X, Z).
// Cell (cx, cz) covers [cx*size, (cx+1)*size) × [cz*size, (cz+1)*size).
// Cells outside the grid are blocked.
type Grid struct {
	width, depth int32
	cellSize     float64
	blocked      []bool
}

// NewGrid creates a fully walkable grid. cellSize <= 0 uses DefaultCellSize.
func NewGrid(width, depth int32, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	width = max(width, 0)
	depth = max(depth, 0)
	return &Grid{
		width:    width,
		depth:    depth,
		cellSize: cellSize,
		blocked:  make([]bool, int(width)*int(depth)),
	}
}

// Width returns the number of cells along X.
func (g *Grid) Width() int32 { return g.width }

// Depth returns the number of cells along Z.
func (g *Grid) Depth() int32 { return g.depth }

// CellSize returns the edge length of a cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(cx, cz int32) bool {
	return cx >= 0 && cz >= 0 && cx < g.width && cz < g.depth
}

// SetBlocked marks a cell blocked or walkable. Out-of-bounds cells are ignored.
func (g *Grid) SetBlocked(cx, cz int32, blocked bool) {
	if !g.InBounds(cx, cz) {
		return
	}
	g.blocked[g.index(cx, cz)] = blocked
}

// Walkable reports whether the cell can be entered.
func (g *Grid) Walkable(cx, cz int32) bool {
	return g.InBounds(cx, cz) && !g.blocked[g.index(cx, cz)]
}

// WalkableAt reports whether the world position lies on a walkable cell.
func (g *Grid) WalkableAt(p model.Vec3) bool {
	return g.Walkable(g.CellOf(p))
}

// CellOf converts a world position to cell coordinates.
func (g *Grid) CellOf(p model.Vec3) (int32, int32) {
	return int32(math.Floor(p.X / g.cellSize)), int32(math.Floor(p.Z / g.cellSize))
}

// CellCenter converts cell coordinates to the world position of the cell center (Y = 0).
func (g *Grid) CellCenter(cx, cz int32) model.Vec3 {
	return model.NewVec3(
		(float64(cx)+0.5)*g.cellSize,
		0,
		(float64(cz)+0.5)*g.cellSize,
	)
}

func (g *Grid) index(cx, cz int32) int {
	return int(cz)*int(g.width) + int(cx)
}
