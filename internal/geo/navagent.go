package geo

import (
	"math"
	"time"

	"github.com/udisondev/warden/internal/model"
)

// NavAgent is a grid-navigating body. It serves as the navigation engine and
// the transform of one AI agent: the controller sets destinations, the world
// moves the body along the planned path on every Step.
type NavAgent struct {
	grid  *Grid
	pos   model.Vec3
	fwd   model.Vec3
	speed float64 // world units per second

	hasDest bool
	dest    model.Vec3
	path    []model.Vec3
}

// NewNavAgent places an agent at spawn facing forward.
func NewNavAgent(grid *Grid, spawn, forward model.Vec3, speed float64) *NavAgent {
	fwd := forward.Flat().Normalize()
	if fwd == (model.Vec3{}) {
		fwd = model.NewVec3(0, 0, 1)
	}
	return &NavAgent{
		grid:  grid,
		pos:   spawn,
		fwd:   fwd,
		speed: speed,
	}
}

// Position returns the current position.
func (a *NavAgent) Position() model.Vec3 { return a.pos }

// Forward returns the unit facing direction on the ground plane.
func (a *NavAgent) Forward() model.Vec3 { return a.fwd }

// Destination returns the last requested destination.
func (a *NavAgent) Destination() (model.Vec3, bool) { return a.dest, a.hasDest }

// Path returns the remaining waypoints.
func (a *NavAgent) Path() []model.Vec3 { return a.path }

// SetDestination plans a path to position. An unreachable destination
// leaves the agent with an empty path (remaining distance 0).
func (a *NavAgent) SetDestination(position model.Vec3) {
	a.hasDest = true
	a.dest = position
	a.path = a.grid.FindPath(a.pos, position)
}

// RemainingDistance returns the length of the remaining path.
// +Inf until a destination has been set.
func (a *NavAgent) RemainingDistance() float64 {
	if !a.hasDest {
		return math.Inf(1)
	}

	total := 0.0
	prev := a.pos
	for _, p := range a.path {
		total += prev.Distance(p)
		prev = p
	}
	return total
}

// SamplePosition returns near itself when it is walkable, otherwise the
// closest walkable cell center within tolerance.
func (a *NavAgent) SamplePosition(near model.Vec3, tolerance float64) (model.Vec3, bool) {
	return a.grid.SamplePosition(near, tolerance)
}

// Step moves the agent along its path by speed*dt.
func (a *NavAgent) Step(dt time.Duration) {
	budget := a.speed * dt.Seconds()

	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		delta := next.Sub(a.pos)
		dist := delta.Length()

		if dir := delta.Flat().Normalize(); dir != (model.Vec3{}) {
			a.fwd = dir
		}

		if dist <= budget {
			a.pos = next
			a.path = a.path[1:]
			budget -= dist
			continue
		}

		a.pos = a.pos.Add(delta.Scale(budget / dist))
		budget = 0
	}
}

// SamplePosition finds the nearest walkable position within tolerance of near.
func (g *Grid) SamplePosition(near model.Vec3, tolerance float64) (model.Vec3, bool) {
	if g.WalkableAt(near) {
		return near, true
	}

	cx, cz := g.CellOf(near)
	reach := int32(math.Ceil(tolerance / g.cellSize))

	best := model.Vec3{}
	bestDist := math.Inf(1)
	for dz := -reach; dz <= reach; dz++ {
		for dx := -reach; dx <= reach; dx++ {
			if !g.Walkable(cx+dx, cz+dz) {
				continue
			}
			c := g.CellCenter(cx+dx, cz+dz)
			c.Y = near.Y
			if d := c.Distance(near); d <= tolerance && d < bestDist {
				best, bestDist = c, d
			}
		}
	}

	if math.IsInf(bestDist, 1) {
		return model.Vec3{}, false
	}
	return best, true
}
