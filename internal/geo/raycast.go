package geo

import (
	"math"

	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/model"
)

// Raycast returns the first collider hit along the ray from origin,
// limited to maxDistance: either a blocked grid cell (tagged TagWall) or
// an entity sphere (tagged with the entity tag). The origin cell never
// blocks its own ray.
func (w *World) Raycast(origin, direction model.Vec3, maxDistance float64) (ai.Hit, bool) {
	dir := direction.Normalize()
	if dir == (model.Vec3{}) || maxDistance <= 0 {
		return ai.Hit{}, false
	}

	best := ai.Hit{Distance: math.Inf(1)}
	found := false

	if t, ok := w.marchWalls(origin, dir, maxDistance); ok {
		best = ai.Hit{Tag: TagWall, Point: origin.Add(dir.Scale(t)), Distance: t}
		found = true
	}

	for _, e := range w.entities {
		t, ok := raySphere(origin, dir, e.pos, e.radius)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		best = ai.Hit{Tag: e.tag, Point: origin.Add(dir.Scale(t)), Distance: t}
		found = true
	}

	if !found {
		return ai.Hit{}, false
	}
	return best, true
}

// marchWalls probes the grid along the ray and returns the distance of the
// first blocked cell.
func (w *World) marchWalls(origin, dir model.Vec3, maxDistance float64) (float64, bool) {
	step := w.grid.cellSize * rayStepFraction
	ox, oz := w.grid.CellOf(origin)

	for t := step; t <= maxDistance; t += step {
		cx, cz := w.grid.CellOf(origin.Add(dir.Scale(t)))
		if cx == ox && cz == oz {
			continue
		}
		if !w.grid.Walkable(cx, cz) {
			return t, true
		}
	}

	// Probe the exact end point as well.
	cx, cz := w.grid.CellOf(origin.Add(dir.Scale(maxDistance)))
	if (cx != ox || cz != oz) && !w.grid.Walkable(cx, cz) {
		return maxDistance, true
	}
	return 0, false
}

// raySphere returns the entry distance of a unit-direction ray into a sphere.
func raySphere(origin, dir, center model.Vec3, radius float64) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}

	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LengthSquared() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq // origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
