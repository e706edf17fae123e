package geo

import (
	"time"

	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/model"
)

// Entity is a tagged collider that may walk a scripted route (e.g. the player).
type Entity struct {
	tag    string
	pos    model.Vec3
	radius float64
	speed  float64
	route  []model.Vec3
	next   int
}

// NewEntity creates a tagged entity with a spherical collider of radius.
func NewEntity(tag string, pos model.Vec3, radius float64) *Entity {
	return &Entity{tag: tag, pos: pos, radius: radius}
}

// SetRoute makes the entity walk the points in a loop at speed units per second.
func (e *Entity) SetRoute(speed float64, route []model.Vec3) {
	e.speed = speed
	e.route = route
	e.next = 0
}

// Tag returns the collider tag.
func (e *Entity) Tag() string { return e.tag }

// Position returns the current position.
func (e *Entity) Position() model.Vec3 { return e.pos }

// SetPosition teleports the entity.
func (e *Entity) SetPosition(p model.Vec3) { e.pos = p }

// Radius returns the collider radius.
func (e *Entity) Radius() float64 { return e.radius }

func (e *Entity) step(dt time.Duration) {
	budget := e.speed * dt.Seconds()
	idle := 0 // consecutive zero-length hops

	for budget > 0 && len(e.route) > 0 {
		target := e.route[e.next]
		delta := target.Sub(e.pos)
		dist := delta.Length()

		if dist <= budget {
			e.pos = target
			e.next = (e.next + 1) % len(e.route)
			budget -= dist

			if dist > 0 {
				idle = 0
			} else if idle++; idle >= len(e.route) {
				return
			}
			continue
		}

		e.pos = e.pos.Add(delta.Scale(budget / dist))
		budget = 0
	}
}

// World is a headless simulation of the ground grid, agents and entities.
// It implements the ray caster and target locator consumed by the AI.
// Not safe for concurrent use; step it from the tick goroutine.
type World struct {
	grid     *Grid
	agents   []*NavAgent
	entities []*Entity
}

// NewWorld creates a world over grid.
func NewWorld(grid *Grid) *World {
	return &World{grid: grid}
}

// Grid returns the ground grid.
func (w *World) Grid() *Grid { return w.grid }

// AddAgent adds a navigating body that Step will move.
func (w *World) AddAgent(a *NavAgent) {
	w.agents = append(w.agents, a)
}

// AddEntity adds a tagged collider.
func (w *World) AddEntity(e *Entity) {
	w.entities = append(w.entities, e)
}

// Entities returns all entities.
func (w *World) Entities() []*Entity { return w.entities }

// FindEntityByTag returns the first entity carrying tag.
func (w *World) FindEntityByTag(tag string) (ai.Target, bool) {
	for _, e := range w.entities {
		if e.tag == tag {
			return e, true
		}
	}
	return nil, false
}

// Step advances entities along their routes, then agents along their paths.
func (w *World) Step(dt time.Duration) {
	for _, e := range w.entities {
		e.step(dt)
	}
	for _, a := range w.agents {
		a.Step(dt)
	}
}
