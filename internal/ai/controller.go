package ai

import (
	"time"

	"github.com/udisondev/warden/internal/model"
)

// Controller represents AI controller interface for agents
type Controller interface {
	// Start activates the controller
	Start()

	// Stop deactivates the controller; later ticks are ignored
	Stop()

	// SetState forces an AI state
	SetState(state model.State)

	// State returns current AI state
	State() model.State

	// Tick performs one AI update; dt is the simulated time since the previous tick
	Tick(dt time.Duration)
}

// Navigator is the navigation engine consumed by the controller.
type Navigator interface {
	// SetDestination requests a path to position.
	SetDestination(position model.Vec3)

	// RemainingDistance returns the distance left along the current path.
	RemainingDistance() float64

	// SamplePosition finds the nearest valid position within tolerance of near.
	SamplePosition(near model.Vec3, tolerance float64) (model.Vec3, bool)
}

// Hit describes the first collider hit by a ray.
type Hit struct {
	Tag      string
	Point    model.Vec3
	Distance float64
}

// Raycaster is the ray/occlusion engine.
type Raycaster interface {
	// Raycast casts a ray from origin along direction, limited to maxDistance.
	// ok is false when nothing was hit.
	Raycast(origin, direction model.Vec3, maxDistance float64) (hit Hit, ok bool)
}

// Transform exposes the engine-owned pose of the agent. Read-only to the controller.
type Transform interface {
	Position() model.Vec3
	Forward() model.Vec3
}

// Target is the perceived entity.
type Target interface {
	Position() model.Vec3
}

// TargetLocator resolves entities by tag.
type TargetLocator interface {
	FindEntityByTag(tag string) (Target, bool)
}

// DebugDrawer receives debug visualization requests. Purely observational.
type DebugDrawer interface {
	DrawWireCube(color string, center, size model.Vec3)
	DrawWireSphere(color string, center model.Vec3, radius float64)
	DrawLine(color string, from, to model.Vec3)
}

// AttackFunc is a callback to execute the agent attack on the target.
// Combat resolution is up to the callee.
type AttackFunc func(agentID uint32, targetPos model.Vec3)
