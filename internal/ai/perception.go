package ai

import (
	"github.com/udisondev/warden/internal/model"
)

// DefaultTargetTag is the collider tag that identifies the target.
const DefaultTargetTag = "Player"

// Perception decides whether the target is detectable and remembers
// the position where it was last confirmed.
//
// The zero last-seen position is meaningful: a target standing at the
// origin that never moved counts as detected (see CanDetectTarget).
type Perception struct {
	ray       Raycaster
	targetTag string
	lastSeen  model.Vec3
}

// NewPerception creates a perception module that casts rays through ray
// and accepts hits tagged targetTag as the target.
func NewPerception(ray Raycaster, targetTag string) *Perception {
	if targetTag == "" {
		targetTag = DefaultTargetTag
	}
	return &Perception{
		ray:       ray,
		targetTag: targetTag,
	}
}

// LastSeen returns the last confirmed target position.
func (p *Perception) LastSeen() model.Vec3 {
	return p.lastSeen
}

// CanDetectTarget reports whether the target at targetPos is visible from
// agentPos looking along agentForward.
//
// Checks short-circuit in order: unchanged position since last detection,
// vision range, cone half-angle (degrees), line of sight. A ray that hits
// nothing counts as a clear view. Any positive result updates LastSeen.
func (p *Perception) CanDetectTarget(agentPos, agentForward, targetPos model.Vec3, visionRange, visionHalfAngle float64) bool {
	// Exact equality: a target that has not moved since the last detection stays detected.
	if targetPos == p.lastSeen {
		return true
	}

	toTarget := targetPos.Sub(agentPos)
	distance := toTarget.Length()
	if distance > visionRange {
		return false
	}

	if agentForward.Angle(toTarget) > visionHalfAngle {
		return false
	}

	if p.ray != nil {
		if hit, ok := p.ray.Raycast(agentPos, toTarget.Normalize(), distance); ok && hit.Tag != p.targetTag {
			return false
		}
	}

	p.lastSeen = targetPos
	return true
}
