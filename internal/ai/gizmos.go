package ai

import "github.com/udisondev/warden/internal/model"

// Gizmo colors.
const (
	ColorPatrolArea = "red"
	ColorVision     = "green"
	ColorCone       = "magenta"
)

// DrawGizmos sends the patrol area box, the vision radius and the two
// vision cone edges to d. No behavioural effect.
func (ai *EnemyAI) DrawGizmos(d DebugDrawer) {
	if d == nil {
		return
	}

	size := model.NewVec3(ai.cfg.PatrolAreaSize.X, 1, ai.cfg.PatrolAreaSize.Z)
	d.DrawWireCube(ColorPatrolArea, ai.cfg.PatrolAreaCenter, size)

	pos := ai.transform.Position()
	d.DrawWireSphere(ColorVision, pos, ai.cfg.VisionRange)

	half := ai.cfg.VisionAngle * 0.5
	reach := ai.transform.Forward().Normalize().Scale(ai.cfg.VisionRange)
	d.DrawLine(ColorCone, pos, pos.Add(reach.RotateY(half)))
	d.DrawLine(ColorCone, pos, pos.Add(reach.RotateY(-half)))
}
