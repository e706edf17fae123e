package observer

import (
	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/model"
)

// Shape kinds.
const (
	ShapeWireCube   = "wire_cube"
	ShapeWireSphere = "wire_sphere"
	ShapeLine       = "line"
)

// Shape is one debug primitive. Unused fields stay empty for a given kind.
type Shape struct {
	Kind   string      `json:"kind"`
	Color  string      `json:"color"`
	Center *model.Vec3 `json:"center,omitempty"`
	Size   *model.Vec3 `json:"size,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	From   *model.Vec3 `json:"from,omitempty"`
	To     *model.Vec3 `json:"to,omitempty"`
}

// AgentFrame is the snapshot of one agent.
type AgentFrame struct {
	ID       uint32      `json:"id"`
	State    model.State `json:"state"`
	Position model.Vec3  `json:"position"`
	Forward  model.Vec3  `json:"forward"`
	Shapes   []Shape     `json:"shapes,omitempty"`
}

// Frame is everything pushed to observers for one tick.
type Frame struct {
	Tick   uint64       `json:"tick"`
	Target *model.Vec3  `json:"target,omitempty"`
	Agents []AgentFrame `json:"agents"`
}

// Recorder builds a Frame. It implements ai.DebugDrawer: shapes drawn
// go to the agent opened by the last BeginAgent call.
type Recorder struct {
	frame Frame
}

var _ ai.DebugDrawer = (*Recorder)(nil)

// NewRecorder starts an empty frame for tick.
func NewRecorder(tick uint64) *Recorder {
	return &Recorder{frame: Frame{Tick: tick, Agents: []AgentFrame{}}}
}

// SetTarget records the target position.
func (r *Recorder) SetTarget(pos model.Vec3) {
	r.frame.Target = &pos
}

// BeginAgent opens a new agent entry.
func (r *Recorder) BeginAgent(id uint32, state model.State, pos, forward model.Vec3) {
	r.frame.Agents = append(r.frame.Agents, AgentFrame{
		ID:       id,
		State:    state,
		Position: pos,
		Forward:  forward,
	})
}

// DrawWireCube records a wire cube.
func (r *Recorder) DrawWireCube(color string, center, size model.Vec3) {
	r.add(Shape{Kind: ShapeWireCube, Color: color, Center: &center, Size: &size})
}

// DrawWireSphere records a wire sphere.
func (r *Recorder) DrawWireSphere(color string, center model.Vec3, radius float64) {
	r.add(Shape{Kind: ShapeWireSphere, Color: color, Center: &center, Radius: radius})
}

// DrawLine records a line segment.
func (r *Recorder) DrawLine(color string, from, to model.Vec3) {
	r.add(Shape{Kind: ShapeLine, Color: color, From: &from, To: &to})
}

// Frame returns the frame built so far.
func (r *Recorder) Frame() Frame {
	return r.frame
}

func (r *Recorder) add(s Shape) {
	n := len(r.frame.Agents)
	if n == 0 {
		return // no agent open
	}
	r.frame.Agents[n-1].Shapes = append(r.frame.Agents[n-1].Shapes, s)
}
