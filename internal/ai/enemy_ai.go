package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/udisondev/warden/internal/model"
)

var (
	// ErrNoTarget is returned when a controller is built without a target.
	ErrNoTarget = errors.New("ai: no target")
	// ErrTargetNotFound is returned when no entity carries the target tag.
	ErrTargetNotFound = errors.New("ai: target not found")
	// ErrNoNavigator is returned when a controller is built without a navigator.
	ErrNoNavigator = errors.New("ai: no navigator")
	// ErrNoTransform is returned when a controller is built without a transform.
	ErrNoTransform = errors.New("ai: no transform")
)

// Defaults for Config fields left at zero.
const (
	DefaultVisionRange    = 20.0
	DefaultVisionAngle    = 120.0 // full cone, degrees
	DefaultAttackRange    = 2.0
	DefaultSearchRadius   = 10.0
	DefaultSearchWaitTime = 15 * time.Second
	DefaultPatrolWait     = 5 * time.Second
	DefaultArriveDistance = 0.5
)

// Config holds the tunables of an EnemyAI.
type Config struct {
	VisionRange     float64
	VisionAngle     float64 // full cone angle in degrees, halved for the check
	AttackRange     float64
	SearchRadius    float64
	SearchWaitTime  time.Duration
	PatrolWait      time.Duration
	ArriveDistance  float64
	SampleTolerance float64

	// BoundedSearchSampling makes search points land within SearchRadius of
	// the last known target position instead of right next to it.
	BoundedSearchSampling bool

	TargetTag    string
	PatrolPoints []model.Vec3

	// Display only.
	PatrolAreaCenter model.Vec3
	PatrolAreaSize   model.Vec3 // X width, Z depth
}

// DefaultConfig returns Config with the stock tunables and no patrol route.
func DefaultConfig() Config {
	return Config{
		VisionRange:     DefaultVisionRange,
		VisionAngle:     DefaultVisionAngle,
		AttackRange:     DefaultAttackRange,
		SearchRadius:    DefaultSearchRadius,
		SearchWaitTime:  DefaultSearchWaitTime,
		PatrolWait:      DefaultPatrolWait,
		ArriveDistance:  DefaultArriveDistance,
		SampleTolerance: DefaultSampleTolerance,
		TargetTag:       DefaultTargetTag,
		PatrolAreaSize:  model.NewVec3(5, 0, 5),
	}
}

// WithDefaults replaces zero or negative tunables with their defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.VisionRange <= 0 {
		c.VisionRange = d.VisionRange
	}
	if c.VisionAngle <= 0 {
		c.VisionAngle = d.VisionAngle
	}
	if c.AttackRange <= 0 {
		c.AttackRange = d.AttackRange
	}
	if c.SearchRadius <= 0 {
		c.SearchRadius = d.SearchRadius
	}
	if c.SearchWaitTime <= 0 {
		c.SearchWaitTime = d.SearchWaitTime
	}
	if c.PatrolWait <= 0 {
		c.PatrolWait = d.PatrolWait
	}
	if c.ArriveDistance <= 0 {
		c.ArriveDistance = d.ArriveDistance
	}
	if c.SampleTolerance <= 0 {
		c.SampleTolerance = d.SampleTolerance
	}
	if c.TargetTag == "" {
		c.TargetTag = d.TargetTag
	}
	if c.PatrolAreaSize == (model.Vec3{}) {
		c.PatrolAreaSize = d.PatrolAreaSize
	}
	return c
}

// Deps are the external collaborators of an EnemyAI.
// Transform, Navigator and Target are required.
type Deps struct {
	Transform Transform
	Navigator Navigator
	Raycaster Raycaster
	Target    Target

	// Attack is optional; without it attacks are only logged.
	Attack AttackFunc
	// Rand is optional; nil uses the global source.
	Rand *rand.Rand
}

// ResolveTarget looks up the target by tag. Missing target is a fatal
// configuration error for the agent.
func ResolveTarget(locator TargetLocator, tag string) (Target, error) {
	if tag == "" {
		tag = DefaultTargetTag
	}
	target, ok := locator.FindEntityByTag(tag)
	if !ok || target == nil {
		return nil, fmt.Errorf("resolving tag %q: %w", tag, ErrTargetNotFound)
	}
	return target, nil
}

// EnemyAI implements the patrol/chase/search/wait/attack state machine.
// State machine: PATROLLING → CHASING ↔ ATTACKING, CHASING → SEARCHING → PATROLLING,
// PATROLLING → WAITING → PATROLLING (via the deferred patrol wait).
//
// Tick must be called from a single goroutine. State is safe to read concurrently.
type EnemyAI struct {
	id  uint32
	cfg Config

	transform  Transform
	nav        Navigator
	target     Target
	attackFunc AttackFunc
	rng        *rand.Rand

	perception *Perception

	isRunning atomic.Bool
	state     atomic.Int32

	// Agent clock: sum of tick deltas since creation.
	clock       time.Duration
	searchTimer time.Duration
	patrolIndex int
	wait        pendingWait
}

// NewEnemyAI creates a controller for agent id. Fails fast when a required
// collaborator is missing.
func NewEnemyAI(id uint32, cfg Config, deps Deps) (*EnemyAI, error) {
	if deps.Target == nil {
		return nil, fmt.Errorf("agent %d: %w", id, ErrNoTarget)
	}
	if deps.Navigator == nil {
		return nil, fmt.Errorf("agent %d: %w", id, ErrNoNavigator)
	}
	if deps.Transform == nil {
		return nil, fmt.Errorf("agent %d: %w", id, ErrNoTransform)
	}

	cfg = cfg.WithDefaults()

	return &EnemyAI{
		id:         id,
		cfg:        cfg,
		transform:  deps.Transform,
		nav:        deps.Navigator,
		target:     deps.Target,
		attackFunc: deps.Attack,
		rng:        deps.Rand,
		perception: NewPerception(deps.Raycaster, cfg.TargetTag),
	}, nil
}

// ID returns the agent ID.
func (ai *EnemyAI) ID() uint32 {
	return ai.id
}

// Config returns the effective tunables.
func (ai *EnemyAI) Config() Config {
	return ai.cfg
}

// Start activates the agent: state resets to PATROLLING and the first
// waypoint becomes the destination.
func (ai *EnemyAI) Start() {
	ai.isRunning.Store(true)
	ai.searchTimer = 0
	ai.wait.clear()
	ai.setState(model.StatePatrolling)
	ai.setPatrolPoint()

	slog.Debug("enemy AI started",
		"agentID", ai.id,
		"waypoints", len(ai.cfg.PatrolPoints),
		"visionRange", ai.cfg.VisionRange)
}

// Stop deactivates the agent. An outstanding patrol wait is dropped.
func (ai *EnemyAI) Stop() {
	ai.isRunning.Store(false)
	ai.wait.clear()

	slog.Debug("enemy AI stopped", "agentID", ai.id)
}

// State returns current AI state.
func (ai *EnemyAI) State() model.State {
	return model.State(ai.state.Load())
}

// SetState forces a state and runs its entry action. Does not touch an
// outstanding patrol wait.
func (ai *EnemyAI) SetState(state model.State) {
	ai.enter(state)
}

// PatrolIndex returns the index of the current waypoint.
func (ai *EnemyAI) PatrolIndex() int {
	return ai.patrolIndex
}

// SearchTimer returns the time accumulated in SEARCHING since the last reset.
func (ai *EnemyAI) SearchTimer() time.Duration {
	return ai.searchTimer
}

// LastKnownTargetPosition returns where the target was last detected.
func (ai *EnemyAI) LastKnownTargetPosition() model.Vec3 {
	return ai.perception.LastSeen()
}

// PendingWait returns the time left until the outstanding patrol wait fires.
func (ai *EnemyAI) PendingWait() (time.Duration, bool) {
	if !ai.wait.armed {
		return 0, false
	}
	return max(ai.wait.deadline-ai.clock, 0), true
}

// Tick performs one AI update. dt is the simulated time since the previous tick.
func (ai *EnemyAI) Tick(dt time.Duration) {
	if !ai.isRunning.Load() {
		return
	}

	ai.clock += dt

	switch ai.State() {
	case model.StatePatrolling:
		ai.thinkPatrol()
	case model.StateChasing:
		ai.thinkChase()
	case model.StateSearching:
		ai.thinkSearch(dt)
	case model.StateWaiting:
		// Nothing to do: the patrol wait drives the exit.
	case model.StateAttacking:
		ai.thinkAttack()
	}

	if ai.wait.due(ai.clock) {
		ai.finishWait()
	}
}

// CanDetectTarget runs perception for the current pose and target position.
func (ai *EnemyAI) CanDetectTarget() bool {
	return ai.perception.CanDetectTarget(
		ai.transform.Position(),
		ai.transform.Forward(),
		ai.target.Position(),
		ai.cfg.VisionRange,
		ai.cfg.VisionAngle*0.5,
	)
}

// SampleSearchPoint picks a navigable point to search around center.
func (ai *EnemyAI) SampleSearchPoint(center model.Vec3, radius float64) (model.Vec3, bool) {
	if ai.cfg.BoundedSearchSampling {
		return SampleBoundedSearchPoint(ai.nav, center, radius, ai.cfg.SampleTolerance, ai.rng)
	}
	return SampleSearchPoint(ai.nav, center, radius, ai.cfg.SampleTolerance)
}

func (ai *EnemyAI) thinkPatrol() {
	if ai.CanDetectTarget() {
		ai.enter(model.StateChasing)
		return
	}

	if ai.nav.RemainingDistance() < ai.cfg.ArriveDistance {
		ai.enter(model.StateWaiting)
		ai.scheduleWait()
	}
}

func (ai *EnemyAI) thinkChase() {
	targetPos := ai.target.Position()

	if !ai.CanDetectTarget() {
		ai.enter(model.StateSearching)
	} else if ai.transform.Position().Distance(targetPos) <= ai.cfg.AttackRange {
		ai.enter(model.StateAttacking)
	}

	// Destination follows the live target every chase tick, including the
	// tick that leaves the state.
	ai.nav.SetDestination(targetPos)
}

func (ai *EnemyAI) thinkSearch(dt time.Duration) {
	ai.searchTimer += dt

	if ai.CanDetectTarget() {
		ai.enter(model.StateChasing)
		return
	}

	if ai.searchTimer < ai.cfg.SearchWaitTime {
		if ai.nav.RemainingDistance() < ai.cfg.ArriveDistance {
			point, ok := ai.SampleSearchPoint(ai.perception.LastSeen(), ai.cfg.SearchRadius)
			if !ok {
				return
			}
			ai.nav.SetDestination(point)

			if IsDebugEnabled() {
				slog.Debug("search point chosen",
					"agentID", ai.id,
					"point", point,
					"timer", ai.searchTimer)
			}
		}
		return
	}

	ai.enter(model.StatePatrolling)
	ai.searchTimer = 0
}

func (ai *EnemyAI) thinkAttack() {
	targetPos := ai.target.Position()

	if ai.attackFunc != nil {
		ai.attackFunc(ai.id, targetPos)
	}

	if IsDebugEnabled() {
		slog.Debug("attacking target",
			"agentID", ai.id,
			"target", targetPos)
	}

	ai.enter(model.StateChasing)
}

func (ai *EnemyAI) scheduleWait() {
	if !ai.wait.schedule(ai.clock, ai.cfg.PatrolWait) {
		return
	}

	if IsDebugEnabled() {
		slog.Debug("patrol wait scheduled",
			"agentID", ai.id,
			"delay", ai.cfg.PatrolWait,
			"waypoint", ai.patrolIndex)
	}
}

// finishWait advances the route and forces PATROLLING, whatever the current state.
func (ai *EnemyAI) finishWait() {
	if n := len(ai.cfg.PatrolPoints); n > 0 {
		ai.patrolIndex = (ai.patrolIndex + 1) % n
	}
	ai.setPatrolPoint()
	ai.setState(model.StatePatrolling)

	if IsDebugEnabled() {
		slog.Debug("patrol wait finished",
			"agentID", ai.id,
			"waypoint", ai.patrolIndex)
	}
}

// setPatrolPoint sends the current waypoint to the navigator. No-op for an empty route.
func (ai *EnemyAI) setPatrolPoint() {
	if len(ai.cfg.PatrolPoints) == 0 {
		return
	}
	ai.nav.SetDestination(ai.cfg.PatrolPoints[ai.patrolIndex])
}

// enter switches state and runs the entry action of the new state.
func (ai *EnemyAI) enter(state model.State) {
	ai.setState(state)

	switch state {
	case model.StatePatrolling:
		ai.setPatrolPoint()
	case model.StateChasing:
		ai.nav.SetDestination(ai.target.Position())
	}
}

func (ai *EnemyAI) setState(state model.State) {
	old := model.State(ai.state.Swap(int32(state)))

	if old != state && IsDebugEnabled() {
		slog.Debug("AI state changed",
			"agentID", ai.id,
			"from", old,
			"to", state)
	}
}
