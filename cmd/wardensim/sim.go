package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/config"
	"github.com/udisondev/warden/internal/geo"
	"github.com/udisondev/warden/internal/model"
	"github.com/udisondev/warden/internal/observer"
)

const defaultAgentSpeed = 3.5

type agent struct {
	body    *geo.NavAgent
	enemy   *ai.EnemyAI
	attacks int
}

// simulation wires the reference world to the AI controllers.
// Everything except onFrame publishing runs on the ticking goroutine.
type simulation struct {
	world    *geo.World
	target   *geo.Entity
	agents   []*agent
	byID     map[uint32]*agent
	manager  *ai.TickManager
	maxTicks uint64

	onFrame func(observer.Frame)
}

func newSimulation(cfg config.Warden) (*simulation, error) {
	wc := cfg.World

	grid := geo.NewGrid(wc.Width, wc.Height, wc.CellSize)
	for _, c := range wc.Walls {
		grid.SetBlocked(c.X, c.Z, true)
	}
	world := geo.NewWorld(grid)

	tag := cfg.Agent.TargetTag
	if tag == "" {
		tag = ai.DefaultTargetTag
	}
	target := geo.NewEntity(tag, wc.Target.Spawn, wc.Target.Radius)
	target.SetRoute(wc.Target.Speed, wc.Target.Route)
	world.AddEntity(target)

	s := &simulation{
		world:    world,
		target:   target,
		byID:     make(map[uint32]*agent, len(wc.Agents)),
		manager:  ai.NewTickManager(cfg.Sim.TickInterval),
		maxTicks: cfg.Sim.MaxTicks,
	}

	for _, spawn := range wc.Agents {
		if _, dup := s.byID[spawn.ID]; dup {
			return nil, fmt.Errorf("duplicate agent id %d", spawn.ID)
		}

		agentCfg, err := cfg.AgentFor(spawn)
		if err != nil {
			return nil, err
		}

		speed := spawn.Speed
		if speed <= 0 {
			speed = defaultAgentSpeed
		}
		body := geo.NewNavAgent(grid, spawn.Spawn, spawn.Forward, speed)
		world.AddAgent(body)

		// A missing target is fatal for the agent.
		tgt, err := ai.ResolveTarget(world, agentCfg.TargetTag)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", spawn.ID, err)
		}

		enemy, err := ai.NewEnemyAI(spawn.ID, agentCfg.AIConfig(), ai.Deps{
			Transform: body,
			Navigator: body,
			Raycaster: world,
			Target:    tgt,
			Attack:    s.onAttack,
			Rand:      rand.New(rand.NewPCG(cfg.Sim.Seed, uint64(spawn.ID))),
		})
		if err != nil {
			return nil, fmt.Errorf("creating AI: %w", err)
		}

		a := &agent{body: body, enemy: enemy}
		s.agents = append(s.agents, a)
		s.byID[spawn.ID] = a
	}

	s.manager.SetBeforeTick(world.Step)
	s.manager.SetAfterTick(s.afterTick)
	for _, a := range s.agents {
		s.manager.Register(a.enemy.ID(), a.enemy)
	}

	slog.Info("simulation initialized",
		"grid", fmt.Sprintf("%dx%d", grid.Width(), grid.Depth()),
		"walls", len(wc.Walls),
		"agents", s.manager.Count(),
		"target_tag", target.Tag())

	return s, nil
}

// run ticks until ctx is canceled or maxTicks is reached. Realtime runs on
// the manager's ticker, otherwise ticks are advanced back to back.
func (s *simulation) run(ctx context.Context, sim config.Sim) error {
	if !sim.Realtime {
		for s.maxTicks == 0 || s.manager.Ticks() < s.maxTicks {
			if ctx.Err() != nil {
				return nil
			}
			s.manager.Advance(s.manager.Interval())
		}
		return nil
	}

	if err := s.manager.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("AI tick manager: %w", err)
	}
	return nil
}

func (s *simulation) afterTick(tick uint64) {
	if s.onFrame != nil {
		s.onFrame(s.frame(tick))
	}
	if s.maxTicks > 0 && tick >= s.maxTicks {
		s.manager.Stop()
	}
}

// frame captures agent poses and gizmos for tick.
func (s *simulation) frame(tick uint64) observer.Frame {
	rec := observer.NewRecorder(tick)
	rec.SetTarget(s.target.Position())
	for _, a := range s.agents {
		rec.BeginAgent(a.enemy.ID(), a.enemy.State(), a.body.Position(), a.body.Forward())
		a.enemy.DrawGizmos(rec)
	}
	return rec.Frame()
}

func (s *simulation) onAttack(agentID uint32, targetPos model.Vec3) {
	a, ok := s.byID[agentID]
	if !ok {
		return
	}
	a.attacks++

	slog.Info("agent attacked target",
		"agentID", agentID,
		"target", targetPos,
		"attacks", a.attacks)
}

func (s *simulation) logSummary() {
	for _, a := range s.agents {
		slog.Info("agent summary",
			"agentID", a.enemy.ID(),
			"state", a.enemy.State(),
			"position", a.body.Position(),
			"waypoint", a.enemy.PatrolIndex(),
			"attacks", a.attacks)
	}
	slog.Info("simulation finished", "ticks", s.manager.Ticks())
}
