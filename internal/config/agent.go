package config

import (
	"fmt"
	"time"

	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/model"
)

// Agent holds the tunables of one enemy AI.
type Agent struct {
	// Perception
	VisionRange float64 `yaml:"vision_range"`
	VisionAngle float64 `yaml:"vision_angle"` // full cone, degrees
	TargetTag   string  `yaml:"target_tag"`

	// Combat
	AttackRange float64 `yaml:"attack_range"`

	// Search
	SearchWaitTime        time.Duration `yaml:"search_wait_time"`
	SearchRadius          float64       `yaml:"search_radius"`
	SampleTolerance       float64       `yaml:"sample_tolerance"`
	BoundedSearchSampling bool          `yaml:"bounded_search_sampling"`

	// Patrol
	PatrolWait       time.Duration `yaml:"patrol_wait"`
	ArriveDistance   float64       `yaml:"arrive_distance"`
	PatrolAreaCenter model.Vec3    `yaml:"patrol_area_center"`
	PatrolAreaSize   model.Vec3    `yaml:"patrol_area_size"` // x = width, z = depth; display only
	PatrolPoints     []model.Vec3  `yaml:"patrol_points"`
}

// DefaultAgent returns the agent tunables used when the config omits them.
func DefaultAgent() Agent {
	d := ai.DefaultConfig()
	return Agent{
		VisionRange:           d.VisionRange,
		VisionAngle:           d.VisionAngle,
		TargetTag:             d.TargetTag,
		AttackRange:           d.AttackRange,
		SearchWaitTime:        d.SearchWaitTime,
		SearchRadius:          d.SearchRadius,
		SampleTolerance:       d.SampleTolerance,
		BoundedSearchSampling: d.BoundedSearchSampling,
		PatrolWait:            d.PatrolWait,
		ArriveDistance:        d.ArriveDistance,
		PatrolAreaSize:        d.PatrolAreaSize,
	}
}

// AIConfig converts the section into an ai.Config. Zero and negative values
// fall back to defaults.
func (a Agent) AIConfig() ai.Config {
	return ai.Config{
		VisionRange:           a.VisionRange,
		VisionAngle:           a.VisionAngle,
		AttackRange:           a.AttackRange,
		SearchRadius:          a.SearchRadius,
		SearchWaitTime:        a.SearchWaitTime,
		PatrolWait:            a.PatrolWait,
		ArriveDistance:        a.ArriveDistance,
		SampleTolerance:       a.SampleTolerance,
		BoundedSearchSampling: a.BoundedSearchSampling,
		TargetTag:             a.TargetTag,
		PatrolPoints:          append([]model.Vec3(nil), a.PatrolPoints...),
		PatrolAreaCenter:      a.PatrolAreaCenter,
		PatrolAreaSize:        a.PatrolAreaSize,
	}.WithDefaults()
}

// AgentFor returns the agent section for one spawned agent: the shared
// section with the entry's override keys applied on top.
func (w Warden) AgentFor(entry AgentSpawn) (Agent, error) {
	agent := w.Agent
	agent.PatrolPoints = append([]model.Vec3(nil), w.Agent.PatrolPoints...)

	if entry.Override.Kind == 0 {
		return agent, nil
	}
	if err := entry.Override.Decode(&agent); err != nil {
		return agent, fmt.Errorf("decoding override for agent %d: %w", entry.ID, err)
	}
	return agent, nil
}
