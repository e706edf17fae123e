package config

import (
	"gopkg.in/yaml.v3"

	"github.com/udisondev/warden/internal/model"
)

// World describes the reference world: a walkable grid, its walls, the
// agents and the target they hunt.
type World struct {
	Width    int32   `yaml:"width"`
	Height   int32   `yaml:"height"` // cells along Z
	CellSize float64 `yaml:"cell_size"`

	Walls  []Cell       `yaml:"walls"`
	Agents []AgentSpawn `yaml:"agents"`
	Target TargetSpawn  `yaml:"target"`
}

// Cell is a grid cell coordinate.
type Cell struct {
	X int32 `yaml:"x"`
	Z int32 `yaml:"z"`
}

// AgentSpawn places one enemy AI.
type AgentSpawn struct {
	ID      uint32     `yaml:"id"`
	Spawn   model.Vec3 `yaml:"spawn"`
	Forward model.Vec3 `yaml:"forward"` // zero = +Z
	Speed   float64    `yaml:"speed"`

	// Override holds agent section keys that replace the shared ones.
	Override yaml.Node `yaml:"override"`
}

// TargetSpawn places the tagged target entity.
type TargetSpawn struct {
	Spawn  model.Vec3   `yaml:"spawn"`
	Speed  float64      `yaml:"speed"`
	Route  []model.Vec3 `yaml:"route"` // looped; empty = stationary
	Radius float64      `yaml:"radius"`
}

// DefaultWorld returns a 40x40 open grid with one sentry and a stationary target.
func DefaultWorld() World {
	return World{
		Width:    40,
		Height:   40,
		CellSize: 1,
		Agents: []AgentSpawn{
			{
				ID:    1,
				Spawn: model.NewVec3(5.5, 0, 5.5),
				Speed: 3.5,
			},
		},
		Target: TargetSpawn{
			Spawn:  model.NewVec3(30.5, 0, 30.5),
			Speed:  2,
			Radius: 0.5,
		},
	}
}
