package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Warden holds all configuration for the simulator.
type Warden struct {
	// Default tunables for every agent
	Agent Agent `yaml:"agent"`

	// Tick loop
	Sim Sim `yaml:"sim"`

	// Reference world (grid, walls, agents, target)
	World World `yaml:"world"`
}

// Sim holds tick loop and process settings.
type Sim struct {
	TickInterval time.Duration `yaml:"tick_interval"` // default: 100ms
	MaxTicks     uint64        `yaml:"max_ticks"`     // 0 = run until stopped
	Realtime     bool          `yaml:"realtime"`      // false = advance ticks back to back
	LogLevel     string        `yaml:"log_level"`     // debug, info, warn, error
	ObserverAddr string        `yaml:"observer_addr"` // empty = observer disabled
	Seed         uint64        `yaml:"seed"`          // search sampling seed
}

// DefaultSim returns Sim with a 100ms realtime tick and no observer.
func DefaultSim() Sim {
	return Sim{
		TickInterval: 100 * time.Millisecond,
		Realtime:     true,
		LogLevel:     "info",
		Seed:         1,
	}
}

// DefaultWarden returns Warden config with sensible defaults.
func DefaultWarden() Warden {
	return Warden{
		Agent: DefaultAgent(),
		Sim:   DefaultSim(),
		World: DefaultWorld(),
	}
}

// LoadWarden loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadWarden(path string) (Warden, error) {
	cfg := DefaultWarden()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
