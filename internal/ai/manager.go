package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the tick period used when none is given.
const DefaultTickInterval = 100 * time.Millisecond

// StepFunc advances an external collaborator by dt (e.g. the navigation engine).
type StepFunc func(dt time.Duration)

// TickManager manages AI ticks for all registered agents
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller — agentID → controller
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	controllerCount atomic.Int32 // cached count of controllers (O(1) access)
	ticks           atomic.Uint64

	// Hooks run on the ticking goroutine: beforeTick ahead of controllers, afterTick after them.
	beforeTick StepFunc
	afterTick  func(tick uint64)
}

// NewTickManager creates new AI tick manager. interval <= 0 uses DefaultTickInterval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Interval returns the tick period.
func (m *TickManager) Interval() time.Duration {
	return m.interval
}

// SetBeforeTick sets a hook that runs before controllers on every tick.
// Must be called before Start/Advance.
func (m *TickManager) SetBeforeTick(fn StepFunc) {
	m.beforeTick = fn
}

// SetAfterTick sets a hook that runs after controllers on every tick.
// Must be called before Start/Advance.
func (m *TickManager) SetAfterTick(fn func(tick uint64)) {
	m.afterTick = fn
}

// Register registers AI controller for agent
func (m *TickManager) Register(agentID uint32, controller Controller) {
	if _, loaded := m.controllers.Swap(agentID, controller); !loaded {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("AI controller registered",
		"agentID", agentID,
		"state", controller.State())
}

// Unregister unregisters AI controller
func (m *TickManager) Unregister(agentID uint32) {
	value, ok := m.controllers.LoadAndDelete(agentID)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("AI controller unregistered", "agentID", agentID)
}

// Start starts AI tick loop (blocks until context is canceled or Stop is called).
// Every tick advances the simulation by the fixed interval.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case <-ticker.C:
			m.Advance(m.interval)
		}
	}
}

// Stop stops AI tick loop
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Advance runs one tick of dt synchronously: beforeTick, every controller, afterTick.
// Used directly for headless fast-forward; must not run concurrently with Start.
func (m *TickManager) Advance(dt time.Duration) {
	if m.beforeTick != nil {
		m.beforeTick(dt)
	}

	count := m.tickAll(dt)
	tick := m.ticks.Add(1)

	if m.afterTick != nil {
		m.afterTick(tick)
	}

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "tick", tick, "controllers", count)
	}
}

// Ticks returns the number of ticks run so far.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// tickAll ticks all registered controllers
func (m *TickManager) tickAll(dt time.Duration) int {
	count := 0

	m.controllers.Range(func(key, value any) bool {
		controller := value.(Controller)
		controller.Tick(dt)
		count++
		return true
	})

	return count
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns controller for agent
func (m *TickManager) GetController(agentID uint32) (Controller, error) {
	value, ok := m.controllers.Load(agentID)
	if !ok {
		return nil, fmt.Errorf("controller not found for agentID %d", agentID)
	}
	return value.(Controller), nil
}
