// Package runs manages generation-run lifecycle: starting one
// worldgen.Generate call per request on its own goroutine, tracking its
// status, and wiring its progress callback to whatever broadcaster and
// persistence layer the caller supplied. It plays the role the teacher's
// game.Manager plays for ticking games, adapted to a one-shot run instead
// of a long-lived simulation.
package runs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/worldforge/mapgen/internal/config"
	"github.com/worldforge/mapgen/internal/db"
	"github.com/worldforge/mapgen/internal/worldgen"
)

// Status mirrors the run's lifecycle as seen by a viewer.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Broadcaster publishes a run's progress/result to its watchers. ws.Hub
// implements it.
type Broadcaster interface {
	BroadcastToRun(runID uuid.UUID, message interface{})
}

// Run tracks one in-flight or finished generation.
type Run struct {
	ID        uuid.UUID
	RNGSeed   int64
	WorldSeed worldgen.WorldSeed
	Status    Status
	Map       *worldgen.Map
	Err       error
	CreatedAt time.Time

	cancel context.CancelFunc
}

// Manager owns every run started by this process.
type Manager struct {
	mu       sync.RWMutex
	runs     map[uuid.UUID]*Run
	cfg      config.WorldgenConfig
	hub      Broadcaster
	postgres *db.Postgres
}

// NewManager creates a run manager bound to the given worldgen defaults,
// broadcaster, and (optional) persistence layer.
func NewManager(cfg config.WorldgenConfig, hub Broadcaster, postgres *db.Postgres) *Manager {
	return &Manager{
		runs:     make(map[uuid.UUID]*Run),
		cfg:      cfg,
		hub:      hub,
		postgres: postgres,
	}
}

// StartOptions carries the per-request overrides a POST /api/runs body
// may supply on top of the Manager's worldgen defaults.
type StartOptions struct {
	RNGSeed        int64
	Sliders        *worldgen.TerrainOptions
	MaxBacktracks  int
	Animated       bool
	AnimationDelay time.Duration
}

// Start validates seed, registers a new Run, and launches its
// worldgen.Generate call on its own goroutine. It returns immediately with
// the run's id; callers poll GetRun or watch the run's websocket room.
func (m *Manager) Start(seed *worldgen.WorldSeed, opts StartOptions) (*Run, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	maxBacktracks := opts.MaxBacktracks
	if maxBacktracks <= 0 {
		maxBacktracks = m.cfg.MaxBacktracks
	}
	animationDelay := opts.AnimationDelay
	if animationDelay <= 0 {
		animationDelay = m.cfg.AnimationDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &Run{
		ID:        uuid.New(),
		RNGSeed:   opts.RNGSeed,
		WorldSeed: *seed,
		Status:    StatusRunning,
		CreatedAt: time.Now(),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.runs[run.ID] = run
	m.mu.Unlock()

	go m.generate(ctx, run, opts.Sliders, worldgen.GenerateOptions{
		MaxBacktracks:  maxBacktracks,
		Animated:       opts.Animated,
		AnimationDelay: animationDelay,
		Progress:       m.progressFunc(run.ID),
	})

	return run, nil
}

func (m *Manager) generate(ctx context.Context, run *Run, sliders *worldgen.TerrainOptions, opts worldgen.GenerateOptions) {
	result, err := worldgen.Generate(ctx, &run.WorldSeed, run.RNGSeed, sliders, opts)

	m.mu.Lock()
	switch {
	case err != nil && ctx.Err() != nil:
		run.Status = StatusCancelled
		run.Err = err
	case err != nil:
		run.Status = StatusFailed
		run.Err = err
	case !result.Success:
		run.Status = StatusFailed
		run.Map = result
	default:
		run.Status = StatusSucceeded
		run.Map = result
	}
	m.mu.Unlock()

	if m.hub != nil {
		m.hub.BroadcastToRun(run.ID, run.snapshot())
	}
	if m.postgres != nil {
		_ = m.postgres.SaveRun(context.Background(), &db.GenerationRun{
			ID:        run.ID,
			RNGSeed:   run.RNGSeed,
			WorldSeed: run.WorldSeed,
			Map:       run.Map,
			Status:    string(run.Status),
			CreatedAt: run.CreatedAt,
		})
	}
}

func (m *Manager) progressFunc(runID uuid.UUID) worldgen.ProgressFunc {
	return func(evt worldgen.ProgressEvent) {
		if m.hub != nil {
			m.hub.BroadcastToRun(runID, evt)
		}
	}
}

// GetRun returns a tracked run by id.
func (m *Manager) GetRun(id uuid.UUID) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Cancel signals a running generation's context to stop. A no-op if the
// run has already finished.
func (m *Manager) Cancel(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	if run.Status != StatusRunning {
		return nil
	}
	run.cancel()
	return nil
}

// snapshot returns a JSON-friendly copy of a run's current state.
func (r *Run) snapshot() map[string]interface{} {
	out := map[string]interface{}{
		"id":     r.ID,
		"status": r.Status,
	}
	if r.Map != nil {
		out["map"] = r.Map
	}
	if r.Err != nil {
		out["error"] = r.Err.Error()
	}
	return out
}
