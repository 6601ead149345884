package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/worldforge/mapgen/internal/config"
	"github.com/worldforge/mapgen/internal/runs"
	"github.com/worldforge/mapgen/internal/worldgen"
	"github.com/worldforge/mapgen/internal/ws"
)

// Handler contains HTTP handler methods
type Handler struct {
	runManager *runs.Manager
	hub        *ws.Hub
	wsHandler  *ws.Handler
	cfg        *config.Config
}

// NewHandler creates a new API handler
func NewHandler(runManager *runs.Manager, hub *ws.Hub, cfg *config.Config) *Handler {
	h := &Handler{
		runManager: runManager,
		hub:        hub,
		cfg:        cfg,
	}
	h.wsHandler = ws.NewHandler(hub, &runStateAdapter{runManager})
	return h
}

// runStateAdapter adapts runs.Manager to ws.RunStateProvider
type runStateAdapter struct {
	manager *runs.Manager
}

func (a *runStateAdapter) GetRunState(runID uuid.UUID) (interface{}, error) {
	run, err := a.manager.GetRun(runID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":     run.ID,
		"status": run.Status,
		"map":    run.Map,
	}, nil
}

// Health returns server health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// createRunRequest is the POST /api/runs body: a WorldSeed plus the run's
// generation options (spec.md §6.4's invocation surface over the wire).
type createRunRequest struct {
	worldgen.WorldSeed
	RNGSeed          int64                    `json:"rng_seed"`
	Sliders          *worldgen.TerrainOptions `json:"sliders,omitempty"`
	MaxBacktracks    int                      `json:"max_backtracks,omitempty"`
	Animated         bool                     `json:"animated,omitempty"`
	AnimationDelayMs int                      `json:"animation_delay_ms,omitempty"`
}

// CreateRun starts a new generation run and returns its id immediately.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	seed := req.WorldSeed
	run, err := h.runManager.Start(&seed, runs.StartOptions{
		RNGSeed:        req.RNGSeed,
		Sliders:        req.Sliders,
		MaxBacktracks:  req.MaxBacktracks,
		Animated:       req.Animated,
		AnimationDelay: time.Duration(req.AnimationDelayMs) * time.Millisecond,
	})
	if err != nil {
		var invalid *worldgen.InvalidSeedError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"run_id": run.ID,
		"status": run.Status,
	})
}

// GetRun returns a run's current status, and its Map once finished.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	run, err := h.runManager.GetRun(runID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      run.ID,
		"status":  run.Status,
		"map":     run.Map,
		"viewers": h.hub.GetRunClientCount(runID),
	})
}

// CancelRun cancels a running generation.
func (h *Handler) CancelRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	if err := h.runManager.Cancel(runID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelling"})
}

// WebSocket upgrades a connection to stream a run's progress events.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	if _, err := h.runManager.GetRun(runID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.wsHandler.ServeWS(w, r, runID)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
