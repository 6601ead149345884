package worldgen

// Phase identifies which generation stage a ProgressEvent was emitted
// from, per spec.md §6.3.
type Phase string

const (
	PhaseTerrain  Phase = "terrain"
	PhasePOIs     Phase = "pois"
	PhaseRoads    Phase = "roads"
	PhaseComplete Phase = "complete"
)

// ProgressEvent is the shape streamed to a caller-supplied callback, and
// over the wire on a progress transport (websocket, Redis pub/sub).
type ProgressEvent struct {
	Phase    Phase   `json:"phase"`
	Progress float64 `json:"progress"` // 0..100
	Message  string  `json:"message"`
}

// ProgressFunc receives progress events at bounded frequency (spec.md
// §4.5: at most one required every 64 collapses or 16ms of wall time;
// more frequent is permitted but callers should not rely on it). It must
// not block for long — it runs on the solver's own goroutine.
type ProgressFunc func(ProgressEvent)
