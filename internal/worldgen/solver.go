package worldgen

import (
	"container/heap"
	"context"
	"errors"
	"time"
)

// SolverStatus is the outcome of a Solver.Run call.
type SolverStatus string

const (
	StatusRunning   SolverStatus = "running"
	StatusSucceeded SolverStatus = "succeeded"
	StatusFailed    SolverStatus = "failed"
	StatusCancelled SolverStatus = "cancelled"
)

// DefaultMaxBacktracks is the backtrack budget spec.md §4.5 names as the
// default before a solve gives up and the Engine falls back to recovery.
const DefaultMaxBacktracks = 500

// SolverOptions configures one Solver.Run call.
type SolverOptions struct {
	MaxBacktracks     int
	ProgressEvery     int           // collapses between progress events (spec: 64)
	ProgressInterval  time.Duration // wall-time between progress events (spec: 16ms)
	Progress          ProgressFunc
	Animated          bool
	AnimationDelay    time.Duration
}

// DefaultSolverOptions returns the spec.md defaults.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxBacktracks:    DefaultMaxBacktracks,
		ProgressEvery:    64,
		ProgressInterval: 16 * time.Millisecond,
	}
}

// heapItem is one candidate in the entropy min-heap. count records the
// cell's possibility-set size at push time, so a pop can detect a stale
// entry (the cell changed since) without recomputing entropy for every
// live candidate on every pop.
type heapItem struct {
	x, y    int
	entropy float64
	count   int
}

type entropyQueue []heapItem

func (q entropyQueue) Len() int            { return len(q) }
func (q entropyQueue) Less(i, j int) bool  { return q[i].entropy < q[j].entropy }
func (q entropyQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *entropyQueue) Push(x interface{}) { *q = append(*q, x.(heapItem)) }
func (q *entropyQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// snapshotEntry is one entry on the backtrack stack: the cell that was
// collapsed, the tile chosen (to ban on rollback), its pre-collapse state,
// and the propagation diff that followed.
type snapshotEntry struct {
	x, y       int
	chosen     TileID
	selfBefore cellDiff
	propDiff   []cellDiff
}

// Solver drives WFC to completion over a grid, given a bound Propagator
// and the engine's shared RNG.
type Solver struct {
	grid  *Grid
	prop  *Propagator
	rng   *RNG
	queue entropyQueue

	snapshots  []snapshotEntry
	backtracks int
	iterations int
}

// NewSolver creates a solver bound to grid, using prop for propagation and
// rng for every weighted choice. The heap is seeded with every
// not-yet-collapsed cell.
func NewSolver(grid *Grid, prop *Propagator, rng *RNG) *Solver {
	s := &Solver{grid: grid, prop: prop, rng: rng}
	heap.Init(&s.queue)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			s.pushCandidate(x, y)
		}
	}
	return s
}

func (s *Solver) pushCandidate(x, y int) {
	cell := s.grid.Cell(x, y)
	if cell.Collapsed() {
		return
	}
	e := cell.Entropy(s.rng)
	heap.Push(&s.queue, heapItem{x: x, y: y, entropy: e, count: cell.Possibilities().count()})
}

// selectMinEntropyCell pops lazily-stale entries until it finds a genuine
// minimum-entropy uncollapsed cell, or the heap drains (meaning every cell
// is collapsed: success).
func (s *Solver) selectMinEntropyCell() (x, y int, ok bool) {
	for s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(heapItem)
		cell := s.grid.Cell(item.x, item.y)
		if cell.Collapsed() {
			continue
		}
		if cell.Possibilities().count() != item.count {
			// Stale: possibilities shrank since this entry was pushed.
			// Recompute and push a fresh entry, keep looking.
			s.pushCandidate(item.x, item.y)
			continue
		}
		return item.x, item.y, true
	}
	return 0, 0, false
}

func (s *Solver) requeueTouched(diff []cellDiff) {
	for _, d := range diff {
		s.pushCandidate(d.x, d.y)
	}
}

// Backtracks returns the number of contradictions handled so far.
func (s *Solver) Backtracks() int { return s.backtracks }

// Iterations returns the number of collapse attempts performed so far.
func (s *Solver) Iterations() int { return s.iterations }

// Run executes the main WFC loop (spec.md §4.5) until success, failure
// (backtrack budget exhausted or the backtrack stack empties), or
// cancellation via ctx.
func (s *Solver) Run(ctx context.Context, opts SolverOptions) SolverStatus {
	if opts.MaxBacktracks <= 0 {
		opts.MaxBacktracks = DefaultMaxBacktracks
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = 64
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 16 * time.Millisecond
	}

	total := s.grid.W * s.grid.H
	lastEmit := time.Time{}

	for {
		if ctx.Err() != nil {
			return StatusCancelled
		}

		x, y, ok := s.selectMinEntropyCell()
		if !ok {
			s.emitProgress(opts, total, total, "solve complete")
			return StatusSucceeded
		}

		before := captureCellDiff(s.grid, x, y)
		chosen := s.grid.Cell(x, y).Collapse(s.rng)
		propDiff, err := s.prop.Propagate(x, y)
		s.snapshots = append(s.snapshots, snapshotEntry{
			x: x, y: y, chosen: chosen, selfBefore: before, propDiff: propDiff,
		})
		s.iterations++

		if err != nil {
			var contradiction *ContradictionError
			if !errors.As(err, &contradiction) {
				return StatusFailed
			}
			s.backtracks++
			if s.backtracks > opts.MaxBacktracks {
				return StatusFailed
			}
			if !s.backtrackOnce() {
				return StatusFailed
			}
			continue
		}

		s.requeueTouched(propDiff)

		if s.iterations%opts.ProgressEvery == 0 || time.Since(lastEmit) >= opts.ProgressInterval {
			collapsed := total - s.grid.CountUncollapsed()
			s.emitProgress(opts, collapsed, total, "")
			lastEmit = time.Now()
		}

		if opts.Animated && opts.AnimationDelay > 0 {
			select {
			case <-ctx.Done():
				return StatusCancelled
			case <-time.After(opts.AnimationDelay):
			}
		}
	}
}

func (s *Solver) emitProgress(opts SolverOptions, collapsed, total int, message string) {
	if opts.Progress == nil {
		return
	}
	fraction := 0.0
	if total > 0 {
		fraction = float64(collapsed) / float64(total) * 100
	}
	opts.Progress(ProgressEvent{Phase: PhaseTerrain, Progress: fraction, Message: message})
}

// backtrackOnce pops the most recent snapshot, restores the grid to
// before that collapse, and bans the tile that was tried. If the
// restored cell now has no possibilities left, it cascades to the next
// older snapshot. Returns false once the snapshot stack is exhausted
// without finding a non-empty restoration — a genuine dead end.
func (s *Solver) backtrackOnce() bool {
	for {
		if len(s.snapshots) == 0 {
			return false
		}
		snap := s.snapshots[len(s.snapshots)-1]
		s.snapshots = s.snapshots[:len(s.snapshots)-1]

		s.prop.RestoreDiff(snap.propDiff)
		restoreCellFromDiff(s.grid, snap.selfBefore)
		s.requeueTouched(snap.propDiff)

		cell := s.grid.Cell(snap.x, snap.y)
		cell.possibilities = cell.possibilities.without(snap.chosen)
		s.pushCandidate(snap.x, snap.y)

		if !cell.possibilities.isEmpty() {
			return true
		}
		// This cell is itself now contradictory with nothing left to try;
		// its own parent snapshot must be undone too.
	}
}
