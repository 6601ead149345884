package worldgen

// ContradictionError is returned by the propagator when some cell's
// possibility set has emptied. It never escapes the Solver to a caller
// (spec.md §7): the Solver consumes it and backtracks.
type ContradictionError struct {
	X, Y int
}

func (e *ContradictionError) Error() string {
	return "worldgen: contradiction"
}

type coord struct{ x, y int }

// Propagator restricts neighbor possibilities after a cell change,
// transitively, via a FIFO worklist (spec.md §4.4). One Propagator is
// reused across an entire solve; each call to Propagate/PropagateAll
// clears the queue state left by the previous call before it starts.
type Propagator struct {
	grid    *Grid
	queue   []coord
	inQueue map[coord]bool

	// diff accumulates the cells touched during the most recent
	// Propagate/PropagateAll call, in visitation order, so the Solver can
	// build a compact snapshot instead of cloning the whole grid.
	diff []cellDiff
}

type cellDiff struct {
	x, y              int
	prevPossibilities TileIDSet
	prevWeights       map[TileID]float64
	prevCollapsed     bool
	prevTile          TileID
	prevHasTile       bool
}

// NewPropagator creates a propagator bound to grid.
func NewPropagator(grid *Grid) *Propagator {
	return &Propagator{grid: grid, inQueue: make(map[coord]bool)}
}

func (p *Propagator) enqueue(x, y int) {
	c := coord{x, y}
	if p.inQueue[c] {
		return
	}
	p.inQueue[c] = true
	p.queue = append(p.queue, c)
}

func (p *Propagator) snapshotBefore(x, y int) {
	p.diff = append(p.diff, captureCellDiff(p.grid, x, y))
}

// captureCellDiff records enough of a cell's current state to restore it
// later: possibilities, a copy of its weight overrides, and collapse
// state.
func captureCellDiff(grid *Grid, x, y int) cellDiff {
	cell := grid.Cell(x, y)
	weights := make(map[TileID]float64, len(cell.weights))
	for k, v := range cell.weights {
		weights[k] = v
	}
	return cellDiff{
		x: x, y: y,
		prevPossibilities: cell.possibilities,
		prevWeights:       weights,
		prevCollapsed:     cell.collapsed,
		prevTile:          cell.tile,
		prevHasTile:       cell.hasTile,
	}
}

// restoreCellFromDiff applies a single captured cellDiff back onto the
// grid, undoing whatever changed since it was captured.
func restoreCellFromDiff(grid *Grid, d cellDiff) {
	cell := grid.Cell(d.x, d.y)
	cell.possibilities = d.prevPossibilities
	cell.weights = d.prevWeights
	cell.collapsed = d.prevCollapsed
	cell.tile = d.prevTile
	cell.hasTile = d.prevHasTile
}

// Propagate seeds the worklist with (x,y) and runs AC-3 to a fixed point,
// or until a contradiction is found. It returns the diff log covering
// every cell touched, so the Solver can snapshot only dirty cells.
func (p *Propagator) Propagate(x, y int) ([]cellDiff, error) {
	p.reset()
	p.enqueue(x, y)
	return p.run()
}

// PropagateAll seeds the worklist with every already-collapsed cell, used
// once at the start of a solve for cells pre-seeded from the WorldSeed.
func (p *Propagator) PropagateAll() ([]cellDiff, error) {
	p.reset()
	for y := 0; y < p.grid.H; y++ {
		for x := 0; x < p.grid.W; x++ {
			if p.grid.Cell(x, y).Collapsed() {
				p.enqueue(x, y)
			}
		}
	}
	return p.run()
}

func (p *Propagator) reset() {
	p.queue = p.queue[:0]
	for k := range p.inQueue {
		delete(p.inQueue, k)
	}
	p.diff = nil
}

func (p *Propagator) run() ([]cellDiff, error) {
	for len(p.queue) > 0 {
		c := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.inQueue, c)

		cell := p.grid.Cell(c.x, c.y)
		allowedByPossibility := make(map[Direction]TileIDSet, 4)
		// Precompute, for each neighbor direction actually present, the
		// union of permitted neighbor tiles across this cell's current
		// possibilities.
		for _, n := range p.grid.Neighbors(c.x, c.y) {
			if _, ok := allowedByPossibility[n.Dir]; ok {
				continue
			}
			var allowed TileIDSet
			for _, t := range cell.possibilities.ids() {
				allowed |= p.grid.ts.NeighborsOf(t)
			}
			allowedByPossibility[n.Dir] = allowed
		}

		for _, n := range p.grid.Neighbors(c.x, c.y) {
			allowed := allowedByPossibility[n.Dir]
			neighborCell := p.grid.Cell(n.X, n.Y)

			before := neighborCell.possibilities
			if before&allowed == before {
				continue // no-op constrain; skip diff + requeue entirely
			}

			p.snapshotBefore(n.X, n.Y)
			changed := neighborCell.Constrain(allowed)
			if !changed {
				continue
			}
			if !neighborCell.IsValid() {
				return p.diff, &ContradictionError{X: n.X, Y: n.Y}
			}
			p.enqueue(n.X, n.Y)
		}
	}
	return p.diff, nil
}

// RestoreDiff replays a diff log in reverse, undoing every cell change it
// recorded. Used by the Solver to roll back a failed branch without
// re-cloning the whole grid.
func (p *Propagator) RestoreDiff(diff []cellDiff) {
	for i := len(diff) - 1; i >= 0; i-- {
		restoreCellFromDiff(p.grid, diff[i])
	}
}

// IsValidPlacement checks whether tentatively placing t at (x,y) is
// consistent with every already-collapsed neighbor, and leaves at least
// one compatible possibility for every uncollapsed neighbor (spec.md
// §4.4's placement validity helper).
func (p *Propagator) IsValidPlacement(x, y int, t TileID) bool {
	for _, n := range p.grid.Neighbors(x, y) {
		neighbor := p.grid.Cell(n.X, n.Y)
		if neighbor.Collapsed() {
			nt, _ := neighbor.Tile()
			if !p.grid.ts.CanBeAdjacent(t, nt) {
				return false
			}
			continue
		}
		if neighbor.Possibilities()&p.grid.ts.NeighborsOf(t) == 0 {
			return false
		}
	}
	return true
}
