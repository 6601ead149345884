package worldgen

import "math"

// Cell holds the superposition state of one grid position.
type Cell struct {
	possibilities TileIDSet
	weights       map[TileID]float64
	collapsed     bool
	tile          TileID
	hasTile       bool

	// noise is the tie-break term drawn once, the first time this cell's
	// entropy is computed, and reused afterward so repeated entropy
	// reads after a constrain stay deterministic (spec.md §9 REDESIGN
	// FLAGS: tie-break noise is drawn once per cell entry, not redrawn).
	noise    float64
	hasNoise bool
}

// newCell creates a cell whose possibilities are every id in all, seeded
// with base weights from the tileset.
func newCell(all TileIDSet, ts *TileSet) *Cell {
	weights := make(map[TileID]float64, all.count())
	for _, id := range all.ids() {
		weights[id] = ts.BaseWeight(id)
	}
	return &Cell{possibilities: all, weights: weights}
}

// Possibilities returns the current possibility set.
func (c *Cell) Possibilities() TileIDSet { return c.possibilities }

// Collapsed reports whether the cell has settled on a single tile.
func (c *Cell) Collapsed() bool { return c.collapsed }

// Tile returns the chosen tile id and whether the cell is collapsed.
func (c *Cell) Tile() (TileID, bool) { return c.tile, c.hasTile }

// IsValid reports whether the cell still has at least one possibility.
func (c *Cell) IsValid() bool { return !c.possibilities.isEmpty() }

// Weight returns the current per-cell weight for id, or 0 if the cell
// holds no weight entry for id. Entries are kept when a constrain removes
// id from the possibility set.
func (c *Cell) Weight(id TileID) float64 { return c.weights[id] }

// SetWeight replaces (not multiplies) the weight for id.
func (c *Cell) SetWeight(id TileID, w float64) { c.weights[id] = w }

// MultiplyWeight scales the weight for id by factor, leaving possibilities
// untouched even if the result suppresses the tile near zero.
func (c *Cell) MultiplyWeight(id TileID, factor float64) {
	if _, ok := c.weights[id]; ok {
		c.weights[id] *= factor
	}
}

// Entropy returns the weighted Shannon entropy of the remaining
// possibilities plus a tiny deterministic tie-break noise term, per
// spec.md §4.2: H = ln(Σw) - (Σ w·ln(w)) / Σw. Collapsed or singleton
// cells return 0.
func (c *Cell) Entropy(rng *RNG) float64 {
	if c.collapsed || c.possibilities.count() <= 1 {
		return 0
	}

	var sumW, sumWLnW float64
	for _, id := range c.possibilities.ids() {
		w := c.weights[id]
		if w <= 0 {
			continue
		}
		sumW += w
		sumWLnW += w * math.Log(w)
	}
	if sumW <= 0 {
		return 0
	}

	h := math.Log(sumW) - sumWLnW/sumW

	if !c.hasNoise {
		c.noise = rng.Float64() * 1e-3
		c.hasNoise = true
	}
	return h + c.noise
}

// Collapse performs a weighted sample over the remaining possibilities,
// sets the cell to that tile, and shrinks possibilities to the singleton.
func (c *Cell) Collapse(rng *RNG) TileID {
	ids := c.possibilities.ids()
	if len(ids) == 0 {
		panic("worldgen: collapse on cell with empty possibilities")
	}

	total := 0.0
	for _, id := range ids {
		total += c.weights[id]
	}

	pick := rng.Float64() * total
	var chosen TileID
	acc := 0.0
	chosen = ids[len(ids)-1]
	for _, id := range ids {
		acc += c.weights[id]
		if pick <= acc {
			chosen = id
			break
		}
	}

	c.settle(chosen)
	return chosen
}

// ForceCollapse unconditionally collapses the cell to id, used to seed
// cells from a WorldSeed (positioned POIs, road endpoints).
func (c *Cell) ForceCollapse(id TileID) {
	c.settle(id)
}

func (c *Cell) settle(id TileID) {
	c.tile = id
	c.hasTile = true
	c.collapsed = true
	c.possibilities = TileIDSet(0).with(id)
}

// Constrain removes any possibility not in allowed. It returns whether
// anything changed. If exactly one possibility remains afterward, the
// cell auto-collapses.
//
// A collapsed cell still intersects its singleton {tile} with allowed:
// if tile isn't in allowed, the intersection is empty, IsValid() goes
// false, and that must be reported as a change so the caller raises a
// contradiction. Only the shrink/auto-collapse side effects are skipped
// once a cell has already settled.
func (c *Cell) Constrain(allowed TileIDSet) bool {
	next := c.possibilities & allowed
	if next == c.possibilities {
		return false
	}
	c.possibilities = next

	if !c.collapsed && next.count() == 1 {
		for _, id := range next.ids() {
			c.settle(id)
		}
	}
	return true
}
