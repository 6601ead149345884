package worldgen

// Direction enumerates the four cardinal neighbor directions in the fixed
// scan order the determinism contract requires (spec.md §5(c)): N, E, S, W.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Rect is an inclusive-exclusive axis-aligned region: x in [XMin,XMax),
// y in [YMin,YMax).
type Rect struct {
	XMin, XMax, YMin, YMax int
}

func (r Rect) clip(w, h int) Rect {
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return Rect{
		XMin: clamp(r.XMin, 0, w),
		XMax: clamp(r.XMax, 0, w),
		YMin: clamp(r.YMin, 0, h),
		YMax: clamp(r.YMax, 0, h),
	}
}

// Grid is the fixed W x H array of cells for one generation run.
type Grid struct {
	W, H  int
	cells []*Cell
	ts    *TileSet
}

// NewGrid allocates a W x H grid where every cell starts with every
// tileset id possible, weighted by the tileset's base weights.
func NewGrid(w, h int, ts *TileSet) *Grid {
	g := &Grid{W: w, H: h, ts: ts, cells: make([]*Cell, w*h)}
	all := ts.All()
	for i := range g.cells {
		g.cells[i] = newCell(all, ts)
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x,y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Cell returns the cell at (x,y). Caller must ensure InBounds.
func (g *Grid) Cell(x, y int) *Cell { return g.cells[g.index(x, y)] }

// NeighborCoord is an in-bounds neighbor position and the direction it
// lies in relative to the origin cell.
type NeighborCoord struct {
	X, Y int
	Dir  Direction
}

// Neighbors returns up to four in-bounds neighbors of (x,y) in fixed
// N, E, S, W order.
func (g *Grid) Neighbors(x, y int) []NeighborCoord {
	candidates := []NeighborCoord{
		{X: x, Y: y - 1, Dir: North},
		{X: x + 1, Y: y, Dir: East},
		{X: x, Y: y + 1, Dir: South},
		{X: x - 1, Y: y, Dir: West},
	}
	out := make([]NeighborCoord, 0, 4)
	for _, n := range candidates {
		if g.InBounds(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

// SeedCell force-collapses a cell, used to seed terrain from a WorldSeed.
func (g *Grid) SeedCell(x, y int, id TileID) {
	g.Cell(x, y).ForceCollapse(id)
}

// ApplyRegionModifiers multiplies the weight of each id in multipliers, in
// every uncollapsed cell within rect (clipped to grid bounds). Multipliers
// below 1 suppress a tile, above 1 favor it; they never remove a tile from
// a cell's possibilities.
func (g *Grid) ApplyRegionModifiers(rect Rect, multipliers map[TileID]float64) {
	r := rect.clip(g.W, g.H)
	for y := r.YMin; y < r.YMax; y++ {
		for x := r.XMin; x < r.XMax; x++ {
			cell := g.Cell(x, y)
			if cell.Collapsed() {
				continue
			}
			for id, mult := range multipliers {
				cell.MultiplyWeight(id, mult)
			}
		}
	}
}

// ApplyGridModifiers multiplies weights across every uncollapsed cell in
// the grid, used for biome-wide bias tables.
func (g *Grid) ApplyGridModifiers(multipliers map[TileID]float64) {
	g.ApplyRegionModifiers(Rect{XMin: 0, XMax: g.W, YMin: 0, YMax: g.H}, multipliers)
}

// SetWeights replaces (not multiplies) the given weight assignments on a
// single cell. The Engine's slider pass uses SetWeightsRegion instead.
func (g *Grid) SetWeights(x, y int, assignments map[TileID]float64) {
	cell := g.Cell(x, y)
	for id, w := range assignments {
		cell.SetWeight(id, w)
	}
}

// SetWeightsRegion replaces (not multiplies) weights on every uncollapsed
// cell in rect; used by the Engine's global slider pass (spec.md §4.6
// step 5), which must overwrite rather than stack on top of zone/biome
// multipliers.
func (g *Grid) SetWeightsRegion(rect Rect, assignments map[TileID]float64) {
	r := rect.clip(g.W, g.H)
	for y := r.YMin; y < r.YMax; y++ {
		for x := r.XMin; x < r.XMax; x++ {
			cell := g.Cell(x, y)
			if cell.Collapsed() {
				continue
			}
			for id, w := range assignments {
				cell.SetWeight(id, w)
			}
		}
	}
}

// AllCollapsed reports whether every cell in the grid has settled.
func (g *Grid) AllCollapsed() bool {
	for _, c := range g.cells {
		if !c.Collapsed() {
			return false
		}
	}
	return true
}

// CountUncollapsed returns the number of cells not yet collapsed.
func (g *Grid) CountUncollapsed() int {
	n := 0
	for _, c := range g.cells {
		if !c.Collapsed() {
			n++
		}
	}
	return n
}

// TileSet returns the catalog this grid was built against.
func (g *Grid) TileSet() *TileSet { return g.ts }
