package worldgen

// Overlay records structure/road stamps applied on top of a collapsed
// terrain grid. Phases 2-3 never touch the WFC TileID space directly:
// the full catalog's structure tiles (market, dock, castle_wall, ...)
// have no bits in the terrain-only bitset the solver runs over, so
// stamping instead layers string-keyed overrides that take precedence
// over the underlying collapsed tile at output time.
type Overlay struct {
	w, h  int
	kinds map[[2]int]TileKind
}

// NewOverlay creates an empty overlay for a w x h grid.
func NewOverlay(w, h int) *Overlay {
	return &Overlay{w: w, h: h, kinds: make(map[[2]int]TileKind)}
}

// Set stamps kind at (x,y), replacing whatever was there before
// (terrain or an earlier stamp).
func (o *Overlay) Set(x, y int, kind TileKind) {
	if x < 0 || x >= o.w || y < 0 || y >= o.h {
		return
	}
	o.kinds[[2]int{x, y}] = kind
}

// Get returns the stamp at (x,y), if any.
func (o *Overlay) Get(x, y int) (TileKind, bool) {
	k, ok := o.kinds[[2]int{x, y}]
	return k, ok
}

// EffectiveKind returns the overlay stamp at (x,y) if present, otherwise
// the terrain TileKind the grid collapsed to there.
func (o *Overlay) EffectiveKind(grid *Grid, x, y int) TileKind {
	if k, ok := o.Get(x, y); ok {
		return k
	}
	id, _ := grid.Cell(x, y).Tile()
	return grid.TileSet().Kind(id)
}

// EffectiveID is a convenience wrapper around EffectiveKind for
// allow-list membership checks.
func (o *Overlay) EffectiveID(grid *Grid, x, y int) string {
	return o.EffectiveKind(grid, x, y).ID
}
