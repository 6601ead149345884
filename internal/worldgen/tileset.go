package worldgen

import "sort"

// TileID is the internal, fixed-width identifier for a tile kind. The
// public wire format (WorldSeed, Map) always uses the stable string in
// TileKind.ID; TileID only exists so Cell/Grid/Propagator can represent a
// possibility set as a bitset instead of a map/set of strings.
type TileID uint8

// TileIDSet is a bitset over TileID, one bit per kind. The catalog never
// exceeds 64 kinds, so a single uint64 suffices.
type TileIDSet uint64

func (s TileIDSet) has(id TileID) bool     { return s&(1<<id) != 0 }
func (s TileIDSet) with(id TileID) TileIDSet { return s | (1 << id) }
func (s TileIDSet) without(id TileID) TileIDSet { return s &^ (1 << id) }
func (s TileIDSet) count() int             { return popcount(uint64(s)) }
func (s TileIDSet) isEmpty() bool          { return s == 0 }

func popcount(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

func (s TileIDSet) ids() []TileID {
	out := make([]TileID, 0, s.count())
	for i := TileID(0); i < 64; i++ {
		if s.has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Category classifies a TileKind for zone-bias multiplier tables and
// aggregate statistics (spec invariant 6: forest-category / grass-category
// aggregate thresholds).
type Category string

const (
	CategoryWater     Category = "water"
	CategoryWetland   Category = "wetland"
	CategoryShoreline Category = "shoreline"
	CategoryTerrain   Category = "terrain"
	CategoryForest    Category = "forest"
	CategoryHighland  Category = "highland"
	CategoryRoad      Category = "road"
	CategoryBuilding  Category = "building"
	CategoryFarm      Category = "farm"
	CategorySpecial   Category = "special"
)

// TileKind is the immutable description of one tile type.
type TileKind struct {
	ID       string
	Weight   float64
	Walkable bool
	Height   int
	Category Category

	Tree     bool
	TreeType string
	Flowers  bool

	DisplayColor      string
	SegmentationColor string
}

// CatalogMode selects which of the two catalogs TileSet.Build constructs.
type CatalogMode int

const (
	TerrainOnly CatalogMode = iota
	Full
)

// catalogSpec is the raw declarative input to TileSet.Build: the kinds and
// the symmetric adjacency pairs between their string ids. Declaring a
// pair once, in either order, is enough; Build symmetrizes and validates.
type catalogSpec struct {
	kinds     []TileKind
	adjacency [][2]string
}

// TileSet is the immutable, validated catalog of tile kinds and their
// adjacency relation for one run.
type TileSet struct {
	mode      CatalogMode
	kinds     []TileKind       // indexed by TileID
	byID      map[string]TileID
	adjacency []TileIDSet      // indexed by TileID: mask of permitted neighbors
	order     []TileID         // stable iteration order (declaration order)
}

// BuildTileSet validates and constructs a TileSet from the given mode's
// catalog spec. It returns *TileCatalogError if the catalog is empty or
// exceeds 64 kinds, any weight is non-positive, a tile id is duplicated,
// or any adjacency pair references an unknown id. Adjacency is symmetric
// by construction, so it is never rejected as asymmetric.
func BuildTileSet(mode CatalogMode) (*TileSet, error) {
	spec := terrainCatalogSpec()
	if mode == Full {
		spec = fullCatalogSpec()
	}
	return buildFromSpec(mode, spec)
}

func buildFromSpec(mode CatalogMode, spec catalogSpec) (*TileSet, error) {
	if len(spec.kinds) == 0 {
		return nil, &TileCatalogError{Reason: "catalog has no tile kinds"}
	}
	if len(spec.kinds) > 64 {
		return nil, &TileCatalogError{Reason: "catalog exceeds 64 tile kinds, bitset overflow"}
	}

	ts := &TileSet{
		mode:      mode,
		kinds:     make([]TileKind, len(spec.kinds)),
		byID:      make(map[string]TileID, len(spec.kinds)),
		adjacency: make([]TileIDSet, len(spec.kinds)),
		order:     make([]TileID, len(spec.kinds)),
	}

	for i, k := range spec.kinds {
		if k.Weight <= 0 {
			return nil, &TileCatalogError{Reason: "tile kind has non-positive weight", TileID: k.ID}
		}
		if _, dup := ts.byID[k.ID]; dup {
			return nil, &TileCatalogError{Reason: "duplicate tile id", TileID: k.ID}
		}
		id := TileID(i)
		ts.kinds[id] = k
		ts.byID[k.ID] = id
		ts.order[i] = id
	}

	// Each declared pair names an unordered, symmetric relation: declaring
	// (a, b) once is declaring both a~b and b~a, so the adjacency bitset
	// is symmetric by construction rather than by a separate check.
	for _, pair := range spec.adjacency {
		a, ok := ts.byID[pair[0]]
		if !ok {
			return nil, &TileCatalogError{Reason: "adjacency references unknown tile id", TileID: pair[0]}
		}
		b, ok := ts.byID[pair[1]]
		if !ok {
			return nil, &TileCatalogError{Reason: "adjacency references unknown tile id", TileID: pair[1]}
		}
		ts.adjacency[a] = ts.adjacency[a].with(b)
		ts.adjacency[b] = ts.adjacency[b].with(a)
	}

	return ts, nil
}

// Mode returns which catalog this TileSet represents.
func (ts *TileSet) Mode() CatalogMode { return ts.mode }

// IDs returns every TileID in stable declaration order.
func (ts *TileSet) IDs() []TileID { return ts.order }

// Kind returns the TileKind for an internal TileID.
func (ts *TileSet) Kind(id TileID) TileKind { return ts.kinds[id] }

// Lookup resolves a stable string id to its internal TileID.
func (ts *TileSet) Lookup(stringID string) (TileID, bool) {
	id, ok := ts.byID[stringID]
	return id, ok
}

// MustLookup panics if stringID is not in the catalog; for call sites that
// only ever reference catalog-baked constants.
func (ts *TileSet) MustLookup(stringID string) TileID {
	id, ok := ts.byID[stringID]
	if !ok {
		panic("worldgen: unknown tile id " + stringID)
	}
	return id
}

// All returns the full possibility set: every TileID this catalog knows.
func (ts *TileSet) All() TileIDSet {
	var s TileIDSet
	for _, id := range ts.order {
		s = s.with(id)
	}
	return s
}

// NeighborsOf returns the set of tile ids permitted adjacent to id.
func (ts *TileSet) NeighborsOf(id TileID) TileIDSet { return ts.adjacency[id] }

// CanBeAdjacent reports whether a and b may sit in 4-neighborhood.
func (ts *TileSet) CanBeAdjacent(a, b TileID) bool { return ts.adjacency[a].has(b) }

// BaseWeight returns the catalog weight for id.
func (ts *TileSet) BaseWeight(id TileID) float64 { return ts.kinds[id].Weight }

// IDsByCategory returns every TileID whose kind matches category, sorted
// for deterministic iteration.
func (ts *TileSet) IDsByCategory(category Category) []TileID {
	var out []TileID
	for _, id := range ts.order {
		if ts.kinds[id].Category == category {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
