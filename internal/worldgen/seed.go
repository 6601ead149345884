package worldgen

// WorldSeed is the JSON-compatible input describing what to generate. It
// is immutable for the lifetime of a run: the Engine never writes back
// into it except to record resolved POI positions for phase 3 to consume.
type WorldSeed struct {
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Size           Size            `json:"size" yaml:"size"`
	Biome          Biome           `json:"biome" yaml:"biome"`
	VisualTheme    string          `json:"visualTheme,omitempty" yaml:"visualTheme,omitempty"`
	POIs           []POI           `json:"pois" yaml:"pois"`
	Connections    []Connection    `json:"connections" yaml:"connections"`
	RoadEndpoints  []RoadEndpoint  `json:"roadEndpoints,omitempty" yaml:"roadEndpoints,omitempty"`
	TerrainOptions *TerrainOptions `json:"terrainOptions,omitempty" yaml:"terrainOptions,omitempty"`
}

// Size is the grid's width and height in tiles.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Biome selects the whole-grid weight modifier table applied in phase 1
// step 4.
type Biome string

const (
	BiomeTemperate Biome = "temperate"
	BiomeTropical  Biome = "tropical"
	BiomeDesert    Biome = "desert"
	BiomeArctic    Biome = "arctic"
	BiomeVolcanic  Biome = "volcanic"
	BiomeCoastal   Biome = "coastal"
)

func (b Biome) valid() bool {
	switch b {
	case BiomeTemperate, BiomeTropical, BiomeDesert, BiomeArctic, BiomeVolcanic, BiomeCoastal:
		return true
	}
	return false
}

// POIType enumerates both settlement types (which stamp structures in
// phase 2) and terrain types (which only bias weights in phase 1).
type POIType string

const (
	POIVillage  POIType = "village"
	POICity     POIType = "city"
	POICastle   POIType = "castle"
	POIFarm     POIType = "farm"
	POITavern   POIType = "tavern"
	POITower    POIType = "tower"
	POIPort     POIType = "port"
	POIRuins    POIType = "ruins"
	POILake     POIType = "lake"
	POIForest   POIType = "forest"
	POIMountain POIType = "mountain"
	POISwamp    POIType = "swamp"
	POIPlains   POIType = "plains"
	POIHills    POIType = "hills"
)

var settlementTypes = map[POIType]bool{
	POIVillage: true, POICity: true, POICastle: true, POIFarm: true,
	POITavern: true, POITower: true, POIPort: true, POIRuins: true,
}

var terrainTypes = map[POIType]bool{
	POILake: true, POIForest: true, POIMountain: true, POISwamp: true,
	POIPlains: true, POIHills: true,
}

// IsSettlement reports whether this type stamps a built structure in
// phase 2, as opposed to only biasing terrain weights in phase 1.
func (t POIType) IsSettlement() bool { return settlementTypes[t] }

// IsTerrain reports whether this type is a zone-bias-only POI.
func (t POIType) IsTerrain() bool { return terrainTypes[t] }

func (t POIType) valid() bool { return settlementTypes[t] || terrainTypes[t] }

// POISize selects the scale of a settlement stamp pattern.
type POISize string

const (
	SizeSmall  POISize = "small"
	SizeMedium POISize = "medium"
	SizeLarge  POISize = "large"
)

// Position is a resolved or requested grid coordinate.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Region is a candidate-scan rectangle for a POI without a fixed
// position. XMax/YMax default to XMin/YMin (a single row/column) when
// omitted, matching the optional fields in the wire schema.
type Region struct {
	XMin int  `json:"x_min" yaml:"x_min"`
	XMax *int `json:"x_max,omitempty" yaml:"x_max,omitempty"`
	YMin int  `json:"y_min" yaml:"y_min"`
	YMax *int `json:"y_max,omitempty" yaml:"y_max,omitempty"`
}

func (r Region) resolved() (xMax, yMax int) {
	xMax = r.XMin
	if r.XMax != nil {
		xMax = *r.XMax
	}
	yMax = r.YMin
	if r.YMax != nil {
		yMax = *r.YMax
	}
	return xMax, yMax
}

// POI is one point or region of interest in a WorldSeed. Exactly one of
// Position or Region is set; Engine phase 2 resolves Region-based POIs
// to a Position and writes it back here for phase 3.
type POI struct {
	ID          string   `json:"id" yaml:"id"`
	Type        POIType  `json:"type" yaml:"type"`
	Name        string   `json:"name" yaml:"name"`
	Size        POISize  `json:"size,omitempty" yaml:"size,omitempty"`
	Position    *Position `json:"position,omitempty" yaml:"position,omitempty"`
	Region      *Region   `json:"region,omitempty" yaml:"region,omitempty"`
	Density     float64   `json:"density,omitempty" yaml:"density,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	VisualStyle string    `json:"visualStyle,omitempty" yaml:"visualStyle,omitempty"`

	// resolved is set by phase 2 once a concrete position is chosen, for
	// Region-backed POIs. Unexported: never round-trips through JSON, so
	// re-marshaling an input seed never leaks run-local state.
	resolved   Position
	hasResolved bool
}

// ResolvedPosition returns the position phase 2 stamped this POI at, for
// phase 3's connection/endpoint resolution.
func (p *POI) ResolvedPosition() (Position, bool) {
	if p.Position != nil {
		return *p.Position, true
	}
	if p.hasResolved {
		return p.resolved, true
	}
	return Position{}, false
}

func (p *POI) setResolved(pos Position) {
	p.resolved = pos
	p.hasResolved = true
}

// RoadStyle selects the tile kind a connection or endpoint carves with.
type RoadStyle string

const (
	StyleDirt  RoadStyle = "dirt"
	StyleStone RoadStyle = "stone"
)

func (s RoadStyle) orDefault() RoadStyle {
	if s == "" {
		return StyleDirt
	}
	return s
}

// Connection links two POIs by id with a road carved between their
// resolved positions in phase 3.
type Connection struct {
	From  string    `json:"from" yaml:"from"`
	To    string    `json:"to" yaml:"to"`
	Style RoadStyle `json:"style,omitempty" yaml:"style,omitempty"`
}

// EdgeDirection names one of eight compass points a RoadEndpoint
// resolves to a fixed border coordinate from.
type EdgeDirection string

const (
	DirN  EdgeDirection = "N"
	DirS  EdgeDirection = "S"
	DirE  EdgeDirection = "E"
	DirW  EdgeDirection = "W"
	DirNE EdgeDirection = "NE"
	DirNW EdgeDirection = "NW"
	DirSE EdgeDirection = "SE"
	DirSW EdgeDirection = "SW"
)

func (d EdgeDirection) valid() bool {
	switch d {
	case DirN, DirS, DirE, DirW, DirNE, DirNW, DirSE, DirSW:
		return true
	}
	return false
}

// RoadEndpoint describes a road entering the map from its edge, linked
// in phase 3 to whichever POI is nearest its resolved edge coordinate.
type RoadEndpoint struct {
	Direction   EdgeDirection `json:"direction" yaml:"direction"`
	Style       RoadStyle     `json:"style,omitempty" yaml:"style,omitempty"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// EdgeCoordinate resolves this endpoint's direction to a fixed border
// position on a w x h grid.
func (e RoadEndpoint) EdgeCoordinate(w, h int) Position {
	midX, midY := w/2, h/2
	switch e.Direction {
	case DirN:
		return Position{X: midX, Y: 0}
	case DirS:
		return Position{X: midX, Y: h - 1}
	case DirE:
		return Position{X: w - 1, Y: midY}
	case DirW:
		return Position{X: 0, Y: midY}
	case DirNE:
		return Position{X: w - 1, Y: 0}
	case DirNW:
		return Position{X: 0, Y: 0}
	case DirSE:
		return Position{X: w - 1, Y: h - 1}
	case DirSW:
		return Position{X: 0, Y: h - 1}
	}
	return Position{X: midX, Y: midY}
}

// TerrainOptions carries the slider settings applied last in phase 1.
type TerrainOptions struct {
	ForestDensity float64 `json:"forestDensity" yaml:"forestDensity"`
	WaterLevel    float64 `json:"waterLevel" yaml:"waterLevel"`
	VillageCount  int     `json:"villageCount" yaml:"villageCount"`
}

func defaultTerrainOptions() TerrainOptions {
	return TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 3}
}

// Validate enforces every rule a WorldSeed must satisfy before a run may
// start. It never mutates the seed; Region clipping happens against the
// already-validated Size during phase 1, not here.
func (s *WorldSeed) Validate() error {
	if s.Size.Width < 4 || s.Size.Height < 4 {
		return &InvalidSeedError{Field: "size", Reason: "width and height must be >= 4"}
	}
	if !s.Biome.valid() {
		return &InvalidSeedError{Field: "biome", Reason: "unrecognized biome " + string(s.Biome)}
	}

	seenIDs := make(map[string]bool, len(s.POIs))
	for i, p := range s.POIs {
		if p.ID == "" {
			return &InvalidSeedError{Field: "pois", Reason: "poi at index has empty id"}
		}
		if seenIDs[p.ID] {
			return &InvalidSeedError{Field: "pois", Reason: "duplicate poi id " + p.ID}
		}
		seenIDs[p.ID] = true

		if !p.Type.valid() {
			return &InvalidSeedError{Field: "pois." + p.ID, Reason: "unrecognized poi type " + string(p.Type)}
		}
		hasPosition := p.Position != nil
		hasRegion := p.Region != nil
		if hasPosition == hasRegion {
			return &InvalidSeedError{Field: "pois." + p.ID, Reason: "exactly one of position or region is required"}
		}
		if hasRegion && !p.Type.IsTerrain() {
			return &InvalidSeedError{Field: "pois." + p.ID, Reason: "region is only valid for terrain poi types"}
		}
		if hasPosition {
			if p.Position.X < 0 || p.Position.X >= s.Size.Width || p.Position.Y < 0 || p.Position.Y >= s.Size.Height {
				return &InvalidSeedError{Field: "pois." + p.ID, Reason: "position out of bounds"}
			}
		}
		_ = i
	}

	for _, c := range s.Connections {
		if !seenIDs[c.From] {
			return &InvalidSeedError{Field: "connections", Reason: "unknown poi id " + c.From}
		}
		if !seenIDs[c.To] {
			return &InvalidSeedError{Field: "connections", Reason: "unknown poi id " + c.To}
		}
	}

	for _, e := range s.RoadEndpoints {
		if !e.Direction.valid() {
			return &InvalidSeedError{Field: "roadEndpoints", Reason: "unrecognized direction " + string(e.Direction)}
		}
	}

	if s.TerrainOptions != nil {
		to := s.TerrainOptions
		if to.ForestDensity < 0 || to.ForestDensity > 1 {
			return &InvalidSeedError{Field: "terrainOptions.forestDensity", Reason: "must be in [0,1]"}
		}
		if to.WaterLevel < 0 || to.WaterLevel > 1 {
			return &InvalidSeedError{Field: "terrainOptions.waterLevel", Reason: "must be in [0,1]"}
		}
		if to.VillageCount < 0 {
			return &InvalidSeedError{Field: "terrainOptions.villageCount", Reason: "must be >= 0"}
		}
	}

	return nil
}

// clippedRegion resolves a POI's Region against a w x h grid, clamping
// out of bounds extents rather than rejecting them (only a raw Position
// can fail validation for being out of bounds).
func clippedRegion(r Region, w, h int) Rect {
	xMax, yMax := r.resolved()
	rect := Rect{XMin: r.XMin, XMax: xMax + 1, YMin: r.YMin, YMax: yMax + 1}
	return rect.clip(w, h)
}

// EffectiveTerrainOptions returns the seed's terrain options, or the
// defaults if none were supplied.
func (s *WorldSeed) EffectiveTerrainOptions() TerrainOptions {
	if s.TerrainOptions == nil {
		return defaultTerrainOptions()
	}
	return *s.TerrainOptions
}
