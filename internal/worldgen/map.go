package worldgen

// TileOut is one rendered tile in a Map's row-major grid.
type TileOut struct {
	Type     string `json:"type"`
	Walkable bool   `json:"walkable"`
	Height   int    `json:"height"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// Village is one settlement stamped during phase 2, echoed in the final
// Map for callers that want a quick index without scanning every tile.
type Village struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	Name string  `json:"name"`
	Type POIType `json:"type"`
}

// Stats reports how much work the solver did to produce this Map.
type Stats struct {
	Iterations int `json:"iterations"`
	Backtracks int `json:"backtracks"`
}

// Map is the read-only output artifact of a generation run.
type Map struct {
	Tiles     [][]TileOut `json:"tiles"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Seed      int64       `json:"seed"`
	Villages  []Village   `json:"villages"`
	Success   bool        `json:"success"`
	WorldSeed *WorldSeed  `json:"world_seed"`
	Stats     Stats       `json:"stats"`
}

// buildMap snapshots a fully-collapsed (or recovery-filled) grid, with
// any phase 2/3 overlay stamps applied on top, into the caller-owned
// output artifact.
func buildMap(grid *Grid, overlay *Overlay, seed int64, worldSeed *WorldSeed, villages []Village, success bool, stats Stats) *Map {
	tiles := make([][]TileOut, grid.H)
	for y := 0; y < grid.H; y++ {
		row := make([]TileOut, grid.W)
		for x := 0; x < grid.W; x++ {
			kind := overlay.EffectiveKind(grid, x, y)
			row[x] = TileOut{
				Type:     kind.ID,
				Walkable: kind.Walkable,
				Height:   kind.Height,
				X:        x,
				Y:        y,
			}
		}
		tiles[y] = row
	}
	return &Map{
		Tiles:     tiles,
		Width:     grid.W,
		Height:    grid.H,
		Seed:      seed,
		Villages:  villages,
		Success:   success,
		WorldSeed: worldSeed,
		Stats:     stats,
	}
}
