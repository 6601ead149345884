package worldgen

// Terrain-only tile ids, used by phase 1 (WFC). The relation below is
// deliberately dense around "grass" so the solver almost never deadlocks:
// every tile here reaches grass directly or through a single intermediate
// hub tile (shallow_water, hills, forest).
const (
	TileGrass          = "grass"
	TileMeadow         = "meadow"
	TileFlowersMeadow  = "flowers_meadow"
	TileScrubland      = "scrubland"
	TileGlen           = "glen"
	TileForest         = "forest"
	TileDenseForest    = "dense_forest"
	TilePineForest     = "pine_forest"
	TileFarmlandWild   = "farmland_wild"
	TileSand           = "sand"
	TileShallowWater   = "shallow_water"
	TileDeepWater      = "deep_water"
	TileMarsh          = "marsh"
	TileWetlandReed    = "wetland_reed"
	TileHills          = "hills"
	TileRockyOutcrop   = "rocky_outcrop"
	TileHighlandMoor   = "highland_moor"
	TileMountain       = "mountain"
	TileCliffs         = "cliffs"
	TilePeak           = "peak"
	TileTundra         = "tundra"
)

func terrainKinds() []TileKind {
	return []TileKind{
		{ID: TileGrass, Weight: 0.14, Walkable: true, Height: 0, Category: CategoryTerrain, DisplayColor: "#6FAE4A", SegmentationColor: "#00FF00"},
		{ID: TileMeadow, Weight: 0.10, Walkable: true, Height: 0, Category: CategoryTerrain, DisplayColor: "#8ABE5A", SegmentationColor: "#10FF10"},
		{ID: TileFlowersMeadow, Weight: 0.03, Walkable: true, Height: 0, Category: CategoryTerrain, Flowers: true, DisplayColor: "#9ACE6A", SegmentationColor: "#20FF20"},
		{ID: TileScrubland, Weight: 0.07, Walkable: true, Height: 0, Category: CategoryTerrain, DisplayColor: "#A9B25E", SegmentationColor: "#30FF30"},
		{ID: TileGlen, Weight: 0.05, Walkable: true, Height: 0, Category: CategoryTerrain, DisplayColor: "#5E9A4F", SegmentationColor: "#40FF40"},
		{ID: TileForest, Weight: 0.10, Walkable: true, Height: 1, Category: CategoryForest, Tree: true, TreeType: "oak", DisplayColor: "#2D5A27", SegmentationColor: "#006400"},
		{ID: TileDenseForest, Weight: 0.05, Walkable: true, Height: 1, Category: CategoryForest, Tree: true, TreeType: "oak", DisplayColor: "#1F4A1C", SegmentationColor: "#005400"},
		{ID: TilePineForest, Weight: 0.05, Walkable: true, Height: 1, Category: CategoryForest, Tree: true, TreeType: "pine", DisplayColor: "#234B33", SegmentationColor: "#005A3A"},
		{ID: TileFarmlandWild, Weight: 0.03, Walkable: true, Height: 0, Category: CategoryFarm, DisplayColor: "#C2A65A", SegmentationColor: "#FFD700"},
		{ID: TileSand, Weight: 0.05, Walkable: true, Height: 0, Category: CategoryShoreline, DisplayColor: "#E8C86B", SegmentationColor: "#FFFF00"},
		{ID: TileShallowWater, Weight: 0.05, Walkable: false, Height: -1, Category: CategoryWater, DisplayColor: "#4FA7C9", SegmentationColor: "#00C0FF"},
		{ID: TileDeepWater, Weight: 0.04, Walkable: false, Height: -2, Category: CategoryWater, DisplayColor: "#0A1628", SegmentationColor: "#0000FF"},
		{ID: TileMarsh, Weight: 0.02, Walkable: true, Height: -1, Category: CategoryWetland, DisplayColor: "#3A4A3A", SegmentationColor: "#008080"},
		{ID: TileWetlandReed, Weight: 0.02, Walkable: true, Height: -1, Category: CategoryWetland, DisplayColor: "#2A4A3A", SegmentationColor: "#009090"},
		{ID: TileHills, Weight: 0.08, Walkable: true, Height: 2, Category: CategoryHighland, DisplayColor: "#8A8A5E", SegmentationColor: "#A0A000"},
		{ID: TileRockyOutcrop, Weight: 0.03, Walkable: true, Height: 2, Category: CategoryHighland, DisplayColor: "#7A7A6E", SegmentationColor: "#909000"},
		{ID: TileHighlandMoor, Weight: 0.03, Walkable: true, Height: 2, Category: CategoryHighland, DisplayColor: "#6A7A5E", SegmentationColor: "#808010"},
		{ID: TileMountain, Weight: 0.04, Walkable: false, Height: 3, Category: CategoryHighland, DisplayColor: "#4A4A4A", SegmentationColor: "#808080"},
		{ID: TileCliffs, Weight: 0.02, Walkable: false, Height: 3, Category: CategoryHighland, DisplayColor: "#3A3A3A", SegmentationColor: "#707070"},
		{ID: TilePeak, Weight: 0.01, Walkable: false, Height: 4, Category: CategoryHighland, DisplayColor: "#FFFFFF", SegmentationColor: "#606060"},
		{ID: TileTundra, Weight: 0.03, Walkable: true, Height: 0, Category: CategoryTerrain, DisplayColor: "#C9D6DD", SegmentationColor: "#C0E0FF"},
	}
}

func terrainAdjacencyPairs() [][2]string {
	return [][2]string{
		{TileGrass, TileMeadow},
		{TileGrass, TileFlowersMeadow},
		{TileGrass, TileScrubland},
		{TileGrass, TileGlen},
		{TileGrass, TileForest},
		{TileGrass, TileHills},
		{TileGrass, TileSand},
		{TileGrass, TileFarmlandWild},
		{TileGrass, TileShallowWater},
		{TileGrass, TileTundra},
		{TileGrass, TileWetlandReed},
		{TileGrass, TileRockyOutcrop},
		{TileGrass, TileMarsh},

		{TileMeadow, TileFlowersMeadow},
		{TileMeadow, TileScrubland},
		{TileMeadow, TileGlen},
		{TileMeadow, TileFarmlandWild},

		{TileScrubland, TileSand},
		{TileScrubland, TileHills},
		{TileScrubland, TileRockyOutcrop},

		{TileGlen, TileForest},
		{TileGlen, TileWetlandReed},

		{TileForest, TileDenseForest},
		{TileForest, TilePineForest},
		{TileForest, TileHills},

		{TileDenseForest, TilePineForest},

		{TilePineForest, TileHills},
		{TilePineForest, TileTundra},

		{TileHills, TileHighlandMoor},
		{TileHills, TileMountain},
		{TileHills, TileRockyOutcrop},
		{TileHills, TileCliffs},
		{TileHills, TilePeak},

		{TileHighlandMoor, TileMountain},
		{TileHighlandMoor, TileRockyOutcrop},
		{TileHighlandMoor, TileTundra},

		{TileMountain, TileCliffs},
		{TileMountain, TilePeak},

		{TileCliffs, TilePeak},
		{TileCliffs, TileRockyOutcrop},

		{TileSand, TileShallowWater},

		{TileShallowWater, TileDeepWater},
		{TileShallowWater, TileMarsh},
		{TileShallowWater, TileWetlandReed},

		{TileMarsh, TileWetlandReed},
	}
}

func terrainCatalogSpec() catalogSpec {
	return catalogSpec{kinds: terrainKinds(), adjacency: terrainAdjacencyPairs()}
}
