package worldgen

// Structure tile ids, referenced only by phases 2-3 (POI stamping, road
// carving). They never appear in the terrain-only catalog used by the WFC
// solver; stamping ignores adjacency entirely (spec.md §4.7), but the full
// catalog still needs a valid, symmetric adjacency relation of its own to
// pass TileSet.Build's validation.
const (
	TileDirtRoad     = "dirt_road"
	TileStoneRoad    = "stone_road"
	TileBuildingWood = "building_wood"
	TileBuildingStone = "building_stone"
	TileMarket       = "market"
	TileCastleTower  = "castle_tower"
	TileCastleWall   = "castle_wall"
	TileDock         = "dock"
	TileFarmField    = "farm_field"
	TileWatchtower   = "watchtower"
	TileGranary      = "granary"
	TileWell         = "well"
	TileShrine       = "shrine"
	TileBridge       = "bridge"
	TilePalisade     = "palisade"
)

func structureKinds() []TileKind {
	return []TileKind{
		{ID: TileDirtRoad, Weight: 0.05, Walkable: true, Height: 0, Category: CategoryRoad, DisplayColor: "#8B6B4A", SegmentationColor: "#C08040"},
		{ID: TileStoneRoad, Weight: 0.05, Walkable: true, Height: 0, Category: CategoryRoad, DisplayColor: "#9B9B9B", SegmentationColor: "#C0C0C0"},
		{ID: TileBuildingWood, Weight: 0.03, Walkable: false, Height: 1, Category: CategoryBuilding, DisplayColor: "#7A5230", SegmentationColor: "#FF8000"},
		{ID: TileBuildingStone, Weight: 0.03, Walkable: false, Height: 1, Category: CategoryBuilding, DisplayColor: "#8A8A8A", SegmentationColor: "#FF9000"},
		{ID: TileMarket, Weight: 0.01, Walkable: true, Height: 0, Category: CategoryBuilding, DisplayColor: "#B08040", SegmentationColor: "#FFA000"},
		{ID: TileCastleTower, Weight: 0.005, Walkable: false, Height: 3, Category: CategoryBuilding, DisplayColor: "#5A5A6A", SegmentationColor: "#FFB000"},
		{ID: TileCastleWall, Weight: 0.01, Walkable: false, Height: 2, Category: CategoryBuilding, DisplayColor: "#6A6A7A", SegmentationColor: "#FFC000"},
		{ID: TileDock, Weight: 0.01, Walkable: true, Height: 0, Category: CategoryBuilding, DisplayColor: "#6A4A30", SegmentationColor: "#FFD000"},
		{ID: TileFarmField, Weight: 0.04, Walkable: true, Height: 0, Category: CategoryFarm, DisplayColor: "#D4B85A", SegmentationColor: "#FFE000"},
		{ID: TileWatchtower, Weight: 0.005, Walkable: false, Height: 2, Category: CategoryBuilding, DisplayColor: "#5A5A5A", SegmentationColor: "#FFF000"},
		{ID: TileGranary, Weight: 0.01, Walkable: false, Height: 1, Category: CategoryBuilding, DisplayColor: "#A08050", SegmentationColor: "#F0FF00"},
		{ID: TileWell, Weight: 0.005, Walkable: false, Height: 0, Category: CategoryBuilding, DisplayColor: "#7A8A9A", SegmentationColor: "#E0FF00"},
		{ID: TileShrine, Weight: 0.005, Walkable: true, Height: 0, Category: CategorySpecial, DisplayColor: "#C0A0E0", SegmentationColor: "#D0FF00"},
		{ID: TileBridge, Weight: 0.01, Walkable: true, Height: 0, Category: CategoryRoad, DisplayColor: "#9A7A50", SegmentationColor: "#C0FF00"},
		{ID: TilePalisade, Weight: 0.01, Walkable: false, Height: 1, Category: CategoryBuilding, DisplayColor: "#6A5A3A", SegmentationColor: "#B0FF00"},
	}
}

func structureAdjacencyPairs() [][2]string {
	return [][2]string{
		{TileDirtRoad, TileGrass},
		{TileDirtRoad, TileSand},
		{TileDirtRoad, TileBuildingWood},
		{TileDirtRoad, TileBuildingStone},
		{TileDirtRoad, TileFarmField},
		{TileDirtRoad, TileMarket},
		{TileDirtRoad, TileDock},
		{TileDirtRoad, TileBridge},
		{TileDirtRoad, TileStoneRoad},
		{TileDirtRoad, TileCastleWall},
		{TileDirtRoad, TileShrine},

		{TileStoneRoad, TileGrass},
		{TileStoneRoad, TileHills},
		{TileStoneRoad, TileBuildingStone},
		{TileStoneRoad, TileMarket},
		{TileStoneRoad, TileCastleWall},
		{TileStoneRoad, TileBridge},
		{TileStoneRoad, TileWatchtower},
		{TileStoneRoad, TilePalisade},

		{TileBuildingWood, TileGrass},
		{TileBuildingWood, TileFarmField},
		{TileBuildingWood, TileSand},
		{TileBuildingWood, TileGranary},
		{TileBuildingWood, TileWell},
		{TileBuildingWood, TileDock},

		{TileBuildingStone, TileGrass},
		{TileBuildingStone, TileMarket},
		{TileBuildingStone, TileCastleWall},
		{TileBuildingStone, TileWell},

		{TileMarket, TileBuildingStone},

		{TileCastleTower, TileCastleWall},

		{TileCastleWall, TilePalisade},

		{TileDock, TileShallowWater},
		{TileDock, TileSand},

		{TileFarmField, TileGrass},
		{TileFarmField, TileMeadow},
		{TileFarmField, TileGranary},

		{TileWatchtower, TileHills},
		{TileWatchtower, TileCastleWall},

		{TileGranary, TileFarmField},

		{TileWell, TileGrass},

		{TileShrine, TileGrass},
		{TileShrine, TileForest},

		{TileBridge, TileShallowWater},
		{TileBridge, TileDeepWater},

		{TilePalisade, TileGrass},
	}
}

// fullCatalogSpec returns terrain kinds plus structure kinds and all
// adjacency pairs from both, forming the ≈35-kind catalog phases 2-3 use
// for lookups (walkable/height/category), never for solving.
func fullCatalogSpec() catalogSpec {
	kinds := append(terrainKinds(), structureKinds()...)
	adjacency := append(terrainAdjacencyPairs(), structureAdjacencyPairs()...)
	return catalogSpec{kinds: kinds, adjacency: adjacency}
}

// fallbackKindIDs is the small set failure recovery (spec.md §4.5) may
// assign to a still-uncollapsed cell: grass, meadow, forest, hills,
// scrubland, in that preference order.
func fallbackKindIDs() []string {
	return []string{TileGrass, TileMeadow, TileForest, TileHills, TileScrubland}
}
