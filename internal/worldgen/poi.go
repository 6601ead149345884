package worldgen

// roadOverwritableIDs is the set of terrain tile ids a road (or a
// structure's access path) may overwrite. Everything else (water,
// mountains, cliffs, existing structures) is traversed cosmetically but
// left untouched.
func roadOverwritableIDs() map[string]bool {
	return map[string]bool{
		TileGrass: true, TileMeadow: true, TileGlen: true, TileScrubland: true,
		TileSand: true, TileForest: true, TileDenseForest: true, TilePineForest: true,
		TileHills: true, TileFarmField: true, TileMarsh: true,
	}
}

// villageAllowList names, per settlement POIType, which terrain tile ids
// a region scan may place that settlement onto.
func villageAllowList(t POIType) map[string]bool {
	switch t {
	case POIVillage:
		return map[string]bool{TileGrass: true, TileSand: true}
	case POICity:
		return map[string]bool{TileGrass: true, TileSand: true, TileMeadow: true}
	case POICastle:
		return map[string]bool{TileHills: true, TileGrass: true}
	case POIFarm:
		return map[string]bool{TileGrass: true, TileMeadow: true, TileScrubland: true}
	case POITavern:
		return map[string]bool{TileGrass: true, TileSand: true}
	case POITower:
		return map[string]bool{TileHills: true, TileForest: true, TileRockyOutcrop: true}
	case POIRuins:
		return map[string]bool{TileGrass: true, TileHills: true, TileScrubland: true}
	case POIPort:
		return map[string]bool{TileSand: true}
	default:
		return map[string]bool{TileGrass: true}
	}
}

func sizeValue(s POISize) int {
	switch s {
	case SizeSmall:
		return 1
	case SizeLarge:
		return 3
	default:
		return 2 // medium, and the unset default
	}
}

// stampPOIs runs phase 2 (spec.md §4.7): settlement POIs are resolved to
// a concrete position and stamped onto overlay in input order, capped at
// villageCount total stamps. Terrain POIs are skipped here; they already
// took effect as phase 1 zone biases.
func stampPOIs(grid *Grid, overlay *Overlay, full *TileSet, seed *WorldSeed, rng *RNG) []Village {
	opts := seed.EffectiveTerrainOptions()
	limit := opts.VillageCount
	stamped := 0
	var villages []Village

	for i := range seed.POIs {
		poi := &seed.POIs[i]
		if !poi.Type.IsSettlement() {
			continue
		}
		if stamped >= limit {
			continue
		}

		pos, ok := resolvePOIPosition(grid, overlay, poi, rng)
		if !ok {
			continue
		}
		poi.setResolved(pos)

		stampPattern(grid, overlay, full, poi.Type, pos, sizeValue(poi.Size), rng)
		stamped++
		villages = append(villages, Village{X: pos.X, Y: pos.Y, Name: poi.Name, Type: poi.Type})
	}

	return villages
}

func resolvePOIPosition(grid *Grid, overlay *Overlay, poi *POI, rng *RNG) (Position, bool) {
	if poi.Position != nil {
		return *poi.Position, true
	}
	if poi.Region == nil {
		return Position{}, false
	}

	allow := villageAllowList(poi.Type)
	rect := clippedRegion(*poi.Region, grid.W, grid.H)

	var candidates []Position
	for y := rect.YMin; y < rect.YMax; y++ {
		for x := rect.XMin; x < rect.XMax; x++ {
			if _, taken := overlay.Get(x, y); taken {
				continue
			}
			if allow[overlay.EffectiveID(grid, x, y)] {
				candidates = append(candidates, Position{X: x, Y: y})
			}
		}
	}
	if len(candidates) == 0 {
		// No tile in the region matched the allow-list; fall back to the
		// region's clipped center so placement stays deterministic rather
		// than silently dropping the POI.
		cx, cy := (rect.XMin+rect.XMax)/2, (rect.YMin+rect.YMax)/2
		if !grid.InBounds(cx, cy) {
			return Position{}, false
		}
		return Position{X: cx, Y: cy}, true
	}
	return candidates[rng.Intn(len(candidates))], true
}

func stampPattern(grid *Grid, overlay *Overlay, full *TileSet, t POIType, pos Position, size int, rng *RNG) {
	switch t {
	case POIVillage:
		stampVillage(grid, overlay, full, pos, size, rng)
	case POICity:
		stampCity(grid, overlay, full, pos, size, rng)
	case POICastle:
		stampCastle(grid, overlay, full, pos)
	case POIFarm:
		stampFarm(grid, overlay, full, pos)
	case POITavern:
		stampTavern(grid, overlay, full, pos)
	case POITower:
		stampTower(grid, overlay, full, pos)
	case POIRuins:
		stampRuins(grid, overlay, full, pos, rng)
	case POIPort:
		stampPort(grid, overlay, full, pos)
	}
}

func place(grid *Grid, overlay *Overlay, full *TileSet, x, y int, tileID string) {
	if !grid.InBounds(x, y) {
		return
	}
	overlay.Set(x, y, full.Kind(full.MustLookup(tileID)))
}

// placeOnRoad stamps a dirt road at (x,y) if the tile there is
// overwritable, reporting whether it actually placed one.
func placeOnRoad(grid *Grid, overlay *Overlay, full *TileSet, x, y int) bool {
	if !grid.InBounds(x, y) {
		return false
	}
	if !roadOverwritableIDs()[overlay.EffectiveID(grid, x, y)] {
		return false
	}
	place(grid, overlay, full, x, y, TileDirtRoad)
	return true
}

func ring8(x, y int) [8][2]int {
	return [8][2]int{
		{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1},
		{x - 1, y}, {x + 1, y},
		{x - 1, y + 1}, {x, y + 1}, {x + 1, y + 1},
	}
}

func layCardinalCross(grid *Grid, overlay *Overlay, full *TileSet, x, y, length int, roadTile string) {
	steps := []struct{ dx, dy int }{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, s := range steps {
		for n := 1; n <= length; n++ {
			px, py := x+s.dx*n, y+s.dy*n
			if !grid.InBounds(px, py) {
				break
			}
			if !roadOverwritableIDs()[overlay.EffectiveID(grid, px, py)] {
				continue
			}
			place(grid, overlay, full, px, py, roadTile)
		}
	}
}

func stampVillage(grid *Grid, overlay *Overlay, full *TileSet, pos Position, size int, rng *RNG) {
	place(grid, overlay, full, pos.X, pos.Y, TileDirtRoad)
	for _, n := range ring8(pos.X, pos.Y) {
		if !grid.InBounds(n[0], n[1]) {
			continue
		}
		current := overlay.EffectiveID(grid, n[0], n[1])
		if rng.Chance(0.7) {
			place(grid, overlay, full, n[0], n[1], TileBuildingWood)
		} else if current == TileGrass || current == TileSand || current == TileForest {
			place(grid, overlay, full, n[0], n[1], TileFarmField)
		}
	}
	layCardinalCross(grid, overlay, full, pos.X, pos.Y, size+1, TileDirtRoad)
}

func stampCity(grid *Grid, overlay *Overlay, full *TileSet, pos Position, size int, rng *RNG) {
	place(grid, overlay, full, pos.X, pos.Y, TileMarket)
	layCardinalCross(grid, overlay, full, pos.X, pos.Y, size+2, TileStoneRoad)

	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx > -2 && dx < 2 && dy > -2 && dy < 2 {
				continue // interior of the 5x5 ring is the market/cross
			}
			x, y := pos.X+dx, pos.Y+dy
			if !grid.InBounds(x, y) {
				continue
			}
			if !rng.Chance(0.7) {
				continue
			}
			if !roadOverwritableIDs()[overlay.EffectiveID(grid, x, y)] {
				continue
			}
			place(grid, overlay, full, x, y, TileBuildingStone)
		}
	}
}

func stampCastle(grid *Grid, overlay *Overlay, full *TileSet, pos Position) {
	place(grid, overlay, full, pos.X, pos.Y, TileCastleTower)
	for _, n := range ring8(pos.X, pos.Y) {
		place(grid, overlay, full, n[0], n[1], TileCastleWall)
	}
	for n := 1; n <= 2; n++ {
		y := pos.Y + n
		if grid.InBounds(pos.X, y) && roadOverwritableIDs()[overlay.EffectiveID(grid, pos.X, y)] {
			place(grid, overlay, full, pos.X, y, TileStoneRoad)
		}
	}
}

func stampFarm(grid *Grid, overlay *Overlay, full *TileSet, pos Position) {
	place(grid, overlay, full, pos.X, pos.Y, TileBuildingWood)
	for dy := -1; dy <= 1; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := pos.X+dx, pos.Y+dy
			if !grid.InBounds(x, y) {
				continue
			}
			if overlay.EffectiveID(grid, x, y) == TileGrass {
				place(grid, overlay, full, x, y, TileFarmField)
			}
		}
	}
	placeOnRoad(grid, overlay, full, pos.X, pos.Y+1)
}

func stampTavern(grid *Grid, overlay *Overlay, full *TileSet, pos Position) {
	place(grid, overlay, full, pos.X, pos.Y, TileBuildingWood)
	for _, n := range grid.Neighbors(pos.X, pos.Y) {
		if placeOnRoad(grid, overlay, full, n.X, n.Y) {
			break
		}
	}
}

func stampTower(grid *Grid, overlay *Overlay, full *TileSet, pos Position) {
	place(grid, overlay, full, pos.X, pos.Y, TileBuildingStone)
	for _, n := range grid.Neighbors(pos.X, pos.Y) {
		id := overlay.EffectiveID(grid, n.X, n.Y)
		if id == TileForest || id == TileDenseForest || id == TilePineForest || id == TileHills {
			place(grid, overlay, full, n.X, n.Y, TileGrass)
		}
	}
}

func stampRuins(grid *Grid, overlay *Overlay, full *TileSet, pos Position, rng *RNG) {
	offsets := [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for _, o := range offsets {
		x, y := pos.X+o[0], pos.Y+o[1]
		if !grid.InBounds(x, y) || !rng.Chance(0.7) {
			continue
		}
		place(grid, overlay, full, x, y, TileBuildingStone)
	}
}

func stampPort(grid *Grid, overlay *Overlay, full *TileSet, pos Position) {
	place(grid, overlay, full, pos.X, pos.Y, TileDock)
	place(grid, overlay, full, pos.X, pos.Y-1, TileBuildingWood)
	placeOnRoad(grid, overlay, full, pos.X, pos.Y+1)
}
