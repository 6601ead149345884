package worldgen

// carveRoads runs phase 3 (spec.md §4.8): connections link two POIs by
// id, and road endpoints link an edge coordinate to whichever POI ended
// up nearest it. Both resolve to a pair of positions and carve a
// randomized incremental path between them.
func carveRoads(grid *Grid, overlay *Overlay, full *TileSet, seed *WorldSeed, rng *RNG) {
	positions := make(map[string]Position, len(seed.POIs))
	for i := range seed.POIs {
		if pos, ok := seed.POIs[i].ResolvedPosition(); ok {
			positions[seed.POIs[i].ID] = pos
		}
	}

	for _, c := range seed.Connections {
		from, okFrom := positions[c.From]
		to, okTo := positions[c.To]
		if !okFrom || !okTo {
			continue
		}
		roadTile := TileDirtRoad
		if c.Style.orDefault() == StyleStone {
			roadTile = TileStoneRoad
		}
		carvePath(grid, overlay, full, from, to, roadTile, rng)
	}

	for _, e := range seed.RoadEndpoints {
		edge := e.EdgeCoordinate(grid.W, grid.H)
		nearest, ok := nearestPOIPosition(positions, edge)
		if !ok {
			continue
		}
		roadTile := TileDirtRoad
		if e.Style.orDefault() == StyleStone {
			roadTile = TileStoneRoad
		}
		carvePath(grid, overlay, full, edge, nearest, roadTile, rng)
	}
}

func nearestPOIPosition(positions map[string]Position, from Position) (Position, bool) {
	best := Position{}
	bestDist := -1
	found := false
	for _, id := range sortedKeys(positions) {
		pos := positions[id]
		d := manhattan(from, pos)
		if !found || d < bestDist {
			best, bestDist, found = pos, d, true
		}
	}
	return best, found
}

// sortedKeys returns map keys in a fixed order so nearest-POI ties break
// deterministically instead of on Go's randomized map iteration.
func sortedKeys(m map[string]Position) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func manhattan(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// carvePath walks from 'from' toward 'to' with a randomized incremental
// walker, overwriting eligible terrain with roadTile as it goes. Bounded
// by width+height steps so an unreachable target can never hang the
// caller.
func carvePath(grid *Grid, overlay *Overlay, full *TileSet, from, to Position, roadTile string, rng *RNG) {
	x, y := from.X, from.Y
	maxSteps := grid.W + grid.H

	for step := 0; step < maxSteps; step++ {
		if grid.InBounds(x, y) && roadOverwritableIDs()[overlay.EffectiveID(grid, x, y)] {
			place(grid, overlay, full, x, y, roadTile)
		}
		if x == to.X && y == to.Y {
			return
		}

		dx, dy := to.X-x, to.Y-y
		absDX, absDY := dx, dy
		if absDX < 0 {
			absDX = -absDX
		}
		if absDY < 0 {
			absDY = -absDY
		}

		moveX := absDX >= absDY
		if !rng.Chance(0.7) {
			moveX = !moveX // 30% of the time, step the perpendicular axis
		}
		if absDX == 0 {
			moveX = false
		}
		if absDY == 0 {
			moveX = true
		}

		if moveX {
			if dx > 0 {
				x++
			} else if dx < 0 {
				x--
			}
		} else {
			if dy > 0 {
				y++
			} else if dy < 0 {
				y--
			}
		}
		x = clampInt(x, 0, grid.W-1)
		y = clampInt(y, 0, grid.H-1)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
