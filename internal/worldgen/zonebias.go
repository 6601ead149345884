package worldgen

import "math"

// zoneMultiplierTable resolves a terrain POI's type to the per-tile
// weight multipliers apply_region_modifiers uses, and the tile it seeds
// at the POI's center for a stronger nudge (spec.md §4.6 step 3).
type zoneMultiplierTable struct {
	multipliers map[string]float64
	center      string
}

func terrainPOIZoneTable(t POIType) zoneMultiplierTable {
	switch t {
	case POIForest:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileForest: 3, TileDenseForest: 2, TilePineForest: 2, TileGrass: 0.3, TileMeadow: 0.3},
			center:      TileForest,
		}
	case POILake:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileShallowWater: 3, TileDeepWater: 2.5, TileMarsh: 1.5, TileGrass: 0.4},
			center:      TileDeepWater,
		}
	case POIMountain:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileMountain: 3, TileCliffs: 2, TilePeak: 2, TileHills: 1.5, TileGrass: 0.3},
			center:      TileMountain,
		}
	case POISwamp:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileMarsh: 3, TileWetlandReed: 2.5, TileShallowWater: 1.3, TileGrass: 0.4},
			center:      TileMarsh,
		}
	case POIPlains:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileGrass: 2.5, TileMeadow: 2, TileFlowersMeadow: 1.5, TileForest: 0.4},
			center:      TileGrass,
		}
	case POIHills:
		return zoneMultiplierTable{
			multipliers: map[string]float64{TileHills: 3, TileHighlandMoor: 2, TileRockyOutcrop: 1.5, TileGrass: 0.4},
			center:      TileHills,
		}
	default:
		return zoneMultiplierTable{multipliers: map[string]float64{}, center: TileGrass}
	}
}

// applyRegionModifiersSoftened behaves like Grid.ApplyRegionModifiers but
// blends each multiplier toward 1 near the region's edge, weighted by
// zone noise, so two adjoining POI regions don't produce a visible
// rectangular seam in the finished terrain.
func applyRegionModifiersSoftened(grid *Grid, rect Rect, multipliers map[TileID]float64, zone *ZoneNoise) {
	r := rect.clip(grid.W, grid.H)
	cx, cy := float64(r.XMin+r.XMax)/2, float64(r.YMin+r.YMax)/2
	maxDist := math.Hypot(float64(r.XMax-r.XMin)/2, float64(r.YMax-r.YMin)/2)

	for y := r.YMin; y < r.YMax; y++ {
		for x := r.XMin; x < r.XMax; x++ {
			cell := grid.Cell(x, y)
			if cell.Collapsed() {
				continue
			}
			frac := 0.0
			if maxDist > 0 {
				frac = math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			}
			factor := zone.EdgeFactor(x, y, frac, 0.4)
			for id, mult := range multipliers {
				cell.MultiplyWeight(id, 1+(mult-1)*factor)
			}
		}
	}
}

// biomeWideTable returns the whole-grid multiplier table applied once per
// run, keyed by the WorldSeed's biome (spec.md §4.6 step 4).
func biomeWideTable(b Biome) map[string]float64 {
	switch b {
	case BiomeTropical:
		return map[string]float64{TileForest: 1.6, TileDenseForest: 1.8, TileMarsh: 1.4, TileWetlandReed: 1.4, TileSand: 1.2, TileTundra: 0.1, TileMountain: 0.7}
	case BiomeDesert:
		return map[string]float64{TileSand: 2.5, TileScrubland: 1.6, TileShallowWater: 0.3, TileDeepWater: 0.2, TileForest: 0.3, TileMarsh: 0.1}
	case BiomeArctic:
		return map[string]float64{TileTundra: 2.5, TileMountain: 1.4, TilePeak: 1.6, TileForest: 0.4, TileMarsh: 0.2}
	case BiomeVolcanic:
		return map[string]float64{TileMountain: 1.8, TileCliffs: 1.8, TileRockyOutcrop: 1.6, TileGrass: 0.5, TileMarsh: 0.3}
	case BiomeCoastal:
		return map[string]float64{TileSand: 1.8, TileShallowWater: 1.6, TileDeepWater: 1.3, TileMountain: 0.5}
	default: // temperate
		return map[string]float64{}
	}
}
