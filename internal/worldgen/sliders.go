package worldgen

// sliderWeights computes the final, replace-not-multiply weight table
// phase 1 applies last (spec.md §4.6 step 5), from the seed's
// forestDensity/waterLevel sliders.
func sliderWeights(opts TerrainOptions) map[string]float64 {
	f, w := opts.ForestDensity, opts.WaterLevel

	forest := 0.02 + 0.16*f
	grass := 0.18 - 0.16*f
	water := 0.02 + 0.14*w
	hills := 0.08 - 0.03*w
	if hills < 0.01 {
		hills = 0.01
	}

	return map[string]float64{
		TileForest:       forest,
		TileDenseForest:  forest * 0.7,
		TilePineForest:   forest * 0.8,
		TileGrass:        grass,
		TileMeadow:       grass * 0.85,
		TileShallowWater: water * 1.1,
		TileDeepWater:    water * 0.8,
		TileHills:        hills,
	}
}
