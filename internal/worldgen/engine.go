package worldgen

import (
	"context"
	"log"
	"time"
)

// GenerateOptions configures one Generate call, mirroring spec.md §6.4's
// invocation surface (max_backtracks, animated, animation_delay_ms,
// progress_cb — cancel_token is the ctx argument itself).
type GenerateOptions struct {
	MaxBacktracks  int
	Animated       bool
	AnimationDelay time.Duration
	Progress       ProgressFunc
}

// Generate runs all three phases over a validated WorldSeed and returns
// the finished Map. sliders, if non-nil, overrides the seed's own
// terrainOptions without mutating the caller's WorldSeed.
func Generate(ctx context.Context, seed *WorldSeed, rngSeed int64, sliders *TerrainOptions, opts GenerateOptions) (*Map, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	terrainTS, err := BuildTileSet(TerrainOnly)
	if err != nil {
		return nil, err
	}
	fullTS, err := BuildTileSet(Full)
	if err != nil {
		return nil, err
	}

	effective := seed.EffectiveTerrainOptions()
	if sliders != nil {
		effective = *sliders
	}

	rng := NewRNG(rngSeed)
	zone := NewZoneNoise(rngSeed)
	grid := NewGrid(seed.Size.Width, seed.Size.Height, terrainTS)

	applyZoneBiases(grid, terrainTS, seed, zone)
	applyBiomeWideBias(grid, terrainTS, seed.Biome)
	applySliderBias(grid, terrainTS, effective)

	prop := NewPropagator(grid)
	success := true
	if _, err := prop.PropagateAll(); err != nil {
		success = false
	}

	var iterations, backtracks int
	if success {
		if opts.Progress != nil {
			opts.Progress(ProgressEvent{Phase: PhaseTerrain, Progress: 0, Message: "solving terrain"})
		}
		solver := NewSolver(grid, prop, rng)
		solverOpts := DefaultSolverOptions()
		if opts.MaxBacktracks > 0 {
			solverOpts.MaxBacktracks = opts.MaxBacktracks
		}
		solverOpts.Animated = opts.Animated
		solverOpts.AnimationDelay = opts.AnimationDelay
		solverOpts.Progress = opts.Progress

		status := solver.Run(ctx, solverOpts)
		iterations, backtracks = solver.Iterations(), solver.Backtracks()

		switch status {
		case StatusCancelled:
			return nil, &CancelledError{Phase: PhaseTerrain}
		case StatusFailed:
			btErr := &BacktrackExhaustedError{Backtracks: backtracks}
			log.Printf("worldgen: %v, falling back to recovery", btErr)
			success = false
		}
	}

	if !success {
		recoverGrid(grid, terrainTS)
	}

	overlay := NewOverlay(grid.W, grid.H)

	if opts.Progress != nil {
		opts.Progress(ProgressEvent{Phase: PhasePOIs, Progress: 0, Message: "placing points of interest"})
	}
	phaseSeed := seed
	if sliders != nil {
		withSliders := *seed
		withSliders.TerrainOptions = &effective
		phaseSeed = &withSliders
	}
	villages := stampPOIs(grid, overlay, fullTS, phaseSeed, rng)

	if opts.Progress != nil {
		opts.Progress(ProgressEvent{Phase: PhaseRoads, Progress: 0, Message: "carving roads"})
	}
	carveRoads(grid, overlay, fullTS, seed, rng)

	if opts.Progress != nil {
		opts.Progress(ProgressEvent{Phase: PhaseComplete, Progress: 100, Message: "done"})
	}

	stats := Stats{Iterations: iterations, Backtracks: backtracks}
	return buildMap(grid, overlay, rngSeed, seed, villages, success, stats), nil
}

// applyZoneBiases runs phase 1 step 3: for every terrain-type POI,
// multiply weights in its region (or a small neighborhood around a
// fixed position) and force-collapse a representative center tile.
func applyZoneBiases(grid *Grid, ts *TileSet, seed *WorldSeed, zone *ZoneNoise) {
	for i := range seed.POIs {
		poi := &seed.POIs[i]
		if !poi.Type.IsTerrain() {
			continue
		}
		table := terrainPOIZoneTable(poi.Type)
		mults := toTileIDWeights(ts, table.multipliers)

		var rect Rect
		var center Position
		switch {
		case poi.Region != nil:
			rect = clippedRegion(*poi.Region, grid.W, grid.H)
			center = rectCenter(rect)
		case poi.Position != nil:
			center = *poi.Position
			rect = Rect{XMin: center.X - 3, XMax: center.X + 4, YMin: center.Y - 3, YMax: center.Y + 4}.clip(grid.W, grid.H)
		default:
			continue
		}

		applyRegionModifiersSoftened(grid, rect, mults, zone)
		if grid.InBounds(center.X, center.Y) {
			if id, ok := ts.Lookup(table.center); ok {
				grid.SeedCell(center.X, center.Y, id)
			}
		}
	}
}

func rectCenter(r Rect) Position {
	return Position{X: (r.XMin + r.XMax) / 2, Y: (r.YMin + r.YMax) / 2}
}

func applyBiomeWideBias(grid *Grid, ts *TileSet, biome Biome) {
	grid.ApplyGridModifiers(toTileIDWeights(ts, biomeWideTable(biome)))
}

func applySliderBias(grid *Grid, ts *TileSet, opts TerrainOptions) {
	grid.SetWeightsRegion(Rect{XMin: 0, XMax: grid.W, YMin: 0, YMax: grid.H}, toTileIDWeights(ts, sliderWeights(opts)))
}

func toTileIDWeights(ts *TileSet, m map[string]float64) map[TileID]float64 {
	out := make(map[TileID]float64, len(m))
	for stringID, w := range m {
		if id, ok := ts.Lookup(stringID); ok {
			out[id] = w
		}
	}
	return out
}

// recoverGrid runs the spec.md §4.5 failure-recovery pass: every
// still-uncollapsed cell is force-collapsed to a fallback tile that
// respects at least one collapsed neighbor, or grass if none do.
func recoverGrid(grid *Grid, ts *TileSet) {
	fallback := fallbackKindIDs()
	fallbackIDs := make([]TileID, 0, len(fallback))
	for _, s := range fallback {
		if id, ok := ts.Lookup(s); ok {
			fallbackIDs = append(fallbackIDs, id)
		}
	}
	grassID := ts.MustLookup(TileGrass)

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			cell := grid.Cell(x, y)
			if cell.Collapsed() {
				continue
			}
			chosen := grassID
			found := false
			for _, candidate := range fallbackIDs {
				ok := false
				for _, n := range grid.Neighbors(x, y) {
					nc := grid.Cell(n.X, n.Y)
					if !nc.Collapsed() {
						continue
					}
					nt, _ := nc.Tile()
					if ts.CanBeAdjacent(candidate, nt) {
						ok = true
						break
					}
				}
				if ok {
					chosen = candidate
					found = true
					break
				}
			}
			if !found {
				chosen = grassID
			}
			cell.ForceCollapse(chosen)
		}
	}
}
