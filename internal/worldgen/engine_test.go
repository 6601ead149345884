package worldgen

import (
	"context"
	"errors"
	"testing"
)

func TestGenerateScenarioATinyDeterministic(t *testing.T) {
	seed := &WorldSeed{
		Size:           Size{Width: 8, Height: 8},
		Biome:          BiomeTemperate,
		TerrainOptions: &TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 0},
	}

	m1, err := Generate(context.Background(), seed, 1, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m1.Success {
		t.Fatal("expected success=true for an unconstrained 8x8 grid")
	}
	if m1.Width*m1.Height != 64 {
		t.Fatalf("expected 64 tiles, got %d", m1.Width*m1.Height)
	}
	if len(m1.Villages) != 0 {
		t.Errorf("expected 0 villages for villageCount=0, got %d", len(m1.Villages))
	}
	assertAdjacencyInvariant(t, m1)

	m2, err := Generate(context.Background(), seed, 1, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	for y := range m1.Tiles {
		for x := range m1.Tiles[y] {
			if m1.Tiles[y][x] != m2.Tiles[y][x] {
				t.Fatalf("expected identical tiles for identical (seed,rngSeed), differed at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateScenarioBForestedSlider(t *testing.T) {
	seed := &WorldSeed{
		Size:           Size{Width: 8, Height: 8},
		Biome:          BiomeTemperate,
		TerrainOptions: &TerrainOptions{ForestDensity: 1.0, WaterLevel: 0.0, VillageCount: 0},
	}

	m, err := Generate(context.Background(), seed, 1, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts, _ := BuildTileSet(Full)
	forestCount, waterCount, total := 0, 0, 0
	for _, row := range m.Tiles {
		for _, tile := range row {
			total++
			id, ok := ts.Lookup(tile.Type)
			if !ok {
				continue
			}
			switch ts.Kind(id).Category {
			case CategoryForest:
				forestCount++
			case CategoryWater:
				waterCount++
			}
		}
	}
	if float64(forestCount)/float64(total) < 0.60 {
		t.Errorf("expected forest-category tiles >= 60%%, got %d/%d", forestCount, total)
	}
	if waterCount != 0 {
		t.Errorf("expected 0 water-category tiles with waterLevel=0, got %d", waterCount)
	}
}

func TestGenerateScenarioCSingleVillage(t *testing.T) {
	seed := &WorldSeed{
		Size:  Size{Width: 16, Height: 16},
		Biome: BiomeTemperate,
		POIs: []POI{
			{ID: "v1", Type: POIVillage, Position: &Position{X: 8, Y: 8}, Size: SizeMedium},
		},
		TerrainOptions: &TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 5},
	}

	m, err := Generate(context.Background(), seed, 2, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Villages) != 1 || m.Villages[0].X != 8 || m.Villages[0].Y != 8 {
		t.Fatalf("expected exactly one village at (8,8), got %+v", m.Villages)
	}
	if m.Tiles[8][8].Type != TileDirtRoad {
		t.Errorf("expected dirt_road stamped at the village center, got %s", m.Tiles[8][8].Type)
	}

	found := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if m.Tiles[8+dy][8+dx].Type == TileBuildingWood {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected at least one building_wood within the 3x3 neighborhood of the village")
	}
	assertCatalogConsistency(t, m)
}

func TestGenerateScenarioDConnectionCarving(t *testing.T) {
	seed := &WorldSeed{
		Size:  Size{Width: 24, Height: 24},
		Biome: BiomeTemperate,
		POIs: []POI{
			{ID: "v1", Type: POIVillage, Position: &Position{X: 4, Y: 12}},
			{ID: "v2", Type: POIVillage, Position: &Position{X: 20, Y: 12}},
		},
		Connections:    []Connection{{From: "v1", To: "v2", Style: StyleStone}},
		TerrainOptions: &TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 5},
	}

	m, err := Generate(context.Background(), seed, 3, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stoneCount := 0
	for x := 0; x < 24; x++ {
		if m.Tiles[12][x].Type == TileStoneRoad {
			stoneCount++
		}
	}
	if stoneCount < 16 {
		t.Errorf("expected at least 16 stone_road tiles along row 12, got %d", stoneCount)
	}
}

func TestGenerateScenarioEBacktrackBudgetTriggersRecovery(t *testing.T) {
	ts := testTileSet(t)
	deepWater := ts.MustLookup(TileDeepWater)
	mountain := ts.MustLookup(TileMountain)
	if ts.CanBeAdjacent(deepWater, mountain) {
		t.Skip("deep_water and mountain are adjacency-compatible in this catalog; scenario does not apply")
	}

	seed := &WorldSeed{
		Size:  Size{Width: 8, Height: 8},
		Biome: BiomeTemperate,
		POIs: []POI{
			{ID: "w", Type: POILake, Position: &Position{X: 0, Y: 0}},
			{ID: "p", Type: POIMountain, Position: &Position{X: 0, Y: 1}},
		},
		TerrainOptions: &TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 0},
	}

	m, err := Generate(context.Background(), seed, 4, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Success {
		t.Fatal("expected success=false: the seeded lake and mountain centers are adjacency-incompatible")
	}
	assertCatalogConsistency(t, m)
}

func TestGenerateScenarioFVillageCap(t *testing.T) {
	pois := make([]POI, 10)
	for i := range pois {
		pois[i] = POI{ID: idFor(i), Type: POIVillage, Position: &Position{X: i % 10, Y: (i * 3) % 10}}
	}
	seed := &WorldSeed{
		Size:           Size{Width: 10, Height: 10},
		Biome:          BiomeTemperate,
		POIs:           pois,
		TerrainOptions: &TerrainOptions{ForestDensity: 0.5, WaterLevel: 0.3, VillageCount: 3},
	}

	m, err := Generate(context.Background(), seed, 5, nil, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Villages) != 3 {
		t.Fatalf("expected exactly 3 stamped villages, got %d", len(m.Villages))
	}
	for i := 0; i < 3; i++ {
		if m.Villages[i].X != pois[i].Position.X || m.Villages[i].Y != pois[i].Position.Y {
			t.Errorf("expected village %d to match input-order POI %d", i, i)
		}
	}
}

func TestGenerateRejectsInvalidSeed(t *testing.T) {
	seed := &WorldSeed{Size: Size{Width: 2, Height: 2}, Biome: BiomeTemperate}
	if _, err := Generate(context.Background(), seed, 1, nil, GenerateOptions{}); err == nil {
		t.Error("expected an undersized grid to be rejected before generation starts")
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	seed := &WorldSeed{
		Size:  Size{Width: 12, Height: 12},
		Biome: BiomeTemperate,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, seed, 1, nil, GenerateOptions{})
	var ce *CancelledError
	if err == nil {
		t.Fatal("expected an error for an already-cancelled context")
	}
	if !errors.As(err, &ce) {
		t.Errorf("expected *CancelledError, got %T: %v", err, err)
	}
}

func assertAdjacencyInvariant(t *testing.T, m *Map) {
	t.Helper()
	ts, _ := BuildTileSet(Full)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			a, ok := ts.Lookup(m.Tiles[y][x].Type)
			if !ok {
				continue
			}
			if x+1 < m.Width {
				b, ok := ts.Lookup(m.Tiles[y][x+1].Type)
				if ok && !ts.CanBeAdjacent(a, b) {
					t.Errorf("adjacency invariant violated between (%d,%d) and (%d,%d)", x, y, x+1, y)
				}
			}
			if y+1 < m.Height {
				b, ok := ts.Lookup(m.Tiles[y+1][x].Type)
				if ok && !ts.CanBeAdjacent(a, b) {
					t.Errorf("adjacency invariant violated between (%d,%d) and (%d,%d)", x, y, x, y+1)
				}
			}
		}
	}
}

func assertCatalogConsistency(t *testing.T, m *Map) {
	t.Helper()
	ts, _ := BuildTileSet(Full)
	for _, row := range m.Tiles {
		for _, tile := range row {
			id, ok := ts.Lookup(tile.Type)
			if !ok {
				t.Fatalf("tile type %q not present in the full catalog", tile.Type)
			}
			kind := ts.Kind(id)
			if kind.Walkable != tile.Walkable || kind.Height != tile.Height {
				t.Errorf("tile %q: walkable/height mismatch against catalog", tile.Type)
			}
		}
	}
}

func idFor(i int) string {
	letters := "abcdefghij"
	return string(letters[i])
}
