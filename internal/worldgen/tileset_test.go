package worldgen

import "testing"

func TestBuildTileSetTerrainOnly(t *testing.T) {
	ts, err := BuildTileSet(TerrainOnly)
	if err != nil {
		t.Fatalf("BuildTileSet(TerrainOnly) failed: %v", err)
	}
	if len(ts.IDs()) == 0 {
		t.Fatal("expected a non-empty terrain catalog")
	}
	grassID, ok := ts.Lookup(TileGrass)
	if !ok {
		t.Fatal("expected grass in the terrain catalog")
	}
	if ts.BaseWeight(grassID) <= 0 {
		t.Errorf("grass weight should be positive, got %v", ts.BaseWeight(grassID))
	}
}

func TestBuildTileSetFull(t *testing.T) {
	ts, err := BuildTileSet(Full)
	if err != nil {
		t.Fatalf("BuildTileSet(Full) failed: %v", err)
	}
	if len(ts.IDs()) <= 21 {
		t.Errorf("expected full catalog to exceed terrain-only count, got %d kinds", len(ts.IDs()))
	}
	if _, ok := ts.Lookup(TileMarket); !ok {
		t.Error("expected market structure tile in full catalog")
	}
}

func TestTileSetAdjacencyIsSymmetric(t *testing.T) {
	ts, err := BuildTileSet(TerrainOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range ts.IDs() {
		for _, b := range ts.NeighborsOf(a).ids() {
			if !ts.NeighborsOf(b).has(a) {
				t.Errorf("asymmetric adjacency: %s -> %s declared, but not reverse", ts.Kind(a).ID, ts.Kind(b).ID)
			}
		}
	}
}

func TestBuildFromSpecSymmetrizesSinglyDeclaredPair(t *testing.T) {
	spec := catalogSpec{
		kinds: []TileKind{
			{ID: "a", Weight: 1, Category: CategoryTerrain},
			{ID: "b", Weight: 1, Category: CategoryTerrain},
		},
		adjacency: [][2]string{{"a", "b"}},
	}
	ts, err := buildFromSpec(TerrainOnly, spec)
	if err != nil {
		t.Fatalf("expected symmetric pair to build cleanly, got %v", err)
	}
	a, _ := ts.Lookup("a")
	b, _ := ts.Lookup("b")
	if !ts.CanBeAdjacent(a, b) || !ts.CanBeAdjacent(b, a) {
		t.Error("expected a single declared pair to symmetrize in both directions")
	}
}

func TestBuildFromSpecRejectsNonPositiveWeight(t *testing.T) {
	spec := catalogSpec{
		kinds: []TileKind{{ID: "a", Weight: 0, Category: CategoryTerrain}},
	}
	if _, err := buildFromSpec(TerrainOnly, spec); err == nil {
		t.Error("expected error for non-positive weight")
	}
}

func TestBuildFromSpecRejectsDuplicateID(t *testing.T) {
	spec := catalogSpec{
		kinds: []TileKind{
			{ID: "a", Weight: 1, Category: CategoryTerrain},
			{ID: "a", Weight: 1, Category: CategoryTerrain},
		},
	}
	if _, err := buildFromSpec(TerrainOnly, spec); err == nil {
		t.Error("expected error for duplicate tile id")
	}
}

func TestBuildFromSpecRejectsUnknownAdjacencyID(t *testing.T) {
	spec := catalogSpec{
		kinds:     []TileKind{{ID: "a", Weight: 1, Category: CategoryTerrain}},
		adjacency: [][2]string{{"a", "ghost"}},
	}
	if _, err := buildFromSpec(TerrainOnly, spec); err == nil {
		t.Error("expected error for adjacency referencing unknown id")
	}
}

func TestBuildFromSpecRejectsOversizeCatalog(t *testing.T) {
	kinds := make([]TileKind, 65)
	for i := range kinds {
		kinds[i] = TileKind{ID: string(rune('a' + i)), Weight: 1, Category: CategoryTerrain}
	}
	if _, err := buildFromSpec(TerrainOnly, catalogSpec{kinds: kinds}); err == nil {
		t.Error("expected error for catalog exceeding 64 kinds")
	}
}

func TestIDsByCategoryIsSorted(t *testing.T) {
	ts, err := BuildTileSet(TerrainOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := ts.IDsByCategory(CategoryForest)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("expected sorted ids, got %v", ids)
		}
	}
}
