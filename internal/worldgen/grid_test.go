package worldgen

import "testing"

func TestNewGridDimensions(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(5, 3, ts)
	if g.W != 5 || g.H != 3 {
		t.Fatalf("expected 5x3 grid, got %dx%d", g.W, g.H)
	}
	if g.CountUncollapsed() != 15 {
		t.Errorf("expected all 15 cells uncollapsed, got %d", g.CountUncollapsed())
	}
}

func TestGridNeighborsFixedOrderAndBounds(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 3, ts)

	corner := g.Neighbors(0, 0)
	if len(corner) != 2 {
		t.Fatalf("expected 2 in-bounds neighbors at corner, got %d", len(corner))
	}
	if corner[0].Dir != East || corner[1].Dir != South {
		t.Errorf("expected corner neighbor order East,South, got %v,%v", corner[0].Dir, corner[1].Dir)
	}

	center := g.Neighbors(1, 1)
	if len(center) != 4 {
		t.Fatalf("expected 4 in-bounds neighbors at center, got %d", len(center))
	}
	wantOrder := []Direction{North, East, South, West}
	for i, n := range center {
		if n.Dir != wantOrder[i] {
			t.Errorf("neighbor %d: expected direction %v, got %v", i, wantOrder[i], n.Dir)
		}
	}
}

func TestGridSeedCellForceCollapses(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 3, ts)
	grass := ts.MustLookup(TileGrass)
	g.SeedCell(1, 1, grass)

	cell := g.Cell(1, 1)
	if !cell.Collapsed() {
		t.Fatal("expected seeded cell to be collapsed")
	}
	tile, _ := cell.Tile()
	if tile != grass {
		t.Errorf("expected seeded tile to be grass, got %v", tile)
	}
}

func TestApplyRegionModifiersOnlyAffectsRectAndUncollapsed(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(4, 4, ts)
	forest := ts.MustLookup(TileForest)

	g.SeedCell(0, 0, forest) // collapsed; must be untouched by the modifier

	rect := Rect{XMin: 0, XMax: 2, YMin: 0, YMax: 2}
	before := g.Cell(1, 1).Weight(forest)
	g.ApplyRegionModifiers(rect, map[TileID]float64{forest: 3})
	after := g.Cell(1, 1).Weight(forest)

	if after != before*3 {
		t.Errorf("expected weight to be multiplied by 3 inside rect, got %v from %v", after, before)
	}

	outsideBefore := g.Cell(3, 3).Weight(forest)
	g.ApplyRegionModifiers(rect, map[TileID]float64{forest: 3})
	if g.Cell(3, 3).Weight(forest) != outsideBefore {
		t.Error("expected cells outside rect to be unaffected")
	}

	collapsedWeight := g.Cell(0, 0).Weight(forest)
	if collapsedWeight != ts.BaseWeight(forest) {
		t.Error("region modifiers must not affect an already-collapsed cell's weights")
	}
}

func TestSetWeightsRegionReplacesNotMultiplies(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(4, 4, ts)
	grass := ts.MustLookup(TileGrass)

	g.SetWeightsRegion(Rect{XMin: 0, XMax: 4, YMin: 0, YMax: 4}, map[TileID]float64{grass: 0.5})
	if g.Cell(2, 2).Weight(grass) != 0.5 {
		t.Errorf("expected replaced weight 0.5, got %v", g.Cell(2, 2).Weight(grass))
	}

	g.SetWeightsRegion(Rect{XMin: 0, XMax: 4, YMin: 0, YMax: 4}, map[TileID]float64{grass: 0.2})
	if g.Cell(2, 2).Weight(grass) != 0.2 {
		t.Errorf("expected second replace to overwrite, got %v", g.Cell(2, 2).Weight(grass))
	}
}

func TestRectClip(t *testing.T) {
	r := Rect{XMin: -5, XMax: 100, YMin: -5, YMax: 100}.clip(10, 10)
	if r.XMin != 0 || r.XMax != 10 || r.YMin != 0 || r.YMax != 10 {
		t.Errorf("expected rect clipped to grid bounds, got %+v", r)
	}
}
