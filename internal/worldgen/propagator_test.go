package worldgen

import (
	"errors"
	"testing"
)

func TestPropagateRestrictsNeighbors(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 1, ts)
	deepWater := ts.MustLookup(TileDeepWater)

	g.SeedCell(1, 0, deepWater)
	prop := NewPropagator(g)
	if _, err := prop.Propagate(1, 0); err != nil {
		t.Fatalf("unexpected propagation error: %v", err)
	}

	left := g.Cell(0, 0)
	if left.Possibilities()&^ts.NeighborsOf(deepWater) != 0 {
		t.Error("expected left neighbor's possibilities to be restricted to deep water's allowed neighbors")
	}
}

func TestPropagateDetectsContradiction(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 1, ts)
	deepWater := ts.MustLookup(TileDeepWater)
	peak := ts.MustLookup(TilePeak)

	g.SeedCell(0, 0, deepWater)
	g.SeedCell(1, 0, peak) // deep_water and peak never share an allowed edge

	prop := NewPropagator(g)
	_, err := prop.Propagate(0, 0)
	if err == nil {
		_, err = prop.Propagate(1, 0)
	}
	if err == nil {
		t.Fatal("expected a contradiction between incompatible seeded neighbors")
	}
	var ce *ContradictionError
	if !errors.As(err, &ce) {
		t.Errorf("expected *ContradictionError, got %T: %v", err, err)
	}
}

func TestRestoreDiffUndoesChanges(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 1, ts)
	deepWater := ts.MustLookup(TileDeepWater)

	before := g.Cell(0, 0).Possibilities()
	g.SeedCell(1, 0, deepWater)
	prop := NewPropagator(g)
	diff, err := prop.Propagate(1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prop.RestoreDiff(diff)
	if g.Cell(0, 0).Possibilities() != before {
		t.Error("expected RestoreDiff to fully undo the propagation's effect on neighbor possibilities")
	}
}

func TestPropagateAllSeedsFromEveryCollapsedCell(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 3, ts)
	grass := ts.MustLookup(TileGrass)
	g.SeedCell(0, 0, grass)
	g.SeedCell(2, 2, grass)

	prop := NewPropagator(g)
	if _, err := prop.PropagateAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Cell(1, 0).Possibilities()&^ts.NeighborsOf(grass) != 0 {
		t.Error("expected neighbor of (0,0) to be constrained")
	}
}

func TestIsValidPlacementRejectsIncompatibleNeighbor(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(3, 1, ts)
	peak := ts.MustLookup(TilePeak)
	deepWater := ts.MustLookup(TileDeepWater)
	g.SeedCell(0, 0, peak)

	prop := NewPropagator(g)
	if prop.IsValidPlacement(1, 0, deepWater) {
		t.Error("expected placement next to peak to reject deep_water")
	}
}
