package worldgen

import (
	"context"
	"testing"
)

func solveSmallGrid(t *testing.T, seed int64, w, h int) (*Grid, *Solver) {
	t.Helper()
	ts := testTileSet(t)
	g := NewGrid(w, h, ts)
	prop := NewPropagator(g)
	rng := NewRNG(seed)
	solver := NewSolver(g, prop, rng)
	status := solver.Run(context.Background(), DefaultSolverOptions())
	if status != StatusSucceeded {
		t.Fatalf("expected solver to succeed on an unconstrained small grid, got %v", status)
	}
	return g, solver
}

func TestSolverSucceedsOnSmallGrid(t *testing.T) {
	g, _ := solveSmallGrid(t, 7, 5, 5)
	if !g.AllCollapsed() {
		t.Error("expected every cell collapsed after a successful solve")
	}
}

func TestSolverIsDeterministicForSameSeed(t *testing.T) {
	g1, _ := solveSmallGrid(t, 99, 6, 6)
	g2, _ := solveSmallGrid(t, 99, 6, 6)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			t1, _ := g1.Cell(x, y).Tile()
			t2, _ := g2.Cell(x, y).Tile()
			if t1 != t2 {
				t.Fatalf("expected identical output for identical seed, differed at (%d,%d): %v != %v", x, y, t1, t2)
			}
		}
	}
}

func TestSolverRespectsAdjacencyInvariant(t *testing.T) {
	ts := testTileSet(t)
	g, _ := solveSmallGrid(t, 123, 8, 8)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			tile, _ := g.Cell(x, y).Tile()
			for _, n := range g.Neighbors(x, y) {
				other, _ := g.Cell(n.X, n.Y).Tile()
				if !ts.CanBeAdjacent(tile, other) {
					t.Errorf("invariant violated: (%d,%d)=%s not adjacent-compatible with (%d,%d)=%s",
						x, y, ts.Kind(tile).ID, n.X, n.Y, ts.Kind(other).ID)
				}
			}
		}
	}
}

func TestSolverCancellation(t *testing.T) {
	ts := testTileSet(t)
	g := NewGrid(10, 10, ts)
	prop := NewPropagator(g)
	rng := NewRNG(1)
	solver := NewSolver(g, prop, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := solver.Run(ctx, DefaultSolverOptions())
	if status != StatusCancelled {
		t.Errorf("expected Cancelled status for an already-cancelled context, got %v", status)
	}
}

func TestSolverReportsIterationsAndBacktracks(t *testing.T) {
	_, solver := solveSmallGrid(t, 55, 5, 5)
	if solver.Iterations() == 0 {
		t.Error("expected at least one iteration for a non-trivial grid")
	}
	if solver.Backtracks() < 0 {
		t.Error("backtracks should never be negative")
	}
}
