package engine

import (
	"math"
	"testing"

	"github.com/pthm-cable/discsim/components"
	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/vecmath"
)

const predictEps = 1e-9

// newFixtureSimulator builds a cols x rows grid with the given per-axis
// periodicity and n zero-value particles, wired with fixed elastic
// dynamics (restitution 1, zero gravity) and Neumann walls,
// so individual predicates can be exercised against hand-placed
// particles without going through placement/rejection sampling.
func newFixtureSimulator(cols, rows int, lengths vecmath.Vector2, periodic [2]bool, radius float64, n int) *Simulator {
	s := &Simulator{
		cells:       buildGrid(cols, rows, lengths, periodic),
		particles:   components.NewParticleArena(n),
		lengths:     lengths,
		periodic:    periodic,
		cols:        cols,
		rows:        rows,
		radius:      radius,
		restitution: 1.0,
		epsilon:     1e-9,
		syncRate:    1.0,
		walls: [2]vecmath.Extrema[WallBC]{
			{Min: WallBC{Kind: config.Neumann}, Max: WallBC{Kind: config.Neumann}},
			{Min: WallBC{Kind: config.Neumann}, Max: WallBC{Kind: config.Neumann}},
		},
	}
	all := s.particles.All()
	for i := range all {
		all[i].Radius = radius
	}
	return s
}

func centerCell(s *Simulator) *components.Cell {
	return s.cells.Get(components.CellID((s.rows/2)*s.cols + s.cols/2))
}

func TestPredictCollisionHeadOn(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 2)
	host := centerCell(s)

	p, q := s.particles.Get(0), s.particles.Get(1)
	p.Pos = vecmath.Vector2{X: 4, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 0}
	p.Scalar = 0.2
	q.Pos = vecmath.Vector2{X: 5, Y: 4.5}
	q.Vel = vecmath.Vector2{X: -1, Y: 0}
	q.Scalar = 0.8

	e, ok := s.predictCollision(host, 0, 1)
	if !ok {
		t.Fatalf("expected a collision prediction")
	}
	if e.Kind != components.EventCollision {
		t.Errorf("Kind = %v, want EventCollision", e.Kind)
	}
	// Discs start 1 apart, closing at relative speed 2, touching at gap
	// 2*radius = 0.4, so the remaining distance to close is 0.6.
	wantTime := 0.6 / 2
	if math.Abs(e.Time-wantTime) > 1e-6 {
		t.Errorf("Time = %v, want %v", e.Time, wantTime)
	}
	// Elastic head-on collision between equal masses swaps velocities.
	if math.Abs(e.NewVelP.X-(-1)) > 1e-6 || math.Abs(e.NewVelQ.X-1) > 1e-6 {
		t.Errorf("post-collision velocities = (%v, %v), want (-1, 1)", e.NewVelP.X, e.NewVelQ.X)
	}
	wantScalar := 0.5
	if math.Abs(e.NewScalarP-wantScalar) > 1e-9 || math.Abs(e.NewScalarQ-wantScalar) > 1e-9 {
		t.Errorf("post-collision scalars = (%v, %v), want (%v, %v)", e.NewScalarP, e.NewScalarQ, wantScalar, wantScalar)
	}
}

func TestPredictCollisionSeparatingRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 2)
	host := centerCell(s)

	p, q := s.particles.Get(0), s.particles.Get(1)
	p.Pos = vecmath.Vector2{X: 4, Y: 4.5}
	p.Vel = vecmath.Vector2{X: -1, Y: 0}
	q.Pos = vecmath.Vector2{X: 5, Y: 4.5}
	q.Vel = vecmath.Vector2{X: 1, Y: 0}

	if _, ok := s.predictCollision(host, 0, 1); ok {
		t.Errorf("expected no collision for a separating pair")
	}
}

func TestPredictCollisionZeroRelativeSpeedRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 2)
	host := centerCell(s)

	p, q := s.particles.Get(0), s.particles.Get(1)
	p.Pos = vecmath.Vector2{X: 4, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 1}
	q.Pos = vecmath.Vector2{X: 5, Y: 4.5}
	q.Vel = vecmath.Vector2{X: 1, Y: 1}

	if _, ok := s.predictCollision(host, 0, 1); ok {
		t.Errorf("expected no collision for parallel (zero relative speed) pair")
	}
}

func TestPredictCollisionAlreadyOverlappingRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 2)
	host := centerCell(s)

	p, q := s.particles.Get(0), s.particles.Get(1)
	p.Pos = vecmath.Vector2{X: 4, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 0}
	q.Pos = vecmath.Vector2{X: 4.1, Y: 4.5}
	q.Vel = vecmath.Vector2{X: -1, Y: 0}

	if _, ok := s.predictCollision(host, 0, 1); ok {
		t.Errorf("expected no collision for an already-overlapping pair")
	}
}

func TestPredictMoveToNeighbourInterior(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	host := centerCell(s)

	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 4.0, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 0}

	e, ok := s.predictMoveToNeighbour(host, 0, 0)
	if !ok {
		t.Fatalf("expected a move-to-neighbour prediction")
	}
	if e.Target != host.Neighbours[0].Max {
		t.Errorf("Target = %v, want the positive-x neighbour %v", e.Target, host.Neighbours[0].Max)
	}
	wantDelta := host.Bounds[0].Max - p.Radius - p.Pos.X
	if math.Abs(e.Time-wantDelta) > 1e-9 {
		t.Errorf("Time = %v, want %v", e.Time, wantDelta)
	}
}

func TestPredictMoveToNeighbourStationaryRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	host := centerCell(s)
	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 4.5, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 0, Y: 0}

	if _, ok := s.predictMoveToNeighbour(host, 0, 0); ok {
		t.Errorf("expected no move-to-neighbour event for a stationary particle")
	}
}

func TestPredictMoveToNeighbourOuterEdgeNonPeriodicRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	edgeCell := s.cells.Get(components.CellID(1*3 + 0)) // middle row, leftmost column
	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 1.0, Y: 4.5}
	p.Vel = vecmath.Vector2{X: -1, Y: 0}

	if _, ok := s.predictMoveToNeighbour(edgeCell, 0, 0); ok {
		t.Errorf("expected no move-to-neighbour event off the outer edge of a non-periodic axis")
	}
}

func TestPredictMoveOutOfCell(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	host := centerCell(s)
	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 4.0, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 0}

	e, ok := s.predictMoveOutOfCell(host, 0, 0)
	if !ok {
		t.Fatalf("expected a move-out-of-cell prediction")
	}
	wantDelta := host.Bounds[0].Max + p.Radius - p.Pos.X
	if math.Abs(e.Time-wantDelta) > 1e-9 {
		t.Errorf("Time = %v, want %v", e.Time, wantDelta)
	}
	// The disc stops overlapping host strictly later than it starts
	// crossing into the neighbour.
	moveIn, _ := s.predictMoveToNeighbour(host, 0, 0)
	if e.Time <= moveIn.Time {
		t.Errorf("move-out-of-cell time %v should exceed move-to-neighbour time %v", e.Time, moveIn.Time)
	}
}

func TestPredictWallReflection(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	s.walls[0].Min = WallBC{Kind: config.Dirichlet, Value: 1.0}
	edgeCell := s.cells.Get(components.CellID(1*3 + 0))

	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 0.5, Y: 4.5}
	p.Vel = vecmath.Vector2{X: -1, Y: 0}
	p.Scalar = 0.0

	e, ok := s.predictWallReflection(edgeCell, 0, 0)
	if !ok {
		t.Fatalf("expected a wall-reflection prediction")
	}
	if e.NewVelP.X != 1 {
		t.Errorf("NewVelP.X = %v, want 1 (reflected)", e.NewVelP.X)
	}
	wantScalar := 0.5 * (1.0 + 0.0)
	if math.Abs(e.NewScalarP-wantScalar) > 1e-9 {
		t.Errorf("NewScalarP = %v, want %v (Dirichlet relaxation)", e.NewScalarP, wantScalar)
	}
}

func TestPredictWallReflectionPeriodicAxisRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{true, false}, 0.2, 1)
	edgeCell := s.cells.Get(components.CellID(1*3 + 0))
	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 0.5, Y: 4.5}
	p.Vel = vecmath.Vector2{X: -1, Y: 0}

	if _, ok := s.predictWallReflection(edgeCell, 0, 0); ok {
		t.Errorf("expected no wall-reflection event on a periodic axis")
	}
}

func TestPredictWallReflectionMovingAwayFromWallRejected(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{false, false}, 0.2, 1)
	edgeCell := s.cells.Get(components.CellID(1*3 + 0))
	p := s.particles.Get(0)
	p.Pos = vecmath.Vector2{X: 0.5, Y: 4.5}
	p.Vel = vecmath.Vector2{X: 1, Y: 0}

	if _, ok := s.predictWallReflection(edgeCell, 0, 0); ok {
		t.Errorf("expected no wall-reflection event moving away from the wall")
	}
}

func TestMinimumImageAxisSkippedForInteriorCells(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{true, true}, 0.2, 0)
	host := centerCell(s)
	got := s.minimumImageAxis(7.0, 0, host)
	if got != 7.0 {
		t.Errorf("minimumImageAxis on an interior cell = %v, want unchanged 7.0", got)
	}
}

func TestMinimumImageAxisAppliedOnPeriodicSeam(t *testing.T) {
	s := newFixtureSimulator(3, 3, vecmath.Vector2{X: 9, Y: 9}, [2]bool{true, true}, 0.2, 0)
	edgeCell := s.cells.Get(components.CellID(0)) // row 0, col 0: NegativeEdge on both axes
	got := s.minimumImageAxis(7.0, 0, edgeCell)
	want := vecmath.MinimumImage(7.0, 9.0)
	if got != want {
		t.Errorf("minimumImageAxis on a periodic seam = %v, want %v", got, want)
	}
}
