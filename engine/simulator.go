// Package engine implements the event-driven kernel: the spatial grid,
// the per-cell event lists, the cell scheduler, the analytic event
// predicates, and the dispatch/cancel/reschedule cascade that keeps
// them all consistent.
package engine

import (
	"fmt"
	"math"

	"github.com/pthm-cable/discsim/components"
	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/prng"
	"github.com/pthm-cable/discsim/vecmath"
)

// WallBC is one wall's boundary condition for the scalar tracer field.
type WallBC struct {
	Kind  config.WallBCKind
	Value float64
}

// Apply returns the new scalar value for a particle bouncing off this
// wall carrying old as its pre-bounce value. Dirichlet walls relax
// halfway toward the wall's fixed value; Neumann walls leave it
// unchanged .
func (w WallBC) Apply(old float64) float64 {
	if w.Kind == config.Dirichlet {
		return 0.5 * (w.Value + old)
	}
	return old
}

// Simulator holds every particle, every cell, and the scheduler that
// orders events across them. It is the sole owner of all simulation
// state — nothing here is referenced from outside except
// through its exported methods and the DebugChecks flag.
type Simulator struct {
	particles *components.ParticleArena
	cells     *components.CellArena
	scheduler *Scheduler

	lengths  vecmath.Vector2
	periodic [2]bool
	cols     int
	rows     int

	radius      float64
	restitution float64
	gravity     vecmath.Vector2
	epsilon     float64
	syncRate    float64
	walls       [2]vecmath.Extrema[WallBC]

	time float64

	// DebugChecks gates the invariant assertions . Off by
	// default; a caller sets it to enable them.
	DebugChecks bool
}

// ParticleView is the read-only sample of one particle's state exposed
// to callers outside the core (renderers, CSV export, the driver loop).
type ParticleView struct {
	Index  components.ParticleID
	Pos    vecmath.Vector2
	Vel    vecmath.Vector2
	Scalar float64
}

// New builds a Simulator from cfg: constructs the cell grid, places
// nparticles non-overlapping particles, and populates every cell's
// initial event list. It fails fast on any configuration
// fault — callers must not retry with the same cfg.
func New(cfg *config.Config) (*Simulator, error) {
	lengths := vecmath.Vector2{X: cfg.Domain.LengthX, Y: cfg.Domain.LengthY}
	periodic := [2]bool{cfg.Domain.PeriodicX, cfg.Domain.PeriodicY}
	radius := cfg.Particles.Radius

	cols := axisCellCount(lengths.X)
	rows := axisCellCount(lengths.Y)

	cellW := lengths.X / float64(cols)
	cellH := lengths.Y / float64(rows)
	if cellW <= 4*radius || cellH <= 4*radius {
		return nil, fmt.Errorf("engine: cell edge (%.4f, %.4f) must exceed 4*radius (%.4f)", cellW, cellH, 4*radius)
	}

	cap := int(0.4 * lengths.X * lengths.Y / (math.Pi * radius * radius))
	count := cfg.Particles.Count
	if count > cap {
		count = cap
	}

	s := &Simulator{
		cells:       buildGrid(cols, rows, lengths, periodic),
		particles:   components.NewParticleArena(count),
		lengths:     lengths,
		periodic:    periodic,
		cols:        cols,
		rows:        rows,
		radius:      radius,
		restitution: cfg.Dynamics.Restitution,
		gravity:     vecmath.Vector2{X: cfg.Dynamics.GravityX, Y: cfg.Dynamics.GravityY},
		epsilon:     cfg.Dynamics.Epsilon,
		syncRate:    cfg.Sync.Rate,
		walls: [2]vecmath.Extrema[WallBC]{
			{Min: WallBC{Kind: cfg.Boundary.XMin.Kind, Value: cfg.Boundary.XMin.Value}, Max: WallBC{Kind: cfg.Boundary.XMax.Kind, Value: cfg.Boundary.XMax.Value}},
			{Min: WallBC{Kind: cfg.Boundary.YMin.Kind, Value: cfg.Boundary.YMin.Value}, Max: WallBC{Kind: cfg.Boundary.YMax.Kind, Value: cfg.Boundary.YMax.Value}},
		},
	}

	rng := prng.NewFromUnit(cfg.Particles.Seed)
	if err := s.placeParticles(rng); err != nil {
		return nil, err
	}
	s.zeroNetMomentum()
	s.populateInitialEvents()
	s.scheduler = NewScheduler(s.cells)
	s.checkInvariants()

	return s, nil
}

func axisCellCount(length float64) int {
	n := int(math.Floor(length / 3.0))
	if n < 3 {
		n = 3
	}
	return n
}

// Radius returns the fixed particle radius.
func (s *Simulator) Radius() float64 {
	return s.radius
}

// ParticlesView returns a read-only snapshot of every particle's
// position, velocity and scalar value, in stable index order.
func (s *Simulator) ParticlesView() []ParticleView {
	all := s.particles.All()
	out := make([]ParticleView, len(all))
	for i := range all {
		out[i] = ParticleView{Index: all[i].Index, Pos: all[i].Pos, Vel: all[i].Vel, Scalar: all[i].Scalar}
	}
	return out
}

// Time returns the simulation clock as of the last Integrate return.
func (s *Simulator) Time() float64 {
	return s.time
}

// NumCells returns the number of cells in the grid (the grid is fixed
// for the Simulator's lifetime).
func (s *Simulator) NumCells() int {
	return s.cells.Len()
}

// Dynamics returns the current restitution coefficient and pseudo-gravity bias.
func (s *Simulator) Dynamics() (restitution float64, gravity vecmath.Vector2) {
	return s.restitution, s.gravity
}

// SetDynamics updates the restitution coefficient and pseudo-gravity
// bias used by future collision predictions. Events already queued
// were predicted under the old values and are left untouched; each
// particle's events use the new values from the next time a
// cancel/reschedule cascade re-predicts them.
func (s *Simulator) SetDynamics(restitution float64, gravity vecmath.Vector2) {
	s.restitution = restitution
	s.gravity = gravity
}
