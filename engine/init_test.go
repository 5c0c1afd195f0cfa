package engine

import (
	"math"
	"testing"

	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/vecmath"
)

func newTestConfig(t *testing.T, count int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Particles.Count = count
	return cfg
}

func TestNewZeroInitialMomentum(t *testing.T) {
	sim, err := New(newTestConfig(t, 40))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var sum vecmath.Vector2
	for _, p := range sim.ParticlesView() {
		sum = sum.Add(p.Vel)
	}
	const eps = 1e-9
	if math.Abs(sum.X) > eps || math.Abs(sum.Y) > eps {
		t.Errorf("total initial momentum = %v, want ~(0,0)", sum)
	}
}

func TestNewNoOverlappingParticles(t *testing.T) {
	sim, err := New(newTestConfig(t, 40))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	views := sim.ParticlesView()
	minSep := 2 * sim.Radius()

	for i := 0; i < len(views); i++ {
		for j := i + 1; j < len(views); j++ {
			d := vecmath.MinimumDistance(sim.lengths, views[i].Pos, views[j].Pos)
			if d < minSep-1e-9 {
				t.Fatalf("particles %d and %d overlap: distance %v < %v", i, j, d, minSep)
			}
		}
	}
}

func TestNewRejectsUndersizedCells(t *testing.T) {
	cfg := newTestConfig(t, 1)
	cfg.Particles.Radius = 10
	if _, err := New(cfg); err == nil {
		t.Errorf("expected an error when the radius makes cells too small, got nil")
	}
}

func TestNewCapsParticleCountToDensityLimit(t *testing.T) {
	cfg := newTestConfig(t, 1_000_000)
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(sim.ParticlesView()); got >= cfg.Particles.Count {
		t.Errorf("particle count = %d, want it capped below the requested %d", got, cfg.Particles.Count)
	}
}

func TestSchedulerBuiltFromInitialEventsIsValid(t *testing.T) {
	sim, err := New(newTestConfig(t, 40))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sim.scheduler.HeapOrderValid() {
		t.Errorf("scheduler heap order invalid immediately after New")
	}
}

func TestIntegrateAdvancesTimeBySyncRate(t *testing.T) {
	cfg := newTestConfig(t, 40)
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 1; i <= 5; i++ {
		sim.Integrate()
		want := float64(i) * cfg.Sync.Rate
		if math.Abs(sim.Time()-want) > 1e-9 {
			t.Fatalf("after %d windows, Time() = %v, want %v", i, sim.Time(), want)
		}
		if !sim.scheduler.HeapOrderValid() {
			t.Fatalf("after %d windows, scheduler heap order invalid", i)
		}
	}
}

func TestIntegratePreservesParticleCountAndNoOverlap(t *testing.T) {
	sim, err := New(newTestConfig(t, 40))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := len(sim.ParticlesView())

	for i := 0; i < 10; i++ {
		sim.Integrate()
	}

	views := sim.ParticlesView()
	if len(views) != n {
		t.Fatalf("particle count changed from %d to %d across Integrate calls", n, len(views))
	}
	minSep := 2 * sim.Radius()
	for i := 0; i < len(views); i++ {
		for j := i + 1; j < len(views); j++ {
			d := vecmath.MinimumDistance(sim.lengths, views[i].Pos, views[j].Pos)
			if d < minSep-1e-6 {
				t.Errorf("particles %d and %d overlap after integration: distance %v < %v", i, j, d, minSep)
			}
		}
	}
}

func TestDynamicsGetSet(t *testing.T) {
	sim, err := New(newTestConfig(t, 10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	restitution, _ := sim.Dynamics()
	if restitution <= 0 {
		t.Fatalf("initial restitution = %v, want > 0", restitution)
	}

	sim.SetDynamics(0.5, vecmath.Vector2{X: 0.1, Y: -0.2})
	newRestitution, newGravity := sim.Dynamics()
	if newRestitution != 0.5 {
		t.Errorf("restitution after SetDynamics = %v, want 0.5", newRestitution)
	}
	if newGravity != (vecmath.Vector2{X: 0.1, Y: -0.2}) {
		t.Errorf("gravity after SetDynamics = %v, want (0.1, -0.2)", newGravity)
	}
}
