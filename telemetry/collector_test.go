package telemetry

import (
	"testing"

	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/engine"
)

func TestCollectorSampleZeroMomentum(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Particles.Count = 30

	sim, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	c := NewCollector()
	stats := c.Sample(sim)

	if stats.Particles != 30 {
		t.Errorf("Particles = %d, want 30", stats.Particles)
	}
	const eps = 1e-9
	if stats.MomentumX > eps || stats.MomentumX < -eps {
		t.Errorf("MomentumX = %v, want ~0", stats.MomentumX)
	}
	if stats.MomentumY > eps || stats.MomentumY < -eps {
		t.Errorf("MomentumY = %v, want ~0", stats.MomentumY)
	}
	if stats.KineticEnergy <= 0 {
		t.Errorf("KineticEnergy = %v, want > 0", stats.KineticEnergy)
	}
}
