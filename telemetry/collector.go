package telemetry

import "github.com/pthm-cable/discsim/engine"

// Collector samples a Simulator once per synchronisation window and
// turns the snapshot into a WindowStats record.
type Collector struct {
	speeds  []float64
	scalars []float64
}

// NewCollector creates a stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Sample reads sim's current particle snapshot and produces the
// window's WindowStats. Unit mass is assumed for every disc, matching
// the simulation core's dynamics (collision response never
// refers to a mass parameter).
func (c *Collector) Sample(sim *engine.Simulator) WindowStats {
	views := sim.ParticlesView()

	c.speeds = c.speeds[:0]
	c.scalars = c.scalars[:0]

	var momentumX, momentumY, ke, maxSpeed float64
	for _, v := range views {
		momentumX += v.Vel.X
		momentumY += v.Vel.Y
		speed := v.Vel.Len()
		ke += 0.5 * speed * speed
		if speed > maxSpeed {
			maxSpeed = speed
		}
		c.speeds = append(c.speeds, speed)
		c.scalars = append(c.scalars, v.Scalar)
	}

	mean, stddev := computeScalarStats(c.scalars)

	return WindowStats{
		WindowEnd:     sim.Time(),
		Particles:     len(views),
		MomentumX:     momentumX,
		MomentumY:     momentumY,
		KineticEnergy: ke,
		MaxSpeed:      maxSpeed,
		ScalarMean:    mean,
		ScalarStdDev:  stddev,
	}
}
