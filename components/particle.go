// Package components defines the data carried by the event-driven
// simulation: particles, cells, and the tagged event variants that
// connect them. Types here are plain data plus the small bookkeeping
// methods their invariants require (membership, residency, the
// per-cell sorted event list) — the scheduling and predicate logic
// that operates on this data lives in package engine.
package components

import "github.com/pthm-cable/discsim/vecmath"

// ParticleID identifies a particle by its position in the particle
// arena. Particles are created once at init and never destroyed, so
// ParticleID is stable for the life of a Simulator.
type ParticleID uint32

// Particle is the state carrier for one disc: position, velocity,
// radius, scalar tracer value, local time, and cell membership.
type Particle struct {
	Index     ParticleID
	Radius    float64
	Pos       vecmath.Vector2
	Vel       vecmath.Vector2
	LocalTime float64
	Scalar    float64

	// Membership holds the cells whose bounds intersect this particle's
	// disc at Pos (as of LocalTime). Size is 1, 2, or 4 in the interior
	// of the grid.
	Membership []CellID
}

// HasCell reports whether c is in the particle's membership set.
func (p *Particle) HasCell(c CellID) bool {
	for _, m := range p.Membership {
		if m == c {
			return true
		}
	}
	return false
}

// AddCell registers c in the particle's membership set if not already
// present.
func (p *Particle) AddCell(c CellID) {
	if !p.HasCell(c) {
		p.Membership = append(p.Membership, c)
	}
}

// RemoveCell removes c from the particle's membership set.
func (p *Particle) RemoveCell(c CellID) {
	for i, m := range p.Membership {
		if m == c {
			p.Membership = append(p.Membership[:i], p.Membership[i+1:]...)
			return
		}
	}
}

// AdvanceTo extrapolates Pos to time t using the particle's current
// velocity, wrapping each axis into [0, length) at most once, and sets
// LocalTime to t. Callers must not call this with t < LocalTime.
func (p *Particle) AdvanceTo(t float64, lengths vecmath.Vector2, periodic [2]bool) {
	if t == p.LocalTime {
		return
	}
	p.Pos = vecmath.Advance(p.Pos, p.Vel, t-p.LocalTime, lengths, periodic)
	p.LocalTime = t
}

// ParticleArena is the slab of all particles, indexed by ParticleID.
type ParticleArena struct {
	particles []Particle
}

// NewParticleArena allocates an arena with n zero-value particles.
func NewParticleArena(n int) *ParticleArena {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i].Index = ParticleID(i)
	}
	return &ParticleArena{particles: particles}
}

// Get returns a pointer to the particle with the given id.
func (a *ParticleArena) Get(id ParticleID) *Particle {
	return &a.particles[id]
}

// Len returns the number of particles in the arena.
func (a *ParticleArena) Len() int {
	return len(a.particles)
}

// All returns the backing slice. Callers must not resize it — particle
// count is fixed after initialisation.
func (a *ParticleArena) All() []Particle {
	return a.particles
}
