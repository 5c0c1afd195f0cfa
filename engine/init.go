package engine

import (
	"fmt"

	"github.com/pthm-cable/discsim/components"
	"github.com/pthm-cable/discsim/prng"
	"github.com/pthm-cable/discsim/vecmath"
)

const placementMaxAttempts = 20000

// placeParticles fills the arena with non-overlapping discs by
// rejection sampling, then draws each particle an independent uniform
// velocity on [-1, 1]^2 and a deterministic hot/cold scalar value from
// which diagonal half of the domain it lands in. Non-periodic axes keep
// the whole disc inside the domain from the start; periodic axes place
// anywhere.
func (s *Simulator) placeParticles(rng *prng.Source) error {
	all := s.particles.All()
	for i := range all {
		placed := false
		for attempt := 0; attempt < placementMaxAttempts; attempt++ {
			pos := vecmath.Vector2{
				X: s.randomAxisPos(rng, 0),
				Y: s.randomAxisPos(rng, 1),
			}
			if s.overlapsAny(pos, all[:i]) {
				continue
			}
			all[i].Radius = s.radius
			all[i].Pos = pos
			all[i].Vel = vecmath.Vector2{X: rng.Symmetric(1), Y: rng.Symmetric(1)}
			all[i].Scalar = diagonalScalar(pos, s.lengths)
			all[i].LocalTime = 0
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("engine: could not place particle %d without overlap after %d attempts", i, placementMaxAttempts)
		}
	}
	return nil
}

// diagonalScalar returns 1 for a position on the upper-left side of the
// domain's diagonal (pos.X/lengths.X < pos.Y/lengths.Y) and 0 otherwise, giving the
// initial hot/cold split the scalar field mixes away from.
func diagonalScalar(pos, lengths vecmath.Vector2) float64 {
	if pos.X/lengths.X < pos.Y/lengths.Y {
		return 1
	}
	return 0
}

func (s *Simulator) randomAxisPos(rng *prng.Source, axis int) float64 {
	length := s.lengths.Component(axis)
	if s.periodic[axis] {
		return rng.Uniform(0, length)
	}
	return rng.Uniform(s.radius, length-s.radius)
}

func (s *Simulator) overlapsAny(pos vecmath.Vector2, placed []components.Particle) bool {
	minSep := 2 * s.radius
	for i := range placed {
		if vecmath.MinimumDistance(s.lengths, pos, placed[i].Pos) < minSep {
			return true
		}
	}
	return false
}

// zeroNetMomentum subtracts the mean velocity from every particle so
// the system starts with exactly zero total momentum .
func (s *Simulator) zeroNetMomentum() {
	all := s.particles.All()
	var sum vecmath.Vector2
	for i := range all {
		sum = sum.Add(all[i].Vel)
	}
	mean := sum.Div(float64(len(all)))
	for i := range all {
		all[i].Vel = all[i].Vel.Sub(mean)
	}
}

// populateInitialEvents establishes cell residency for every particle
// at its starting position and predicts the first event list for every
// cell, inserting directly into the arena — the scheduler is built from
// these lists immediately afterward, so it must not be touched here
// .
func (s *Simulator) populateInitialEvents() {
	all := s.particles.All()
	for i := range all {
		pid := components.ParticleID(i)
		for _, cid := range s.cellsForDisc(all[i].Pos, all[i].Radius) {
			s.cells.Get(cid).AddResident(pid)
			all[i].AddCell(cid)
		}
	}

	seen := make(map[pairKey]bool)
	for i := range all {
		pid := components.ParticleID(i)
		for _, cid := range all[i].Membership {
			for _, e := range s.predictFor(pid, cid, seen) {
				s.cells.Get(cid).InsertEvent(e)
			}
		}
	}

	s.cells.Get(0).InsertEvent(components.Event{
		Kind: components.EventSynchronisation,
		Time: s.syncRate,
		Host: 0,
	})
}
