package engine

import "github.com/pthm-cable/discsim/components"

// pairKey identifies one unordered particle pair hosted by one cell, so
// that cancelAndReschedule predicts a shared collision at most once per
// host even when both participants are being rescheduled together.
type pairKey struct {
	cid    components.CellID
	lo, hi components.ParticleID
}

func minID(a, b components.ParticleID) components.ParticleID {
	if a < b {
		return a
	}
	return b
}

func maxID(a, b components.ParticleID) components.ParticleID {
	if a > b {
		return a
	}
	return b
}

// predictFor computes every pending event p could trigger while hosted
// in cid: a collision against each other resident not yet seen for
// this (cid, pair) combination, and the axis-scoped move/wall
// predicates. seen is shared across a whole reschedule pass so a pair
// sharing two cells is still predicted independently per host, while a
// pair both present in `changed` within the same host is not predicted
// twice.
func (s *Simulator) predictFor(pid components.ParticleID, cid components.CellID, seen map[pairKey]bool) []components.Event {
	host := s.cells.Get(cid)
	p := s.particles.Get(pid)
	var out []components.Event

	for _, qid := range host.Residents {
		if qid == pid {
			continue
		}
		// Bring the other resident up to p's local time before using its
		// position: the two discs' geometry is only comparable once both
		// are extrapolated to the same instant.
		s.particles.Get(qid).AdvanceTo(p.LocalTime, s.lengths, s.periodic)

		key := pairKey{cid, minID(pid, qid), maxID(pid, qid)}
		if seen[key] {
			continue
		}
		seen[key] = true
		if e, ok := s.predictCollision(host, pid, qid); ok {
			out = append(out, e)
		}
	}

	for axis := 0; axis < 2; axis++ {
		if e, ok := s.predictMoveToNeighbour(host, pid, axis); ok {
			out = append(out, e)
		}
		if e, ok := s.predictMoveOutOfCell(host, pid, axis); ok {
			out = append(out, e)
		}
		if e, ok := s.predictWallReflection(host, pid, axis); ok {
			out = append(out, e)
		}
	}

	return out
}

// insertEvent adds e to cid's event list and repairs the scheduler's
// heap order for cid. Must not be called before the scheduler exists;
// initialisation inserts directly into the cell arena instead (spec
// §4.8 builds the heap from an already-populated event list).
func (s *Simulator) insertEvent(cid components.CellID, e components.Event) {
	cell := s.cells.Get(cid)
	old := cell.HeadTime()
	cell.InsertEvent(e)
	s.scheduler.Update(cid, old, cell.HeadTime())
}

func (s *Simulator) cancelReferencing(cid components.CellID, pid components.ParticleID) {
	cell := s.cells.Get(cid)
	old := cell.HeadTime()
	cell.CancelReferencing(pid)
	s.scheduler.Update(cid, old, cell.HeadTime())
}

// updateMembership recomputes which cells pid's disc now overlaps,
// given its current Pos, and keeps Cell.Residents in sync.
func (s *Simulator) updateMembership(pid components.ParticleID) {
	p := s.particles.Get(pid)
	next := s.cellsForDisc(p.Pos, p.Radius)

	for _, cid := range p.Membership {
		if !containsCell(next, cid) {
			s.cells.Get(cid).RemoveResident(pid)
		}
	}
	for _, cid := range next {
		if !p.HasCell(cid) {
			s.cells.Get(cid).AddResident(pid)
		}
	}
	p.Membership = append(p.Membership[:0], next...)
}

func containsCell(list []components.CellID, id components.CellID) bool {
	for _, c := range list {
		if c == id {
			return true
		}
	}
	return false
}

// cancelAndReschedule is the cascade every non-synchronisation dispatch
// runs afterward: cancel every pending event referencing
// any changed particle across all the cells it was a member of, update
// cell residency for its new position, then predict and insert the
// events that follow from its new state.
func (s *Simulator) cancelAndReschedule(changed []components.ParticleID) {
	for _, pid := range changed {
		p := s.particles.Get(pid)
		for _, cid := range p.Membership {
			s.cancelReferencing(cid, pid)
		}
	}

	for _, pid := range changed {
		s.updateMembership(pid)
	}

	seen := make(map[pairKey]bool)
	for _, pid := range changed {
		p := s.particles.Get(pid)
		for _, cid := range p.Membership {
			for _, e := range s.predictFor(pid, cid, seen) {
				s.insertEvent(cid, e)
			}
		}
	}

	s.checkInvariants()
}

// dispatch applies e's predicted post-event state and reschedules every
// particle it touched. Synchronisation events are handled by the
// integration loop directly, not here.
func (s *Simulator) dispatch(e components.Event) {
	switch e.Kind {
	case components.EventCollision:
		p, q := s.particles.Get(e.P), s.particles.Get(e.Q)
		p.Pos, p.Vel, p.Scalar, p.LocalTime = e.NewPosP, e.NewVelP, e.NewScalarP, e.Time
		q.Pos, q.Vel, q.Scalar, q.LocalTime = e.NewPosQ, e.NewVelQ, e.NewScalarQ, e.Time
		s.cancelAndReschedule([]components.ParticleID{e.P, e.Q})

	case components.EventMoveToNeighbour, components.EventMoveOutOfCell:
		p := s.particles.Get(e.P)
		p.Pos, p.LocalTime = e.NewPosP, e.Time
		s.cancelAndReschedule([]components.ParticleID{e.P})

	case components.EventWallReflection:
		p := s.particles.Get(e.P)
		p.Pos, p.Vel, p.Scalar, p.LocalTime = e.NewPosP, e.NewVelP, e.NewScalarP, e.Time
		s.cancelAndReschedule([]components.ParticleID{e.P})
	}
}
