package engine

import "github.com/pthm-cable/discsim/components"

// step pops and returns the single earliest pending event across the
// whole system, repairing the scheduler's heap for the cell it came
// from.
func (s *Simulator) step() components.Event {
	cid := s.scheduler.Get()
	cell := s.cells.Get(cid)
	old := cell.HeadTime()
	e := cell.PopFront()
	s.scheduler.Update(cid, old, cell.HeadTime())
	return e
}

// Integrate advances the simulation from one synchronisation barrier to
// the next, dispatching every intervening event, then returns with
// Time() set to the new barrier and a fresh barrier scheduled one
// Sync.Rate further out . Callers sample ParticlesView
// between calls to build a windowed trajectory.
func (s *Simulator) Integrate() {
	for {
		e := s.step()
		if e.Kind == components.EventSynchronisation {
			s.time = e.Time
			s.advanceAllToNow()
			s.insertEvent(0, components.Event{
				Kind: components.EventSynchronisation,
				Time: s.time + s.syncRate,
				Host: 0,
			})
			s.checkInvariants()
			return
		}
		s.dispatch(e)
	}
}

// advanceAllToNow brings every particle's Pos/LocalTime up to s.time,
// so that ParticlesView after Integrate reflects the barrier instant
// rather than each particle's last individual event time.
func (s *Simulator) advanceAllToNow() {
	all := s.particles.All()
	for i := range all {
		all[i].AdvanceTo(s.time, s.lengths, s.periodic)
	}
}
