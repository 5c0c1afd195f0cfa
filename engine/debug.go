package engine

import (
	"fmt"

	"github.com/pthm-cable/discsim/components"
)

// checkInvariants panics with a diagnostic naming the offending
// particle/cell indices if any of the particle-cell-scheduler
// consistency invariants is violated. A no-op unless DebugChecks is
// set, so release builds pay nothing for it.
func (s *Simulator) checkInvariants() {
	if !s.DebugChecks {
		return
	}
	s.checkResidency()
	s.checkNoDuplicateMembership()
	s.checkEventListsSorted()
	s.checkEventsReferenceResidents()
	if !s.scheduler.HeapOrderValid() {
		panic("engine: scheduler heap property violated")
	}
}

// checkResidency verifies p.membership ⇔ c.residents in both
// directions.
func (s *Simulator) checkResidency() {
	all := s.particles.All()
	for i := range all {
		pid := components.ParticleID(i)
		for _, cid := range all[i].Membership {
			if !s.cells.Get(cid).HasResident(pid) {
				panic(fmt.Sprintf("engine: particle %d claims membership in cell %d, but the cell does not list it as resident", pid, cid))
			}
		}
	}
	for i := 0; i < s.cells.Len(); i++ {
		cid := components.CellID(i)
		cell := s.cells.Get(cid)
		for _, pid := range cell.Residents {
			if !all[pid].HasCell(cid) {
				panic(fmt.Sprintf("engine: cell %d lists particle %d as resident, but the particle does not claim membership in it", cid, pid))
			}
		}
	}
}

// checkNoDuplicateMembership verifies no particle lists the same cell
// twice in its membership set.
func (s *Simulator) checkNoDuplicateMembership() {
	all := s.particles.All()
	for i := range all {
		seen := make(map[components.CellID]bool, len(all[i].Membership))
		for _, cid := range all[i].Membership {
			if seen[cid] {
				panic(fmt.Sprintf("engine: particle %d has duplicate cell %d in its membership", i, cid))
			}
			seen[cid] = true
		}
	}
}

// checkEventListsSorted verifies every cell's event list is sorted by
// Time ascending.
func (s *Simulator) checkEventListsSorted() {
	for i := 0; i < s.cells.Len(); i++ {
		cid := components.CellID(i)
		events := s.cells.Get(cid).Events
		for j := 1; j < len(events); j++ {
			if events[j].Time < events[j-1].Time {
				panic(fmt.Sprintf("engine: cell %d event list is not sorted at index %d", cid, j))
			}
		}
	}
}

// checkEventsReferenceResidents verifies every non-synchronisation
// event in a cell's list only references particles currently resident
// in that cell.
func (s *Simulator) checkEventsReferenceResidents() {
	for i := 0; i < s.cells.Len(); i++ {
		cid := components.CellID(i)
		cell := s.cells.Get(cid)
		for _, e := range cell.Events {
			if e.Kind == components.EventSynchronisation {
				continue
			}
			if !cell.HasResident(e.P) {
				panic(fmt.Sprintf("engine: cell %d has an event referencing non-resident particle %d", cid, e.P))
			}
			if e.Kind == components.EventCollision && !cell.HasResident(e.Q) {
				panic(fmt.Sprintf("engine: cell %d has a collision event referencing non-resident particle %d", cid, e.Q))
			}
		}
	}
}
