package components

import (
	"math"
	"testing"
)

func TestCellEventListStaysSorted(t *testing.T) {
	c := &Cell{Index: 0}

	times := []float64{3.5, 1.2, 7.0, 0.4, 2.2}
	for _, tm := range times {
		c.InsertEvent(Event{Time: tm})
	}

	for i := 1; i < len(c.Events); i++ {
		if c.Events[i-1].Time > c.Events[i].Time {
			t.Fatalf("event list not sorted: %v", c.Events)
		}
	}
	if got := c.HeadTime(); got != 0.4 {
		t.Errorf("HeadTime() = %v, want 0.4", got)
	}
}

func TestCellHeadTimeEmptyIsInf(t *testing.T) {
	c := &Cell{Index: 0}
	if got := c.HeadTime(); !math.IsInf(got, 1) {
		t.Errorf("HeadTime() on empty list = %v, want +Inf", got)
	}
}

func TestCellPopFront(t *testing.T) {
	c := &Cell{Index: 0}
	c.InsertEvent(Event{Time: 5, P: 1})
	c.InsertEvent(Event{Time: 1, P: 2})

	e := c.PopFront()
	if e.P != 2 {
		t.Errorf("PopFront() returned P=%v, want 2", e.P)
	}
	if got := c.HeadTime(); got != 5 {
		t.Errorf("HeadTime() after pop = %v, want 5", got)
	}
}

func TestCellCancelReferencing(t *testing.T) {
	c := &Cell{Index: 0}
	c.InsertEvent(Event{Kind: EventWallReflection, Time: 1, P: 1})
	c.InsertEvent(Event{Kind: EventCollision, Time: 2, P: 2, Q: 3})
	c.InsertEvent(Event{Kind: EventMoveToNeighbour, Time: 3, P: 4})

	c.CancelReferencing(2)

	if len(c.Events) != 2 {
		t.Fatalf("expected 2 surviving events, got %d", len(c.Events))
	}
	for _, e := range c.Events {
		if e.RefersTo(2) {
			t.Errorf("event %+v should have been cancelled", e)
		}
	}
}

func TestCellResidency(t *testing.T) {
	c := &Cell{Index: 0}
	c.AddResident(5)
	c.AddResident(5) // idempotent
	if !c.HasResident(5) || len(c.Residents) != 1 {
		t.Fatalf("expected single resident 5, got %v", c.Residents)
	}

	c.RemoveResident(5)
	if c.HasResident(5) {
		t.Errorf("resident 5 should have been removed")
	}
}

func TestParticleMembership(t *testing.T) {
	p := &Particle{Index: 0}
	p.AddCell(1)
	p.AddCell(2)
	p.AddCell(1) // idempotent

	if len(p.Membership) != 2 {
		t.Fatalf("expected 2 memberships, got %v", p.Membership)
	}

	p.RemoveCell(1)
	if p.HasCell(1) || !p.HasCell(2) {
		t.Errorf("membership after removal: %v", p.Membership)
	}
}
