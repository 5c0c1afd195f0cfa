package components

import (
	"math"
	"sort"

	"github.com/pthm-cable/discsim/vecmath"
)

// CellID identifies a cell by its row-major index in the flat grid.
type CellID int

// EdgeClass classifies a cell on one axis, determining whether event
// predicates hosted by the cell must apply a periodic-wrap correction.
type EdgeClass uint8

const (
	// Centre is an interior cell: no seam, predicates use plain geometry.
	Centre EdgeClass = iota
	// NegativeEdge is the cell touching axis index 0.
	NegativeEdge
	// PositiveEdge is the cell touching the last axis index.
	PositiveEdge
)

// Cell is a spatial bucket: bounds, per-axis edge class, per-axis
// neighbour indices, resident particles, and a time-sorted event list.
type Cell struct {
	Index      CellID
	Bounds     [2]vecmath.Extrema[float64]
	EdgeClass  [2]EdgeClass
	Neighbours [2]vecmath.Extrema[CellID]

	Residents []ParticleID
	Events    []Event // strictly sorted by Time ascending
}

// HasResident reports whether p currently resides in this cell.
func (c *Cell) HasResident(p ParticleID) bool {
	for _, r := range c.Residents {
		if r == p {
			return true
		}
	}
	return false
}

// AddResident registers p as resident, if not already.
func (c *Cell) AddResident(p ParticleID) {
	if !c.HasResident(p) {
		c.Residents = append(c.Residents, p)
	}
}

// RemoveResident unregisters p.
func (c *Cell) RemoveResident(p ParticleID) {
	for i, r := range c.Residents {
		if r == p {
			c.Residents = append(c.Residents[:i], c.Residents[i+1:]...)
			return
		}
	}
}

// HeadTime returns the time of the earliest pending event, or +Inf if
// the event list is empty. This is the scheduler's heap key for the
// cell.
func (c *Cell) HeadTime() float64 {
	if len(c.Events) == 0 {
		return math.Inf(1)
	}
	return c.Events[0].Time
}

// InsertEvent inserts e into the sorted event list by binary search on
// Time, preserving ascending order.
func (c *Cell) InsertEvent(e Event) {
	i := sort.Search(len(c.Events), func(i int) bool {
		return c.Events[i].Time >= e.Time
	})
	c.Events = append(c.Events, Event{})
	copy(c.Events[i+1:], c.Events[i:])
	c.Events[i] = e
}

// PopFront removes and returns the earliest event. It panics if the
// list is empty — callers must check HeadTime first.
func (c *Cell) PopFront() Event {
	e := c.Events[0]
	c.Events = c.Events[1:]
	return e
}

// CancelReferencing removes every event referencing particle id from
// the list, preserving relative order of the survivors.
func (c *Cell) CancelReferencing(id ParticleID) {
	kept := c.Events[:0]
	for _, e := range c.Events {
		if !e.RefersTo(id) {
			kept = append(kept, e)
		}
	}
	c.Events = kept
}

// CellArena is the fixed slab of all cells, built once at init and
// never resized.
type CellArena struct {
	cells []Cell
}

// NewCellArena allocates an arena with n zero-value cells, index-tagged.
func NewCellArena(n int) *CellArena {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i].Index = CellID(i)
	}
	return &CellArena{cells: cells}
}

// Get returns a pointer to the cell with the given id.
func (a *CellArena) Get(id CellID) *Cell {
	return &a.cells[id]
}

// Len returns the number of cells in the arena.
func (a *CellArena) Len() int {
	return len(a.cells)
}
