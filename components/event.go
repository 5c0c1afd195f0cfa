package components

import "github.com/pthm-cable/discsim/vecmath"

// EventKind tags which of the five event variants an Event carries.
type EventKind uint8

const (
	// EventCollision is an InterParticleCollision between P and Q.
	EventCollision EventKind = iota
	// EventMoveToNeighbour is P entering a neighbouring cell on Axis.
	EventMoveToNeighbour
	// EventMoveOutOfCell is P leaving its host cell on Axis.
	EventMoveOutOfCell
	// EventWallReflection is P bouncing off a non-periodic wall on Axis.
	EventWallReflection
	// EventSynchronisation is the periodic barrier hosted on cell 0.
	EventSynchronisation
)

func (k EventKind) String() string {
	switch k {
	case EventCollision:
		return "Collision"
	case EventMoveToNeighbour:
		return "MoveToNeighbour"
	case EventMoveOutOfCell:
		return "MoveOutOfCell"
	case EventWallReflection:
		return "WallReflection"
	case EventSynchronisation:
		return "Synchronisation"
	default:
		return "Unknown"
	}
}

// Event is the tagged union of the five schedulable event variants.
// Only the fields relevant to Kind are meaningful; this mirrors a Rust
// enum's per-variant payload as a flat struct, which is the idiomatic
// Go rendering of a closed, compile-time-known sum type .
type Event struct {
	Kind EventKind
	Time float64
	Host CellID

	// P is always the particle the event concerns. Q is the collision
	// partner, meaningful only for EventCollision.
	P, Q ParticleID

	// Axis is 0 (x) or 1 (y), meaningful for the three axis-scoped
	// variants.
	Axis int

	// Target is the neighbour cell index, meaningful for
	// EventMoveToNeighbour.
	Target CellID

	// Predicted post-event state, computed at prediction time and
	// applied verbatim at dispatch.
	NewPosP, NewPosQ       vecmath.Vector2
	NewVelP, NewVelQ       vecmath.Vector2
	NewScalarP, NewScalarQ float64
}

// RefersTo reports whether the event involves particle id — used when
// cancelling every event touching a particle whose state just changed.
func (e Event) RefersTo(id ParticleID) bool {
	if e.P == id {
		return true
	}
	if e.Kind == EventCollision && e.Q == id {
		return true
	}
	return false
}
