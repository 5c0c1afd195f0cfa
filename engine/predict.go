package engine

import (
	"math"

	"github.com/pthm-cable/discsim/components"
	"github.com/pthm-cable/discsim/vecmath"
)

// minimumImageAxis applies the periodic-wrap correction to a signed
// axis difference, but only when the axis is actually periodic and
// the host cell lies on the relevant seam — an interior cell's
// predicates use plain geometry .
func (s *Simulator) minimumImageAxis(d float64, axis int, host *components.Cell) float64 {
	if s.periodic[axis] && host.EdgeClass[axis] != components.Centre {
		return vecmath.MinimumImage(d, s.lengths.Component(axis))
	}
	return d
}

func (s *Simulator) minimumImageDelta(delta vecmath.Vector2, host *components.Cell) vecmath.Vector2 {
	return vecmath.Vector2{
		X: s.minimumImageAxis(delta.X, 0, host),
		Y: s.minimumImageAxis(delta.Y, 1, host),
	}
}

// predictCollision solves for the time at which discs p and q — both
// resident in host — next touch: reject
// on near-zero relative speed, separating pairs, already-overlapping
// pairs, and an unreachable root, in that order.
func (s *Simulator) predictCollision(host *components.Cell, pid, qid components.ParticleID) (components.Event, bool) {
	p, q := s.particles.Get(pid), s.particles.Get(qid)

	dx := s.minimumImageDelta(q.Pos.Sub(p.Pos), host)
	dv := q.Vel.Sub(p.Vel)

	a := dv.Dot(dv)
	if a < s.epsilon {
		return components.Event{}, false
	}
	b := dv.Dot(dx)
	if b >= 0 {
		return components.Event{}, false
	}
	rsum := p.Radius + q.Radius
	c := dx.Dot(dx) - rsum*rsum
	if c < 0 {
		return components.Event{}, false
	}
	disc := b*b - a*c
	if disc < 0 {
		return components.Event{}, false
	}
	dt := (-b - math.Sqrt(disc)) / a
	if dt < 0 {
		return components.Event{}, false
	}

	refTime := p.LocalTime
	t := refTime + dt

	newPosP := vecmath.Advance(p.Pos, p.Vel, dt, s.lengths, s.periodic)
	newPosQ := vecmath.Advance(q.Pos, q.Vel, dt, s.lengths, s.periodic)

	normal := s.minimumImageDelta(newPosQ.Sub(newPosP), host).Div(rsum)

	vNew := 0.5 * (p.Scalar + q.Scalar)
	vcm := p.Vel.Add(q.Vel).Scale(0.5).Add(s.gravity.Scale(vNew - 0.5))
	dvPrime := dv.Sub(normal.Scale((1 + s.restitution) * dv.Dot(normal)))
	newVelP := vcm.Sub(dvPrime.Scale(0.5))
	newVelQ := vcm.Add(dvPrime.Scale(0.5))

	return components.Event{
		Kind:       components.EventCollision,
		Time:       t,
		Host:       host.Index,
		P:          pid,
		Q:          qid,
		NewPosP:    newPosP,
		NewPosQ:    newPosQ,
		NewVelP:    newVelP,
		NewVelQ:    newVelQ,
		NewScalarP: vNew,
		NewScalarQ: vNew,
	}, true
}

// predictMoveToNeighbour predicts p's disc first touching the far edge
// of host on axis, firing only in the direction of travel and never on
// the outer edge of a non-periodic axis .
func (s *Simulator) predictMoveToNeighbour(host *components.Cell, pid components.ParticleID, axis int) (components.Event, bool) {
	p := s.particles.Get(pid)
	vk := p.Vel.Component(axis)
	if vk == 0 {
		return components.Event{}, false
	}
	if !s.periodic[axis] {
		if vk < 0 && host.EdgeClass[axis] == components.NegativeEdge {
			return components.Event{}, false
		}
		if vk > 0 && host.EdgeClass[axis] == components.PositiveEdge {
			return components.Event{}, false
		}
	}

	posK := p.Pos.Component(axis)
	var delta float64
	var target components.CellID
	if vk < 0 {
		delta = host.Bounds[axis].Min + p.Radius - posK
		target = host.Neighbours[axis].Min
	} else {
		delta = host.Bounds[axis].Max - p.Radius - posK
		target = host.Neighbours[axis].Max
	}
	delta = s.minimumImageAxis(delta, axis, host)

	dt := delta / vk
	if dt <= 0 {
		return components.Event{}, false
	}
	t := p.LocalTime + dt
	newPos := vecmath.Advance(p.Pos, p.Vel, dt, s.lengths, s.periodic)

	return components.Event{
		Kind:    components.EventMoveToNeighbour,
		Time:    t,
		Host:    host.Index,
		P:       pid,
		Axis:    axis,
		Target:  target,
		NewPosP: newPos,
	}, true
}

// predictMoveOutOfCell predicts p's disc no longer overlapping host on
// axis — same structure as predictMoveToNeighbour with the crossing
// criterion reversed .
func (s *Simulator) predictMoveOutOfCell(host *components.Cell, pid components.ParticleID, axis int) (components.Event, bool) {
	p := s.particles.Get(pid)
	vk := p.Vel.Component(axis)
	if vk == 0 {
		return components.Event{}, false
	}

	posK := p.Pos.Component(axis)
	var delta float64
	if vk < 0 {
		delta = host.Bounds[axis].Min - p.Radius - posK
	} else {
		delta = host.Bounds[axis].Max + p.Radius - posK
	}
	delta = s.minimumImageAxis(delta, axis, host)

	dt := delta / vk
	if dt <= 0 {
		return components.Event{}, false
	}
	t := p.LocalTime + dt
	newPos := vecmath.Advance(p.Pos, p.Vel, dt, s.lengths, s.periodic)

	return components.Event{
		Kind:    components.EventMoveOutOfCell,
		Time:    t,
		Host:    host.Index,
		P:       pid,
		Axis:    axis,
		NewPosP: newPos,
	}, true
}

// predictWallReflection predicts p bouncing off a non-periodic wall on
// axis, only when host sits on the matching edge and p moves into it
// .
func (s *Simulator) predictWallReflection(host *components.Cell, pid components.ParticleID, axis int) (components.Event, bool) {
	if s.periodic[axis] {
		return components.Event{}, false
	}
	p := s.particles.Get(pid)
	vk := p.Vel.Component(axis)
	if vk == 0 {
		return components.Event{}, false
	}

	posK := p.Pos.Component(axis)
	var delta float64
	var bc WallBC
	switch {
	case vk < 0 && host.EdgeClass[axis] == components.NegativeEdge:
		delta = host.Bounds[axis].Min + p.Radius - posK
		bc = s.walls[axis].Min
	case vk > 0 && host.EdgeClass[axis] == components.PositiveEdge:
		delta = host.Bounds[axis].Max - p.Radius - posK
		bc = s.walls[axis].Max
	default:
		return components.Event{}, false
	}

	dt := delta / vk
	if dt <= 0 {
		return components.Event{}, false
	}
	t := p.LocalTime + dt
	newPos := vecmath.Advance(p.Pos, p.Vel, dt, s.lengths, s.periodic)
	newVel := p.Vel.WithComponent(axis, -vk)
	newScalar := bc.Apply(p.Scalar)

	return components.Event{
		Kind:       components.EventWallReflection,
		Time:       t,
		Host:       host.Index,
		P:          pid,
		Axis:       axis,
		NewPosP:    newPos,
		NewVelP:    newVel,
		NewScalarP: newScalar,
	}, true
}
