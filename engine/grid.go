package engine

import (
	"math"

	"github.com/pthm-cable/discsim/components"
	"github.com/pthm-cable/discsim/vecmath"
)

// buildGrid constructs the fixed cell arena: bounds, edge class and
// neighbour indices per axis, row-major indexed .
func buildGrid(cols, rows int, lengths vecmath.Vector2, periodic [2]bool) *components.CellArena {
	arena := components.NewCellArena(cols * rows)
	cellW := lengths.X / float64(cols)
	cellH := lengths.Y / float64(rows)

	edgeClass := func(i, n int) components.EdgeClass {
		switch {
		case i == 0:
			return components.NegativeEdge
		case i == n-1:
			return components.PositiveEdge
		default:
			return components.Centre
		}
	}
	wrap := func(i, n int) int {
		return ((i % n) + n) % n
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := components.CellID(row*cols + col)
			c := arena.Get(idx)
			c.Bounds[0] = vecmath.Extrema[float64]{Min: float64(col) * cellW, Max: float64(col+1) * cellW}
			c.Bounds[1] = vecmath.Extrema[float64]{Min: float64(row) * cellH, Max: float64(row+1) * cellH}
			c.EdgeClass[0] = edgeClass(col, cols)
			c.EdgeClass[1] = edgeClass(row, rows)

			colMin := wrap(col-1, cols)
			colMax := wrap(col+1, cols)
			rowMin := wrap(row-1, rows)
			rowMax := wrap(row+1, rows)
			c.Neighbours[0] = vecmath.Extrema[components.CellID]{
				Min: components.CellID(row*cols + colMin),
				Max: components.CellID(row*cols + colMax),
			}
			c.Neighbours[1] = vecmath.Extrema[components.CellID]{
				Min: components.CellID(rowMin*cols + col),
				Max: components.CellID(rowMax*cols + col),
			}
		}
	}
	return arena
}

// cellsForDisc enumerates every cell whose axis-aligned bounds
// intersect the disc of radius r centred at pos — the cartesian
// product of the 1-2 candidate column indices and 1-2 candidate row
// indices. Because every cell edge exceeds 4r (enforced at New), a
// disc never spans more than two cells on either axis.
func (s *Simulator) cellsForDisc(pos vecmath.Vector2, r float64) []components.CellID {
	cols := s.axisCandidates(pos.X, r, 0)
	rows := s.axisCandidates(pos.Y, r, 1)

	out := make([]components.CellID, 0, len(cols)*len(rows))
	for _, row := range rows {
		for _, col := range cols {
			out = append(out, components.CellID(row*s.cols+col))
		}
	}
	return out
}

// axisCandidates returns the 1 or 2 distinct cell indices on the given
// axis whose span intersects [center-r, center+r], wrapping at the
// periodic seam when the axis is periodic.
func (s *Simulator) axisCandidates(center, r float64, axis int) []int {
	length := s.lengths.Component(axis)
	count := s.axisCount(axis)
	cellSize := length / float64(count)

	lo := int(math.Floor((center - r) / cellSize))
	hi := int(math.Floor((center + r) / cellSize))

	norm := func(i int) int {
		if s.periodic[axis] {
			return ((i % count) + count) % count
		}
		if i < 0 {
			return 0
		}
		if i >= count {
			return count - 1
		}
		return i
	}

	a, b := norm(lo), norm(hi)
	if a == b {
		return []int{a}
	}
	return []int{a, b}
}

func (s *Simulator) axisCount(axis int) int {
	if axis == 0 {
		return s.cols
	}
	return s.rows
}
