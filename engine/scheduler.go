package engine

import "github.com/pthm-cable/discsim/components"

// Scheduler is a binary min-heap over cells, keyed by each cell's
// earliest pending event time (its HeadTime, +Inf when empty). An
// inverse lookup array maps CellID to heap position so that a
// targeted key change can be repaired in O(log N) without a full
// rebuild — the decrease-key / increase-key operation a plain
// push/pop priority queue does not provide .
type Scheduler struct {
	cells  *components.CellArena
	heap   []components.CellID
	lookup []int
}

// NewScheduler builds a scheduler over every cell in the arena,
// heapifying from the cells' current event lists (so it can be built
// either before any events exist, or after initialisation has already
// populated every cell's event list).
func NewScheduler(cells *components.CellArena) *Scheduler {
	n := cells.Len()
	s := &Scheduler{
		cells:  cells,
		heap:   make([]components.CellID, n),
		lookup: make([]int, n),
	}
	for i := 0; i < n; i++ {
		s.heap[i] = components.CellID(i)
		s.lookup[i] = i
	}
	for i := n/2 - 1; i >= 0; i-- {
		s.siftDown(i)
	}
	return s
}

func (s *Scheduler) key(id components.CellID) float64 {
	return s.cells.Get(id).HeadTime()
}

func (s *Scheduler) less(i, j int) bool {
	return s.key(s.heap[i]) < s.key(s.heap[j])
}

func (s *Scheduler) swap(i, j int) {
	s.heap[i], s.heap[j] = s.heap[j], s.heap[i]
	s.lookup[s.heap[i]] = i
	s.lookup[s.heap[j]] = j
}

// Get returns the cell currently hosting the earliest event.
func (s *Scheduler) Get() components.CellID {
	return s.heap[0]
}

// Update repairs heap order after cell id's head time changed from
// oldHead to newHead. if the head time decreased
// (including from empty/+Inf to finite), sift up; otherwise sift down.
func (s *Scheduler) Update(id components.CellID, oldHead, newHead float64) {
	if newHead == oldHead {
		return
	}
	i := s.lookup[id]
	if newHead < oldHead {
		s.siftUp(i)
	} else {
		s.siftDown(i)
	}
}

func (s *Scheduler) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !s.less(i, parent) {
			return
		}
		s.swap(i, parent)
		i = parent
	}
}

func (s *Scheduler) siftDown(i int) {
	n := len(s.heap)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && s.less(left, smallest) {
			smallest = left
		}
		if right < n && s.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		s.swap(i, smallest)
		i = smallest
	}
}

// HeapOrderValid reports whether the parent-<=-children property holds
// everywhere — used by debug-build invariant checks and tests .
func (s *Scheduler) HeapOrderValid() bool {
	n := len(s.heap)
	for i := 1; i < n; i++ {
		parent := (i - 1) / 2
		if s.less(i, parent) {
			return false
		}
	}
	return true
}
