package stepper

import (
	"container/heap"
	"fmt"
)

// Discipline selects the order in which a Frontier releases entries.
type Discipline uint8

const (
	FIFO        Discipline = 1 // queue: BFS
	LIFO        Discipline = 2 // stack: DFS
	MinPriority Discipline = 3 // min-heap by (Priority, Seq): Dijkstra
)

var disciplineNames = map[Discipline]string{
	FIFO:        "fifo",
	LIFO:        "lifo",
	MinPriority: "min-priority",
}

// String returns the wire name of d.
func (d Discipline) String() string {
	if n, ok := disciplineNames[d]; ok {
		return n
	}

	return "invalid"
}

// ParseDiscipline converts a wire name back into a Discipline.
func ParseDiscipline(name string) (Discipline, bool) {
	for d, n := range disciplineNames {
		if n == name {
			return d, true
		}
	}

	return 0, false
}

// Entry is one pending frontier item.
// Seq is the insertion sequence; it breaks ties between equal priorities.
type Entry struct {
	Node     string
	Priority float64
	Seq      uint64
}

// Frontier is the pending-work container of a traversal.
//
// For MinPriority, Items is kept in binary-heap layout; duplicates for the same
// node are allowed and filtered lazily on pop. The layout is persisted as is, so
// a restored frontier releases entries in exactly the same order.
type Frontier struct {
	Discipline Discipline
	Items      []Entry
	NextSeq    uint64
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int { return len(f.Items) }

// Push adds node with the given priority (ignored by FIFO and LIFO).
// Complexity: O(1) amortized, O(log n) for MinPriority.
func (f *Frontier) Push(node string, priority float64) {
	e := Entry{Node: node, Priority: priority, Seq: f.NextSeq}
	f.NextSeq++
	if f.Discipline == MinPriority {
		heap.Push((*entryHeap)(&f.Items), e)
		return
	}
	f.Items = append(f.Items, e)
}

// Pop removes the next entry according to the discipline.
// Complexity: O(1) for FIFO/LIFO, O(log n) for MinPriority.
func (f *Frontier) Pop() (Entry, bool) {
	n := len(f.Items)
	if n == 0 {
		return Entry{}, false
	}
	switch f.Discipline {
	case FIFO:
		e := f.Items[0]
		f.Items = f.Items[1:]
		return e, true
	case LIFO:
		e := f.Items[n-1]
		f.Items = f.Items[:n-1]
		return e, true
	default:
		return heap.Pop((*entryHeap)(&f.Items)).(Entry), true
	}
}

// validate checks the discipline and, for MinPriority, the heap invariant.
func (f *Frontier) validate() error {
	if _, ok := disciplineNames[f.Discipline]; !ok {
		return fmt.Errorf("%w: unknown frontier discipline %d", ErrCorruptState, f.Discipline)
	}
	if f.Discipline != MinPriority {
		return nil
	}
	h := entryHeap(f.Items)
	for i := 1; i < len(h); i++ {
		if h.Less(i, (i-1)/2) {
			return fmt.Errorf("%w: frontier heap order violated at %d", ErrCorruptState, i)
		}
	}

	return nil
}

// entryHeap is a min-heap of Entry ordered by Priority, then Seq.
// We use the lazy-decrease-key approach: a better distance is pushed as a new
// entry and the outdated one is skipped when popped.
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}

	return h[i].Seq < h[j].Seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
