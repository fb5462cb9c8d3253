package preproc

import (
	"container/heap"
	"strings"
)

const defaultPriority = 100.0

// pendingInsertion is a macro call queued for a section. Entries are
// ordered by priority, then by the order they were inserted.
type pendingInsertion struct {
	priority float64
	seq      uint64
	macro    string
	args     []string // nil means the flushing directive's shared args apply
	pos      Pos
}

type insertionQueue []*pendingInsertion

func (q insertionQueue) Len() int { return len(q) }

func (q insertionQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q insertionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *insertionQueue) Push(x any) { *q = append(*q, x.(*pendingInsertion)) }

func (q *insertionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

type section struct {
	name     string
	queue    insertionQueue
	openedAt Pos
	closed   bool
	closedAt Pos
}

// drain pops every pending entry in emission order.
func (s *section) drain() []*pendingInsertion {
	out := make([]*pendingInsertion, 0, s.queue.Len())
	for s.queue.Len() > 0 {
		out = append(out, heap.Pop(&s.queue).(*pendingInsertion))
	}
	return out
}

// pending lists queued macro names in emission order without consuming them.
func (s *section) pending() []string {
	cp := make(insertionQueue, len(s.queue))
	copy(cp, s.queue)
	var names []string
	for cp.Len() > 0 {
		names = append(names, heap.Pop(&cp).(*pendingInsertion).macro)
	}
	return names
}

// sectionRegistry holds every section seen in a run, keyed by case-folded name.
type sectionRegistry struct {
	byName  map[string]*section
	order   []*section
	flushed []string
	seq     uint64
}

func newSectionRegistry() *sectionRegistry {
	return &sectionRegistry{byName: make(map[string]*section)}
}

// insert queues p into the named section, creating it on first use. When
// the section is already closed nothing is queued and the closed section
// is returned.
func (r *sectionRegistry) insert(name string, p *pendingInsertion) (closed *section) {
	key := strings.ToLower(name)
	s, ok := r.byName[key]
	if ok && s.closed {
		return s
	}
	if !ok {
		s = &section{name: name, openedAt: p.pos}
		r.byName[key] = s
		r.order = append(r.order, s)
	}
	r.seq++
	p.seq = r.seq
	heap.Push(&s.queue, p)
	return nil
}

// flushResult describes what a section directive found.
type flushResult struct {
	entries  []*pendingInsertion
	opened   bool     // at least one insert targeted the section
	previous *section // non-nil when the section had already been closed
}

// close marks the section closed and hands back its entries in emission
// order. A section that was never opened is closed too, so later inserts
// into it are rejected.
func (r *sectionRegistry) close(name string, at Pos) flushResult {
	key := strings.ToLower(name)
	s, ok := r.byName[key]
	if ok && s.closed {
		return flushResult{previous: s}
	}
	if !ok {
		s = &section{name: name}
		r.byName[key] = s
		s.closed, s.closedAt = true, at
		r.flushed = append(r.flushed, name)
		return flushResult{}
	}
	entries := s.drain()
	s.closed, s.closedAt = true, at
	r.flushed = append(r.flushed, name)
	return flushResult{entries: entries, opened: true}
}

// unresolved returns the sections that were opened by an insert and never
// flushed, in the order they were first opened.
func (r *sectionRegistry) unresolved() []*section {
	var out []*section
	for _, s := range r.order {
		if !s.closed {
			out = append(out, s)
		}
	}
	return out
}
