package sat

import "container/heap"

// depthItem is one entry of the per-conflict first-UIP priority queue: a
// variable waiting to be resolved, ordered by implied depth so that the
// most recently implied variable at the current decision level is always
// resolved first. The queue is rebuilt from scratch for every conflict
// (conflicts are rare relative to propagations, so a fresh stdlib
// container/heap outperforms reusing a persistent index-addressable heap
// here — see DESIGN.md).
type depthItem struct {
	v     int
	depth int
}

type depthQueue []depthItem

func (q depthQueue) Len() int            { return len(q) }
func (q depthQueue) Less(i, j int) bool  { return q[i].depth > q[j].depth }
func (q depthQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *depthQueue) Push(x interface{}) { *q = append(*q, x.(depthItem)) }
func (q *depthQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// conflictClause is the outcome of analyzing a single conflict: a new
// clause to learn and the decision level to backjump to before asserting
// it. unit is true when the clause has exactly one literal, in which case
// the caller should fix it as a prior value at level 0 rather than
// inserting it into the clause database.
type conflictClause struct {
	lits       []Literal
	backjumpTo int
	lbd        uint32
	unit       bool

	// global is true when the analysis resolved to the empty clause: the
	// conflict did not depend on any current-level literal at all, so the
	// formula is unconditionally UNSAT.
	global bool
}

// currentLiteral returns the literal of v that is currently true.
func currentLiteral(t *Trail, v int) Literal {
	return NewLiteral(v, t.VarValue(v) == True)
}

// analyze performs first-UIP conflict analysis starting from the given
// falsified clause, returning the clause to learn and the level to
// backjump to. It bumps the VSIDS activity of every variable resolved
// into the analysis, matching the original's "bump on every learned
// literal" policy. The caller must ensure t.DecisionLevel() > 0; a
// conflict at level 0 is a global UNSAT and must be detected before
// calling analyze.
func (s *Solver) analyze(conflict *Clause) conflictClause {
	t := s.trail
	level := t.DecisionLevel()
	s.seen.Clear()

	var pq depthQueue
	var out []Literal
	seenLevel := make(map[int]bool)
	pending := 0

	addLit := func(l Literal) {
		v := l.VarID()
		if s.seen.Contains(v) {
			return
		}
		s.seen.Add(v)
		s.vsids.Bump(v)

		lvl := t.Level(v)
		if lvl == 0 {
			return // fixed at level 0: globally true, drop from the clause
		}
		seenLevel[lvl] = true
		if lvl == level {
			heap.Push(&pq, depthItem{v: v, depth: t.ImpliedDepth(v)})
			pending++
			return
		}
		out = append(out, currentLiteral(t, v).Opposite())
	}

	for _, l := range conflict.Literals() {
		addLit(l)
	}

	if pq.Len() == 0 {
		return conflictClause{global: true}
	}

	var uipVar int
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(depthItem)
		pending--
		if pending == 0 {
			uipVar = item.v
			break
		}
		reason := t.Reason(item.v)
		if reason.IsLearned() {
			reason.bumpUsed()
		}
		for _, l := range reason.Literals() {
			if l.VarID() != item.v {
				addLit(l)
			}
		}
	}

	uipLit := currentLiteral(t, uipVar).Opposite()

	if len(out) == 0 {
		return conflictClause{
			lits:       []Literal{uipLit},
			backjumpTo: 0,
			lbd:        1,
			unit:       true,
		}
	}

	// Place the literal from the second-highest level at index 1 so the
	// clause can be watched immediately on both of its two highest levels.
	backjumpTo, secondIdx := 0, -1
	for i, l := range out {
		if lvl := t.Level(l.VarID()); lvl > backjumpTo {
			backjumpTo, secondIdx = lvl, i
		}
	}
	lits := make([]Literal, 0, len(out)+1)
	lits = append(lits, uipLit, out[secondIdx])
	for i, l := range out {
		if i != secondIdx {
			lits = append(lits, l)
		}
	}

	return conflictClause{
		lits:       lits,
		backjumpTo: backjumpTo,
		lbd:        uint32(len(seenLevel)),
		unit:       false,
	}
}
