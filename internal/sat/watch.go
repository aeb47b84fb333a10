package sat

// WatchIndex maps each literal to the clauses currently watching its
// negation (i.e. the clauses that must be examined when the literal
// becomes true). It owns the propagation queue used to drive unit
// propagation to a fixed point.
type WatchIndex struct {
	// byLit[l] holds every clause watching l: the clause is examined
	// whenever l's negation is falsified, i.e. whenever l is assigned.
	byLit [][]*Clause

	queue *Queue[Literal]
}

// NewWatchIndex returns a watch index sized for numVars variables.
func NewWatchIndex(numVars int) *WatchIndex {
	return &WatchIndex{
		byLit: make([][]*Clause, 2*numVars+2),
		queue: NewQueue[Literal](64),
	}
}

func litIndex(l Literal) int { return int(l) }

// watch registers c as watching l: c is examined when l is assigned true.
func (w *WatchIndex) watch(l Literal, c *Clause) {
	i := litIndex(l)
	w.byLit[i] = append(w.byLit[i], c)
}

// unwatch removes c from l's watch list. Used when a watch is replaced.
func (w *WatchIndex) unwatch(l Literal, c *Clause) {
	i := litIndex(l)
	list := w.byLit[i]
	for k, wc := range list {
		if wc == c {
			list[k] = list[len(list)-1]
			w.byLit[i] = list[:len(list)-1]
			return
		}
	}
}

// AddClause registers c's two watched literals (its first two literals).
// Callers must ensure len(c.Literals()) >= 2; unit clauses are applied
// directly to the trail by the caller instead of being watched.
func (w *WatchIndex) AddClause(c *Clause) {
	w.watch(c.literals[0].Opposite(), c)
	w.watch(c.literals[1].Opposite(), c)
}

// RemoveClause unregisters both of c's current watches. Used when a
// learned clause is dropped by a reduction pass.
func (w *WatchIndex) RemoveClause(c *Clause) {
	w.unwatch(c.literals[0].Opposite(), c)
	w.unwatch(c.literals[1].Opposite(), c)
}

// Enqueue schedules l for propagation: every clause watching l's negation
// will be examined by Propagate.
func (w *WatchIndex) Enqueue(l Literal) { w.queue.Push(l) }

// Reset clears the pending propagation queue, discarding any scheduled
// but not-yet-processed literals. Used when backtracking makes queued
// entries stale.
func (w *WatchIndex) Reset() { w.queue.Clear() }

// Propagate drains the propagation queue against the current trail,
// assigning newly implied literals and enqueuing them in turn, until
// either the queue empties (returns nil, meaning the assignment is
// locally consistent) or a clause is falsified (returns the conflicting
// clause).
//
// This is the two-watched-literal algorithm: for each newly-true literal
// l, every clause watching ¬l is scanned for a replacement watch among its
// non-watched literals that is not currently false. If none is found and
// the clause's other watched literal is already false, the clause is a
// conflict; if the other watched literal is unassigned, it is implied
// true with this clause as its reason; otherwise the clause is already
// satisfied and left untouched.
//
// onAssign, if non-nil, is called once for every literal Propagate itself
// assigns (as opposed to literals assigned by the caller before this
// call), so callers that track per-variable side state keyed on
// assignment (VSIDS's assigned/unassigned bookkeeping) stay consistent
// without having to re-diff the trail.
func (w *WatchIndex) Propagate(t *Trail, onAssign func(Literal)) *Clause {
	for !w.queue.IsEmpty() {
		l := w.queue.Pop()
		list := w.byLit[litIndex(l)]

		keep := list[:0]
		var conflict *Clause
		for i := 0; i < len(list); i++ {
			c := list[i]
			if !w.propagateClause(t, l, c, &keep, onAssign) {
				conflict = c
				// Copy the remaining (unexamined) watchers back so the
				// index stays consistent even though we're aborting.
				keep = append(keep, list[i+1:]...)
				break
			}
		}
		w.byLit[litIndex(l)] = keep
		if conflict != nil {
			return conflict
		}
	}
	return nil
}

// propagateClause examines clause c, which watches ¬l and just had l
// assigned true. It returns false on conflict. On success it reports,
// via the keep slice, whether c should remain a watcher of ¬l (true) or
// was moved to watch a different literal (false, in which case it is not
// appended to keep).
func (w *WatchIndex) propagateClause(t *Trail, l Literal, c *Clause, keep *[]*Clause, onAssign func(Literal)) bool {
	falseWatch := l.Opposite()

	// Normalize so that literals[1] holds the watch that just became false
	// and literals[0] holds the surviving watch, other.
	if c.literals[0] == falseWatch {
		c.swapWatches()
	}

	other := c.literals[0]
	if t.Value(other) == True {
		*keep = append(*keep, c)
		return true // already satisfied via the other watch
	}

	for i := 2; i < len(c.literals); i++ {
		cand := c.literals[i]
		if t.Value(cand) != False {
			c.literals[1], c.literals[i] = cand, c.literals[1]
			w.watch(cand.Opposite(), c)
			return true
		}
	}

	*keep = append(*keep, c)
	if t.Value(other) == False {
		return false // conflict: both watches false
	}
	t.assign(other, c)
	if onAssign != nil {
		onAssign(other)
	}
	w.queue.Push(other)
	return true
}
