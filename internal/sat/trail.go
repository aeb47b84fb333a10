package sat

// varState holds everything the solver tracks about a single variable's
// current assignment. It is reset to its zero value (Unknown, no reason,
// level 0) whenever the variable is unassigned; Level reports -1 for such
// a variable.
type varState struct {
	value LBool

	// reason is the clause that implied this assignment, or nil if the
	// variable was assigned by a decision or is a prior value.
	reason *Clause

	// level is the decision level at which the variable was assigned.
	level int

	// impliedDepth is 1 + the maximum impliedDepth among the literals of
	// reason that share this variable's decision level, or 0 for a
	// decision/prior assignment. It orders the 1-UIP priority queue during
	// conflict analysis (analyze.go) without needing to re-walk the trail.
	impliedDepth int

	// prior marks a variable whose value was fixed permanently at level 0
	// through assignPrior (original unit clauses, probing, and learned
	// unit clauses) and therefore can never be unassigned by backtracking.
	// Literals implied at level 0 by propagation are not marked prior.
	prior bool
}

// Trail records the assignment order of literals and the solver's
// per-variable state, plus the decision-level snapshots needed to
// backtrack.
//
// Trail maintains a level-0 sentinel snapshot at construction, so
// decisionLevel() == len(snapshots)-1 always holds: pushing a new decision
// level, the counted level 1, 2, ... corresponds to snapshots[1], [2], ...
type Trail struct {
	lits      []Literal
	vars      []varState // indexed by variable id; vars[0] is unused
	snapshots []int      // snapshots[d] = len(lits) when level d began
}

// NewTrail returns an empty trail sized for numVars variables.
func NewTrail(numVars int) *Trail {
	return &Trail{
		vars:      make([]varState, numVars+1),
		snapshots: []int{0},
	}
}

// NumVars returns the number of variables the trail was sized for.
func (t *Trail) NumVars() int { return len(t.vars) - 1 }

// DecisionLevel returns the current decision level. Level 0 holds prior
// and level-0-implied assignments; it is never backtracked past.
func (t *Trail) DecisionLevel() int { return len(t.snapshots) - 1 }

// Value returns the current value of literal l's variable, lifted through
// l's polarity (so Value(l) is True exactly when l is satisfied).
func (t *Trail) Value(l Literal) LBool {
	v := t.vars[l.VarID()].value
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// VarValue returns the current value of variable v's positive literal.
func (t *Trail) VarValue(v int) LBool { return t.vars[v].value }

// IsAssigned reports whether l's variable currently has a value.
func (t *Trail) IsAssigned(l Literal) bool { return t.vars[l.VarID()].value != Unknown }

// Reason returns the clause that implied l's variable's assignment, or
// nil for a decision, a prior value, or an unassigned variable.
func (t *Trail) Reason(v int) *Clause { return t.vars[v].reason }

// Level returns the decision level at which variable v was assigned, or
// -1 if v is unassigned.
func (t *Trail) Level(v int) int {
	if t.vars[v].value == Unknown {
		return -1
	}
	return t.vars[v].level
}

// ImpliedDepth returns variable v's implied depth, valid only while v is
// assigned.
func (t *Trail) ImpliedDepth(v int) int { return t.vars[v].impliedDepth }

// IsPrior reports whether variable v's current value was fixed through
// assignPrior and can never be unassigned.
func (t *Trail) IsPrior(v int) bool { return t.vars[v].prior }

// Len returns the number of literals currently on the trail.
func (t *Trail) Len() int { return len(t.lits) }

// LitAt returns the literal assigned at trail position i.
func (t *Trail) LitAt(i int) Literal { return t.lits[i] }

// assign pushes l onto the trail and records its reason, marking it true
// at the current decision level. reason is nil for a decision.
func (t *Trail) assign(l Literal, reason *Clause) {
	v := l.VarID()
	depth := 0
	if reason != nil {
		level := t.DecisionLevel()
		for _, rl := range reason.Literals() {
			if rl.VarID() == v {
				continue
			}
			if t.vars[rl.VarID()].level == level {
				if d := t.vars[rl.VarID()].impliedDepth + 1; d > depth {
					depth = d
				}
			}
		}
	}
	t.vars[v] = varState{
		value:        Lift(l.IsPositive()),
		reason:       reason,
		level:        t.DecisionLevel(),
		impliedDepth: depth,
		prior:        t.vars[v].prior,
	}
	t.lits = append(t.lits, l)
}

// assignPrior fixes l's variable permanently at level 0, outside of any
// decision. It must be called before any decision has been pushed (i.e.
// at decision level 0) and is irreversible: backtrackTo never undoes it.
func (t *Trail) assignPrior(l Literal) {
	v := l.VarID()
	t.vars[v] = varState{
		value: Lift(l.IsPositive()),
		prior: true,
	}
	t.lits = append(t.lits, l)
}

// pushSnapshot opens a new decision level, recording the current trail
// length as the point backtrackTo should truncate to.
func (t *Trail) pushSnapshot() {
	t.snapshots = append(t.snapshots, len(t.lits))
}

// backtrackTo truncates the trail back to decision level d, unassigning
// every variable assigned at a level above d; level d's own assignments
// are kept. Prior values
// are always fixed at level 0 before any decision is pushed, so they never
// occur past cut and are never unassigned. undo is called once per
// unassigned literal before it is removed, in reverse trail order, so
// callers (VSIDS, watch index) can react.
func (t *Trail) backtrackTo(d int, undo func(Literal)) {
	if d >= t.DecisionLevel() {
		return
	}
	cut := t.snapshots[d+1]
	for i := len(t.lits) - 1; i >= cut; i-- {
		l := t.lits[i]
		if undo != nil {
			undo(l)
		}
		t.vars[l.VarID()] = varState{}
	}
	t.lits = t.lits[:cut]
	t.snapshots = t.snapshots[:d+1]
}
