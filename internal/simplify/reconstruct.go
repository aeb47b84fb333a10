package simplify

import "github.com/satkit/satkit/internal/sat"

// EventKind distinguishes the four ways a variable can leave the working
// formula during simplification.
type EventKind int

const (
	// EventPrior records a variable fixed to a constant value by unit
	// propagation; Value holds the fixed value.
	EventPrior EventKind = iota
	// EventAny records a variable that never occurred in any clause; its
	// value is irrelevant to satisfiability and defaults to true on lift.
	EventAny
	// EventVer records a variable eliminated by resolution (NiVER); Clauses
	// holds the clauses that mentioned it before elimination, needed to
	// reconstruct a satisfying value for it.
	EventVer
	// EventEq records a variable found equivalent to another literal (the
	// representative of its equivalence class); Lit holds that literal.
	EventEq
)

// Event is one entry in the Reconstructor's log, recorded in the order
// variables left the working formula.
type Event struct {
	Var     int
	Kind    EventKind
	Value   sat.LBool
	Lit     sat.Literal
	Clauses [][]sat.Literal
}

// Reconstructor accumulates the history needed to lift a model of the
// reduced formula back onto the original variable numbering: a remap from
// surviving original variables to their dense reduced-formula id, and an
// ordered log of every variable that was removed instead of renumbered.
type Reconstructor struct {
	NumVars int
	Remap   map[int]int
	Events  []Event
}

// NewReconstructor returns an empty log for an original formula over
// numVars variables.
func NewReconstructor(numVars int) *Reconstructor {
	return &Reconstructor{
		NumVars: numVars,
		Remap:   make(map[int]int),
	}
}

func (r *Reconstructor) logPrior(v int, value sat.LBool) {
	r.Events = append(r.Events, Event{Var: v, Kind: EventPrior, Value: value})
}

func (r *Reconstructor) logAny(v int) {
	r.Events = append(r.Events, Event{Var: v, Kind: EventAny})
}

func (r *Reconstructor) logVer(v int, clauses [][]sat.Literal) {
	cp := make([][]sat.Literal, len(clauses))
	for i, c := range clauses {
		cp[i] = append([]sat.Literal(nil), c...)
	}
	r.Events = append(r.Events, Event{Var: v, Kind: EventVer, Clauses: cp})
}

func (r *Reconstructor) logEq(v int, lit sat.Literal) {
	r.Events = append(r.Events, Event{Var: v, Kind: EventEq, Lit: lit})
}

// Lift extends a model of the reduced formula (indexed by reduced variable
// id, 1-based) into a full model over the original NumVars variables.
//
// Every original variable is first seeded: a surviving variable copies its
// value through Remap; a Prior or Any variable is resolved directly, since
// its value never depended on anything else. Ver and Eq variables are left
// unresolved placeholders for the second pass.
//
// The log is then replayed in reverse (the order variables were removed,
// latest first) so that, by the time a Ver or Eq event is resolved, every
// variable it can reference has already been assigned: Eq copies the
// representative literal's truth value; Ver picks the first value that
// satisfies a clause not already satisfied by its other literals, or true
// if every stored clause is already satisfied.
func (r *Reconstructor) Lift(reduced []bool) []bool {
	assigned := make([]bool, r.NumVars+1)
	resolved := make([]bool, r.NumVars+1)

	for v := 1; v <= r.NumVars; v++ {
		if nv, ok := r.Remap[v]; ok {
			assigned[v] = reduced[nv]
			resolved[v] = true
		}
	}
	for _, e := range r.Events {
		switch e.Kind {
		case EventPrior:
			assigned[e.Var] = e.Value == sat.True
			resolved[e.Var] = true
		case EventAny:
			assigned[e.Var] = true
			resolved[e.Var] = true
		}
	}

	for i := len(r.Events) - 1; i >= 0; i-- {
		e := r.Events[i]
		switch e.Kind {
		case EventEq:
			assigned[e.Var] = evalLiteral(e.Lit, assigned)
			resolved[e.Var] = true
		case EventVer:
			assigned[e.Var] = resolveVer(e, assigned)
			resolved[e.Var] = true
		}
	}

	return assigned[1:]
}

func evalLiteral(l sat.Literal, assigned []bool) bool {
	v := assigned[l.VarID()]
	if l.IsPositive() {
		return v
	}
	return !v
}

// resolveVer picks a value for the eliminated variable that satisfies at
// least one of its stored clauses that is not already satisfied by another
// literal in it. If every stored clause is already satisfied regardless of
// this variable's value, it defaults to true.
func resolveVer(e Event, assigned []bool) bool {
	for _, c := range e.Clauses {
		satisfiedByOther := false
		var ownLit sat.Literal
		hasOwn := false
		for _, l := range c {
			if l.VarID() == e.Var {
				ownLit = l
				hasOwn = true
				continue
			}
			if evalLiteral(l, assigned) {
				satisfiedByOther = true
				break
			}
		}
		if satisfiedByOther {
			continue
		}
		if hasOwn {
			return ownLit.IsPositive()
		}
	}
	return true
}
