package simplify

import "github.com/satkit/satkit/internal/sat"

// state threads the bookkeeping every simplification technique shares: the
// working formula, each original variable's final disposition so far, the
// implication graph, and the reconstruction log. It is the simplifier's
// analogue of internal/sat.Trail, scoped to preprocessing instead of
// search.
type state struct {
	formula    *Formula
	values     []sat.LBool // per-variable fixed value, Unknown while still live
	eliminated []bool      // true once a variable left the formula (fixed, NiVER, Any or Eq)
	eqTarget   map[int]sat.Literal
	graph      *ImplicationGraph
	log        *Reconstructor
}

func newState(f *Formula) *state {
	return &state{
		formula:    f,
		values:     make([]sat.LBool, f.NumVars+1),
		eliminated: make([]bool, f.NumVars+1),
		eqTarget:   make(map[int]sat.Literal),
		graph:      NewImplicationGraph(),
		log:        NewReconstructor(f.NumVars),
	}
}

// live reports whether v is still a genuine decision variable of the
// working formula (neither fixed to a constant nor eliminated).
func (st *state) live(v int) bool {
	return st.values[v] == sat.Unknown && !st.eliminated[v]
}

// eval evaluates a literal under the currently fixed values, returning
// Unknown if its variable is still live.
func (st *state) eval(l sat.Literal) sat.LBool {
	v := st.values[l.VarID()]
	if v == sat.Unknown {
		return sat.Unknown
	}
	if !l.IsPositive() {
		v = v.Opposite()
	}
	return v
}

// fix permanently assigns a live variable to value, recording a Prior
// event. Reports false if the variable was already fixed to the opposite
// value (a contradiction — the caller should treat this as UNSAT).
func (st *state) fix(v int, value sat.LBool) bool {
	if st.values[v] != sat.Unknown {
		return st.values[v] == value
	}
	st.values[v] = value
	st.eliminated[v] = true
	st.log.logPrior(v, value)
	return true
}

// fixLiteral fixes l's variable to the value that makes l true.
func (st *state) fixLiteral(l sat.Literal) bool {
	return st.fix(l.VarID(), sat.Lift(l.IsPositive()))
}

// markAny records a variable that never occurs in any live clause.
func (st *state) markAny(v int) {
	if st.eliminated[v] || st.values[v] != sat.Unknown {
		return
	}
	st.eliminated[v] = true
	st.log.logAny(v)
}

// markVer records a variable eliminated by resolution, storing the clauses
// it occurred in (needed by Reconstructor.Lift to pick a satisfying value).
func (st *state) markVer(v int, clauses [][]sat.Literal) {
	st.eliminated[v] = true
	st.log.logVer(v, clauses)
}

// markEq records a variable found equivalent to rep, substituting one for
// the other in every live clause is the caller's responsibility.
func (st *state) markEq(v int, rep sat.Literal) {
	st.eliminated[v] = true
	st.eqTarget[v] = rep
	st.log.logEq(v, rep)
}

// deleteClause removes a clause from the working formula by index.
func (st *state) deleteClause(idx int) {
	st.formula.Clauses[idx] = nil
}

// substitute rewrites every literal of c found in repr, returning the
// rewritten clause and false if it became a tautology (in which case the
// clause should be deleted rather than kept), true otherwise.
func substitute(c []sat.Literal, repr map[sat.Literal]sat.Literal) ([]sat.Literal, bool) {
	out := make([]sat.Literal, len(c))
	changed := false
	for i, l := range c {
		if r, ok := repr[l]; ok {
			out[i] = r
			changed = true
		} else {
			out[i] = l
		}
	}
	if !changed {
		return c, true
	}
	return canonicalizeClause(out)
}
