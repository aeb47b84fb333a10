package simplify

import (
	"time"

	"github.com/satkit/satkit/internal/sat"
)

// hyperBinaryResolve implements hyper-binary resolution (spec 4.9.3): for
// a clause (l0 v l1 v ... v lk) and a literal x such that the implication
// graph already shows x -> not(li) for every li but one, lj, the binary
// clause (not(x) v lj) is sound and is added to the formula (and folded
// into the graph immediately, so later clauses in the same pass can chain
// off it). Bounded by deadline since, unlike the other three techniques,
// the candidate search is the product of clause count and graph size
// rather than linear.
func (st *state) hyperBinaryResolve(deadline time.Time) (changed bool, ok bool) {
	st.graph = seedFromFormula(st.formula)

	for _, c := range st.formula.Clauses {
		if !time.Now().Before(deadline) {
			return changed, true
		}
		if c == nil || len(c) < 3 {
			continue
		}
		for _, x := range st.graph.Nodes() {
			missing := -1
			matched := 0
			for idx, l := range c {
				if st.graph.HasEdge(x, l.Opposite()) {
					matched++
					continue
				}
				if missing != -1 {
					missing = -2 // more than one unmatched literal
					break
				}
				missing = idx
			}
			if missing < 0 || matched != len(c)-1 {
				continue
			}
			bin := []sat.Literal{x.Opposite(), c[missing]}
			canon, ok := canonicalizeClause(bin)
			if !ok {
				continue // tautology: derives nothing new
			}
			if len(canon) == 0 {
				return changed, false
			}
			if len(canon) == 1 {
				if !st.fixLiteral(canon[0]) {
					return changed, false
				}
				changed = true
				continue
			}
			if st.addDerivedBinary(canon[0], canon[1]) {
				changed = true
			}
		}
	}
	return changed, true
}

// addDerivedBinary adds a binary clause discovered by resolution if it is
// not already present, seeding the graph with its implications so that
// subsequent candidates in the same pass can use it.
func (st *state) addDerivedBinary(a, b sat.Literal) bool {
	if st.graph.HasEdge(a.Opposite(), b) {
		return false
	}
	st.formula.Clauses = append(st.formula.Clauses, []sat.Literal{a, b})
	st.graph.SeedFromBinaryClause(a, b)
	return true
}
