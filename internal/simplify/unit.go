package simplify

import "github.com/satkit/satkit/internal/sat"

// propagateUnits repeats unit propagation to a fixed point: a clause
// satisfied by an already-fixed literal is deleted, a clause reduced to a
// single live literal fixes that literal (logging a Prior event), and a
// clause reduced to zero live literals proves the formula unsatisfiable.
// Reports false on the latter.
func (st *state) propagateUnits() bool {
	for {
		changed := false
		for i, c := range st.formula.Clauses {
			if c == nil {
				continue
			}
			kept := c[:0:0]
			satisfied := false
			for _, l := range c {
				switch st.eval(l) {
				case sat.True:
					satisfied = true
				case sat.Unknown:
					kept = append(kept, l)
				}
			}
			if satisfied {
				st.deleteClause(i)
				changed = true
				continue
			}
			if len(kept) == 0 {
				return false
			}
			if len(kept) == 1 {
				if !st.fixLiteral(kept[0]) {
					return false
				}
				st.deleteClause(i)
				changed = true
				continue
			}
			if len(kept) != len(c) {
				st.formula.Clauses[i] = kept
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
}
