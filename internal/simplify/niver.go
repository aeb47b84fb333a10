package simplify

import "github.com/satkit/satkit/internal/sat"

// occurrences returns the indices of every live clause containing +v and
// every live clause containing -v, respectively.
func (st *state) occurrences(v int) (pos, neg []int) {
	p := sat.NewLiteral(v, true)
	n := sat.NewLiteral(v, false)
	for i, c := range st.formula.Clauses {
		if c == nil {
			continue
		}
		for _, l := range c {
			if l == p {
				pos = append(pos, i)
			} else if l == n {
				neg = append(neg, i)
			}
		}
	}
	return pos, neg
}

// eliminatePure fixes v to whichever value satisfies every one of its
// occurrences (it appears with only one polarity, so the assignment
// cannot falsify any other clause) and drops those clauses.
func (st *state) eliminatePure(v int, idxs []int, positive bool) {
	st.fix(v, sat.Lift(positive))
	for _, idx := range idxs {
		st.deleteClause(idx)
	}
}

// resolve combines a clause containing +v and a clause containing -v into
// their resolvent (every literal of both minus the literal of v),
// canonicalized. ok is false if the resolvent is a tautology, in which
// case it contributes nothing and should be skipped.
func resolve(pc, nc []sat.Literal, v int) (resolvent []sat.Literal, ok bool) {
	merged := make([]sat.Literal, 0, len(pc)+len(nc)-2)
	for _, l := range pc {
		if l.VarID() != v {
			merged = append(merged, l)
		}
	}
	for _, l := range nc {
		if l.VarID() != v {
			merged = append(merged, l)
		}
	}
	return canonicalizeClause(merged)
}

// resolveOut generates every resolvent of v's positive and negative
// occurrences. unsat is true if any resolvent is empty (both clauses
// contained only v's literal).
func resolveOut(f *Formula, pos, neg []int, v int) (resolvents [][]sat.Literal, unsat bool) {
	seen := make(map[string]bool)
	for _, pi := range pos {
		for _, ni := range neg {
			r, ok := resolve(f.Clauses[pi], f.Clauses[ni], v)
			if !ok {
				continue // tautology
			}
			if len(r) == 0 {
				return nil, true
			}
			key := clauseKey(r)
			if seen[key] {
				continue
			}
			seen[key] = true
			resolvents = append(resolvents, r)
		}
	}
	return resolvents, false
}

func clauseKey(c []sat.Literal) string {
	b := make([]byte, 0, len(c)*5)
	for _, l := range c {
		for l > 0 {
			b = append(b, byte('0'+l%10))
			l /= 10
		}
		b = append(b, ',')
	}
	return string(b)
}

// eliminateByResolution implements NiVER (non-increasing variable
// elimination by resolution, spec 4.9.2): for each live variable, either
// it is pure (one polarity only, fixed directly) or its positive and
// negative occurrences are replaced by their resolvents whenever doing so
// does not increase the total literal count of the clauses mentioning it.
// Eliminated variables are recorded as Ver events so Reconstructor.Lift can
// recover a satisfying value for them. Grounded on the occurrence-list/
// resolvent pattern used for variable elimination in gophersat's
// preprocessor.
func (st *state) eliminateByResolution() (changed bool, ok bool) {
	for v := 1; v <= st.formula.NumVars; v++ {
		if !st.live(v) {
			continue
		}
		pos, neg := st.occurrences(v)
		switch {
		case len(pos) == 0 && len(neg) == 0:
			st.markAny(v)
			changed = true
			continue
		case len(neg) == 0:
			st.eliminatePure(v, pos, true)
			changed = true
			continue
		case len(pos) == 0:
			st.eliminatePure(v, neg, false)
			changed = true
			continue
		}

		resolvents, unsat := resolveOut(st.formula, pos, neg, v)
		if unsat {
			return changed, false
		}
		old := 0
		for _, idx := range pos {
			old += len(st.formula.Clauses[idx])
		}
		for _, idx := range neg {
			old += len(st.formula.Clauses[idx])
		}
		newTotal := 0
		for _, r := range resolvents {
			newTotal += len(r)
		}
		if newTotal > old {
			continue
		}

		removed := make([][]sat.Literal, 0, len(pos)+len(neg))
		for _, idx := range pos {
			removed = append(removed, st.formula.Clauses[idx])
			st.deleteClause(idx)
		}
		for _, idx := range neg {
			removed = append(removed, st.formula.Clauses[idx])
			st.deleteClause(idx)
		}
		st.markVer(v, removed)
		for _, r := range resolvents {
			if !st.formula.AddClause(r) {
				return true, false
			}
		}
		changed = true
	}
	return changed, true
}
