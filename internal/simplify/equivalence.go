package simplify

import "github.com/satkit/satkit/internal/sat"

// eliminateEquivalences implements equivalence elimination (spec 4.9.4): a
// strongly connected component of the implication graph larger than a
// single literal is exactly a set of literals that are all logically
// equivalent (each implies every other), so every variable in it but one
// canonical representative is substituted out of the formula and recorded
// as an Eq event.
func (st *state) eliminateEquivalences() (changed bool, ok bool) {
	st.graph = seedFromFormula(st.formula)
	comps := tarjanSCC(st.graph, st.formula.NumVars)

	// canonicalRepresentative normalizes to a positive literal, so a
	// component and its complementary (all-negated) component - which
	// tarjanSCC always reports as two separate SCCs - compute the same
	// representative. Process each pair once: the first pass sets both a
	// literal's and its negation's mapping via rep.Opposite(), which
	// already accounts for the mirror component's members.
	repr := make(map[sat.Literal]sat.Literal)
	handled := make(map[sat.Literal]bool)
	for _, comp := range comps {
		if len(comp) < 2 {
			continue
		}
		rep := canonicalRepresentative(comp)
		if handled[rep] {
			continue
		}
		handled[rep] = true
		// comp holds either rep itself or, for the mirror component, rep's
		// negation; every other member is equivalent to whichever it holds.
		target := rep
		for _, l := range comp {
			if l == rep.Opposite() {
				target = rep.Opposite()
				break
			}
		}
		for _, l := range comp {
			if l.VarID() == rep.VarID() {
				continue
			}
			repr[l] = target
			repr[l.Opposite()] = target.Opposite()
		}
	}
	if len(repr) == 0 {
		return false, true
	}

	for v := 1; v <= st.formula.NumVars; v++ {
		if !st.live(v) {
			continue
		}
		lit := sat.NewLiteral(v, true)
		rep, has := repr[lit]
		if !has {
			continue
		}
		st.markEq(v, rep)
		changed = true
	}
	if !changed {
		return false, true
	}

	for i, c := range st.formula.Clauses {
		if c == nil {
			continue
		}
		canon, keep := substitute(c, repr)
		if !keep {
			st.deleteClause(i)
			continue
		}
		if len(canon) == 0 {
			return true, false
		}
		if len(canon) == 1 {
			if !st.fixLiteral(canon[0]) {
				return true, false
			}
			st.deleteClause(i)
			continue
		}
		st.formula.Clauses[i] = canon
	}
	return true, true
}

// canonicalRepresentative returns the positive literal of the smallest
// variable id among the component's members (whether that member occurs
// positively or negatively), so the substitution is deterministic and
// independent of SCC discovery order.
func canonicalRepresentative(comp []sat.Literal) sat.Literal {
	best := comp[0]
	for _, l := range comp[1:] {
		bv, lv := best.VarID(), l.VarID()
		if lv < bv || (lv == bv && l.IsPositive() && !best.IsPositive()) {
			best = l
		}
	}
	if !best.IsPositive() {
		best = best.Opposite()
	}
	return best
}
