// Package simplify implements the formula simplifier: a fixed-point loop
// of unit propagation, NiVER, hyper-binary resolution, and equivalence
// elimination over a working CNF formula, producing a reduced formula and
// a Reconstructor able to lift a model of the reduced formula back onto
// the original variables.
package simplify

import (
	"sort"

	"github.com/satkit/satkit/internal/sat"
)

// Formula is the simplifier's mutable working CNF: variables are numbered
// 1..NumVars exactly as parsed from DIMACS. Deleted clauses are nil
// entries rather than removed from the slice, so that clause indices
// referenced elsewhere (e.g. occurrence lists built earlier in the same
// pass) stay valid until the next pass rebuilds them.
type Formula struct {
	NumVars int
	Clauses [][]sat.Literal
}

// NewFormula returns an empty working formula over numVars variables.
func NewFormula(numVars int) *Formula {
	return &Formula{NumVars: numVars}
}

// AddClause appends a canonicalized clause, dropping it silently if it is
// a tautology. Reports false (and leaves the formula untouched) if the
// clause is empty after canonicalization, signaling immediate UNSAT.
func (f *Formula) AddClause(lits []sat.Literal) bool {
	canon, ok := canonicalizeClause(lits)
	if !ok {
		return true // tautology: no constraint, not UNSAT
	}
	if len(canon) == 0 {
		return false
	}
	f.Clauses = append(f.Clauses, canon)
	return true
}

// canonicalizeClause sorts lits by encoded value, removes duplicates, and
// reports ok=false if the clause is a tautology (contains both a literal
// and its negation). Mirrors internal/sat's clause canonicalization; kept
// as a separate copy here because internal/sat's version is unexported and
// this package's working clauses are mutable slices, not internal/sat's
// immutable-after-construction Clause type.
func canonicalizeClause(lits []sat.Literal) ([]sat.Literal, bool) {
	out := append([]sat.Literal(nil), lits...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	n := 0
	for _, l := range out {
		if n > 0 && l == out[n-1] {
			continue
		}
		if n > 0 && l == out[n-1].Opposite() {
			return nil, false
		}
		out[n] = l
		n++
	}
	return out[:n], true
}
