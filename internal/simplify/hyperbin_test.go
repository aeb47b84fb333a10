package simplify

import (
	"testing"
	"time"

	"github.com/satkit/satkit/internal/sat"
)

func hasClause(f *Formula, lits ...sat.Literal) bool {
	want := map[sat.Literal]bool{}
	for _, l := range lits {
		want[l] = true
	}
	for _, c := range f.Clauses {
		if c == nil || len(c) != len(lits) {
			continue
		}
		match := true
		for _, l := range c {
			if !want[l] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestHyperBinaryResolveDerivesImpliedBinary(t *testing.T) {
	// (4 -> not(2)) via (-4 v -2), (4 -> not(3)) via (-4 v -3), and clause
	// (1 v 2 v 3): every literal but "1" is refuted by 4, so (not(4) v 1) is
	// a sound derived clause.
	f := NewFormula(4)
	f.AddClause([]sat.Literal{lit(1, true), lit(2, true), lit(3, true)})
	f.AddClause([]sat.Literal{lit(4, false), lit(2, false)})
	f.AddClause([]sat.Literal{lit(4, false), lit(3, false)})

	st := newState(f)
	changed, ok := st.hyperBinaryResolve(time.Now().Add(time.Second))
	if !ok {
		t.Fatalf("hyperBinaryResolve(): want ok, got UNSAT")
	}
	if !changed {
		t.Fatalf("hyperBinaryResolve(): want changed, got none")
	}
	if !hasClause(f, lit(4, false), lit(1, true)) {
		t.Errorf("want derived clause (not(4) v 1) present, got %v", f.Clauses)
	}
}

func TestHyperBinaryResolveRespectsDeadline(t *testing.T) {
	f := NewFormula(2)
	f.AddClause([]sat.Literal{lit(1, true), lit(2, true)})

	st := newState(f)
	changed, ok := st.hyperBinaryResolve(time.Now().Add(-time.Second))
	if !ok {
		t.Fatalf("hyperBinaryResolve(): want ok even past deadline, got UNSAT")
	}
	if changed {
		t.Errorf("hyperBinaryResolve(): want no work done past an already-expired deadline")
	}
}
