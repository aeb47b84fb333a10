package simplify

import (
	"testing"

	"github.com/satkit/satkit/internal/sat"
)

func TestPropagateUnitsChainsThroughImplications(t *testing.T) {
	f := NewFormula(3)
	f.AddClause([]sat.Literal{lit(1, true)})
	f.AddClause([]sat.Literal{lit(1, false), lit(2, true)})
	f.AddClause([]sat.Literal{lit(2, false), lit(3, true)})

	st := newState(f)
	if !st.propagateUnits() {
		t.Fatalf("propagateUnits(): want ok, got UNSAT")
	}
	for v := 1; v <= 3; v++ {
		if st.values[v] != sat.True {
			t.Errorf("var %d: want fixed true, got %v", v, st.values[v])
		}
	}
	for _, c := range f.Clauses {
		if c != nil {
			t.Errorf("want every clause consumed, found live clause %v", c)
		}
	}
}

func TestPropagateUnitsDetectsUNSAT(t *testing.T) {
	f := NewFormula(1)
	f.AddClause([]sat.Literal{lit(1, true)})
	f.AddClause([]sat.Literal{lit(1, false)})

	st := newState(f)
	if st.propagateUnits() {
		t.Fatalf("propagateUnits(): want UNSAT, got ok")
	}
}

func TestPropagateUnitsDeletesSatisfiedClauses(t *testing.T) {
	f := NewFormula(2)
	f.AddClause([]sat.Literal{lit(1, true)})
	f.AddClause([]sat.Literal{lit(1, true), lit(2, true)})

	st := newState(f)
	if !st.propagateUnits() {
		t.Fatalf("propagateUnits(): want ok, got UNSAT")
	}
	if f.Clauses[1] != nil {
		t.Errorf("want clause satisfied by var1=true to be deleted, got %v", f.Clauses[1])
	}
	if st.values[2] != sat.Unknown {
		t.Errorf("var 2: want still live, got %v", st.values[2])
	}
}
