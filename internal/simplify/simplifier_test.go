package simplify

import (
	"testing"

	"github.com/satkit/satkit/internal/sat"
)

func TestSimplifyDetectsUNSAT(t *testing.T) {
	res := Simplify(1, [][]sat.Literal{
		{lit(1, true)},
		{lit(1, false)},
	}, DefaultOptions)

	if !res.UNSAT {
		t.Fatalf("Simplify(): want UNSAT, got %+v", res)
	}
}

func TestSimplifyReducesAndLiftsChainOfUnits(t *testing.T) {
	res := Simplify(3, [][]sat.Literal{
		{lit(1, true)},
		{lit(1, false), lit(2, true)},
		{lit(2, false), lit(3, true)},
	}, DefaultOptions)

	if res.UNSAT {
		t.Fatalf("Simplify(): want ok, got UNSAT")
	}
	if res.Formula.NumVars != 0 {
		t.Errorf("Simplify(): want every variable fixed away, got %d surviving", res.Formula.NumVars)
	}
	if len(res.Formula.Clauses) != 0 {
		t.Errorf("Simplify(): want no remaining clauses, got %v", res.Formula.Clauses)
	}

	model := res.Reconstructor.Lift(nil)
	if !model[0] || !model[1] || !model[2] {
		t.Errorf("Lift(): want all-true model, got %v", model)
	}
}

func TestSimplifyPreservesSatisfiabilityViaEquivalence(t *testing.T) {
	// 1 <-> 2, plus (2 v 3): satisfiable by var1=var2=true, var3 anything.
	res := Simplify(3, [][]sat.Literal{
		{lit(1, false), lit(2, true)},
		{lit(1, true), lit(2, false)},
		{lit(2, true), lit(3, true)},
	}, DefaultOptions)

	if res.UNSAT {
		t.Fatalf("Simplify(): want ok, got UNSAT")
	}

	// Every reduced variable set to true should lift to a model that
	// satisfies the original three clauses.
	reduced := make([]bool, res.Formula.NumVars+1)
	for i := range reduced {
		reduced[i] = true
	}
	model := res.Reconstructor.Lift(reduced)

	clauses := [][]sat.Literal{
		{lit(1, false), lit(2, true)},
		{lit(1, true), lit(2, false)},
		{lit(2, true), lit(3, true)},
	}
	for _, c := range clauses {
		ok := false
		for _, l := range c {
			v := model[l.VarID()-1]
			if l.IsPositive() == v {
				ok = true
			}
		}
		if !ok {
			t.Errorf("clause %v not satisfied by lifted model %v", c, model)
		}
	}
}

func TestSimplifyIsIdempotentOnAlreadyReducedFormula(t *testing.T) {
	first := Simplify(3, [][]sat.Literal{
		{lit(1, true), lit(2, true), lit(3, true)},
		{lit(1, false), lit(2, false)},
	}, DefaultOptions)
	if first.UNSAT {
		t.Fatalf("Simplify(): want ok, got UNSAT")
	}

	second := Simplify(first.Formula.NumVars, first.Formula.Clauses, DefaultOptions)
	if second.UNSAT {
		t.Fatalf("Simplify(second pass): want ok, got UNSAT")
	}
	if second.Formula.NumVars != first.Formula.NumVars {
		t.Errorf("Simplify(second pass): want a fixed point (%d vars), got %d vars", first.Formula.NumVars, second.Formula.NumVars)
	}
	if len(second.Formula.Clauses) != len(first.Formula.Clauses) {
		t.Errorf("Simplify(second pass): want a fixed point (%d clauses), got %d clauses", len(first.Formula.Clauses), len(second.Formula.Clauses))
	}
}
