// Package parsers glues internal/dimacs, internal/simplify, and
// internal/sat together: loading a DIMACS instance into a Solver, running
// the simplifier over it first when requested, and lifting a reported
// model back onto the original DIMACS numbering afterward. Grounded on
// the teacher's root parsers package (LoadDIMACS/ReadModels), generalized
// to thread the Reconstructor the teacher's solver never needed.
package parsers

import (
	"fmt"

	"github.com/satkit/satkit/internal/dimacs"
	"github.com/satkit/satkit/internal/sat"
	"github.com/satkit/satkit/internal/simplify"
)

// LoadResult bundles everything Solve needs after loading and optionally
// simplifying a DIMACS instance: a ready-to-run Solver, and (if
// simplification ran) the Reconstructor required to translate its model
// back to the original variable numbering. Reconstructor is nil when
// preprocess is false or the simplifier proved UNSAT outright.
type LoadResult struct {
	Solver        *sat.Solver
	Reconstructor *simplify.Reconstructor
	// UNSAT is true if loading alone proved the instance unsatisfiable
	// (the simplifier, or adding a clause to the solver, hit a
	// contradiction); Solver is nil in that case.
	UNSAT bool
}

// LoadDIMACS reads a DIMACS CNF file and prepares it for search. When
// preprocess is true, the formula is first run through internal/simplify
// and the reduced formula is loaded into the solver instead of the
// original; the returned LoadResult.Reconstructor must then be used to
// translate the solver's model back via Reconstructor.Lift.
func LoadDIMACS(filename string, gzipped bool, preprocess bool, opts sat.Options, simplifyOpts simplify.Options) (LoadResult, error) {
	instance, err := dimacs.ParseDIMACS(filename, gzipped)
	if err != nil {
		return LoadResult{}, fmt.Errorf("loading %q: %w", filename, err)
	}

	clauses := toLiterals(instance.Clauses)

	if !preprocess {
		solver := sat.NewSolver(instance.Variables, opts)
		for _, c := range clauses {
			if !solver.AddClause(c) {
				return LoadResult{UNSAT: true}, nil
			}
		}
		return LoadResult{Solver: solver}, nil
	}

	res := simplify.Simplify(instance.Variables, clauses, simplifyOpts)
	if res.UNSAT {
		return LoadResult{UNSAT: true}, nil
	}

	solver := sat.NewSolver(res.Formula.NumVars, opts)
	for _, c := range res.Formula.Clauses {
		if !solver.AddClause(c) {
			return LoadResult{UNSAT: true}, nil
		}
	}
	return LoadResult{Solver: solver, Reconstructor: res.Reconstructor}, nil
}

// toLiterals converts DIMACS's signed-integer clause representation
// (1-indexed, negative for negation) into internal/sat's packed Literal
// encoding.
func toLiterals(clauses [][]int) [][]sat.Literal {
	out := make([][]sat.Literal, len(clauses))
	for i, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for j, l := range c {
			if l < 0 {
				lits[j] = sat.NewLiteral(-l, false)
			} else {
				lits[j] = sat.NewLiteral(l, true)
			}
		}
		out[i] = lits
	}
	return out
}

// Model reads the solver's final assignment as a plain []bool, 1-indexed
// slot 0 unused, matching Reconstructor.Lift's input convention (Lift's
// own result starts at index 0 for variable 1).
func Model(s *sat.Solver) []bool {
	model := make([]bool, s.NumVars()+1)
	for v := 1; v <= s.NumVars(); v++ {
		model[v] = s.VarValue(v) == sat.True
	}
	return model
}

// ReadModels reads a file of known models for a CNF instance, one line
// per model, delegating to internal/dimacs's regression-test helper.
func ReadModels(filename string) ([][]bool, error) {
	return dimacs.ParseModels(filename)
}
