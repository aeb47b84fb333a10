package dimacs

import (
	"fmt"
	"os"

	"github.com/rhartert/dimacs"
)

// modelBuilder reuses the DIMACS clause-line grammar to parse a file of
// known models (one line per model, a literal per variable) instead of a
// CNF formula. It implements dimacs.Builder.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil // ignore comments
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

// ParseModels reads a file of known models for a CNF instance, one line per
// model, used by regression tests to check the solver's reported
// assignment against a previously-verified one.
func ParseModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(file, b); err != nil {
		return nil, err
	}

	return b.models, nil
}
