package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"
)

// Instance is a raw, unprocessed CNF formula as read off disk: 1-indexed
// DIMACS literals, untouched by any simplification.
type Instance struct {
	Variables int
	Clauses   [][]int
	Comments  []string
}

// ParseDIMACS reads a DIMACS CNF file, transparently gunzipping it first
// when gzipped is true.
func ParseDIMACS(filename string, gzipped bool) (*Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := reader(f, gzipped)
	if err != nil {
		return nil, err
	}

	b := &instanceBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return &b.instance, nil
}

func reader(f *os.File, gzipped bool) (io.Reader, error) {
	if !gzipped {
		return f, nil
	}
	return gzip.NewReader(f)
}

// instanceBuilder wraps an Instance to implement dimacs.Builder.
type instanceBuilder struct {
	instance Instance
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	b.instance.Variables = nVars
	b.instance.Clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *instanceBuilder) Comment(c string) error {
	b.instance.Comments = append(b.instance.Comments, c)
	return nil
}

func (b *instanceBuilder) Clause(lits []int) error {
	clause := make([]int, len(lits))
	copy(clause, lits)
	b.instance.Clauses = append(b.instance.Clauses, clause)
	return nil
}
