package sat

import (
	"io"
	"log"
	"testing"
	"time"
)

// testOptions returns options tuned for fast, deterministic tests: no
// probing pass (it would still terminate correctly on these tiny
// instances, but skipping it keeps the test's assertions about decision
// order simple) and a silent logger.
func testOptions() Options {
	opts := DefaultOptions
	opts.ProbeTimeout = 0
	opts.Logger = log.New(io.Discard, "", 0)
	return opts
}

func mustAddClause(t *testing.T, s *Solver, lits ...Literal) {
	t.Helper()
	if !s.AddClause(lits) {
		t.Fatalf("AddClause(%v) reported UNSAT unexpectedly", lits)
	}
}

func TestSolveTrivialSAT(t *testing.T) {
	s := NewSolver(1, testOptions())
	mustAddClause(t, s, lit(1, true))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	if v := s.VarValue(1); v != True {
		t.Errorf("VarValue(1) = %v, want True", v)
	}
}

func TestSolveTrivialUNSAT(t *testing.T) {
	s := NewSolver(1, testOptions())
	mustAddClause(t, s, lit(1, true))
	if s.AddClause([]Literal{lit(1, false)}) {
		t.Fatalf("AddClause(-1) should report UNSAT: variable 1 is already prior TRUE")
	}

	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}
}

func TestSolveChainPropagation(t *testing.T) {
	// (-1 v 2) ^ (-2 v 3) ^ (1): propagation alone should force all three
	// variables true.
	s := NewSolver(3, testOptions())
	mustAddClause(t, s, lit(1, false), lit(2, true))
	mustAddClause(t, s, lit(2, false), lit(3, true))
	mustAddClause(t, s, lit(1, true))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	for v := 1; v <= 3; v++ {
		if got := s.VarValue(v); got != True {
			t.Errorf("VarValue(%d) = %v, want True", v, got)
		}
	}
}

func TestSolvePigeonholeIsUNSAT(t *testing.T) {
	// Three pigeons (1,2,3) into two holes (a,b): variable 2v-1 means
	// "pigeon v in hole a", variable 2v means "pigeon v in hole b".
	// Six variables: pigeon v's vars are (2v-1, 2v).
	s := NewSolver(6, testOptions())
	holeVar := func(pigeon, hole int) int { return 2*(pigeon-1) + hole } // hole in {1,2}

	// Each pigeon is in at least one hole.
	for p := 1; p <= 3; p++ {
		mustAddClause(t, s, lit(holeVar(p, 1), true), lit(holeVar(p, 2), true))
	}
	// No two pigeons share a hole.
	for h := 1; h <= 2; h++ {
		for p1 := 1; p1 <= 3; p1++ {
			for p2 := p1 + 1; p2 <= 3; p2++ {
				mustAddClause(t, s, lit(holeVar(p1, h), false), lit(holeVar(p2, h), false))
			}
		}
	}

	if got := s.Solve(); got != False {
		t.Fatalf("Solve() = %v, want False (pigeonhole is UNSAT)", got)
	}
}

func TestSolveWithProbingAndVerify(t *testing.T) {
	opts := testOptions()
	opts.ProbeTimeout = 50 * time.Millisecond
	opts.Verify = true

	s := NewSolver(3, opts)
	mustAddClause(t, s, lit(1, false), lit(2, true))
	mustAddClause(t, s, lit(2, false), lit(3, true))
	mustAddClause(t, s, lit(1, true))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
}
