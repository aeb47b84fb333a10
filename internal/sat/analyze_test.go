package sat

import "testing"

// newAnalyzeSolver returns a Solver with just enough machinery (trail,
// clause store, VSIDS, seen set) initialized to exercise analyze in
// isolation, without going through Solve's search loop.
func newAnalyzeSolver(numVars int) *Solver {
	s := NewSolver(numVars, deterministicOptions())
	s.vsids = NewVSIDS(numVars, nil, s.opts)
	return s
}

func TestAnalyzeOneUIPShape(t *testing.T) {
	s := newAnalyzeSolver(4)
	tr := s.trail

	tr.pushSnapshot() // level 1
	tr.assign(lit(1, true), nil)
	tr.pushSnapshot() // level 2
	tr.assign(lit(3, true), nil)
	reason, _ := newOriginalClause([]Literal{lit(3, false), lit(4, true)})
	tr.assign(lit(4, true), reason)

	conflict, _ := newOriginalClause([]Literal{lit(1, false), lit(4, false)})

	got := s.analyze(conflict)
	if got.global {
		t.Fatalf("analyze() reported a global conflict, want a learned clause")
	}

	level := tr.DecisionLevel()
	atLevel := 0
	for _, l := range got.lits {
		if tr.Level(l.VarID()) == level {
			atLevel++
		}
		if tr.Level(l.VarID()) > level {
			t.Errorf("learned literal %v is at level %d, above the conflict level %d", l, tr.Level(l.VarID()), level)
		}
	}
	if atLevel != 1 {
		t.Errorf("learned clause has %d literals at the conflict level, want exactly 1 (first-UIP)", atLevel)
	}
	if int(got.lbd) > len(got.lits) {
		t.Errorf("lbd = %d exceeds clause length %d", got.lbd, len(got.lits))
	}
}

func TestAnalyzeChainsThroughReasons(t *testing.T) {
	s := newAnalyzeSolver(5)
	tr := s.trail

	tr.pushSnapshot() // level 1
	tr.assign(lit(2, true), nil)
	r1, _ := newOriginalClause([]Literal{lit(2, false), lit(3, true)})
	tr.assign(lit(3, true), r1)
	r2, _ := newOriginalClause([]Literal{lit(3, false), lit(4, true)})
	tr.assign(lit(4, true), r2)

	conflict, _ := newOriginalClause([]Literal{lit(4, false), lit(2, false)})

	got := s.analyze(conflict)
	if got.global {
		t.Fatalf("analyze() reported a global conflict, want a learned clause")
	}

	level := tr.DecisionLevel()
	atLevel := 0
	for _, l := range got.lits {
		if tr.Level(l.VarID()) == level {
			atLevel++
		}
	}
	if atLevel != 1 {
		t.Errorf("learned clause has %d literals at the conflict level, want exactly 1 (first-UIP)", atLevel)
	}
	if int(got.lbd) > len(got.lits) {
		t.Errorf("lbd = %d exceeds clause length %d", got.lbd, len(got.lits))
	}
}

func TestAnalyzeGlobalConflictAtLevelZero(t *testing.T) {
	s := newAnalyzeSolver(2)
	tr := s.trail
	tr.assignPrior(lit(1, true))
	tr.pushSnapshot() // level 1, so DecisionLevel() > 0 but the conflict only involves level-0 vars

	conflict, _ := newOriginalClause([]Literal{lit(1, false)})
	got := s.analyze(conflict)
	if !got.global {
		t.Errorf("analyze() did not report global, want global=true for a conflict with no current-level literals")
	}
}
