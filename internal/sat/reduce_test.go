package sat

import "testing"

func TestReduceDBKeepsGlueAndUsedClauses(t *testing.T) {
	s := NewSolver(6, deterministicOptions())
	mustAddClause(t, s, lit(1, true), lit(2, true))

	s.vsids = NewVSIDS(s.NumVars(), nil, s.opts)

	// Five learned clauses: one glue (lbd<=glueLBD), one with Used()>0, and
	// three high-LBD unused clauses that should be dropped once the keep
	// ratio excludes them.
	glueID := s.store.AddLearned([]Literal{lit(3, true), lit(4, true)}, 1)
	usedID := s.store.AddLearned([]Literal{lit(3, false), lit(5, true)}, 5)
	s.store.Get(usedID).bumpUsed()
	var dropCandidates []ClauseID
	for i := 0; i < 3; i++ {
		id := s.store.AddLearned([]Literal{lit(4, false), lit(6, true), lit(1, false)}, 5)
		dropCandidates = append(dropCandidates, id)
	}
	for _, id := range append([]ClauseID{glueID, usedID}, dropCandidates...) {
		s.watches.AddClause(s.store.Get(id))
	}
	s.clauseLimit = 1

	s.reduceDB()

	remaining := map[*Clause]bool{}
	for _, id := range s.store.Learned() {
		remaining[s.store.Get(id)] = true
	}

	if !remaining[s.store.Get(glueID)] {
		t.Errorf("glue clause (lbd<=%d) was dropped, want kept", glueLBD)
	}
	if !remaining[s.store.Get(usedID)] {
		t.Errorf("used clause (Used()>0) was dropped, want kept")
	}
	if len(remaining) >= 5 {
		t.Errorf("reduceDB kept all %d learned clauses, want at least one high-LBD unused clause dropped", len(remaining))
	}
}

func TestReduceDBGrowsClauseLimit(t *testing.T) {
	s := NewSolver(2, deterministicOptions())
	mustAddClause(t, s, lit(1, true))
	s.vsids = NewVSIDS(s.NumVars(), nil, s.opts)
	s.clauseLimit = 100

	s.reduceDB()

	if s.clauseLimit <= 100 {
		t.Errorf("clauseLimit = %d after reduceDB, want > 100 (clauseLimitIncFactor growth)", s.clauseLimit)
	}
}
