package simplify

import "testing"

func TestSeedFromBinaryClauseAddsBothImplications(t *testing.T) {
	g := NewImplicationGraph()
	a, b := lit(1, true), lit(2, false)
	g.SeedFromBinaryClause(a, b)

	if !g.HasEdge(a.Opposite(), b) {
		t.Errorf("want edge not(a)->b")
	}
	if !g.HasEdge(b.Opposite(), a) {
		t.Errorf("want edge not(b)->a")
	}
}

func TestTarjanSCCFindsEquivalenceClass(t *testing.T) {
	// (1 v -2) and (-1 v 2) make 1 <-> 2: SCC {1, 2} and its mirror {-1,-2}.
	g := NewImplicationGraph()
	g.SeedFromBinaryClause(lit(1, true), lit(2, false))
	g.SeedFromBinaryClause(lit(1, false), lit(2, true))

	comps := tarjanSCC(g, 2)
	found := false
	for _, comp := range comps {
		if len(comp) == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("tarjanSCC: want a 2-literal component, got %v", comps)
	}
}
