package sat

import "sort"

const (
	clauseLimitInitFactor = 1.0 / 3.0
	clauseLimitIncFactor  = 1.1
	clauseKeepRatio       = 0.5
	glueLBD               = 2
)

// reduceDB performs a clause-database reduction pass: it backtracks to
// level 0, sorts learned clauses by LBD ascending, keeps the best
// clauseKeepRatio fraction plus every glue clause (LBD <= glueLBD) and
// every clause with Used() > 0 regardless of rank, drops the rest, rebuilds the watch index and VSIDS
// heap from scratch, and reapplies prior values. This is the "restart" of
// spec.md: search resumes from level 0 with a smaller, higher-quality
// learned clause set and a fresh decision order.
func (s *Solver) reduceDB() {
	s.backtrackTo(0)

	learnedIDs := s.store.Learned()
	learned := make([]*Clause, len(learnedIDs))
	for i, id := range learnedIDs {
		learned[i] = s.store.Get(id)
	}

	sort.SliceStable(learned, func(i, j int) bool {
		return learned[i].LBD() < learned[j].LBD()
	})

	keepCount := int(float64(len(learned))*clauseKeepRatio + 0.999999)
	keep := make([]*Clause, 0, len(learned))
	for i, c := range learned {
		if i < keepCount || c.LBD() <= glueLBD || c.Used() > 0 {
			keep = append(keep, c)
		} else {
			s.watches.RemoveClause(c)
		}
	}

	s.store.RebuildLearned(keep)
	s.rebuildWatches()
	s.rebuildVSIDS()

	s.clauseLimit = int(float64(s.clauseLimit) * clauseLimitIncFactor)
}

// rebuildWatches re-derives the watch index from the current clause store.
// Needed after reduceDB drops clauses, since a dropped clause's watches
// must not linger in the index. Runs at decision level 0 (reduceDB
// backtracks first), so registerClause's prior-only reasoning applies.
func (s *Solver) rebuildWatches() {
	s.watches = NewWatchIndex(s.trail.NumVars())
	for i := 0; i < s.store.Len(); i++ {
		s.registerClause(s.store.Get(ClauseID(i)))
	}
}

// rebuildVSIDS reinitializes VSIDS scores from scratch over the current
// clause set, matching the original's vsids.rebuild() called from init().
func (s *Solver) rebuildVSIDS() {
	all := make([]*Clause, s.store.Len())
	for i := range all {
		all[i] = s.store.Get(ClauseID(i))
	}
	s.vsids = NewVSIDS(s.trail.NumVars(), all, s.opts)
	for v := 1; v <= s.trail.NumVars(); v++ {
		if s.trail.VarValue(v) != Unknown {
			s.vsids.OnAssign(v)
		}
	}
}
