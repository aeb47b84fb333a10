package sat

import (
	"math/rand"
	"time"
)

// probe runs failed-literal probing: for each variable (visited in random
// order), both polarities are tried at decision level 1. If a polarity
// leads to a conflict, its negation is fixed as a prior value. If a
// polarity's 1-UIP analysis collapses to a single level-1 literal (i.e.
// the decision itself was redundant — the same literal would have been
// implied regardless), that literal is also fixed as a prior value. A
// polarity that propagates cleanly with no conflict proves nothing about
// the other polarity, so the trial is simply backtracked without learning.
// The pass stops early after deadline elapses, matching the original's
// wall-clock probe_timeout.
//
// probe returns False if probing itself derives a global conflict (the
// formula is UNSAT), Unknown if the deadline was hit, and True otherwise.
func (s *Solver) probe(deadline time.Time) LBool {
	n := s.trail.NumVars()
	order := rand.New(rand.NewSource(s.opts.RandomSeed + 1)).Perm(n)

	for _, idx := range order {
		v := idx + 1
		if time.Now().After(deadline) {
			return Unknown
		}
		if s.trail.VarValue(v) != Unknown {
			continue
		}
		for _, positive := range [2]bool{true, false} {
			if s.trail.VarValue(v) != Unknown {
				break // fixed by the previous polarity's probe
			}
			if r := s.probeLiteral(NewLiteral(v, positive)); r == False {
				return False
			}
		}
	}
	return True
}

// probeLiteral pushes l as a decision at a fresh level and propagates,
// leaving the trail at level 0 in every case. A conflict yields a derived
// prior value to fix (spec §4.6 step 4's "otherwise" branch); a clean
// propagation backtracks without learning anything. It returns False if
// fixing a derived prior value itself closes a level-0 conflict.
func (s *Solver) probeLiteral(l Literal) LBool {
	s.pushDecision(l)
	conflict := s.propagate()

	if conflict == nil {
		s.backtrackTo(0)
		return True
	}

	// A conflict at decision level 1 always analyzes to a unit clause: every
	// non-current-level literal is at level 0 and is dropped during
	// analysis, since the only decision on the trail is this probe.
	result := s.analyze(conflict)
	s.backtrackTo(0)
	if result.global {
		return False
	}
	return Lift(s.fixPrior(result.lits[0]))
}

// fixPrior assigns l permanently at level 0 and propagates the
// consequence to a fixed point before the next probe proceeds, since a
// pending propagation left in the queue would otherwise be silently
// discarded by the next probeLiteral's watches.Reset. Returns False if
// this closes a level-0 conflict.
func (s *Solver) fixPrior(l Literal) bool {
	if s.trail.VarValue(l.VarID()) == Unknown {
		s.trail.assignPrior(l)
		s.vsids.OnAssign(l.VarID())
		s.watches.Enqueue(l)
	}
	return s.propagate() == nil
}
