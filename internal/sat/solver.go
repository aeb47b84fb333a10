package sat

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Options configures a Solver. DefaultOptions mirrors the compiled-in
// constants of the original implementation.
type Options struct {
	// RandomPickVarProb is the probability that a decision picks a
	// uniformly random unassigned variable instead of the VSIDS favorite.
	RandomPickVarProb float64

	// VSIDSDecayPeriod is the number of conflicts between activity decays.
	VSIDSDecayPeriod int

	// VSIDSRescaleThreshold is the activity value above which every score
	// (and the decaying bump itself) is rescaled down.
	VSIDSRescaleThreshold float64

	// Polarity is the static decision polarity used when a variable has no
	// saved phase: false biases every fresh decision to the negative
	// literal, matching the original's FALSE-biased default.
	Polarity bool

	// RandomSeed seeds every pseudo-random choice the solver makes (VSIDS
	// random pick, probing order), consumed once at construction.
	RandomSeed int64

	// ClauseArenaChunk is the number of clause slots allocated per arena
	// chunk.
	ClauseArenaChunk int

	// ProbeTimeout bounds the failed-literal probing pass.
	ProbeTimeout time.Duration

	// MaxConflicts stops the search after this many conflicts if >= 0.
	MaxConflicts int64

	// Deadline, if non-zero, stops the search (returning Unknown) once
	// reached. Checked every logPeriod iterations of the main loop.
	Deadline time.Time

	// Verify, when set, re-checks every original clause against the
	// reported model before Solve returns True.
	Verify bool

	// Logger receives periodic search-progress lines. Defaults to a
	// logger writing to os.Stderr.
	Logger *log.Logger
}

// DefaultOptions mirrors the original's compiled-in tuning constants.
var DefaultOptions = Options{
	RandomPickVarProb:     0.01,
	VSIDSDecayPeriod:      defaultVSIDSDecayPeriod,
	VSIDSRescaleThreshold: defaultVSIDSRescaleThreshold,
	Polarity:              false,
	RandomSeed:            1,
	ClauseArenaChunk:      defaultArenaChunkSize,
	ProbeTimeout:          20 * time.Second,
	MaxConflicts:          -1,
}

const logPeriod = 20000

// Solver is a CDCL SAT search engine over a fixed number of variables. It
// is single-use: Solve must not be called twice on the same instance.
type Solver struct {
	opts Options

	trail   *Trail
	store   *ClauseStore
	watches *WatchIndex
	vsids   *VSIDS
	seen    *ResetSet

	unsatFlag   bool
	conflict    *Clause
	clauseLimit int

	logger *log.Logger

	TotalConflicts  int64
	TotalRestarts   int64
	TotalDecisions  int64
	TotalIterations int64
	startTime       time.Time
}

// NewSolver returns a solver over numVars variables (ids 1..numVars).
func NewSolver(numVars int, opts Options) *Solver {
	if opts.ClauseArenaChunk <= 0 {
		opts.ClauseArenaChunk = defaultArenaChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Solver{
		opts:    opts,
		trail:   NewTrail(numVars),
		store:   NewClauseStore(opts.ClauseArenaChunk),
		watches: NewWatchIndex(numVars),
		seen:    NewResetSet(numVars + 1),
		logger:  opts.Logger,
	}
}

// NewDefaultSolver returns a solver over numVars variables configured with
// DefaultOptions.
func NewDefaultSolver(numVars int) *Solver {
	return NewSolver(numVars, DefaultOptions)
}

// NumVars returns the number of variables the solver was sized for.
func (s *Solver) NumVars() int { return s.trail.NumVars() }

// PositiveLiteral returns the positive literal of variable v.
func (s *Solver) PositiveLiteral(v int) Literal { return NewLiteral(v, true) }

// NegativeLiteral returns the negative literal of variable v.
func (s *Solver) NegativeLiteral(v int) Literal { return NewLiteral(v, false) }

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool { return s.trail.VarValue(v) }

// AddClause adds an original (problem) clause. It returns false, leaving
// the solver permanently UNSAT, if the clause is empty after removing
// tautologies is impossible (a genuinely empty input clause) or if it
// conflicts with an already-fixed prior value. A clause containing both a
// variable and its negation is silently dropped (tautology), per spec:
// this still returns true, since a tautological clause carries no
// constraint.
func (s *Solver) AddClause(lits []Literal) bool {
	if s.unsatFlag {
		return false
	}
	canon, ok := canonicalize(append([]Literal(nil), lits...))
	if !ok {
		return true // tautology: no-op
	}
	switch len(canon) {
	case 0:
		s.unsatFlag = true
		return false
	case 1:
		return s.assignUnitOriginal(canon[0])
	default:
		id, ok := s.store.AddOriginal(canon)
		if !ok {
			return true
		}
		s.registerClause(s.store.Get(id))
		return !s.unsatFlag
	}
}

// registerClause selects two not-False literals of c to watch, swapping
// them into positions 0 and 1, and registers them with the watch index.
// Every clause is added at decision level 0 (AddClause runs only before
// Solve begins, and a restart's rebuildWatches also runs at level 0 after
// backtrackTo(0)), so any literal already assigned there is a permanent
// prior and this resolution can be done once and never revisited:
//
//   - Two or more not-False literals: c is watched normally.
//   - Exactly one: c is a forced unit under the current priors; assign it
//     (unless already satisfied) as a prior value, with no reason clause.
//   - Zero: c is falsified by priors alone; the formula is UNSAT.
func (s *Solver) registerClause(c *Clause) {
	lits := c.literals
	slot := 0
	for i := 0; i < len(lits) && slot < 2; i++ {
		if s.trail.Value(lits[i]) != False {
			lits[i], lits[slot] = lits[slot], lits[i]
			slot++
		}
	}
	switch slot {
	case 0:
		s.unsatFlag = true
	case 1:
		if s.trail.Value(lits[0]) == Unknown {
			s.trail.assignPrior(lits[0])
			s.watches.Enqueue(lits[0])
		}
	default:
		s.watches.AddClause(c)
	}
}

func (s *Solver) assignUnitOriginal(l Literal) bool {
	cur := s.trail.VarValue(l.VarID())
	if cur == Unknown {
		s.trail.assignPrior(l)
		s.watches.Enqueue(l)
		return true
	}
	if cur != Lift(l.IsPositive()) {
		s.unsatFlag = true
		return false
	}
	return true
}

// pushDecision opens a new decision level and assigns l as its decision.
func (s *Solver) pushDecision(l Literal) {
	s.trail.pushSnapshot()
	s.trail.assign(l, nil)
	s.vsids.OnAssign(l.VarID())
	s.watches.Reset()
	s.watches.Enqueue(l)
	s.TotalDecisions++
}

// backtrackTo truncates the trail back to decision level d (level d's own
// assignments are kept), undoing VSIDS assignment bookkeeping and discarding any pending
// propagation for every literal unassigned in the process.
func (s *Solver) backtrackTo(d int) {
	s.watches.Reset()
	s.trail.backtrackTo(d, func(l Literal) {
		s.vsids.SavePhase(l)
		s.vsids.OnUnassign(l.VarID())
	})
	s.unsatFlag = false
	s.conflict = nil
}

// Solve runs the CDCL search loop to completion, returning True (SAT),
// False (UNSAT), or Unknown (deadline exceeded). On True, every variable's
// assignment is available via VarValue.
func (s *Solver) Solve() LBool {
	s.startTime = time.Now()

	if s.unsatFlag {
		return False
	}
	if s.propagateAll() != nil {
		return False
	}

	initClauses := make([]*Clause, s.store.Len())
	for i := range initClauses {
		initClauses[i] = s.store.Get(ClauseID(i))
	}
	s.vsids = NewVSIDS(s.trail.NumVars(), initClauses, s.opts)
	for v := 1; v <= s.trail.NumVars(); v++ {
		if s.trail.VarValue(v) != Unknown {
			s.vsids.OnAssign(v)
		}
	}
	s.clauseLimit = int(float64(s.store.Len())*clauseLimitInitFactor) + 1

	if s.opts.ProbeTimeout > 0 {
		deadline := s.startTime.Add(s.opts.ProbeTimeout)
		if s.probe(deadline) == False {
			return False
		}
		if s.propagateAll() != nil {
			return False
		}
	}

	for {
		s.TotalIterations++
		if s.TotalIterations%logPeriod == 0 {
			if s.deadlineExceeded() {
				return Unknown
			}
			s.logProgress()
		}

		if s.conflict != nil {
			if !s.resolveConflict() {
				return False
			}
			continue
		}

		lit, ok := s.vsids.Pick()
		if !ok {
			return s.finishSAT()
		}
		s.pushDecision(lit)
		s.conflict = s.propagate()

		if s.conflict == nil && s.store.NumLearned() > s.clauseLimit {
			s.TotalRestarts++
			s.reduceDB()
		}

		if s.opts.MaxConflicts >= 0 && s.TotalConflicts >= s.opts.MaxConflicts {
			return Unknown
		}
	}
}

// propagate drains the propagation queue, marking every literal it
// assigns as taken in VSIDS so Pick never hands back an already-assigned
// variable.
func (s *Solver) propagate() *Clause {
	return s.watches.Propagate(s.trail, func(l Literal) {
		if s.vsids != nil {
			s.vsids.OnAssign(l.VarID())
		}
	})
}

// propagateAll drains the propagation queue and records a conflict, if
// any, returning it.
func (s *Solver) propagateAll() *Clause {
	s.conflict = s.propagate()
	return s.conflict
}

// resolveConflict analyzes the current conflict, learns a clause (or
// fixes a prior value for a unit result), and backjumps. It returns false
// when the conflict is global (the formula is UNSAT).
func (s *Solver) resolveConflict() bool {
	s.TotalConflicts++
	s.vsids.OnConflict()

	if s.trail.DecisionLevel() == 0 {
		return false
	}

	result := s.analyze(s.conflict)
	if result.global {
		return false
	}

	if result.unit {
		s.backtrackTo(0)
		s.trail.assignPrior(result.lits[0])
		s.vsids.OnAssign(result.lits[0].VarID())
		s.watches.Enqueue(result.lits[0])
		s.conflict = s.propagate()
		return s.conflict == nil
	}

	s.backtrackTo(result.backjumpTo)
	id := s.store.AddLearned(result.lits, result.lbd)
	c := s.store.Get(id)
	s.watches.AddClause(c)
	s.trail.assign(c.literals[0], c)
	s.vsids.OnAssign(c.literals[0].VarID())
	s.watches.Enqueue(c.literals[0])
	s.conflict = s.propagate()
	return true
}

// finishSAT returns True once every variable is assigned and no conflict
// remains, optionally re-verifying the model first.
func (s *Solver) finishSAT() LBool {
	if s.opts.Verify {
		if err := s.verifyModel(); err != nil {
			panic(fmt.Sprintf("sat: reported model fails verification: %v", err))
		}
	}
	return True
}

func (s *Solver) deadlineExceeded() bool {
	return !s.opts.Deadline.IsZero() && time.Now().After(s.opts.Deadline)
}

func (s *Solver) logProgress() {
	s.logger.Printf(
		"iter=%d conflicts=%d restarts=%d decisions=%d clauses=%d elapsed=%s",
		s.TotalIterations, s.TotalConflicts, s.TotalRestarts, s.TotalDecisions,
		s.store.Len(), formatDuration(time.Since(s.startTime)),
	)
}

// verifyModel re-checks every original clause against the current
// assignment. Ported from the original's debug-only verify_result.
func (s *Solver) verifyModel() error {
	for i := 0; i < s.store.NumOriginal(); i++ {
		c := s.store.Get(ClauseID(i))
		satisfied := false
		for _, l := range c.Literals() {
			if s.trail.Value(l) == True {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("clause %d (%s) is not satisfied", i, c)
		}
	}
	return nil
}

// formatDuration renders d the way the original's print_format_seconds
// does: escalating units, coarsest unit first, for human-readable
// progress logs.
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%.1fs", secs)
	case secs < 3600:
		return fmt.Sprintf("%.1fm", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%.1fh", secs/3600)
	case secs < 365*86400:
		return fmt.Sprintf("%.1fd", secs/86400)
	default:
		return fmt.Sprintf("%.1fy", secs/(365*86400))
	}
}
