package sat

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// VSIDS scores, is a low, maintains a max-heap of activities (variable
// state independent decaying sum), and hands out the next decision
// literal. Initial scores are the per-variable occurrence count across the
// clause database, per vsids_picker.h's init(); scores then decay every
// decayPeriod conflicts and are rescaled when any score would
// overflow.
type VSIDS struct {
	heap  *yagh.IntMap[float64]
	bump  []float64
	delta float64

	// phase is the saved/static polarity used when a variable is
	// selected with no better information: false biases to the negative
	// literal, matching the original's pick_polarity_mode default.
	phase []bool

	conflictsSinceDecay int
	decayPeriod         int
	decayFactor         float64
	rescaleThreshold    float64

	randomPickProb float64
	rng            *rand.Rand

	assigned []bool
}

const (
	defaultVSIDSDecayPeriod      = 256
	defaultVSIDSDecayFactor      = 0.5
	defaultVSIDSRescaleThreshold = 1e100
)

// NewVSIDS returns a VSIDS picker sized for numVars variables, with scores
// initialized to each variable's occurrence count across clauses.
// randomSeed is consumed exactly once, at construction, so that repeated
// Pick calls do not reseed the generator (an explicit fix over the
// original implementation's per-call re-seeding).
func NewVSIDS(numVars int, clauses []*Clause, opts Options) *VSIDS {
	v := &VSIDS{
		heap:             yagh.New[float64](numVars + 1),
		bump:             make([]float64, numVars+1),
		delta:            1,
		phase:            make([]bool, numVars+1),
		decayPeriod:      opts.VSIDSDecayPeriod,
		decayFactor:      defaultVSIDSDecayFactor,
		rescaleThreshold: opts.VSIDSRescaleThreshold,
		randomPickProb:   opts.RandomPickVarProb,
		rng:              rand.New(rand.NewSource(opts.RandomSeed)),
		assigned:         make([]bool, numVars+1),
	}
	if v.decayPeriod <= 0 {
		v.decayPeriod = defaultVSIDSDecayPeriod
	}
	if v.rescaleThreshold <= 0 {
		v.rescaleThreshold = defaultVSIDSRescaleThreshold
	}
	for i := range v.phase {
		v.phase[i] = opts.Polarity
	}
	for _, c := range clauses {
		for _, l := range c.Literals() {
			v.bump[l.VarID()]++
		}
	}
	for vr := 1; vr <= numVars; vr++ {
		v.heap.Put(vr, -v.bump[vr])
	}
	return v
}

// Bump increases variable v's activity by the current decaying delta.
// Called once per variable resolved into the learned clause during
// conflict analysis.
func (v *VSIDS) Bump(vr int) {
	v.bump[vr] += v.delta
	if v.bump[vr] > v.rescaleThreshold {
		v.rescale()
	}
	if !v.assigned[vr] {
		v.heap.Put(vr, -v.bump[vr])
	}
}

// rescale divides every activity (and the decaying delta) by
// rescaleThreshold to keep scores from overflowing float64, then re-keys
// every unassigned variable still in the heap at its new activity: unlike
// a comparator-based heap that reads scores by reference, yagh.IntMap
// caches the key passed to Put, so a variable left un-rebumped after a
// rescale would otherwise sit at a stale key off by a factor of
// rescaleThreshold from every freshly bumped variable.
func (v *VSIDS) rescale() {
	for i := range v.bump {
		v.bump[i] /= v.rescaleThreshold
	}
	v.delta /= v.rescaleThreshold
	for vr := 1; vr < len(v.bump); vr++ {
		if !v.assigned[vr] {
			v.heap.Put(vr, -v.bump[vr])
		}
	}
}

// OnConflict is called once per conflict. Every decayPeriod conflicts the
// decaying delta is inflated, which uniformly shrinks the relative weight
// of older bumps.
func (v *VSIDS) OnConflict() {
	v.conflictsSinceDecay++
	if v.conflictsSinceDecay >= v.decayPeriod {
		v.conflictsSinceDecay = 0
		v.delta /= v.decayFactor
	}
}

// OnAssign marks v as assigned, removing it from the pick pool.
func (v *VSIDS) OnAssign(vr int) { v.assigned[vr] = true }

// OnUnassign marks v as unassigned and reinserts it into the heap at its
// current activity, called from the trail's backtrack callback.
func (v *VSIDS) OnUnassign(vr int) {
	v.assigned[vr] = false
	v.heap.Put(vr, -v.bump[vr])
}

// SavePhase records the polarity a variable held just before being
// unassigned, for phase saving on its next selection.
func (v *VSIDS) SavePhase(l Literal) { v.phase[l.VarID()] = l.IsPositive() }

// Pick returns the next decision literal: the highest-activity unassigned
// variable, with probability randomPickProb replaced by a uniformly
// random unassigned variable instead. The returned literal's polarity is
// the variable's saved phase.
func (v *VSIDS) Pick() (Literal, bool) {
	vr, ok := v.pickVar()
	if !ok {
		return Undef, false
	}
	return NewLiteral(vr, v.phase[vr]), true
}

func (v *VSIDS) pickVar() (int, bool) {
	if v.randomPickProb > 0 && v.rng.Float64() < v.randomPickProb {
		if vr, ok := v.pickRandomVar(); ok {
			return vr, true
		}
	}
	for {
		next, ok := v.heap.Pop()
		if !ok {
			return 0, false
		}
		if !v.assigned[next.Elem] {
			return next.Elem, true
		}
	}
}

func (v *VSIDS) pickRandomVar() (int, bool) {
	n := len(v.assigned) - 1
	if n <= 0 {
		return 0, false
	}
	start := v.rng.Intn(n) + 1
	for i := 0; i < n; i++ {
		vr := start + i
		if vr > n {
			vr -= n
		}
		if !v.assigned[vr] {
			return vr, true
		}
	}
	return 0, false
}
