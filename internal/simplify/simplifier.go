package simplify

import (
	"time"

	"github.com/satkit/satkit/internal/sat"
)

// Options holds the simplifier's tuning knobs, following internal/sat's
// Options/DefaultOptions pattern.
type Options struct {
	// GlobalTimeout bounds the entire simplification fixed-point loop.
	GlobalTimeout time.Duration
	// HyperBinaryTimeout bounds each hyper-binary resolution pass.
	HyperBinaryTimeout time.Duration
}

// DefaultOptions mirrors the constants of spec 6.
var DefaultOptions = Options{
	GlobalTimeout:      40 * time.Second,
	HyperBinaryTimeout: 5 * time.Second,
}

// Result is the outcome of Simplify.
type Result struct {
	// UNSAT is true if the formula was proven unsatisfiable by
	// simplification alone; Formula and Reconstructor are nil in that case.
	UNSAT bool
	// TimedOut reports whether GlobalTimeout was hit before the four
	// techniques reached a fixed point. Formula and Reconstructor are
	// still sound and usable: every step committed before the deadline is
	// a model-preserving transformation on its own.
	TimedOut bool
	Formula  *Formula
	Reconstructor *Reconstructor
}

// Simplify runs unit propagation, NiVER, hyper-binary resolution, and
// equivalence elimination to a fixed point (spec 4.9), then renumbers the
// surviving variables densely (spec 4.9.5) and returns the reduced formula
// together with the Reconstructor needed to lift a model of it back onto
// the original variables.
func Simplify(numVars int, clauses [][]sat.Literal, opts Options) Result {
	f := NewFormula(numVars)
	for _, c := range clauses {
		if !f.AddClause(c) {
			return Result{UNSAT: true}
		}
	}

	st := newState(f)
	deadline := time.Now().Add(opts.GlobalTimeout)

	if !st.propagateUnits() {
		return Result{UNSAT: true}
	}

	for {
		if !time.Now().Before(deadline) {
			reduced, rec := st.finalize()
			return Result{Formula: reduced, Reconstructor: rec, TimedOut: true}
		}

		anyChange := false

		changed, ok := st.eliminateByResolution()
		if !ok {
			return Result{UNSAT: true}
		}
		anyChange = anyChange || changed

		if !st.propagateUnits() {
			return Result{UNSAT: true}
		}

		hbDeadline := time.Now().Add(opts.HyperBinaryTimeout)
		if deadline.Before(hbDeadline) {
			hbDeadline = deadline
		}
		changed, ok = st.hyperBinaryResolve(hbDeadline)
		if !ok {
			return Result{UNSAT: true}
		}
		anyChange = anyChange || changed

		if !st.propagateUnits() {
			return Result{UNSAT: true}
		}

		changed, ok = st.eliminateEquivalences()
		if !ok {
			return Result{UNSAT: true}
		}
		anyChange = anyChange || changed

		if !st.propagateUnits() {
			return Result{UNSAT: true}
		}

		if !anyChange {
			break
		}
	}

	reduced, rec := st.finalize()
	return Result{Formula: reduced, Reconstructor: rec}
}

// finalize renumbers every surviving (live) variable densely starting at
// 1, recording the mapping in the Reconstructor, and rewrites every
// remaining clause under the new numbering (spec 4.9.5).
func (st *state) finalize() (*Formula, *Reconstructor) {
	next := 1
	for v := 1; v <= st.formula.NumVars; v++ {
		if st.live(v) {
			st.log.Remap[v] = next
			next++
		}
	}

	reduced := NewFormula(next - 1)
	for _, c := range st.formula.Clauses {
		if c == nil {
			continue
		}
		nc := make([]sat.Literal, len(c))
		for i, l := range c {
			nv, ok := st.log.Remap[l.VarID()]
			if !ok {
				panic("simplify: finalize: live clause references a non-live variable")
			}
			nc[i] = sat.NewLiteral(nv, l.IsPositive())
		}
		reduced.Clauses = append(reduced.Clauses, nc)
	}
	return reduced, st.log
}
