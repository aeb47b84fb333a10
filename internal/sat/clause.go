package sat

import (
	"sort"
	"strings"
)

// InvalidLBD marks a clause as original (not learned). Learned clauses
// always carry a finite literal-block-distance value, so this field alone
// distinguishes the two kinds of clause.
const InvalidLBD uint32 = ^uint32(0)

// ClauseStat holds the small statistics block attached to every clause.
type ClauseStat struct {
	// LBD is the literal block distance: the number of distinct decision
	// levels among the clause's literals at the time it was learned.
	// InvalidLBD for original (non-learned) clauses.
	LBD uint32

	// Used counts how many times the clause participated in conflict
	// analysis (was resolved with). Used only to decide whether a
	// reduction pass should spare a borderline-LBD clause.
	Used uint32
}

// Clause is an ordered multiset of literals (treated as a set by
// construction invariant) plus its statistics block. The set of literals
// never changes after construction; only their order (watch positions are
// swapped in place) and the statistics block do. literals[0] and
// literals[1] are always the two currently-watched literals.
type Clause struct {
	literals []Literal
	stat     ClauseStat
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.literals) }

// Lit returns the i-th literal of the clause.
func (c *Clause) Lit(i int) Literal { return c.literals[i] }

// Literals returns the clause's literals. Callers must not retain or
// mutate the returned slice beyond the call.
func (c *Clause) Literals() []Literal { return c.literals }

// IsLearned reports whether c was derived by conflict analysis, as opposed
// to being one of the problem's original clauses.
func (c *Clause) IsLearned() bool { return c.stat.LBD != InvalidLBD }

// LBD returns the clause's literal block distance (InvalidLBD for
// original clauses).
func (c *Clause) LBD() uint32 { return c.stat.LBD }

// Used returns the clause's conflict-analysis participation counter.
func (c *Clause) Used() uint32 { return c.stat.Used }

func (c *Clause) bumpUsed() { c.stat.Used++ }

func (c *Clause) swapWatches() {
	c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
}

// canonicalize sorts lits by encoded literal value, removes duplicates and
// reports ok=false if the clause is a tautology (contains both a literal
// and its negation). Since the positive and negative literal of a variable
// are adjacent after sorting (2v and 2v+1), both checks collapse into a
// single pass. lits is canonicalized in place and the (possibly shorter)
// prefix is returned.
func canonicalize(lits []Literal) (out []Literal, ok bool) {
	sortLiterals(lits)

	n := 0
	for _, l := range lits {
		if n > 0 && l == lits[n-1] {
			continue // duplicate literal
		}
		if n > 0 && l == lits[n-1].Opposite() {
			return nil, false // tautology
		}
		lits[n] = l
		n++
	}
	return lits[:n], true
}

// newOriginalClause canonicalizes lits and, if the clause is not a
// tautology, returns a new original (non-learned) clause over them. lits
// must contain at least 2 literals; unit and empty clauses are handled by
// the caller (the solver), not by the clause algebra itself.
func newOriginalClause(lits []Literal) (*Clause, bool) {
	canon, ok := canonicalize(lits)
	if !ok {
		return nil, false
	}
	out := make([]Literal, len(canon))
	copy(out, canon)
	return &Clause{literals: out, stat: ClauseStat{LBD: InvalidLBD}}, true
}

// newLearnedClause builds a learned clause from lits (already deduplicated
// by construction, since conflict analysis visits each variable once) with
// the given literal block distance. lits[0] is expected to be the
// first-UIP negation; the caller is responsible for placing the two
// highest-level literals at positions 0 and 1 so they can be watched.
func newLearnedClause(lits []Literal, lbd uint32) *Clause {
	out := make([]Literal, len(lits))
	copy(out, lits)
	return &Clause{literals: out, stat: ClauseStat{LBD: lbd}}
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func sortLiterals(lits []Literal) {
	// Small-clause insertion sort: most clauses are short (binary/ternary
	// dominate both original and learned sets), where insertion sort beats
	// sort.Slice's overhead. Falls back to a standard library sort for the
	// rare long clause.
	if len(lits) <= 12 {
		for i := 1; i < len(lits); i++ {
			for j := i; j > 0 && lits[j] < lits[j-1]; j-- {
				lits[j], lits[j-1] = lits[j-1], lits[j]
			}
		}
		return
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
}
