package simplify

import (
	"sort"

	"github.com/satkit/satkit/internal/sat"
)

// ImplicationGraph records binary implications a -> b ("a implies b")
// discovered from binary clauses: clause {not(a), b} means a -> b. It is
// intentionally allowed to contain cycles — a cycle through a literal and
// its negation's successors is exactly an equivalence class, which
// eliminateEquivalences below detects and collapses. The graph is owned
// by, and local to, the simplifier: it has no counterpart in internal/sat.
type ImplicationGraph struct {
	edges map[sat.Literal]map[sat.Literal]struct{}
}

// NewImplicationGraph returns an empty graph.
func NewImplicationGraph() *ImplicationGraph {
	return &ImplicationGraph{edges: make(map[sat.Literal]map[sat.Literal]struct{})}
}

// AddEdge records a -> b, reporting whether it was new.
func (g *ImplicationGraph) AddEdge(a, b sat.Literal) bool {
	if a == b {
		return false
	}
	set, ok := g.edges[a]
	if !ok {
		set = make(map[sat.Literal]struct{})
		g.edges[a] = set
	}
	if _, exists := set[b]; exists {
		return false
	}
	set[b] = struct{}{}
	return true
}

// HasEdge reports whether a -> b is recorded.
func (g *ImplicationGraph) HasEdge(a, b sat.Literal) bool {
	set, ok := g.edges[a]
	if !ok {
		return false
	}
	_, exists := set[b]
	return exists
}

// Successors returns every literal b such that a -> b is recorded.
func (g *ImplicationGraph) Successors(a sat.Literal) []sat.Literal {
	set := g.edges[a]
	out := make([]sat.Literal, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nodes returns every literal with at least one outgoing edge, sorted by
// encoded value for deterministic traversal order.
func (g *ImplicationGraph) Nodes() []sat.Literal {
	out := make([]sat.Literal, 0, len(g.edges))
	for l := range g.edges {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SeedFromBinaryClause records the two implications a binary clause {a, b}
// encodes: not(a) -> b and not(b) -> a.
func (g *ImplicationGraph) SeedFromBinaryClause(a, b sat.Literal) {
	g.AddEdge(a.Opposite(), b)
	g.AddEdge(b.Opposite(), a)
}

// seedFromFormula (re)builds the graph from every binary clause currently
// in the formula. Called at the start of hyper-binary resolution and
// equivalence elimination so both passes see binary clauses discovered by
// earlier passes in the same fixed-point round.
func seedFromFormula(f *Formula) *ImplicationGraph {
	g := NewImplicationGraph()
	for _, c := range f.Clauses {
		if len(c) == 2 {
			g.SeedFromBinaryClause(c[0], c[1])
		}
	}
	return g
}

// tarjanSCC returns the strongly connected components of g restricted to
// the 2*numVars literals of variables 1..numVars, in an arbitrary but
// deterministic order. Hand-written: no graph library appears anywhere in
// the retrieval pack (see DESIGN.md), so this is grounded on the textbook
// iterative formulation of Tarjan's algorithm rather than any example file.
func tarjanSCC(g *ImplicationGraph, numVars int) [][]sat.Literal {
	type frame struct {
		lit      sat.Literal
		succ     []sat.Literal
		nextIdx  int
		returnTo sat.Literal
	}

	index := make(map[sat.Literal]int)
	lowlink := make(map[sat.Literal]int)
	onStack := make(map[sat.Literal]bool)
	var stack []sat.Literal
	var comps [][]sat.Literal
	counter := 0

	all := make([]sat.Literal, 0, 2*numVars)
	for v := 1; v <= numVars; v++ {
		all = append(all, sat.NewLiteral(v, true), sat.NewLiteral(v, false))
	}

	var strongconnect func(start sat.Literal)
	strongconnect = func(start sat.Literal) {
		var call []frame
		push := func(l sat.Literal) {
			index[l] = counter
			lowlink[l] = counter
			counter++
			stack = append(stack, l)
			onStack[l] = true
			call = append(call, frame{lit: l, succ: g.Successors(l)})
		}
		push(start)
		for len(call) > 0 {
			top := &call[len(call)-1]
			if top.nextIdx < len(top.succ) {
				w := top.succ[top.nextIdx]
				top.nextIdx++
				if _, seen := index[w]; !seen {
					push(w)
					continue
				}
				if onStack[w] {
					if lowlink[w] < lowlink[top.lit] {
						lowlink[top.lit] = lowlink[w]
					}
				}
				continue
			}
			// Done with top; pop and propagate lowlink to caller.
			v := top.lit
			call = call[:len(call)-1]
			if len(call) > 0 {
				caller := &call[len(call)-1]
				if lowlink[v] < lowlink[caller.lit] {
					lowlink[caller.lit] = lowlink[v]
				}
			}
			if lowlink[v] == index[v] {
				var comp []sat.Literal
				for {
					n := len(stack) - 1
					w := stack[n]
					stack = stack[:n]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				comps = append(comps, comp)
			}
		}
	}

	for _, l := range all {
		if _, seen := index[l]; !seen {
			strongconnect(l)
		}
	}
	return comps
}
