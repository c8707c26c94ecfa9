package triples

import (
	"iter"
)

type key struct {
	s, p, o Term
	g       string
}

// Graph is an in-memory Store. Duplicate statements from the same document
// are stored once.
type Graph struct {
	triples []Triple
	seen    map[key]struct{}
	bySubj  map[Term][]int
	byPred  map[Term][]int
	byObj   map[Term][]int
	graphs  []string
	hasG    map[string]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		seen:   make(map[key]struct{}),
		bySubj: make(map[Term][]int),
		byPred: make(map[Term][]int),
		byObj:  make(map[Term][]int),
		hasG:   make(map[string]struct{}),
	}
}

// Add stores a statement. It returns false if the statement was already
// present.
func (g *Graph) Add(t Triple) bool {
	k := key{t.Subject, t.Predicate, t.Object, t.Graph}
	if _, ok := g.seen[k]; ok {
		return false
	}
	g.seen[k] = struct{}{}
	if _, ok := g.hasG[t.Graph]; !ok {
		g.hasG[t.Graph] = struct{}{}
		g.graphs = append(g.graphs, t.Graph)
	}
	idx := len(g.triples)
	g.triples = append(g.triples, t)
	g.bySubj[t.Subject] = append(g.bySubj[t.Subject], idx)
	g.byPred[t.Predicate] = append(g.byPred[t.Predicate], idx)
	g.byObj[t.Object] = append(g.byObj[t.Object], idx)
	return true
}

// AddIRIs is a shortcut for statements that consist of IRIs only.
func (g *Graph) AddIRIs(graph, s, p, o string) bool {
	return g.Add(Triple{
		Subject: NewIRI(s), Predicate: NewIRI(p), Object: NewIRI(o),
		Graph: graph,
	})
}

// Len returns the number of stored statements.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Graphs returns names of source documents in insertion order.
func (g *Graph) Graphs() []string {
	res := make([]string, len(g.graphs))
	copy(res, g.graphs)
	return res
}

// Match iterates over statements matching the pattern from all documents.
func (g *Graph) Match(s, p, o Term) iter.Seq[Triple] {
	return g.MatchIn("", s, p, o)
}

// MatchIn iterates over statements matching the pattern. An empty graph
// name matches every document.
func (g *Graph) MatchIn(graph string, s, p, o Term) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		idxs, all := g.candidates(s, p, o)
		if all {
			idxs = nil
		}
		n := len(idxs)
		if all {
			n = len(g.triples)
		}
		// the store may grow while iterating (context tagging),
		// only statements present at the start are visited.
		for i := range n {
			idx := i
			if !all {
				idx = idxs[i]
			}
			t := g.triples[idx]
			if !matches(t, graph, s, p, o) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// candidates picks the smallest index list for a pattern.
func (g *Graph) candidates(s, p, o Term) ([]int, bool) {
	var best []int
	found := false
	pick := func(idx map[Term][]int, t Term) {
		if t.IsZero() {
			return
		}
		l := idx[t]
		if !found || len(l) < len(best) {
			best = l
			found = true
		}
	}
	pick(g.bySubj, s)
	pick(g.byPred, p)
	pick(g.byObj, o)
	if !found {
		return nil, true
	}
	return best, false
}

func matches(t Triple, graph string, s, p, o Term) bool {
	if graph != "" && t.Graph != graph {
		return false
	}
	if !s.IsZero() && t.Subject != s {
		return false
	}
	if !p.IsZero() && t.Predicate != p {
		return false
	}
	if !o.IsZero() && t.Object != o {
		return false
	}
	return true
}
