package gogen

import (
	"maps"
	"slices"

	"github.com/gnames/owlgen/pkg/ontology"
)

// graph holds import edges between package paths.
type graph map[string]map[string]struct{}

func (gr graph) add(from, to string) {
	if from == to {
		return
	}
	if gr[from] == nil {
		gr[from] = make(map[string]struct{})
	}
	gr[from][to] = struct{}{}
}

func (gr graph) has(from, to string) bool {
	_, ok := gr[from][to]
	return ok
}

// breakCycles keeps generated packages free of import cycles. Inside a
// group of packages that import each other, property types naming a class
// of another package of the group become any. Interfaces embed their
// parents, so a class whose parent closes a cycle is dropped.
func (g *Generator) breakCycles() {
	refs, embeds, all := make(graph), make(graph), make(graph)
	for _, ci := range g.sortedClasses() {
		for _, p := range ci.class.Implements() {
			if pi, ok := g.classes[p]; ok {
				embeds.add(ci.pkg.path, pi.pkg.path)
				all.add(ci.pkg.path, pi.pkg.path)
			}
		}
		for _, a := range g.reg.AllProperties(ci.class) {
			for _, c := range g.rangeClasses(a.Property) {
				if ri, ok := g.classes[c]; ok {
					refs.add(ci.pkg.path, ri.pkg.path)
					all.add(ci.pkg.path, ri.pkg.path)
				}
			}
		}
	}

	for _, scc := range all.components() {
		for _, from := range scc {
			for _, to := range scc {
				if refs.has(from, to) {
					g.widen.add(from, to)
				}
			}
		}
	}

	var drop []*classInfo
	for _, scc := range embeds.components() {
		if len(scc) < 2 {
			continue
		}
		slices.Sort(scc)
		err := ImportCycleError(scc)
		for _, ci := range g.sortedClasses() {
			if !slices.Contains(scc, ci.pkg.path) {
				continue
			}
			for _, p := range ci.class.Implements() {
				pi, ok := g.classes[p]
				if ok && pi.pkg != ci.pkg && slices.Contains(scc, pi.pkg.path) {
					g.diagErr(ci.class.IRI, err)
					drop = append(drop, ci)
					break
				}
			}
		}
	}
	for _, ci := range drop {
		delete(g.classes, ci.class)
	}
}

// rangeClasses returns the classes accessors of p may name.
func (g *Generator) rangeClasses(p *ontology.Property) []*ontology.Class {
	if p.Range == nil {
		return nil
	}
	res := g.reg.Constituents(p.Range, ontology.FlagDirect)
	for _, c := range g.reg.Constituents(p.Range, ontology.FlagVaradic) {
		if !slices.Contains(res, c) {
			res = append(res, c)
		}
	}
	return res
}

// components returns strongly connected components of gr (Tarjan).
func (gr graph) components() [][]string {
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var res [][]string
	var next int

	var visit func(v string)
	visit = func(v string) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range slices.Sorted(maps.Keys(gr[v])) {
			if _, ok := index[w]; !ok {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}
		if low[v] != index[v] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		res = append(res, scc)
	}
	for _, v := range slices.Sorted(maps.Keys(gr)) {
		if _, ok := index[v]; !ok {
			visit(v)
		}
	}
	return res
}
