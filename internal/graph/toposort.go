package graph

import (
	"sort"

	"designstore/internal/memory"
)

// GraphCycle reports that TopologicalSort found the graph is not a DAG.
// BackEdges names the edge objects whose removal would break every cycle
// found.
type GraphCycle struct {
	BackEdges []memory.ObjectID
}

func (e *GraphCycle) Error() string {
	return "graph: cannot topologically sort a cyclic graph"
}

// TopologicalSort orders nodes via Kahn's algorithm over the subgraph
// induced by nodes and edges (§4.E "topological_sort(nodes, edges) ->
// [ObjectID]"): only the given edges are considered, and only for the
// given nodes — an edge naming an object outside nodes is ignored.
// Nodes with no remaining incoming edge are emitted in ascending ID
// order, so the result is fully deterministic regardless of the input
// slices' order. Returns *GraphCycle if the induced subgraph is cyclic.
func (v *View) TopologicalSort(nodes, edges []memory.ObjectID) ([]memory.ObjectID, error) {
	induced := make(map[memory.ObjectID]struct{}, len(nodes))
	for _, id := range nodes {
		induced[id] = struct{}{}
	}

	inDegree := make(map[memory.ObjectID]int, len(nodes))
	for id := range induced {
		inDegree[id] = 0
	}
	outgoing := make(map[memory.ObjectID][]memory.ObjectID, len(nodes))
	var inducedEdges []*memory.ObjectSnapshot
	for _, edgeID := range edges {
		e, ok := v.edges[edgeID]
		if !ok {
			continue
		}
		if _, ok := induced[e.Structure.Origin]; !ok {
			continue
		}
		if _, ok := induced[e.Structure.Target]; !ok {
			continue
		}
		inducedEdges = append(inducedEdges, e)
		outgoing[e.Structure.Origin] = append(outgoing[e.Structure.Origin], e.Structure.Target)
		inDegree[e.Structure.Target]++
	}

	var ready []memory.ObjectID
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	var order []memory.ObjectID
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		targets := append([]memory.ObjectID(nil), outgoing[n]...)
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
		for _, t := range targets {
			inDegree[t]--
			if inDegree[t] == 0 {
				ready = append(ready, t)
			}
		}
	}

	if len(order) == len(induced) {
		return order, nil
	}

	return nil, &GraphCycle{BackEdges: backEdges(inducedEdges, induced, order)}
}

// backEdges identifies the edges responsible for the cycle(s) remaining
// once Kahn's algorithm stalls: every induced edge whose target was
// never removed from the in-degree count (i.e. whose target is not in
// the partial order Kahn's produced).
func backEdges(inducedEdges []*memory.ObjectSnapshot, induced map[memory.ObjectID]struct{}, partialOrder []memory.ObjectID) []memory.ObjectID {
	ordered := make(map[memory.ObjectID]struct{}, len(partialOrder))
	for _, id := range partialOrder {
		ordered[id] = struct{}{}
	}
	var edges []memory.ObjectID
	for _, e := range inducedEdges {
		if _, done := ordered[e.Structure.Target]; !done {
			if _, originKnown := induced[e.Structure.Origin]; originKnown {
				edges = append(edges, e.ObjectID)
			}
		}
	}
	return edges
}
