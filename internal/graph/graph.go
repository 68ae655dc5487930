// Package graph implements the graph view (§4.E): a projection of a
// frame's node and edge objects, with neighborhood lookups and a
// deterministic topological sort.
package graph

import (
	"fmt"
	"sort"

	"designstore/internal/memory"
	"designstore/internal/metamodel"
)

// View projects a memory.Frame's structural objects into nodes and edges.
// It records the frame's membership at construction time: objects later
// added to or removed from the frame are not seen. The snapshots it holds
// are shared with the frame, so an in-place change to an owned snapshot
// of a mutable frame is visible through the view.
type View struct {
	nodes map[memory.ObjectID]*memory.ObjectSnapshot
	edges map[memory.ObjectID]*memory.ObjectSnapshot
}

// New builds a View over frame, partitioning its objects by structural
// kind. Unstructured objects are not part of the graph and are omitted.
func New(frame memory.Frame) *View {
	v := &View{
		nodes: make(map[memory.ObjectID]*memory.ObjectSnapshot),
		edges: make(map[memory.ObjectID]*memory.ObjectSnapshot),
	}
	for _, id := range frame.ObjectIDs() {
		s, ok := frame.Snapshot(id)
		if !ok {
			continue
		}
		switch s.Structure.Kind {
		case metamodel.Node:
			v.nodes[id] = s
		case metamodel.Edge:
			v.edges[id] = s
		}
	}
	return v
}

// Node returns the node snapshot for id, if any.
func (v *View) Node(id memory.ObjectID) (*memory.ObjectSnapshot, bool) {
	s, ok := v.nodes[id]
	return s, ok
}

// Edge returns the edge snapshot for id, if any.
func (v *View) Edge(id memory.ObjectID) (*memory.ObjectSnapshot, bool) {
	s, ok := v.edges[id]
	return s, ok
}

// ContainsNode reports whether id names a node in this view.
func (v *View) ContainsNode(id memory.ObjectID) bool { _, ok := v.nodes[id]; return ok }

// ContainsEdge reports whether id names an edge in this view.
func (v *View) ContainsEdge(id memory.ObjectID) bool { _, ok := v.edges[id]; return ok }

// Nodes returns every node in the view, ordered by ascending object ID.
func (v *View) Nodes() []*memory.ObjectSnapshot {
	return sortedSnapshots(v.nodes)
}

// Edges returns every edge in the view, ordered by ascending object ID.
func (v *View) Edges() []*memory.ObjectSnapshot {
	return sortedSnapshots(v.edges)
}

func sortedSnapshots(m map[memory.ObjectID]*memory.ObjectSnapshot) []*memory.ObjectSnapshot {
	ids := make([]memory.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*memory.ObjectSnapshot, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// Outgoing returns every edge whose origin is nodeID, ordered by
// ascending edge object ID.
func (v *View) Outgoing(nodeID memory.ObjectID) []*memory.ObjectSnapshot {
	var out []*memory.ObjectSnapshot
	for _, e := range v.Edges() {
		if e.Structure.Origin == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns every edge whose target is nodeID, ordered by
// ascending edge object ID.
func (v *View) Incoming(nodeID memory.ObjectID) []*memory.ObjectSnapshot {
	var out []*memory.ObjectSnapshot
	for _, e := range v.Edges() {
		if e.Structure.Target == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Neighbours returns the distinct set of nodes reachable from nodeID by
// exactly one outgoing edge, ordered by ascending node ID.
func (v *View) Neighbours(nodeID memory.ObjectID) []memory.ObjectID {
	seen := map[memory.ObjectID]struct{}{}
	var out []memory.ObjectID
	for _, e := range v.Outgoing(nodeID) {
		if _, dup := seen[e.Structure.Target]; dup {
			continue
		}
		seen[e.Structure.Target] = struct{}{}
		out = append(out, e.Structure.Target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Neighborhood is the nodes and edges a hood query selected around a
// center node (§4.E "neighborhoods").
type Neighborhood struct {
	Center memory.ObjectID
	Nodes  []memory.ObjectID
	Edges  []memory.ObjectID
}

// HoodDirection picks which of a node's incident edges a Hood query
// considers.
type HoodDirection int

const (
	Outgoing HoodDirection = iota
	Incoming
)

// HoodSelector is the filter a Hood query applies: which direction of
// edge to follow, and which of those edges to keep (§4.E "selector =
// { direction ∈ {incoming, outgoing}, predicate }").
type HoodSelector struct {
	Direction HoodDirection
	Predicate metamodel.Predicate
}

// Hood computes center's one-hop neighborhood per selector: every edge
// in the chosen direction that matches selector.Predicate, plus the
// nodes at those edges' opposite endpoints (§4.E "hood(node_id,
// selector)").
func (v *View) Hood(center memory.ObjectID, selector HoodSelector) (Neighborhood, error) {
	if !v.ContainsNode(center) {
		return Neighborhood{}, fmt.Errorf("graph: unknown node %d", center)
	}

	var incident []*memory.ObjectSnapshot
	switch selector.Direction {
	case Incoming:
		incident = v.Incoming(center)
	default:
		incident = v.Outgoing(center)
	}

	seenNodes := map[memory.ObjectID]struct{}{}
	var edgeIDs, nodeIDs []memory.ObjectID
	for _, e := range incident {
		if selector.Predicate.Select(singletonView{e}) == nil {
			continue
		}
		edgeIDs = append(edgeIDs, e.ObjectID)
		opposite := e.Structure.Target
		if selector.Direction == Incoming {
			opposite = e.Structure.Origin
		}
		if _, dup := seenNodes[opposite]; dup {
			continue
		}
		seenNodes[opposite] = struct{}{}
		nodeIDs = append(nodeIDs, opposite)
	}
	sort.Slice(edgeIDs, func(i, j int) bool { return edgeIDs[i] < edgeIDs[j] })
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	return Neighborhood{Center: center, Nodes: nodeIDs, Edges: edgeIDs}, nil
}

// SelectNodes returns every node the predicate matches, ordered by
// ascending node ID.
func (v *View) SelectNodes(p metamodel.Predicate) []*memory.ObjectSnapshot {
	var out []*memory.ObjectSnapshot
	for _, n := range v.Nodes() {
		if p.Select(singletonView{n}) != nil {
			out = append(out, n)
		}
	}
	return out
}

// SelectEdges returns every edge the predicate matches, ordered by
// ascending edge ID.
func (v *View) SelectEdges(p metamodel.Predicate) []*memory.ObjectSnapshot {
	var out []*memory.ObjectSnapshot
	for _, e := range v.Edges() {
		if p.Select(singletonView{e}) != nil {
			out = append(out, e)
		}
	}
	return out
}

type singletonView struct{ s *memory.ObjectSnapshot }

func (sv singletonView) Candidates() []metamodel.Candidate {
	return []metamodel.Candidate{sv.s.Candidate()}
}
