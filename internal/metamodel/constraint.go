package metamodel

// Requirement checks a set of already-selected candidates and returns the
// subset that violates it (§4.B). Like Predicate, it is a closed sum type
// of built-in variants rather than a user-implementable interface, so
// Check is a total recursive function (§9 "Predicate algebra").
type Requirement struct {
	kind          requirementKind
	attributeName string
	edgePredicate Predicate
}

type requirementKind int

const (
	reqRejectAll requirementKind = iota
	reqAcceptAll
	reqUniqueAttribute
	reqUnidirectionalEdge
	reqAcyclicGraph
)

// RejectAll treats every candidate as a violator — useful as a trap
// constraint (no object of the matched predicate may ever exist).
func RejectAll() Requirement { return Requirement{kind: reqRejectAll} }

// AcceptAll treats no candidate as a violator.
func AcceptAll() Requirement { return Requirement{kind: reqAcceptAll} }

// UniqueAttribute fails on duplicate values of the named attribute within
// the candidate set. Every candidate sharing a duplicated value is a
// violator (not just the second-and-later occurrences), so a caller sees
// the full set of objects that must be reconciled.
func UniqueAttribute(attributeName string) Requirement {
	return Requirement{kind: reqUniqueAttribute, attributeName: attributeName}
}

// UnidirectionalEdge fails on any candidate edge whose origin equals its
// target (a self-loop) — the minimal "no edge may point back at its own
// origin" domain-neutral check named in §4.B.
func UnidirectionalEdge() Requirement { return Requirement{kind: reqUnidirectionalEdge} }

// AcyclicGraph fails when the edges among the candidate set — as
// identified by edgePredicate — form a cycle over their origin/target
// endpoints. Violators are the back-edges that close each cycle found.
func AcyclicGraph(edgePredicate Predicate) Requirement {
	return Requirement{kind: reqAcyclicGraph, edgePredicate: edgePredicate}
}

// Check returns the subset of candidates that violates the requirement.
func (r Requirement) Check(candidates []Candidate) []Candidate {
	switch r.kind {
	case reqRejectAll:
		return append([]Candidate(nil), candidates...)
	case reqAcceptAll:
		return nil
	case reqUniqueAttribute:
		return r.checkUniqueAttribute(candidates)
	case reqUnidirectionalEdge:
		return r.checkUnidirectionalEdge(candidates)
	case reqAcyclicGraph:
		return r.checkAcyclicGraph(candidates)
	default:
		panic("metamodel: unknown requirement kind")
	}
}

func (r Requirement) checkUniqueAttribute(candidates []Candidate) []Candidate {
	seen := map[string][]Candidate{}
	for _, c := range candidates {
		v, ok := c.Attributes[r.attributeName]
		if !ok {
			continue
		}
		s, err := v.ToString()
		if err != nil {
			s = v.Kind().String()
		}
		k := v.Kind().String() + ":" + s
		seen[k] = append(seen[k], c)
	}
	var violators []Candidate
	for _, group := range seen {
		if len(group) > 1 {
			violators = append(violators, group...)
		}
	}
	return violators
}

func (r Requirement) checkUnidirectionalEdge(candidates []Candidate) []Candidate {
	var violators []Candidate
	for _, c := range candidates {
		if c.Kind != Edge || c.Origin == nil || c.Target == nil {
			continue
		}
		if *c.Origin == *c.Target {
			violators = append(violators, c)
		}
	}
	return violators
}

func (r Requirement) checkAcyclicGraph(candidates []Candidate) []Candidate {
	var edges []Candidate
	for _, c := range candidates {
		if c.Kind == Edge && c.Origin != nil && c.Target != nil && r.edgePredicate.matches(c) {
			edges = append(edges, c)
		}
	}
	adj := map[int64][]Candidate{}
	for _, e := range edges {
		adj[*e.Origin] = append(adj[*e.Origin], e)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[int64]int{}
	var violators []Candidate

	var visit func(node int64)
	visit = func(node int64) {
		color[node] = gray
		for _, e := range adj[node] {
			switch color[*e.Target] {
			case white:
				visit(*e.Target)
			case gray:
				violators = append(violators, e)
			}
		}
		color[node] = black
	}

	for _, e := range edges {
		if color[*e.Origin] == white {
			visit(*e.Origin)
		}
	}
	return violators
}

// Constraint pairs a predicate selecting candidate objects with a
// requirement that checks them, per §4.B.
type Constraint struct {
	Name        string
	Predicate   Predicate
	Requirement Requirement
}

// Violators evaluates c against frame: select candidates, then check them.
func (c Constraint) Violators(frame FrameView) []Candidate {
	return c.Requirement.Check(c.Predicate.Select(frame))
}
