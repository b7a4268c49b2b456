// Package graph provides a dependency graph over plan tasks.
//
// A graph value is immutable once built: cycle breaking and other
// transforms return a new Graph rather than mutating the receiver, so
// callers holding an older value never observe later changes.
package graph

import (
	"errors"
	"fmt"
)

// ErrCycleDetected indicates a circular dependency was found in the graph.
var ErrCycleDetected = errors.New("circular dependency detected")

// Edge is a directed dependency constraint: From depends on To, meaning
// To must complete before From may start.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph of task dependencies. Node and edge order
// follow insertion order so every traversal is deterministic.
type Graph struct {
	nodes []string
	// deps maps a node to the nodes it depends on, in insertion order.
	deps map[string][]string
}

// Build constructs a graph from the given nodes and edges.
// Duplicate edges and edges referencing unknown nodes are dropped.
func Build(nodes []string, edges []Edge) Graph {
	g := Graph{
		nodes: append([]string(nil), nodes...),
		deps:  make(map[string][]string, len(nodes)),
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
		g.deps[n] = nil
	}

	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if !known[e.From] || !known[e.To] || e.From == e.To || seen[e] {
			continue
		}
		seen[e] = true
		g.deps[e.From] = append(g.deps[e.From], e.To)
	}

	return g
}

// Nodes returns the node ids in insertion order.
func (g Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Dependencies returns the ids the given node depends on, in insertion order.
func (g Graph) Dependencies(id string) []string {
	return append([]string(nil), g.deps[id]...)
}

// Edges returns all edges in deterministic order.
func (g Graph) Edges() []Edge {
	var out []Edge
	for _, n := range g.nodes {
		for _, dep := range g.deps[n] {
			out = append(out, Edge{From: n, To: dep})
		}
	}
	return out
}

// HasCycle returns true if the graph contains a circular dependency.
// Uses depth-first search with coloring to detect back edges.
func (g Graph) HasCycle() bool {
	// Color states: 0 = white (unvisited), 1 = gray (on stack), 2 = black (done).
	colors := make(map[string]int, len(g.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = 1
		for _, dep := range g.deps[id] {
			switch colors[dep] {
			case 1:
				return true
			case 0:
				if visit(dep) {
					return true
				}
			}
		}
		colors[id] = 2
		return false
	}

	for _, id := range g.nodes {
		if colors[id] == 0 {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

// BreakCycles returns an acyclic copy of the graph plus the removed edges.
// Depth-first search with an explicit recursion stack removes each edge
// found closing a cycle at detection time. This is first-found removal,
// not a minimum feedback arc set: the guarantee is acyclicity, not
// minimal edge loss.
func (g Graph) BreakCycles() (Graph, []Edge) {
	deps := make(map[string][]string, len(g.nodes))
	for _, n := range g.nodes {
		deps[n] = append([]string(nil), g.deps[n]...)
	}

	var removed []Edge
	colors := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		colors[id] = 1
		onStack[id] = true

		kept := deps[id][:0]
		for _, dep := range deps[id] {
			if onStack[dep] {
				// Back edge closing a cycle: drop it.
				removed = append(removed, Edge{From: id, To: dep})
				continue
			}
			if colors[dep] == 0 {
				visit(dep)
			}
			kept = append(kept, dep)
		}
		deps[id] = kept

		onStack[id] = false
		colors[id] = 2
	}

	for _, id := range g.nodes {
		if colors[id] == 0 {
			visit(id)
		}
	}

	return Graph{nodes: append([]string(nil), g.nodes...), deps: deps}, removed
}

// TopologicalOrder returns node ids ordered so every dependency comes
// before the nodes that depend on it. Returns ErrCycleDetected if the
// graph is cyclic.
func (g Graph) TopologicalOrder() ([]string, error) {
	if g.HasCycle() {
		return nil, ErrCycleDetected
	}

	visited := make(map[string]bool, len(g.nodes))
	var order []string

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.deps[id] {
			visit(dep)
		}
		order = append(order, id)
	}

	for _, id := range g.nodes {
		visit(id)
	}
	return order, nil
}

// dependents returns the reverse adjacency: for each node, the nodes
// that depend on it, in deterministic order.
func (g Graph) dependents() map[string][]string {
	out := make(map[string][]string, len(g.nodes))
	for _, n := range g.nodes {
		for _, dep := range g.deps[n] {
			out[dep] = append(out[dep], n)
		}
	}
	return out
}

// CriticalPath returns the longest chain of dependency edges from a
// root (a node with no dependencies) to a sink (a node nothing depends
// on), measured by edge count. All root-to-sink paths are enumerated
// via breadth-first traversal; durations are not modeled. Ties keep the
// first path discovered. The graph must be acyclic; a cyclic graph
// returns nil.
func (g Graph) CriticalPath() []string {
	if g.HasCycle() {
		return nil
	}

	down := g.dependents()

	var roots []string
	for _, n := range g.nodes {
		if len(g.deps[n]) == 0 {
			roots = append(roots, n)
		}
	}

	var longest []string
	queue := make([][]string, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, []string{r})
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		last := path[len(path)-1]
		next := down[last]
		if len(next) == 0 {
			if len(path) > len(longest) {
				longest = path
			}
			continue
		}
		for _, n := range next {
			extended := make([]string, len(path)+1)
			copy(extended, path)
			extended[len(path)] = n
			queue = append(queue, extended)
		}
	}

	return longest
}

// ValidateNodes checks that every edge endpoint is a known node. Build
// drops such edges silently; this is the strict variant for callers that
// want the error.
func ValidateNodes(nodes []string, edges []Edge) error {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}
	for _, e := range edges {
		if !known[e.From] {
			return fmt.Errorf("edge references unknown node %q", e.From)
		}
		if !known[e.To] {
			return fmt.Errorf("edge references unknown node %q", e.To)
		}
	}
	return nil
}
