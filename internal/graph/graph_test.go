package graph

import (
	"reflect"
	"testing"
)

func TestBuild_DropsBadEdges(t *testing.T) {
	g := Build([]string{"a", "b"}, []Edge{
		{From: "b", To: "a"},
		{From: "b", To: "a"}, // duplicate
		{From: "b", To: "b"}, // self edge
		{From: "b", To: "z"}, // unknown node
	})

	edges := g.Edges()
	if len(edges) != 1 || edges[0] != (Edge{From: "b", To: "a"}) {
		t.Errorf("Edges() = %v, want single b->a", edges)
	}
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges []Edge
		want  bool
	}{
		{"empty graph", nil, nil, false},
		{"chain", []string{"a", "b", "c"}, []Edge{{From: "b", To: "a"}, {From: "c", To: "b"}}, false},
		{"two-node cycle", []string{"a", "b"}, []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}}, true},
		{"three-node cycle", []string{"a", "b", "c"}, []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"}}, true},
		{"diamond is acyclic", []string{"a", "b", "c", "d"}, []Edge{
			{From: "b", To: "a"}, {From: "c", To: "a"}, {From: "d", To: "b"}, {From: "d", To: "c"},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.nodes, tt.edges)
			if got := g.HasCycle(); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBreakCycles_RemovesExactlyOneEdgeFromSimpleCycle(t *testing.T) {
	g := Build([]string{"a", "b", "c"}, []Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	})

	acyclic, removed := g.BreakCycles()

	if acyclic.HasCycle() {
		t.Error("graph still cyclic after BreakCycles")
	}
	if len(removed) != 1 {
		t.Errorf("removed %d edges, want 1: %v", len(removed), removed)
	}
	if len(acyclic.Edges()) != 2 {
		t.Errorf("kept %d edges, want 2", len(acyclic.Edges()))
	}
	// Original graph is untouched.
	if len(g.Edges()) != 3 {
		t.Errorf("original graph mutated: %v", g.Edges())
	}
}

func TestBreakCycles_AcyclicGraphUnchanged(t *testing.T) {
	g := Build([]string{"a", "b", "c"}, []Edge{
		{From: "b", To: "a"},
		{From: "c", To: "b"},
	})

	acyclic, removed := g.BreakCycles()
	if len(removed) != 0 {
		t.Errorf("removed edges from acyclic graph: %v", removed)
	}
	if !reflect.DeepEqual(acyclic.Edges(), g.Edges()) {
		t.Errorf("edges changed: %v vs %v", acyclic.Edges(), g.Edges())
	}
}

func TestBreakCycles_Deterministic(t *testing.T) {
	nodes := []string{"a", "b", "c", "d"}
	edges := []Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
		{From: "d", To: "a"},
		{From: "b", To: "d"},
	}

	_, first := Build(nodes, edges).BreakCycles()
	for i := 0; i < 20; i++ {
		_, again := Build(nodes, edges).BreakCycles()
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d removed different edges: %v vs %v", i, again, first)
		}
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := Build([]string{"c", "b", "a"}, []Edge{
		{From: "b", To: "a"},
		{From: "c", To: "b"},
	})

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["c"] {
		t.Errorf("order %v violates dependencies", order)
	}
}

func TestTopologicalOrder_CycleError(t *testing.T) {
	g := Build([]string{"a", "b"}, []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}})
	if _, err := g.TopologicalOrder(); err != ErrCycleDetected {
		t.Errorf("TopologicalOrder() error = %v, want ErrCycleDetected", err)
	}
}

func TestCriticalPath(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges []Edge
		want  []string
	}{
		{
			"simple chain",
			[]string{"a", "b", "c"},
			[]Edge{{From: "b", To: "a"}, {From: "c", To: "b"}},
			[]string{"a", "b", "c"},
		},
		{
			"longest branch wins",
			[]string{"a", "b", "c", "d"},
			[]Edge{{From: "b", To: "a"}, {From: "c", To: "b"}, {From: "d", To: "a"}},
			[]string{"a", "b", "c"},
		},
		{
			"no edges yields single node",
			[]string{"a", "b"},
			nil,
			[]string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.nodes, tt.edges)
			if got := g.CriticalPath(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CriticalPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateNodes(t *testing.T) {
	nodes := []string{"a", "b"}

	if err := ValidateNodes(nodes, []Edge{{From: "b", To: "a"}}); err != nil {
		t.Errorf("ValidateNodes() error = %v, want nil", err)
	}
	if err := ValidateNodes(nodes, []Edge{{From: "b", To: "x"}}); err == nil {
		t.Error("ValidateNodes() = nil, want error for unknown node")
	}
}
