package infer

import (
	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// Context carries the shared inputs a pass may consult: the narrative
// describing intended flow and the edges accumulated by earlier passes.
// Passes only add candidate edges; none removes edges another pass added.
type Context struct {
	Narrative string
	Existing  []graph.Edge
}

// HasEdge reports whether an edge between the two ids exists in either
// direction among the accumulated edges.
func (c Context) HasEdge(a, b string) bool {
	for _, e := range c.Existing {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return true
		}
	}
	return false
}

// Pass is one rule-based dependency classifier. Passes run in a fixed
// order and are independent: each sees only the task list and Context.
type Pass interface {
	// Name identifies the pass in diagnostics.
	Name() string
	// Certainty is the fixed confidence score attached to every edge
	// this pass emits, in [0,1].
	Certainty() float64
	// Infer returns candidate dependency edges for the given tasks.
	Infer(tasks []models.PlanTask, ctx Context) []graph.Edge
}
