package infer

import (
	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// Config controls which passes run and how the resulting edge set is
// bounded.
type Config struct {
	// EnableContentSimilarity toggles the content-similarity pass.
	EnableContentSimilarity bool `mapstructure:"enable_content_similarity"`
	// EnableTypeHierarchy toggles the stage-hierarchy pass.
	EnableTypeHierarchy bool `mapstructure:"enable_type_hierarchy"`
	// EnableInformationFlow toggles the information-flow pass.
	EnableInformationFlow bool `mapstructure:"enable_information_flow"`
	// MinDependencyCertainty is the floor in [0,1] below which a
	// pass's edges are discarded. The default of 0 keeps every pass.
	MinDependencyCertainty float64 `mapstructure:"min_dependency_certainty"`
	// MaxDependenciesPerTask bounds each task's dependency count.
	// Zero or negative means unbounded.
	MaxDependenciesPerTask int `mapstructure:"max_dependencies_per_task"`
}

// DefaultConfig returns the standard inference configuration.
func DefaultConfig() Config {
	return Config{
		EnableContentSimilarity: true,
		EnableTypeHierarchy:     true,
		EnableInformationFlow:   true,
		MinDependencyCertainty:  0,
		MaxDependenciesPerTask:  5,
	}
}

// Result carries the derived graph artifacts alongside the annotated
// tasks. It is diagnostic output, never persisted.
type Result struct {
	// Edges is the final, acyclic, clipped edge set.
	Edges []graph.Edge
	// RemovedEdges are edges dropped while breaking cycles.
	RemovedEdges []graph.Edge
	// CriticalPath is the longest dependency chain, as task ids.
	CriticalPath []string
}

// Engine runs the ordered heuristic passes and enforces the graph
// invariants on their combined output.
type Engine struct {
	cfg      Config
	passes   []Pass
	debugLog func(format string, args ...interface{})
}

// NewEngine creates an engine with the default pass list in fixed
// order: narrative, stage-hierarchy, information-flow, content-similarity.
// The narrative pass has no toggle; it always runs.
func NewEngine(cfg Config, vocab Vocabulary) *Engine {
	passes := []Pass{NarrativePass{Vocab: vocab}}
	if cfg.EnableTypeHierarchy {
		passes = append(passes, StagePass{Vocab: vocab})
	}
	if cfg.EnableInformationFlow {
		passes = append(passes, InfoFlowPass{Vocab: vocab})
	}
	if cfg.EnableContentSimilarity {
		passes = append(passes, SimilarityPass{Vocab: vocab})
	}
	return &Engine{
		cfg:      cfg,
		passes:   passes,
		debugLog: func(format string, args ...interface{}) {},
	}
}

// NewEngineWithPasses creates an engine over an explicit pass list.
// Used by tests and by callers plugging in additional heuristics.
func NewEngineWithPasses(cfg Config, passes []Pass) *Engine {
	return &Engine{
		cfg:      cfg,
		passes:   passes,
		debugLog: func(format string, args ...interface{}) {},
	}
}

// SetDebugLog sets the debug logging function.
func (e *Engine) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		e.debugLog = fn
	}
}

// Infer annotates the tasks with dependency edges and returns them with
// the derived graph artifacts. Postconditions: the edge set is acyclic
// and every task has at most MaxDependenciesPerTask dependencies.
//
// Passes may rediscover an edge an earlier pass already added; edges
// are deduplicated by identity only, never by rationale, so the same
// logical constraint carried by two heuristics still counts once.
func (e *Engine) Infer(tasks []models.PlanTask, narrative string) ([]models.PlanTask, Result) {
	nodes := make([]string, len(tasks))
	for i, t := range tasks {
		nodes[i] = t.ID
	}

	ctx := Context{Narrative: narrative}
	seen := make(map[graph.Edge]bool)
	var candidates []graph.Edge

	for _, pass := range e.passes {
		if pass.Certainty() < e.cfg.MinDependencyCertainty {
			e.debugLog("[infer] skipping pass %s: certainty %.2f below floor %.2f",
				pass.Name(), pass.Certainty(), e.cfg.MinDependencyCertainty)
			continue
		}
		edges := pass.Infer(tasks, ctx)
		e.debugLog("[infer] pass %s produced %d candidate edges", pass.Name(), len(edges))
		for _, edge := range edges {
			if edge.From == edge.To || seen[edge] {
				continue
			}
			seen[edge] = true
			candidates = append(candidates, edge)
			ctx.Existing = append(ctx.Existing, edge)
		}
	}

	g := graph.Build(nodes, candidates)
	acyclic, removed := g.BreakCycles()
	if len(removed) > 0 {
		e.debugLog("[infer] removed %d edges to break cycles: %v", len(removed), removed)
	}

	clipped := e.clip(acyclic)

	annotated := make([]models.PlanTask, len(tasks))
	for i, t := range tasks {
		annotated[i] = t.Clone()
		annotated[i].Dependencies = clipped.Dependencies(t.ID)
	}

	return annotated, Result{
		Edges:        clipped.Edges(),
		RemovedEdges: removed,
		CriticalPath: clipped.CriticalPath(),
	}
}

// clip truncates each node's dependency list to the configured maximum,
// keeping the first N in discovery order. Truncation is unranked: passes
// run strongest-signal first, so discovery order is the only ordering
// applied.
func (e *Engine) clip(g graph.Graph) graph.Graph {
	max := e.cfg.MaxDependenciesPerTask
	if max <= 0 {
		return g
	}

	var kept []graph.Edge
	for _, node := range g.Nodes() {
		deps := g.Dependencies(node)
		if len(deps) > max {
			e.debugLog("[infer] clipping %s from %d to %d dependencies", node, len(deps), max)
			deps = deps[:max]
		}
		for _, dep := range deps {
			kept = append(kept, graph.Edge{From: node, To: dep})
		}
	}
	return graph.Build(g.Nodes(), kept)
}
