package executor

import (
	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// Scheduler decides the order in which a plan's tasks are attempted.
// Execution itself is always one task at a time; a scheduler only
// permutes the attempt order.
type Scheduler interface {
	// Order returns indices into plan.Tasks in attempt order.
	Order(plan models.Plan) []int
}

// SequentialScheduler attempts tasks in their creation order. This is
// the default and is not a topological sort: a task whose dependency
// appears later in the array will be attempted first and fail its
// dependency check.
type SequentialScheduler struct{}

// Order implements Scheduler.
func (SequentialScheduler) Order(plan models.Plan) []int {
	order := make([]int, len(plan.Tasks))
	for i := range order {
		order[i] = i
	}
	return order
}

// TopologicalScheduler attempts tasks in an order consistent with every
// dependency edge, so a task is never attempted before its dependencies.
type TopologicalScheduler struct{}

// Order implements Scheduler. A cyclic dependency set falls back to
// creation order; inference guarantees acyclicity, so the fallback only
// matters for hand-built plans.
func (TopologicalScheduler) Order(plan models.Plan) []int {
	nodes := make([]string, len(plan.Tasks))
	index := make(map[string]int, len(plan.Tasks))
	var edges []graph.Edge
	for i, t := range plan.Tasks {
		nodes[i] = t.ID
		index[t.ID] = i
		for _, dep := range t.Dependencies {
			edges = append(edges, graph.Edge{From: t.ID, To: dep})
		}
	}

	sorted, err := graph.Build(nodes, edges).TopologicalOrder()
	if err != nil {
		return SequentialScheduler{}.Order(plan)
	}

	order := make([]int, 0, len(sorted))
	for _, id := range sorted {
		order = append(order, index[id])
	}
	return order
}

// ForStrategy maps an execution strategy to a scheduler. Sequential is
// the default. Parallel, hierarchical, and adaptive are declared in the
// type system but unimplemented; they fall back to topological ordering
// rather than concurrent execution, which keeps their dependency
// guarantees without adding concurrency the contract does not promise.
func ForStrategy(strategy models.ExecutionStrategy) Scheduler {
	switch strategy {
	case models.StrategyParallel, models.StrategyHierarchical, models.StrategyAdaptive:
		return TopologicalScheduler{}
	default:
		return SequentialScheduler{}
	}
}
