package executor

import (
	"reflect"
	"testing"

	"github.com/planwright/planwright/pkg/models"
)

func dependencyLastPlan() models.Plan {
	// Task "a" depends on "b", which comes later in creation order.
	return models.Plan{
		ID: "p1",
		Tasks: []models.PlanTask{
			{ID: "a", Description: "Write the summary", Dependencies: []string{"b"}},
			{ID: "b", Description: "Collect the notes"},
		},
	}
}

func TestSequentialScheduler_CreationOrder(t *testing.T) {
	order := SequentialScheduler{}.Order(dependencyLastPlan())
	if want := []int{0, 1}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestTopologicalScheduler_DependenciesFirst(t *testing.T) {
	order := TopologicalScheduler{}.Order(dependencyLastPlan())
	if want := []int{1, 0}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestTopologicalScheduler_CycleFallsBackToCreationOrder(t *testing.T) {
	plan := models.Plan{
		Tasks: []models.PlanTask{
			{ID: "a", Dependencies: []string{"b"}},
			{ID: "b", Dependencies: []string{"a"}},
		},
	}
	order := TopologicalScheduler{}.Order(plan)
	if want := []int{0, 1}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestForStrategy(t *testing.T) {
	tests := []struct {
		strategy models.ExecutionStrategy
		want     Scheduler
	}{
		{models.StrategySequential, SequentialScheduler{}},
		{models.StrategyParallel, TopologicalScheduler{}},
		{models.StrategyHierarchical, TopologicalScheduler{}},
		{models.StrategyAdaptive, TopologicalScheduler{}},
		{models.ExecutionStrategy(""), SequentialScheduler{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			if got := ForStrategy(tt.strategy); got != tt.want {
				t.Errorf("ForStrategy(%q) = %T, want %T", tt.strategy, got, tt.want)
			}
		})
	}
}
