package models

import (
	"fmt"
	"time"
)

// PlanStatus represents the current state of a plan.
type PlanStatus string

const (
	// PlanStatusCreated indicates the plan exists but execution has not started.
	PlanStatusCreated PlanStatus = "created"
	// PlanStatusInProgress indicates the plan is being executed.
	PlanStatusInProgress PlanStatus = "in_progress"
	// PlanStatusCompleted indicates every task completed successfully.
	PlanStatusCompleted PlanStatus = "completed"
	// PlanStatusFailed indicates execution was aborted by a task failure.
	PlanStatusFailed PlanStatus = "failed"
	// PlanStatusReplanning indicates a replacement plan is being built.
	PlanStatusReplanning PlanStatus = "replanning"
)

// Valid returns true if the status is a known value.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusCreated, PlanStatusInProgress, PlanStatusCompleted,
		PlanStatusFailed, PlanStatusReplanning:
		return true
	default:
		return false
	}
}

// ExecutionStrategy names how a plan's tasks are ordered for execution.
type ExecutionStrategy string

const (
	// StrategySequential executes tasks in their creation order.
	StrategySequential ExecutionStrategy = "sequential"
	// StrategyParallel is declared but not implemented; it currently
	// falls back to topological ordering.
	StrategyParallel ExecutionStrategy = "parallel"
	// StrategyHierarchical is declared but not implemented.
	StrategyHierarchical ExecutionStrategy = "hierarchical"
	// StrategyAdaptive is declared but not implemented.
	StrategyAdaptive ExecutionStrategy = "adaptive"
)

// Plan is a decomposition of one objective into an ordered set of tasks.
type Plan struct {
	// ID is the unique identifier for this plan.
	ID string `json:"id"`
	// OriginalTask is the objective the plan was decomposed from.
	OriginalTask string `json:"original_task"`
	// Tasks is the ordered collection of plan tasks.
	Tasks []PlanTask `json:"tasks"`
	// Status is the current state of the plan.
	Status PlanStatus `json:"status"`
	// Strategy selects the execution ordering for this plan.
	Strategy ExecutionStrategy `json:"strategy"`
	// CreatedAt is when the plan was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the plan was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Task returns the task with the given id and true, or a zero task and false.
func (p Plan) Task(id string) (PlanTask, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return PlanTask{}, false
}

// Clone returns a deep copy of the plan. Updates always operate on
// clones so readers holding an older snapshot never observe a newer one.
func (p Plan) Clone() Plan {
	out := p
	out.Tasks = make([]PlanTask, len(p.Tasks))
	for i, t := range p.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// WithTask returns a copy of the plan with the task matching t.ID replaced.
// The input plan is never mutated. Unknown ids leave the copy unchanged.
func (p Plan) WithTask(t PlanTask) Plan {
	out := p.Clone()
	for i := range out.Tasks {
		if out.Tasks[i].ID == t.ID {
			out.Tasks[i] = t.Clone()
			break
		}
	}
	out.UpdatedAt = time.Now()
	return out
}

// WithStatus returns a copy of the plan with its status replaced.
func (p Plan) WithStatus(status PlanStatus) Plan {
	out := p.Clone()
	out.Status = status
	out.UpdatedAt = time.Now()
	return out
}

// Validate checks the plan's structural invariants: task ids are unique
// within the plan and every dependency references an in-plan id.
func (p Plan) Validate() error {
	ids := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if ids[t.ID] {
			return fmt.Errorf("duplicate task id %q in plan %s", t.ID, p.ID)
		}
		ids[t.ID] = true
	}
	for _, t := range p.Tasks {
		for _, dep := range t.Dependencies {
			if !ids[dep] {
				return fmt.Errorf("task %q depends on unknown task %q", t.ID, dep)
			}
		}
	}
	return nil
}
