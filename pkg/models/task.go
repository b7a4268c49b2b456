// Package models defines the plan and task entities shared across planwright.
package models

import "time"

// TaskStatus represents the current state of a plan task.
type TaskStatus string

const (
	// TaskStatusPending indicates the task has not started.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusInProgress indicates the task is being worked on.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task failed.
	TaskStatusFailed TaskStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status is a final state.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// PlanTask represents one unit of work inside a plan.
type PlanTask struct {
	// ID is the unique identifier for this task within its plan.
	ID string `json:"id"`
	// Description is the natural-language statement of the work.
	Description string `json:"description"`
	// Dependencies lists IDs of tasks in the same plan that must
	// complete before this task may start.
	Dependencies []string `json:"dependencies,omitempty"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// Result holds the generated output when the task completes.
	Result string `json:"result,omitempty"`
	// Error contains the failure message if the task failed.
	Error string `json:"error,omitempty"`
	// Subtasks holds an optional hierarchical decomposition.
	Subtasks []PlanTask `json:"subtasks,omitempty"`
	// Priority is an optional caller-assigned priority tag. The
	// engine carries it but does not interpret it.
	Priority int `json:"priority,omitempty"`
	// Resources are optional resource tags, carried uninterpreted.
	Resources []string `json:"resources,omitempty"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
}

// DependsOn returns true if the task declares a dependency on the given id.
func (t PlanTask) DependsOn(id string) bool {
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task so snapshots never share slices.
func (t PlanTask) Clone() PlanTask {
	out := t
	if t.Dependencies != nil {
		out.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.Resources != nil {
		out.Resources = append([]string(nil), t.Resources...)
	}
	if t.Subtasks != nil {
		out.Subtasks = make([]PlanTask, len(t.Subtasks))
		for i, sub := range t.Subtasks {
			out.Subtasks[i] = sub.Clone()
		}
	}
	return out
}
