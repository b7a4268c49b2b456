package models

import (
	"testing"
	"time"
)

func TestPlanStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status PlanStatus
		want   bool
	}{
		{"created is valid", PlanStatusCreated, true},
		{"in_progress is valid", PlanStatusInProgress, true},
		{"completed is valid", PlanStatusCompleted, true},
		{"failed is valid", PlanStatusFailed, true},
		{"replanning is valid", PlanStatusReplanning, true},
		{"empty string is invalid", PlanStatus(""), false},
		{"task status is invalid", PlanStatus("pending"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("PlanStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func testPlan() Plan {
	return Plan{
		ID:           "plan-1",
		OriginalTask: "Write a market report",
		Status:       PlanStatusCreated,
		Strategy:     StrategySequential,
		CreatedAt:    time.Now(),
		Tasks: []PlanTask{
			{ID: "a", Description: "Research the market", Status: TaskStatusPending},
			{ID: "b", Description: "Analyze findings", Status: TaskStatusPending, Dependencies: []string{"a"}},
		},
	}
}

func TestPlan_Task(t *testing.T) {
	p := testPlan()

	task, ok := p.Task("b")
	if !ok {
		t.Fatal("Task(b) not found")
	}
	if task.Description != "Analyze findings" {
		t.Errorf("Task(b).Description = %q", task.Description)
	}

	if _, ok := p.Task("missing"); ok {
		t.Error("Task(missing) found, want not found")
	}
}

func TestPlan_WithTask_DoesNotMutateInput(t *testing.T) {
	p := testPlan()

	updated, _ := p.Task("a")
	updated.Status = TaskStatusCompleted
	updated.Result = "done"

	next := p.WithTask(updated)

	if got, _ := p.Task("a"); got.Status != TaskStatusPending {
		t.Errorf("original plan mutated: task a status = %q", got.Status)
	}
	if got, _ := next.Task("a"); got.Status != TaskStatusCompleted || got.Result != "done" {
		t.Errorf("new plan not updated: task a = %+v", got)
	}
	if got, _ := next.Task("b"); got.Status != TaskStatusPending {
		t.Errorf("unrelated task changed: %+v", got)
	}
}

func TestPlan_WithStatus(t *testing.T) {
	p := testPlan()
	next := p.WithStatus(PlanStatusInProgress)

	if p.Status != PlanStatusCreated {
		t.Errorf("original plan status mutated to %q", p.Status)
	}
	if next.Status != PlanStatusInProgress {
		t.Errorf("new plan status = %q, want in_progress", next.Status)
	}
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Plan)
		wantErr bool
	}{
		{"valid plan", func(p *Plan) {}, false},
		{"duplicate id", func(p *Plan) { p.Tasks[1].ID = "a" }, true},
		{"unknown dependency", func(p *Plan) { p.Tasks[1].Dependencies = []string{"zzz"} }, true},
		{"self dependency is in-plan", func(p *Plan) { p.Tasks[0].Dependencies = []string{"a"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPlan()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
