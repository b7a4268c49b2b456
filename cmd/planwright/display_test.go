package main

import (
	"testing"

	"github.com/fatih/color"

	"github.com/planwright/planwright/pkg/models"
)

func init() {
	color.NoColor = true
}

func TestCriticalPath(t *testing.T) {
	plan := models.Plan{
		ID: "p",
		Tasks: []models.PlanTask{
			{ID: "a", Description: "gather requirements"},
			{ID: "b", Description: "design schema", Dependencies: []string{"a"}},
			{ID: "c", Description: "write docs", Dependencies: []string{"a"}},
			{ID: "d", Description: "implement schema", Dependencies: []string{"b"}},
		},
	}

	got := criticalPath(plan)
	want := []string{"a", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("criticalPath() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("criticalPath()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status models.TaskStatus
		want   string
	}{
		{models.TaskStatusCompleted, "✓"},
		{models.TaskStatusFailed, "✗"},
		{models.TaskStatusInProgress, "▸"},
		{models.TaskStatusPending, "·"},
	}
	for _, tt := range tests {
		if got := statusBadge(tt.status); got != tt.want {
			t.Errorf("statusBadge(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
