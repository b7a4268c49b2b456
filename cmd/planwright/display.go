package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/planwright/planwright/internal/executor"
	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	pendingColor = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

func statusBadge(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusCompleted:
		return successColor.Sprint("✓")
	case models.TaskStatusFailed:
		return failureColor.Sprint("✗")
	case models.TaskStatusInProgress:
		return pendingColor.Sprint("▸")
	default:
		return dimColor.Sprint("·")
	}
}

// printPlan writes a plan overview: header, numbered tasks with their
// dependencies, and the critical path when the graph has one.
func printPlan(plan models.Plan) {
	headerColor.Printf("Plan %s\n", plan.ID)
	fmt.Printf("  Objective: %s\n", plan.OriginalTask)
	fmt.Printf("  Status: %s  Strategy: %s  Tasks: %d\n\n",
		planStatusText(plan.Status), plan.Strategy, len(plan.Tasks))

	byID := make(map[string]int, len(plan.Tasks))
	for i, task := range plan.Tasks {
		byID[task.ID] = i
	}

	for i, task := range plan.Tasks {
		fmt.Printf("  %s %d. %s\n", statusBadge(task.Status), i+1, task.Description)
		if len(task.Dependencies) > 0 {
			refs := make([]string, 0, len(task.Dependencies))
			for _, dep := range task.Dependencies {
				if j, ok := byID[dep]; ok {
					refs = append(refs, fmt.Sprintf("%d", j+1))
				}
			}
			dimColor.Printf("       depends on: %s\n", strings.Join(refs, ", "))
		}
		if task.Error != "" {
			failureColor.Printf("       error: %s\n", task.Error)
		}
	}

	if path := criticalPath(plan); len(path) > 1 {
		fmt.Println()
		headerColor.Println("  Critical path:")
		for _, id := range path {
			if j, ok := byID[id]; ok {
				fmt.Printf("    %d. %s\n", j+1, plan.Tasks[j].Description)
			}
		}
	}
}

func planStatusText(status models.PlanStatus) string {
	switch status {
	case models.PlanStatusCompleted:
		return successColor.Sprint(string(status))
	case models.PlanStatusFailed:
		return failureColor.Sprint(string(status))
	default:
		return pendingColor.Sprint(string(status))
	}
}

// criticalPath rebuilds the plan's dependency graph and returns the
// longest root-to-sink chain, execution order first.
func criticalPath(plan models.Plan) []string {
	ids := make([]string, len(plan.Tasks))
	var edges []graph.Edge
	for i, task := range plan.Tasks {
		ids[i] = task.ID
		for _, dep := range task.Dependencies {
			edges = append(edges, graph.Edge{From: task.ID, To: dep})
		}
	}
	return graph.Build(ids, edges).CriticalPath()
}

// streamEvents prints progress events until the channel closes.
func streamEvents(events <-chan executor.Event, done chan<- struct{}) {
	for event := range events {
		switch event.Type {
		case executor.EventPlanning:
			dimColor.Println("planning...")
		case executor.EventPlanCreated:
			fmt.Printf("%s %s\n", successColor.Sprint("plan created:"), event.Message)
		case executor.EventTaskStarted:
			fmt.Printf("%s %s\n", pendingColor.Sprint("task started:"), event.Message)
		case executor.EventTaskCompleted:
			fmt.Printf("%s %s\n", successColor.Sprint("task done:"), event.Message)
		case executor.EventTaskFailed:
			fmt.Printf("%s %s\n", failureColor.Sprint("task failed:"), event.Message)
		case executor.EventPlanCompleted:
			successColor.Println("plan completed")
		case executor.EventPlanFailed:
			failureColor.Printf("plan failed: %s\n", event.Message)
		case executor.EventReplanning:
			pendingColor.Println("replanning...")
		}
	}
	close(done)
}
