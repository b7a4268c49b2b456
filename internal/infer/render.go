package infer

import (
	"fmt"
	"strings"

	"github.com/planwright/planwright/pkg/models"
)

// Render produces the diagnostic view of an inference result: every
// task in original order with its dependency descriptions indented
// beneath it, followed by the critical path as an ordered list of task
// descriptions.
func Render(tasks []models.PlanTask, result Result) string {
	byID := make(map[string]models.PlanTask, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var b strings.Builder
	b.WriteString("Task Dependencies:\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, task.Description)
		for _, dep := range task.Dependencies {
			if depTask, ok := byID[dep]; ok {
				fmt.Fprintf(&b, "    depends on: %s\n", depTask.Description)
			}
		}
	}

	b.WriteString("\nCritical Path:\n")
	for i, id := range result.CriticalPath {
		if task, ok := byID[id]; ok {
			fmt.Fprintf(&b, "%d. %s\n", i+1, task.Description)
		}
	}

	return b.String()
}
