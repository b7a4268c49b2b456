package infer

import (
	"strings"

	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// StagePass classifies tasks into ordered workflow stages and links
// later-stage tasks to earlier-stage tasks that share subject matter.
type StagePass struct {
	Vocab Vocabulary
}

// Name implements Pass.
func (p StagePass) Name() string { return "stage-hierarchy" }

// Certainty implements Pass.
func (p StagePass) Certainty() float64 { return 0.5 }

// Infer implements Pass. Each task gets the stage of its first matching
// keyword, or the default middle stage when nothing matches. For every
// pair where A's stage is strictly later than B's, an edge A->B is added
// only if the two descriptions share at least one keyword, so unrelated
// pipeline steps are not chained together.
func (p StagePass) Infer(tasks []models.PlanTask, _ Context) []graph.Edge {
	stages := make([]int, len(tasks))
	for i, task := range tasks {
		stages[i] = p.classify(task.Description)
	}

	var edges []graph.Edge
	for i, a := range tasks {
		for j, b := range tasks {
			if i == j || stages[i] <= stages[j] {
				continue
			}
			if p.Vocab.sharesKeyword(a.Description, b.Description) {
				edges = append(edges, graph.Edge{From: a.ID, To: b.ID})
			}
		}
	}
	return edges
}

// classify returns the index of the first stage with a keyword present
// in the description, or the default stage.
func (p StagePass) classify(description string) int {
	lower := strings.ToLower(description)
	for i, stage := range p.Vocab.Stages {
		for _, kw := range stage.Keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return p.Vocab.DefaultStage
}
