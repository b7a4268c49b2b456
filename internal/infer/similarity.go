package infer

import (
	"strings"

	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// similarityThreshold is the minimum keyword-set Jaccard similarity
// before two tasks are considered related enough to order.
const similarityThreshold = 0.3

// SimilarityPass links task pairs whose keyword sets overlap strongly,
// directed from the task estimated to occur later in a generic workflow
// to the earlier one.
type SimilarityPass struct {
	Vocab Vocabulary
}

// Name implements Pass.
func (p SimilarityPass) Name() string { return "content-similarity" }

// Certainty implements Pass. Similarity alone is the weakest signal.
func (p SimilarityPass) Certainty() float64 { return 0.4 }

// Infer implements Pass. For every pair above the similarity threshold
// with no accumulated edge in either direction, the pass scores each
// task's position in a generic workflow (1-10) and points the later
// task at the earlier one. Equal scores produce no edge: similarity
// gives no direction of its own.
func (p SimilarityPass) Infer(tasks []models.PlanTask, ctx Context) []graph.Edge {
	var edges []graph.Edge
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			a, b := tasks[i], tasks[j]
			if ctx.HasEdge(a.ID, b.ID) {
				continue
			}
			if p.similarity(a.Description, b.Description) < similarityThreshold {
				continue
			}

			scoreA := p.workflowPosition(a.Description)
			scoreB := p.workflowPosition(b.Description)
			switch {
			case scoreA > scoreB:
				edges = append(edges, graph.Edge{From: a.ID, To: b.ID})
			case scoreB > scoreA:
				edges = append(edges, graph.Edge{From: b.ID, To: a.ID})
			}
		}
	}
	return edges
}

// similarity is intersection-over-union of the two keyword sets.
func (p SimilarityPass) similarity(a, b string) float64 {
	setA := make(map[string]bool)
	for _, kw := range p.Vocab.Keywords(a) {
		setA[kw] = true
	}
	setB := make(map[string]bool)
	for _, kw := range p.Vocab.Keywords(b) {
		setB[kw] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for kw := range setA {
		if setB[kw] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// workflowPosition estimates where in a generic workflow the task sits,
// from 1 (kickoff) to 10 (wrap-up). The estimate starts at the middle
// and is pushed down by early markers and up by late markers.
func (p SimilarityPass) workflowPosition(description string) int {
	lower := strings.ToLower(description)
	score := 5
	for _, w := range p.Vocab.EarlyWords {
		if strings.Contains(lower, w) {
			score -= 2
		}
	}
	for _, w := range p.Vocab.LateWords {
		if strings.Contains(lower, w) {
			score += 2
		}
	}
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}
