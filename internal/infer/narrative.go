package infer

import (
	"strings"

	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// NarrativePass extracts ordering constraints from the free-text
// narrative and from consumer/producer phrasing in task descriptions.
type NarrativePass struct {
	Vocab Vocabulary
}

// Name implements Pass.
func (p NarrativePass) Name() string { return "narrative" }

// Certainty implements Pass. Narrative phrasing is the strongest signal.
func (p NarrativePass) Certainty() float64 { return 0.9 }

// Infer implements Pass. Two mechanisms run over the inputs:
//
//  1. Each narrative sentence containing an ordering phrase is split at
//     the phrase; the task whose description overlaps the left clause
//     becomes dependent on the task overlapping the right clause.
//  2. Any task whose own text carries consumer phrasing is linked as
//     dependent on every task whose text carries producer phrasing.
func (p NarrativePass) Infer(tasks []models.PlanTask, ctx Context) []graph.Edge {
	var edges []graph.Edge

	for _, sentence := range splitSentences(ctx.Narrative) {
		lower := strings.ToLower(sentence)
		for _, phrase := range p.Vocab.OrderingPhrases {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				continue
			}
			before := lower[:idx]
			after := lower[idx+len(phrase):]

			dependent := p.bestOverlap(before, tasks, "")
			if dependent == "" {
				continue
			}
			dependency := p.bestOverlap(after, tasks, dependent)
			if dependency == "" {
				continue
			}
			edges = append(edges, graph.Edge{From: dependent, To: dependency})
		}
	}

	for _, task := range tasks {
		if !containsAny(task.Description, p.Vocab.ConsumerPhrases) {
			continue
		}
		for _, other := range tasks {
			if other.ID == task.ID {
				continue
			}
			if containsAny(other.Description, p.Vocab.ProducerWords) {
				edges = append(edges, graph.Edge{From: task.ID, To: other.ID})
			}
		}
	}

	return edges
}

// bestOverlap returns the id of the task whose description keywords
// overlap the clause the most, skipping the given id. Returns empty on
// no overlap. Earlier tasks win ties so resolution is deterministic.
func (p NarrativePass) bestOverlap(clause string, tasks []models.PlanTask, skip string) string {
	clauseKw := make(map[string]bool)
	for _, kw := range p.Vocab.Keywords(clause) {
		clauseKw[kw] = true
	}
	if len(clauseKw) == 0 {
		return ""
	}

	best := ""
	bestCount := 0
	for _, task := range tasks {
		if task.ID == skip {
			continue
		}
		count := 0
		for _, kw := range p.Vocab.Keywords(task.Description) {
			if clauseKw[kw] {
				count++
			}
		}
		if count > bestCount {
			best = task.ID
			bestCount = count
		}
	}
	return best
}

// splitSentences breaks text on sentence-ending punctuation and newlines.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';' || r == '\n'
	})
	var out []string
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
