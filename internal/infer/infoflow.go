package infer

import (
	"strings"

	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

// InfoFlow is the per-task tagging of information types produced and
// consumed, derived from verb patterns in the description.
type InfoFlow struct {
	Produces map[string]bool
	Consumes map[string]bool
}

// InfoFlowPass links tasks that consume an information type to tasks
// that produce the same type.
type InfoFlowPass struct {
	Vocab Vocabulary
}

// Name implements Pass.
func (p InfoFlowPass) Name() string { return "information-flow" }

// Certainty implements Pass.
func (p InfoFlowPass) Certainty() float64 { return 0.7 }

// Infer implements Pass. A type is produced when a produce verb appears
// before its mention ("generate a report"), consumed when a consume
// marker appears before it ("based on the analysis"). An edge
// consumer->producer is added wherever the tag sets intersect.
func (p InfoFlowPass) Infer(tasks []models.PlanTask, _ Context) []graph.Edge {
	flows := make([]InfoFlow, len(tasks))
	for i, task := range tasks {
		flows[i] = p.Flow(task.Description)
	}

	var edges []graph.Edge
	for i, consumer := range tasks {
		for j, producer := range tasks {
			if i == j {
				continue
			}
			if intersects(flows[i].Consumes, flows[j].Produces) {
				edges = append(edges, graph.Edge{From: consumer.ID, To: producer.ID})
			}
		}
	}
	return edges
}

// Flow tags the information types the description produces and consumes.
func (p InfoFlowPass) Flow(description string) InfoFlow {
	lower := strings.ToLower(description)
	flow := InfoFlow{
		Produces: make(map[string]bool),
		Consumes: make(map[string]bool),
	}

	verbs := make(map[string]bool, len(p.Vocab.ProduceVerbs))
	for _, v := range p.Vocab.ProduceVerbs {
		verbs[v] = true
	}

	for _, infoType := range p.Vocab.InfoTypes {
		// Types that double as verbs ("research the market") count as
		// produced wherever the word appears at all.
		if verbs[infoType] && strings.Contains(lower, infoType) {
			flow.Produces[infoType] = true
		}
		for _, pos := range allIndexes(lower, infoType) {
			if precededBy(lower, pos, p.Vocab.ProduceVerbs) {
				flow.Produces[infoType] = true
			}
			if precededBy(lower, pos, p.Vocab.ConsumeMarkers) {
				flow.Consumes[infoType] = true
			}
		}
	}
	return flow
}

// precededBy reports whether any marker occurs in the window just before
// the mention at pos. The window covers a marker plus a couple of filler
// words ("based on the latest data").
func precededBy(text string, pos int, markers []string) bool {
	start := pos - 30
	if start < 0 {
		start = 0
	}
	window := text[start:pos]
	for _, m := range markers {
		if strings.Contains(window, m) {
			return true
		}
	}
	return false
}

// allIndexes returns the index of every occurrence of sub in text.
func allIndexes(text, sub string) []int {
	var out []int
	offset := 0
	for {
		i := strings.Index(text[offset:], sub)
		if i < 0 {
			return out
		}
		out = append(out, offset+i)
		offset += i + len(sub)
	}
}

// intersects reports whether the two sets share a member.
func intersects(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}
