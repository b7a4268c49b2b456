// Package infer derives ordering constraints between plan tasks from
// their descriptions and an optional narrative context.
package infer

import "strings"

// Stage is one step of the generic workflow pipeline used by the
// stage-hierarchy pass. Stages are ordered: a task classified into a
// later stage is a candidate dependent of tasks in earlier stages.
type Stage struct {
	Name     string
	Keywords []string
}

// Vocabulary holds the lookup tables the heuristic passes match
// against. Tables are injected rather than package globals so tests can
// substitute alternate vocabularies.
type Vocabulary struct {
	// Stages is the ordered workflow pipeline.
	Stages []Stage
	// DefaultStage is the index assigned when no stage keyword matches.
	DefaultStage int
	// StopWords are excluded from keyword extraction.
	StopWords map[string]bool
	// OrderingPhrases signal an ordering constraint in narrative text.
	OrderingPhrases []string
	// ConsumerPhrases mark a task as consuming another task's output.
	ConsumerPhrases []string
	// ProducerWords mark a task as producing output for others.
	ProducerWords []string
	// InfoTypes is the fixed vocabulary of information types tracked
	// by the information-flow pass.
	InfoTypes []string
	// ProduceVerbs precede an info type the task produces.
	ProduceVerbs []string
	// ConsumeMarkers precede an info type the task consumes.
	ConsumeMarkers []string
	// EarlyWords bias a task toward the start of a generic workflow.
	EarlyWords []string
	// LateWords bias a task toward the end of a generic workflow.
	LateWords []string
}

// DefaultVocabulary returns the built-in lookup tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Stages: []Stage{
			{Name: "research", Keywords: []string{"research", "gather", "collect", "find", "search", "identify", "discover", "explore"}},
			{Name: "analysis", Keywords: []string{"analyze", "analyse", "analysis", "evaluate", "assess", "examine", "compare", "measure"}},
			{Name: "planning", Keywords: []string{"plan", "design", "outline", "structure", "organize", "architect"}},
			{Name: "writing", Keywords: []string{"write", "implement", "create", "build", "develop", "draft", "compose", "generate"}},
			{Name: "review", Keywords: []string{"review", "test", "verify", "validate", "check", "proofread"}},
			{Name: "refinement", Keywords: []string{"refine", "revise", "improve", "polish", "edit", "update"}},
			{Name: "finalization", Keywords: []string{"finalize", "publish", "deliver", "deploy", "release", "submit"}},
		},
		DefaultStage: 3,
		StopWords: map[string]bool{
			"about": true, "after": true, "based": true, "before": true,
			"being": true, "between": true, "could": true, "every": true,
			"first": true, "other": true, "should": true, "their": true,
			"there": true, "these": true, "thing": true, "those": true,
			"through": true, "under": true, "using": true, "where": true,
			"which": true, "while": true, "would": true,
		},
		OrderingPhrases: []string{
			"depends on", "after", "based on", "using", "once",
			"following", "requires", "needs",
		},
		ConsumerPhrases: []string{
			"using the", "based on", "with the results", "analyze the",
			"from the", "with the findings",
		},
		ProducerWords: []string{
			"research", "collect", "gather", "find", "identify", "search",
		},
		InfoTypes: []string{
			"data", "research", "analysis", "results", "findings",
			"report", "content", "information", "summary", "plan",
		},
		ProduceVerbs: []string{
			"generate", "create", "produce", "write", "compile",
			"prepare", "research", "collect", "gather", "conduct",
		},
		ConsumeMarkers: []string{
			"using", "based on", "from", "with the", "analyze", "review",
		},
		EarlyWords: []string{
			"initial", "first", "research", "gather", "collect", "start", "begin",
		},
		LateWords: []string{
			"review", "finalize", "test", "final", "polish", "deliver", "publish",
		},
	}
}

// Keywords extracts the deduplicated keywords of the text: words longer
// than four characters that are not stop words, lowercased, in order of
// first appearance.
func (v Vocabulary) Keywords(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, word := range splitWords(text) {
		if len(word) <= 4 || v.StopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}

// splitWords lowercases the text and splits it into alphanumeric runs.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// sharesKeyword returns true if the two texts share at least one keyword.
func (v Vocabulary) sharesKeyword(a, b string) bool {
	kws := make(map[string]bool)
	for _, kw := range v.Keywords(a) {
		kws[kw] = true
	}
	for _, kw := range v.Keywords(b) {
		if kws[kw] {
			return true
		}
	}
	return false
}

// containsAny reports whether the lowercased text contains any of the
// given phrases.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
