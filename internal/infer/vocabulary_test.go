package infer

import (
	"reflect"
	"testing"
)

func TestVocabulary_Keywords(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"short words dropped",
			"Write a plan for the team",
			[]string{"write"},
		},
		{
			"all short words yields nil",
			"do the work now",
			nil,
		},
		{
			"stop words dropped",
			"Analyze trends based on research",
			[]string{"analyze", "trends", "research"},
		},
		{
			"duplicates collapse keeping first position",
			"Research market research reports",
			[]string{"research", "market", "reports"},
		},
		{
			"punctuation and case normalized",
			"Gather DATA; gather FINDINGS!",
			[]string{"gather", "findings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vocab.Keywords(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVocabulary_SharesKeyword(t *testing.T) {
	vocab := DefaultVocabulary()

	if !vocab.sharesKeyword("Research market trends", "Analyze market movement") {
		t.Error("sharesKeyword = false for texts sharing 'market'")
	}
	if vocab.sharesKeyword("Research alpha trends", "Write gamma notes") {
		t.Error("sharesKeyword = true for unrelated texts")
	}
}

func TestVocabulary_InjectableTables(t *testing.T) {
	// A substituted vocabulary changes classification without touching
	// any package state.
	custom := DefaultVocabulary()
	custom.StopWords = map[string]bool{"widget": true}

	got := custom.Keywords("Assemble the widget frame")
	want := []string{"assemble", "frame"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords with custom stop words = %v, want %v", got, want)
	}

	// The default tables are unaffected.
	def := DefaultVocabulary()
	if def.StopWords["widget"] {
		t.Error("default vocabulary shares state with modified copy")
	}
}
