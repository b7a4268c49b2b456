package infer

import (
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/planwright/planwright/internal/graph"
	"github.com/planwright/planwright/pkg/models"
)

func researchAnalyzeWrite() []models.PlanTask {
	return []models.PlanTask{
		{ID: "a", Description: "Research current market trends", Status: models.TaskStatusPending},
		{ID: "b", Description: "Analyze the market trends using the research", Status: models.TaskStatusPending},
		{ID: "c", Description: "Write a report based on the analysis", Status: models.TaskStatusPending},
	}
}

func TestEngine_ResearchAnalyzeWriteChain(t *testing.T) {
	engine := NewEngine(DefaultConfig(), DefaultVocabulary())
	narrative := "First research the market trends. Then analyze the trends using the research. Finally write the report based on the analysis."

	annotated, result := engine.Infer(researchAnalyzeWrite(), narrative)

	if !hasEdge(result.Edges, "b", "a") {
		t.Errorf("expected edge b->a, got %v", result.Edges)
	}
	if !hasEdge(result.Edges, "c", "b") {
		t.Errorf("expected edge c->b, got %v", result.Edges)
	}
	if graph.Build([]string{"a", "b", "c"}, result.Edges).HasCycle() {
		t.Error("inferred graph is cyclic")
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(result.CriticalPath, want) {
		t.Errorf("CriticalPath = %v, want %v", result.CriticalPath, want)
	}

	// Annotated tasks mirror the edge set.
	for _, task := range annotated {
		for _, dep := range task.Dependencies {
			if !hasEdge(result.Edges, task.ID, dep) {
				t.Errorf("task %s dependency %s missing from edge set", task.ID, dep)
			}
		}
	}
}

func TestEngine_CyclicNarrativeResolved(t *testing.T) {
	engine := NewEngine(DefaultConfig(), DefaultVocabulary())
	tasks := []models.PlanTask{
		{ID: "a", Description: "Build the alpha component"},
		{ID: "b", Description: "Build the bravo component"},
		{ID: "c", Description: "Build the gamma component"},
	}
	narrative := "The alpha component depends on the bravo component. " +
		"The bravo component depends on the gamma component. " +
		"The gamma component depends on the alpha component."

	_, result := engine.Infer(tasks, narrative)

	if len(result.RemovedEdges) != 1 {
		t.Errorf("removed %d edges, want exactly 1: %v", len(result.RemovedEdges), result.RemovedEdges)
	}
	if graph.Build([]string{"a", "b", "c"}, result.Edges).HasCycle() {
		t.Error("graph still cyclic after inference")
	}
	if len(result.Edges) != 2 {
		t.Errorf("kept %d edges, want 2: %v", len(result.Edges), result.Edges)
	}
}

func TestEngine_ClipsDependencyCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDependenciesPerTask = 3
	engine := NewEngine(cfg, DefaultVocabulary())

	tasks := []models.PlanTask{
		{ID: "p1", Description: "Research the aardvark habitat"},
		{ID: "p2", Description: "Research the beaver habitat"},
		{ID: "p3", Description: "Research the cheetah habitat"},
		{ID: "p4", Description: "Research the dolphin habitat"},
		{ID: "p5", Description: "Research the echidna habitat"},
		{ID: "z", Description: "Compile a summary using the results"},
	}

	annotated, result := engine.Infer(tasks, "")

	var z models.PlanTask
	for _, task := range annotated {
		if task.ID == "z" {
			z = task
		}
	}
	if len(z.Dependencies) != 3 {
		t.Fatalf("task z has %d dependencies, want clipped to 3: %v", len(z.Dependencies), z.Dependencies)
	}
	// First-N truncation keeps discovery order.
	if want := []string{"p1", "p2", "p3"}; !reflect.DeepEqual(z.Dependencies, want) {
		t.Errorf("clipped dependencies = %v, want %v", z.Dependencies, want)
	}
	for _, e := range result.Edges {
		if e.From == "z" && (e.To == "p4" || e.To == "p5") {
			t.Errorf("clipped edge survived in edge set: %v", e)
		}
	}
}

func TestEngine_CertaintyFloorSkipsWeakPasses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDependencyCertainty = 0.6
	engine := NewEngine(cfg, DefaultVocabulary())

	// Only similarity (0.4) and stage (0.5) would link these; both sit
	// below the floor, so no edges survive.
	tasks := []models.PlanTask{
		{ID: "a", Description: "Initial survey of glacier measurements"},
		{ID: "b", Description: "Final review of glacier measurements"},
	}

	_, result := engine.Infer(tasks, "")
	if len(result.Edges) != 0 {
		t.Errorf("edges below certainty floor survived: %v", result.Edges)
	}
}

func TestEngine_DisabledPassesProduceNothing(t *testing.T) {
	cfg := Config{MaxDependenciesPerTask: 5}
	engine := NewEngine(cfg, DefaultVocabulary())

	tasks := []models.PlanTask{
		{ID: "a", Description: "Gather customer churn numbers"},
		{ID: "b", Description: "Review customer churn conclusions"},
	}

	_, result := engine.Infer(tasks, "")
	if len(result.Edges) != 0 {
		t.Errorf("disabled passes produced edges: %v", result.Edges)
	}
}

// stubPass lets tests drive the engine with fixed edges.
type stubPass struct {
	name      string
	certainty float64
	edges     []graph.Edge
}

func (p stubPass) Name() string       { return p.name }
func (p stubPass) Certainty() float64 { return p.certainty }
func (p stubPass) Infer([]models.PlanTask, Context) []graph.Edge {
	return p.edges
}

func TestEngine_DeduplicatesByEdgeIdentity(t *testing.T) {
	tasks := []models.PlanTask{{ID: "a"}, {ID: "b"}}
	engine := NewEngineWithPasses(DefaultConfig(), []Pass{
		stubPass{name: "one", certainty: 0.9, edges: []graph.Edge{{From: "b", To: "a"}}},
		stubPass{name: "two", certainty: 0.8, edges: []graph.Edge{{From: "b", To: "a"}}},
	})

	_, result := engine.Infer(tasks, "")
	if len(result.Edges) != 1 {
		t.Errorf("duplicate edge kept: %v", result.Edges)
	}
}

var taskWordPool = []string{
	"research", "analyze", "write", "review", "finalize", "gather",
	"market", "report", "summary", "findings", "data", "plan",
	"customer", "survey", "budget", "using", "based", "initial",
}

func randomTasks(rng *rand.Rand) []models.PlanTask {
	n := 2 + rng.Intn(6)
	tasks := make([]models.PlanTask, n)
	for i := range tasks {
		words := make([]string, 3+rng.Intn(5))
		for j := range words {
			words[j] = taskWordPool[rng.Intn(len(taskWordPool))]
		}
		tasks[i] = models.PlanTask{
			ID:          fmt.Sprintf("t%d", i),
			Description: strings.Join(words, " "),
		}
	}
	return tasks
}

func randomNarrative(rng *rand.Rand) string {
	if rng.Intn(3) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 1+rng.Intn(4); i++ {
		b.WriteString(taskWordPool[rng.Intn(len(taskWordPool))])
		b.WriteString(" depends on ")
		b.WriteString(taskWordPool[rng.Intn(len(taskWordPool))])
		b.WriteString(". ")
	}
	return b.String()
}

func TestEngine_PropertyAcyclicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := DefaultConfig()
	cfg.MaxDependenciesPerTask = 3

	for i := 0; i < 200; i++ {
		tasks := randomTasks(rng)
		narrative := randomNarrative(rng)
		engine := NewEngine(cfg, DefaultVocabulary())

		annotated, result := engine.Infer(tasks, narrative)

		ids := make([]string, len(tasks))
		for j, task := range tasks {
			ids[j] = task.ID
		}
		if graph.Build(ids, result.Edges).HasCycle() {
			t.Fatalf("iteration %d: cyclic graph for tasks %v narrative %q", i, tasks, narrative)
		}
		for _, task := range annotated {
			if len(task.Dependencies) > cfg.MaxDependenciesPerTask {
				t.Fatalf("iteration %d: task %s has %d dependencies, max %d",
					i, task.ID, len(task.Dependencies), cfg.MaxDependenciesPerTask)
			}
		}
	}
}

func TestEngine_PropertyDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		tasks := randomTasks(rng)
		narrative := randomNarrative(rng)

		_, first := NewEngine(DefaultConfig(), DefaultVocabulary()).Infer(tasks, narrative)
		for run := 0; run < 5; run++ {
			_, again := NewEngine(DefaultConfig(), DefaultVocabulary()).Infer(tasks, narrative)
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("iteration %d run %d: results differ\nfirst: %+v\nagain: %+v", i, run, first, again)
			}
		}
	}
}

func TestRender(t *testing.T) {
	engine := NewEngine(DefaultConfig(), DefaultVocabulary())
	narrative := "First research the market trends. Then analyze the trends using the research. Finally write the report based on the analysis."
	annotated, result := engine.Infer(researchAnalyzeWrite(), narrative)

	out := Render(annotated, result)

	wantLines := []string{
		"1. Research current market trends",
		"2. Analyze the market trends using the research",
		"    depends on: Research current market trends",
		"3. Write a report based on the analysis",
		"Critical Path:",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("rendered output missing %q:\n%s", line, out)
		}
	}

	// Critical path section lists descriptions in dependency order.
	idx := strings.Index(out, "Critical Path:")
	pathSection := out[idx:]
	posA := strings.Index(pathSection, "Research current market trends")
	posB := strings.Index(pathSection, "Analyze the market trends")
	posC := strings.Index(pathSection, "Write a report")
	if !(posA >= 0 && posB > posA && posC > posB) {
		t.Errorf("critical path out of order:\n%s", pathSection)
	}
}
