// Package executor drives a plan through its lifecycle: decomposition,
// dependency-ordered execution, summarization, and replanning.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planwright/planwright/internal/infer"
	"github.com/planwright/planwright/internal/llm"
	"github.com/planwright/planwright/pkg/models"
)

// ErrStopped indicates execution halted on an operator stop signal.
var ErrStopped = errors.New("execution stopped by signal")

// unsatisfiedDeps is the error recorded on a task attempted before its
// dependencies completed.
const unsatisfiedDeps = "Dependencies not satisfied"

// Executor runs plans one task at a time. Plan values are immutable
// snapshots: every state change goes through UpdateTaskStatus or a
// WithStatus copy, so a caller holding an earlier snapshot never sees a
// later one.
type Executor struct {
	scheduler Scheduler
	emitter   *EventEmitter
	signals   *SignalWatcher
	debugLog  func(format string, args ...interface{})
}

// Option configures an Executor.
type Option func(*Executor)

// WithScheduler overrides the default sequential scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Executor) { e.scheduler = s }
}

// WithEmitter attaches a progress event emitter.
func WithEmitter(em *EventEmitter) Option {
	return func(e *Executor) { e.emitter = em }
}

// WithSignals attaches a stop-signal watcher checked between tasks.
func WithSignals(sw *SignalWatcher) Option {
	return func(e *Executor) { e.signals = sw }
}

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(e *Executor) {
		if fn != nil {
			e.debugLog = fn
		}
	}
}

// New creates an Executor. The default scheduler attempts tasks in
// creation order.
func New(opts ...Option) *Executor {
	e := &Executor{
		scheduler: SequentialScheduler{},
		debugLog:  func(format string, args ...interface{}) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

// PlanOption configures plan creation.
type PlanOption func(*planOptions)

type planOptions struct {
	engine    *infer.Engine
	narrative string
	strategy  models.ExecutionStrategy
}

// WithInference runs the dependency inference engine over the
// decomposed tasks instead of assigning the default sequential chain.
// The narrative, when non-empty, feeds the narrative pass.
func WithInference(engine *infer.Engine, narrative string) PlanOption {
	return func(o *planOptions) {
		o.engine = engine
		o.narrative = narrative
	}
}

// WithStrategy records the execution strategy on the created plan.
func WithStrategy(strategy models.ExecutionStrategy) PlanOption {
	return func(o *planOptions) { o.strategy = strategy }
}

// CreatePlan decomposes an objective into a plan of pending tasks.
// Without inference, each task depends on its immediate predecessor.
func (e *Executor) CreatePlan(ctx context.Context, objective string, gen llm.Generator, opts ...PlanOption) (models.Plan, error) {
	options := planOptions{strategy: models.StrategySequential}
	for _, opt := range opts {
		opt(&options)
	}

	e.emit(Event{Type: EventPlanning, Message: "planning"})

	resp, err := gen.Generate(ctx, fmt.Sprintf(decompositionPrompt, objective))
	if err != nil {
		return models.Plan{}, fmt.Errorf("decompose objective: %w", err)
	}

	descriptions := ParseTaskList(resp.Text)
	if len(descriptions) == 0 {
		return models.Plan{}, fmt.Errorf("decomposition produced no tasks")
	}

	now := time.Now()
	tasks := make([]models.PlanTask, len(descriptions))
	for i, desc := range descriptions {
		tasks[i] = models.PlanTask{
			ID:          uuid.New().String(),
			Description: desc,
			Status:      models.TaskStatusPending,
			CreatedAt:   now,
		}
	}

	if options.engine != nil {
		tasks, _ = options.engine.Infer(tasks, options.narrative)
	} else {
		for i := 1; i < len(tasks); i++ {
			tasks[i].Dependencies = []string{tasks[i-1].ID}
		}
	}

	plan := models.Plan{
		ID:           uuid.New().String(),
		OriginalTask: objective,
		Tasks:        tasks,
		Status:       models.PlanStatusCreated,
		Strategy:     options.strategy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := plan.Validate(); err != nil {
		return models.Plan{}, fmt.Errorf("invalid plan: %w", err)
	}

	e.emit(Event{Type: EventPlanCreated, PlanID: plan.ID,
		Message: fmt.Sprintf("plan created with %d tasks", len(tasks))})
	e.debugLog("[executor] created plan %s with %d tasks", plan.ID, len(tasks))

	return plan, nil
}

// ExecutePlan runs the plan's tasks in scheduler order and returns a
// synthesized summary plus the final plan snapshot.
//
// A task whose dependencies are not all completed is marked failed and
// execution continues. A generation error marks the task failed, marks
// the whole plan failed, and abandons remaining tasks. Only a true
// execution error is fatal to the plan.
//
// The summary call is always attempted, even after failure, on a
// best-effort basis.
func (e *Executor) ExecutePlan(ctx context.Context, plan models.Plan, gen llm.Generator, tools llm.ToolRunner) (string, models.Plan, error) {
	plan = plan.WithStatus(models.PlanStatusInProgress)
	stopped := false

	for _, idx := range e.scheduler.Order(plan) {
		if e.signals.ShouldStop() {
			e.debugLog("[executor] stop signal received, halting plan %s", plan.ID)
			stopped = true
			break
		}

		task := plan.Tasks[idx]

		if !e.dependenciesSatisfied(plan, task) {
			plan = UpdateTaskStatus(plan, task.ID, models.TaskStatusFailed, "", unsatisfiedDeps)
			e.emit(Event{Type: EventTaskFailed, PlanID: plan.ID, TaskID: task.ID, Message: unsatisfiedDeps})
			continue
		}

		plan = UpdateTaskStatus(plan, task.ID, models.TaskStatusInProgress, "", "")
		e.emit(Event{Type: EventTaskStarted, PlanID: plan.ID, TaskID: task.ID,
			Message: "executing subtask: " + task.Description})

		result, err := e.runTask(ctx, plan.OriginalTask, task, gen, tools)
		if err != nil {
			plan = UpdateTaskStatus(plan, task.ID, models.TaskStatusFailed, "", err.Error())
			plan = plan.WithStatus(models.PlanStatusFailed)
			e.emit(Event{Type: EventTaskFailed, PlanID: plan.ID, TaskID: task.ID, Message: err.Error()})
			e.emit(Event{Type: EventPlanFailed, PlanID: plan.ID, Message: "task failed: " + task.Description})
			break
		}

		plan = UpdateTaskStatus(plan, task.ID, models.TaskStatusCompleted, result, "")
		e.emit(Event{Type: EventTaskCompleted, PlanID: plan.ID, TaskID: task.ID})
	}

	if plan.Status != models.PlanStatusFailed && !stopped && allCompleted(plan) {
		plan = plan.WithStatus(models.PlanStatusCompleted)
		e.emit(Event{Type: EventPlanCompleted, PlanID: plan.ID})
	}

	summary := e.summarize(ctx, plan, gen)

	if stopped {
		return summary, plan, ErrStopped
	}
	return summary, plan, nil
}

// runTask invokes the generation capability for one task. Tool calls
// requested by the model run through the tool capability when one is
// provided; a tool error fails the task like a generation error.
func (e *Executor) runTask(ctx context.Context, objective string, task models.PlanTask, gen llm.Generator, tools llm.ToolRunner) (string, error) {
	resp, err := gen.Generate(ctx, fmt.Sprintf(taskPrompt, objective, task.Description))
	if err != nil {
		return "", err
	}

	result := resp.Text
	if tools != nil {
		for _, call := range resp.ToolCalls {
			out, err := tools.Execute(ctx, call.Name, call.Input)
			if err != nil {
				return "", fmt.Errorf("tool %s: %w", call.Name, err)
			}
			result += "\n" + out
		}
	}
	return result, nil
}

// dependenciesSatisfied reports whether every declared dependency of the
// task is completed in the current plan snapshot.
func (e *Executor) dependenciesSatisfied(plan models.Plan, task models.PlanTask) bool {
	for _, dep := range task.Dependencies {
		depTask, ok := plan.Task(dep)
		if !ok || depTask.Status != models.TaskStatusCompleted {
			return false
		}
	}
	return true
}

func allCompleted(plan models.Plan) bool {
	for _, t := range plan.Tasks {
		if t.Status != models.TaskStatusCompleted {
			return false
		}
	}
	return true
}

// summarize asks the generation capability for one aggregated summary
// over the full transcript. A failed call degrades to a plain status
// line rather than an error.
func (e *Executor) summarize(ctx context.Context, plan models.Plan, gen llm.Generator) string {
	resp, err := gen.Generate(ctx, fmt.Sprintf(summaryPrompt, plan.OriginalTask, Transcript(plan)))
	if err != nil {
		e.debugLog("[executor] summary call failed: %v", err)
		return fmt.Sprintf("Plan %s finished with status %s.", plan.ID, plan.Status)
	}
	e.emit(Event{Type: EventSummary, PlanID: plan.ID})
	return resp.Text
}

// Transcript renders every task's description, status, result, and
// error as input for summarization and replanning.
func Transcript(plan models.Plan) string {
	var b strings.Builder
	for i, t := range plan.Tasks {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, t.Status, t.Description)
		if t.Result != "" {
			fmt.Fprintf(&b, "   result: %s\n", t.Result)
		}
		if t.Error != "" {
			fmt.Fprintf(&b, "   error: %s\n", t.Error)
		}
	}
	return b.String()
}

// UpdateTaskStatus returns a new plan with exactly one task's status,
// result, and error replaced. The input plan is never mutated.
func UpdateTaskStatus(plan models.Plan, taskID string, status models.TaskStatus, result, errMsg string) models.Plan {
	task, ok := plan.Task(taskID)
	if !ok {
		return plan.Clone()
	}
	task.Status = status
	task.Result = result
	task.Error = errMsg
	return plan.WithTask(task)
}

// ShouldReplan reports whether the plan warrants a replacement plan.
func ShouldReplan(plan models.Plan) bool {
	return plan.Status == models.PlanStatusFailed
}

// Replan builds a brand-new plan for the original objective, informed
// by which tasks completed and which failed. Completed work is not
// carried forward; the caller decides whether and how to resume.
func (e *Executor) Replan(ctx context.Context, plan models.Plan, gen llm.Generator) (models.Plan, error) {
	e.emit(Event{Type: EventReplanning, PlanID: plan.ID})

	var original, completed, failed []string
	for _, t := range plan.Tasks {
		original = append(original, "- "+t.Description)
		switch t.Status {
		case models.TaskStatusCompleted:
			completed = append(completed, "- "+t.Description)
		case models.TaskStatusFailed:
			failed = append(failed, fmt.Sprintf("- %s (%s)", t.Description, t.Error))
		}
	}

	prompt := fmt.Sprintf(replanPrompt,
		plan.OriginalTask,
		strings.Join(original, "\n"),
		orNone(completed),
		orNone(failed))

	resp, err := gen.Generate(ctx, prompt)
	if err != nil {
		return models.Plan{}, fmt.Errorf("replan: %w", err)
	}

	descriptions := ParseTaskList(resp.Text)
	if len(descriptions) == 0 {
		return models.Plan{}, fmt.Errorf("replanning produced no tasks")
	}

	now := time.Now()
	tasks := make([]models.PlanTask, len(descriptions))
	for i, desc := range descriptions {
		tasks[i] = models.PlanTask{
			ID:          uuid.New().String(),
			Description: desc,
			Status:      models.TaskStatusPending,
			CreatedAt:   now,
		}
		if i > 0 {
			tasks[i].Dependencies = []string{tasks[i-1].ID}
		}
	}

	next := models.Plan{
		ID:           uuid.New().String(),
		OriginalTask: plan.OriginalTask,
		Tasks:        tasks,
		Status:       models.PlanStatusCreated,
		Strategy:     plan.Strategy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	e.emit(Event{Type: EventPlanCreated, PlanID: next.ID,
		Message: fmt.Sprintf("replacement plan with %d tasks", len(tasks))})
	return next, nil
}

func orNone(lines []string) string {
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}
