package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/internal/executor"
)

var (
	planNarrative string
	planNoInfer   bool
)

var planCmd = &cobra.Command{
	Use:   "plan <objective>",
	Short: "Create a plan without executing it",
	Long: `Decompose an objective into a plan of subtasks.

The objective is sent to Claude for decomposition, dependencies between
the resulting tasks are inferred from their text, and the plan is stored
for later execution with 'planwright run --plan <id>'.

Use --narrative to supply extra prose describing the work; ordering
phrases in it ("after", "once", "then") guide dependency inference.
Use --no-infer to skip inference and chain tasks in creation order.`,
	Args: cobra.ExactArgs(1),
	RunE: createPlan,
}

func init() {
	planCmd.Flags().StringVar(&planNarrative, "narrative", "", "Additional prose describing the work, used for inference")
	planCmd.Flags().BoolVar(&planNoInfer, "no-infer", false, "Skip dependency inference; chain tasks sequentially")
}

func createPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, err := createGenerator(cfg, false)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer store.Close()

	exec, emitter, signals := createExecutor(cfg)
	if signals != nil {
		defer signals.Close()
	}

	done := make(chan struct{})
	go streamEvents(emitter.Events(), done)

	opts := []executor.PlanOption{executor.WithStrategy(cfg.Executor.StrategyValue())}
	if !planNoInfer {
		narrative := planNarrative
		if narrative == "" {
			narrative = args[0]
		}
		opts = append(opts, executor.WithInference(createEngine(cfg), narrative))
	}

	plan, err := exec.CreatePlan(cmd.Context(), args[0], gen, opts...)
	emitter.Close()
	<-done
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}

	if err := store.SavePlan(plan); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: plan not saved: %v\n", err)
	}

	fmt.Println()
	printPlan(plan)
	return nil
}
