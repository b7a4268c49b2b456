package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/internal/executor"
	"github.com/planwright/planwright/internal/llm"
	"github.com/planwright/planwright/pkg/models"
)

var (
	runPlanID    string
	runNarrative string
	runNoInfer   bool
	runNoTools   bool
)

var runCmd = &cobra.Command{
	Use:   "run [objective]",
	Short: "Plan and execute an objective",
	Long: `Plan an objective and execute the resulting tasks one at a time.

Each task is sent to Claude with the objective, the subtask description,
and the results of the tasks it depends on. A task whose dependencies
did not complete is marked failed and execution moves on; a task whose
generation fails aborts the whole plan. A summary of the run is printed
at the end either way.

With --plan, a previously stored plan is executed instead of creating a
new one. Unless --no-tools is set, Claude may read and write files and
run commands in the current directory while executing tasks.

Interrupting with Ctrl-C cancels the in-flight request and marks the
plan failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	runCmd.Flags().StringVar(&runPlanID, "plan", "", "Execute a stored plan by id instead of planning")
	runCmd.Flags().StringVar(&runNarrative, "narrative", "", "Additional prose describing the work, used for inference")
	runCmd.Flags().BoolVar(&runNoInfer, "no-infer", false, "Skip dependency inference; chain tasks sequentially")
	runCmd.Flags().BoolVar(&runNoTools, "no-tools", false, "Disable file and command tools during execution")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if runPlanID == "" && len(args) == 0 {
		return fmt.Errorf("provide an objective or --plan <id>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, err := createGenerator(cfg, !runNoTools)
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var plan models.Plan
	if runPlanID != "" {
		plan, err = store.GetPlan(runPlanID)
		if err != nil {
			emitter.Close()
			<-done
			return err
		}
	} else {
		opts := []executor.PlanOption{executor.WithStrategy(cfg.Executor.StrategyValue())}
		if !runNoInfer {
			narrative := runNarrative
			if narrative == "" {
				narrative = args[0]
			}
			opts = append(opts, executor.WithInference(createEngine(cfg), narrative))
		}
		plan, err = exec.CreatePlan(ctx, args[0], gen, opts...)
		if err != nil {
			emitter.Close()
			<-done
			return fmt.Errorf("create plan: %w", err)
		}
		if err := store.SavePlan(plan); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: plan not saved: %v\n", err)
		}
	}

	var tools llm.ToolRunner
	if !runNoTools {
		cwd, err := os.Getwd()
		if err != nil {
			emitter.Close()
			<-done
			return fmt.Errorf("get working directory: %w", err)
		}
		tools = llm.NewLocalToolRunner(cwd)
	}

	summary, finalPlan, execErr := exec.ExecutePlan(ctx, plan, gen, tools)
	emitter.Close()
	<-done

	if err := store.SavePlan(finalPlan); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: final plan not saved: %v\n", err)
	}

	fmt.Println()
	printPlan(finalPlan)
	if summary != "" {
		fmt.Println()
		headerColor.Println("Summary:")
		fmt.Println(summary)
	}

	if execErr != nil {
		if errors.Is(execErr, executor.ErrStopped) {
			pendingColor.Println("\nExecution stopped by signal.")
			return nil
		}
		return execErr
	}
	if executor.ShouldReplan(finalPlan) {
		fmt.Printf("\nRun 'planwright replan %s' to replan around the failed tasks.\n", finalPlan.ID)
	}
	return nil
}
