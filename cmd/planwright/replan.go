package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/internal/executor"
	"github.com/planwright/planwright/pkg/models"
)

var replanExecute bool

var replanCmd = &cobra.Command{
	Use:   "replan [plan-id]",
	Short: "Build a recovery plan around a failed plan",
	Long: `Create a replacement plan for a failed plan.

The original task list, completed work, and failed tasks with their
errors are fed back to Claude, which proposes a fresh set of pending
tasks that avoids redoing what already succeeded. Without a plan id
the most recent plan is replanned.

With --execute the replacement plan runs immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: replanPlan,
}

func init() {
	replanCmd.Flags().BoolVar(&replanExecute, "execute", false, "Execute the replacement plan immediately")
}

func replanPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer store.Close()

	var plan models.Plan
	if len(args) == 1 {
		plan, err = store.GetPlan(args[0])
	} else {
		plan, err = store.LatestPlan()
	}
	if err != nil {
		return err
	}

	if !executor.ShouldReplan(plan) {
		return fmt.Errorf("plan %s has status %s; only failed plans can be replanned", plan.ID, plan.Status)
	}

	gen, err := createGenerator(cfg, false)
	if err != nil {
		return err
	}

	exec, emitter, signals := createExecutor(cfg)
	if signals != nil {
		defer signals.Close()
	}

	done := make(chan struct{})
	go streamEvents(emitter.Events(), done)

	next, err := exec.Replan(cmd.Context(), plan, gen)
	if err != nil {
		emitter.Close()
		<-done
		return fmt.Errorf("replan: %w", err)
	}

	if err := store.SavePlan(next); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: replacement plan not saved: %v\n", err)
	}

	if !replanExecute {
		emitter.Close()
		<-done
		fmt.Println()
		printPlan(next)
		fmt.Printf("\nRun 'planwright run --plan %s' to execute it.\n", next.ID)
		return nil
	}

	summary, finalPlan, execErr := exec.ExecutePlan(cmd.Context(), next, gen, nil)
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
	if errors.Is(execErr, executor.ErrStopped) {
		pendingColor.Println("\nExecution stopped by signal.")
		return nil
	}
	return execErr
}
