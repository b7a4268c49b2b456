package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/pkg/models"
)

var (
	showList    bool
	showResults bool
)

var showCmd = &cobra.Command{
	Use:   "show [plan-id]",
	Short: "Show a stored plan",
	Long: `Display a stored plan with its tasks, dependencies, and critical path.

Without a plan id the most recent plan is shown. Use --list to list all
stored plans instead, and --results to include each task's result text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showPlan,
}

func init() {
	showCmd.Flags().BoolVar(&showList, "list", false, "List all stored plans")
	showCmd.Flags().BoolVar(&showResults, "results", false, "Include task results")
}

func showPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer store.Close()

	if showList {
		plans, err := store.ListPlans()
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No plans stored.")
			return nil
		}
		for _, plan := range plans {
			fmt.Printf("%s  %s  %s\n", plan.ID, planStatusText(plan.Status), plan.OriginalTask)
			dimColor.Printf("    updated %s\n", plan.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	var plan models.Plan
	if len(args) == 1 {
		plan, err = store.GetPlan(args[0])
	} else {
		plan, err = store.LatestPlan()
	}
	if err != nil {
		return err
	}

	printPlan(plan)

	if showResults {
		for i, task := range plan.Tasks {
			if task.Result == "" {
				continue
			}
			fmt.Println()
			headerColor.Printf("Task %d result:\n", i+1)
			fmt.Println(task.Result)
		}
	}
	return nil
}
