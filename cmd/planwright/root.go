package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planwright",
	Short: "Task planning and execution engine",
	Long: `Planwright turns a natural-language objective into an executable plan.

It decomposes the objective into subtasks with Claude, infers dependencies
between them from the task text, orders them into a dependency graph, and
executes them one at a time, carrying each result forward.

Core capabilities:
- Decomposes objectives into concrete subtasks
- Infers task dependencies from narrative order, information flow,
  workflow stages, and content similarity
- Breaks dependency cycles and reports the critical path
- Executes plans sequentially with fail-fast semantics
- Replans around failed tasks, preserving completed work`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
