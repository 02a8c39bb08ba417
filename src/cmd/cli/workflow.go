package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lintwell/src/workflow"
)

// workflowCmd groups the CI workflow helpers.
var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Inspect CI workflow files",
}

// workflowValidateCmd checks a workflow file for structural problems.
var workflowValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a workflow file",
	Long: `Parse a GitHub Actions workflow file and check it for structural
problems: missing triggers, empty jobs, steps with neither run nor uses,
and duplicate step names.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		wf, err := workflow.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		if err := wf.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("%s: OK (%d jobs)\n", path, len(wf.Jobs))
		if wf.TriggersOnPush("master") {
			fmt.Println("  triggers on push to master")
		}
		if wf.TriggersOnPullRequest() {
			fmt.Println("  triggers on pull requests")
		}
	},
}

// workflowCacheKeyCmd computes the dependency cache key for a tree.
var workflowCacheKeyCmd = &cobra.Command{
	Use:   "cache-key [path]",
	Short: "Compute the dependency cache key for a directory",
	Long: `Hash the requirement files under path the way the CI cache does:
sha256 over the sorted matching files. Prints nothing and exits 1 when no
requirement files match.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		patterns, _ := cmd.Flags().GetStringSlice("pattern")

		key, err := workflow.HashFiles(root, patterns...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		if key == "" {
			fmt.Fprintln(os.Stderr, "no files matched")
			os.Exit(1)
		}
		fmt.Println(key)
	},
}

func init() {
	workflowCmd.AddCommand(workflowValidateCmd)
	workflowCmd.AddCommand(workflowCacheKeyCmd)

	workflowCacheKeyCmd.Flags().StringSlice("pattern", []string{"**/requirements*.txt"},
		"Glob pattern(s) selecting the files to hash")
}
