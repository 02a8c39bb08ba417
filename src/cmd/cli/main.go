// Package main provides the lintwell CLI. It orchestrates the lint
// pipeline with the Cobra framework and auto-detects local vs distributed
// mode from the environment.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lintwell/src/config"
	"lintwell/src/contracts"
	"lintwell/src/discover"
	"lintwell/src/logger"
	"lintwell/src/pipeline"
	"lintwell/src/ranking"
	"lintwell/src/runner"
	"lintwell/src/store"
	"lintwell/src/tui"
)

var (
	appConfig *config.Config
	mode      pipeline.Mode
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lintwell",
	Short: "Lintwell - a pylint orchestrator for Python codebases",
	Long: `Lintwell discovers Python files, runs pylint over them, and turns the
raw output into ranked, deduplicated findings.

It supports two modes:
- Local Mode: runs the whole pipeline in-process (default)
- Distributed Mode: Kafka + Postgres, lint and analysis agents

Mode is auto-detected from the KAFKA_BROKERS environment variable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appConfig = config.LoadFromEnv()
		mode = pipeline.DetectMode(pipelineConfig())
	},
}

// pipelineConfig maps the app config onto the pipeline config.
func pipelineConfig() *pipeline.Config {
	return &pipeline.Config{
		KafkaBrokers: appConfig.KafkaBrokers,
		PostgresDSN:  appConfig.PostgresDSN,
		PylintBin:    appConfig.PylintBin,
		CacheDir:     appConfig.CacheDir,
	}
}

// splitPassthrough separates the optional path argument from arguments
// after "--", which are forwarded to pylint unchanged.
func splitPassthrough(cmd *cobra.Command, args []string) (string, []string, error) {
	return splitArgs(args, cmd.ArgsLenAtDash())
}

// splitArgs takes the raw argument list and the index of "--" (or -1 when
// absent). At most one positional argument, the lint root, may appear
// before the dash.
func splitArgs(args []string, dash int) (root string, passthrough []string, err error) {
	if dash < 0 {
		dash = len(args)
	}
	switch {
	case dash > 1:
		return "", nil, fmt.Errorf("unexpected arguments: %s (pylint flags go after \"--\")",
			strings.Join(args[1:dash], " "))
	case dash == 1:
		root = args[0]
	default:
		root = "."
	}
	return root, args[dash:], nil
}

// runCmd lints a tree and prints diagnostics, mirroring pylint's exit code.
var runCmd = &cobra.Command{
	Use:   "run [path] [-- pylint-args...]",
	Short: "Lint all Python files under a directory",
	Long: `Discover Python files under path (default ".") and lint them.

Arguments after "--" are forwarded to pylint unchanged:

  lintwell run src -- --disable=C0114 --rcfile=.pylintrc

The exit status mirrors pylint's bitmask exit code, so this command is a
drop-in for a raw pylint invocation in CI. Unchanged files are served from
the incremental result cache; disable it with --no-cache.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, passthrough, err := splitPassthrough(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := context.Background()

		if mode == pipeline.DistributedMode {
			submitRequest(ctx, root, passthrough)
			return
		}

		local := pipeline.NewLocal(pipelineConfig(), logger.NewConsoleLogger())
		local.UseCache = !noCache

		result, err := local.Run(ctx, root, passthrough)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}

		if asJSON {
			printCardsJSON(result.Cards)
		} else {
			printCards(result.Cards)
			status := runner.DecodeStatus(result.ExitCode)
			fmt.Fprintf(os.Stderr, "\n%d findings in %d files (%d cached), status: %s\n",
				len(result.Cards), result.FilesTotal, result.FilesCached, status)
		}

		os.Exit(result.ExitCode)
	},
}

// triageCmd lints a tree and launches the interactive TUI.
var triageCmd = &cobra.Command{
	Use:   "triage [path] [-- pylint-args...]",
	Short: "Lint a directory and triage findings interactively",
	Long: `Run the local pipeline and open the triage TUI: blocking findings
(fatal/error class) first, style findings below, deduplicated by pattern
with recurrence counts.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, passthrough, err := splitPassthrough(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")

		local := pipeline.NewLocal(pipelineConfig(), logger.NewSilentLogger())
		local.UseCache = !noCache

		result, err := local.Run(context.Background(), root, passthrough)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}

		tiered := ranking.RankCards(result.Cards)
		if blocking, style := tiered.Counts(); blocking+style == 0 {
			fmt.Printf("No findings in %d files. Clean run.\n", result.FilesTotal)
			return
		}

		if err := tui.Start(tiered); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// discoverCmd lists the Python files that a lint run would cover.
var discoverCmd = &cobra.Command{
	Use:   "discover [path]",
	Short: "List the Python files a lint run would cover",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		files, err := discover.Files(root, discover.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		for _, f := range files {
			fmt.Println(f)
		}
	},
}

// submitCmd publishes a lint request for the distributed agents.
var submitCmd = &cobra.Command{
	Use:   "submit [path] [-- pylint-args...]",
	Short: "Submit a lint request to the distributed pipeline",
	Long: `Publish a lint request to Kafka for the lint and analysis agents to
process. Requires KAFKA_BROKERS; findings land in Postgres when
POSTGRES_DSN is set.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if mode != pipeline.DistributedMode {
			fmt.Fprintln(os.Stderr, "ERROR: KAFKA_BROKERS environment variable is required for submit")
			fmt.Fprintln(os.Stderr, "Example: export KAFKA_BROKERS=localhost:19092")
			os.Exit(1)
		}
		root, passthrough, err := splitPassthrough(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
			os.Exit(1)
		}
		submitRequest(context.Background(), root, passthrough)
	},
}

// submitRequest publishes a request and prints follow-up instructions.
func submitRequest(ctx context.Context, root string, passthrough []string) {
	p, err := pipeline.NewDistributed(pipelineConfig(), logger.NewConsoleLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create pipeline: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	requestID, err := p.Submit(ctx, root, passthrough)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to submit request: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Submitted lint request: %s\n", requestID)
	fmt.Printf("  Root: %s\n", root)
	fmt.Println()
	fmt.Printf("Check status: lintwell status %s\n", requestID)
	fmt.Printf("View results: lintwell view %s\n", requestID)
}

// statusCmd shows the lifecycle state of a submitted request.
var statusCmd = &cobra.Command{
	Use:   "status [request-id]",
	Short: "Check the status of a submitted lint request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]
		st := openPostgres()
		defer st.Close()

		status, err := st.GetRunStatus(context.Background(), requestID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Request ID:       %s\n", status.RequestID)
		fmt.Printf("Root:             %s\n", status.Root)
		fmt.Printf("Status:           %s\n", status.Status)
		fmt.Printf("Chunks Total:     %d\n", status.ChunksTotal)
		fmt.Printf("Chunks Processed: %d\n", status.ChunksProcessed)
		fmt.Printf("Findings:         %d\n", status.FindingsCount)
		fmt.Printf("Exit Status:      %s\n", runner.DecodeStatus(status.ExitCode))
	},
}

// viewCmd displays stored findings for a request in the TUI.
var viewCmd = &cobra.Command{
	Use:   "view [request-id]",
	Short: "View findings for a submitted request",
	Long: `Query Postgres for the findings of a previously submitted request and
display them in the triage TUI. Use --plain for non-interactive output, or
--finding with a message hash to inspect one finding.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]
		plain, _ := cmd.Flags().GetBool("plain")
		hash, _ := cmd.Flags().GetString("finding")

		st := openPostgres()
		defer st.Close()

		if hash != "" {
			card, err := st.GetByHash(context.Background(), requestID, hash)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to get finding: %v\n", err)
				os.Exit(1)
			}
			printCardDetail(card)
			return
		}

		cards, err := st.GetFindings(context.Background(), requestID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get findings: %v\n", err)
			os.Exit(1)
		}
		if len(cards) == 0 {
			fmt.Printf("No findings for request: %s\n", requestID)
			fmt.Println("The request may still be processing; check with 'lintwell status'.")
			return
		}

		if plain {
			printCards(cards)
			return
		}

		fmt.Printf("Found %d findings for request: %s\n", len(cards), requestID)
		if err := tui.Start(ranking.RankCards(cards)); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// openPostgres connects to the configured findings store or exits.
func openPostgres() store.Store {
	if appConfig.PostgresDSN == "" {
		fmt.Fprintln(os.Stderr, "ERROR: POSTGRES_DSN environment variable is required for this command")
		os.Exit(1)
	}
	st, err := store.NewPostgres(appConfig.PostgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
		os.Exit(1)
	}
	return st
}

// printCards writes diagnostics in pylint's parseable format.
func printCards(cards []contracts.LintCard) {
	for _, card := range cards {
		if card.Symbol != "" {
			fmt.Printf("%s:%d:%d: %s: %s (%s)\n",
				card.Path, card.Line, card.Column, card.Code, card.RawMessage, card.Symbol)
			continue
		}
		fmt.Printf("%s:%d:%d: %s: %s\n",
			card.Path, card.Line, card.Column, card.Code, card.RawMessage)
	}
}

// printCardDetail writes one finding with its full context.
func printCardDetail(card contracts.LintCard) {
	fmt.Printf("%s (%s) %s\n", card.Code, card.Severity, card.Symbol)
	fmt.Printf("Location:   %s:%d:%d\n", card.Path, card.Line, card.Column)
	fmt.Printf("Hash:       %s\n", card.MessageHash)
	fmt.Printf("Recurrence: %d\n", card.GetRecurrenceCount())
	fmt.Printf("Message:    %s\n", card.RawMessage)
	fmt.Printf("Pattern:    %s\n", card.NormalizedMsg)
}

// printCardsJSON writes the full card list as a JSON array.
func printCardsJSON(cards []contracts.LintCard) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cards); err != nil {
		fmt.Fprintf(os.Stderr, "lintwell: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(workflowCmd)

	runCmd.Flags().Bool("no-cache", false, "Disable the incremental result cache")
	runCmd.Flags().Bool("json", false, "Emit findings as JSON instead of parseable text")
	triageCmd.Flags().Bool("no-cache", false, "Disable the incremental result cache")
	viewCmd.Flags().Bool("plain", false, "Print findings instead of launching the TUI")
	viewCmd.Flags().String("finding", "", "Show a single finding by message hash")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
