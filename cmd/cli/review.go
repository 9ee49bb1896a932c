package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/report"
	"github.com/sevigo/code-mentor/internal/wire"
)

var (
	outputPath   string
	outputFormat string
	plainOutput  bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [input.json]",
	Short: "Transform harsh review comments into empathetic feedback",
	Long: `Transform harsh review comments into empathetic feedback.

The review command reads a JSON payload with 'code_snippet' and
'review_comments' from a file (or stdin when no file is given), sends each
comment through the generation backend, and prints the assembled report.

Examples:
  mentor-cli review input.json
  mentor-cli review --format json input.json
  cat input.json | mentor-cli review --out report.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Write the report to a file instead of stdout")
	reviewCmd.Flags().StringVarP(&outputFormat, "format", "f", "markdown", "Output format: markdown or json")
	reviewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Disable terminal rendering of the markdown report")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	payload, err := readInput(args)
	if err != nil {
		return err
	}

	req, err := core.ParseReviewRequest(payload)
	if err != nil {
		return fmt.Errorf("%w\n\nExpected JSON with 'code_snippet' and a non-empty 'review_comments' list", err)
	}

	titleColor.Fprintln(os.Stderr, "Code Mentor - Empathetic Review")
	dimColor.Fprintf(os.Stderr, "   Comments: %d\n", len(req.ReviewComments))

	appInstance, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w\n\nTip: check your .env and provider credentials", err)
	}
	defer cleanup()

	start := time.Now()
	dimColor.Fprintf(os.Stderr, "   Backend: %s (%s)\n\n", appInstance.Cfg.GeneratorModelName, appInstance.Cfg.LLMProvider)

	result, err := appInstance.Reviewer.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	if degraded := result.DegradedCount(); degraded > 0 {
		warnColor.Fprintf(os.Stderr, "⚠ %d of %d comments could not be fully analyzed\n", degraded, len(result.Analyses))
	}
	successColor.Fprintf(os.Stderr, "✓ Done (%s)\n\n", time.Since(start).Round(time.Millisecond))

	rendered, err := report.Render(result, format)
	if err != nil {
		return err
	}
	return writeOutput(rendered, format)
}

// readInput loads the request payload from the file argument, or from stdin
// when the command is used in a pipe.
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("no input file given and stdin is a terminal\n\nTip: run 'mentor-cli example' for a sample payload")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// writeOutput writes the rendered report to the requested destination. A
// markdown report going to an interactive terminal is rendered with glamour
// unless --plain is set.
func writeOutput(rendered []byte, format report.Format) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, rendered, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		successColor.Fprintf(os.Stderr, "Report written to %s\n", outputPath)
		return nil
	}

	if format == report.FormatMarkdown && !plainOutput && isatty.IsTerminal(os.Stdout.Fd()) {
		pretty, err := glamour.Render(string(rendered), "dark")
		if err == nil {
			fmt.Print(pretty)
			return nil
		}
		// Fall through to the raw document on rendering trouble.
	}

	fmt.Println(string(rendered))
	return nil
}
