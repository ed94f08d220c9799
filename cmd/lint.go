package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saltyorg/chartpedia/internal/github"
	"github.com/saltyorg/chartpedia/internal/lint"
)

var lintValues string

var lintCmd = &cobra.Command{
	Use:   "lint [chart-dir]",
	Short: "Check values.yaml annotations",
	Long: `Check the annotations of a values file.

Checks for:
  - Values without a @param, @skip or @extra annotation
  - @param annotations naming a value that does not exist
  - Values annotated more than once`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, log, err := newGenerator("")
		if err != nil {
			return err
		}

		valuesPath, _ := chartPaths(args, lintValues, "")
		md, vals, err := g.Load(valuesPath)
		if err != nil {
			return err
		}

		result := lint.Check(md, vals)
		printLintResult(cmd.OutOrStdout(), valuesPath, result)

		summary := &github.Summary{Lint: result}
		if err := summary.WriteGitHubSummary(fs); err != nil {
			log.Warn(fmt.Sprintf("failed to write GitHub summary: %v", err))
		}

		if result.HasIssues() {
			return fmt.Errorf("found %d issue(s) in %s", result.TotalIssues(), valuesPath)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVar(&lintValues, "values", "", "values file (default: <chart-dir>/values.yaml)")
	rootCmd.AddCommand(lintCmd)
}

// printLintResult prints the lint results in a formatted way.
func printLintResult(out io.Writer, valuesPath string, result *lint.Result) {
	groups := []struct {
		title    string
		findings []lint.Finding
	}{
		{"Undocumented values", result.Undocumented},
		{"Annotated values missing from the values file", result.Missing},
		{"Duplicate annotations", result.Duplicates},
	}

	bold := color.New(color.Bold)
	for _, group := range groups {
		if len(group.findings) == 0 {
			continue
		}
		bold.Fprintf(out, "%s (%d)\n", group.title, len(group.findings))
		for _, f := range group.findings {
			fmt.Fprintf(out, "  %s:%d: %s\n", valuesPath, f.Line, f.Name)
		}
		fmt.Fprintln(out)
	}

	total := result.TotalIssues()
	if total == 0 {
		color.New(color.FgGreen).Fprintln(out, "✅ All lint checks passed!")
	} else {
		color.New(color.FgRed).Fprintf(out, "❌ Found %d issue(s)\n", total)
	}
}
