package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saltyorg/chartpedia/internal/generator"
	"github.com/saltyorg/chartpedia/internal/github"
)

var (
	genValues   string
	genReadme   string
	genTemplate string
	genCheck    bool
	genStrict   bool
)

var genCmd = &cobra.Command{
	Use:     "gen [chart-dir]",
	Aliases: []string{"update"},
	Short:   "Regenerate the parameters section of a chart README",
	Long: `Regenerate the parameters section of a chart README in place.

The section starts at the first "Parameters" heading (see regexp.paramsSectionTitle)
and ends at the next heading of the same or a higher level. Everything outside
it is left untouched.

With --check nothing is written; the command prints a diff and fails when the
README is out of date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, log, err := newGenerator(genTemplate)
		if err != nil {
			return err
		}

		valuesPath, readmePath := chartPaths(args, genValues, genReadme)
		result, err := g.Run(generator.Options{
			ValuesPath: valuesPath,
			ReadmePath: readmePath,
			Check:      genCheck,
		})
		if err != nil {
			return err
		}

		printGenResult(cmd, result)

		summary := &github.Summary{Generate: result, Check: genCheck}
		if err := summary.WriteGitHubSummary(fs); err != nil {
			log.Warn(fmt.Sprintf("failed to write GitHub summary: %v", err))
		}

		switch {
		case genCheck && result.Stale():
			return fmt.Errorf("%s is out of date, run chartpedia gen", readmePath)
		case genStrict && result.Status == generator.StatusNotFound:
			return fmt.Errorf("%s has no parameters section", readmePath)
		}
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&genValues, "values", "", "values file (default: <chart-dir>/values.yaml)")
	genCmd.Flags().StringVar(&genReadme, "readme", "", "README file (default: <chart-dir>/README.md)")
	genCmd.Flags().StringVar(&genTemplate, "template", "", "custom parameters template")
	genCmd.Flags().BoolVar(&genCheck, "check", false, "report a stale README without writing it")
	genCmd.Flags().BoolVar(&genStrict, "strict", false, "fail when the README has no parameters section")
	rootCmd.AddCommand(genCmd)
}

// printGenResult prints a one-line status for result, plus the diff in check mode.
func printGenResult(cmd *cobra.Command, result *generator.Result) {
	out := cmd.OutOrStdout()

	switch result.Status {
	case generator.StatusUpdated:
		if genCheck {
			color.New(color.FgRed).Fprintf(out, "❌ %s is out of date\n", result.ReadmePath)
			fmt.Fprintln(out, result.Diff)
			return
		}
		color.New(color.FgGreen).Fprintf(out, "✅ Updated %s (%d parameters in %d sections)\n",
			result.ReadmePath, result.Rendered, result.Sections)
	case generator.StatusUnchanged:
		fmt.Fprintf(out, "%s is up to date\n", result.ReadmePath)
	case generator.StatusNotFound:
		color.New(color.FgYellow).Fprintf(out, "⚠️  %s has no parameters section, skipped\n", result.ReadmePath)
	case generator.StatusDisabled:
		fmt.Fprintf(out, "Skipping %s: generation disabled in frontmatter\n", result.ReadmePath)
	}
}
