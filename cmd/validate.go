package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saltyorg/chartpedia/internal/docs"
	"github.com/saltyorg/chartpedia/internal/logger"
)

var validateReadme string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and README",
	Long:  "Validate the configuration file and the structure of a chart README.",
}

var validateConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate the configuration file",
	Long:  "Validate the configuration file for required fields and distinct tags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load() calls Validate() automatically
		if _, err := loadConfig(logger.Nop()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Config is valid")
		return nil
	},
}

var validateReadmeCmd = &cobra.Command{
	Use:   "readme [chart-dir]",
	Short: "Validate the parameters heading of a README",
	Long: `Validate that a README can be managed.

Checks that the frontmatter parses, that exactly one parameters heading exists
and that code fences are terminated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(logger.Nop())
		if err != nil {
			return err
		}

		manager, err := docs.NewManager(fs, cfg.Regexp.ParamsSectionTitle)
		if err != nil {
			return err
		}

		_, readmePath := chartPaths(args, "", validateReadme)
		doc, err := manager.LoadDocument(readmePath)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %v\n", err)
			return fmt.Errorf("invalid README %s", readmePath)
		}

		if manager.IsAutomationDisabled(doc) {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %s: generation disabled in frontmatter\n", readmePath)
		}

		problems := manager.Rewriter().Validate(doc.Content)
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %s: %s\n", readmePath, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("found %d problem(s) in %s", len(problems), readmePath)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid\n", readmePath)
		return nil
	},
}

func init() {
	validateReadmeCmd.Flags().StringVar(&validateReadme, "readme", "", "README file (default: <chart-dir>/README.md)")
	validateCmd.AddCommand(validateConfigCmd)
	validateCmd.AddCommand(validateReadmeCmd)
	rootCmd.AddCommand(validateCmd)
}
