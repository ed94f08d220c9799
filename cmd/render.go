package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	renderValues   string
	renderTemplate string
	renderLevel    string
)

var renderCmd = &cobra.Command{
	Use:   "render [chart-dir]",
	Short: "Print the parameters section to stdout",
	Long: `Print the generated parameters section to stdout without touching any README.

--level is the heading level of the enclosing parameters heading; section
headings are rendered one level deeper.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderLevel == "" || strings.Trim(renderLevel, "#") != "" || len(renderLevel) > 6 {
			return fmt.Errorf("invalid --level %q, expected one to six '#'", renderLevel)
		}

		g, _, _, err := newGenerator(renderTemplate)
		if err != nil {
			return err
		}

		valuesPath, _ := chartPaths(args, renderValues, "")
		block, err := g.Render(valuesPath, renderLevel)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), strings.Trim(block, "\n"))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderValues, "values", "", "values file (default: <chart-dir>/values.yaml)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "custom parameters template")
	renderCmd.Flags().StringVar(&renderLevel, "level", "##", "level of the parameters heading")
	rootCmd.AddCommand(renderCmd)
}
