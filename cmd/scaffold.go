package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/saltyorg/chartpedia/internal/generator"
	"github.com/saltyorg/chartpedia/internal/template"
)

var (
	scaffoldTemplate string
	scaffoldOutput   string
	scaffoldForce    bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [chart-dir]",
	Short: "Generate a chart README from Chart.yaml",
	Long: `Generate a starter README for a chart.

The title and description come from Chart.yaml. When the chart has a
values.yaml the parameters section is generated right away.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return scaffoldChart(cmd, dir)
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldTemplate, "template", "", "path to README template (default: built-in)")
	scaffoldCmd.Flags().StringVar(&scaffoldOutput, "output", "", "output path override (default: <chart-dir>/README.md)")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "overwrite existing file if present")
	rootCmd.AddCommand(scaffoldCmd)
}

// chartFile holds the Chart.yaml fields used by the README template.
type chartFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// scaffoldChart creates a new README for the chart in dir.
func scaffoldChart(cmd *cobra.Command, dir string) error {
	g, cfg, _, err := newGenerator("")
	if err != nil {
		return err
	}

	chartPath := filepath.Join(dir, "Chart.yaml")
	data, err := afero.ReadFile(fs, chartPath)
	if err != nil {
		return fmt.Errorf("reading chart file: %w", err)
	}

	var chart chartFile
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return fmt.Errorf("parsing %s: %w", chartPath, err)
	}
	if chart.Name == "" {
		return fmt.Errorf("%s: name is required", chartPath)
	}

	outputPath := scaffoldOutput
	if outputPath == "" {
		outputPath = filepath.Join(dir, "README.md")
	}

	// Check if file already exists
	exists, err := afero.Exists(fs, outputPath)
	if err != nil {
		return fmt.Errorf("checking %s: %w", outputPath, err)
	}
	if exists && !scaffoldForce {
		return fmt.Errorf("file %s already exists (use --force to overwrite)", outputPath)
	}

	engine, err := template.NewDefault()
	if err != nil {
		return err
	}
	if scaffoldTemplate != "" {
		if err := engine.LoadFile(fs, template.ReadmeTemplate, scaffoldTemplate); err != nil {
			return err
		}
	}

	readme, err := engine.Render(template.ReadmeTemplate, template.ReadmeData{
		Name:        chart.Name,
		Description: chart.Description,
		ParamsLevel: "##",
		ParamsTitle: cfg.Regexp.ParamsSectionTitle,
	})
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := afero.WriteFile(fs, outputPath, []byte(readme), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outputPath)

	valuesPath := filepath.Join(dir, "values.yaml")
	hasValues, err := afero.Exists(fs, valuesPath)
	if err != nil || !hasValues {
		return err
	}

	result, err := g.Run(generator.Options{ValuesPath: valuesPath, ReadmePath: outputPath})
	if err != nil {
		return err
	}
	printGenResult(cmd, result)
	return nil
}
