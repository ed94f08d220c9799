package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/saltyorg/chartpedia/internal/config"
	"github.com/saltyorg/chartpedia/internal/generator"
	"github.com/saltyorg/chartpedia/internal/logger"
	"github.com/saltyorg/chartpedia/internal/template"
)

var (
	cfgFile   string
	logConfig = logger.NewConfig()

	// fs backs every command, tests swap in a MemMapFs
	fs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chartpedia",
	Short: "Helm chart README generator",
	Long: `chartpedia generates the parameters section of a Helm chart README from
the annotated comments in its values.yaml.

It performs the following core functions:
  - Parameters table generation from values.yaml annotations
  - Linting of undocumented and stale annotations
  - README scaffolding from Chart.yaml`,
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("config file path (default: first of %v in the working directory)", config.DefaultPaths))
	logConfig.RegisterFlags(rootCmd.PersistentFlags())
}

// loadConfig resolves the configuration from --config or the working directory.
func loadConfig(log logger.Logger) (*config.Config, error) {
	cfg, path, err := config.Resolve(fs, cfgFile, ".")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if path != "" {
		log.WithFields(logger.Fields{"path": path}).Debug("loaded config")
	}
	return cfg, nil
}

// newGenerator builds the logger, configuration and generator shared by the
// chart commands. templatePath optionally replaces the parameters template.
func newGenerator(templatePath string) (*generator.Generator, *config.Config, logger.Logger, error) {
	log, err := logConfig.New()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return nil, nil, nil, err
	}

	engine, err := template.NewDefault()
	if err != nil {
		return nil, nil, nil, err
	}
	if templatePath != "" {
		if err := engine.LoadFile(fs, template.ParametersTemplate, templatePath); err != nil {
			return nil, nil, nil, err
		}
	}

	g, err := generator.New(fs, cfg, log, engine)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, cfg, log, nil
}

// chartPaths resolves the values and README paths of a chart directory.
// Explicit flag values win over the directory defaults.
func chartPaths(args []string, valuesPath, readmePath string) (string, string) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if valuesPath == "" {
		valuesPath = filepath.Join(dir, "values.yaml")
	}
	if readmePath == "" {
		readmePath = filepath.Join(dir, "README.md")
	}
	return valuesPath, readmePath
}
