// Package generator drives README generation for a chart: it parses the
// annotated values file, renders the parameters block and rewrites the
// parameters section of the README.
package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/k14s/difflib"
	"github.com/spf13/afero"

	"github.com/saltyorg/chartpedia/internal/config"
	"github.com/saltyorg/chartpedia/internal/docs"
	"github.com/saltyorg/chartpedia/internal/logger"
	"github.com/saltyorg/chartpedia/internal/parser"
	"github.com/saltyorg/chartpedia/internal/template"
	"github.com/saltyorg/chartpedia/internal/values"
)

// Status describes what happened to a README.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusNotFound  Status = "not-found"
	StatusDisabled  Status = "disabled"
)

// Options selects the files of one run.
type Options struct {
	ValuesPath string
	ReadmePath string

	// Check computes the result and diff without writing the README
	Check bool
}

// Result holds the outcome of one run.
type Result struct {
	ValuesPath string
	ReadmePath string
	Status     Status
	Diff       string   // Line diff of the README, empty when unchanged
	Sections   int      // Number of sections parsed
	Values     int      // Number of annotations parsed
	Rendered   int      // Number of values rendered in tables
	Duplicates []string // Names annotated more than once
}

// Stale reports whether the README differs from what would be generated.
func (r *Result) Stale() bool {
	return r.Status == StatusUpdated
}

// Generator runs the parse, render and rewrite pipeline.
type Generator struct {
	fs      afero.Fs
	cfg     *config.Config
	parser  *parser.Parser
	manager *docs.Manager
	engine  *template.Engine
	log     logger.Logger
}

// New creates a Generator. A nil engine selects the built-in templates.
func New(fsys afero.Fs, cfg *config.Config, log logger.Logger, engine *template.Engine) (*Generator, error) {
	p, err := parser.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}

	manager, err := docs.NewManager(fsys, cfg.Regexp.ParamsSectionTitle)
	if err != nil {
		return nil, fmt.Errorf("creating readme manager: %w", err)
	}

	if engine == nil {
		if engine, err = template.NewDefault(); err != nil {
			return nil, err
		}
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Generator{
		fs:      fsys,
		cfg:     cfg,
		parser:  p,
		manager: manager,
		engine:  engine,
		log:     log,
	}, nil
}

// Load parses the annotations and values of a values file.
func (g *Generator) Load(valuesPath string) (*parser.Metadata, *values.Values, error) {
	md, err := g.parser.ParseFile(g.fs, valuesPath)
	if err != nil {
		return nil, nil, err
	}

	vals, err := values.ReadFile(g.fs, valuesPath)
	if err != nil {
		return nil, nil, err
	}

	g.log.WithFields(logger.Fields{
		"values":   valuesPath,
		"sections": len(md.Sections),
		"params":   len(md.Values),
		"keys":     vals.Len(),
	}).Debug("parsed values file")

	return md, vals, nil
}

// Run regenerates the parameters section of a README.
func (g *Generator) Run(opts Options) (*Result, error) {
	md, vals, err := g.Load(opts.ValuesPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ValuesPath: opts.ValuesPath,
		ReadmePath: opts.ReadmePath,
		Sections:   len(md.Sections),
		Values:     len(md.Values),
		Rendered:   countRendered(md),
		Duplicates: md.Duplicates(),
	}

	if len(result.Duplicates) > 0 {
		g.log.WithFields(logger.Fields{
			"values": opts.ValuesPath,
			"names":  strings.Join(result.Duplicates, ", "),
		}).Warn("values annotated more than once")
	}

	doc, err := g.manager.LoadDocument(opts.ReadmePath)
	if err != nil {
		return nil, err
	}

	readmeLog := g.log.WithFields(logger.Fields{"readme": opts.ReadmePath})

	if g.manager.IsAutomationDisabled(doc) {
		readmeLog.Info("generation disabled in frontmatter, skipping")
		result.Status = StatusDisabled
		return result, nil
	}

	original := doc.Content
	err = g.manager.UpdateParametersSection(doc, g.renderFunc(md, vals))
	if errors.Is(err, docs.ErrParametersSectionNotFound) {
		readmeLog.Warn(fmt.Sprintf("no %q heading found, README left unchanged", g.cfg.Regexp.ParamsSectionTitle))
		result.Status = StatusNotFound
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", opts.ReadmePath, err)
	}

	if doc.Content == original {
		readmeLog.Debug("README is up to date")
		result.Status = StatusUnchanged
		return result, nil
	}

	result.Status = StatusUpdated
	result.Diff = difflib.PPDiff(strings.Split(original, "\n"), strings.Split(doc.Content, "\n"))

	if opts.Check {
		readmeLog.Debug("README is stale")
		return result, nil
	}

	if err := g.manager.SaveDocument(doc); err != nil {
		return nil, err
	}
	readmeLog.Info("README updated")

	return result, nil
}

// Render returns the parameters block for a values file, as it would appear
// under a parameters heading at level.
func (g *Generator) Render(valuesPath, level string) (string, error) {
	md, vals, err := g.Load(valuesPath)
	if err != nil {
		return "", err
	}
	return g.renderFunc(md, vals)(level)
}

func (g *Generator) renderFunc(md *parser.Metadata, vals *values.Values) docs.RenderFunc {
	return func(level string) (string, error) {
		data := template.BuildParametersData(md, vals, g.cfg, level)
		return g.engine.RenderParameters(data)
	}
}

func countRendered(md *parser.Metadata) int {
	n := 0
	for _, v := range md.Values {
		if v.RenderInReadme {
			n++
		}
	}
	return n
}
