package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/spf13/afero"
)

// Names of the built-in templates.
const (
	ParametersTemplate = "parameters"
	ReadmeTemplate     = "readme"
)

//go:embed templates/*.md.tmpl
var builtin embed.FS

var builtinFiles = map[string]string{
	ParametersTemplate: "templates/parameters.md.tmpl",
	ReadmeTemplate:     "templates/readme.md.tmpl",
}

// ReadmeData is the input of the README skeleton template.
type ReadmeData struct {
	Name        string
	Description string
	ParamsLevel string
	ParamsTitle string
}

// Engine handles template loading and rendering.
type Engine struct {
	templates map[string]*template.Template
}

// New creates a new template engine.
func New() *Engine {
	return &Engine{
		templates: make(map[string]*template.Template),
	}
}

// NewDefault creates an engine with the built-in templates loaded.
func NewDefault() (*Engine, error) {
	e := New()
	for name, path := range builtinFiles {
		content, err := builtin.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading built-in template %s: %w", name, err)
		}
		if err := e.LoadString(name, string(content)); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// LoadFile loads a template from a file path, replacing any template already
// registered under name.
func (e *Engine) LoadFile(fsys afero.Fs, name, path string) error {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}

	return e.LoadString(name, string(content))
}

// LoadString loads a template from a string.
func (e *Engine) LoadString(name, content string) error {
	tmpl, err := template.New(name).Funcs(FuncMap()).Option("missingkey=error").Parse(content)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}

	e.templates[name] = tmpl
	return nil
}

// Render renders a template with the given data.
func (e *Engine) Render(name string, data any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// RenderParameters renders the parameters block for data.
func (e *Engine) RenderParameters(data *ParametersData) (string, error) {
	return e.Render(ParametersTemplate, data)
}
