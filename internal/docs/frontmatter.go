package docs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents the parsed frontmatter of a README.
type Frontmatter struct {
	Raw        string            // Raw frontmatter YAML
	Chartpedia *AutomationConfig `yaml:"chartpedia"`
}

// AutomationConfig represents the chartpedia frontmatter section.
type AutomationConfig struct {
	Disabled bool `yaml:"disabled"`
}

// ParseFrontmatter extracts and parses the YAML frontmatter from markdown content.
// Returns the frontmatter, the remaining content, and any error.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil, content, nil
	}

	rest := content[strings.Index(content, "\n")+1:]
	endIdx := strings.Index("\n"+rest, "\n---")
	if endIdx == -1 {
		return nil, content, fmt.Errorf("unclosed frontmatter: missing closing ---")
	}

	raw := strings.TrimSpace(rest[:endIdx])
	remaining := rest[endIdx:]
	remaining = strings.TrimPrefix(remaining, "---")
	remaining = strings.TrimPrefix(strings.TrimPrefix(remaining, "\r"), "\n")

	fm := Frontmatter{Raw: raw}
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, content, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}

	return &fm, remaining, nil
}

// IsDisabled returns whether generation is turned off for the document.
func (f *Frontmatter) IsDisabled() bool {
	return f != nil && f.Chartpedia != nil && f.Chartpedia.Disabled
}
