package template

import (
	"regexp"
	"strings"

	"github.com/saltyorg/chartpedia/internal/config"
	"github.com/saltyorg/chartpedia/internal/parser"
	"github.com/saltyorg/chartpedia/internal/types"
	"github.com/saltyorg/chartpedia/internal/values"
)

// maxHeadingLevel is the deepest Markdown ATX heading.
const maxHeadingLevel = 6

// ParametersData contains everything needed to render a parameters block.
type ParametersData struct {
	// Heading marker for section titles (e.g., "###"). Empty when the
	// parameters heading is already at the deepest level.
	Level string

	// Renderable values declared before any section, nil if there are none
	Unsectioned *SectionData

	Sections []*SectionData
}

// SectionData represents a section for template rendering.
type SectionData struct {
	Name        string
	Description string
	Rows        []Row
}

// HasRows returns true if the section has any renderable values.
func (s *SectionData) HasRows() bool {
	return len(s.Rows) > 0
}

// Row is one table line. Name and Value are already code-formatted.
type Row struct {
	Name        string
	Description string
	Value       string
}

// BuildParametersData assembles render data from parsed metadata. level is the
// marker of the parameters heading itself (e.g., "##"); section headings are
// rendered one level deeper. vals may be nil when no values file is available.
func BuildParametersData(md *parser.Metadata, vals *values.Values, cfg *config.Config, level string) *ParametersData {
	data := &ParametersData{
		Level:    subLevel(level),
		Sections: make([]*SectionData, 0, len(md.Sections)),
	}

	if rows := buildRows(md.Unsectioned(), vals, cfg); len(rows) > 0 {
		data.Unsectioned = &SectionData{Rows: rows}
	}

	for i := range md.Sections {
		s := &md.Sections[i]
		data.Sections = append(data.Sections, &SectionData{
			Name:        s.Name,
			Description: descriptionMarkdown(s.DescriptionLines),
			Rows:        buildRows(md.SectionValues(s.ID), vals, cfg),
		})
	}

	return data
}

var (
	descHeadingRe = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]|$)`)
	descFenceRe   = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// descriptionMarkdown joins section description lines so they cannot end or
// swallow the parameters section of the README: headings outside code blocks
// are escaped, and a code block left open is closed.
func descriptionMarkdown(lines []string) string {
	out := make([]string, 0, len(lines)+1)
	fence := ""

	for _, line := range lines {
		m := descFenceRe.FindStringSubmatch(line)
		switch {
		case fence == "" && m != nil:
			fence = m[1]
		case fence != "":
			if m != nil && m[1][0] == fence[0] && len(m[1]) >= len(fence) &&
				strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), m[1][:1])) == "" {
				fence = ""
			}
		case descHeadingRe.MatchString(line):
			i := strings.IndexByte(line, '#')
			line = line[:i] + `\` + line[i:]
		}
		out = append(out, line)
	}

	if fence != "" {
		out = append(out, fence)
	}
	return strings.Join(out, "\n")
}

func subLevel(level string) string {
	if len(level) >= maxHeadingLevel {
		return ""
	}
	return level + "#"
}

// buildRows keeps only values that are rendered, preserving their order.
func buildRows(vs []*parser.Value, vals *values.Values, cfg *config.Config) []Row {
	rows := []Row{}
	for _, v := range vs {
		if !v.RenderInReadme {
			continue
		}
		rows = append(rows, Row{
			Name:        code(v.Name),
			Description: v.Description,
			Value:       code(FormatValue(v, vals, cfg)),
		})
	}
	return rows
}

// FormatValue returns the default value shown for v.
// An explicit "default:" modifier wins, then the value from the values file.
// Values missing from the file fall back to the placeholder of their type
// modifier (nullable, array, object, string), or to an empty cell.
func FormatValue(v *parser.Value, vals *values.Values, cfg *config.Config) string {
	if def, ok := v.ModifierValue(cfg.DefaultModifierPrefix()); ok {
		return def
	}

	if vals != nil {
		if e, ok := vals.Get(v.Name); ok {
			return e.Display
		}
	}

	mods := cfg.Modifiers
	switch {
	case v.HasModifier(mods.Nullable):
		return types.Placeholder(types.Null)
	case v.HasModifier(mods.Array):
		return types.Placeholder(types.Array)
	case v.HasModifier(mods.Object):
		return types.Placeholder(types.Object)
	case v.HasModifier(mods.String):
		return types.Placeholder(types.String)
	}

	return ""
}

// code wraps s in a Markdown code span. Backticks inside s get a longer fence.
func code(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return "`` " + s + " ``"
}
