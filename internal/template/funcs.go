package template

import (
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/saltyorg/chartpedia/internal/table"
)

// ParameterHeadings are the columns of every parameters table.
var ParameterHeadings = []table.Heading{
	{Name: "Name"},
	{Name: "Description"},
	{Name: "Value"},
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		// String functions
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"title":     titleCaser.String,
		"trimSpace": strings.TrimSpace,
		"join":      strings.Join,
		"indent":    indent,
		"humanize":  humanize,

		// Markdown functions
		"code":    code,
		"heading": heading,
		"table":   parametersTable,
	}
}

// indent adds n spaces of indentation to each line.
func indent(n int, s string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// humanize turns a chart name like "my-chart_name" into "My Chart Name".
func humanize(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// heading renders a section title. Without a level the title is emphasized
// instead, so it never competes with the parameters heading.
func heading(level, name string) string {
	if level == "" {
		return "**" + name + "**"
	}
	return level + " " + name
}

// parametersTable renders rows as a Name | Description | Value table.
func parametersTable(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Description, r.Value})
	}
	return table.Render(ParameterHeadings, cells)
}
