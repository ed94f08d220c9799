package github

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/saltyorg/chartpedia/internal/generator"
	"github.com/saltyorg/chartpedia/internal/lint"
	"github.com/saltyorg/chartpedia/internal/table"
)

// maxListed is the number of findings listed before collapsing into <details>.
const maxListed = 10

// statusIcons decorates generator statuses in the summary.
var statusIcons = map[generator.Status]string{
	generator.StatusUpdated:   "✅ Updated",
	generator.StatusUnchanged: "➖ Unchanged",
	generator.StatusNotFound:  "⚠️ Parameters heading not found",
	generator.StatusDisabled:  "⏭️ Disabled",
}

// Summary collects the results of a run for the GitHub step summary.
type Summary struct {
	Generate *generator.Result
	Lint     *lint.Result

	// Check is set when gen ran without writing (--check)
	Check bool
}

// Enabled reports whether a step summary file is available.
func Enabled() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" && os.Getenv("GITHUB_STEP_SUMMARY") != ""
}

// WriteGitHubSummary appends the summary to GITHUB_STEP_SUMMARY if running
// in GitHub Actions.
func (s *Summary) WriteGitHubSummary(fsys afero.Fs) error {
	if !Enabled() {
		return nil
	}

	f, err := fsys.OpenFile(os.Getenv("GITHUB_STEP_SUMMARY"), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(s.Markdown()); err != nil {
		return fmt.Errorf("writing summary file: %w", err)
	}
	return nil
}

// Markdown renders the summary.
func (s *Summary) Markdown() string {
	var sb strings.Builder

	sb.WriteString("## 📚 Chart README Results\n\n")

	if r := s.Generate; r != nil {
		status := statusIcons[r.Status]
		if s.Check && r.Stale() {
			status = "❌ Out of date"
		}

		sb.WriteString(table.Render(
			[]table.Heading{{Name: "Metric"}, {Name: "Value"}},
			[][]string{
				{"Values file", "`" + r.ValuesPath + "`"},
				{"README", "`" + r.ReadmePath + "`"},
				{"Status", status},
				{"Sections", strconv.Itoa(r.Sections)},
				{"Parameters", strconv.Itoa(r.Values)},
				{"Rendered", strconv.Itoa(r.Rendered)},
			},
		))
		sb.WriteString("\n\n")

		if s.Check && r.Diff != "" {
			sb.WriteString("<details>\n<summary><strong>README diff</strong></summary>\n\n")
			sb.WriteString("```diff\n")
			sb.WriteString(strings.TrimRight(r.Diff, "\n"))
			sb.WriteString("\n```\n\n</details>\n\n")
		}
	}

	if r := s.Lint; r != nil {
		if !r.HasIssues() {
			sb.WriteString("### 🔍 Lint\n\nNo issues found.\n\n")
			return sb.String()
		}

		sb.WriteString(fmt.Sprintf("### 🔍 Lint (%d issues)\n\n", r.TotalIssues()))
		writeFindings(&sb, "Undocumented values", r.Undocumented)
		writeFindings(&sb, "Annotated values missing from values file", r.Missing)
		writeFindings(&sb, "Duplicate annotations", r.Duplicates)
	}

	return sb.String()
}

func writeFindings(sb *strings.Builder, title string, findings []lint.Finding) {
	if len(findings) == 0 {
		return
	}

	collapse := len(findings) > maxListed
	if collapse {
		sb.WriteString("<details>\n")
		sb.WriteString(fmt.Sprintf("<summary><strong>%s (%d)</strong></summary>\n\n", title, len(findings)))
	} else {
		sb.WriteString(fmt.Sprintf("**%s (%d)**\n\n", title, len(findings)))
	}

	for _, f := range findings {
		sb.WriteString(fmt.Sprintf("- `%s` (line %d)\n", f.Name, f.Line))
	}
	sb.WriteString("\n")

	if collapse {
		sb.WriteString("</details>\n\n")
	}
}
