package docs

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParametersSectionNotFound is returned when a document has no parameters
// heading. The document content is left as it was.
var ErrParametersSectionNotFound = errors.New("parameters section not found")

var (
	// ATX heading: 1-6 '#' followed by whitespace or end of line
	headingRe = regexp.MustCompile(`^(#{1,6})(?:[ \t]|$)`)

	// Fenced code block delimiter (``` or ~~~), up to three spaces of indentation
	fenceRe = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// RenderFunc produces the generated block for a parameters heading at level
// (e.g., "##"). The block may span several lines.
type RenderFunc func(level string) (string, error)

// ParametersSection describes where the parameters section sits in a document.
type ParametersSection struct {
	Title     string // Heading text (e.g., "Parameters")
	Level     string // Heading marker (e.g., "##")
	StartLine int    // Line number of the heading
	EndLine   int    // Line number of the boundary heading, 0 if it runs to EOF
	Content   string // Lines between the heading and the boundary
}

// Rewriter locates and replaces the parameters section of Markdown documents.
type Rewriter struct {
	title    string
	paramsRe *regexp.Regexp
}

// NewRewriter creates a Rewriter for sections titled title.
func NewRewriter(title string) (*Rewriter, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("parameters section title is required")
	}

	re, err := regexp.Compile(`^(#{1,6})[ \t]+` + regexp.QuoteMeta(title) + `[ \t]*$`)
	if err != nil {
		return nil, fmt.Errorf("compiling heading pattern: %w", err)
	}

	return &Rewriter{title: title, paramsRe: re}, nil
}

// Title returns the heading text the Rewriter looks for.
func (r *Rewriter) Title() string {
	return r.title
}

// Find returns the first parameters section in content, or nil.
func (r *Rewriter) Find(content string) *ParametersSection {
	lines, _ := splitLines(content)

	var (
		section *ParametersSection
		body    []string
		fence   fenceTracker
	)

	for i, line := range lines {
		isHeading := !fence.update(line)

		if section == nil {
			if isHeading {
				if m := r.paramsRe.FindStringSubmatch(line); m != nil {
					section = &ParametersSection{Title: r.title, Level: m[1], StartLine: i + 1}
				}
			}
			continue
		}

		if isHeading && isBoundary(line, section.Level) {
			section.EndLine = i + 1
			break
		}
		body = append(body, line)
	}

	if section != nil {
		section.Content = strings.Join(body, "\n")
	}
	return section
}

// Has checks if content has a parameters section.
func (r *Rewriter) Has(content string) bool {
	return r.Find(content) != nil
}

// Rewrite replaces the body of the first parameters section with the block
// produced by render, in a single forward pass. Everything outside the
// section is copied verbatim. If no section exists the original content is
// returned together with ErrParametersSectionNotFound.
func (r *Rewriter) Rewrite(content string, render RenderFunc) (string, error) {
	lines, newline := splitLines(content)
	out := make([]string, 0, len(lines))

	var (
		found       bool
		suppressing bool
		level       string
		fence       fenceTracker
	)

	for _, line := range lines {
		isHeading := !fence.update(line)

		switch {
		case !found && isHeading && r.paramsRe.MatchString(line):
			found = true
			suppressing = true
			level = r.paramsRe.FindStringSubmatch(line)[1]

			block, err := render(level)
			if err != nil {
				return content, fmt.Errorf("rendering parameters: %w", err)
			}

			out = append(out, line)
			if block = strings.TrimRight(strings.ReplaceAll(block, "\r\n", "\n"), "\n"); block != "" {
				out = append(out, strings.Split(block, "\n")...)
			}
			out = append(out, "")

		case suppressing:
			if isHeading && isBoundary(line, level) {
				suppressing = false
				out = append(out, line)
			}

		default:
			out = append(out, line)
		}
	}

	if !found {
		return content, ErrParametersSectionNotFound
	}

	// Section runs to EOF, drop the trailing separator
	if suppressing && len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, newline) + newline, nil
}

// Validate reports problems with the parameters headings in content.
func (r *Rewriter) Validate(content string) []string {
	lines, _ := splitLines(content)

	var (
		issues []string
		count  int
		fence  fenceTracker
	)
	for i, line := range lines {
		if fence.update(line) {
			continue
		}
		if r.paramsRe.MatchString(line) {
			count++
			if count > 1 {
				issues = append(issues, fmt.Sprintf("line %d: duplicate %q heading is not managed", i+1, r.title))
			}
		}
	}

	if count == 0 {
		issues = append(issues, fmt.Sprintf("no %q heading found", r.title))
	}
	if fence.open {
		issues = append(issues, "unterminated code fence")
	}

	return issues
}

// isBoundary reports whether line is a heading at level or shallower.
func isBoundary(line, level string) bool {
	m := headingRe.FindStringSubmatch(line)
	return m != nil && len(m[1]) <= len(level)
}

// splitLines splits content into lines and reports the newline sequence it
// uses. A single trailing newline does not produce an empty last line.
func splitLines(content string) ([]string, string) {
	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}

	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, newline
	}
	return strings.Split(content, "\n"), newline
}

// fenceTracker follows fenced code blocks line by line.
type fenceTracker struct {
	open   bool
	marker string
}

// update consumes line and reports whether it is part of a code fence,
// including the opening and closing delimiters.
func (f *fenceTracker) update(line string) bool {
	m := fenceRe.FindStringSubmatch(line)

	if !f.open {
		if m == nil {
			return false
		}
		f.open = true
		f.marker = m[1]
		return true
	}

	// A closing fence uses the same character, at least as long, and nothing else
	if m != nil && m[1][0] == f.marker[0] && len(m[1]) >= len(f.marker) &&
		strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), m[1][:1])) == "" {
		f.open = false
		f.marker = ""
	}
	return true
}
