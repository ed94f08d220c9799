// Package lint cross-references parsed annotations with the values document.
package lint

import (
	"strings"

	"github.com/saltyorg/chartpedia/internal/parser"
	"github.com/saltyorg/chartpedia/internal/values"
)

// Finding is a single lint problem tied to a values file line.
type Finding struct {
	Name string
	Line int
}

// Result holds the results of all lint checks.
type Result struct {
	Undocumented []Finding // Values without any annotation
	Missing      []Finding // Validated annotations with no matching value
	Duplicates   []Finding // Repeated annotations, one per extra occurrence
}

// TotalIssues returns the total number of issues found.
func (r *Result) TotalIssues() int {
	return len(r.Undocumented) + len(r.Missing) + len(r.Duplicates)
}

// HasIssues returns true if any issues were found.
func (r *Result) HasIssues() bool {
	return r.TotalIssues() > 0
}

// Check compares metadata against vals.
//
// A value is documented when it, or any of its ancestors, carries a param,
// skip or extra annotation; only leaves are reported. Annotations whose
// ShouldValidate flag is set must name a path that exists in vals.
func Check(md *parser.Metadata, vals *values.Values) *Result {
	result := &Result{
		Undocumented: []Finding{},
		Missing:      []Finding{},
		Duplicates:   []Finding{},
	}

	documented := make(map[string]bool, len(md.Values))
	for i := range md.Values {
		v := &md.Values[i]
		if documented[v.Name] {
			result.Duplicates = append(result.Duplicates, Finding{Name: v.Name, Line: v.Line})
		}
		documented[v.Name] = true

		if v.ShouldValidate && !vals.Has(v.Name) {
			result.Missing = append(result.Missing, Finding{Name: v.Name, Line: v.Line})
		}
	}

	for _, e := range vals.Leaves() {
		if !isDocumented(e.Path, documented) {
			result.Undocumented = append(result.Undocumented, Finding{Name: e.Path, Line: e.Line})
		}
	}

	return result
}

// isDocumented checks path and each of its ancestors ("a.b[0].c" -> "a.b[0]" -> "a.b" -> "a").
func isDocumented(path string, documented map[string]bool) bool {
	for path != "" {
		if documented[path] {
			return true
		}
		i := strings.LastIndexAny(path, ".[")
		if i < 0 {
			return false
		}
		path = path[:i]
	}
	return false
}
