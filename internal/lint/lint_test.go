package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/chartpedia/internal/config"
	"github.com/saltyorg/chartpedia/internal/lint"
	"github.com/saltyorg/chartpedia/internal/parser"
	"github.com/saltyorg/chartpedia/internal/stringtest"
	"github.com/saltyorg/chartpedia/internal/values"
)

func check(t *testing.T, lines ...string) *lint.Result {
	t.Helper()

	input := stringtest.Lines(lines...)

	p, err := parser.New(config.Default())
	require.NoError(t, err)
	md, err := p.ParseString(input)
	require.NoError(t, err)

	vals, err := values.Parse([]byte(input))
	require.NoError(t, err)

	return lint.Check(md, vals)
}

func TestCheckClean(t *testing.T) {
	t.Parallel()

	result := check(t,
		"## @section Common",
		"## @param replicaCount Replicas",
		"replicaCount: 1",
		"## @param image Image settings",
		"image:",
		"  repository: nginx",
		"  tag: latest",
		"## @skip internal",
		"internal:",
		"  debug: false",
		"## @extra ingress.hosts [array] Rendered by a helper",
		"## @param env Extra environment",
		"env:",
		"  - name: A",
		"    value: b",
	)

	assert.False(t, result.HasIssues())
	assert.Zero(t, result.TotalIssues())
}

func TestCheckFindings(t *testing.T) {
	t.Parallel()

	result := check(t,
		"## @param replicaCount Replicas",
		"replicaCount: 1",
		"## @param replicaCount Again",
		"## @param removed.value Gone from values",
		"## @skip also.gone",
		"service:",
		"  type: ClusterIP",
		"  ports: {}",
	)

	assert.Equal(t, []lint.Finding{
		{Name: "service.type", Line: 7},
		{Name: "service.ports", Line: 8},
	}, result.Undocumented)
	assert.Equal(t, []lint.Finding{{Name: "removed.value", Line: 4}}, result.Missing)
	assert.Equal(t, []lint.Finding{{Name: "replicaCount", Line: 3}}, result.Duplicates)
	assert.Equal(t, 4, result.TotalIssues())
	assert.True(t, result.HasIssues())
}
