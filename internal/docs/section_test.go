package docs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/chartpedia/internal/docs"
	"github.com/saltyorg/chartpedia/internal/stringtest"
)

func newRewriter(t *testing.T) *docs.Rewriter {
	t.Helper()

	rw, err := docs.NewRewriter("Parameters")
	require.NoError(t, err)
	return rw
}

// staticBlock renders the same block regardless of level and records the
// level it was called with.
func staticBlock(block string, gotLevel *string) docs.RenderFunc {
	return func(level string) (string, error) {
		if gotLevel != nil {
			*gotLevel = level
		}
		return block, nil
	}
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	block := stringtest.Lines(
		"",
		"### Common",
		"",
		"| Name | Description | Value |",
		"| ---- | ----------- | ----- |",
	)

	tcs := map[string]struct {
		input string
		want  string
	}{
		"replaces table up to next section": {
			input: stringtest.Lines(
				"# Chart",
				"",
				"## Parameters",
				"",
				"| old | table |",
				"",
				"## Resources",
				"",
				"Keep me.",
			),
			want: stringtest.Lines(
				"# Chart",
				"",
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"## Resources",
				"",
				"Keep me.",
			),
		},
		"runs to end of file": {
			input: stringtest.Lines(
				"## Parameters",
				"old",
				"### Old subsection",
				"more old",
			),
			want: stringtest.Lines(
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
			),
		},
		"shallower heading ends section": {
			input: stringtest.Lines(
				"## Parameters",
				"old",
				"# Appendix",
				"kept",
			),
			want: stringtest.Lines(
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"# Appendix",
				"kept",
			),
		},
		"headings in code fences are ignored": {
			input: stringtest.Lines(
				"## Parameters",
				"```yaml",
				"## @param not.a.heading",
				"```",
				"~~~",
				"## Still code",
				"~~~",
				"## License",
				"```",
				"## in a fence outside the section",
				"```",
			),
			want: stringtest.Lines(
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"## License",
				"```",
				"## in a fence outside the section",
				"```",
			),
		},
		"only the first heading is managed": {
			input: stringtest.Lines(
				"## Parameters",
				"first",
				"## Parameters",
				"second",
			),
			want: stringtest.Lines(
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"## Parameters",
				"second",
			),
		},
		"trailing spaces on heading": {
			input: stringtest.Lines(
				"## Parameters  ",
				"## Next",
			),
			want: stringtest.Lines(
				"## Parameters  ",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"## Next",
			),
		},
		"crlf is preserved": {
			input: stringtest.JoinCRLF("## Parameters", "old", "## Next", ""),
			want: stringtest.JoinCRLF(
				"## Parameters",
				"",
				"### Common",
				"",
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
				"",
				"## Next",
				"",
			),
		},
	}

	rw := newRewriter(t)
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := rw.Rewrite(tc.input, staticBlock(block, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)
	render := staticBlock(stringtest.Lines("", "### A", "", "table", "", "### B", "", "table"), nil)

	for _, input := range []string{
		stringtest.Lines("# T", "## Parameters", "stale", "## After", "x"),
		stringtest.Lines("# T", "## Parameters", "stale"),
	} {
		once, err := rw.Rewrite(input, render)
		require.NoError(t, err)
		twice, err := rw.Rewrite(once, render)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestRewritePassesHeadingLevel(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	tcs := map[string]string{
		"# Parameters":    "#",
		"### Parameters":  "###",
		"#### Parameters": "####",
	}

	for heading, want := range tcs {
		var level string
		_, err := rw.Rewrite(heading+"\n", staticBlock("", &level))
		require.NoError(t, err)
		assert.Equal(t, want, level, heading)
	}
}

func TestRewriteDeeperHeadingDoesNotEndSection(t *testing.T) {
	t.Parallel()

	got, err := newRewriter(t).Rewrite(stringtest.Lines(
		"### Parameters",
		"#### Old section",
		"##### Older",
		"### Next",
	), staticBlock("new", nil))
	require.NoError(t, err)
	assert.Equal(t, stringtest.Lines("### Parameters", "new", "", "### Next"), got)
}

func TestRewriteNotFound(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	for _, input := range []string{
		stringtest.Lines("# Chart", "## Values", "text"),
		stringtest.Lines("```", "## Parameters", "```"),
		stringtest.Lines("##Parameters"),
		stringtest.Lines("## Parameters and more"),
		"",
	} {
		got, err := rw.Rewrite(input, staticBlock("x", nil))
		require.ErrorIs(t, err, docs.ErrParametersSectionNotFound)
		assert.Equal(t, input, got)
	}
}

func TestRewriteRenderError(t *testing.T) {
	t.Parallel()

	input := stringtest.Lines("## Parameters", "old")
	boom := errors.New("boom")

	got, err := newRewriter(t).Rewrite(input, func(string) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, input, got)
}

func TestCustomTitle(t *testing.T) {
	t.Parallel()

	rw, err := docs.NewRewriter("Values (v1.*)")
	require.NoError(t, err)

	got, err := rw.Rewrite(stringtest.Lines("## Values (v1.*)", "old"), staticBlock("new", nil))
	require.NoError(t, err)
	assert.Equal(t, stringtest.Lines("## Values (v1.*)", "new"), got)

	_, err = rw.Rewrite("## Values (v1.0)\n", staticBlock("new", nil))
	require.ErrorIs(t, err, docs.ErrParametersSectionNotFound)

	_, err = docs.NewRewriter("  ")
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	section := rw.Find(stringtest.Lines(
		"# Chart",
		"## Parameters",
		"line one",
		"### Sub",
		"## Next",
	))
	require.NotNil(t, section)
	assert.Equal(t, "##", section.Level)
	assert.Equal(t, 2, section.StartLine)
	assert.Equal(t, 5, section.EndLine)
	assert.Equal(t, "line one\n### Sub", section.Content)

	section = rw.Find("## Parameters\nrest\n")
	require.NotNil(t, section)
	assert.Zero(t, section.EndLine)

	assert.Nil(t, rw.Find("# Nothing\n"))
	assert.False(t, rw.Has("# Nothing\n"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	assert.Empty(t, rw.Validate("## Parameters\n"))
	assert.Equal(t, []string{`no "Parameters" heading found`}, rw.Validate("# Title\n"))
	assert.Equal(t,
		[]string{`line 3: duplicate "Parameters" heading is not managed`},
		rw.Validate(stringtest.Lines("## Parameters", "x", "## Parameters")),
	)
	assert.Equal(t,
		[]string{"unterminated code fence"},
		rw.Validate(stringtest.Lines("## Parameters", "```", "code")),
	)
}
