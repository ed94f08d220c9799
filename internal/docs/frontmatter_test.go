package docs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/chartpedia/internal/docs"
	"github.com/saltyorg/chartpedia/internal/stringtest"
)

func TestParseFrontmatter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content  string
		disabled bool
		noFM     bool
		body     string
	}{
		"no frontmatter": {
			content: "# Chart\n",
			noFM:    true,
			body:    "# Chart\n",
		},
		"disabled": {
			content:  stringtest.Lines("---", "chartpedia:", "  disabled: true", "---", "# Chart"),
			disabled: true,
			body:     "# Chart\n",
		},
		"other keys only": {
			content: stringtest.Lines("---", "title: Chart", "---", "body"),
			body:    "body\n",
		},
		"empty": {
			content: stringtest.Lines("---", "---", "body"),
			body:    "body\n",
		},
		"horizontal rule is not frontmatter": {
			content: "----\n",
			noFM:    true,
			body:    "----\n",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fm, body, err := docs.ParseFrontmatter(tc.content)
			require.NoError(t, err)
			assert.Equal(t, tc.body, body)
			if tc.noFM {
				assert.Nil(t, fm)
			} else {
				require.NotNil(t, fm)
			}
			assert.Equal(t, tc.disabled, fm.IsDisabled())
		})
	}
}

func TestParseFrontmatterUnclosed(t *testing.T) {
	t.Parallel()

	_, body, err := docs.ParseFrontmatter("---\ntitle: x\n")
	require.Error(t, err)
	assert.Equal(t, "---\ntitle: x\n", body)
}
