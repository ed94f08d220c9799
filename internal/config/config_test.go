package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/chartpedia/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "##", cfg.Comments.Format)
	assert.Equal(t, "@param", cfg.Tags.Param)
	assert.Equal(t, "Parameters", cfg.Regexp.ParamsSectionTitle)
	assert.Equal(t, "default:", cfg.DefaultModifierPrefix())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		path    string
		content string
		check   func(t *testing.T, cfg *config.Config)
	}{
		"yaml overlays defaults": {
			path:    ".chartpedia.yaml",
			content: "comments:\n  format: \"#\"\ntags:\n  param: \"@value\"\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "#", cfg.Comments.Format)
				assert.Equal(t, "@value", cfg.Tags.Param)
				assert.Equal(t, "@section", cfg.Tags.Section)
			},
		},
		"json": {
			path:    ".chartpedia.json",
			content: `{"regexp": {"paramsSectionTitle": "Values"}}`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "Values", cfg.Regexp.ParamsSectionTitle)
				assert.Equal(t, "@skip", cfg.Tags.Skip)
			},
		},
		"toml": {
			path:    ".chartpedia.toml",
			content: "[tags]\ndescriptionStart = \"@begin\"\ndescriptionEnd = \"@end\"\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "@begin", cfg.Tags.DescriptionStart)
				assert.Equal(t, "@end", cfg.Tags.DescriptionEnd)
				assert.Equal(t, "##", cfg.Comments.Format)
			},
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tc.path, []byte(tc.content), 0o644))

			cfg, err := config.Load(fs, tc.path)
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	_, err := config.Load(fs, "missing.yaml")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "empty-tag.yaml", []byte("tags:\n  skip: \"\"\n"), 0o644))
	_, err = config.Load(fs, "empty-tag.yaml")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "tags.skip")

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("tags: [\n"), 0o644))
	_, err = config.Load(fs, "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate func(cfg *config.Config)
		want   string
	}{
		"duplicate tags": {
			mutate: func(cfg *config.Config) { cfg.Tags.Extra = cfg.Tags.Param },
			want:   "tags.param and tags.extra",
		},
		"blank prefix": {
			mutate: func(cfg *config.Config) { cfg.Comments.Format = "  " },
			want:   "comments.format is required",
		},
		"whitespace in prefix": {
			mutate: func(cfg *config.Config) { cfg.Comments.Format = "# #" },
			want:   "must not contain whitespace",
		},
		"missing title": {
			mutate: func(cfg *config.Config) { cfg.Regexp.ParamsSectionTitle = "" },
			want:   "regexp.paramsSectionTitle",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("none found", func(t *testing.T) {
		t.Parallel()

		cfg, path, err := config.Discover(afero.NewMemMapFs(), "chart")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "chart/.chartpedia.yml", []byte("comments:\n  format: \"#!\"\n"), 0o644))
		require.NoError(t, afero.WriteFile(fs, "chart/.chartpedia.toml", []byte("[comments]\nformat = \"//\"\n"), 0o644))

		cfg, path, err := config.Discover(fs, "chart")
		require.NoError(t, err)
		assert.Equal(t, "chart/.chartpedia.yml", path)
		assert.Equal(t, "#!", cfg.Comments.Format)
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "custom.yaml", []byte("regexp:\n  paramsSectionTitle: Settings\n"), 0o644))

		cfg, path, err := config.Resolve(fs, "custom.yaml", ".")
		require.NoError(t, err)
		assert.Equal(t, "custom.yaml", path)
		assert.Equal(t, "Settings", cfg.Regexp.ParamsSectionTitle)
	})
}
