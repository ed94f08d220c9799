package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration cannot drive the parser.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultPaths lists the configuration files looked up by Discover, in order.
var DefaultPaths = []string{
	".chartpedia.yaml",
	".chartpedia.yml",
	".chartpedia.json",
	".chartpedia.toml",
}

// Config represents the complete configuration for README generation.
type Config struct {
	Comments  CommentsConfig  `yaml:"comments" toml:"comments"`
	Tags      TagsConfig      `yaml:"tags" toml:"tags"`
	Modifiers ModifiersConfig `yaml:"modifiers" toml:"modifiers"`
	Regexp    RegexpConfig    `yaml:"regexp" toml:"regexp"`
}

// CommentsConfig defines how annotation comments start.
type CommentsConfig struct {
	Format string `yaml:"format" toml:"format"` // Comment prefix (e.g., "##")
}

// TagsConfig defines the annotation tag literals.
type TagsConfig struct {
	Param            string `yaml:"param" toml:"param"`
	Section          string `yaml:"section" toml:"section"`
	DescriptionStart string `yaml:"descriptionStart" toml:"descriptionStart"`
	DescriptionEnd   string `yaml:"descriptionEnd" toml:"descriptionEnd"`
	Skip             string `yaml:"skip" toml:"skip"`
	Extra            string `yaml:"extra" toml:"extra"`
}

// ModifiersConfig defines the modifier literals understood inside [...].
type ModifiersConfig struct {
	Array    string `yaml:"array" toml:"array"`
	Object   string `yaml:"object" toml:"object"`
	String   string `yaml:"string" toml:"string"`
	Nullable string `yaml:"nullable" toml:"nullable"`
	Default  string `yaml:"default" toml:"default"` // Prefix of "default: <value>"
}

// RegexpConfig holds the document-side matching settings.
type RegexpConfig struct {
	ParamsSectionTitle string `yaml:"paramsSectionTitle" toml:"paramsSectionTitle"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Comments: CommentsConfig{Format: "##"},
		Tags: TagsConfig{
			Param:            "@param",
			Section:          "@section",
			DescriptionStart: "@descriptionStart",
			DescriptionEnd:   "@descriptionEnd",
			Skip:             "@skip",
			Extra:            "@extra",
		},
		Modifiers: ModifiersConfig{
			Array:    "array",
			Object:   "object",
			String:   "string",
			Nullable: "nullable",
			Default:  "default",
		},
		Regexp: RegexpConfig{ParamsSectionTitle: "Parameters"},
	}
}

// Load reads a config file and overlays it on the defaults.
// Files ending in .toml are decoded as TOML, everything else as YAML (which
// also covers JSON).
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Discover loads the first of DefaultPaths found in dir. When none exists the
// defaults are returned along with an empty path.
func Discover(fsys afero.Fs, dir string) (*Config, string, error) {
	for _, name := range DefaultPaths {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return nil, "", fmt.Errorf("checking %s: %w", path, err)
		}
		if !exists {
			continue
		}
		cfg, err := Load(fsys, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

// Resolve loads path when set and falls back to Discover in dir otherwise.
func Resolve(fsys afero.Fs, path, dir string) (*Config, string, error) {
	if path == "" {
		return Discover(fsys, dir)
	}
	cfg, err := Load(fsys, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Validate checks that every literal is set and that tags are distinct.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"comments.format", c.Comments.Format},
		{"tags.param", c.Tags.Param},
		{"tags.section", c.Tags.Section},
		{"tags.descriptionStart", c.Tags.DescriptionStart},
		{"tags.descriptionEnd", c.Tags.DescriptionEnd},
		{"tags.skip", c.Tags.Skip},
		{"tags.extra", c.Tags.Extra},
		{"modifiers.array", c.Modifiers.Array},
		{"modifiers.object", c.Modifiers.Object},
		{"modifiers.string", c.Modifiers.String},
		{"modifiers.nullable", c.Modifiers.Nullable},
		{"modifiers.default", c.Modifiers.Default},
		{"regexp.paramsSectionTitle", c.Regexp.ParamsSectionTitle},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, r.name)
		}
	}

	// A tag that shadows another would make lines ambiguous
	seen := make(map[string]string, 6)
	for _, t := range c.tagList() {
		if prev, ok := seen[t.value]; ok {
			return fmt.Errorf("%w: tags.%s and tags.%s are both %q", ErrInvalidConfig, prev, t.name, t.value)
		}
		seen[t.value] = t.name
	}

	if strings.ContainsAny(c.Comments.Format, " \t") {
		return fmt.Errorf("%w: comments.format must not contain whitespace", ErrInvalidConfig)
	}

	return nil
}

type namedTag struct {
	name  string
	value string
}

func (c *Config) tagList() []namedTag {
	return []namedTag{
		{"param", c.Tags.Param},
		{"section", c.Tags.Section},
		{"descriptionStart", c.Tags.DescriptionStart},
		{"descriptionEnd", c.Tags.DescriptionEnd},
		{"skip", c.Tags.Skip},
		{"extra", c.Tags.Extra},
	}
}

// DefaultModifierPrefix returns the literal that introduces a default value
// override inside a modifier list (e.g., "default:").
func (c *Config) DefaultModifierPrefix() string {
	return c.Modifiers.Default + ":"
}
