// Package config handles publication list and global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matsen/cvpubs/internal/classify"
	"gopkg.in/yaml.v3"
)

// Config describes one publication list, stored in cvpubs.yml.
type Config struct {
	Library        string          `yaml:"library" validate:"required"` // ADS library id
	Name           string          `yaml:"name" validate:"required"`    // Canonical display name
	NameVariations []string        `yaml:"name_variations,omitempty" validate:"dive,required"`
	Overrides      OverridesConfig `yaml:"overrides,omitempty"`
	NAuthors       int             `yaml:"n_authors" validate:"min=1"` // Authors shown before "et al."
	Output         string          `yaml:"output" validate:"required"` // LaTeX file to write
}

// OverridesConfig lists DOIs that force a tier, bypassing the authorship
// heuristic.
type OverridesConfig struct {
	Primary   []string `yaml:"primary,omitempty" validate:"dive,required"`
	Secondary []string `yaml:"secondary,omitempty" validate:"dive,required"`
	Tertiary  []string `yaml:"tertiary,omitempty" validate:"dive,required"`
}

const (
	// ConfigFile is the default config file name.
	ConfigFile = "cvpubs.yml"

	// DefaultNAuthors is the number of authors shown before truncation.
	DefaultNAuthors = 4

	// DefaultOutput is where the LaTeX section is written.
	DefaultOutput = "sections/publications.tex"
)

// ErrConfigNotFound is returned when no cvpubs.yml exists in the
// directory tree.
var ErrConfigNotFound = errors.New("no " + ConfigFile + " found")

var validate = validator.New(validator.WithRequiredStructEnabled())

// FindConfig walks up from the given path to find cvpubs.yml.
// Returns the config file path or ErrConfigNotFound.
func FindConfig(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		candidate := filepath.Join(abs, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrConfigNotFound
		}
		abs = parent
	}
}

// Load reads, defaults and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.NAuthors == 0 {
		c.NAuthors = DefaultNAuthors
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// Validate checks required fields and ranges.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// describe turns a validator field error into a message naming the YAML key.
func describe(fe validator.FieldError) string {
	field := fe.StructField()
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i] // NameVariations[0] -> NameVariations
	}
	key := yamlKeys[field]
	if key == "" {
		key = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

var yamlKeys = map[string]string{
	"Library":        "library",
	"Name":           "name",
	"NameVariations": "name_variations",
	"NAuthors":       "n_authors",
	"Output":         "output",
	"Primary":        "overrides.primary",
	"Secondary":      "overrides.secondary",
	"Tertiary":       "overrides.tertiary",
}

// TierOverrides converts the YAML override lists into a tier-indexed set.
func (c *Config) TierOverrides() *classify.Overrides {
	var o classify.Overrides
	o.Set(classify.Primary, c.Overrides.Primary...)
	o.Set(classify.Secondary, c.Overrides.Secondary...)
	o.Set(classify.Tertiary, c.Overrides.Tertiary...)
	return &o
}
