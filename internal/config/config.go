// Package config loads the configuration of the gridlayout command, from
// defaults, an optional YAML file, GRIDLAYOUT_* environment variables and
// command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/text"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables, as in
// GRIDLAYOUT_VIEWPORT_WIDTH.
const EnvPrefix = "GRIDLAYOUT"

// Config is the configuration of the gridlayout command.
type Config struct {
	Logger   logger.Config  `mapstructure:"logger" yaml:"logger"`
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Text     TextConfig     `mapstructure:"text" yaml:"text"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	// Concurrency is the number of input files processed in parallel.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// ViewportConfig is the area in which documents are laid out.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"` // 0 for an indefinite height
}

// TextConfig holds the metrics of the monospace font used to measure
// text, as ratios of the font size.
type TextConfig struct {
	Advance float64 `mapstructure:"advance" yaml:"advance"`
	Ascent  float64 `mapstructure:"ascent" yaml:"ascent"`
	Descent float64 `mapstructure:"descent" yaml:"descent"`
}

// OutputConfig selects the encoding of the results.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // json or yaml
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	// -- Viewport --
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 0)

	// -- Text --
	v.SetDefault("text.advance", text.DefaultMetrics.Advance)
	v.SetDefault("text.ascent", text.DefaultMetrics.Ascent)
	v.SetDefault("text.descent", text.DefaultMetrics.Descent)

	// -- Output --
	v.SetDefault("output.format", "json")

	v.SetDefault("concurrency", 4)
}

// Load reads the configuration into v. If file is empty, an optional
// gridlayout.yaml in the working directory is used.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gridlayout")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no config file: use defaults, environment and flags
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values which can't be fixed by the layout.
func (c *Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport size must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Text.Advance <= 0 {
		return errors.New("text.advance must be positive")
	}
	if c.Text.Ascent < 0 || c.Text.Descent < 0 {
		return errors.New("text.ascent and text.descent must not be negative")
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("output.format must be json or yaml, got %q", c.Output.Format)
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be a positive integer")
	}
	return nil
}

// Metrics returns the text metrics to use for measurement.
func (c *Config) Metrics() text.Metrics {
	return text.Metrics{Advance: c.Text.Advance, Ascent: c.Text.Ascent, Descent: c.Text.Descent}
}
