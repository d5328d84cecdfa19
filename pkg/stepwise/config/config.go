// Package config loads parser settings from YAML and STEPWISE_*
// environment variables and assembles the matching components.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/cognicore/stepwise/pkg/stepwise/internalerr"
)

const (
	StrategyAdvanced = "advanced"
	StrategyRegex    = "regex"

	AnnotatorProse = "prose"
	AnnotatorRules = "rules"
)

// Config holds all parser settings.
type Config struct {
	Strategy         string      `mapstructure:"strategy" yaml:"strategy"`
	Annotator        string      `mapstructure:"annotator" yaml:"annotator"`
	SplitAtomicSteps bool        `mapstructure:"split_atomic_steps" yaml:"split_atomic_steps"`
	Sanitize         bool        `mapstructure:"sanitize" yaml:"sanitize"`
	LexiconPath      string      `mapstructure:"lexicon_path" yaml:"lexicon_path"`
	StoplistPath     string      `mapstructure:"stoplist_path" yaml:"stoplist_path"`
	Temperature      Temperature `mapstructure:"temperature" yaml:"temperature"`
	Concurrency      int         `mapstructure:"concurrency" yaml:"concurrency"`
	Log              Log         `mapstructure:"log" yaml:"log"`
}

// Temperature configures the plausibility filter for oven readings.
type Temperature struct {
	EnforceBounds bool `mapstructure:"enforce_bounds" yaml:"enforce_bounds"`
	MinF          int  `mapstructure:"min_f" yaml:"min_f"`
	MaxF          int  `mapstructure:"max_f" yaml:"max_f"`
}

// Log configures the logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strategy:         StrategyAdvanced,
		Annotator:        AnnotatorProse,
		SplitAtomicSteps: true,
		Sanitize:         true,
		Temperature:      Temperature{EnforceBounds: true, MinF: 50, MaxF: 600},
		Concurrency:      4,
		Log:              Log{Level: "info", Format: "json"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("annotator", d.Annotator)
	v.SetDefault("split_atomic_steps", d.SplitAtomicSteps)
	v.SetDefault("sanitize", d.Sanitize)
	v.SetDefault("lexicon_path", d.LexiconPath)
	v.SetDefault("stoplist_path", d.StoplistPath)
	v.SetDefault("temperature.enforce_bounds", d.Temperature.EnforceBounds)
	v.SetDefault("temperature.min_f", d.Temperature.MinF)
	v.SetDefault("temperature.max_f", d.Temperature.MaxF)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the config file at path from fs (skipped when path is empty),
// applies STEPWISE_* environment overrides and validates the result.
func Load(fs afero.Fs, path string) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)
	v.SetEnvPrefix("STEPWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting as ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), internalerr.ErrInvalidConfig)
	}
	switch c.Strategy {
	case StrategyAdvanced, StrategyRegex:
	default:
		return invalid("unknown strategy %q", c.Strategy)
	}
	switch c.Annotator {
	case AnnotatorProse, AnnotatorRules:
	default:
		return invalid("unknown annotator %q", c.Annotator)
	}
	if c.Concurrency < 1 {
		return invalid("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Temperature.EnforceBounds && c.Temperature.MinF >= c.Temperature.MaxF {
		return invalid("temperature bounds [%d, %d] are empty", c.Temperature.MinF, c.Temperature.MaxF)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return invalid("log format %q", c.Log.Format)
	}
	return nil
}
