// Package config provides configuration management for the prqlfmt CLI.
//
// Values are layered from defaults, the project config file, PRQLFMT_*
// environment variables and explicitly set flags, in increasing order of
// precedence.
package config

import (
	"log/slog"
	"time"

	intconfig "github.com/paulomach/prql/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	InputFormat   string        `koanf:"input_format"`
	OutputFormat  string        `koanf:"output"`
	PipelineStyle string        `koanf:"pipeline_style"`
	LogLevel      slog.Level    `koanf:"log_level"`
	Verbose       bool          `koanf:"verbose"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
	Concurrency   int           `koanf:"concurrency"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		InputFormat:   intconfig.DefaultInputFormat,
		OutputFormat:  intconfig.DefaultOutput,
		PipelineStyle: intconfig.DefaultPipelineStyle,
		LogLevel:      slog.LevelInfo,
		WatchDebounce: intconfig.DefaultWatchDebounce,
		Concurrency:   intconfig.DefaultConcurrency,
	}
}

// EffectiveLogLevel is the configured level, lowered to debug by Verbose.
func (c *Config) EffectiveLogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return c.LogLevel
}
