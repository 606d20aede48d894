package config

import (
	"fmt"
	"slices"
	"strings"

	intconfig "github.com/paulomach/prql/internal/config"
)

// Validate checks enumerated keys and numeric bounds.
func (c *Config) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"input_format", c.InputFormat, intconfig.InputFormats},
		{"output", c.OutputFormat, intconfig.OutputFormats},
		{"pipeline_style", c.PipelineStyle, intconfig.PipelineStyles},
	}
	for _, chk := range checks {
		if !slices.Contains(chk.allowed, chk.value) {
			return fmt.Errorf("invalid %s %q (expected one of: %s)", chk.key, chk.value, strings.Join(chk.allowed, ", "))
		}
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}
