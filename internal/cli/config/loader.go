package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	intconfig "github.com/paulomach/prql/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// flagKeys maps flag names whose config key is not simply the snake_case
// form of the flag.
var flagKeys = map[string]string{
	"style": "pipeline_style",
}

var (
	mu             sync.RWMutex
	configFileUsed string
	currentConfig  *Config
)

// ResetConfig forgets the loaded configuration. Used for testing.
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags the user actually set take part.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"input_format":   intconfig.DefaultInputFormat,
		"output":         intconfig.DefaultOutput,
		"pipeline_style": intconfig.DefaultPipelineStyle,
		"log_level":      intconfig.DefaultLogLevel,
		"verbose":        false,
		"watch":          false,
		"watch_debounce": intconfig.DefaultWatchDebounce.String(),
		"concurrency":    intconfig.DefaultConcurrency,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, else the nearest project root
	cwd, _ := os.Getwd()
	projectRoot := cwd
	path := cfgFile
	if path == "" {
		if root := intconfig.FindProjectRoot(cwd); root != "" {
			projectRoot = root
			path = intconfig.FindConfigFile(root)
		}
	} else if abs, err := filepath.Abs(path); err == nil {
		projectRoot = filepath.Dir(abs)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment: PRQLFMT_PIPELINE_STYLE -> pipeline_style
	if err := k.Load(env.Provider(intconfig.EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, intconfig.EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode. Durations and slog levels arrive as strings.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	configFileUsed = path
	currentConfig = &cfg
	mu.Unlock()

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	mu.RLock()
	defer mu.RUnlock()
	return configFileUsed
}

// GetCurrentConfig returns the configuration from the last successful
// LoadConfig, or nil.
func GetCurrentConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return currentConfig
}

// NewLogger builds the CLI logger: text records on w at the configured level.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.EffectiveLogLevel(),
	}))
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
