package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagSet mirrors the flags the CLI registers that map onto config keys.
func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("input-format", "", "")
	fs.StringP("output", "o", "", "")
	fs.String("style", "", "")
	fs.String("log-level", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("watch", false, "")
	fs.Duration("watch-debounce", 0, "")
	fs.Int("concurrency", 0, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// inTempProject switches to an empty directory, optionally holding a config
// file, for the duration of the test.
func inTempProject(t *testing.T, configYAML string) string {
	t.Helper()
	ResetConfig()
	dir := t.TempDir()
	if configYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "prqlfmt.yaml"), []byte(configYAML), 0o600))
	}
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := inTempProject(t, "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.InputFormat)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, "block", cfg.PipelineStyle)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Watch)
	assert.Equal(t, 200*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantFn  func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name: "file overrides defaults",
			file: "pipeline_style: inline\nwatch_debounce: 1s\nlog_level: debug\nconcurrency: 2\n",
			wantFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "inline", cfg.PipelineStyle)
				assert.Equal(t, time.Second, cfg.WatchDebounce)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, 2, cfg.Concurrency)
			},
		},
		{
			name: "env overrides file",
			file: "output: text\n",
			env:  map[string]string{"PRQLFMT_OUTPUT": "json", "PRQLFMT_WATCH_DEBOUNCE": "50ms"},
			wantFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "json", cfg.OutputFormat)
				assert.Equal(t, 50*time.Millisecond, cfg.WatchDebounce)
			},
		},
		{
			name: "changed flags override env",
			env:  map[string]string{"PRQLFMT_PIPELINE_STYLE": "block", "PRQLFMT_CONCURRENCY": "3"},
			args: []string{"--style=inline", "--watch-debounce=2s", "-v"},
			wantFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "inline", cfg.PipelineStyle)
				assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
				assert.Equal(t, 3, cfg.Concurrency, "unset flag must not override env")
				assert.True(t, cfg.Verbose)
				assert.Equal(t, slog.LevelDebug, cfg.EffectiveLogLevel())
			},
		},
		{
			name:    "invalid style",
			file:    "pipeline_style: sideways\n",
			wantErr: "invalid pipeline_style",
		},
		{
			name:    "invalid output",
			args:    []string{"--output=html"},
			wantErr: "invalid output",
		},
		{
			name:    "invalid log level",
			file:    "log_level: loud\n",
			wantErr: "unable to decode config",
		},
		{
			name:    "invalid duration",
			env:     map[string]string{"PRQLFMT_WATCH_DEBOUNCE": "soon"},
			wantErr: "unable to decode config",
		},
		{
			name:    "zero concurrency",
			args:    []string{"--concurrency=0"},
			wantErr: "concurrency must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempProject(t, tt.file)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig("", newFlagSet(t, tt.args...))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.wantFn(t, cfg)
		})
	}
}

func TestLoadConfig_FindsProjectRootUpward(t *testing.T) {
	root := inTempProject(t, "output: markdown\n")
	nested := filepath.Join(root, "queries")
	require.NoError(t, os.Mkdir(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "prqlfmt.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	inTempProject(t, "")
	other := t.TempDir()
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_format: yaml\n"), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.InputFormat)
	assert.Equal(t, other, cfg.ProjectRoot)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	inTempProject(t, "")

	_, err := LoadConfig("nope.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	assert.Nil(t, GetCurrentConfig(), "failed load must not replace the current config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.WatchDebounce = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "watch_debounce")
}

func TestGetLogger(t *testing.T) {
	t.Run("fallback discards", func(t *testing.T) {
		logger := GetLogger(context.Background())
		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("stored logger", func(t *testing.T) {
		cfg := Default()
		cfg.Verbose = true
		logger := NewLogger(os.Stderr, cfg)
		ctx := WithLogger(context.Background(), logger)

		assert.Same(t, logger, GetLogger(ctx))
		assert.True(t, GetLogger(ctx).Enabled(ctx, slog.LevelDebug))
	})
}
