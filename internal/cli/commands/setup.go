package commands

import (
	"log/slog"

	"github.com/paulomach/prql/internal/cli/config"
	"github.com/paulomach/prql/internal/cli/output"
	"github.com/paulomach/prql/internal/source"
	"github.com/paulomach/prql/pkg/format"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the loaded configuration
// and the logger stored in the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the current configuration, or defaults when none was
// loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// inputFormat is the configured document format.
func (c *CommandContext) inputFormat() (source.Format, error) {
	return source.ParseFormat(c.Cfg.InputFormat)
}

// pipelineStyle is the configured pipeline layout.
func (c *CommandContext) pipelineStyle() format.PipelineStyle {
	if c.Cfg.PipelineStyle == string(format.StyleInline) {
		return format.StyleInline
	}
	return format.StyleBlock
}
