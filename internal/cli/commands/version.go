package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/paulomach/prql/internal/cli/output"
	"github.com/spf13/cobra"
)

// VersionOutput is the JSON form of the version command.
type VersionOutput struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display prqlfmt version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return json.NewEncoder(r.Writer()).Encode(VersionOutput{Version: version, GoVersion: runtime.Version()})
			}
			_, _ = fmt.Fprintf(r.Writer(), "prqlfmt v%s\n", version)
			_, _ = fmt.Fprintf(r.Writer(), "PRQL syntax tree renderer built with %s\n", runtime.Version())
			return nil
		},
	}
}
