package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/paulomach/prql/internal/cli/output"
	"github.com/paulomach/prql/internal/source"
	"github.com/paulomach/prql/pkg/format"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RenderOutput is the JSON form of one rendered document.
type RenderOutput struct {
	File string `json:"file"`
	Text string `json:"text"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render syntax tree documents as PRQL source",
		Long: `Render one or more syntax tree documents (JSON or YAML) back to PRQL text.

Documents are decoded and rendered concurrently; output keeps argument order.

Output adapts to environment:
  - Terminal: plain PRQL
  - Piped/Scripted: Markdown with code blocks`,
		Example: `  # Render a tree
  prqlfmt render query.json

  # Put pipelines on one line
  prqlfmt render query.yaml --style inline

  # Re-render whenever the files change
  prqlfmt render a.json b.json --watch

  # Machine-readable output
  prqlfmt render query.json --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if cc.Cfg.Watch {
				return watchRender(cmd.Context(), cc, args)
			}
			return runRender(cmd.Context(), cc, args)
		},
	}

	cmd.Flags().String("style", "", "Pipeline layout (block|inline)")
	cmd.Flags().Bool("watch", false, "Re-render when an input file changes")
	cmd.Flags().Duration("watch-debounce", 0, "Quiet period before re-rendering a changed file")
	cmd.Flags().Int("concurrency", 0, "Maximum documents rendered at once")

	_ = cmd.RegisterFlagCompletionFunc("style", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"block", "inline"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(ctx context.Context, cc *CommandContext, paths []string) error {
	results, err := renderDocuments(ctx, cc, paths)
	if err != nil {
		return err
	}
	return printRenderResults(cc.Renderer, results)
}

// renderDocuments loads and renders paths concurrently, bounded by the
// configured concurrency. Results are in argument order.
func renderDocuments(ctx context.Context, cc *CommandContext, paths []string) ([]RenderOutput, error) {
	inFormat, err := cc.inputFormat()
	if err != nil {
		return nil, err
	}
	style := cc.pipelineStyle()

	results := make([]RenderOutput, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cc.Cfg.Concurrency, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := source.Load(path, inFormat)
			if err != nil {
				return err
			}

			var b strings.Builder
			if err := format.FprintStyle(&b, doc.Root.Item, style); err != nil {
				return fmt.Errorf("failed to render %s: %w", path, err)
			}
			cc.Logger.Debug("rendered document", "path", path, "bytes", b.Len())

			results[i] = RenderOutput{File: path, Text: b.String()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printRenderResults(r *output.Renderer, results []RenderOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case output.ModeMarkdown:
		for _, res := range results {
			r.Println(output.FormatHeader(2, res.File))
			r.Println("")
			r.Println(output.FormatCodeBlock("prql", res.Text))
			r.Println("")
		}
	default:
		// A "#" line is a PRQL comment, so the output stays valid source.
		styles := r.Styles()
		for _, res := range results {
			if len(results) > 1 {
				r.Println(styles.Muted.Render("# " + res.File))
			}
			r.Printf("%s", res.Text)
			if !strings.HasSuffix(res.Text, "\n") {
				r.Println("")
			}
		}
	}
	return nil
}

// watchRender renders paths once, then again each time one changes, until
// interrupted.
func watchRender(ctx context.Context, cc *CommandContext, paths []string) error {
	if err := runRender(ctx, cc, paths); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := source.NewWatcher(paths, cc.Cfg.WatchDebounce, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	cc.Renderer.Errorf("Watching %d file(s) for changes. Press Ctrl+C to stop.\n", len(paths))

	return w.Run(ctx, func(path string) {
		results, err := renderDocuments(ctx, cc, []string{path})
		if err != nil {
			cc.Logger.Error("render failed", "path", path, "error", err)
			return
		}
		if err := printRenderResults(cc.Renderer, results); err != nil {
			cc.Logger.Error("failed to write output", "error", err)
		}
	})
}
