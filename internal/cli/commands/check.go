package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulomach/prql/internal/cli/output"
	"github.com/paulomach/prql/internal/source"
	"github.com/paulomach/prql/pkg/ast"
	"github.com/spf13/cobra"
)

// Problem is a structural conversion that failed somewhere in a tree.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CheckFile is the result of checking one document.
type CheckFile struct {
	File     string    `json:"file"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
	Problems []Problem `json:"problems"`
}

// CheckOutput is the JSON form of a check run.
type CheckOutput struct {
	Files    []CheckFile `json:"files"`
	Problems int         `json:"problems"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Verify relational pipelines and ranges in syntax trees",
		Long: `Check that every relational pipeline consists only of transforms and
that every take and window range has integer bounds.

Relational pipelines are the top-level pipelines of a query, table
definitions and the pipelines applied by group. Exits non-zero if any
document fails.`,
		Example: `  prqlfmt check query.json
  prqlfmt check queries/*.yaml --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), NewCommandContext(cmd), args)
		},
	}
}

func runCheck(ctx context.Context, cc *CommandContext, paths []string) error {
	inFormat, err := cc.inputFormat()
	if err != nil {
		return err
	}

	out := CheckOutput{Files: make([]CheckFile, 0, len(paths))}
	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		file := CheckFile{File: path, Problems: []Problem{}}
		doc, err := source.Load(path, inFormat)
		if err != nil {
			file.Error = err.Error()
		} else {
			file.Problems = checkTree(doc.Root)
		}
		file.OK = file.Error == "" && len(file.Problems) == 0
		if !file.OK {
			failed++
		}
		out.Problems += len(file.Problems)
		cc.Logger.Debug("checked document", "path", path, "problems", len(file.Problems))
		out.Files = append(out.Files, file)
	}

	if err := printCheckResults(cc.Renderer, out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("check failed: %d of %d file(s) have problems", failed, len(paths))
	}
	return nil
}

// checkTree converts every relational pipeline into transforms and every
// take or window range into integers, collecting each failure.
func checkTree(root *ast.Node) []Problem {
	problems := []Problem{}
	if root == nil {
		return problems
	}

	var visit func(n *ast.Node, path string, parent ast.Item)
	visit = func(n *ast.Node, path string, parent ast.Item) {
		report := func(err error) {
			problems = append(problems, Problem{Path: path, Message: err.Error() + location(n)})
		}

		switch it := n.Item.(type) {
		case *ast.Pipeline:
			if isRelational(n, parent) {
				if _, err := it.IntoTransforms(); err != nil {
					report(err)
				}
			}
		case *ast.Take:
			if _, err := it.Range.IntoInt(); err != nil {
				report(fmt.Errorf("take: %w", err))
			}
		case *ast.Windowed:
			if _, err := it.Window.Range.IntoInt(); err != nil {
				report(fmt.Errorf("window: %w", err))
			}
		}

		for i, child := range ast.Children(n.Item) {
			visit(child, fmt.Sprintf("%s/%s[%d]", path, label(child.Item), i), n.Item)
		}
	}
	visit(root, label(root.Item), nil)

	return problems
}

// isRelational reports whether a pipeline node is evaluated as a relation:
// the document root, a query's top-level pipeline, a table body or the
// per-group pipeline.
func isRelational(n *ast.Node, parent ast.Item) bool {
	switch p := parent.(type) {
	case nil, *ast.Query:
		return true
	case *ast.Table:
		return p.Pipeline == n
	case *ast.Group:
		return p.Pipeline == n
	default:
		return false
	}
}

func label(item ast.Item) string {
	if t, ok := item.(ast.Transform); ok {
		return fmt.Sprintf("%s(%s)", ast.KindTransform, t.TransformKind())
	}
	if item == nil {
		return "?"
	}
	return string(ast.KindOf(item))
}

func location(n *ast.Node) string {
	switch {
	case n.ID != nil && n.Span != nil:
		return fmt.Sprintf(" (id %d, span %d..%d)", *n.ID, n.Span.Start, n.Span.End)
	case n.ID != nil:
		return fmt.Sprintf(" (id %d)", *n.ID)
	case n.Span != nil:
		return fmt.Sprintf(" (span %d..%d)", n.Span.Start, n.Span.End)
	default:
		return ""
	}
}

func printCheckResults(r *output.Renderer, out CheckOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Check Results"))
		r.Println("")
		for _, f := range out.Files {
			status := "ok"
			if !f.OK {
				status = "failed"
			}
			r.Println(output.FormatKeyValue(f.File, status))
			if f.Error != "" {
				r.Println("  " + output.FormatListItem(f.Error))
			}
			for _, p := range f.Problems {
				r.Println("  " + output.FormatListItem(fmt.Sprintf("`%s`: %s", p.Path, p.Message)))
			}
		}
		r.Println("")
		r.Println(output.FormatKeyValue("Problems", fmt.Sprintf("%d", out.Problems)))
	default:
		styles := r.Styles()
		for _, f := range out.Files {
			r.StatusLine(f.OK, f.File)
			if f.Error != "" {
				r.Println("    " + styles.Error.Render(f.Error))
			}
			for _, p := range f.Problems {
				r.Printf("    %s  %s\n", styles.Muted.Render(p.Path), p.Message)
			}
		}
		r.Println("")
		r.Printf("%d file(s) checked, %d problem(s)\n", len(out.Files), out.Problems)
	}
	return nil
}
