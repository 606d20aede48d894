package commands

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paulomach/prql/internal/cli/output"
	"github.com/paulomach/prql/internal/source"
	"github.com/paulomach/prql/pkg/ast"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InspectOutput summarizes the shape of one tree.
type InspectOutput struct {
	File       string         `json:"file"`
	Nodes      int            `json:"nodes"`
	Depth      int            `json:"depth"`
	Kinds      map[string]int `json:"kinds"`
	Transforms map[string]int `json:"transforms"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show node counts by kind for a syntax tree",
		Example: `  prqlfmt inspect query.json
  prqlfmt inspect query.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), NewCommandContext(cmd), args[0])
		},
	}
}

func runInspect(_ context.Context, cc *CommandContext, path string) error {
	inFormat, err := cc.inputFormat()
	if err != nil {
		return err
	}
	doc, err := source.Load(path, inFormat)
	if err != nil {
		return err
	}

	stats := inspectTree(doc.Root)
	stats.File = path
	cc.Logger.Debug("inspected document", "path", path, "nodes", stats.Nodes)

	return printInspect(cc.Renderer, stats)
}

// inspectTree counts nodes per kind and per transform keyword and measures
// the depth of the tree. A lone root has depth 1.
func inspectTree(root *ast.Node) InspectOutput {
	stats := InspectOutput{
		Kinds:      map[string]int{},
		Transforms: map[string]int{},
	}

	var visit func(n *ast.Node, depth int)
	visit = func(n *ast.Node, depth int) {
		stats.Nodes++
		stats.Depth = max(stats.Depth, depth)
		stats.Kinds[string(ast.KindOf(n.Item))]++
		if t, ok := n.Item.(ast.Transform); ok {
			stats.Transforms[string(t.TransformKind())]++
		}
		for _, child := range ast.Children(n.Item) {
			visit(child, depth+1)
		}
	}
	if root != nil {
		visit(root, 1)
	}
	return stats
}

type countRow struct {
	name  string
	count int
}

// sortedCounts orders by count, then name.
func sortedCounts(m map[string]int) []countRow {
	rows := make([]countRow, 0, len(m))
	for name, count := range m {
		rows = append(rows, countRow{name, count})
	}
	slices.SortFunc(rows, func(a, b countRow) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return rows
}

func printInspect(r *output.Renderer, stats InspectOutput) error {
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	kinds := newCountTable("Kind", sortedCounts(stats.Kinds), func(s string) string { return s })
	title := cases.Title(language.English)
	transforms := newCountTable("Transform", sortedCounts(stats.Transforms), title.String)

	if mode == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Inspect: "+stats.File))
		r.Println("")
		r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", stats.Nodes)))
		r.Println(output.FormatKeyValue("Depth", fmt.Sprintf("%d", stats.Depth)))
		r.Println("")
		r.Println(kinds.RenderMarkdown())
		if len(stats.Transforms) > 0 {
			r.Println("")
			r.Println(transforms.RenderMarkdown())
		}
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(stats.File))
	r.Printf("%d nodes, depth %d\n\n", stats.Nodes, stats.Depth)
	r.Println(kinds.Render())
	if len(stats.Transforms) > 0 {
		r.Println("")
		r.Println(transforms.Render())
	}
	return nil
}

func newCountTable(header string, rows []countRow, name func(string) string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{header, "Count"})
	for _, row := range rows {
		t.AppendRow(table.Row{name(row.name), row.count})
	}
	return t
}
