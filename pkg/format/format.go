package format

import (
	"io"
	"strings"

	"github.com/paulomach/prql/pkg/ast"
)

// Fprint writes the source form of item to w.
// Rendering itself cannot fail; an error from w is returned unchanged.
func Fprint(w io.Writer, item ast.Item) error {
	return FprintStyle(w, item, StyleBlock)
}

// FprintStyle is Fprint with an explicit pipeline layout.
func FprintStyle(w io.Writer, item ast.Item, style PipelineStyle) error {
	p := newPrinter(w, style)
	p.formatItem(item)
	return p.Err()
}

// FprintNode writes the source form of the item owned by n.
func FprintNode(w io.Writer, n *ast.Node) error {
	p := newPrinter(w, StyleBlock)
	p.formatNode(n)
	return p.Err()
}

// String returns the source form of item.
func String(item ast.Item) string {
	var b strings.Builder
	_ = Fprint(&b, item)
	return b.String()
}

// InlinePipeline writes pipeline as `(a | b | c)`.
func InlinePipeline(w io.Writer, pipeline *ast.Pipeline) error {
	p := newPrinter(w, StyleInline)
	p.formatInlinePipeline(pipeline)
	return p.Err()
}
