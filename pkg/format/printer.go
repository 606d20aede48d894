// Package format renders PRQL syntax trees back to source text.
//
// The output is used for diagnostics and snapshot tests, so whitespace and
// line breaks are part of the contract.
package format

import (
	"io"
	"strings"
)

const indentSize = 2

// PipelineStyle selects how pipelines are laid out.
type PipelineStyle string

// PipelineStyle values.
const (
	// StyleBlock puts each stage of a multi-stage pipeline on its own
	// indented line.
	StyleBlock PipelineStyle = "block"
	// StyleInline joins stages with " | " on a single line.
	StyleInline PipelineStyle = "inline"
)

// Printer renders items to an io.Writer.
// The first write error is kept; every later write is skipped.
type Printer struct {
	output io.Writer
	style  PipelineStyle
	err    error
}

func newPrinter(w io.Writer, style PipelineStyle) *Printer {
	if style == "" {
		style = StyleBlock
	}
	return &Printer{
		output: w,
		style:  style,
	}
}

// Err returns the first error reported by the underlying writer.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.output, s)
}

func (p *Printer) writeln() {
	p.write("\n")
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat(" ", indentSize))
}

func (p *Printer) space() {
	p.write(" ")
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			}
		}
	}
}
