package format

import (
	"github.com/paulomach/prql/pkg/ast"
)

// formatQuery writes the dialect header and the top-level nodes.
// Stages of a top-level pipeline are flattened one per line.
func (p *Printer) formatQuery(q *ast.Query) {
	p.write("prql dialect: ")
	p.write(q.Dialect.String())
	p.writeln()
	p.writeln()

	for _, n := range q.Nodes {
		if n == nil {
			continue
		}
		if pipeline, ok := n.Item.(*ast.Pipeline); ok {
			for _, stage := range pipeline.Nodes {
				p.formatNode(stage)
				p.writeln()
			}
			continue
		}
		p.formatNode(n)
	}
}

func (p *Printer) formatPipeline(pipeline *ast.Pipeline) {
	if p.style == StyleInline {
		p.formatInlinePipeline(pipeline)
		return
	}

	p.write("(")
	switch len(pipeline.Nodes) {
	case 0:
	case 1:
		p.formatNode(pipeline.Nodes[0])
	default:
		for _, n := range pipeline.Nodes {
			p.writeln()
			p.writeIndent()
			p.formatNode(n)
		}
		p.writeln()
	}
	p.write(")")
}

func (p *Printer) formatInlinePipeline(pipeline *ast.Pipeline) {
	p.write("(")
	p.formatList(len(pipeline.Nodes), func(i int) { p.formatNode(pipeline.Nodes[i]) }, " | ", false)
	p.write(")")
}

// formatTransform only names the transform.
func (p *Printer) formatTransform(t ast.Transform) {
	p.write(string(t.TransformKind()))
	p.write(" <unimplemented>")
}

func (p *Printer) formatFuncDef(def *ast.FuncDef) {
	p.write("func ")
	p.write(string(def.Name))
	for _, param := range def.PositionalParams {
		p.space()
		p.write(string(param.Name))
	}
	for _, param := range def.NamedParams {
		p.space()
		p.write(string(param.Name))
	}
	p.write(" = ")
	p.formatNode(def.Body)
	p.writeln()
	p.writeln()
}

func (p *Printer) formatTable(t *ast.Table) {
	p.write("table ")
	p.write(t.Name)
	p.write(" = ")
	p.formatNode(t.Pipeline)
	p.writeln()
	p.writeln()
}
