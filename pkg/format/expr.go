package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/paulomach/prql/pkg/ast"
)

// dumper prints Windowed internals. Pointer addresses are hidden so the
// output is stable across runs.
var dumper = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

func (p *Printer) formatNode(n *ast.Node) {
	if n == nil {
		return
	}
	p.formatItem(n.Item)
}

func (p *Printer) formatItem(item ast.Item) {
	switch it := item.(type) {
	case nil:
		return
	case ast.Empty:
		p.write("()")
	case ast.Ident:
		p.write(string(it))
	case *ast.Literal:
		p.formatLiteral(it)
	case *ast.Assign:
		p.write(string(it.Name))
		p.write(" = ")
		p.formatNode(it.Expr)
	case *ast.NamedArg:
		p.write(string(it.Name))
		p.write(":")
		p.formatNode(it.Expr)
	case *ast.Query:
		p.formatQuery(it)
	case *ast.Pipeline:
		p.formatPipeline(it)
	case ast.Transform:
		p.formatTransform(it)
	case ast.List:
		p.formatListItem(it)
	case *ast.Range:
		p.formatRange(it)
	case *ast.Binary:
		p.formatBinary(it)
	case *ast.Unary:
		p.formatUnary(it)
	case *ast.FuncDef:
		p.formatFuncDef(it)
	case *ast.FuncCall:
		p.formatFuncCall(it)
	case *ast.FuncCurry:
		p.write("(func ? -> ?)")
	case *ast.Type:
		p.write("<")
		p.formatTy(it.Ty)
		p.write(">")
	case *ast.Table:
		p.formatTable(it)
	case ast.SString:
		p.formatInterpolation("s", it)
	case ast.FString:
		p.formatInterpolation("f", it)
	case *ast.Interval:
		p.write(strconv.FormatInt(it.N, 10))
		p.write(it.Unit)
	case *ast.Windowed:
		// Full window syntax is not reconstructed; show the wrapped expression.
		p.write(dumper.Sprintf("%#v", it.Expr))
	default:
		panic(fmt.Sprintf("format: unexpected item %T", item))
	}
}

func (p *Printer) formatLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LiteralNull:
		p.write("null")
	case ast.LiteralInteger:
		p.write(strconv.FormatInt(lit.Integer, 10))
	case ast.LiteralFloat:
		p.write(formatFloat(lit.Float))
	case ast.LiteralBoolean:
		p.write(strconv.FormatBool(lit.Boolean))
	case ast.LiteralString:
		p.write(quoteString(lit.Text))
	case ast.LiteralDate, ast.LiteralTime, ast.LiteralTimestamp:
		p.write("@")
		p.write(lit.Text)
	case ast.LiteralValueAndUnit:
		p.write(strconv.FormatInt(lit.Integer, 10))
		p.write(lit.Unit)
	default:
		p.write(lit.Text)
	}
}

// formatFloat never uses exponent notation and always keeps a decimal
// point, so the text reads back as a float.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func (p *Printer) formatListItem(list ast.List) {
	switch len(list) {
	case 0:
		p.write("[]")
	case 1:
		p.write("[")
		p.formatNode(list[0])
		p.write("]")
	default:
		p.write("[")
		p.writeln()
		for _, n := range list {
			p.writeIndent()
			p.formatNode(n)
			p.write(",")
			p.writeln()
		}
		p.write("]")
	}
}

func (p *Printer) formatRange(r *ast.Range) {
	p.formatNode(r.Start)
	p.write("..")
	p.formatNode(r.End)
}

func (p *Printer) formatBinary(b *ast.Binary) {
	p.formatNode(b.Left)
	p.space()
	p.write(b.Op.String())
	p.space()
	p.formatNode(b.Right)
}

func (p *Printer) formatUnary(u *ast.Unary) {
	switch u.Op {
	case ast.Neg:
		p.write("!")
	case ast.Not:
		p.write("not ")
	default:
		p.write(u.Op.String())
	}
	p.formatNode(u.Expr)
}

// formatFuncCall writes named arguments before positional ones, each in
// the order it was supplied.
func (p *Printer) formatFuncCall(fn *ast.FuncCall) {
	p.formatNode(fn.Name)

	for name, arg := range fn.NamedArgs.All() {
		p.space()
		p.write(string(name))
		p.write(": ")
		p.formatNode(arg)
	}
	for _, arg := range fn.Args {
		p.space()
		p.formatNode(arg)
	}
}

func (p *Printer) formatInterpolation(prefix string, parts []ast.InterpolateItem) {
	p.write(prefix)
	p.write(`"`)
	for _, part := range parts {
		switch pt := part.(type) {
		case ast.InterpolateString:
			p.write(string(pt))
		case ast.InterpolateExpr:
			p.write("{")
			p.formatNode(pt.Expr)
			p.write("}")
		}
	}
	p.write(`"`)
}

func (p *Printer) formatTy(ty ast.Ty) {
	switch t := ty.(type) {
	case nil, ast.TyUnknown:
		p.write("?")
	case ast.TyLiteral:
		p.write(string(t))
	case ast.TyNamed:
		p.write(string(t))
	case *ast.TyParameterized:
		p.formatTy(t.Base)
		p.write("<")
		p.formatNode(t.Param)
		p.write(">")
	case ast.TyAnyOf:
		p.formatList(len(t), func(i int) { p.formatTy(t[i]) }, " || ", false)
	case *ast.TyFunction:
		p.write("func")
		for _, arg := range t.Args {
			p.space()
			p.formatTy(arg)
		}
		p.write(" -> ")
		p.formatTy(t.Return)
	}
}
