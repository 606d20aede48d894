package format

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/paulomach/prql/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestFormat_Leaves(t *testing.T) {
	tests := []struct {
		name     string
		item     ast.Item
		expected string
	}{
		{name: "empty", item: ast.Empty{}, expected: "()"},
		{name: "ident", item: ast.Ident("employees.salary"), expected: "employees.salary"},
		{name: "null", item: ast.NewNull(), expected: "null"},
		{name: "integer", item: ast.NewInteger(-42), expected: "-42"},
		{name: "float", item: ast.NewFloat(2.5), expected: "2.5"},
		{name: "whole float", item: ast.NewFloat(1), expected: "1.0"},
		{name: "large float", item: ast.NewFloat(1e21), expected: "1000000000000000000000.0"},
		{name: "boolean", item: ast.NewBoolean(true), expected: "true"},
		{name: "string", item: ast.NewString("hello"), expected: `"hello"`},
		{name: "string with double quote", item: ast.NewString(`say "hi"`), expected: `'say "hi"'`},
		{name: "string with both quotes", item: ast.NewString(`it's "x"`), expected: `"it's \"x\""`},
		{name: "date", item: ast.NewDate("2021-01-01"), expected: "@2021-01-01"},
		{name: "time", item: ast.NewTime("12:30"), expected: "@12:30"},
		{name: "timestamp", item: ast.NewTimestamp("2021-01-01T12:30"), expected: "@2021-01-01T12:30"},
		{name: "value and unit", item: ast.NewValueAndUnit(5, "days"), expected: "5days"},
		{name: "interval", item: &ast.Interval{N: 3, Unit: "weeks"}, expected: "3weeks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.item))
		})
	}
}

func TestFormat_Expressions(t *testing.T) {
	call := ast.FuncCallWithoutArgs(ast.NewNode(ast.Ident("round")))
	call.Args = ast.Nodes(ast.Ident("salary"))
	call.NamedArgs.Set("digits", ast.NewNode(ast.NewInteger(2)))

	tests := []struct {
		name     string
		item     ast.Item
		expected string
	}{
		{name: "assign", item: ast.NewAssign("gross", ast.Ident("salary")), expected: "gross = salary"},
		{name: "named arg", item: ast.NewNamedArg("side", ast.Ident("left")), expected: "side:left"},
		{name: "binary", item: ast.NewBinary(ast.Ident("a"), ast.Add, ast.NewInteger(1)), expected: "a + 1"},
		{name: "coalesce", item: ast.NewBinary(ast.Ident("a"), ast.Coalesce, ast.NewInteger(0)), expected: "a ?? 0"},
		{name: "logical", item: ast.NewBinary(ast.Ident("a"), ast.And, ast.Ident("b")), expected: "a and b"},
		{name: "not", item: &ast.Unary{Op: ast.Not, Expr: ast.NewNode(ast.Ident("X"))}, expected: "not X"},
		{name: "neg", item: &ast.Unary{Op: ast.Neg, Expr: ast.NewNode(ast.Ident("X"))}, expected: "!X"},
		{name: "call without args", item: ast.FuncCallWithoutArgs(ast.NewNode(ast.Ident("now"))), expected: "now"},
		{name: "call named before positional", item: call, expected: "round digits: 2 salary"},
		{name: "curry", item: &ast.FuncCurry{DefID: 1, Args: ast.Nodes(ast.Ident("a"))}, expected: "(func ? -> ?)"},
		{
			name:     "sstring",
			item:     ast.SString{ast.InterpolateString("UPPER("), ast.InterpolateExpr{Expr: ast.NewNode(ast.Ident("name"))}, ast.InterpolateString(")")},
			expected: `s"UPPER({name})"`,
		},
		{
			name:     "fstring",
			item:     ast.FString{ast.InterpolateExpr{Expr: ast.NewNode(ast.Ident("first"))}, ast.InterpolateString(" "), ast.InterpolateExpr{Expr: ast.NewNode(ast.Ident("last"))}},
			expected: `f"{first} {last}"`,
		},
		{name: "empty sstring", item: ast.SString{}, expected: `s""`},
		{name: "type literal", item: &ast.Type{Ty: ast.TyInt}, expected: "<int>"},
		{name: "type union", item: &ast.Type{Ty: ast.TyAnyOf{ast.TyInt, ast.TyNamed("money")}}, expected: "<int || money>"},
		{
			name:     "type function",
			item:     &ast.Type{Ty: &ast.TyFunction{Args: []ast.Ty{ast.TyInt, ast.TyUnknown{}}, Return: ast.TyBool}},
			expected: "<func int ? -> bool>",
		},
		{
			name:     "type parameterized",
			item:     &ast.Type{Ty: &ast.TyParameterized{Base: ast.TyList, Param: ast.NewNode(ast.Ident("int"))}},
			expected: "<list<int>>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.item))
		})
	}
}

func TestFormat_Range(t *testing.T) {
	tests := []struct {
		name     string
		rng      *ast.Range
		expected string
	}{
		{name: "unbounded", rng: ast.Unbounded(), expected: ".."},
		{name: "open end", rng: ast.RangeFromInts(ptr(1), nil), expected: "1.."},
		{name: "open start", rng: ast.RangeFromInts(nil, ptr(5)), expected: "..5"},
		{name: "closed", rng: ast.RangeFromInts(ptr(1), ptr(5)), expected: "1..5"},
		{name: "dates", rng: &ast.Range{Start: ast.NewNode(ast.NewDate("2020-01-01")), End: ast.NewNode(ast.NewDate("2021-01-01"))}, expected: "@2020-01-01..@2021-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.rng))
		})
	}
}

func TestFormat_List(t *testing.T) {
	tests := []struct {
		name     string
		list     ast.List
		expected string
	}{
		{name: "empty", list: ast.List{}, expected: "[]"},
		{name: "single", list: ast.List(ast.Nodes(ast.NewInteger(1))), expected: "[1]"},
		{name: "two", list: ast.List(ast.Nodes(ast.NewInteger(1), ast.NewInteger(2))), expected: "[\n  1,\n  2,\n]"},
		{
			name:     "assignments",
			list:     ast.List(ast.Nodes(ast.NewAssign("a", ast.Ident("x")), ast.Ident("b"), ast.NewString("c"))),
			expected: "[\n  a = x,\n  b,\n  \"c\",\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.list))
		})
	}
}

func TestFormat_Pipeline(t *testing.T) {
	stages := ast.Nodes(ast.Ident("A"), ast.Ident("B"), ast.Ident("C"))

	tests := []struct {
		name   string
		nodes  []*ast.Node
		block  string
		inline string
	}{
		{name: "empty", nodes: nil, block: "()", inline: "()"},
		{name: "single stage", nodes: stages[:1], block: "(A)", inline: "(A)"},
		{name: "two stages", nodes: stages[:2], block: "(\n  A\n  B\n)", inline: "(A | B)"},
		{name: "three stages", nodes: stages, block: "(\n  A\n  B\n  C\n)", inline: "(A | B | C)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := ast.NewPipeline(tt.nodes...)
			assert.Equal(t, tt.block, String(pipeline))

			var b strings.Builder
			require.NoError(t, InlinePipeline(&b, pipeline))
			assert.Equal(t, tt.inline, b.String())

			b.Reset()
			require.NoError(t, FprintStyle(&b, pipeline, StyleInline))
			assert.Equal(t, tt.inline, b.String())
		})
	}
}

func TestFormat_Transform(t *testing.T) {
	tests := []struct {
		transform ast.Transform
		expected  string
	}{
		{&ast.From{Name: "employees"}, "from <unimplemented>"},
		{&ast.Filter{Expr: ast.NewNode(ast.Ident("x"))}, "filter <unimplemented>"},
		{&ast.Take{Range: *ast.RangeFromInts(ptr(1), ptr(10))}, "take <unimplemented>"},
		{&ast.Unique{}, "unique <unimplemented>"},
	}

	for _, tt := range tests {
		t.Run(string(tt.transform.TransformKind()), func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.transform))
		})
	}
}

func TestFormat_Definitions(t *testing.T) {
	def := &ast.FuncDef{
		Name:             "f",
		PositionalParams: []ast.FuncParam{{Name: "x"}},
		NamedParams:      []ast.FuncParam{{Name: "y", DefaultValue: ast.NewNode(ast.NewInteger(1))}},
		Body:             ast.NewNode(ast.Ident("B")),
	}
	assert.Equal(t, "func f x y = B\n\n", String(def))

	table := &ast.Table{
		Name:     "top",
		Pipeline: ast.NewNode(ast.NewPipeline(ast.NewNode(&ast.From{Name: "t"}))),
	}
	assert.Equal(t, "table top = (from <unimplemented>)\n\n", String(table))
}

func TestFormat_Query(t *testing.T) {
	q := &ast.Query{
		Dialect: ast.DialectDuckDB,
		Nodes: []*ast.Node{
			ast.NewNode(ast.NewPipeline(ast.Nodes(ast.Ident("A"), ast.Ident("B"))...)),
			ast.NewNode(ast.Ident("tail")),
		},
	}
	assert.Equal(t, "prql dialect: duckdb\n\nA\nB\ntail", String(q))

	assert.Equal(t, "prql dialect: generic\n\n", String(&ast.Query{}))
}

func TestFormat_Windowed(t *testing.T) {
	w := ast.NewWindowed(ast.NewNode(ast.Ident("salary")), ast.WindowRows, *ast.Unbounded())
	w.Group = ast.Nodes(ast.Ident("dept"))

	out := String(w)
	assert.Contains(t, out, "salary")
	assert.NotContains(t, out, "dept", "only the wrapped expression is shown")
	assert.NotContains(t, out, "0xc", "pointer addresses are hidden")
	assert.Equal(t, out, String(w), "output is stable")
}

func TestFormat_BalancedDelimiters(t *testing.T) {
	inner := ast.NewPipeline(ast.Nodes(ast.Ident("a"), ast.NewBinary(ast.Ident("b"), ast.Mul, ast.NewInteger(2)))...)
	tree := ast.List(ast.Nodes(
		inner,
		ast.List(ast.Nodes(ast.SString{ast.InterpolateExpr{Expr: ast.NewNode(ast.List{})}}, &ast.Type{Ty: ast.TyInt})),
		ast.FString{ast.InterpolateExpr{Expr: ast.NewNode(ast.NewPipeline(ast.NewNode(ast.Empty{})))}},
	))

	out := String(tree)
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}, {"<", ">"}} {
		assert.Equal(t, strings.Count(out, pair[0]), strings.Count(out, pair[1]), "unbalanced %s%s in %q", pair[0], pair[1], out)
	}
	assert.Equal(t, 4, strings.Count(out, `"`))
}

type failingWriter struct {
	after  int
	writes int
}

var errSink = errors.New("sink closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.writes >= w.after {
		return 0, errSink
	}
	w.writes++
	return len(p), nil
}

func TestFprint_PropagatesWriterError(t *testing.T) {
	tree := ast.NewPipeline(ast.Nodes(ast.Ident("a"), ast.Ident("b"), ast.Ident("c"))...)

	for _, after := range []int{0, 1, 3} {
		w := &failingWriter{after: after}
		err := Fprint(w, tree)
		require.ErrorIs(t, err, errSink)
		assert.Equal(t, errSink, err, "writer error must be returned unchanged")
		assert.Equal(t, after, w.writes, "no writes after the first failure")
	}
}

func TestFprintNode(t *testing.T) {
	var b strings.Builder
	require.NoError(t, FprintNode(&b, ast.NewNode(ast.Ident("x"))))
	assert.Equal(t, "x", b.String())

	b.Reset()
	require.NoError(t, FprintNode(&b, nil))
	assert.Empty(t, b.String())
}

func TestFormat_ConcurrentReaders(t *testing.T) {
	tree := &ast.Query{Nodes: []*ast.Node{ast.NewNode(ast.List(ast.Nodes(ast.NewInteger(1), ast.NewInteger(2))))}}
	want := String(tree)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = String(tree)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestFormat_NamedArgsCallSiteOrder(t *testing.T) {
	call := ast.FuncCallWithoutArgs(ast.NewNode(ast.Ident("f")))
	call.NamedArgs.Set("zeta", ast.NewNode(ast.NewInteger(1)))
	call.NamedArgs.Set("alpha", ast.NewNode(ast.NewInteger(2)))
	call.NamedArgs.Set("mid", ast.NewNode(ast.NewInteger(3)))
	call.Args = ast.Nodes(ast.Ident("x"))

	for range 50 {
		require.Equal(t, "f zeta: 1 alpha: 2 mid: 3 x", String(call))
	}

	call.NamedArgs.Set("alpha", ast.NewNode(ast.NewInteger(20)))
	assert.Equal(t, "f zeta: 1 alpha: 20 mid: 3 x", String(call))
}
