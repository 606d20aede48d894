package ast

// Walk visits n and then, if fn returned true, each of its children in
// source order.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n.Item) {
		Walk(child, fn)
	}
}

// Children returns the nodes directly owned by item, in source order.
func Children(item Item) []*Node {
	var out []*Node
	add := func(nodes ...*Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}
	addSorts := func(sorts []ColumnSort) {
		for _, s := range sorts {
			add(s.Column)
		}
	}

	switch it := item.(type) {
	case Empty, Ident, *Literal, *Interval:
	case *FuncCurry:
		add(it.Args...)
		add(it.NamedArgs...)
	case *Assign:
		add(it.Expr)
	case *NamedArg:
		add(it.Expr)
	case *Query:
		add(it.Nodes...)
	case *Pipeline:
		add(it.Nodes...)
	case List:
		add(it...)
	case *Range:
		add(it.Start, it.End)
	case *Binary:
		add(it.Left, it.Right)
	case *Unary:
		add(it.Expr)
	case *FuncDef:
		for _, params := range [][]FuncParam{it.PositionalParams, it.NamedParams} {
			for _, p := range params {
				if p.Ty != nil {
					add(tyChildren(p.Ty.Ty)...)
				}
				add(p.DefaultValue)
			}
		}
		if it.ReturnTy != nil {
			add(tyChildren(it.ReturnTy.Ty)...)
		}
		add(it.Body)
	case *FuncCall:
		add(it.Name)
		for _, v := range it.NamedArgs.All() {
			add(v)
		}
		add(it.Args...)
	case *Type:
		add(tyChildren(it.Ty)...)
	case *Table:
		add(it.Pipeline)
	case SString:
		add(interpolationChildren(it)...)
	case FString:
		add(interpolationChildren(it)...)
	case *Windowed:
		add(it.Expr)
		add(it.Group...)
		addSorts(it.Sort)
		add(it.Window.Range.Start, it.Window.Range.End)
	case *From, *Unique:
	case *Select:
		add(it.Assigns...)
	case *Filter:
		add(it.Expr)
	case *Derive:
		add(it.Assigns...)
	case *Aggregate:
		add(it.Assigns...)
		add(it.By...)
	case *Sort:
		addSorts(it.By)
	case *Take:
		add(it.Range.Start, it.Range.End)
		add(it.By...)
		addSorts(it.Sort)
	case *Join:
		add(it.With, it.Filter)
	case *Group:
		add(it.By...)
		add(it.Pipeline)
	}
	return out
}

func interpolationChildren(parts []InterpolateItem) []*Node {
	var out []*Node
	for _, part := range parts {
		if e, ok := part.(InterpolateExpr); ok && e.Expr != nil {
			out = append(out, e.Expr)
		}
	}
	return out
}

func tyChildren(ty Ty) []*Node {
	switch t := ty.(type) {
	case *TyParameterized:
		out := tyChildren(t.Base)
		if t.Param != nil {
			out = append(out, t.Param)
		}
		return out
	case TyAnyOf:
		var out []*Node
		for _, v := range t {
			out = append(out, tyChildren(v)...)
		}
		return out
	case *TyFunction:
		var out []*Node
		for _, a := range t.Args {
			out = append(out, tyChildren(a)...)
		}
		return append(out, tyChildren(t.Return)...)
	default:
		return nil
	}
}
