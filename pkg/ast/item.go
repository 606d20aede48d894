package ast

// Item is the closed set of syntactic forms a Node can hold.
// Only types in this package implement Item.
type Item interface {
	itemNode() // Marker method to seal the set
}

// Kind is the stable tag of an Item variant.
// It is used as the variant key in the interchange format.
type Kind string

// Kind constants, one per Item variant.
const (
	KindEmpty     Kind = "Empty"
	KindIdent     Kind = "Ident"
	KindLiteral   Kind = "Literal"
	KindAssign    Kind = "Assign"
	KindNamedArg  Kind = "NamedArg"
	KindQuery     Kind = "Query"
	KindPipeline  Kind = "Pipeline"
	KindTransform Kind = "Transform"
	KindList      Kind = "List"
	KindRange     Kind = "Range"
	KindBinary    Kind = "Binary"
	KindUnary     Kind = "Unary"
	KindFuncDef   Kind = "FuncDef"
	KindFuncCall  Kind = "FuncCall"
	KindFuncCurry Kind = "FuncCurry"
	KindType      Kind = "Type"
	KindTable     Kind = "Table"
	KindSString   Kind = "SString"
	KindFString   Kind = "FString"
	KindInterval  Kind = "Interval"
	KindWindowed  Kind = "Windowed"
)

// KindOf returns the variant tag of item, or "" for nil.
func KindOf(item Item) Kind {
	switch item.(type) {
	case Empty:
		return KindEmpty
	case Ident:
		return KindIdent
	case *Literal:
		return KindLiteral
	case *Assign:
		return KindAssign
	case *NamedArg:
		return KindNamedArg
	case *Query:
		return KindQuery
	case *Pipeline:
		return KindPipeline
	case Transform:
		return KindTransform
	case List:
		return KindList
	case *Range:
		return KindRange
	case *Binary:
		return KindBinary
	case *Unary:
		return KindUnary
	case *FuncDef:
		return KindFuncDef
	case *FuncCall:
		return KindFuncCall
	case *FuncCurry:
		return KindFuncCurry
	case *Type:
		return KindType
	case *Table:
		return KindTable
	case SString:
		return KindSString
	case FString:
		return KindFString
	case *Interval:
		return KindInterval
	case *Windowed:
		return KindWindowed
	default:
		return ""
	}
}

// ---------- Leaves ----------

// Empty is the unit expression `()`.
type Empty struct{}

func (Empty) itemNode() {}

// Ident is a name reference.
type Ident string

func (Ident) itemNode() {}

// ---------- Named expressions ----------

// NamedExpr pairs a name with an owned expression.
type NamedExpr struct {
	Name Ident `json:"name"`
	Expr *Node `json:"expr"`
}

// Assign is `name = expr`.
type Assign struct {
	NamedExpr
}

func (*Assign) itemNode() {}

// NewAssign returns an Assign binding name to expr.
func NewAssign(name Ident, expr Item) *Assign {
	return &Assign{NamedExpr{Name: name, Expr: NewNode(expr)}}
}

// NamedArg is `name:expr` in argument position.
type NamedArg struct {
	NamedExpr
}

func (*NamedArg) itemNode() {}

// NewNamedArg returns a NamedArg binding name to expr.
func NewNamedArg(name Ident, expr Item) *NamedArg {
	return &NamedArg{NamedExpr{Name: name, Expr: NewNode(expr)}}
}

// ---------- Composites ----------

// Query is a whole program.
type Query struct {
	Dialect Dialect `json:"dialect"`
	Nodes   []*Node `json:"nodes"`
}

func (*Query) itemNode() {}

// List is a literal list.
type List []*Node

func (List) itemNode() {}

// Binary is `left op right`.
type Binary struct {
	Left  *Node `json:"left"`
	Op    BinOp `json:"op"`
	Right *Node `json:"right"`
}

func (*Binary) itemNode() {}

// NewBinary returns a Binary over two items.
func NewBinary(left Item, op BinOp, right Item) *Binary {
	return &Binary{Left: NewNode(left), Op: op, Right: NewNode(right)}
}

// Unary is a prefix operator applied to an expression.
type Unary struct {
	Op   UnOp  `json:"op"`
	Expr *Node `json:"expr"`
}

func (*Unary) itemNode() {}

// Type is a type annotation.
type Type struct {
	Ty Ty
}

func (*Type) itemNode() {}

// Table is a named table definition.
type Table struct {
	Name     string `json:"name"`
	Pipeline *Node  `json:"pipeline"`
}

func (*Table) itemNode() {}

// Interval is a duration literal such as `3days`.
type Interval struct {
	N    int64  `json:"n"`
	Unit string `json:"unit"`
}

func (*Interval) itemNode() {}

// ---------- String templates ----------

// InterpolateItem is one part of an s-string or f-string.
type InterpolateItem interface {
	interpolateItem()
}

// InterpolateString is literal text inside a template.
type InterpolateString string

func (InterpolateString) interpolateItem() {}

// InterpolateExpr is an embedded `{expr}`.
type InterpolateExpr struct {
	Expr *Node
}

func (InterpolateExpr) interpolateItem() {}

// SString is a raw SQL template, `s"..."`.
type SString []InterpolateItem

func (SString) itemNode() {}

// FString is a formatted string, `f"..."`.
type FString []InterpolateItem

func (FString) itemNode() {}
