package ast

// Ty is a type expression.
type Ty interface {
	tyNode()
}

// TyLiteral is a built-in type.
type TyLiteral string

// Built-in types.
const (
	TyInt       TyLiteral = "int"
	TyFloat     TyLiteral = "float"
	TyBool      TyLiteral = "bool"
	TyString    TyLiteral = "string"
	TyDate      TyLiteral = "date"
	TyTime      TyLiteral = "time"
	TyTimestamp TyLiteral = "timestamp"
	TyColumn    TyLiteral = "column"
	TyList      TyLiteral = "list"
	TyTable     TyLiteral = "table"
	TyNull      TyLiteral = "null"
)

// TyNamed refers to a type by name.
type TyNamed string

// TyParameterized is a type applied to a parameter, `base<param>`.
type TyParameterized struct {
	Base  Ty
	Param *Node
}

// TyAnyOf is a union of types.
type TyAnyOf []Ty

// TyFunction is the type of a function.
type TyFunction struct {
	Args   []Ty
	Return Ty
}

// TyUnknown is a type not yet inferred.
type TyUnknown struct{}

func (TyLiteral) tyNode()        {}
func (TyNamed) tyNode()          {}
func (*TyParameterized) tyNode() {}
func (TyAnyOf) tyNode()          {}
func (*TyFunction) tyNode()      {}
func (TyUnknown) tyNode()        {}
