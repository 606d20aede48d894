package ast

// FuncParam is a parameter of a function definition.
type FuncParam struct {
	Name         Ident `json:"name"`
	Ty           *Type `json:"ty,omitempty"`
	DefaultValue *Node `json:"default_value,omitempty"`
}

// FuncDef is a function definition.
type FuncDef struct {
	Name             Ident       `json:"name"`
	PositionalParams []FuncParam `json:"positional_params"`
	NamedParams      []FuncParam `json:"named_params"`
	Body             *Node       `json:"body"`
	ReturnTy         *Type       `json:"return_ty,omitempty"`
}

func (*FuncDef) itemNode() {}

// FuncCall is a call with every argument explicit.
type FuncCall struct {
	Name      *Node      `json:"name"`
	Args      []*Node    `json:"args"`
	NamedArgs *NamedArgs `json:"named_args"`
}

func (*FuncCall) itemNode() {}

// FuncCallWithoutArgs returns a call of name with no arguments.
func FuncCallWithoutArgs(name *Node) *FuncCall {
	return &FuncCall{
		Name:      name,
		Args:      []*Node{},
		NamedArgs: NewNamedArgs(),
	}
}

// FuncCurry is a call still missing positional arguments.
// NamedArgs follows the order of the definition's named parameters; a nil
// entry has not been supplied yet.
type FuncCurry struct {
	DefID     int     `json:"def_id"`
	Args      []*Node `json:"args"`
	NamedArgs []*Node `json:"named_args"`
}

func (*FuncCurry) itemNode() {}

// NewFuncCurry returns a curry of def with no arguments supplied.
func NewFuncCurry(defID int, def *FuncDef) *FuncCurry {
	return &FuncCurry{
		DefID:     defID,
		Args:      []*Node{},
		NamedArgs: make([]*Node, len(def.NamedParams)),
	}
}
