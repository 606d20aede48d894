package ast

import "fmt"

// BinOp is a binary operator.
type BinOp int

// BinOp constants.
const (
	Mul BinOp = iota
	Div
	Mod
	Add
	Sub
	Eq
	Ne
	Gt
	Lt
	Gte
	Lte
	And
	Or
	Coalesce
)

var binOpNames = [...]string{
	Mul:      "Mul",
	Div:      "Div",
	Mod:      "Mod",
	Add:      "Add",
	Sub:      "Sub",
	Eq:       "Eq",
	Ne:       "Ne",
	Gt:       "Gt",
	Lt:       "Lt",
	Gte:      "Gte",
	Lte:      "Lte",
	And:      "And",
	Or:       "Or",
	Coalesce: "Coalesce",
}

var binOpSymbols = [...]string{
	Mul:      "*",
	Div:      "/",
	Mod:      "%",
	Add:      "+",
	Sub:      "-",
	Eq:       "==",
	Ne:       "!=",
	Gt:       ">",
	Lt:       "<",
	Gte:      ">=",
	Lte:      "<=",
	And:      "and",
	Or:       "or",
	Coalesce: "??",
}

// String returns the operator's source symbol.
func (op BinOp) String() string {
	if op < 0 || int(op) >= len(binOpSymbols) {
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
	return binOpSymbols[op]
}

// Name returns the variant name used in the interchange format.
func (op BinOp) Name() string {
	if op < 0 || int(op) >= len(binOpNames) {
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
	return binOpNames[op]
}

// ParseBinOp returns the operator written as symbol.
func ParseBinOp(symbol string) (BinOp, error) {
	for i, s := range binOpSymbols {
		if s == symbol {
			return BinOp(i), nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator %q", symbol)
}

// MarshalText implements encoding.TextMarshaler.
func (op BinOp) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(binOpNames) {
		return nil, fmt.Errorf("%w: binary operator %d", ErrMalformed, int(op))
	}
	return []byte(binOpNames[op]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *BinOp) UnmarshalText(text []byte) error {
	for i, name := range binOpNames {
		if name == string(text) {
			*op = BinOp(i)
			return nil
		}
	}
	return fmt.Errorf("%w: binary operator %q", ErrUnknownKind, text)
}

// UnOp is a unary operator.
type UnOp int

// UnOp constants.
const (
	Neg UnOp = iota
	Not
)

var unOpNames = [...]string{
	Neg: "Neg",
	Not: "Not",
}

var unOpSymbols = [...]string{
	Neg: "-",
	Not: "not",
}

// String returns the operator's source symbol.
// The renderer writes Neg as "!", not as this symbol.
func (op UnOp) String() string {
	if op < 0 || int(op) >= len(unOpSymbols) {
		return fmt.Sprintf("UnOp(%d)", int(op))
	}
	return unOpSymbols[op]
}

// Name returns the variant name used in the interchange format.
func (op UnOp) Name() string {
	if op < 0 || int(op) >= len(unOpNames) {
		return fmt.Sprintf("UnOp(%d)", int(op))
	}
	return unOpNames[op]
}

// ParseUnOp returns the operator written as symbol.
func ParseUnOp(symbol string) (UnOp, error) {
	for i, s := range unOpSymbols {
		if s == symbol {
			return UnOp(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unary operator %q", symbol)
}

// MarshalText implements encoding.TextMarshaler.
func (op UnOp) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(unOpNames) {
		return nil, fmt.Errorf("%w: unary operator %d", ErrMalformed, int(op))
	}
	return []byte(unOpNames[op]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *UnOp) UnmarshalText(text []byte) error {
	for i, name := range unOpNames {
		if name == string(text) {
			*op = UnOp(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unary operator %q", ErrUnknownKind, text)
}
