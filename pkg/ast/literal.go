package ast

// LiteralKind is the kind of a literal value.
type LiteralKind string

// LiteralKind constants.
const (
	LiteralNull         LiteralKind = "Null"
	LiteralInteger      LiteralKind = "Integer"
	LiteralFloat        LiteralKind = "Float"
	LiteralBoolean      LiteralKind = "Boolean"
	LiteralString       LiteralKind = "String"
	LiteralDate         LiteralKind = "Date"
	LiteralTime         LiteralKind = "Time"
	LiteralTimestamp    LiteralKind = "Timestamp"
	LiteralValueAndUnit LiteralKind = "ValueAndUnit"
)

// Literal is a constant value.
// Which value field is meaningful depends on Kind.
type Literal struct {
	Kind    LiteralKind
	Integer int64   // Integer, and the count of ValueAndUnit
	Float   float64 // Float
	Boolean bool    // Boolean
	Text    string  // String, Date, Time, Timestamp
	Unit    string  // ValueAndUnit
}

func (*Literal) itemNode() {}

// NewNull returns the null literal.
func NewNull() *Literal { return &Literal{Kind: LiteralNull} }

// NewInteger returns an integer literal.
func NewInteger(v int64) *Literal { return &Literal{Kind: LiteralInteger, Integer: v} }

// NewFloat returns a float literal.
func NewFloat(v float64) *Literal { return &Literal{Kind: LiteralFloat, Float: v} }

// NewBoolean returns a boolean literal.
func NewBoolean(v bool) *Literal { return &Literal{Kind: LiteralBoolean, Boolean: v} }

// NewString returns a string literal.
func NewString(v string) *Literal { return &Literal{Kind: LiteralString, Text: v} }

// NewDate returns a date literal; v is the text after `@`.
func NewDate(v string) *Literal { return &Literal{Kind: LiteralDate, Text: v} }

// NewTime returns a time literal; v is the text after `@`.
func NewTime(v string) *Literal { return &Literal{Kind: LiteralTime, Text: v} }

// NewTimestamp returns a timestamp literal; v is the text after `@`.
func NewTimestamp(v string) *Literal { return &Literal{Kind: LiteralTimestamp, Text: v} }

// NewValueAndUnit returns a literal such as `5days` that has not yet been
// turned into an Interval.
func NewValueAndUnit(n int64, unit string) *Literal {
	return &Literal{Kind: LiteralValueAndUnit, Integer: n, Unit: unit}
}

// AsInteger returns the value of an integer literal.
// Every other kind fails with a *TypeMismatchError; floats are not truncated.
func (l *Literal) AsInteger() (int64, error) {
	if l == nil {
		return 0, &TypeMismatchError{Expected: string(LiteralInteger), Found: "nothing"}
	}
	if l.Kind != LiteralInteger {
		return 0, &TypeMismatchError{Expected: string(LiteralInteger), Found: string(l.Kind)}
	}
	return l.Integer, nil
}
