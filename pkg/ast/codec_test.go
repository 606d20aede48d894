package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleQuery builds a tree touching every item variant.
func sampleQuery() *Node {
	call := FuncCallWithoutArgs(NewNode(Ident("round")))
	call.Args = Nodes(Ident("salary"))
	call.NamedArgs.Set("digits", NewNode(NewInteger(2)))

	def := &FuncDef{
		Name:             "add_one",
		PositionalParams: []FuncParam{{Name: "x", Ty: &Type{Ty: TyInt}}},
		NamedParams:      []FuncParam{{Name: "by", DefaultValue: NewNode(NewInteger(1))}},
		Body:             NewNode(NewBinary(Ident("x"), Add, Ident("by"))),
		ReturnTy:         &Type{Ty: TyAnyOf{TyInt, TyNamed("money")}},
	}

	windowed := NewWindowed(NewNode(FuncCallWithoutArgs(NewNode(Ident("sum")))), WindowRows, *RangeFromInts(ptr(-2), ptr(0)))
	windowed.Group = Nodes(Ident("dept"))
	windowed.Sort = []ColumnSort{{Direction: Desc, Column: NewNode(Ident("hired"))}}

	pipeline := NewPipeline(
		NewNode(&From{Name: "employees", Alias: "e"}).WithSpan(0, 14),
		NewNode(&Filter{Expr: NewNode(&Unary{Op: Not, Expr: NewNode(Ident("retired"))})}),
		NewNode(&Derive{Assigns: Nodes(
			NewAssign("gross", call),
			NewAssign("note", SString{InterpolateString("upper("), InterpolateExpr{Expr: NewNode(Ident("name"))}, InterpolateString(")")}),
			NewAssign("label", FString{InterpolateString("id: "), InterpolateExpr{Expr: NewNode(Ident("id"))}}),
			NewAssign("tenure", &Interval{N: 3, Unit: "years"}),
			NewAssign("running", windowed),
			NewAssign("curry", &FuncCurry{DefID: 7, Args: Nodes(Ident("a")), NamedArgs: []*Node{nil, NewNode(NewBoolean(true))}}),
		)}),
		NewNode(&Sort{By: []ColumnSort{{Direction: Asc, Column: NewNode(Ident("name"))}}}),
		NewNode(&Take{Range: *RangeFromInts(ptr(1), ptr(10))}),
		NewNode(&Join{Side: JoinLeft, With: NewNode(&From{Name: "depts"}), Filter: NewNode(NewBinary(Ident("dept_id"), Eq, Ident("id")))}),
		NewNode(&Group{By: Nodes(Ident("dept")), Pipeline: NewNode(NewPipeline(NewNode(&Aggregate{Assigns: Nodes(Ident("count"))})))}),
		NewNode(&Select{Assigns: Nodes(List(Nodes(Ident("a"), Ident("b"))), NewNamedArg("c", NewNull()))}),
		NewNode(&Unique{}),
	)

	return NewNode(&Query{
		Dialect: DialectPostgres,
		Nodes: []*Node{
			NewNode(def).WithID(1),
			NewNode(&Table{Name: "top", Pipeline: NewNode(NewPipeline(NewNode(&From{Name: "t"})))}),
			NewNode(pipeline),
			NewNode(&Type{Ty: &TyParameterized{Base: TyLiteral("list"), Param: NewNode(Ident("int"))}}),
			NewNode(&Type{Ty: &TyFunction{Args: []Ty{TyInt, TyUnknown{}}, Return: TyBool}}),
			NewNode(Unbounded()),
			NewNode(Empty{}),
			NewNode(NewFloat(2.5)),
			NewNode(NewTimestamp("2022-01-01T10:00")),
			NewNode(NewValueAndUnit(5, "days")),
		},
	})
}

func TestJSON_RoundTrip(t *testing.T) {
	original := sampleQuery()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestJSON_Shape(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "binary",
			node: NewNode(NewBinary(Ident("a"), Add, NewInteger(1))),
			want: `{"Binary":{"left":{"Ident":"a"},"op":"Add","right":{"Literal":{"Integer":1}}}}`,
		},
		{
			name: "unit variant with metadata",
			node: NewNode(Empty{}).WithID(4).WithSpan(1, 3),
			want: `{"Empty":null,"id":4,"span":{"start":1,"end":3}}`,
		},
		{
			name: "transform",
			node: NewNode(&Unique{}),
			want: `{"Transform":{"unique":null}}`,
		},
		{
			name: "range",
			node: NewNode(RangeFromInts(ptr(1), nil)),
			want: `{"Range":{"start":{"Literal":{"Integer":1}},"end":null}}`,
		},
		{
			name: "sstring",
			node: NewNode(SString{InterpolateString("a"), InterpolateExpr{Expr: NewNode(Ident("b"))}}),
			want: `{"SString":[{"String":"a"},{"Expr":{"Ident":"b"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestJSON_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown kind", input: `{"Lambda":{}}`, wantErr: ErrUnknownKind},
		{name: "unknown transform", input: `{"Transform":{"window":{}}}`, wantErr: ErrUnknownKind},
		{name: "unknown literal", input: `{"Literal":{"Decimal":"1.0"}}`, wantErr: ErrUnknownKind},
		{name: "unknown operator", input: `{"Binary":{"left":{"Ident":"a"},"op":"Pow","right":{"Ident":"b"}}}`, wantErr: ErrUnknownKind},
		{name: "two variant keys", input: `{"Ident":"a","Empty":null}`, wantErr: ErrMalformed},
		{name: "no variant key", input: `{"id":1}`, wantErr: ErrMalformed},
		{name: "missing payload", input: `{"Binary":null}`, wantErr: ErrMalformed},
		{name: "not an object", input: `[1,2]`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			err := json.Unmarshal([]byte(tt.input), &n)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSON_UnknownDialect(t *testing.T) {
	var n Node
	err := json.Unmarshal([]byte(`{"Query":{"dialect":"oracle","nodes":[]}}`), &n)
	assert.ErrorContains(t, err, "unknown dialect")
}

func TestJSON_NodeWithoutItem(t *testing.T) {
	_, err := json.Marshal(&Node{})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestJSON_TypeWithoutTy(t *testing.T) {
	data, err := json.Marshal(NewNode(&Type{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":{"Unknown":null}}`, string(data))

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, &Type{Ty: TyUnknown{}}, decoded.Item)

	param, err := json.Marshal(FuncParam{Name: "x", Ty: &Type{}})
	require.NoError(t, err)
	var p FuncParam
	require.NoError(t, json.Unmarshal(param, &p))
	assert.Equal(t, &Type{Ty: TyUnknown{}}, p.Ty)
}
