package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Interchange format
//
// A node is a JSON object with exactly one variant key holding the payload,
// plus the optional metadata keys "id" and "span":
//
//	{"id": 3, "Binary": {"left": {"Ident": "a"}, "op": "Add", "right": {"Literal": {"Integer": 1}}}}
//
// Unit variants carry null. Transforms, literals, type expressions and
// interpolation parts are tagged the same way one level down.

var jsonNull = json.RawMessage("null")

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	kind, payload, err := encodeItem(n.Item)
	if err != nil {
		return nil, err
	}
	obj := map[string]json.RawMessage{string(kind): payload}
	if n.ID != nil {
		obj["id"], err = json.Marshal(*n.ID)
		if err != nil {
			return nil, err
		}
	}
	if n.Span != nil {
		obj["span"], err = json.Marshal(n.Span)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	*n = Node{}
	if raw, ok := obj["id"]; ok {
		delete(obj, "id")
		if !isNull(raw) {
			var id int
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("%w: node id: %w", ErrMalformed, err)
			}
			n.ID = &id
		}
	}
	if raw, ok := obj["span"]; ok {
		delete(obj, "span")
		if !isNull(raw) {
			var span Span
			if err := json.Unmarshal(raw, &span); err != nil {
				return fmt.Errorf("%w: node span: %w", ErrMalformed, err)
			}
			n.Span = &span
		}
	}
	key, raw, err := singleKey(obj)
	if err != nil {
		return err
	}
	n.Item, err = decodeItem(Kind(key), raw)
	return err
}

func encodeItem(item Item) (Kind, json.RawMessage, error) {
	var (
		payload []byte
		err     error
	)
	switch it := item.(type) {
	case nil:
		return "", nil, fmt.Errorf("%w: node has no item", ErrMalformed)
	case Empty:
		payload = jsonNull
	case Ident:
		payload, err = json.Marshal(string(it))
	case List:
		payload, err = json.Marshal([]*Node(it))
	case Transform:
		payload, err = encodeTransform(it)
	case *Literal, *Assign, *NamedArg, *Query, *Pipeline, *Range, *Binary, *Unary,
		*FuncDef, *FuncCall, *FuncCurry, *Type, *Table, SString, FString, *Interval, *Windowed:
		payload, err = json.Marshal(it)
	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnknownKind, item)
	}
	if err != nil {
		return "", nil, err
	}
	return KindOf(item), payload, nil
}

func decodeItem(kind Kind, raw json.RawMessage) (Item, error) {
	if kind != KindEmpty && isNull(raw) {
		return nil, fmt.Errorf("%w: %s without payload", ErrMalformed, kind)
	}
	switch kind {
	case KindEmpty:
		return Empty{}, nil
	case KindIdent:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}
		return Ident(s), nil
	case KindLiteral:
		return decodeInto(kind, raw, &Literal{})
	case KindAssign:
		return decodeInto(kind, raw, &Assign{})
	case KindNamedArg:
		return decodeInto(kind, raw, &NamedArg{})
	case KindQuery:
		q := &Query{}
		if _, err := decodeInto(kind, raw, q); err != nil {
			return nil, err
		}
		if q.Dialect != "" {
			d, err := ParseDialect(string(q.Dialect))
			if err != nil {
				return nil, fmt.Errorf("decoding %s: %w", kind, err)
			}
			q.Dialect = d
		}
		return q, nil
	case KindPipeline:
		return decodeInto(kind, raw, &Pipeline{})
	case KindTransform:
		return decodeTransform(raw)
	case KindList:
		var l List
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}
		return l, nil
	case KindRange:
		return decodeInto(kind, raw, &Range{})
	case KindBinary:
		return decodeInto(kind, raw, &Binary{})
	case KindUnary:
		return decodeInto(kind, raw, &Unary{})
	case KindFuncDef:
		return decodeInto(kind, raw, &FuncDef{})
	case KindFuncCall:
		return decodeInto(kind, raw, &FuncCall{})
	case KindFuncCurry:
		return decodeInto(kind, raw, &FuncCurry{})
	case KindType:
		return decodeInto(kind, raw, &Type{})
	case KindTable:
		return decodeInto(kind, raw, &Table{})
	case KindSString:
		var s SString
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}
		return s, nil
	case KindFString:
		var s FString
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}
		return s, nil
	case KindInterval:
		return decodeInto(kind, raw, &Interval{})
	case KindWindowed:
		return decodeInto(kind, raw, &Windowed{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func decodeInto[T Item](kind Kind, raw json.RawMessage, v T) (Item, error) {
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return v, nil
}

// ---------- Transforms ----------

func encodeTransform(t Transform) ([]byte, error) {
	payload := jsonNull
	if _, unit := t.(*Unique); !unit {
		var err error
		if payload, err = json.Marshal(t); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage{string(t.TransformKind()): payload})
}

func decodeTransform(data json.RawMessage) (Item, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	key, raw, err := singleKey(obj)
	if err != nil {
		return nil, err
	}
	kind := TransformKind(key)
	if kind != TransformUnique && isNull(raw) {
		return nil, fmt.Errorf("%w: %s without payload", ErrMalformed, kind)
	}
	switch kind {
	case TransformFrom:
		return decodeInto(KindTransform, raw, &From{})
	case TransformSelect:
		return decodeInto(KindTransform, raw, &Select{})
	case TransformFilter:
		return decodeInto(KindTransform, raw, &Filter{})
	case TransformDerive:
		return decodeInto(KindTransform, raw, &Derive{})
	case TransformAggregate:
		return decodeInto(KindTransform, raw, &Aggregate{})
	case TransformSort:
		return decodeInto(KindTransform, raw, &Sort{})
	case TransformTake:
		return decodeInto(KindTransform, raw, &Take{})
	case TransformJoin:
		return decodeInto(KindTransform, raw, &Join{})
	case TransformGroup:
		return decodeInto(KindTransform, raw, &Group{})
	case TransformUnique:
		return &Unique{}, nil
	default:
		return nil, fmt.Errorf("%w: transform %q", ErrUnknownKind, key)
	}
}

// ---------- Literals ----------

type valueAndUnitJSON struct {
	N    int64  `json:"n"`
	Unit string `json:"unit"`
}

// MarshalJSON implements json.Marshaler.
func (l *Literal) MarshalJSON() ([]byte, error) {
	var v any
	switch l.Kind {
	case LiteralNull:
		v = nil
	case LiteralInteger:
		v = l.Integer
	case LiteralFloat:
		v = l.Float
	case LiteralBoolean:
		v = l.Boolean
	case LiteralString, LiteralDate, LiteralTime, LiteralTimestamp:
		v = l.Text
	case LiteralValueAndUnit:
		v = valueAndUnitJSON{N: l.Integer, Unit: l.Unit}
	default:
		return nil, fmt.Errorf("%w: literal %q", ErrUnknownKind, l.Kind)
	}
	return json.Marshal(map[string]any{string(l.Kind): v})
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Literal) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	key, raw, err := singleKey(obj)
	if err != nil {
		return err
	}
	*l = Literal{Kind: LiteralKind(key)}
	switch l.Kind {
	case LiteralNull:
		return nil
	case LiteralInteger:
		err = json.Unmarshal(raw, &l.Integer)
	case LiteralFloat:
		err = json.Unmarshal(raw, &l.Float)
	case LiteralBoolean:
		err = json.Unmarshal(raw, &l.Boolean)
	case LiteralString, LiteralDate, LiteralTime, LiteralTimestamp:
		err = json.Unmarshal(raw, &l.Text)
	case LiteralValueAndUnit:
		var vu valueAndUnitJSON
		err = json.Unmarshal(raw, &vu)
		l.Integer, l.Unit = vu.N, vu.Unit
	default:
		return fmt.Errorf("%w: literal %q", ErrUnknownKind, key)
	}
	if err != nil {
		return fmt.Errorf("decoding %s literal: %w", l.Kind, err)
	}
	return nil
}

// ---------- Types ----------

// MarshalJSON implements json.Marshaler. A Type without a Ty is written as
// the unknown type, which renders the same and reads back.
func (t *Type) MarshalJSON() ([]byte, error) {
	if t.Ty == nil {
		return encodeTy(TyUnknown{})
	}
	return encodeTy(t.Ty)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Type) UnmarshalJSON(data []byte) error {
	ty, err := decodeTy(data)
	if err != nil {
		return err
	}
	t.Ty = ty
	return nil
}

type tyParameterizedJSON struct {
	Base  json.RawMessage `json:"base"`
	Param *Node           `json:"param"`
}

type tyFunctionJSON struct {
	Args   []json.RawMessage `json:"args"`
	Return json.RawMessage   `json:"return"`
}

func encodeTy(ty Ty) ([]byte, error) {
	var (
		key     string
		payload any
	)
	switch t := ty.(type) {
	case nil:
		return jsonNull, nil
	case TyLiteral:
		key, payload = "Literal", string(t)
	case TyNamed:
		key, payload = "Named", string(t)
	case *TyParameterized:
		base, err := encodeTy(t.Base)
		if err != nil {
			return nil, err
		}
		key, payload = "Parameterized", tyParameterizedJSON{Base: base, Param: t.Param}
	case TyAnyOf:
		variants := make([]json.RawMessage, len(t))
		for i, v := range t {
			enc, err := encodeTy(v)
			if err != nil {
				return nil, err
			}
			variants[i] = enc
		}
		key, payload = "AnyOf", variants
	case *TyFunction:
		fn := tyFunctionJSON{Args: make([]json.RawMessage, len(t.Args))}
		for i, a := range t.Args {
			enc, err := encodeTy(a)
			if err != nil {
				return nil, err
			}
			fn.Args[i] = enc
		}
		ret, err := encodeTy(t.Return)
		if err != nil {
			return nil, err
		}
		fn.Return = ret
		key, payload = "Function", fn
	case TyUnknown:
		key, payload = "Unknown", nil
	default:
		return nil, fmt.Errorf("%w: type %T", ErrUnknownKind, ty)
	}
	return json.Marshal(map[string]any{key: payload})
}

func decodeTy(data []byte) (Ty, error) {
	if isNull(data) {
		return nil, nil
	}
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	key, raw, err := singleKey(obj)
	if err != nil {
		return nil, err
	}
	switch key {
	case "Literal":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding type: %w", err)
		}
		return TyLiteral(s), nil
	case "Named":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding type: %w", err)
		}
		return TyNamed(s), nil
	case "Parameterized":
		var p tyParameterizedJSON
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding type: %w", err)
		}
		base, err := decodeTy(p.Base)
		if err != nil {
			return nil, err
		}
		return &TyParameterized{Base: base, Param: p.Param}, nil
	case "AnyOf":
		var variants []json.RawMessage
		if err := json.Unmarshal(raw, &variants); err != nil {
			return nil, fmt.Errorf("decoding type: %w", err)
		}
		out := make(TyAnyOf, len(variants))
		for i, v := range variants {
			if out[i], err = decodeTy(v); err != nil {
				return nil, err
			}
		}
		return out, nil
	case "Function":
		var fn tyFunctionJSON
		if err := json.Unmarshal(raw, &fn); err != nil {
			return nil, fmt.Errorf("decoding type: %w", err)
		}
		out := &TyFunction{Args: make([]Ty, len(fn.Args))}
		for i, a := range fn.Args {
			if out.Args[i], err = decodeTy(a); err != nil {
				return nil, err
			}
		}
		if out.Return, err = decodeTy(fn.Return); err != nil {
			return nil, err
		}
		return out, nil
	case "Unknown":
		return TyUnknown{}, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownKind, key)
	}
}

// ---------- Interpolation ----------

// MarshalJSON implements json.Marshaler.
func (s SString) MarshalJSON() ([]byte, error) { return encodeParts(s) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *SString) UnmarshalJSON(data []byte) error {
	parts, err := decodeParts(data)
	*s = parts
	return err
}

// MarshalJSON implements json.Marshaler.
func (s FString) MarshalJSON() ([]byte, error) { return encodeParts(s) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *FString) UnmarshalJSON(data []byte) error {
	parts, err := decodeParts(data)
	*s = parts
	return err
}

func encodeParts(parts []InterpolateItem) ([]byte, error) {
	out := make([]map[string]any, len(parts))
	for i, part := range parts {
		switch p := part.(type) {
		case InterpolateString:
			out[i] = map[string]any{"String": string(p)}
		case InterpolateExpr:
			out[i] = map[string]any{"Expr": p.Expr}
		default:
			return nil, fmt.Errorf("%w: interpolation part %T", ErrUnknownKind, part)
		}
	}
	return json.Marshal(out)
}

func decodeParts(data []byte) ([]InterpolateItem, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding interpolation: %w", err)
	}
	parts := make([]InterpolateItem, len(raws))
	for i, r := range raws {
		obj, err := decodeObject(r)
		if err != nil {
			return nil, err
		}
		key, raw, err := singleKey(obj)
		if err != nil {
			return nil, err
		}
		switch key {
		case "String":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("decoding interpolation: %w", err)
			}
			parts[i] = InterpolateString(s)
		case "Expr":
			var n Node
			if err := json.Unmarshal(raw, &n); err != nil {
				return nil, err
			}
			parts[i] = InterpolateExpr{Expr: &n}
		default:
			return nil, fmt.Errorf("%w: interpolation part %q", ErrUnknownKind, key)
		}
	}
	return parts, nil
}

// ---------- helpers ----------

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return obj, nil
}

func singleKey(obj map[string]json.RawMessage) (string, json.RawMessage, error) {
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one variant key, found %d", ErrMalformed, len(obj))
	}
	for k, v := range obj {
		return k, v, nil
	}
	panic("unreachable")
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
