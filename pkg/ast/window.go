package ast

import "fmt"

// SortDirection orders a column ascending or descending.
type SortDirection int

// SortDirection constants.
const (
	Asc SortDirection = iota
	Desc
)

// String returns "Asc" or "Desc".
func (d SortDirection) String() string {
	if d == Desc {
		return "Desc"
	}
	return "Asc"
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Asc":
		*d = Asc
	case "Desc":
		*d = Desc
	default:
		return fmt.Errorf("%w: sort direction %q", ErrUnknownKind, text)
	}
	return nil
}

// ColumnSort is one sort key.
type ColumnSort struct {
	Direction SortDirection `json:"direction"`
	Column    *Node         `json:"column"`
}

// WindowKind selects whether a window frame counts rows or values.
type WindowKind int

// WindowKind constants.
const (
	WindowRows WindowKind = iota
	WindowRange
)

// String returns "Rows" or "Range".
func (k WindowKind) String() string {
	if k == WindowRange {
		return "Range"
	}
	return "Rows"
}

// MarshalText implements encoding.TextMarshaler.
func (k WindowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *WindowKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Rows":
		*k = WindowRows
	case "Range":
		*k = WindowRange
	default:
		return fmt.Errorf("%w: window kind %q", ErrUnknownKind, text)
	}
	return nil
}

// WindowFrame is the extent of a window.
type WindowFrame struct {
	Kind  WindowKind `json:"kind"`
	Range Range      `json:"range"`
}

// Windowed is an analytic expression evaluated over a window.
type Windowed struct {
	Expr   *Node        `json:"expr"`
	Group  []*Node      `json:"group"`
	Sort   []ColumnSort `json:"sort"`
	Window WindowFrame  `json:"window"`
}

func (*Windowed) itemNode() {}

// NewWindowed wraps node in a window with no grouping or sorting.
func NewWindowed(node *Node, kind WindowKind, r Range) *Windowed {
	return &Windowed{
		Expr:   node,
		Group:  []*Node{},
		Sort:   []ColumnSort{},
		Window: WindowFrame{Kind: kind, Range: r},
	}
}
