package ast

import (
	"encoding/json"
	"fmt"
	"iter"
)

// NamedArgs maps argument names to values, keeping insertion order.
// Keys are unique. A nil *NamedArgs behaves as an empty map for reads.
type NamedArgs struct {
	names  []Ident
	values []*Node
	index  map[Ident]int
}

// NewNamedArgs returns an empty map.
func NewNamedArgs() *NamedArgs {
	return &NamedArgs{index: make(map[Ident]int)}
}

// Set binds name to value. Rebinding an existing name keeps its position.
func (a *NamedArgs) Set(name Ident, value *Node) {
	if a.index == nil {
		a.index = make(map[Ident]int)
	}
	if i, ok := a.index[name]; ok {
		a.values[i] = value
		return
	}
	a.index[name] = len(a.names)
	a.names = append(a.names, name)
	a.values = append(a.values, value)
}

// Get returns the value bound to name.
func (a *NamedArgs) Get(name Ident) (*Node, bool) {
	if a == nil {
		return nil, false
	}
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.values[i], true
}

// Delete removes name, preserving the order of the remaining entries.
func (a *NamedArgs) Delete(name Ident) {
	if a == nil {
		return
	}
	i, ok := a.index[name]
	if !ok {
		return
	}
	a.names = append(a.names[:i], a.names[i+1:]...)
	a.values = append(a.values[:i], a.values[i+1:]...)
	delete(a.index, name)
	for j := i; j < len(a.names); j++ {
		a.index[a.names[j]] = j
	}
}

// Len returns the number of entries.
func (a *NamedArgs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Keys returns the names in insertion order.
func (a *NamedArgs) Keys() []Ident {
	if a == nil {
		return nil
	}
	return append([]Ident(nil), a.names...)
}

// All iterates over the entries in insertion order.
func (a *NamedArgs) All() iter.Seq2[Ident, *Node] {
	return func(yield func(Ident, *Node) bool) {
		if a == nil {
			return
		}
		for i, name := range a.names {
			if !yield(name, a.values[i]) {
				return
			}
		}
	}
}

type namedArgJSON struct {
	Name Ident `json:"name"`
	Expr *Node `json:"expr"`
}

// MarshalJSON encodes the entries as an ordered array of name/expr pairs.
func (a *NamedArgs) MarshalJSON() ([]byte, error) {
	entries := make([]namedArgJSON, 0, a.Len())
	for name, value := range a.All() {
		entries = append(entries, namedArgJSON{Name: name, Expr: value})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an ordered array of name/expr pairs.
// Duplicate names are rejected.
func (a *NamedArgs) UnmarshalJSON(data []byte) error {
	var entries []namedArgJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*a = NamedArgs{index: make(map[Ident]int, len(entries))}
	for _, e := range entries {
		if _, dup := a.index[e.Name]; dup {
			return fmt.Errorf("%w: duplicate named argument %q", ErrMalformed, e.Name)
		}
		a.Set(e.Name, e.Expr)
	}
	return nil
}
