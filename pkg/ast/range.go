package ast

import "fmt"

// Range is an inclusive-inclusive interval.
// A nil bound means the range is unbounded on that side.
type Range struct {
	Start *Node `json:"start"`
	End   *Node `json:"end"`
}

func (*Range) itemNode() {}

// IntRange is a Range whose bounds have been resolved to integers.
type IntRange struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

// Unbounded returns the range `..`.
func Unbounded() *Range {
	return &Range{}
}

// RangeFromInts returns a range whose present bounds are integer literals.
func RangeFromInts(start, end *int64) *Range {
	return &Range{Start: intBound(start), End: intBound(end)}
}

func intBound(v *int64) *Node {
	if v == nil {
		return nil
	}
	return NewNode(NewInteger(*v))
}

// IntoInt resolves both bounds to integers.
// A present bound that is not an integer literal fails with a
// *TypeMismatchError.
func (r *Range) IntoInt() (IntRange, error) {
	start, err := boundToInt(r.Start)
	if err != nil {
		return IntRange{}, fmt.Errorf("range start: %w", err)
	}
	end, err := boundToInt(r.End)
	if err != nil {
		return IntRange{}, fmt.Errorf("range end: %w", err)
	}
	return IntRange{Start: start, End: end}, nil
}

func boundToInt(bound *Node) (*int64, error) {
	if bound == nil {
		return nil, nil
	}
	lit, ok := bound.Item.(*Literal)
	if !ok {
		found := string(KindOf(bound.Item))
		if found == "" {
			found = "nothing"
		}
		return nil, &TypeMismatchError{Expected: string(LiteralInteger), Found: found}
	}
	v, err := lit.AsInteger()
	if err != nil {
		return nil, err
	}
	return &v, nil
}
