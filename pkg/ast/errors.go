package ast

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNotATransform = errors.New("not a transform")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrUnknownKind   = errors.New("unknown kind")
	ErrMalformed     = errors.New("malformed node")
)

// NotATransformError reports a pipeline stage that is not a Transform.
type NotATransformError struct {
	Index int  // position of the stage in the pipeline
	Item  Item // the offending item
}

func (e *NotATransformError) Error() string {
	kind := KindOf(e.Item)
	if kind == "" {
		kind = "nil item"
	}
	return fmt.Sprintf("failed to convert %s at pipeline position %d into a transform", kind, e.Index)
}

// Is reports whether target is ErrNotATransform.
func (e *NotATransformError) Is(target error) bool {
	return target == ErrNotATransform
}

// TypeMismatchError reports a value of the wrong kind where a specific kind
// was required.
type TypeMismatchError struct {
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
