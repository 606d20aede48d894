// Package ast defines the syntax tree of PRQL programs.
//
// This package contains:
//   - Node, the owning wrapper around every subtree
//   - Item, the closed set of syntactic forms (a sealed interface)
//   - Operators, literals, transforms and type expressions
//   - The two fallible structural conversions (Pipeline.IntoTransforms,
//     Range.IntoInt)
//   - The tag+payload JSON interchange codec
//
// Every Node exclusively owns its children, so a tree is finite and acyclic.
// Trees are not mutated after construction and may be read concurrently.
//
// The Golden Rule: pkg/ast imports ONLY stdlib.
package ast
