// Package expr models expression trees as a closed set of node variants.
//
// Each variant is a pointer struct with typed fields for its fixed children
// and a Deconstruct method that returns those children as a flat tuple, so
// callers can pattern match with a type switch:
//
//	switch n := node.(type) {
//	case *expr.BinaryExpr:
//		op, left, right, err := n.Deconstruct()
//		...
//	}
//
// Deconstruct on a nil variant returns an error wrapping
// core.ErrInvalidArgument. Compile evaluates a useful subset of trees.
package expr

import (
	"fmt"

	"github.com/lguimbarda/min-query/query/core"
)

// Kind identifies the operation a node performs.
type Kind int

// Kind constants. Binary and unary operators share the space with the
// structural node kinds.
const (
	KindInvalid Kind = iota

	// Binary operators
	Add
	Subtract
	Multiply
	Divide
	Modulo
	And
	Or
	ExclusiveOr
	AndAlso
	OrElse
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Coalesce
	Assign

	// Unary operators
	Negate
	Not
	Convert
	TypeAs
	ArrayLength

	// Structural kinds
	Conditional
	Constant
	Default
	Parameter
	MemberAccess
	Call
	Invoke
	Index
	Lambda
	Block
	Loop
	Goto
	Label
	Switch
	Try
	TypeIs
	TypeEqual
	New
	NewArrayInit
	NewArrayBounds
	MemberInit
	ListInit
)

var kindNames = map[Kind]string{
	Add: "Add", Subtract: "Subtract", Multiply: "Multiply", Divide: "Divide", Modulo: "Modulo",
	And: "And", Or: "Or", ExclusiveOr: "ExclusiveOr", AndAlso: "AndAlso", OrElse: "OrElse",
	Equal: "Equal", NotEqual: "NotEqual", LessThan: "LessThan", LessThanOrEqual: "LessThanOrEqual",
	GreaterThan: "GreaterThan", GreaterThanOrEqual: "GreaterThanOrEqual", Coalesce: "Coalesce",
	Assign: "Assign", Negate: "Negate", Not: "Not", Convert: "Convert", TypeAs: "TypeAs",
	ArrayLength: "ArrayLength", Conditional: "Conditional", Constant: "Constant", Default: "Default",
	Parameter: "Parameter", MemberAccess: "MemberAccess", Call: "Call", Invoke: "Invoke",
	Index: "Index", Lambda: "Lambda", Block: "Block", Loop: "Loop", Goto: "Goto", Label: "Label",
	Switch: "Switch", Try: "Try", TypeIs: "TypeIs", TypeEqual: "TypeEqual", New: "New",
	NewArrayInit: "NewArrayInit", NewArrayBounds: "NewArrayBounds", MemberInit: "MemberInit",
	ListInit: "ListInit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBinary reports whether k is a binary operator.
func (k Kind) IsBinary() bool { return k >= Add && k <= Assign }

// IsUnary reports whether k is a unary operator.
func (k Kind) IsUnary() bool { return k >= Negate && k <= ArrayLength }

// Node is implemented by every expression variant in this package.
type Node interface {
	// Kind returns the operation of the node.
	Kind() Kind
	exprNode() // Marker method to restrict implementations to this package
}

func nilNode() error {
	return core.NilArgument("node")
}
