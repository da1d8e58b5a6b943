package expr

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lguimbarda/min-query/query/core"
)

// ErrUnsupported is returned by Compile and by compiled functions for nodes
// the evaluator does not handle.
var ErrUnsupported = errors.New("unsupported expression")

// Func is a compiled lambda. It takes one argument per lambda parameter.
type Func func(args ...any) (any, error)

// Compile turns a lambda into an evaluator. Supported nodes are constants,
// defaults, parameters, member access, niladic calls, arithmetic, bitwise,
// comparison and logical binaries, negation and logical not, conditionals
// and blocks. The tree is checked once here; evaluation errors (division
// by zero, nil member targets, operand type mismatches) are reported by the
// returned Func.
func Compile(lambda *LambdaExpr) (Func, error) {
	if lambda == nil {
		return nil, core.NilArgument("lambda")
	}
	if err := check(lambda.Body); err != nil {
		return nil, err
	}
	params := lambda.Params
	return func(args ...any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("lambda takes %d arguments, got %d", len(params), len(args))
		}
		env := make(map[*ParamExpr]any, len(params))
		for i, p := range params {
			env[p] = args[i]
		}
		return eval(lambda.Body, env)
	}, nil
}

func check(n Node) error {
	if n == nil || reflect.ValueOf(n).IsNil() {
		return fmt.Errorf("%w: missing node", ErrUnsupported)
	}
	switch n := n.(type) {
	case *ConstExpr, *DefaultExpr, *ParamExpr:
		return nil
	case *MemberExpr:
		return check(n.Target)
	case *CallExpr:
		if n.Object == nil || len(n.Args) > 0 {
			return fmt.Errorf("%w: only niladic method calls are evaluated", ErrUnsupported)
		}
		return check(n.Object)
	case *BinaryExpr:
		if !n.Op.IsBinary() || n.Op == Assign {
			return fmt.Errorf("%w: binary operator %s", ErrUnsupported, n.Op)
		}
		if err := check(n.Left); err != nil {
			return err
		}
		return check(n.Right)
	case *UnaryExpr:
		if n.Op != Negate && n.Op != Not {
			return fmt.Errorf("%w: unary operator %s", ErrUnsupported, n.Op)
		}
		return check(n.Operand)
	case *CondExpr:
		for _, child := range []Node{n.Test, n.IfTrue, n.IfFalse} {
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	case *BlockExpr:
		if len(n.Exprs) == 0 {
			return fmt.Errorf("%w: empty block", ErrUnsupported)
		}
		for _, child := range n.Exprs {
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
}

func eval(n Node, env map[*ParamExpr]any) (any, error) {
	switch n := n.(type) {
	case *ConstExpr:
		return n.Value, nil
	case *DefaultExpr:
		if n.Type == nil {
			return nil, nil
		}
		return reflect.Zero(n.Type).Interface(), nil
	case *ParamExpr:
		v, ok := env[n]
		if !ok {
			return nil, fmt.Errorf("parameter %q is not in scope", n.Name)
		}
		return v, nil
	case *MemberExpr:
		return evalMember(n.Target, n.Member, env)
	case *CallExpr:
		return evalMember(n.Object, n.Method, env)
	case *BinaryExpr:
		return evalBinary(n, env)
	case *UnaryExpr:
		return evalUnary(n, env)
	case *CondExpr:
		test, err := eval(n.Test, env)
		if err != nil {
			return nil, err
		}
		b, ok := test.(bool)
		if !ok {
			return nil, fmt.Errorf("conditional test is %T, not bool", test)
		}
		if b {
			return eval(n.IfTrue, env)
		}
		return eval(n.IfFalse, env)
	case *BlockExpr:
		var last any
		for _, child := range n.Exprs {
			v, err := eval(child, env)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
}

func evalMember(target Node, name string, env map[*ParamExpr]any) (any, error) {
	obj, err := eval(target, env)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("member %s accessed on nil", name)
	}
	v := reflect.ValueOf(obj)
	info, ok := LookupMember(v.Type(), name, "")
	if !ok {
		return nil, fmt.Errorf("type %s has no member %s", v.Type(), name)
	}
	out, ok := info.Get(v)
	if !ok {
		return nil, fmt.Errorf("member %s accessed through nil pointer", name)
	}
	return out.Interface(), nil
}

func evalUnary(n *UnaryExpr, env map[*ParamExpr]any) (any, error) {
	operand, err := eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	if n.Op == Not {
		b, ok := operand.(bool)
		if !ok {
			return nil, fmt.Errorf("not applied to %T", operand)
		}
		return !b, nil
	}
	v := reflect.ValueOf(operand)
	switch {
	case isInt(v):
		return restore(-v.Int(), v.Type()), nil
	case isFloat(v):
		return restore(-v.Float(), v.Type()), nil
	}
	return nil, fmt.Errorf("negate applied to %T", operand)
}

func evalBinary(n *BinaryExpr, env map[*ParamExpr]any) (any, error) {
	left, err := eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	// Short-circuit operators evaluate the right side only when needed.
	switch n.Op {
	case AndAlso, OrElse:
		l, ok := left.(bool)
		if !ok {
			return nil, fmt.Errorf("%s applied to %T", n.Op, left)
		}
		if (n.Op == AndAlso && !l) || (n.Op == OrElse && l) {
			return l, nil
		}
		right, err := eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		r, ok := right.(bool)
		if !ok {
			return nil, fmt.Errorf("%s applied to %T", n.Op, right)
		}
		return r, nil
	case Coalesce:
		if left != nil {
			return left, nil
		}
		return eval(n.Right, env)
	}

	right, err := eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Op, left, right)
}

func applyBinary(op Kind, left, right any) (any, error) {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)

	if op == Equal || op == NotEqual {
		eq, err := equalValues(lv, rv)
		if err != nil {
			return nil, err
		}
		return eq == (op == Equal), nil
	}

	switch {
	case isInt(lv) && isInt(rv):
		return intBinary(op, lv.Int(), rv.Int(), sameType(lv, rv))
	case isNumber(lv) && isNumber(rv):
		return floatBinary(op, toFloat(lv), toFloat(rv), sameType(lv, rv))
	case lv.Kind() == reflect.String && rv.Kind() == reflect.String:
		return stringBinary(op, lv.String(), rv.String())
	case lv.Kind() == reflect.Bool && rv.Kind() == reflect.Bool:
		return boolBinary(op, lv.Bool(), rv.Bool())
	}
	return nil, fmt.Errorf("%s applied to %T and %T", op, left, right)
}

func intBinary(op Kind, a, b int64, typ reflect.Type) (any, error) {
	switch op {
	case Add:
		return restore(a+b, typ), nil
	case Subtract:
		return restore(a-b, typ), nil
	case Multiply:
		return restore(a*b, typ), nil
	case Divide, Modulo:
		if b == 0 {
			return nil, errors.New("integer division by zero")
		}
		if op == Divide {
			return restore(a/b, typ), nil
		}
		return restore(a%b, typ), nil
	case And:
		return restore(a&b, typ), nil
	case Or:
		return restore(a|b, typ), nil
	case ExclusiveOr:
		return restore(a^b, typ), nil
	}
	return compareResult(op, cmpOrdered(a, b))
}

func floatBinary(op Kind, a, b float64, typ reflect.Type) (any, error) {
	switch op {
	case Add:
		return restore(a+b, typ), nil
	case Subtract:
		return restore(a-b, typ), nil
	case Multiply:
		return restore(a*b, typ), nil
	case Divide:
		return restore(a/b, typ), nil
	}
	return compareResult(op, cmpOrdered(a, b))
}

func stringBinary(op Kind, a, b string) (any, error) {
	if op == Add {
		return a + b, nil
	}
	return compareResult(op, cmpOrdered(a, b))
}

func boolBinary(op Kind, a, b bool) (any, error) {
	switch op {
	case And:
		return a && b, nil
	case Or:
		return a || b, nil
	case ExclusiveOr:
		return a != b, nil
	}
	return nil, fmt.Errorf("%s applied to bool operands", op)
}

func compareResult(op Kind, c int) (any, error) {
	switch op {
	case LessThan:
		return c < 0, nil
	case LessThanOrEqual:
		return c <= 0, nil
	case GreaterThan:
		return c > 0, nil
	case GreaterThanOrEqual:
		return c >= 0, nil
	}
	return nil, fmt.Errorf("%w: binary operator %s", ErrUnsupported, op)
}

func equalValues(a, b reflect.Value) (bool, error) {
	switch {
	case !a.IsValid() || !b.IsValid():
		return a.IsValid() == b.IsValid(), nil
	case isInt(a) && isInt(b):
		return a.Int() == b.Int(), nil
	case isNumber(a) && isNumber(b):
		return toFloat(a) == toFloat(b), nil
	case a.Type() == b.Type() && a.Comparable():
		return a.Equal(b), nil
	}
	return false, fmt.Errorf("cannot compare %s and %s", a.Type(), b.Type())
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func isNumber(v reflect.Value) bool { return isInt(v) || isFloat(v) }

func toFloat(v reflect.Value) float64 {
	if isInt(v) {
		return float64(v.Int())
	}
	return v.Float()
}

func sameType(a, b reflect.Value) reflect.Type {
	if a.Type() == b.Type() {
		return a.Type()
	}
	return nil
}

// restore converts a widened result back to the operands' type when both
// operands shared one.
func restore[T int64 | float64](v T, typ reflect.Type) any {
	if typ == nil {
		return v
	}
	return reflect.ValueOf(v).Convert(typ).Interface()
}
