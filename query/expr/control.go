package expr

import (
	"reflect"

	"github.com/lguimbarda/min-query/query/core"
)

// ---------- Control flow ----------

// BlockExpr represents a sequence of expressions with scoped variables.
// Its value is the value of the last expression.
type BlockExpr struct {
	Variables []*ParamExpr
	Exprs     []Node
}

func (*BlockExpr) exprNode() {}

// Kind implements Node.
func (*BlockExpr) Kind() Kind { return Block }

// Result returns the last expression of the block, or nil if it is empty.
func (b *BlockExpr) Result() Node {
	if b == nil || len(b.Exprs) == 0 {
		return nil
	}
	return b.Exprs[len(b.Exprs)-1]
}

// Deconstruct returns the expressions, the result expression and the variables.
func (b *BlockExpr) Deconstruct() (op Kind, exprs []Node, result Node, variables []*ParamExpr, err error) {
	if b == nil {
		return KindInvalid, nil, nil, nil, nilNode()
	}
	return Block, b.Exprs, b.Result(), b.Variables, nil
}

// LabelTarget identifies a jump destination.
type LabelTarget struct {
	Name string
	Type reflect.Type
}

// Deconstruct returns the label name.
func (l *LabelTarget) Deconstruct() (name string, err error) {
	if l == nil {
		return "", core.NilArgument("label")
	}
	return l.Name, nil
}

// LabelExpr marks a position a GotoExpr can jump to. Default is the value
// of the label when reached by normal flow.
type LabelExpr struct {
	Target  *LabelTarget
	Default Node
}

func (*LabelExpr) exprNode() {}

// Kind implements Node.
func (*LabelExpr) Kind() Kind { return Label }

// Deconstruct returns the default value and the target.
func (l *LabelExpr) Deconstruct() (op Kind, defaultValue Node, target *LabelTarget, err error) {
	if l == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return Label, l.Default, l.Target, nil
}

// GotoKind distinguishes the flavours of jump.
type GotoKind int

// GotoKind constants.
const (
	GotoJump GotoKind = iota
	GotoReturn
	GotoBreak
	GotoContinue
)

// GotoExpr represents an unconditional jump.
type GotoExpr struct {
	Jump   GotoKind
	Target *LabelTarget
	Value  Node
}

func (*GotoExpr) exprNode() {}

// Kind implements Node.
func (*GotoExpr) Kind() Kind { return Goto }

// Deconstruct returns the jump kind and the target.
func (g *GotoExpr) Deconstruct() (op Kind, jump GotoKind, target *LabelTarget, err error) {
	if g == nil {
		return KindInvalid, GotoJump, nil, nilNode()
	}
	return Goto, g.Jump, g.Target, nil
}

// LoopExpr represents an infinite loop left through its break label.
type LoopExpr struct {
	Body     Node
	Break    *LabelTarget
	Continue *LabelTarget
}

func (*LoopExpr) exprNode() {}

// Kind implements Node.
func (*LoopExpr) Kind() Kind { return Loop }

// Deconstruct returns the body and the continue and break labels.
func (l *LoopExpr) Deconstruct() (op Kind, body Node, continueLabel, breakLabel *LabelTarget, err error) {
	if l == nil {
		return KindInvalid, nil, nil, nil, nilNode()
	}
	return Loop, l.Body, l.Continue, l.Break, nil
}

// SwitchCase is one arm of a SwitchExpr.
type SwitchCase struct {
	Values []Node
	Body   Node
}

// Deconstruct returns the body and the test values.
func (c *SwitchCase) Deconstruct() (body Node, values []Node, err error) {
	if c == nil {
		return nil, nil, core.NilArgument("case")
	}
	return c.Body, c.Values, nil
}

// SwitchExpr represents a multi-way branch on Value.
type SwitchExpr struct {
	Value   Node
	Cases   []*SwitchCase
	Default Node
}

func (*SwitchExpr) exprNode() {}

// Kind implements Node.
func (*SwitchExpr) Kind() Kind { return Switch }

// Deconstruct returns the switched value, the cases and the default body.
func (s *SwitchExpr) Deconstruct() (op Kind, value Node, cases []*SwitchCase, defaultBody Node, err error) {
	if s == nil {
		return KindInvalid, nil, nil, nil, nilNode()
	}
	return Switch, s.Value, s.Cases, s.Default, nil
}

// CatchBlock is one handler of a TryExpr. Test is the error type handled;
// Variable, when set, binds the caught error.
type CatchBlock struct {
	Test     reflect.Type
	Variable *ParamExpr
	Filter   Node
	Body     Node
}

// Deconstruct returns the body, the filter, the handled type and the bound variable.
func (c *CatchBlock) Deconstruct() (body, filter Node, test reflect.Type, variable *ParamExpr, err error) {
	if c == nil {
		return nil, nil, nil, nil, core.NilArgument("catch")
	}
	return c.Body, c.Filter, c.Test, c.Variable, nil
}

// TryExpr represents a guarded body with handlers.
type TryExpr struct {
	Body     Node
	Handlers []*CatchBlock
	Finally  Node
	Fault    Node
}

func (*TryExpr) exprNode() {}

// Kind implements Node.
func (*TryExpr) Kind() Kind { return Try }

// Deconstruct returns the body, the finally and fault blocks and the handlers.
func (t *TryExpr) Deconstruct() (op Kind, body, finally, fault Node, handlers []*CatchBlock, err error) {
	if t == nil {
		return KindInvalid, nil, nil, nil, nil, nilNode()
	}
	return Try, t.Body, t.Finally, t.Fault, t.Handlers, nil
}
