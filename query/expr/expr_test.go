package expr_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/expr"
)

// addConst builds x => x + c.
func addConst(c int) (*expr.LambdaExpr, *expr.ParamExpr) {
	x := &expr.ParamExpr{Name: "x", Type: reflect.TypeFor[int]()}
	return &expr.LambdaExpr{
		Params: []*expr.ParamExpr{x},
		Body:   &expr.BinaryExpr{Op: expr.Add, Left: x, Right: &expr.ConstExpr{Value: c}},
	}, x
}

// rewriteConstants returns a copy of n where every integer constant is
// replaced by fn applied to it.
func rewriteConstants(t *testing.T, n expr.Node, fn func(int) int) expr.Node {
	t.Helper()
	switch n := n.(type) {
	case *expr.ConstExpr:
		_, _, value, err := n.Deconstruct()
		if err != nil {
			t.Fatalf("Deconstruct failed: %v", err)
		}
		if i, ok := value.(int); ok {
			return &expr.ConstExpr{Value: fn(i)}
		}
		return n
	case *expr.BinaryExpr:
		op, left, right, err := n.Deconstruct()
		if err != nil {
			t.Fatalf("Deconstruct failed: %v", err)
		}
		return &expr.BinaryExpr{
			Op:    op,
			Left:  rewriteConstants(t, left, fn),
			Right: rewriteConstants(t, right, fn),
		}
	}
	return n
}

func TestRewriteAndCompile(t *testing.T) {
	lambda, x := addConst(1)

	params, body, err := lambda.Deconstruct()
	if err != nil {
		t.Fatalf("Deconstruct failed: %v", err)
	}
	rewritten := &expr.LambdaExpr{
		Params: params,
		Body:   rewriteConstants(t, body, func(int) int { return 5 }),
	}
	if rewritten.Params[0] != x {
		t.Fatalf("rewritten lambda lost its parameter")
	}

	fn, err := expr.Compile(rewritten)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, err := fn(3)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if got != 8 {
		t.Errorf("got %v (%T), want 8", got, got)
	}

	// The original tree is untouched.
	orig, err := expr.Compile(lambda)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got, _ := orig(3); got != 4 {
		t.Errorf("original lambda got %v, want 4", got)
	}
}

type Address struct {
	City string
}

type hidden struct {
	Secret string
}

type person struct {
	Address
	hidden
	Name string `json:"name,omitempty"`
	Age  int
	Home *Address
}

func (p person) Adult() bool { return p.Age >= 18 }

func (p person) Greet(string) string { return "hi" }

type Badge struct {
	Level int
}

func (b Badge) Rank() int { return b.Level }

type Member struct {
	*Badge
	Name string
}

func TestCompileExpressions(t *testing.T) {
	p := &expr.ParamExpr{Name: "p", Type: reflect.TypeFor[person]()}
	age := &expr.MemberExpr{Target: p, Member: "Age"}

	tests := []struct {
		name string
		body expr.Node
		arg  any
		want any
	}{
		{
			name: "member",
			body: &expr.MemberExpr{Target: p, Member: "Name"},
			arg:  person{Name: "Ada"},
			want: "Ada",
		},
		{
			name: "promoted field",
			body: &expr.MemberExpr{Target: p, Member: "City"},
			arg:  person{Address: Address{City: "Oslo"}},
			want: "Oslo",
		},
		{
			name: "niladic call",
			body: &expr.CallExpr{Object: p, Method: "Adult"},
			arg:  person{Age: 30},
			want: true,
		},
		{
			name: "conditional",
			body: &expr.CondExpr{
				Test:    &expr.BinaryExpr{Op: expr.GreaterThanOrEqual, Left: age, Right: &expr.ConstExpr{Value: 18}},
				IfTrue:  &expr.ConstExpr{Value: "adult"},
				IfFalse: &expr.ConstExpr{Value: "minor"},
			},
			arg:  person{Age: 12},
			want: "minor",
		},
		{
			name: "negate keeps type",
			body: &expr.UnaryExpr{Op: expr.Negate, Operand: age},
			arg:  person{Age: 7},
			want: -7,
		},
		{
			name: "not",
			body: &expr.UnaryExpr{Op: expr.Not, Operand: &expr.CallExpr{Object: p, Method: "Adult"}},
			arg:  person{Age: 7},
			want: true,
		},
		{
			name: "string concatenation",
			body: &expr.BinaryExpr{Op: expr.Add, Left: &expr.MemberExpr{Target: p, Member: "Name"}, Right: &expr.ConstExpr{Value: "!"}},
			arg:  person{Name: "Bo"},
			want: "Bo!",
		},
		{
			name: "mixed numeric widens to float",
			body: &expr.BinaryExpr{Op: expr.Multiply, Left: age, Right: &expr.ConstExpr{Value: 0.5}},
			arg:  person{Age: 9},
			want: 4.5,
		},
		{
			name: "short circuit skips right side",
			body: &expr.BinaryExpr{
				Op:    expr.AndAlso,
				Left:  &expr.ConstExpr{Value: false},
				Right: &expr.BinaryExpr{Op: expr.Divide, Left: age, Right: &expr.ConstExpr{Value: 0}},
			},
			arg:  person{Age: 1},
			want: false,
		},
		{
			name: "coalesce",
			body: &expr.BinaryExpr{Op: expr.Coalesce, Left: &expr.ConstExpr{}, Right: &expr.ConstExpr{Value: "fallback"}},
			arg:  person{},
			want: "fallback",
		},
		{
			name: "block yields last",
			body: &expr.BlockExpr{Exprs: []expr.Node{&expr.ConstExpr{Value: 1}, age}},
			arg:  person{Age: 42},
			want: 42,
		},
		{
			name: "default",
			body: &expr.DefaultExpr{Type: reflect.TypeFor[int]()},
			arg:  person{},
			want: 0,
		},
		{
			name: "equal",
			body: &expr.BinaryExpr{Op: expr.Equal, Left: age, Right: &expr.ConstExpr{Value: int64(3)}},
			arg:  person{Age: 3},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := expr.Compile(&expr.LambdaExpr{Params: []*expr.ParamExpr{p}, Body: tt.body})
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			got, err := fn(tt.arg)
			if err != nil {
				t.Fatalf("evaluation failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := expr.Compile(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil lambda: expected ErrInvalidArgument, got %v", err)
	}

	unsupported := []expr.Node{
		nil,
		(*expr.BinaryExpr)(nil),
		&expr.LoopExpr{},
		&expr.UnaryExpr{Op: expr.Convert, Operand: &expr.ConstExpr{Value: 1}},
		&expr.BinaryExpr{Op: expr.Assign, Left: &expr.ConstExpr{Value: 1}, Right: &expr.ConstExpr{Value: 2}},
		&expr.CallExpr{Method: "Println"},
		&expr.BlockExpr{},
	}
	for _, body := range unsupported {
		_, err := expr.Compile(&expr.LambdaExpr{Body: body})
		if !errors.Is(err, expr.ErrUnsupported) {
			t.Errorf("body %#v: expected ErrUnsupported, got %v", body, err)
		}
	}

	p := &expr.ParamExpr{Name: "p"}
	runtime := []struct {
		name string
		body expr.Node
		arg  any
	}{
		{"divide by zero", &expr.BinaryExpr{Op: expr.Divide, Left: &expr.ConstExpr{Value: 1}, Right: &expr.ConstExpr{Value: 0}}, nil},
		{"nil target", &expr.MemberExpr{Target: p, Member: "Name"}, nil},
		{"nil embedded pointer", &expr.MemberExpr{Target: &expr.MemberExpr{Target: p, Member: "Home"}, Member: "City"}, person{}},
		{"missing member", &expr.MemberExpr{Target: p, Member: "name"}, person{}},
		{"type mismatch", &expr.BinaryExpr{Op: expr.Add, Left: p, Right: &expr.ConstExpr{Value: 1}}, "a"},
		{"promoted method through nil embedding", &expr.CallExpr{Object: p, Method: "Rank"}, Member{Name: "x"}},
	}
	for _, tt := range runtime {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := expr.Compile(&expr.LambdaExpr{Params: []*expr.ParamExpr{p}, Body: tt.body})
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if _, err := fn(tt.arg); err == nil {
				t.Errorf("expected evaluation error")
			}
		})
	}

	fn, _ := expr.Compile(&expr.LambdaExpr{Params: []*expr.ParamExpr{p}, Body: p})
	if _, err := fn(); err == nil {
		t.Errorf("expected arity error")
	}
}

func TestDeconstructNil(t *testing.T) {
	tests := map[string]func() error{
		"BinaryExpr":          func() error { _, _, _, err := (*expr.BinaryExpr)(nil).Deconstruct(); return err },
		"UnaryExpr":           func() error { _, _, err := (*expr.UnaryExpr)(nil).Deconstruct(); return err },
		"TypeBinaryExpr":      func() error { _, _, _, err := (*expr.TypeBinaryExpr)(nil).Deconstruct(); return err },
		"CondExpr":            func() error { _, _, _, _, err := (*expr.CondExpr)(nil).Deconstruct(); return err },
		"ConstExpr":           func() error { _, _, _, err := (*expr.ConstExpr)(nil).Deconstruct(); return err },
		"DefaultExpr":         func() error { _, _, err := (*expr.DefaultExpr)(nil).Deconstruct(); return err },
		"ParamExpr":           func() error { _, _, _, _, err := (*expr.ParamExpr)(nil).Deconstruct(); return err },
		"MemberExpr":          func() error { _, _, _, err := (*expr.MemberExpr)(nil).Deconstruct(); return err },
		"CallExpr":            func() error { _, _, _, _, err := (*expr.CallExpr)(nil).Deconstruct(); return err },
		"InvokeExpr":          func() error { _, _, _, err := (*expr.InvokeExpr)(nil).Deconstruct(); return err },
		"IndexExpr":           func() error { _, _, _, err := (*expr.IndexExpr)(nil).Deconstruct(); return err },
		"LambdaExpr":          func() error { _, _, err := (*expr.LambdaExpr)(nil).Deconstruct(); return err },
		"BlockExpr":           func() error { _, _, _, _, err := (*expr.BlockExpr)(nil).Deconstruct(); return err },
		"LabelTarget":         func() error { _, err := (*expr.LabelTarget)(nil).Deconstruct(); return err },
		"LabelExpr":           func() error { _, _, _, err := (*expr.LabelExpr)(nil).Deconstruct(); return err },
		"GotoExpr":            func() error { _, _, _, err := (*expr.GotoExpr)(nil).Deconstruct(); return err },
		"LoopExpr":            func() error { _, _, _, _, err := (*expr.LoopExpr)(nil).Deconstruct(); return err },
		"SwitchCase":          func() error { _, _, err := (*expr.SwitchCase)(nil).Deconstruct(); return err },
		"SwitchExpr":          func() error { _, _, _, _, err := (*expr.SwitchExpr)(nil).Deconstruct(); return err },
		"CatchBlock":          func() error { _, _, _, _, err := (*expr.CatchBlock)(nil).Deconstruct(); return err },
		"TryExpr":             func() error { _, _, _, _, _, err := (*expr.TryExpr)(nil).Deconstruct(); return err },
		"NewExpr":             func() error { _, _, _, _, err := (*expr.NewExpr)(nil).Deconstruct(); return err },
		"NewArrayExpr":        func() error { _, _, err := (*expr.NewArrayExpr)(nil).Deconstruct(); return err },
		"ElementInit":         func() error { _, _, err := (*expr.ElementInit)(nil).Deconstruct(); return err },
		"MemberAssignment":    func() error { _, _, _, err := (*expr.MemberAssignment)(nil).Deconstruct(); return err },
		"MemberMemberBinding": func() error { _, _, _, err := (*expr.MemberMemberBinding)(nil).Deconstruct(); return err },
		"MemberListBinding":   func() error { _, _, _, err := (*expr.MemberListBinding)(nil).Deconstruct(); return err },
		"MemberInitExpr":      func() error { _, _, _, err := (*expr.MemberInitExpr)(nil).Deconstruct(); return err },
		"ListInitExpr":        func() error { _, _, _, err := (*expr.ListInitExpr)(nil).Deconstruct(); return err },
	}
	for name, deconstruct := range tests {
		t.Run(name, func(t *testing.T) {
			if err := deconstruct(); !errors.Is(err, core.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestDeconstructValues(t *testing.T) {
	c := &expr.ConstExpr{Value: "x"}
	op, typ, value, err := c.Deconstruct()
	if err != nil || op != expr.Constant || typ != reflect.TypeFor[string]() || value != "x" {
		t.Errorf("ConstExpr.Deconstruct = %v, %v, %v, %v", op, typ, value, err)
	}

	one, two := &expr.ConstExpr{Value: 1}, &expr.ConstExpr{Value: 2}
	block := &expr.BlockExpr{Exprs: []expr.Node{one, two}}
	_, exprs, result, _, err := block.Deconstruct()
	if err != nil || len(exprs) != 2 || result != two {
		t.Errorf("BlockExpr.Deconstruct = %v, %v, %v", exprs, result, err)
	}

	brk := &expr.LabelTarget{Name: "break"}
	cont := &expr.LabelTarget{Name: "continue"}
	loop := &expr.LoopExpr{Body: one, Break: brk, Continue: cont}
	_, body, gotCont, gotBrk, err := loop.Deconstruct()
	if err != nil || body != one || gotCont != cont || gotBrk != brk {
		t.Errorf("LoopExpr.Deconstruct = %v, %v, %v, %v", body, gotCont, gotBrk, err)
	}

	var b expr.MemberBinding = &expr.MemberAssignment{Member: "Name", Value: c}
	if b.BindingType() != expr.BindAssignment || b.MemberName() != "Name" {
		t.Errorf("MemberAssignment = %v %q", b.BindingType(), b.MemberName())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind   expr.Kind
		want   string
		binary bool
		unary  bool
	}{
		{expr.Add, "Add", true, false},
		{expr.Assign, "Assign", true, false},
		{expr.Negate, "Negate", false, true},
		{expr.MemberAccess, "MemberAccess", false, false},
		{expr.Kind(999), "Kind(999)", false, false},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if tt.kind.IsBinary() != tt.binary || tt.kind.IsUnary() != tt.unary {
			t.Errorf("%s: IsBinary=%v IsUnary=%v", tt.want, tt.kind.IsBinary(), tt.kind.IsUnary())
		}
	}
}

func TestLookupMember(t *testing.T) {
	typ := reflect.TypeFor[person]()

	tests := []struct {
		name     string
		tag      string
		want     string
		isMethod bool
		ok       bool
	}{
		{name: "Name", want: "Name", ok: true},
		{name: "City", want: "City", ok: true},
		{name: "Adult", want: "Adult", isMethod: true, ok: true},
		{name: "name", tag: "json", want: "Name", ok: true},
		{name: "name"},
		{name: "Greet"},
		{name: "Address", want: "Address", ok: true},
		{name: "Secret"},
		{name: "hidden"},
		{name: ""},
	}
	for _, tt := range tests {
		m, ok := expr.LookupMember(typ, tt.name, tt.tag)
		if ok != tt.ok {
			t.Errorf("LookupMember(%q, %q) ok = %v, want %v", tt.name, tt.tag, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if m.Name != tt.want || m.IsMethod() != tt.isMethod {
			t.Errorf("LookupMember(%q) = %s (method %v)", tt.name, m.Name, m.IsMethod())
		}
	}

	rank, ok := expr.LookupMember(reflect.TypeFor[Member](), "Rank", "")
	if !ok || !rank.IsMethod() {
		t.Fatal("expected promoted method Rank on Member")
	}
	if _, ok := rank.Get(reflect.ValueOf(Member{})); ok {
		t.Errorf("Get through nil embedded pointer should report false")
	}
	if v, ok := rank.Get(reflect.ValueOf(Member{Badge: &Badge{Level: 4}})); !ok || v.Int() != 4 {
		t.Errorf("Get = %v, %v", v, ok)
	}

	m, ok := expr.LookupMember(reflect.TypeFor[*person](), "Age", "")
	if !ok {
		t.Fatal("expected Age on *person")
	}
	if _, ok := m.Get(reflect.ValueOf((*person)(nil))); ok {
		t.Errorf("Get through nil pointer should report false")
	}
	v, ok := m.Get(reflect.ValueOf(&person{Age: 5}))
	if !ok || v.Int() != 5 {
		t.Errorf("Get = %v, %v", v, ok)
	}
}
