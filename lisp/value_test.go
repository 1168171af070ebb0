package lisp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprRoundTrip(t *testing.T) {
	lam := &Lambda{Procedure{Params: []string{"x"}, Body: []Expr{Ident{Name: "x"}}, Arity: 1}}
	fn := &Function{Name: "f", Procedure: lam.Procedure}
	tests := []struct {
		name string
		expr Expr
		val  Value
	}{
		{"ident", Ident{Name: "x"}, ExprValue{Expr: Ident{Name: "x"}}},
		{"tree",
			NewTree(Ident{Name: "+"}, Int(1), Ident{Name: "x"}),
			ExprValue{Expr: NewTree(Ident{Name: "+"}, Int(1), Ident{Name: "x"})}},
		{"empty tree", &Tree{}, ExprValue{Expr: &Tree{}}},
		{"quoted symbol", Quote(Ident{Name: "a"}), ExprValue{Expr: Quote(Ident{Name: "a"})}},
		{"quoted list",
			Quote(NewTree(Int(1), Int(2))),
			ExprValue{Expr: Quote(NewTree(Int(1), Int(2)))}},
		{"literal integer", Int(3), Int(3)},
		{"literal string", String("s"), String("s")},
		{"literal boolean", Bool(false), Bool(false)},
		{"list", ValueExpr{Value: List{Int(1), Int(2)}}, List{Int(1), Int(2)}},
		{"empty list", ValueExpr{Value: List{}}, List{}},
		{"pair", ValueExpr{Value: &Pair{Int(1), Int(2)}}, &Pair{Int(1), Int(2)}},
		{"function", ValueExpr{Value: fn}, fn},
		{"lambda", ValueExpr{Value: lam}, lam},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := FromExpr(test.expr)
			assert.Equal(t, test.val, v)
			e, err := ToExpr(v)
			require.NoError(t, err)
			assert.Equal(t, test.expr, e)
		})
	}
}

func TestLiteralsSelfEvaluate(t *testing.T) {
	in, err := New()
	require.NoError(t, err)
	cx := in.Root(context.Background())
	for _, lit := range []Literal{Int(7), Float(2.5), String("x"), Bool(true)} {
		v := FromExpr(lit)
		assert.IsType(t, Literal{}, v)
		assert.Equal(t, lit, v)
		ev, err := cx.EvalExpr(lit)
		require.NoError(t, err)
		assert.Equal(t, lit, ev)
	}
}

func TestToExprSymbol(t *testing.T) {
	e, err := ToExpr(Symbol("a"))
	require.NoError(t, err)
	assert.Equal(t, Quote(Ident{Name: "a"}), e)
	assert.True(t, Equal(Symbol("a"), FromExpr(e)))
}

func TestToExprVoid(t *testing.T) {
	_, err := ToExpr(Void{})
	require.Error(t, err)
	kind, ok := ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrConversion, kind)

	_, err = ToExpr(nil)
	kind, ok = ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrConversion, kind)
}

func TestValueExprEval(t *testing.T) {
	in, err := New()
	require.NoError(t, err)
	cx := in.Root(context.Background())

	v, err := cx.EvalExpr(ValueExpr{Value: List{Int(1)}})
	require.NoError(t, err)
	assert.Equal(t, List{Int(1)}, v)

	lam := &Lambda{Procedure{Params: []string{"x"}, Body: []Expr{Ident{Name: "x"}}, Arity: 1}}
	v, err = cx.EvalExpr(NewTree(ValueExpr{Value: lam}, Int(4)))
	require.NoError(t, err)
	assert.Equal(t, Int(4), v)

	_, err = cx.EvalExpr(NewTree(ValueExpr{Value: List{}}, Int(4)))
	assert.Error(t, err)
}

func TestCallVoidArgument(t *testing.T) {
	in, err := New()
	require.NoError(t, err)
	lam := &Lambda{Procedure{Params: []string{"x"}, Body: []Expr{Ident{Name: "x"}}, Arity: 1}}
	_, err = in.Apply(context.Background(), lam, Void{})
	kind, ok := ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrConversion, kind)
	assert.EqualError(t, err, "argument 1 has no value")
}
