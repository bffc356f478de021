package expr

import (
	"math"
	"testing"

	"github.com/wildfunctions/symdiff/pkg/scalar"
)

// Builders for raw (unsimplified) real-domain trees.

func num(v float64) ExprNode[float64] { return &ConstNode[float64]{Val: v} }

func sym(name string) ExprNode[float64] { return &VarNode[float64]{Name: name} }

func bin(op BinaryOp, l, r ExprNode[float64]) ExprNode[float64] {
	return &BinaryNode[float64]{Op: op, Left: l, Right: r}
}

func call(fn Func, arg ExprNode[float64]) ExprNode[float64] {
	return &FuncNode[float64]{Fn: fn, Arg: arg}
}

func assertEval(t *testing.T, node ExprNode[float64], vars Bindings[float64], want, tol float64) {
	t.Helper()
	got, err := node.Eval(vars)
	if err != nil {
		t.Fatalf("Eval(%s) returned error: %v", node.String(), err)
	}
	if math.Abs(got-want) > tol {
		t.Errorf("Eval(%s) = %v, want %v (tol=%v)", node.String(), got, want, tol)
	}
}

func assertEvalComplex(t *testing.T, node ExprNode[complex128], vars Bindings[complex128], want complex128) {
	t.Helper()
	got, err := node.Eval(vars)
	if err != nil {
		t.Fatalf("Eval(%s) returned error: %v", node.String(), err)
	}
	if !scalar.ApproxEqual(got, want, 1e-12) {
		t.Errorf("Eval(%s) = %v, want %v", node.String(), got, want)
	}
}
