package expr

import (
	"fmt"

	"github.com/wildfunctions/symdiff/pkg/scalar"
)

// The Make* constructors replace raw BinaryNode construction wherever a
// derivative or a combinator builds a node, so simplification happens
// bottom-up as the tree is built. Zero and one are recognized only as
// literal ConstNodes: x-x is left alone.

// MakeAdditive builds l+r or l-r.
func MakeAdditive[T scalar.Scalar](op BinaryOp, l, r ExprNode[T]) ExprNode[T] {
	if op != OpAdd && op != OpSub {
		panic(fmt.Sprintf("expr: MakeAdditive called with %q", op))
	}
	// 0 + x = x, 0 - x = -1*x
	if isConst(l, 0) {
		if op == OpSub {
			return MakeMul(Const[T](-1), r)
		}
		return r
	}
	// x ± 0 = x
	if isConst(r, 0) {
		return l
	}
	return fold(op, l, r)
}

// MakeMul builds l*r.
func MakeMul[T scalar.Scalar](l, r ExprNode[T]) ExprNode[T] {
	if isConst(l, 0) || isConst(r, 0) {
		return Const[T](0)
	}
	if isConst(l, 1) {
		return r
	}
	if isConst(r, 1) {
		return l
	}
	return fold(OpMul, l, r)
}

// MakeDiv builds l/r. A literal zero divisor is kept so that evaluation
// reports the domain error.
func MakeDiv[T scalar.Scalar](l, r ExprNode[T]) ExprNode[T] {
	if isConst(r, 1) {
		return l
	}
	if isConst(l, 0) {
		return Const[T](0)
	}
	return fold(OpDiv, l, r)
}

// MakePow builds l^r.
func MakePow[T scalar.Scalar](l, r ExprNode[T]) ExprNode[T] {
	if isConst(r, 1) {
		return l
	}
	if isConst(r, 0) {
		return Const[T](1)
	}
	return fold(OpPow, l, r)
}

// Make builds a binary node through the matching simplifying constructor.
func Make[T scalar.Scalar](op BinaryOp, l, r ExprNode[T]) ExprNode[T] {
	switch op {
	case OpAdd, OpSub:
		return MakeAdditive(op, l, r)
	case OpMul:
		return MakeMul(l, r)
	case OpDiv:
		return MakeDiv(l, r)
	case OpPow:
		return MakePow(l, r)
	default:
		panic(fmt.Sprintf("expr: unknown binary operator %d", int(op)))
	}
}

// Simplify rebuilds node bottom-up through the simplifying constructors.
// The result shares no nodes with the input.
func Simplify[T scalar.Scalar](node ExprNode[T]) ExprNode[T] {
	switch n := node.(type) {
	case *ConstNode[T]:
		return Const(n.Val)
	case *VarNode[T]:
		return Var[T](n.Name)
	case *BinaryNode[T]:
		return Make(n.Op, Simplify(n.Left), Simplify(n.Right))
	case *FuncNode[T]:
		return NewFunc(n.Fn, Simplify(n.Arg))
	default:
		panic(fmt.Sprintf("expr: unknown node %T", node))
	}
}

// fold replaces two constants by their value. A fold that would fail
// (1/0, ln of the folded value, overflow) builds the node instead.
func fold[T scalar.Scalar](op BinaryOp, l, r ExprNode[T]) ExprNode[T] {
	lc, lok := l.(*ConstNode[T])
	rc, rok := r.(*ConstNode[T])
	if lok && rok {
		if v, err := applyBinary(op, lc.Val, rc.Val); err == nil {
			return Const(v)
		}
	}
	return &BinaryNode[T]{Op: op, Left: l, Right: r}
}

func isConst[T scalar.Scalar](n ExprNode[T], v T) bool {
	c, ok := n.(*ConstNode[T])
	return ok && c.Val == v
}
