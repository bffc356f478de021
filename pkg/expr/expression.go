package expr

import "github.com/wildfunctions/symdiff/pkg/scalar"

// Expression owns one expression tree. Every combinator clones its
// operands, so an Expression can be reused on both sides of a new
// combination and two Expressions never share nodes. The zero Expression
// is empty: it renders as "" and fails to evaluate with ErrEmptyExpression.
type Expression[T scalar.Scalar] struct {
	root ExprNode[T]
}

// Constant returns an expression holding the literal v.
func Constant[T scalar.Scalar](v T) Expression[T] {
	return Expression[T]{root: Const(v)}
}

// Variable returns an expression holding the free variable name.
func Variable[T scalar.Scalar](name string) Expression[T] {
	return Expression[T]{root: Var[T](name)}
}

// New wraps a deep, simplified copy of node.
func New[T scalar.Scalar](node ExprNode[T]) Expression[T] {
	if node == nil {
		return Expression[T]{}
	}
	return Expression[T]{root: Simplify(node)}
}

// IsEmpty reports whether e holds no tree.
func (e Expression[T]) IsEmpty() bool { return e.root == nil }

// Root returns a copy of the tree.
func (e Expression[T]) Root() ExprNode[T] {
	if e.root == nil {
		return nil
	}
	return e.root.Clone()
}

// Clone returns a structurally independent copy of e.
func (e Expression[T]) Clone() Expression[T] {
	return Expression[T]{root: e.Root()}
}

func (e Expression[T]) combine(op BinaryOp, o Expression[T]) Expression[T] {
	if e.root == nil || o.root == nil {
		return Expression[T]{}
	}
	return Expression[T]{root: Make(op, e.root.Clone(), o.root.Clone())}
}

func (e Expression[T]) Add(o Expression[T]) Expression[T] { return e.combine(OpAdd, o) }
func (e Expression[T]) Sub(o Expression[T]) Expression[T] { return e.combine(OpSub, o) }
func (e Expression[T]) Mul(o Expression[T]) Expression[T] { return e.combine(OpMul, o) }
func (e Expression[T]) Div(o Expression[T]) Expression[T] { return e.combine(OpDiv, o) }
func (e Expression[T]) Pow(o Expression[T]) Expression[T] { return e.combine(OpPow, o) }

// Neg returns -1*e.
func (e Expression[T]) Neg() Expression[T] {
	return Constant(T(-1)).Mul(e)
}

func (e Expression[T]) apply(fn Func) Expression[T] {
	if e.root == nil {
		return Expression[T]{}
	}
	return Expression[T]{root: NewFunc(fn, e.root.Clone())}
}

func (e Expression[T]) Sin() Expression[T] { return e.apply(FnSin) }
func (e Expression[T]) Cos() Expression[T] { return e.apply(FnCos) }
func (e Expression[T]) Exp() Expression[T] { return e.apply(FnExp) }
func (e Expression[T]) Ln() Expression[T]  { return e.apply(FnLn) }

func Sin[T scalar.Scalar](e Expression[T]) Expression[T] { return e.Sin() }
func Cos[T scalar.Scalar](e Expression[T]) Expression[T] { return e.Cos() }
func Exp[T scalar.Scalar](e Expression[T]) Expression[T] { return e.Exp() }
func Ln[T scalar.Scalar](e Expression[T]) Expression[T]  { return e.Ln() }

// Apply returns fn(e).
func Apply[T scalar.Scalar](fn Func, e Expression[T]) Expression[T] { return e.apply(fn) }

// Eval evaluates e under vars. A missing variable fails with
// *UnboundVariableError; undefined arithmetic fails with *scalar.DomainError.
func (e Expression[T]) Eval(vars Bindings[T]) (T, error) {
	if e.root == nil {
		var z T
		return z, ErrEmptyExpression
	}
	return e.root.Eval(vars)
}

// String serializes e in fully parenthesized infix form.
func (e Expression[T]) String() string {
	if e.root == nil {
		return ""
	}
	return e.root.String()
}

func (e Expression[T]) LaTeX() string {
	if e.root == nil {
		return ""
	}
	return e.root.LaTeX()
}

// Diff returns the simplified derivative of e with respect to name.
func (e Expression[T]) Diff(name string) Expression[T] {
	if e.root == nil {
		return Expression[T]{}
	}
	return Expression[T]{root: e.root.Diff(name)}
}

// DiffN differentiates n times.
func (e Expression[T]) DiffN(name string, n int) Expression[T] {
	for i := 0; i < n; i++ {
		e = e.Diff(name)
	}
	return e
}

func (e Expression[T]) NodeCount() int {
	if e.root == nil {
		return 0
	}
	return e.root.NodeCount()
}

func (e Expression[T]) Depth() int {
	if e.root == nil {
		return 0
	}
	return e.root.Depth()
}

// Variables returns the sorted free variable names of e.
func (e Expression[T]) Variables() []string {
	if e.root == nil {
		return nil
	}
	return Variables(e.root)
}
