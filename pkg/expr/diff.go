package expr

import "fmt"

// Diff returns the derivative with respect to name. Every node it builds
// goes through the Make* constructors, so the result is already simplified.

func (c *ConstNode[T]) Diff(name string) ExprNode[T] {
	return Const[T](0)
}

func (v *VarNode[T]) Diff(name string) ExprNode[T] {
	if v.Name == name {
		return Const[T](1)
	}
	return Const[T](0)
}

func (b *BinaryNode[T]) Diff(name string) ExprNode[T] {
	dl := b.Left.Diff(name)
	dr := b.Right.Diff(name)
	l, r := b.Left, b.Right

	switch b.Op {
	case OpAdd, OpSub:
		return MakeAdditive(b.Op, dl, dr)

	case OpMul:
		// l'r + lr'
		return MakeAdditive(OpAdd, MakeMul(dl, r.Clone()), MakeMul(l.Clone(), dr))

	case OpDiv:
		// (l'r - lr') / r^2
		num := MakeAdditive(OpSub, MakeMul(dl, r.Clone()), MakeMul(l.Clone(), dr))
		return MakeDiv(num, MakePow(r.Clone(), Const[T](2)))

	case OpPow:
		// l^r * (l'*(r/l) + r'*ln(l)). A constant exponent drops the log
		// term, a constant base drops the first one.
		first := MakeMul(dl, MakeDiv(r.Clone(), l.Clone()))
		second := MakeMul(dr, NewFunc(FnLn, l.Clone()))
		return MakeMul(MakePow(l.Clone(), r.Clone()), MakeAdditive(OpAdd, first, second))

	default:
		panic(fmt.Sprintf("expr: unknown binary operator %d", int(b.Op)))
	}
}

// Diff applies the chain rule: f'(a) * a'.
func (f *FuncNode[T]) Diff(name string) ExprNode[T] {
	da := f.Arg.Diff(name)
	var outer ExprNode[T]
	switch f.Fn {
	case FnSin:
		outer = NewFunc(FnCos, f.Arg.Clone())
	case FnCos:
		outer = MakeMul(Const[T](-1), NewFunc(FnSin, f.Arg.Clone()))
	case FnExp:
		outer = NewFunc(FnExp, f.Arg.Clone())
	case FnLn:
		outer = MakeDiv(Const[T](1), f.Arg.Clone())
	default:
		panic(fmt.Sprintf("expr: unknown function %d", int(f.Fn)))
	}
	return MakeMul(outer, da)
}
