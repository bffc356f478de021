package expr

import (
	"fmt"

	"github.com/wildfunctions/symdiff/pkg/scalar"
)

func (c *ConstNode[T]) Eval(vars Bindings[T]) (T, error) {
	return c.Val, nil
}

// Eval looks the variable up; there is no implicit zero.
func (v *VarNode[T]) Eval(vars Bindings[T]) (T, error) {
	val, ok := vars[v.Name]
	if !ok {
		var z T
		return z, &UnboundVariableError{Name: v.Name}
	}
	return val, nil
}

func (b *BinaryNode[T]) Eval(vars Bindings[T]) (T, error) {
	left, err := b.Left.Eval(vars)
	if err != nil {
		return left, err
	}
	right, err := b.Right.Eval(vars)
	if err != nil {
		return right, err
	}
	return applyBinary(b.Op, left, right)
}

func (f *FuncNode[T]) Eval(vars Bindings[T]) (T, error) {
	arg, err := f.Arg.Eval(vars)
	if err != nil {
		return arg, err
	}
	return applyFunc(f.Fn, arg)
}

// applyBinary is shared by evaluation and constant folding.
func applyBinary[T scalar.Scalar](op BinaryOp, l, r T) (T, error) {
	switch op {
	case OpAdd:
		return scalar.Add(l, r)
	case OpSub:
		return scalar.Sub(l, r)
	case OpMul:
		return scalar.Mul(l, r)
	case OpDiv:
		return scalar.Div(l, r)
	case OpPow:
		return scalar.Pow(l, r)
	default:
		var z T
		return z, fmt.Errorf("unknown binary operator %d", int(op))
	}
}

func applyFunc[T scalar.Scalar](fn Func, arg T) (T, error) {
	switch fn {
	case FnSin:
		return scalar.Sin(arg)
	case FnCos:
		return scalar.Cos(arg)
	case FnExp:
		return scalar.Exp(arg)
	case FnLn:
		return scalar.Log(arg)
	default:
		var z T
		return z, fmt.Errorf("unknown function %d", int(fn))
	}
}
