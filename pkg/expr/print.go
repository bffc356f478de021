package expr

import (
	"fmt"

	"github.com/wildfunctions/symdiff/pkg/scalar"
)

// String methods. Binary nodes are fully parenthesized so the output
// parses back to the same tree.

func (c *ConstNode[T]) String() string {
	return scalar.Format(c.Val)
}

func (v *VarNode[T]) String() string {
	return v.Name
}

func (b *BinaryNode[T]) String() string {
	return "(" + b.Left.String() + binaryOpSymbols[b.Op] + b.Right.String() + ")"
}

func (f *FuncNode[T]) String() string {
	return funcNames[f.Fn] + "(" + f.Arg.String() + ")"
}

// LaTeX methods

func (c *ConstNode[T]) LaTeX() string {
	return scalar.Format(c.Val)
}

func (v *VarNode[T]) LaTeX() string {
	return v.Name
}

func (b *BinaryNode[T]) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		if isAdditive(b.Right) {
			right = latexParen(right)
		}
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		if isAdditive(b.Left) {
			left = latexParen(left)
		}
		if isAdditive(b.Right) {
			right = latexParen(right)
		}
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		if _, ok := b.Left.(*BinaryNode[T]); ok {
			left = latexParen(left)
		}
		return fmt.Sprintf("{%s}^{%s}", left, right)
	default:
		return ""
	}
}

func (f *FuncNode[T]) LaTeX() string {
	arg := f.Arg.LaTeX()
	switch f.Fn {
	case FnSin:
		return fmt.Sprintf("\\sin{(%s)}", arg)
	case FnCos:
		return fmt.Sprintf("\\cos{(%s)}", arg)
	case FnExp:
		return fmt.Sprintf("e^{%s}", arg)
	case FnLn:
		return fmt.Sprintf("\\ln{(%s)}", arg)
	default:
		return arg
	}
}

func isAdditive[T scalar.Scalar](n ExprNode[T]) bool {
	b, ok := n.(*BinaryNode[T])
	return ok && (b.Op == OpAdd || b.Op == OpSub)
}

func latexParen(s string) string {
	return "\\left(" + s + "\\right)"
}
