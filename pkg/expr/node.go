package expr

import "github.com/wildfunctions/symdiff/pkg/scalar"

// Bindings maps variable names to values. Evaluation only reads it.
type Bindings[T scalar.Scalar] map[string]T

// ExprNode is the interface for all expression tree nodes. The set of
// implementations is closed: ConstNode, VarNode, BinaryNode and FuncNode.
// Nodes are never mutated after construction.
type ExprNode[T scalar.Scalar] interface {
	Eval(vars Bindings[T]) (T, error)
	Diff(name string) ExprNode[T]
	String() string
	LaTeX() string
	Clone() ExprNode[T]
	NodeCount() int
	Depth() int
	exprNode()
}

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Func identifies a named function.
type Func int

const (
	FnSin Func = iota
	FnCos
	FnExp
	FnLn
)

// ConstNode is a literal scalar.
type ConstNode[T scalar.Scalar] struct {
	Val T
}

// VarNode is a free variable, resolved at evaluation time.
type VarNode[T scalar.Scalar] struct {
	Name string
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode[T scalar.Scalar] struct {
	Op          BinaryOp
	Left, Right ExprNode[T]
}

// FuncNode applies a named function to its argument.
type FuncNode[T scalar.Scalar] struct {
	Fn  Func
	Arg ExprNode[T]
}

func (*ConstNode[T]) exprNode()  {}
func (*VarNode[T]) exprNode()    {}
func (*BinaryNode[T]) exprNode() {}
func (*FuncNode[T]) exprNode()   {}

// Const returns a constant node.
func Const[T scalar.Scalar](v T) ExprNode[T] {
	return &ConstNode[T]{Val: v}
}

// Var returns a variable node.
func Var[T scalar.Scalar](name string) ExprNode[T] {
	return &VarNode[T]{Name: name}
}

// NewFunc returns fn applied to arg. Function nodes are not folded.
func NewFunc[T scalar.Scalar](fn Func, arg ExprNode[T]) ExprNode[T] {
	return &FuncNode[T]{Fn: fn, Arg: arg}
}

var funcNames = map[Func]string{
	FnSin: "sin",
	FnCos: "cos",
	FnExp: "exp",
	FnLn:  "ln",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }
func (fn Func) String() string     { return funcNames[fn] }

// LookupFunc returns the function called name (lower case).
func LookupFunc(name string) (Func, bool) {
	for fn, n := range funcNames {
		if n == name {
			return fn, true
		}
	}
	return 0, false
}
