package expr

import (
	"sort"

	"github.com/wildfunctions/symdiff/pkg/scalar"
)

func (c *ConstNode[T]) NodeCount() int  { return 1 }
func (v *VarNode[T]) NodeCount() int    { return 1 }
func (f *FuncNode[T]) NodeCount() int   { return 1 + f.Arg.NodeCount() }
func (b *BinaryNode[T]) NodeCount() int { return 1 + b.Left.NodeCount() + b.Right.NodeCount() }

func (c *ConstNode[T]) Depth() int { return 1 }
func (v *VarNode[T]) Depth() int   { return 1 }
func (f *FuncNode[T]) Depth() int  { return 1 + f.Arg.Depth() }
func (b *BinaryNode[T]) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// Variables returns the sorted names of the free variables in node.
func Variables[T scalar.Scalar](node ExprNode[T]) []string {
	seen := map[string]struct{}{}
	collectVars(node, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContainsVar reports whether node mentions the variable name.
func ContainsVar[T scalar.Scalar](node ExprNode[T], name string) bool {
	switch n := node.(type) {
	case *VarNode[T]:
		return n.Name == name
	case *BinaryNode[T]:
		return ContainsVar(n.Left, name) || ContainsVar(n.Right, name)
	case *FuncNode[T]:
		return ContainsVar(n.Arg, name)
	default:
		return false
	}
}

func collectVars[T scalar.Scalar](node ExprNode[T], out map[string]struct{}) {
	switch n := node.(type) {
	case *VarNode[T]:
		out[n.Name] = struct{}{}
	case *BinaryNode[T]:
		collectVars(n.Left, out)
		collectVars(n.Right, out)
	case *FuncNode[T]:
		collectVars(n.Arg, out)
	}
}
