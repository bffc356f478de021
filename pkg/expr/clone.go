package expr

func (c *ConstNode[T]) Clone() ExprNode[T] {
	return &ConstNode[T]{Val: c.Val}
}

func (v *VarNode[T]) Clone() ExprNode[T] {
	return &VarNode[T]{Name: v.Name}
}

func (b *BinaryNode[T]) Clone() ExprNode[T] {
	return &BinaryNode[T]{
		Op:    b.Op,
		Left:  b.Left.Clone(),
		Right: b.Right.Clone(),
	}
}

func (f *FuncNode[T]) Clone() ExprNode[T] {
	return &FuncNode[T]{
		Fn:  f.Fn,
		Arg: f.Arg.Clone(),
	}
}
