package expr

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned when evaluating the zero Expression.
var ErrEmptyExpression = errors.New("empty expression")

// UnboundVariableError reports a variable missing from the bindings.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable %q is not bound", e.Name)
}
