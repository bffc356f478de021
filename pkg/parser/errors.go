package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput         = errors.New("empty expression")
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrMalformedNumber    = errors.New("malformed number")
	ErrComplexLiteral     = errors.New("imaginary literal outside the complex domain")
	ErrMissingParen       = errors.New("function name not followed by '('")
	ErrEmptyArgument      = errors.New("empty function argument")
	ErrUnexpectedOperator = errors.New("operator where an operand is expected")
	ErrUnexpectedOperand  = errors.New("operand where an operator is expected")
	ErrMissingOperand     = errors.New("missing operand")
	ErrUnbalancedParens   = errors.New("unbalanced parentheses")
)

// ParseError reports malformed input. Input is the normalized text the
// parser worked on (whitespace removed, lower case) and Pos a byte offset
// into it. Err is one of the Err* sentinels above.
type ParseError struct {
	Input  string
	Pos    int
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("parse error at %d near %q: %s", e.Pos, e.Near(), msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Near returns up to 10 bytes of input starting at the error position.
func (e *ParseError) Near() string {
	pos := clamp(e.Pos, 0, len(e.Input))
	end := clamp(pos+10, pos, len(e.Input))
	return e.Input[pos:end]
}

// Snippet renders the input with a caret under the error position:
//
//	x+*3
//	  ^
func (e *ParseError) Snippet() string {
	pos := clamp(e.Pos, 0, len(e.Input))
	var b strings.Builder
	b.WriteString(e.Input)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", pos))
	b.WriteByte('^')
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
