// Package parser turns infix text into expression trees.
//
// Grammar: numbers (digits with at most one '.'; a trailing 'i' makes an
// imaginary literal in the complex domain), identifiers (runs of letters;
// sin, cos, exp and ln must be followed by a parenthesized argument), the
// operators + - * / ^, parentheses and unary minus. '^' binds tighter than
// '*' and '/', which bind tighter than '+' and '-'. All operators,
// including '^', group left to right: 2^3^2 is (2^3)^2.
//
// Whitespace produces no tokens but does end a number or identifier, so
// "sin x" is a function name without '(' rather than the variable "sinx".
// Letters are case-folded.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

type parser[T scalar.Scalar] struct {
	src string
	// gap[i] is set when whitespace preceded src[i] in the original text.
	gap []bool
}

type opToken struct {
	sym byte
	pos int
}

// Parse parses text into an expression over T.
func Parse[T scalar.Scalar](text string) (expr.Expression[T], error) {
	src, gap := normalize(text)
	p := &parser[T]{src: src, gap: gap}
	e, err := p.parseRange(0, len(src))
	if err != nil {
		return expr.Expression[T]{}, err
	}
	log.Debug().
		Str("input", src).
		Stringer("domain", scalar.DomainOf[T]()).
		Int("nodes", e.NodeCount()).
		Int("depth", e.Depth()).
		Msg("parsed expression")
	return e, nil
}

// DetectDomain reports Complex if text contains an imaginary literal
// ("2i", "0.5i"), Real otherwise.
func DetectDomain(text string) scalar.Domain {
	src, gap := normalize(text)
	for i := 0; i < len(src); {
		if !isNumberChar(src[i]) {
			i++
			continue
		}
		j := i
		for j < len(src) && isNumberChar(src[j]) && (j == i || !gap[j]) {
			j++
		}
		if j < len(src) && src[j] == 'i' && !gap[j] {
			return scalar.Complex
		}
		i = j
	}
	return scalar.Real
}

func normalize(text string) (string, []bool) {
	var b strings.Builder
	gap := make([]bool, 0, len(text)+1)
	pending := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		before := b.Len()
		b.WriteRune(unicode.ToLower(r))
		for k := before; k < b.Len(); k++ {
			gap = append(gap, pending && k == before)
		}
		pending = false
	}
	gap = append(gap, pending)
	return b.String(), gap
}

func priority(sym byte) int {
	switch sym {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case '^':
		return 3
	default: // '('
		return 0
	}
}

func (p *parser[T]) fail(pos int, err error, detail string) error {
	return &ParseError{Input: p.src, Pos: pos, Err: err, Detail: detail}
}

// parseRange parses src[lo:hi] with an operand stack and an operator stack.
func (p *parser[T]) parseRange(lo, hi int) (expr.Expression[T], error) {
	var none expr.Expression[T]
	var operands []expr.Expression[T]
	var ops []opToken
	expectOperand := true

	reduce := func() error {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if len(operands) < 2 {
			return p.fail(top.pos, ErrMissingOperand, "operator "+string(top.sym))
		}
		l, r := operands[len(operands)-2], operands[len(operands)-1]
		operands = append(operands[:len(operands)-2], combine(top.sym, l, r))
		return nil
	}

	i := lo
	for i < hi {
		c := p.src[i]
		switch {
		case isNumberChar(c), isLetter(c):
			if !expectOperand {
				return none, p.fail(i, ErrUnexpectedOperand, "")
			}
			e, next, err := p.primary(i, hi)
			if err != nil {
				return none, err
			}
			operands = append(operands, e)
			expectOperand = false
			i = next

		case c == '(':
			if !expectOperand {
				return none, p.fail(i, ErrUnexpectedOperand, "missing operator before '('")
			}
			ops = append(ops, opToken{sym: c, pos: i})
			i++

		case c == ')':
			if expectOperand {
				return none, p.fail(i, ErrMissingOperand, "expected operand before ')'")
			}
			matched := false
			for len(ops) > 0 {
				if ops[len(ops)-1].sym == '(' {
					ops = ops[:len(ops)-1]
					matched = true
					break
				}
				if err := reduce(); err != nil {
					return none, err
				}
			}
			if !matched {
				return none, p.fail(i, ErrUnbalancedParens, "no matching '('")
			}
			i++

		case isOperator(c):
			if expectOperand {
				if c != '-' {
					return none, p.fail(i, ErrUnexpectedOperator, string(c))
				}
				e, next, err := p.negated(i, hi)
				if err != nil {
					return none, err
				}
				operands = append(operands, e)
				expectOperand = false
				i = next
				continue
			}
			for len(ops) > 0 && priority(ops[len(ops)-1].sym) >= priority(c) {
				if err := reduce(); err != nil {
					return none, err
				}
			}
			ops = append(ops, opToken{sym: c, pos: i})
			expectOperand = true
			i++

		default:
			return none, p.fail(i, ErrUnexpectedChar, string(c))
		}
	}

	if expectOperand {
		if lo == hi {
			return none, p.fail(lo, ErrEmptyInput, "")
		}
		return none, p.fail(hi, ErrMissingOperand, "unexpected end of expression")
	}
	for len(ops) > 0 {
		if top := ops[len(ops)-1]; top.sym == '(' {
			return none, p.fail(top.pos, ErrUnbalancedParens, "no matching ')'")
		}
		if err := reduce(); err != nil {
			return none, err
		}
	}
	if len(operands) != 1 {
		return none, p.fail(lo, ErrMissingOperand, "")
	}
	return operands[0], nil
}

// primary parses a number, a variable or a function call starting at i.
func (p *parser[T]) primary(i, hi int) (expr.Expression[T], int, error) {
	if isNumberChar(p.src[i]) {
		return p.number(i, hi)
	}
	return p.identifier(i, hi)
}

func (p *parser[T]) number(i, hi int) (expr.Expression[T], int, error) {
	var none expr.Expression[T]
	j, dots := i, 0
	for j < hi && isNumberChar(p.src[j]) && (j == i || !p.gap[j]) {
		if p.src[j] == '.' {
			dots++
		}
		j++
	}
	lit := p.src[i:j]
	if dots > 1 || lit == "." {
		return none, j, p.fail(i, ErrMalformedNumber, lit)
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return none, j, p.fail(i, ErrMalformedNumber, lit)
	}
	if j < hi && p.src[j] == 'i' && !p.gap[j] {
		v, ok := scalar.Imaginary[T](f)
		if !ok {
			return none, j, p.fail(i, ErrComplexLiteral, p.src[i:j+1])
		}
		return expr.Constant(v), j + 1, nil
	}
	return expr.Constant(scalar.FromFloat[T](f)), j, nil
}

func (p *parser[T]) identifier(i, hi int) (expr.Expression[T], int, error) {
	var none expr.Expression[T]
	j := i
	for j < hi && isLetter(p.src[j]) && (j == i || !p.gap[j]) {
		j++
	}
	name := p.src[i:j]
	fn, ok := expr.LookupFunc(name)
	if !ok {
		return expr.Variable[T](name), j, nil
	}
	if j >= hi || p.src[j] != '(' {
		return none, j, p.fail(j, ErrMissingParen, name)
	}
	end := p.matching(j, hi)
	if end < 0 {
		return none, j, p.fail(j, ErrUnbalancedParens, name+" argument is not closed")
	}
	if end == j+1 {
		return none, j, p.fail(j, ErrEmptyArgument, name+"()")
	}
	arg, err := p.parseRange(j+1, end)
	if err != nil {
		return none, j, err
	}
	return expr.Apply(fn, arg), end + 1, nil
}

// negated handles a unary '-' at i: -operand becomes -1*operand, where the
// operand is a single number, identifier, call or parenthesized group.
func (p *parser[T]) negated(i, hi int) (expr.Expression[T], int, error) {
	var none expr.Expression[T]
	j := i + 1
	if j >= hi {
		return none, j, p.fail(j, ErrMissingOperand, "nothing after unary '-'")
	}

	var operand expr.Expression[T]
	var next int
	switch c := p.src[j]; {
	case isNumberChar(c), isLetter(c):
		e, n, err := p.primary(j, hi)
		if err != nil {
			return none, n, err
		}
		operand, next = e, n
	case c == '(':
		end := p.matching(j, hi)
		if end < 0 {
			return none, j, p.fail(j, ErrUnbalancedParens, "no matching ')'")
		}
		e, err := p.parseRange(j+1, end)
		if err != nil {
			return none, j, err
		}
		operand, next = e, end+1
	default:
		return none, j, p.fail(j, ErrUnexpectedOperator, string(c))
	}
	return expr.Constant(T(-1)).Mul(operand), next, nil
}

// matching returns the index of the ')' closing the '(' at open, or -1.
func (p *parser[T]) matching(open, hi int) int {
	depth := 0
	for k := open; k < hi; k++ {
		switch p.src[k] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

func combine[T scalar.Scalar](sym byte, l, r expr.Expression[T]) expr.Expression[T] {
	switch sym {
	case '+':
		return l.Add(r)
	case '-':
		return l.Sub(r)
	case '*':
		return l.Mul(r)
	case '/':
		return l.Div(r)
	default:
		return l.Pow(r)
	}
}

func isNumberChar(c byte) bool { return c >= '0' && c <= '9' || c == '.' }
func isLetter(c byte) bool     { return c >= 'a' && c <= 'z' }

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}
