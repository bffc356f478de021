package parser

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, text string) expr.Expression[float64] {
	t.Helper()
	e, err := Parse[float64](text)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", text, err)
	}
	return e
}

func assertEval(t *testing.T, e expr.Expression[float64], vars expr.Bindings[float64], want float64) {
	t.Helper()
	got, err := e.Eval(vars)
	if err != nil {
		t.Fatalf("Eval(%s) returned error: %v", e.String(), err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Eval(%s) = %v, want %v", e.String(), got, want)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		text string
		vars expr.Bindings[float64]
		want float64
	}{
		{"2 + 3", nil, 5},
		{"x+3", expr.Bindings[float64]{"x": 2}, 5},
		{"2*x/4", expr.Bindings[float64]{"x": 8}, 4},
		{"x^2", expr.Bindings[float64]{"x": 3}, 9},
		{"sin(x)", expr.Bindings[float64]{"x": 0}, 0},
		{"1+2*3", nil, 7},
		{"2*3+1", nil, 7},
		{"(1+2)*3", nil, 9},
		{"8/4/2", nil, 1},
		{"10-4-3", nil, 3},
		{"2*3^2", nil, 18},
		{"2^3^2", nil, 64},
		{"-x^2", expr.Bindings[float64]{"x": 3}, 9},
		{"-(x+1)", expr.Bindings[float64]{"x": 3}, -4},
		{"2*-3", nil, -6},
		{"(-3)", nil, -3},
		{"4-(-2)", nil, 6},
		{".5+1.", nil, 1.5},
		{"exp(ln(x))", expr.Bindings[float64]{"x": 2}, 2},
		{"cos(sin(x)*(1+2))", expr.Bindings[float64]{"x": 0}, 1},
		{"SIN(X) + Cos(x)", expr.Bindings[float64]{"x": 0}, 1},
		{"  rate * time  ", expr.Bindings[float64]{"rate": 3, "time": 4}, 12},
		{"sin (x)", expr.Bindings[float64]{"x": 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			assertEval(t, mustParse(t, tc.text), tc.vars, tc.want)
		})
	}
}

func TestConstantOperatorsMatchScalar(t *testing.T) {
	pairs := [][2]string{{"3", "4"}, {"7.5", "2"}, {"0.25", "8"}, {"9", "0.5"}, {"1", "3"}}
	ops := []struct {
		sym string
		fn  func(a, b float64) (float64, error)
	}{
		{"+", scalar.Add[float64]},
		{"-", scalar.Sub[float64]},
		{"*", scalar.Mul[float64]},
		{"/", scalar.Div[float64]},
		{"^", scalar.Pow[float64]},
	}
	for _, pair := range pairs {
		a, _ := scalar.Parse[float64](pair[0])
		b, _ := scalar.Parse[float64](pair[1])
		for _, op := range ops {
			text := pair[0] + op.sym + pair[1]
			want, err := op.fn(a, b)
			if err != nil {
				t.Fatal(err)
			}
			got, err := mustParse(t, text).Eval(nil)
			if err != nil || got != want {
				t.Errorf("%s = %v, %v; want %v", text, got, err, want)
			}
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		text string
		at   float64
		want float64
	}{
		{"x^2", 2, 4},
		{"sin(x)", 0, 1},
		{"ln(x)", 1, 1},
		{"x*exp(x)", 0, 1},
		{"1/x", 2, -0.25},
		{"3*x^3 - 2*x + 7", 1, 7},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			d := mustParse(t, tc.text).Diff("x")
			assertEval(t, d, expr.Bindings[float64]{"x": tc.at}, tc.want)
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"x * (5 + 2 - 2) * 1 * 0 - 3 * x ^ 2", "(-1*(3*(x^2)))"},
		{"x+3", "(x+3)"},
		{"a-b*c", "(a-(b*c))"},
		{"(a-b)*c", "((a-b)*c)"},
		{"x^2^3", "((x^2)^3)"},
		{"-x", "(-1*x)"},
		{"-5", "-5"},
		{"0*sin(x)+x/1", "x"},
		{"ln(x^1)", "ln(x)"},
		{"x - x", "(x-x)"},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if got := mustParse(t, tc.text).String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDiffOfConstantsIsZero(t *testing.T) {
	for _, text := range []string{"5", "2^3*sin(4)", "ln(2)/(3+y)", "exp(y)*cos(z)", "y^z"} {
		if got := mustParse(t, text).Diff("x").String(); got != "0" {
			t.Errorf("d/dx %s = %s, want 0", text, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{"sin x", ErrMissingParen},
		{"sin", ErrMissingParen},
		{"+*3", ErrUnexpectedOperator},
		{"*3", ErrUnexpectedOperator},
		{"x**2", ErrUnexpectedOperator},
		{"--x", ErrUnexpectedOperator},
		{"", ErrEmptyInput},
		{"   ", ErrEmptyInput},
		{"(x+1", ErrUnbalancedParens},
		{"x+1)", ErrUnbalancedParens},
		{"sin(x", ErrUnbalancedParens},
		{"-(x", ErrUnbalancedParens},
		{"sin()", ErrEmptyArgument},
		{"1.2.3", ErrMalformedNumber},
		{".", ErrMalformedNumber},
		{"x+", ErrMissingOperand},
		{"-", ErrMissingOperand},
		{"()", ErrMissingOperand},
		{"x 2", ErrUnexpectedOperand},
		{"2x", ErrUnexpectedOperand},
		{"x(2)", ErrUnexpectedOperand},
		{"x$1", ErrUnexpectedChar},
		{"2i", ErrComplexLiteral},
		{"sin(+)", ErrUnexpectedOperator},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			_, err := Parse[float64](tc.text)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want ParseError", tc.text, err)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tc.text, err, tc.want)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse[float64]("x + * 3")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Input != "x+*3" || pe.Pos != 2 {
		t.Errorf("Input=%q Pos=%d, want \"x+*3\" and 2", pe.Input, pe.Pos)
	}
	if pe.Near() != "*3" {
		t.Errorf("Near() = %q", pe.Near())
	}
	if pe.Snippet() != "x+*3\n  ^" {
		t.Errorf("Snippet() = %q", pe.Snippet())
	}
	want := `parse error at 2 near "*3": operator where an operand is expected: *`
	if pe.Error() != want {
		t.Errorf("Error() = %q, want %q", pe.Error(), want)
	}
}

func TestNestedErrorPosition(t *testing.T) {
	_, err := Parse[float64]("cos(1+sin(x*))")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Pos != 12 || !errors.Is(err, ErrMissingOperand) {
		t.Errorf("Pos=%d err=%v, want 12 and missing operand", pe.Pos, err)
	}
}

func TestUnboundVariable(t *testing.T) {
	_, err := mustParse(t, "x+3").Eval(expr.Bindings[float64]{})
	var ue *expr.UnboundVariableError
	if !errors.As(err, &ue) || ue.Name != "x" {
		t.Errorf("error = %v, want unbound x", err)
	}
}

func TestCaseFolding(t *testing.T) {
	e := mustParse(t, "LN(Velocity)")
	if e.String() != "ln(velocity)" {
		t.Errorf("String() = %q", e.String())
	}
}

func TestDetectDomain(t *testing.T) {
	tests := []struct {
		text string
		want scalar.Domain
	}{
		{"x+3", scalar.Real},
		{"2i", scalar.Complex},
		{"z*(1+0.5i)", scalar.Complex},
		{"sin(x)", scalar.Real},
		{"i*x", scalar.Real},
		{"3 i", scalar.Real},
	}
	for _, tc := range tests {
		if got := DetectDomain(tc.text); got != tc.want {
			t.Errorf("DetectDomain(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestComplexParse(t *testing.T) {
	e, err := Parse[complex128]("(1+2i)*z")
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.Eval(expr.Bindings[complex128]{"z": complex(0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if got != complex(-2, 1) {
		t.Errorf("Eval = %v, want (-2+1i)", got)
	}
	if e.String() != "((1+2i)*z)" {
		t.Errorf("String() = %q", e.String())
	}

	// ln(-1) is defined here
	ln, err := Parse[complex128]("ln(-1)")
	if err != nil {
		t.Fatal(err)
	}
	v, err := ln.Eval(nil)
	if err != nil || !scalar.ApproxEqual(v, complex(0, math.Pi), 1e-12) {
		t.Errorf("ln(-1) = %v, %v", v, err)
	}

	d, err := Parse[complex128]("z^2 + 3i*z")
	if err != nil {
		t.Fatal(err)
	}
	got, err = d.Diff("z").Eval(expr.Bindings[complex128]{"z": complex(1, 0)})
	if err != nil || !scalar.ApproxEqual(got, complex(2, 3), 1e-12) {
		t.Errorf("d/dz at 1 = %v, %v; want (2+3i)", got, err)
	}
}

func TestDomainErrorsSurface(t *testing.T) {
	var de *scalar.DomainError
	for _, text := range []string{"1/0", "ln(0)", "ln(x-x)", "(0-8)^0.5"} {
		e := mustParse(t, text)
		if _, err := e.Eval(expr.Bindings[float64]{"x": 1}); !errors.As(err, &de) {
			t.Errorf("%s: error = %v, want DomainError", text, err)
		}
	}
}

func randomConstant[T scalar.Scalar](rng *rand.Rand, depth int, leaf func(*rand.Rand) T) expr.Expression[T] {
	if depth <= 1 || rng.Float64() < 0.25 {
		return expr.Constant(leaf(rng))
	}
	if rng.Float64() < 0.3 {
		fns := []expr.Func{expr.FnSin, expr.FnCos, expr.FnExp, expr.FnLn}
		return expr.Apply(fns[rng.Intn(len(fns))], randomConstant(rng, depth-1, leaf))
	}
	l := randomConstant(rng, depth-1, leaf)
	r := randomConstant(rng, depth-1, leaf)
	switch rng.Intn(5) {
	case 0:
		return l.Add(r)
	case 1:
		return l.Sub(r)
	case 2:
		return l.Mul(r)
	case 3:
		return l.Div(r)
	default:
		return l.Pow(r)
	}
}

// checkRoundTrip parses e's text back. Values are compared only when
// compareValues is set: a folded complex constant can carry a negative
// zero imaginary part that its text drops, which moves ln and ^ across
// the branch cut.
func checkRoundTrip[T scalar.Scalar](t *testing.T, e expr.Expression[T], compareValues bool) {
	t.Helper()
	text := e.String()
	back, err := Parse[T](text)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", text, err)
	}
	if back.String() != text {
		t.Fatalf("round trip of %q gave %q", text, back.String())
	}
	if !compareValues {
		return
	}
	want, werr := e.Eval(nil)
	got, gerr := back.Eval(nil)
	if (werr == nil) != (gerr == nil) {
		t.Fatalf("%s: errors differ: %v vs %v", text, werr, gerr)
	}
	if werr == nil && got != want {
		t.Fatalf("%s: value %v after round trip, want %v", text, got, want)
	}
}

func TestRoundTripReal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	leaf := func(rng *rand.Rand) float64 {
		return float64(rng.Intn(13)-6) / float64(1+rng.Intn(4))
	}
	for i := 0; i < 300; i++ {
		checkRoundTrip(t, randomConstant(rng, 5, leaf), true)
	}
}

func TestRoundTripComplex(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	leaf := func(rng *rand.Rand) complex128 {
		return complex(float64(rng.Intn(7)-3), float64(rng.Intn(7)-3)/2)
	}
	for i := 0; i < 300; i++ {
		checkRoundTrip(t, randomConstant(rng, 5, leaf), false)
	}
}
