package scalar

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// DomainError reports an undefined scalar operation.
type DomainError struct {
	Op      string
	Operand string
	Reason  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s(%s): %s", e.Op, e.Operand, e.Reason)
}

func domainErr[T Scalar](op, reason string, operands ...T) *DomainError {
	parts := make([]string, len(operands))
	for i, v := range operands {
		parts[i] = Format(v)
	}
	return &DomainError{Op: op, Operand: strings.Join(parts, ", "), Reason: reason}
}

// IsFinite reports whether v has no NaN or infinite component.
func IsFinite[T Scalar](v T) bool {
	if c, ok := any(v).(complex128); ok {
		return !cmplx.IsNaN(c) && !cmplx.IsInf(c)
	}
	f := any(v).(float64)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// checked turns a non-finite result from finite operands into a DomainError.
func checked[T Scalar](op string, r T, operands ...T) (T, error) {
	if IsFinite(r) {
		return r, nil
	}
	for _, v := range operands {
		if !IsFinite(v) {
			return r, nil
		}
	}
	var z T
	return z, domainErr(op, "result is not finite", operands...)
}

func Add[T Scalar](a, b T) (T, error) { return checked("+", a+b, a, b) }
func Sub[T Scalar](a, b T) (T, error) { return checked("-", a-b, a, b) }
func Mul[T Scalar](a, b T) (T, error) { return checked("*", a*b, a, b) }

// Div divides a by b. Division by zero is a DomainError.
func Div[T Scalar](a, b T) (T, error) {
	if b == 0 {
		var z T
		return z, domainErr("/", "division by zero", a, b)
	}
	return checked("/", a/b, a, b)
}

// Pow raises a to the power b.
func Pow[T Scalar](a, b T) (T, error) {
	if x, ok := any(a).(complex128); ok {
		y := any(b).(complex128)
		return checked("^", any(cmplx.Pow(x, y)).(T), a, b)
	}
	x, y := any(a).(float64), any(b).(float64)
	if x == 0 && y < 0 {
		var z T
		return z, domainErr("^", "zero raised to a negative power", a, b)
	}
	return checked("^", any(math.Pow(x, y)).(T), a, b)
}

func Sin[T Scalar](a T) (T, error) {
	if x, ok := any(a).(complex128); ok {
		return checked("sin", any(cmplx.Sin(x)).(T), a)
	}
	return checked("sin", any(math.Sin(any(a).(float64))).(T), a)
}

func Cos[T Scalar](a T) (T, error) {
	if x, ok := any(a).(complex128); ok {
		return checked("cos", any(cmplx.Cos(x)).(T), a)
	}
	return checked("cos", any(math.Cos(any(a).(float64))).(T), a)
}

func Exp[T Scalar](a T) (T, error) {
	if x, ok := any(a).(complex128); ok {
		return checked("exp", any(cmplx.Exp(x)).(T), a)
	}
	return checked("exp", any(math.Exp(any(a).(float64))).(T), a)
}

// Log is the natural logarithm. In the real domain the argument must be
// positive; in the complex domain it must be non-zero.
func Log[T Scalar](a T) (T, error) {
	var z T
	if x, ok := any(a).(complex128); ok {
		if x == 0 {
			return z, domainErr("ln", "logarithm of zero", a)
		}
		return checked("ln", any(cmplx.Log(x)).(T), a)
	}
	x := any(a).(float64)
	if x <= 0 {
		return z, domainErr("ln", "logarithm of non-positive value", a)
	}
	return checked("ln", any(math.Log(x)).(T), a)
}

// ApproxEqual compares a and b with a relative/absolute tolerance.
func ApproxEqual[T Scalar](a, b T, tol float64) bool {
	var d, m float64
	if x, ok := any(a).(complex128); ok {
		y := any(b).(complex128)
		d, m = cmplx.Abs(x-y), math.Max(cmplx.Abs(x), cmplx.Abs(y))
	} else {
		x, y := any(a).(float64), any(b).(float64)
		d, m = math.Abs(x-y), math.Max(math.Abs(x), math.Abs(y))
	}
	return d <= tol || d <= tol*m
}
