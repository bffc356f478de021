package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

var (
	ErrDuplicateBinding = errors.New("variable assigned more than once")
	ErrMalformedBinding = errors.New("malformed binding")
	ErrMalformedSweep   = errors.New("malformed sweep")
)

// MaxSweepPoints bounds the number of values a single sweep may produce.
const MaxSweepPoints = 100000

// ParseBindings reads name=value arguments into a binding map. Names are
// case-folded like the parser does.
func ParseBindings[T scalar.Scalar](args []string) (expr.Bindings[T], error) {
	vars := make(expr.Bindings[T], len(args))
	for _, arg := range args {
		name, value, err := splitAssignment(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBinding, err)
		}
		if _, dup := vars[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBinding, name)
		}
		v, err := scalar.Parse[T](value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedBinding, arg, err)
		}
		vars[name] = v
	}
	return vars, nil
}

// IsBinding reports whether arg has the name=value shape.
func IsBinding(arg string) bool {
	_, _, err := splitAssignment(arg)
	return err == nil
}

func splitAssignment(arg string) (string, string, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", fmt.Errorf("%q is not name=value", arg)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if !validName(name) {
		return "", "", fmt.Errorf("%q is not a variable name", name)
	}
	if value == "" {
		return "", "", fmt.Errorf("no value for %s", name)
	}
	return name, value, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 'a' || name[i] > 'z' {
			return false
		}
	}
	_, isFunc := expr.LookupFunc(name)
	return !isFunc
}

// SweepSpec describes name=start:stop:step.
type SweepSpec struct {
	Name  string
	Start float64
	Stop  float64
	Step  float64
}

// ParseSweep reads a sweep description such as "x=0:1:0.25".
func ParseSweep(s string) (SweepSpec, error) {
	name, rng, err := splitAssignment(s)
	if err != nil {
		return SweepSpec{}, fmt.Errorf("%w: %v", ErrMalformedSweep, err)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return SweepSpec{}, fmt.Errorf("%w: %q is not start:stop:step", ErrMalformedSweep, rng)
	}
	var nums [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return SweepSpec{}, fmt.Errorf("%w: bad number %q", ErrMalformedSweep, p)
		}
		nums[i] = f
	}
	spec := SweepSpec{Name: name, Start: nums[0], Stop: nums[1], Step: nums[2]}
	if spec.Step <= 0 {
		return SweepSpec{}, fmt.Errorf("%w: step must be positive", ErrMalformedSweep)
	}
	if spec.Stop < spec.Start {
		return SweepSpec{}, fmt.Errorf("%w: stop %v is below start %v", ErrMalformedSweep, spec.Stop, spec.Start)
	}
	if spec.count() > MaxSweepPoints {
		return SweepSpec{}, fmt.Errorf("%w: more than %d points", ErrMalformedSweep, MaxSweepPoints)
	}
	return spec, nil
}

func (s SweepSpec) count() int {
	n := math.Floor((s.Stop-s.Start)/s.Step + 1e-9)
	if n >= MaxSweepPoints {
		return MaxSweepPoints + 1
	}
	return int(n) + 1
}

// Values returns start, start+step, ... up to stop inclusive. Each value is
// computed from its index so rounding does not accumulate.
func (s SweepSpec) Values() []float64 {
	n := s.count()
	out := make([]float64, n)
	for k := range out {
		out[k] = s.Start + float64(k)*s.Step
	}
	return out
}
