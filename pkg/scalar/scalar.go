// Package scalar defines the numeric domains an expression can compute over
// and the checked arithmetic used by evaluation and constant folding.
package scalar

import (
	"fmt"
	"sort"
	"strconv"
)

// Scalar is the set of numeric domains: real (float64) or complex (complex128).
type Scalar interface {
	float64 | complex128
}

// Domain tags which Scalar a parsed expression uses.
type Domain int

const (
	Real Domain = iota
	Complex
)

var domains = map[string]Domain{
	"real":    Real,
	"complex": Complex,
}

func (d Domain) String() string {
	for name, v := range domains {
		if v == d {
			return name
		}
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// ParseDomain returns a domain by name.
func ParseDomain(name string) (Domain, error) {
	d, ok := domains[name]
	if !ok {
		return 0, fmt.Errorf("unknown domain: %s (available: %v)", name, DomainNames())
	}
	return d, nil
}

// DomainNames returns all domain names, sorted.
func DomainNames() []string {
	names := make([]string, 0, len(domains))
	for k := range domains {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DomainOf reports the domain of T.
func DomainOf[T Scalar]() Domain {
	var z T
	if _, ok := any(z).(complex128); ok {
		return Complex
	}
	return Real
}

// FromFloat converts a real value into T.
func FromFloat[T Scalar](f float64) T {
	var z T
	if _, ok := any(z).(complex128); ok {
		return any(complex(f, 0)).(T)
	}
	return any(f).(T)
}

// Imaginary returns f·i in T. It fails for the real domain.
func Imaginary[T Scalar](f float64) (T, bool) {
	var z T
	if _, ok := any(z).(complex128); ok {
		return any(complex(0, f)).(T), true
	}
	return z, false
}

// Parse reads a value of T from text: a float for the real domain, any
// strconv.ParseComplex form ("2", "1+2i", "(3-4i)") for the complex domain.
func Parse[T Scalar](s string) (T, error) {
	var z T
	if _, ok := any(z).(complex128); ok {
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return z, fmt.Errorf("invalid complex value %q", s)
		}
		return any(c).(T), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return z, fmt.Errorf("invalid real value %q", s)
	}
	return any(f).(T), nil
}

// Format renders v in the canonical form the parser reads back.
func Format[T Scalar](v T) string {
	if c, ok := any(v).(complex128); ok {
		return formatComplex(c)
	}
	return formatFloat(any(v).(float64))
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0" // no "-0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	case im < 0:
		return "(" + formatFloat(re) + "-" + formatFloat(-im) + "i)"
	default:
		return "(" + formatFloat(re) + "+" + formatFloat(im) + "i)"
	}
}
