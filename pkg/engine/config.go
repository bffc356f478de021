package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/wildfunctions/symdiff/pkg/parser"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

// ErrUsage marks errors caused by an inconsistent set of options.
var ErrUsage = errors.New("usage error")

// Config holds all parameters for one run.
type Config struct {
	Eval    string // expression to evaluate
	Diff    string // expression to differentiate
	Print   string // expression to print in simplified form
	By      string // differentiation variable
	Order   int
	Domain  string // "auto", "real" or "complex"
	Sweep   string // name=start:stop:step
	Format  string // "text", "json" or "latex"
	Workers int
	Verbose bool
	Repl    bool
	History string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Order:   1,
		Domain:  "auto",
		Format:  "text",
		Workers: runtime.NumCPU(),
		History: ".symdiff_history",
	}
}

// Mode names the requested operation: "eval", "diff" or "print".
func (c Config) Mode() string {
	switch {
	case c.Diff != "":
		return "diff"
	case c.Print != "":
		return "print"
	default:
		return "eval"
	}
}

// Source returns the expression text of the requested operation.
func (c Config) Source() string {
	switch c.Mode() {
	case "diff":
		return c.Diff
	case "print":
		return c.Print
	default:
		return c.Eval
	}
}

// Validate checks option combinations. Returned errors wrap ErrUsage.
func (c Config) Validate() error {
	set := 0
	for _, s := range []string{c.Eval, c.Diff, c.Print} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: exactly one of --eval, --diff or --print is required", ErrUsage)
	}
	if c.Diff != "" && c.By == "" {
		return fmt.Errorf("%w: --diff needs --by <name>", ErrUsage)
	}
	if c.Diff == "" && c.By != "" {
		return fmt.Errorf("%w: --by is only valid with --diff", ErrUsage)
	}
	if c.Order < 1 {
		return fmt.Errorf("%w: --order must be at least 1, got %d", ErrUsage, c.Order)
	}
	switch c.Format {
	case "text", "json", "latex":
	default:
		return fmt.Errorf("%w: unknown format %q (available: text, json, latex)", ErrUsage, c.Format)
	}
	if c.Domain != "auto" {
		if _, err := scalar.ParseDomain(c.Domain); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}
	return nil
}

// ResolveDomain returns the configured domain. "auto" picks Complex when
// the expression contains an imaginary literal.
func (c Config) ResolveDomain() (scalar.Domain, error) {
	if c.Domain == "" || c.Domain == "auto" {
		return parser.DetectDomain(c.Source()), nil
	}
	return scalar.ParseDomain(c.Domain)
}
