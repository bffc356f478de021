package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wildfunctions/symdiff/pkg/engine"
	"github.com/wildfunctions/symdiff/pkg/parser"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the requested operation and returns the exit
// code: 0 on success, 1 when parsing or evaluation fails, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := engine.DefaultConfig()

	fs := flag.NewFlagSet("symdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Eval, "eval", cfg.Eval, "expression to evaluate; bindings follow as name=value")
	fs.StringVar(&cfg.Diff, "diff", cfg.Diff, "expression to differentiate (needs --by)")
	fs.StringVar(&cfg.Print, "print", cfg.Print, "expression to print in simplified form")
	fs.StringVar(&cfg.By, "by", cfg.By, "variable to differentiate by")
	fs.IntVar(&cfg.Order, "order", cfg.Order, "derivative order")
	fs.StringVar(&cfg.Domain, "domain", cfg.Domain, "numeric domain (auto, "+strings.Join(scalar.DomainNames(), ", ")+")")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, latex)")
	fs.StringVar(&cfg.Sweep, "sweep", cfg.Sweep, "evaluate over a range, name=start:stop:step")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers for --sweep")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logging")
	fs.BoolVar(&cfg.Repl, "repl", cfg.Repl, "start an interactive session")
	fs.StringVar(&cfg.History, "history", cfg.History, "REPL history file, relative to the home directory")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: symdiff --eval <expr> [name=value ...]")
		fmt.Fprintln(fs.Output(), "       symdiff --diff <expr> --by <name> [name=value ...]")
		fmt.Fprintln(fs.Output(), "       symdiff --repl")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	setupLogging(stderr, cfg.Verbose)

	if cfg.Repl {
		return runRepl(cfg)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return 2
	}

	report, err := engine.Execute(cfg, fs.Args())
	if err != nil {
		printError(stderr, err)
		if isUsageError(err) {
			return 2
		}
		return 1
	}
	if err := engine.Write(stdout, report, cfg.Format); err != nil {
		fmt.Fprintf(stderr, "error writing output: %v\n", err)
		return 1
	}
	if report.Failures > 0 {
		return 1
	}
	return 0
}

// setupLogging sends zerolog output to w in console form, colored when w
// is a terminal.
func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out.Out = colorable.NewColorable(f)
		out.NoColor = false
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func isUsageError(err error) bool {
	return errors.Is(err, engine.ErrUsage) ||
		errors.Is(err, engine.ErrDuplicateBinding) ||
		errors.Is(err, engine.ErrMalformedBinding) ||
		errors.Is(err, engine.ErrMalformedSweep)
}

// printError writes err to w, preceded by the input and a caret for parse
// errors.
func printError(w io.Writer, err error) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintln(w, pe.Snippet())
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
