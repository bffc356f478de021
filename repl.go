package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"

	"github.com/wildfunctions/symdiff/pkg/engine"
)

const (
	banner = "symdiff interactive session. Type :help for commands, :quit to exit."
	prompt = "> "
)

const helpText = `  <expr>                       print the simplified expression
  eval <expr> [name=value ...]  evaluate
  diff <expr> by <name>         differentiate
  :help                         this text
  :quit                         leave`

var errReplUsage = errors.New("usage: eval <expr> [name=value ...] | diff <expr> by <name> | <expr>")

func runRepl(cfg engine.Config) int {
	fmt.Println(banner)

	histPath := cfg.History
	if !filepath.IsAbs(histPath) {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, histPath)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := &session{cfg: cfg}
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			log.Error().Err(err).Msg("reading input")
			return 1
		}

		out, quit, err := s.exec(line)
		if quit {
			return 0
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if err != nil {
			printError(os.Stderr, err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// session runs REPL lines with the domain, order and worker settings taken
// from the command line.
type session struct {
	cfg engine.Config
}

// exec runs one line and returns what to print. quit is set by :quit.
func (s *session) exec(line string) (out string, quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, nil
	}
	if strings.HasPrefix(line, ":") {
		switch strings.ToLower(line) {
		case ":quit", ":q":
			return "", true, nil
		case ":help":
			return helpText, false, nil
		}
		return "", false, fmt.Errorf("unknown command %s, type :help", line)
	}

	cfg := s.cfg
	cfg.Eval, cfg.Diff, cfg.Print, cfg.By, cfg.Sweep = "", "", "", "", ""
	var args []string

	cmd, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "eval":
		cfg.Eval, args = splitBindings(rest)
	case "diff":
		i := strings.LastIndex(strings.ToLower(rest), " by ")
		if i < 0 {
			return "", false, errReplUsage
		}
		cfg.Diff = strings.TrimSpace(rest[:i])
		cfg.By = strings.TrimSpace(rest[i+len(" by "):])
	default:
		cfg.Print = line
	}
	if strings.TrimSpace(cfg.Source()) == "" || (cfg.Diff != "" && cfg.By == "") {
		return "", false, errReplUsage
	}

	report, err := engine.Execute(cfg, args)
	if err != nil {
		return "", false, err
	}
	var b strings.Builder
	engine.WriteText(&b, report)
	return strings.TrimRight(b.String(), "\n"), false, nil
}

// splitBindings separates trailing name=value fields from the expression.
func splitBindings(s string) (string, []string) {
	fields := strings.Fields(s)
	n := len(fields)
	for n > 0 && engine.IsBinding(fields[n-1]) {
		n--
	}
	return strings.Join(fields[:n], " "), fields[n:]
}
