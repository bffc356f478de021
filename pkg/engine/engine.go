package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/parser"
	"github.com/wildfunctions/symdiff/pkg/scalar"
)

// Execute runs cfg in the domain it resolves to. args are the name=value
// bindings that followed the flags.
func Execute(cfg Config, args []string) (Report, error) {
	domain, err := cfg.ResolveDomain()
	if err != nil {
		return Report{}, err
	}
	if domain == scalar.Complex {
		return Run[complex128](cfg, args)
	}
	return Run[float64](cfg, args)
}

// Run parses the configured expression over T, differentiates it when
// asked, and evaluates it at the given bindings or across the sweep.
func Run[T scalar.Scalar](cfg Config, args []string) (Report, error) {
	src := cfg.Source()
	e, err := parser.Parse[T](src)
	if err != nil {
		return Report{}, fmt.Errorf("parse: %w", err)
	}
	vars, err := ParseBindings[T](args)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Mode:            cfg.Mode(),
		Input:           src,
		Domain:          scalar.DomainOf[T]().String(),
		Expression:      e.String(),
		ExpressionLaTeX: e.LaTeX(),
	}
	target := e
	if cfg.Mode() == "diff" {
		by := strings.ToLower(cfg.By)
		order := cfg.Order
		if order < 1 {
			order = 1
		}
		target = e.DiffN(by, order)
		r.By = by
		r.Order = order
		r.Derivative = target.String()
		r.DerivativeLaTeX = target.LaTeX()
	}

	if cfg.Sweep != "" {
		spec, err := ParseSweep(cfg.Sweep)
		if err != nil {
			return r, err
		}
		r.SweepVar = spec.Name
		r.Points = Sweep(target, vars, spec, cfg.Workers)
		for _, p := range r.Points {
			if p.Error != "" {
				r.Failures++
			}
		}
		return r, nil
	}

	if cfg.Mode() == "eval" || len(vars) > 0 {
		v, err := target.Eval(vars)
		if err != nil {
			return r, fmt.Errorf("evaluate %s: %w", target.String(), err)
		}
		r.Value = scalar.Format(v)
	}
	return r, nil
}

// Sweep evaluates e once per value of spec, with the other variables taken
// from base. Points come back in sweep order; a failed evaluation is
// recorded on its point.
func Sweep[T scalar.Scalar](e expr.Expression[T], base expr.Bindings[T], spec SweepSpec, workers int) []Point {
	values := spec.Values()
	n := len(values)
	points := make([]Point, n)

	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	log.Debug().
		Str("expression", e.String()).
		Str("var", spec.Name).
		Int("points", n).
		Int("workers", workers).
		Msg("sweep started")
	start := time.Now()

	type job struct {
		idx int
		at  float64
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := e.Clone()
			vars := make(expr.Bindings[T], len(base)+1)
			for k, v := range base {
				vars[k] = v
			}
			for j := range jobs {
				vars[spec.Name] = scalar.FromFloat[T](j.at)
				p := Point{At: scalar.Format(j.at)}
				if v, err := local.Eval(vars); err != nil {
					p.Error = err.Error()
				} else {
					p.Value = scalar.Format(v)
				}
				points[j.idx] = p
			}
		}()
	}

	for i, at := range values {
		jobs <- job{idx: i, at: at}
	}
	close(jobs)
	wg.Wait()

	failures := 0
	for _, p := range points {
		if p.Error != "" {
			failures++
		}
	}
	log.Info().
		Str("var", spec.Name).
		Int("points", n).
		Int("failures", failures).
		Dur("elapsed", time.Since(start)).
		Msg("sweep finished")
	return points
}
