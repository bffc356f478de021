package engine

import (
	"encoding/json"
	"fmt"
	"io"
)

// Point is one evaluated value of a sweep.
type Point struct {
	At    string `json:"at"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report summarizes one run. Values are rendered with the canonical
// constant format so complex results survive JSON encoding.
type Report struct {
	Mode            string  `json:"mode"`
	Input           string  `json:"input"`
	Domain          string  `json:"domain"`
	Expression      string  `json:"expression"`
	ExpressionLaTeX string  `json:"expression_latex"`
	By              string  `json:"by,omitempty"`
	Order           int     `json:"order,omitempty"`
	Derivative      string  `json:"derivative,omitempty"`
	DerivativeLaTeX string  `json:"derivative_latex,omitempty"`
	Value           string  `json:"value,omitempty"`
	SweepVar        string  `json:"sweep_var,omitempty"`
	Points          []Point `json:"points,omitempty"`
	Failures        int     `json:"failures,omitempty"`
}

// Write renders r in the named format.
func Write(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "latex":
		WriteLaTeX(w, r)
		return nil
	case "text", "":
		WriteText(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteText writes the report in plain text: the derivative or simplified
// expression when asked for, then the value or one line per sweep point.
func WriteText(w io.Writer, r Report) {
	switch r.Mode {
	case "diff":
		fmt.Fprintln(w, r.Derivative)
	case "print":
		fmt.Fprintln(w, r.Expression)
	}
	if r.Value != "" {
		fmt.Fprintln(w, r.Value)
	}
	for _, p := range r.Points {
		if p.Error != "" {
			fmt.Fprintf(w, "%s=%s\terror: %s\n", r.SweepVar, p.At, p.Error)
			continue
		}
		fmt.Fprintf(w, "%s=%s\t%s\n", r.SweepVar, p.At, p.Value)
	}
}

// WriteJSON writes the report as JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteLaTeX writes a display-math block for the report.
func WriteLaTeX(w io.Writer, r Report) {
	lhs := r.ExpressionLaTeX
	if r.Mode == "diff" {
		lhs = diffOperator(r.By, r.Order) + `\left(` + r.ExpressionLaTeX + `\right) = ` + r.DerivativeLaTeX
	}
	fmt.Fprintln(w, `\[`)
	if r.Value != "" {
		fmt.Fprintf(w, "  %s = %s\n", lhs, r.Value)
	} else {
		fmt.Fprintf(w, "  %s\n", lhs)
	}
	fmt.Fprintln(w, `\]`)
	if len(r.Points) > 0 {
		fmt.Fprintln(w, `\begin{tabular}{rl}`)
		for _, p := range r.Points {
			v := p.Value
			if p.Error != "" {
				v = `\text{undefined}`
			}
			fmt.Fprintf(w, "  $%s = %s$ & $%s$ \\\\\n", r.SweepVar, p.At, v)
		}
		fmt.Fprintln(w, `\end{tabular}`)
	}
}

func diffOperator(by string, order int) string {
	if order <= 1 {
		return `\frac{d}{d` + by + `}`
	}
	n := fmt.Sprint(order)
	return `\frac{d^{` + n + `}}{d` + by + `^{` + n + `}}`
}
