package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lolli/cmd/lolli/ui"
	"lolli/internal/formula"
	"lolli/internal/parser"
)

var (
	parseASCII bool
	parseLatex bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <formula|sequent>",
	Short: "Parse input and show its desugaring, negation and polarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseASCII, "ascii", false, "render with ASCII connectives")
	parseCmd.Flags().BoolVar(&parseLatex, "latex", false, "render as LaTeX")
	rootCmd.AddCommand(parseCmd)
}

// pretty picks the formula renderer the flags and config ask for.
func pretty(ascii, latex bool) func(formula.Formula) string {
	switch {
	case latex:
		return formula.PrettyLaTeX
	case ascii || !cfg.Output.Unicode:
		return formula.PrettyASCII
	}
	return formula.Pretty
}

func runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	render := pretty(parseASCII, parseLatex)

	turnstile := "⊢"
	if parseASCII || (!parseLatex && !cfg.Output.Unicode) {
		turnstile = "|-"
	}

	if parser.IsSequent(args[0]) {
		ts, err := parser.ParseSequent(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s %s %s\n", ui.Header("Parsed:"),
			renderList(ts.Left, render), turnstile, renderList(ts.Right, render))
		seq, ante := ts.OneSided()
		fmt.Fprintf(out, "%s %s %s\n", ui.Header("One-sided:"), turnstile, renderList(seq.Linear, render))
		fmt.Fprintf(out, "%s %d\n", ui.Header("Antecedents:"), ante)
		return nil
	}

	f, err := parser.ParseFormula(args[0])
	if err != nil {
		return err
	}
	d := formula.Desugar(f)
	polarity := "negative"
	if formula.IsPositive(d) {
		polarity = "positive"
	}
	fmt.Fprintf(out, "%s %s\n", ui.Header("Parsed:"), render(f))
	fmt.Fprintf(out, "%s %s\n", ui.Header("Desugared:"), render(d))
	fmt.Fprintf(out, "%s %s\n", ui.Header("Negation:"), render(formula.Negate(d)))
	fmt.Fprintf(out, "%s %s\n", ui.Header("Polarity:"), polarity)
	return nil
}

func renderList(fs []formula.Formula, render func(formula.Formula) string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = render(f)
	}
	return strings.Join(parts, ", ")
}
