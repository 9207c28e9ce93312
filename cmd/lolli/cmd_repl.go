package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lolli/cmd/lolli/ui"
	"lolli/internal/extract"
	"lolli/internal/formula"
	"lolli/internal/parser"
	"lolli/internal/prover"
	"lolli/internal/term"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prover session",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const replHelp = `Enter a formula to analyze it, or a sequent (with |- or ⊢) to prove
it and extract its witness.

Commands:
  :help       show this help
  :depth N    set the search depth bound
  :ascii      toggle ASCII output
  :quit       leave the session`

type replState struct {
	depth int
	ascii bool
}

func runREPL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := &replState{depth: cfg.Prover.MaxDepth, ascii: !cfg.Output.Unicode}

	fmt.Fprintln(out, ui.Banner("lolli, a linear logic workbench"))
	fmt.Fprintln(out, ui.Muted("type :help for commands, :quit to leave"))

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, ui.Prompt("lolli> "))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":help":
			fmt.Fprintln(out, replHelp)
		case line == ":ascii":
			st.ascii = !st.ascii
			fmt.Fprintf(out, "ascii output %s\n", onOff(st.ascii))
		case strings.HasPrefix(line, ":depth"):
			arg := strings.TrimSpace(strings.TrimPrefix(line, ":depth"))
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				fmt.Fprintln(out, ui.Failure("usage: :depth N (N positive)"))
				continue
			}
			st.depth = n
			fmt.Fprintf(out, "depth bound %d\n", n)
		case strings.HasPrefix(line, ":"):
			fmt.Fprintln(out, ui.Failure("unknown command, try :help"))
		default:
			replEval(cmd, out, st, line)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// replEval handles one line of input. Errors are reported and the
// session continues.
func replEval(cmd *cobra.Command, out io.Writer, st *replState, line string) {
	render := formula.Pretty
	if st.ascii {
		render = formula.PrettyASCII
	}

	if !parser.IsSequent(line) {
		f, err := parser.ParseFormula(line)
		if err != nil {
			fmt.Fprintln(out, ui.Failure(err.Error()))
			return
		}
		d := formula.Desugar(f)
		polarity := "negative"
		if formula.IsPositive(d) {
			polarity = "positive"
		}
		fmt.Fprintf(out, "%s %s\n", ui.Header("Desugared:"), render(d))
		fmt.Fprintf(out, "%s %s\n", ui.Header("Negation:"), render(formula.Negate(d)))
		fmt.Fprintf(out, "%s %s\n", ui.Header("Polarity:"), polarity)
		return
	}

	ts, err := parser.ParseSequent(line)
	if err != nil {
		fmt.Fprintln(out, ui.Failure(err.Error()))
		return
	}
	seq, ante := ts.OneSided()
	p := prover.New(prover.WithDepth(st.depth), prover.WithLogger(logger))
	node, stats, err := p.Prove(cmd.Context(), seq)
	if err != nil {
		fmt.Fprintln(out, ui.Failure(err.Error()))
		return
	}
	if node == nil {
		fmt.Fprintln(out, verdict(false))
		fmt.Fprintln(out, statsLine(stats))
		return
	}
	fmt.Fprintln(out, verdict(true))
	fmt.Fprintln(out, statsLine(stats))

	if len(ts.Right) != 1 {
		return
	}
	w, err := extract.Extract(node, ante)
	if err != nil {
		fmt.Fprintln(out, ui.Failure(err.Error()))
		return
	}
	fmt.Fprintf(out, "%s %s\n", ui.Header("Witness:"), term.Pretty(term.Normalize(w)))
}
