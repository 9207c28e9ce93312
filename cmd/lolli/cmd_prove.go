package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lolli/cmd/lolli/ui"
	"lolli/internal/parser"
	"lolli/internal/proof"
	"lolli/internal/prover"
	"lolli/internal/sequent"
	"lolli/internal/viz"
)

var (
	proveDepth  int
	proveFormat string
)

var proveCmd = &cobra.Command{
	Use:   "prove <sequent>",
	Short: "Decide provability and render the proof",
	Args:  cobra.ExactArgs(1),
	RunE:  runProve,
}

func init() {
	proveCmd.Flags().IntVar(&proveDepth, "depth", prover.DefaultMaxDepth, "search depth bound")
	proveCmd.Flags().StringVar(&proveFormat, "format", "tree", "proof rendering: tree|latex|dot|none")
	rootCmd.AddCommand(proveCmd)
}

// searchDepth prefers an explicit --depth over the configured bound.
func searchDepth(cmd *cobra.Command) int {
	if cmd.Flags().Changed("depth") {
		return proveDepth
	}
	return cfg.Prover.MaxDepth
}

// prove parses the sequent and runs verified proof search. A nil node
// with a nil error means definitely not provable.
func prove(cmd *cobra.Command, src string, depth int) (*proof.Node, int, *sequent.TwoSided, prover.Stats, error) {
	ts, err := parser.ParseSequent(src)
	if err != nil {
		return nil, 0, nil, prover.Stats{}, err
	}
	seq, ante := ts.OneSided()
	p := prover.New(prover.WithDepth(depth), prover.WithLogger(logger))
	node, stats, err := p.Prove(cmd.Context(), seq)
	if err != nil {
		return nil, 0, nil, stats, err
	}
	if node != nil {
		if err := proof.Verify(node); err != nil {
			return nil, 0, nil, stats, fmt.Errorf("search produced an invalid proof: %w", err)
		}
	}
	return node, ante, ts, stats, nil
}

func verdict(provable bool) string {
	mark, word := "✓ ", "PROVABLE"
	if !provable {
		mark, word = "✗ ", "NOT PROVABLE"
	}
	if !cfg.Output.Unicode {
		mark = ""
	}
	if provable {
		return ui.Success(mark + word)
	}
	return ui.Failure(mark + word)
}

func statsLine(s prover.Stats) string {
	return ui.Muted(fmt.Sprintf("steps=%d memo_hits=%d max_depth=%d", s.Steps, s.MemoHits, s.MaxDepth))
}

func runProve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	node, _, _, stats, err := prove(cmd, args[0], searchDepth(cmd))
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Fprintln(out, verdict(false))
		fmt.Fprintln(out, statsLine(stats))
		return errNotProvable
	}

	fmt.Fprintln(out, verdict(true))
	switch proveFormat {
	case "tree":
		var opts []viz.TreeOption
		if !cfg.Output.Unicode {
			opts = append(opts, viz.ASCII())
		}
		fmt.Fprint(out, viz.NewTree(opts...).Render(node))
	case "latex":
		fmt.Fprint(out, viz.NewLatex().Render(node))
	case "dot":
		fmt.Fprint(out, viz.NewDot().Render(node))
	case "none":
	default:
		return fmt.Errorf("unknown proof format %q", proveFormat)
	}
	fmt.Fprintln(out, statsLine(stats))
	fmt.Fprintln(out, ui.Muted(fmt.Sprintf("proof: depth=%d size=%d cuts=%d",
		proof.Depth(node), proof.Size(node), proof.CutCount(node))))
	return nil
}
