package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lolli/internal/viz"
)

var (
	vizFormat string
	vizOutput string
	vizNet    bool
)

var vizCmd = &cobra.Command{
	Use:   "viz <sequent>",
	Short: "Render the proof of a provable sequent",
	Args:  cobra.ExactArgs(1),
	RunE:  runViz,
}

func init() {
	vizCmd.Flags().StringVar(&vizFormat, "format", "ascii", "rendering: ascii|latex|dot")
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "output file (default stdout)")
	vizCmd.Flags().BoolVar(&vizNet, "net", false, "render the collapsed proof net (dot only)")
	rootCmd.AddCommand(vizCmd)
}

func runViz(cmd *cobra.Command, args []string) error {
	node, _, _, _, err := prove(cmd, args[0], searchDepth(cmd))
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Fprintln(cmd.OutOrStdout(), verdict(false))
		return errNotProvable
	}

	var rendered string
	switch vizFormat {
	case "ascii":
		opts := []viz.TreeOption{viz.ASCII()}
		if cfg.Output.Unicode {
			opts = nil
		}
		rendered = viz.NewTree(opts...).Render(node)
	case "latex":
		rendered = viz.NewLatex(viz.IncludePreamble(), viz.ShortLabels()).Render(node)
	case "dot":
		g := viz.NewDot()
		if vizNet {
			rendered = g.RenderProofNet(node)
		} else {
			rendered = g.Render(node)
		}
	default:
		return fmt.Errorf("unknown viz format %q", vizFormat)
	}

	if vizOutput != "" {
		return os.WriteFile(vizOutput, []byte(rendered), 0o644)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}
