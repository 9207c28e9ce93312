package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lolli/cmd/lolli/ui"
	"lolli/internal/extract"
	"lolli/internal/term"
)

var extractNormalize bool

var extractCmd = &cobra.Command{
	Use:   "extract <sequent>",
	Short: "Extract the λ-term witness of a provable sequent",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractNormalize, "normalize", true, "also print the normal form")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	node, ante, _, _, err := prove(cmd, args[0], searchDepth(cmd))
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Fprintln(out, verdict(false))
		return errNotProvable
	}

	w, err := extract.Extract(node, ante)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", ui.Header("Witness:"), term.Pretty(w))
	if extractNormalize {
		fmt.Fprintf(out, "%s %s\n", ui.Header("Normal form:"), term.Pretty(term.Normalize(w)))
	}
	return nil
}
