package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lolli/internal/codegen"
	"lolli/internal/extract"
	"lolli/internal/term"
)

var codegenOutput string

var codegenCmd = &cobra.Command{
	Use:   "codegen <sequent>",
	Short: "Generate Rust realizing the witness of a provable sequent",
	Args:  cobra.ExactArgs(1),
	RunE:  runCodegen,
}

func init() {
	codegenCmd.Flags().StringVarP(&codegenOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(codegenCmd)
}

func runCodegen(cmd *cobra.Command, args []string) error {
	node, ante, ts, _, err := prove(cmd, args[0], searchDepth(cmd))
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Fprintln(cmd.OutOrStdout(), verdict(false))
		return errNotProvable
	}

	w, err := extract.Extract(node, ante)
	if err != nil {
		return err
	}
	normal := term.Normalize(w)
	if codegenOutput != "" {
		return codegen.EmitFile(codegenOutput, ts.Right[0], ts.Left, normal)
	}
	return codegen.Emit(cmd.OutOrStdout(), ts.Right[0], ts.Left, normal)
}
