package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lolli/cmd/lolli/ui"
	"lolli/internal/codegen"
	"lolli/internal/config"
	"lolli/internal/extract"
	"lolli/internal/proof"
	"lolli/internal/prover"
)

var (
	// Global flags
	verbose bool
	cfgPath string
	noColor bool

	cfg    *config.Config
	logger *zap.Logger
)

// errNotProvable signals the exit-code-1 outcome: the search finished
// and the sequent has no proof. Not an error to print.
var errNotProvable = errors.New("not provable")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lolli",
	Short: "lolli - a classical linear logic workbench",
	Long: `lolli parses classical linear logic, decides provability with focused
proof search, and turns the proofs it finds into programs: linear λ-term
witnesses, their normal forms, and Rust code.

Sequents are written "A, B |- C" with connectives * | & + -o ! ? and
units 1 bot top 0, or with the Unicode glyphs ⊗ ⅋ & ⊕ ⊸ ⊥ ⊤.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Path(cfgPath))
		if err != nil {
			return err
		}
		if noColor || !cfg.Output.Color {
			ui.SetEnabled(false)
		}

		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "lolli.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

// exitCode maps outcomes onto the documented exit codes: 0 provable or
// plain success, 1 not provable, 2 usage and parse errors, 3 depth
// exceeded, 4 internal errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotProvable):
		return 1
	case errors.Is(err, prover.ErrDepthExceeded):
		return 3
	case errors.Is(err, extract.ErrInternal),
		errors.Is(err, codegen.ErrUntypable),
		errors.Is(err, proof.ErrInvalidRule),
		errors.Is(err, proof.ErrWrongPremiseCount),
		errors.Is(err, proof.ErrContextMismatch):
		return 4
	}
	return 2
}

func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errNotProvable) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}
