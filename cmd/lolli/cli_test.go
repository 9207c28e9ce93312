package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lolli/internal/prover"
)

// execute runs the root command with a fresh output buffer. Commands
// share package-level flag variables, so runs are sequential.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	if stdin != "" {
		rootCmd.SetIn(strings.NewReader(stdin))
	}
	rootCmd.SetArgs(append(args, "--no-color"))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParseFormula(t *testing.T) {
	out, err := execute(t, "", "parse", "A * B -o C")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed: A ⊗ B ⊸ C")
	assert.Contains(t, out, "Desugared:")
	assert.Contains(t, out, "Negation:")
	assert.Contains(t, out, "Polarity: negative")
}

func TestParseSequent(t *testing.T) {
	out, err := execute(t, "", "parse", "A, B |- A * B")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed: A, B ⊢ A ⊗ B")
	assert.Contains(t, out, "One-sided:")
	assert.Contains(t, out, "Antecedents: 2")
}

func TestParseASCII(t *testing.T) {
	out, err := execute(t, "", "parse", "A ⊗ B", "--ascii")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed: A * B")
}

func TestParseError(t *testing.T) {
	_, err := execute(t, "", "parse", "A **")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestProveProvable(t *testing.T) {
	out, err := execute(t, "", "prove", "A, A -o B |- B")
	require.NoError(t, err)
	assert.Contains(t, out, "PROVABLE")
	assert.Contains(t, out, "steps=")
	assert.Contains(t, out, "proof: depth=")
}

func TestProveNotProvable(t *testing.T) {
	out, err := execute(t, "", "prove", "A |- A * A")
	assert.ErrorIs(t, err, errNotProvable)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "NOT PROVABLE")
}

func TestProveDepthExceeded(t *testing.T) {
	_, err := execute(t, "", "prove", "|- ?A", "--depth", "10")
	assert.ErrorIs(t, err, prover.ErrDepthExceeded)
	assert.Equal(t, 3, exitCode(err))
}

func TestProveLatexFormat(t *testing.T) {
	out, err := execute(t, "", "prove", "A |- A", "--format", "latex")
	require.NoError(t, err)
	assert.Contains(t, out, "\\begin{prooftree}")
}

func TestExtract(t *testing.T) {
	out, err := execute(t, "", "extract", "A, B |- A * B")
	require.NoError(t, err)
	assert.Contains(t, out, "Witness:")
	assert.Contains(t, out, "Normal form: (x0, x1)")
}

func TestCodegenToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "witness.rs")
	_, err := execute(t, "", "codegen", "A |- A", "--output", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pub fn witness(x0: A) -> A")
}

func TestVizDot(t *testing.T) {
	out, err := execute(t, "", "viz", "A |- A", "--format", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph proof {")
}

func TestREPLSession(t *testing.T) {
	in := "A -o A\nA, B |- A * B\n:depth 20\n:help\n:quit\n"
	out, err := execute(t, in, "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "Polarity:")
	assert.Contains(t, out, "PROVABLE")
	assert.Contains(t, out, "Witness:")
	assert.Contains(t, out, "depth bound 20")
	assert.Contains(t, out, ":quit")
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errNotProvable))
	assert.Equal(t, 3, exitCode(prover.ErrDepthExceeded))
	assert.Equal(t, 2, exitCode(errors.New("usage")))
}
