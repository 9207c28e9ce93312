package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100, cfg.Prover.MaxDepth)
	assert.True(t, cfg.Output.Color)
	assert.True(t, cfg.Output.Unicode)
	assert.Equal(t, "rust", cfg.Codegen.Target)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lolli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prover:\n  max_depth: 42\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Prover.MaxDepth)
	// Untouched sections keep their defaults.
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "rust", cfg.Codegen.Target)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lolli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prover: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects non-positive depth", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Prover.MaxDepth = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown codegen target", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Codegen.Target = "cobol"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadRejectsInvalidFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lolli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prover:\n  max_depth: -3\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
