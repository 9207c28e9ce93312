package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledStylingIsPlain(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	assert.Equal(t, "ok", Success("ok"))
	assert.Equal(t, "no", Failure("no"))
	assert.Equal(t, "head", Header("head"))
	assert.Equal(t, "dim", Muted("dim"))
}

func TestStylingKeepsContent(t *testing.T) {
	SetEnabled(true)
	assert.Contains(t, Success("PROVABLE"), "PROVABLE")
	assert.Contains(t, Banner("lolli"), "lolli")
	assert.Contains(t, Prompt("lolli> "), "lolli> ")
}
