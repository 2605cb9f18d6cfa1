package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
	assert.Equal(t, 10.0, Clamp(10, 10, 10))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.23, Round2(-1.2349))
	assert.Equal(t, 0.0, Round2(0))
}

func TestEWMA(t *testing.T) {
	// History-dominant blend
	assert.InDelta(t, 58.0, EWMA(50, 90, 0.8), 1e-9)
	// Equal blend
	assert.InDelta(t, 70.0, EWMA(50, 90, 0.5), 1e-9)
	// Observation ignored entirely
	assert.InDelta(t, 50.0, EWMA(50, 90, 1.0), 1e-9)
}
