package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActivation(t *testing.T) {
	for name := range ActivationFunctions {
		fn, err := GetActivation(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn, name)
	}

	_, err := GetActivation("nope")
	assert.Error(t, err)
}

func TestActivations(t *testing.T) {
	assert.Equal(t, 0.0, ReLU(-3))
	assert.Equal(t, 2.5, ReLU(2.5))
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.Equal(t, 1.0, Clamped(7))
	assert.Equal(t, -1.0, Clamped(-7))
	assert.Equal(t, 1.0, Gaussian(0))
	assert.Equal(t, 3.0, Absolute(-3))
	assert.Equal(t, 0.0, Hat(2))
	assert.Equal(t, 1.0, Hat(0))
	assert.Equal(t, -0.4, Identity(-0.4))
	assert.InDelta(t, 0.0, Tanh(0), 1e-12)
}
