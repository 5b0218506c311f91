package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagnation(t *testing.T) {
	s := NewStagnation(2)

	assert.Equal(t, 0, s.Update(1, 1))
	assert.False(t, s.IsStagnant(1))
	assert.Equal(t, 1, s.Update(1, 2))
	assert.False(t, s.IsStagnant(2))
	assert.Equal(t, 2, s.Update(0.5, 3))
	assert.True(t, s.IsStagnant(3))

	// Improvement clears stagnation.
	assert.Equal(t, 0, s.Update(1.5, 4))
	assert.False(t, s.IsStagnant(4))

	assert.Equal(t, []float64{1, 1, 0.5, 1.5}, s.History())
}

func TestStagnationReset(t *testing.T) {
	s := NewStagnation(1)
	s.Update(10, 1)
	s.Update(10, 2)
	assert.True(t, s.IsStagnant(2))

	s.Reset(2)
	assert.False(t, s.IsStagnant(2))
	// After a reset any value counts as an improvement.
	assert.Equal(t, 0, s.Update(3, 3))
}

func TestStagnationDisabled(t *testing.T) {
	s := NewStagnation(0)
	for gen := 1; gen <= 10; gen++ {
		s.Update(1, gen)
	}
	assert.False(t, s.IsStagnant(10))
}
