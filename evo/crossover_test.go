package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformCrossover(t *testing.T) {
	const genes = 10000
	a := make(Chromosome, genes)
	b := make(Chromosome, genes)
	for i := range b {
		b[i] = 1
	}

	child, err := UniformCrossover{}.Crossover(NewRand(5), a, b)
	require.NoError(t, err)
	require.Len(t, child, genes)

	fromB := 0
	for _, g := range child {
		require.True(t, g == 0 || g == 1)
		if g == 1 {
			fromB++
		}
	}
	assert.InDelta(t, 0.5, float64(fromB)/genes, 0.03)
}

func TestUniformCrossoverKeepsPositions(t *testing.T) {
	a := Chromosome{1, 2, 3, 4, 5}
	b := Chromosome{-1, -2, -3, -4, -5}

	child, err := UniformCrossover{}.Crossover(NewRand(1), a, b)
	require.NoError(t, err)
	for i, g := range child {
		assert.True(t, g == a[i] || g == b[i], "gene %d = %v", i, g)
	}

	again, err := UniformCrossover{}.Crossover(NewRand(1), a, b)
	require.NoError(t, err)
	assert.Equal(t, child, again)

	// Parents are not modified.
	assert.Equal(t, Chromosome{1, 2, 3, 4, 5}, a)
	assert.Equal(t, Chromosome{-1, -2, -3, -4, -5}, b)
}

func TestUniformCrossoverLengthMismatch(t *testing.T) {
	_, err := UniformCrossover{}.Crossover(NewRand(1), Chromosome{1, 2}, Chromosome{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = UniformCrossover{}.Crossover(nil, Chromosome{1}, Chromosome{1})
	assert.ErrorIs(t, err, ErrNilRand)
}
