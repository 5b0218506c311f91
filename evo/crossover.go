package evo

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// CrossoverMethod combines two parent chromosomes into a child.
type CrossoverMethod interface {
	Crossover(rng *rand.Rand, a, b Chromosome) (Chromosome, error)
}

// UniformCrossover takes each gene from either parent with equal probability,
// drawing one coin flip per gene from left to right.
type UniformCrossover struct{}

// Crossover implements CrossoverMethod.
func (UniformCrossover) Crossover(rng *rand.Rand, a, b Chromosome) (Chromosome, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: parents have %d and %d genes", ErrLengthMismatch, len(a), len(b))
	}

	child := make(Chromosome, len(a))
	for i := range child {
		if rng.Float64() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child, nil
}
