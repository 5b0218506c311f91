package evo

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var (
	// ErrPreconditionViolation is wrapped by every error that reports caller
	// misuse: an empty population, chromosomes of different lengths, a missing
	// random source or invalid fitness values.
	ErrPreconditionViolation = errors.New("precondition violation")

	ErrEmptyPopulation = fmt.Errorf("%w: empty population", ErrPreconditionViolation)
	ErrLengthMismatch  = fmt.Errorf("%w: chromosome length mismatch", ErrPreconditionViolation)
	ErrInvalidFitness  = fmt.Errorf("%w: fitness must be finite and non-negative", ErrPreconditionViolation)
	ErrNilRand         = fmt.Errorf("%w: random source is required", ErrPreconditionViolation)
)

// Chromosome is the flat parameter vector crossover and mutation operate on.
type Chromosome []float64

// Clone returns a copy of c that shares no memory with it.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// Individual is a member of a population.
type Individual interface {
	Fitness() float64
	Chromosome() Chromosome
}

// Factory materializes a new individual from a child chromosome.
type Factory[I Individual] func(Chromosome) (I, error)

// NewRand returns a seeded random stream. The same seed always yields the
// same sequence of draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
