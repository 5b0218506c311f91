package evo

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SelectionMethod picks the index of one parent given every member's fitness.
type SelectionMethod interface {
	Select(rng *rand.Rand, fitnesses []float64) (int, error)
}

// RouletteWheelSelection picks a member with probability fitness/sum(fitness).
//
// If every fitness is zero the wheel has no area and the pick is uniform over
// the population instead. Either way exactly one value is drawn from rng.
type RouletteWheelSelection struct{}

// Select implements SelectionMethod.
func (RouletteWheelSelection) Select(rng *rand.Rand, fitnesses []float64) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	if err := validateFitnesses(fitnesses); err != nil {
		return 0, err
	}

	wheel := sampleuv.NewWeighted(fitnesses, rng)
	if idx, ok := wheel.Take(); ok {
		return idx, nil
	}
	return rng.Intn(len(fitnesses)), nil
}

func validateFitnesses(fitnesses []float64) error {
	if len(fitnesses) == 0 {
		return ErrEmptyPopulation
	}
	for i, f := range fitnesses {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return fmt.Errorf("%w: member %d has fitness %v", ErrInvalidFitness, i, f)
		}
	}
	return nil
}
