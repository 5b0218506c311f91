package evo

import (
	"io"
	"log/slog"
)

type testIndividual struct {
	fitness    float64
	chromosome Chromosome
}

func (t *testIndividual) Fitness() float64 {
	return t.fitness
}

func (t *testIndividual) Chromosome() Chromosome {
	return t.chromosome.Clone()
}

func newTestIndividual(c Chromosome) (*testIndividual, error) {
	return &testIndividual{chromosome: c}, nil
}

func testPopulation(fitnesses ...float64) []*testIndividual {
	population := make([]*testIndividual, len(fitnesses))
	for i, f := range fitnesses {
		population[i] = &testIndividual{
			fitness:    f,
			chromosome: Chromosome{float64(i), float64(i) * 0.5, -float64(i)},
		}
	}
	return population
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
