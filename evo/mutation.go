package evo

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MutationMethod perturbs a chromosome. Implementations return a new slice
// and leave c untouched so a parent can be reused for several children.
type MutationMethod interface {
	Mutate(rng *rand.Rand, c Chromosome, chance, magnitude float64) Chromosome
}

// Distribution names the shape of a perturbation.
type Distribution string

const (
	// Uniform perturbations are drawn from [-magnitude, magnitude).
	Uniform Distribution = "uniform"
	// Gaussian perturbations are drawn from N(0, magnitude²).
	Gaussian Distribution = "gaussian"
)

// ParseDistribution validates a distribution name from configuration.
func ParseDistribution(name string) (Distribution, error) {
	switch d := Distribution(name); d {
	case Uniform, Gaussian:
		return d, nil
	default:
		return "", fmt.Errorf("unknown mutation distribution: %s", name)
	}
}

// PerturbMutation visits every gene in order and, with probability chance,
// adds a perturbation scaled by magnitude. The zero value perturbs uniformly.
type PerturbMutation struct {
	Distribution Distribution
}

// Mutate implements MutationMethod. Each gene costs one draw for the chance
// test plus one more when it is perturbed.
func (m PerturbMutation) Mutate(rng *rand.Rand, c Chromosome, chance, magnitude float64) Chromosome {
	child := c.Clone()
	perturbation := m.perturbation(rng, magnitude)
	for i := range child {
		if rng.Float64() < chance {
			child[i] += perturbation.Rand()
		}
	}
	return child
}

func (m PerturbMutation) perturbation(rng *rand.Rand, magnitude float64) distuv.Rander {
	if m.Distribution == Gaussian {
		return distuv.Normal{Mu: 0, Sigma: magnitude, Src: rng}
	}
	return distuv.Uniform{Min: -magnitude, Max: magnitude, Src: rng}
}
