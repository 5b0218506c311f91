package evo

import (
	"fmt"

	"github.com/baldhumanity/neuroevo-go/evo/nn"
)

// Organism is a population member whose genotype is the parameter vector of
// a fixed-topology network.
type Organism struct {
	Key     int         // Unique identifier within a run.
	Network *nn.Network // Read-only phenotype used by the fitness function.
	fitness float64
}

// NewOrganism wraps a network.
func NewOrganism(key int, network *nn.Network) *Organism {
	return &Organism{Key: key, Network: network}
}

// Fitness returns the score assigned by the last evaluation.
func (o *Organism) Fitness() float64 {
	return o.fitness
}

// SetFitness records an evaluation result.
func (o *Organism) SetFitness(f float64) {
	o.fitness = f
}

// Chromosome returns a fresh copy of the network parameters.
func (o *Organism) Chromosome() Chromosome {
	return o.Network.Chromosome()
}

// String returns a short description of the organism.
func (o *Organism) String() string {
	return fmt.Sprintf("Organism(Key: %d, Fitness: %.4f, Params: %d)", o.Key, o.fitness, o.Network.ParameterCount())
}
