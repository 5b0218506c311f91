package nn

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Neuron holds a bias and one weight per input.
type Neuron struct {
	Bias    float64
	Weights []float64
}

// RandomNeuron draws the bias and then each weight uniformly from [-1, 1),
// in that order, from rng. rng must not be nil.
func RandomNeuron(rng *rand.Rand, inputCount int) Neuron {
	dist := distuv.Uniform{Min: -1, Max: 1, Src: rng}

	bias := dist.Rand()
	weights := make([]float64, inputCount)
	for i := range weights {
		weights[i] = dist.Rand()
	}
	return Neuron{Bias: bias, Weights: weights}
}

// Propagate computes max(0, bias + Σ inputs[i]*weights[i]).
func (n Neuron) Propagate(inputs []float64) (float64, error) {
	return n.Activate(inputs, ReLU)
}

// Activate computes fn(bias + Σ inputs[i]*weights[i]).
func (n Neuron) Activate(inputs []float64, fn ActivationFunc) (float64, error) {
	if len(inputs) != len(n.Weights) {
		return 0, fmt.Errorf("%w: got %d inputs, neuron has %d weights", ErrInputMismatch, len(inputs), len(n.Weights))
	}
	return fn(floats.Dot(inputs, n.Weights) + n.Bias), nil
}

// paramCount is the number of chromosome entries this neuron occupies.
func (n Neuron) paramCount() int {
	return len(n.Weights) + 1
}
