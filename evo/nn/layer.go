package nn

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Layer is an ordered set of neurons that all read the same input vector.
type Layer struct {
	Neurons []Neuron
}

// RandomLayer builds neuronCount neurons with inputCount weights each,
// consuming rng neuron by neuron.
func RandomLayer(rng *rand.Rand, inputCount, neuronCount int) Layer {
	neurons := make([]Neuron, neuronCount)
	for i := range neurons {
		neurons[i] = RandomNeuron(rng, inputCount)
	}
	return Layer{Neurons: neurons}
}

// Propagate feeds inputs through every neuron with ReLU activation and
// returns one output per neuron.
func (l Layer) Propagate(inputs []float64) ([]float64, error) {
	return l.Activate(inputs, ReLU)
}

// Activate is Propagate with an arbitrary activation function.
func (l Layer) Activate(inputs []float64, fn ActivationFunc) ([]float64, error) {
	outputs := make([]float64, len(l.Neurons))
	for i, neuron := range l.Neurons {
		out, err := neuron.Activate(inputs, fn)
		if err != nil {
			return nil, fmt.Errorf("neuron %d: %w", i, err)
		}
		outputs[i] = out
	}
	return outputs, nil
}

// InputCount returns the input width shared by the layer's neurons.
func (l Layer) InputCount() int {
	if len(l.Neurons) == 0 {
		return 0
	}
	return len(l.Neurons[0].Weights)
}
