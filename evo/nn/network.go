package nn

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var (
	// ErrInputMismatch is returned when an input vector does not match the
	// width a neuron, layer or network expects.
	ErrInputMismatch = errors.New("input length mismatch")
	// ErrInvalidTopology is returned for topologies with fewer than two
	// layers or a non-positive width.
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrChromosomeLength is returned when a chromosome does not hold exactly
	// one entry per bias and weight of the target topology.
	ErrChromosomeLength = errors.New("chromosome length mismatch")
	// ErrNilRand is returned when a network is requested without a random source.
	ErrNilRand = errors.New("random source is required")
)

// Topology lists layer widths, input layer first.
type Topology []int

// Validate checks that t describes at least one layer of connections.
func (t Topology) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("%w: need at least 2 widths, got %d", ErrInvalidTopology, len(t))
	}
	for i, width := range t {
		if width <= 0 {
			return fmt.Errorf("%w: width %d at position %d", ErrInvalidTopology, width, i)
		}
	}
	return nil
}

// ParameterCount returns the number of biases and weights a network of
// topology t holds, which is also its chromosome length.
func (t Topology) ParameterCount() int {
	count := 0
	for i := 1; i < len(t); i++ {
		count += t[i] * (t[i-1] + 1)
	}
	return count
}

// Network is a fully connected feedforward network. It is not modified after
// construction; evolution produces new networks through FromChromosome.
type Network struct {
	topology Topology
	layers   []Layer
	opts     options

	hidden ActivationFunc
	output ActivationFunc
}

type options struct {
	activation       string
	outputActivation string
}

// Option configures network construction.
type Option func(*options)

// WithActivation selects the activation applied by every layer but the last.
func WithActivation(name string) Option {
	return func(o *options) {
		o.activation = name
	}
}

// WithOutputActivation selects the activation applied by the last layer.
func WithOutputActivation(name string) Option {
	return func(o *options) {
		o.outputActivation = name
	}
}

func newNetwork(topology Topology, layers []Layer, opts []Option) (*Network, error) {
	o := options{activation: DefaultActivation, outputActivation: DefaultActivation}
	for _, opt := range opts {
		opt(&o)
	}
	hidden, err := GetActivation(o.activation)
	if err != nil {
		return nil, err
	}
	output, err := GetActivation(o.outputActivation)
	if err != nil {
		return nil, err
	}

	t := make(Topology, len(topology))
	copy(t, topology)
	return &Network{
		topology: t,
		layers:   layers,
		opts:     o,
		hidden:   hidden,
		output:   output,
	}, nil
}

// RandomNetwork builds one layer per consecutive pair of widths in topology,
// consuming rng layer by layer and neuron by neuron. The same seed and
// topology always yield the same network.
func RandomNetwork(rng *rand.Rand, topology Topology, opts ...Option) (*Network, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	layers := make([]Layer, 0, len(topology)-1)
	for i := 1; i < len(topology); i++ {
		layers = append(layers, RandomLayer(rng, topology[i-1], topology[i]))
	}
	return newNetwork(topology, layers, opts)
}

// FromChromosome rebuilds a network of the given topology from a flat
// parameter vector laid out as Chromosome produces it. The values are copied.
func FromChromosome(topology Topology, chromosome []float64, opts ...Option) (*Network, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	if want := topology.ParameterCount(); len(chromosome) != want {
		return nil, fmt.Errorf("%w: got %d values, topology %v needs %d", ErrChromosomeLength, len(chromosome), []int(topology), want)
	}

	pos := 0
	layers := make([]Layer, 0, len(topology)-1)
	for i := 1; i < len(topology); i++ {
		inputs := topology[i-1]
		neurons := make([]Neuron, topology[i])
		for j := range neurons {
			weights := make([]float64, inputs)
			copy(weights, chromosome[pos+1:pos+1+inputs])
			neurons[j] = Neuron{Bias: chromosome[pos], Weights: weights}
			pos += inputs + 1
		}
		layers = append(layers, Layer{Neurons: neurons})
	}
	return newNetwork(topology, layers, opts)
}

// Propagate folds inputs through every layer and returns the last layer's outputs.
func (n *Network) Propagate(inputs []float64) ([]float64, error) {
	if want := n.topology[0]; len(inputs) != want {
		return nil, fmt.Errorf("%w: got %d inputs, network expects %d", ErrInputMismatch, len(inputs), want)
	}

	values := inputs
	last := len(n.layers) - 1
	for i, layer := range n.layers {
		fn := n.hidden
		if i == last {
			fn = n.output
		}
		out, err := layer.Activate(values, fn)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		values = out
	}
	return values, nil
}

// Chromosome flattens the network's parameters: layers in order, neurons in
// order, and for each neuron its bias followed by its weights.
func (n *Network) Chromosome() []float64 {
	chromosome := make([]float64, 0, n.ParameterCount())
	for _, layer := range n.layers {
		for _, neuron := range layer.Neurons {
			chromosome = append(chromosome, neuron.Bias)
			chromosome = append(chromosome, neuron.Weights...)
		}
	}
	return chromosome
}

// ParameterCount returns the length of the network's chromosome.
func (n *Network) ParameterCount() int {
	count := 0
	for _, layer := range n.layers {
		for _, neuron := range layer.Neurons {
			count += neuron.paramCount()
		}
	}
	return count
}

// Topology returns a copy of the layer widths the network was built with.
func (n *Network) Topology() Topology {
	t := make(Topology, len(n.topology))
	copy(t, n.topology)
	return t
}

// Layers returns the network's layers. Callers must not modify them.
func (n *Network) Layers() []Layer {
	return n.layers
}

// Options returns the construction options needed to rebuild a network with
// the same activations, e.g. when passing a child chromosome to FromChromosome.
func (n *Network) Options() []Option {
	return []Option{WithActivation(n.opts.activation), WithOutputActivation(n.opts.outputActivation)}
}
