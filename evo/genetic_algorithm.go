package evo

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// Defaults used by New when an option is not given.
const (
	DefaultMutationChance    = 0.01
	DefaultMutationMagnitude = 0.3
)

type settings struct {
	selection         SelectionMethod
	crossover         CrossoverMethod
	mutation          MutationMethod
	mutationChance    float64
	mutationMagnitude float64
	elitism           int
}

// Option configures a GeneticAlgorithm.
type Option func(*settings)

// WithSelection sets the parent selection strategy.
func WithSelection(m SelectionMethod) Option {
	return func(s *settings) { s.selection = m }
}

// WithCrossover sets the crossover strategy.
func WithCrossover(m CrossoverMethod) Option {
	return func(s *settings) { s.crossover = m }
}

// WithMutation sets the mutation strategy and its per-gene chance and magnitude.
func WithMutation(m MutationMethod, chance, magnitude float64) Option {
	return func(s *settings) {
		s.mutation = m
		s.mutationChance = chance
		s.mutationMagnitude = magnitude
	}
}

// WithElitism copies the n fittest chromosomes unchanged into the next
// generation before any offspring are bred.
func WithElitism(n int) Option {
	return func(s *settings) { s.elitism = n }
}

// GeneticAlgorithm breeds the next generation of a population.
// It holds no state between calls; all randomness comes from the stream
// passed to Evolve.
type GeneticAlgorithm[I Individual] struct {
	settings
}

// Lineage records which members of the previous generation produced a child,
// as indices into that population. Elites list themselves twice.
type Lineage struct {
	ParentA int
	ParentB int
}

// New returns a GeneticAlgorithm using roulette-wheel selection, uniform
// crossover and uniform perturbation mutation unless overridden by opts.
func New[I Individual](opts ...Option) (*GeneticAlgorithm[I], error) {
	s := settings{
		selection:         RouletteWheelSelection{},
		crossover:         UniformCrossover{},
		mutation:          PerturbMutation{Distribution: Uniform},
		mutationChance:    DefaultMutationChance,
		mutationMagnitude: DefaultMutationMagnitude,
	}
	for _, opt := range opts {
		opt(&s)
	}

	switch {
	case s.selection == nil || s.crossover == nil || s.mutation == nil:
		return nil, fmt.Errorf("%w: selection, crossover and mutation methods are required", ErrInvalidConfig)
	case math.IsNaN(s.mutationChance) || s.mutationChance < 0 || s.mutationChance > 1:
		return nil, fmt.Errorf("%w: mutation chance %v outside [0, 1]", ErrInvalidConfig, s.mutationChance)
	case math.IsNaN(s.mutationMagnitude) || math.IsInf(s.mutationMagnitude, 0) || s.mutationMagnitude < 0:
		return nil, fmt.Errorf("%w: mutation magnitude %v must be finite and non-negative", ErrInvalidConfig, s.mutationMagnitude)
	case s.elitism < 0:
		return nil, fmt.Errorf("%w: elitism %d is negative", ErrInvalidConfig, s.elitism)
	}
	return &GeneticAlgorithm[I]{settings: s}, nil
}

// Evolve produces a next generation of the same size as population.
// See EvolveWithLineage.
func (ga *GeneticAlgorithm[I]) Evolve(rng *rand.Rand, population []I, create Factory[I]) ([]I, error) {
	next, _, err := ga.EvolveWithLineage(rng, population, create)
	return next, err
}

// EvolveWithLineage produces a next generation of the same size as population
// and reports each child's parents.
//
// For every slot it selects two parents (possibly the same one), crosses
// their chromosomes, mutates the child and materializes it with create, in
// exactly that order, so the same rng state and population always give the
// same result. The call is all or nothing: on error no population is returned.
func (ga *GeneticAlgorithm[I]) EvolveWithLineage(rng *rand.Rand, population []I, create Factory[I]) ([]I, []Lineage, error) {
	if rng == nil {
		return nil, nil, ErrNilRand
	}
	if create == nil {
		return nil, nil, fmt.Errorf("%w: factory is required", ErrPreconditionViolation)
	}
	if len(population) == 0 {
		return nil, nil, ErrEmptyPopulation
	}

	fitnesses := make([]float64, len(population))
	chromosomes := make([]Chromosome, len(population))
	for i, individual := range population {
		fitnesses[i] = individual.Fitness()
		chromosomes[i] = individual.Chromosome()
		if len(chromosomes[i]) != len(chromosomes[0]) {
			return nil, nil, fmt.Errorf("%w: member %d has %d genes, member 0 has %d",
				ErrLengthMismatch, i, len(chromosomes[i]), len(chromosomes[0]))
		}
	}
	if err := validateFitnesses(fitnesses); err != nil {
		return nil, nil, err
	}

	next := make([]I, 0, len(population))
	lineage := make([]Lineage, 0, len(population))

	elites := min(ga.elitism, len(population))
	for _, idx := range rankByFitness(fitnesses)[:elites] {
		child, err := create(chromosomes[idx].Clone())
		if err != nil {
			return nil, nil, fmt.Errorf("elite %d: %w", idx, err)
		}
		next = append(next, child)
		lineage = append(lineage, Lineage{ParentA: idx, ParentB: idx})
	}

	for slot := len(next); slot < len(population); slot++ {
		a, err := ga.selectParent(rng, fitnesses)
		if err != nil {
			return nil, nil, fmt.Errorf("slot %d: %w", slot, err)
		}
		b, err := ga.selectParent(rng, fitnesses)
		if err != nil {
			return nil, nil, fmt.Errorf("slot %d: %w", slot, err)
		}

		genes, err := ga.crossover.Crossover(rng, chromosomes[a], chromosomes[b])
		if err != nil {
			return nil, nil, fmt.Errorf("slot %d: %w", slot, err)
		}
		genes = ga.mutation.Mutate(rng, genes, ga.mutationChance, ga.mutationMagnitude)

		child, err := create(genes)
		if err != nil {
			return nil, nil, fmt.Errorf("slot %d: %w", slot, err)
		}
		next = append(next, child)
		lineage = append(lineage, Lineage{ParentA: a, ParentB: b})
	}
	return next, lineage, nil
}

func (ga *GeneticAlgorithm[I]) selectParent(rng *rand.Rand, fitnesses []float64) (int, error) {
	idx, err := ga.selection.Select(rng, fitnesses)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(fitnesses) {
		return 0, fmt.Errorf("%w: selection returned index %d for %d members", ErrPreconditionViolation, idx, len(fitnesses))
	}
	return idx, nil
}

// rankByFitness returns population indices ordered by descending fitness;
// ties keep population order.
func rankByFitness(fitnesses []float64) []int {
	order := make([]int, len(fitnesses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return fitnesses[order[i]] > fitnesses[order[j]]
	})
	return order
}
