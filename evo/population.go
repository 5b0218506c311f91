package evo

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/rand"

	"github.com/baldhumanity/neuroevo-go/evo/nn"
)

// FitnessFunc scores one organism. It is called once per organism per
// generation and must not modify the organism's network. When the config asks
// for more than one evaluation worker it is called concurrently.
type FitnessFunc func(o *Organism) (float64, error)

// Population holds the state of an evolutionary run.
type Population struct {
	Config     *Config
	RunID      uuid.UUID
	Organisms  []*Organism   // Current generation.
	Generation int           // Number of generations evaluated so far.
	Best       *Organism     // Best organism found so far.
	History    []Stats       // Fitness summary per evaluated generation.
	Ancestors  map[int][]int // Organism key -> parent keys, for the current generation.

	rng        *rand.Rand
	algorithm  *GeneticAlgorithm[*Organism]
	stagnation *Stagnation
	nextKey    int
	logger     *slog.Logger
	metrics    *Metrics
}

// PopulationOption customises NewPopulation.
type PopulationOption func(*Population)

// WithLogger sets the logger used for progress reports.
func WithLogger(logger *slog.Logger) PopulationOption {
	return func(p *Population) { p.logger = logger }
}

// WithMetrics exports progress through m.
func WithMetrics(m *Metrics) PopulationOption {
	return func(p *Population) { p.metrics = m }
}

// WithRand replaces the stream seeded from Evolution.Seed.
func WithRand(rng *rand.Rand) PopulationOption {
	return func(p *Population) { p.rng = rng }
}

// NewPopulation creates a Population with a first generation of random networks.
func NewPopulation(config *Config, opts ...PopulationOption) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	gaOpts, err := config.Reproduction.Options()
	if err != nil {
		return nil, err
	}
	algorithm, err := New[*Organism](gaOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create genetic algorithm: %w", err)
	}

	p := &Population{
		Config:     config,
		RunID:      uuid.New(),
		Ancestors:  make(map[int][]int),
		rng:        NewRand(config.Evolution.Seed),
		algorithm:  algorithm,
		stagnation: NewStagnation(config.Evolution.MaxStagnation),
		nextKey:    1,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		return nil, ErrNilRand
	}
	p.logger = p.logger.With("run_id", p.RunID.String())

	organisms, err := p.randomOrganisms()
	if err != nil {
		return nil, err
	}
	p.Organisms = organisms
	return p, nil
}

// getNextKey gets the next available organism key and increments the internal counter.
func (p *Population) getNextKey() int {
	key := p.nextKey
	p.nextKey++
	return key
}

func (p *Population) randomOrganisms() ([]*Organism, error) {
	netCfg := p.Config.Network
	organisms := make([]*Organism, p.Config.Evolution.PopSize)
	for i := range organisms {
		net, err := nn.RandomNetwork(p.rng, netCfg.Topology, netCfg.NetworkOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create network: %w", err)
		}
		o := NewOrganism(p.getNextKey(), net)
		organisms[i] = o
		p.Ancestors[o.Key] = []int{}
	}
	return organisms, nil
}

// newOrganism is the Factory handed to the genetic algorithm.
func (p *Population) newOrganism(c Chromosome) (*Organism, error) {
	net, err := nn.FromChromosome(p.Config.Network.Topology, c, p.Config.Network.NetworkOptions()...)
	if err != nil {
		return nil, err
	}
	return NewOrganism(p.getNextKey(), net), nil
}

// RunGeneration evaluates the current generation and breeds the next one.
// It returns the best organism so far if the fitness threshold was met, in
// which case no new generation is bred, and nil otherwise.
func (p *Population) RunGeneration(fitnessFunc FitnessFunc) (*Organism, error) {
	p.Generation++
	start := time.Now()
	log := p.logger.With("generation", p.Generation)

	// 1. Evaluate fitness.
	if err := p.evaluate(fitnessFunc); err != nil {
		return nil, fmt.Errorf("fitness evaluation failed in generation %d: %w", p.Generation, err)
	}
	fitnesses := make([]float64, len(p.Organisms))
	for i, o := range p.Organisms {
		fitnesses[i] = o.Fitness()
	}
	stats := ComputeStats(p.Generation, fitnesses)
	p.History = append(p.History, stats)

	// 2. Track the best organism.
	currentBest := p.findBestOrganism()
	if p.Best == nil || currentBest.Fitness() > p.Best.Fitness() {
		p.Best = currentBest
		log.Info("new best organism", "key", p.Best.Key, "fitness", p.Best.Fitness())
	}

	criterion := StatFunctions[p.Config.Evolution.FitnessCriterion](fitnesses)
	stagnant := p.stagnation.Update(criterion, p.Generation)
	p.metrics.observe(stats, stagnant)
	log.Info("generation evaluated",
		"best", stats.Best, "mean", stats.Mean, "stdev", stats.StdDev, "stagnant_for", stagnant)

	// 3. Check the termination condition.
	if !p.Config.Evolution.NoFitnessTermination && criterion >= p.Config.Evolution.FitnessThreshold {
		return p.Best, nil
	}

	// 4. Re-seed a stagnant population, or breed the next generation.
	if p.Config.Evolution.ResetOnStagnation && p.stagnation.IsStagnant(p.Generation) {
		log.Warn("population stagnated, re-seeding", "stagnant_for", stagnant)
		p.Ancestors = make(map[int][]int)
		organisms, err := p.randomOrganisms()
		if err != nil {
			return nil, fmt.Errorf("reset failed in generation %d: %w", p.Generation, err)
		}
		p.Organisms = organisms
		p.stagnation.Reset(p.Generation)
		p.metrics.reset()
		return nil, nil
	}

	next, lineage, err := p.algorithm.EvolveWithLineage(p.rng, p.Organisms, p.newOrganism)
	if err != nil {
		return nil, fmt.Errorf("reproduction failed in generation %d: %w", p.Generation, err)
	}
	ancestors := make(map[int][]int, len(next))
	for i, child := range next {
		ancestors[child.Key] = []int{p.Organisms[lineage[i].ParentA].Key, p.Organisms[lineage[i].ParentB].Key}
	}
	p.Organisms = next
	p.Ancestors = ancestors

	log.Debug("generation finished", "elapsed", time.Since(start))
	return nil, nil
}

// Run calls RunGeneration until the fitness threshold is met or generations
// have been run. It returns the winner, or nil if none was found.
func (p *Population) Run(fitnessFunc FitnessFunc, generations int) (*Organism, error) {
	for i := 0; i < generations; i++ {
		winner, err := p.RunGeneration(fitnessFunc)
		if err != nil {
			return nil, err
		}
		if winner != nil {
			return winner, nil
		}
	}
	return nil, nil
}

func (p *Population) evaluate(fitnessFunc FitnessFunc) error {
	if p.Config.Evolution.EvalWorkers <= 1 {
		for _, o := range p.Organisms {
			if err := p.evaluateOne(fitnessFunc, o); err != nil {
				return err
			}
		}
		return nil
	}

	workers := pool.New().WithMaxGoroutines(p.Config.Evolution.EvalWorkers).WithErrors()
	for _, o := range p.Organisms {
		o := o
		workers.Go(func() error {
			return p.evaluateOne(fitnessFunc, o)
		})
	}
	return workers.Wait()
}

func (p *Population) evaluateOne(fitnessFunc FitnessFunc, o *Organism) error {
	f, err := fitnessFunc(o)
	if err != nil {
		return fmt.Errorf("organism %d: %w", o.Key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fmt.Errorf("%w: organism %d scored %v", ErrInvalidFitness, o.Key, f)
	}
	o.SetFitness(f)
	return nil
}

// findBestOrganism finds the organism with the highest fitness in the
// current generation; ties go to the earliest.
func (p *Population) findBestOrganism() *Organism {
	var best *Organism
	maxFitness := math.Inf(-1)
	for _, o := range p.Organisms {
		if o.Fitness() > maxFitness {
			maxFitness = o.Fitness()
			best = o
		}
	}
	return best
}
