package evo

import "math"

// Stagnation tracks how long a population has gone without improving its
// fitness criterion.
type Stagnation struct {
	MaxStagnation int

	bestValue    float64
	lastImproved int
	history      []float64
}

// NewStagnation creates a stagnation tracker that reports stagnation after
// maxStagnation generations without improvement.
func NewStagnation(maxStagnation int) *Stagnation {
	return &Stagnation{
		MaxStagnation: maxStagnation,
		bestValue:     math.Inf(-1),
	}
}

// Update records the criterion value of a generation and returns the number
// of generations since the value last improved.
func (s *Stagnation) Update(value float64, generation int) int {
	s.history = append(s.history, value)
	if value > s.bestValue {
		s.bestValue = value
		s.lastImproved = generation
	}
	return generation - s.lastImproved
}

// IsStagnant reports whether generation is at least MaxStagnation
// generations past the last improvement.
func (s *Stagnation) IsStagnant(generation int) bool {
	return s.MaxStagnation > 0 && generation-s.lastImproved >= s.MaxStagnation
}

// Reset forgets previous improvements, as after the population is re-seeded.
func (s *Stagnation) Reset(generation int) {
	s.bestValue = math.Inf(-1)
	s.lastImproved = generation
}

// History returns the criterion value recorded for each generation.
func (s *Stagnation) History() []float64 {
	return s.history
}
