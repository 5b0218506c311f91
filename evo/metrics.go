package evo

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports per-generation progress of a Population.
type Metrics struct {
	Generations   prometheus.Counter
	Resets        prometheus.Counter
	BestFitness   prometheus.Gauge
	MeanFitness   prometheus.Gauge
	FitnessStdDev prometheus.Gauge
	Stagnation    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations evaluated.",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Populations re-seeded after stagnating.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Best fitness of the last evaluated generation.",
		}),
		MeanFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_fitness",
			Help:      "Mean fitness of the last evaluated generation.",
		}),
		FitnessStdDev: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fitness_stddev",
			Help:      "Sample standard deviation of fitness in the last evaluated generation.",
		}),
		Stagnation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stagnation_generations",
			Help:      "Generations since the fitness criterion last improved.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Generations, m.Resets, m.BestFitness, m.MeanFitness, m.FitnessStdDev, m.Stagnation} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(s Stats, stagnant int) {
	if m == nil {
		return
	}
	m.Generations.Inc()
	m.BestFitness.Set(s.Best)
	m.MeanFitness.Set(s.Mean)
	m.FitnessStdDev.Set(s.StdDev)
	m.Stagnation.Set(float64(stagnant))
}

func (m *Metrics) reset() {
	if m == nil {
		return
	}
	m.Resets.Inc()
}
