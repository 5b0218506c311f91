package evo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the fitness of one evaluated generation.
type Stats struct {
	Generation int
	Best       float64
	Worst      float64
	Mean       float64
	StdDev     float64
	Median     float64
}

// ComputeStats summarises fitnesses for the given generation.
func ComputeStats(generation int, fitnesses []float64) Stats {
	return Stats{
		Generation: generation,
		Best:       MaxFloat(fitnesses),
		Worst:      MinFloat(fitnesses),
		Mean:       Mean(fitnesses),
		StdDev:     Stdev(fitnesses),
		Median:     Median(fitnesses),
	}
}

// Mean calculates the average of values, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}

// Stdev is the sample standard deviation, 0 for fewer than two values.
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	return stat.StdDev(values, nil)
}

// Sum calculates the sum of values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// MaxFloat returns the largest value, or -Inf when empty.
func MaxFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(values)
}

// MinFloat returns the smallest value, or +Inf when empty.
func MinFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(1)
	}
	return floats.Min(values)
}

// Median returns the middle value, averaging the two middle values for even
// lengths. Returns NaN if values is empty.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

// StatFunctions maps function names to the statistical functions a fitness
// criterion can use.
var StatFunctions = map[string]func([]float64) float64{
	"mean":   Mean,
	"stdev":  Stdev,
	"sum":    Sum,
	"max":    MaxFloat,
	"min":    MinFloat,
	"median": Median,
}
