package evo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testINI = `
[Evolution]
pop_size               = 20
seed                   = 7
fitness_criterion      = Mean   ; case-insensitive
fitness_threshold      = 3.5
no_fitness_termination = true
max_stagnation         = 5
reset_on_stagnation    = true
eval_workers           = 3

[Network]
topology          = 3, 5, 2
activation        = tanh
output_activation = sigmoid

[Reproduction]
mutation           = gaussian
mutation_chance    = 0.2
mutation_magnitude = 0.4
elitism            = 2
`

const testYAML = `
evolution:
  pop_size: 12
  seed: 99
  fitness_threshold: 1.5
network:
  topology: [2, 3, 1]
reproduction:
  mutation_chance: 0.05
`

func TestParseConfigINI(t *testing.T) {
	config, err := ParseConfig([]byte(testINI), FormatINI)
	require.NoError(t, err)

	assert.Equal(t, 20, config.Evolution.PopSize)
	assert.Equal(t, uint64(7), config.Evolution.Seed)
	assert.Equal(t, "mean", config.Evolution.FitnessCriterion)
	assert.Equal(t, 3.5, config.Evolution.FitnessThreshold)
	assert.True(t, config.Evolution.NoFitnessTermination)
	assert.Equal(t, 5, config.Evolution.MaxStagnation)
	assert.True(t, config.Evolution.ResetOnStagnation)
	assert.Equal(t, 3, config.Evolution.EvalWorkers)

	assert.Equal(t, []int{3, 5, 2}, config.Network.Topology)
	assert.Equal(t, "tanh", config.Network.Activation)
	assert.Equal(t, "sigmoid", config.Network.OutputActivation)

	// Omitted keys keep their defaults.
	assert.Equal(t, "roulette", config.Reproduction.Selection)
	assert.Equal(t, "uniform", config.Reproduction.Crossover)
	assert.Equal(t, "gaussian", config.Reproduction.Mutation)
	assert.Equal(t, 0.2, config.Reproduction.MutationChance)
	assert.Equal(t, 0.4, config.Reproduction.MutationMagnitude)
	assert.Equal(t, 2, config.Reproduction.Elitism)
}

func TestParseConfigYAML(t *testing.T) {
	config, err := ParseConfig([]byte(testYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 12, config.Evolution.PopSize)
	assert.Equal(t, uint64(99), config.Evolution.Seed)
	assert.Equal(t, "max", config.Evolution.FitnessCriterion)
	assert.Equal(t, []int{2, 3, 1}, config.Network.Topology)
	assert.Equal(t, "relu", config.Network.Activation)
	assert.Equal(t, 0.05, config.Reproduction.MutationChance)
	assert.Equal(t, DefaultMutationMagnitude, config.Reproduction.MutationMagnitude)

	_, err = ParseConfig([]byte("network:\n  topology: [2, 1]\n  layers: 3\n"), FormatYAML)
	assert.Error(t, err, "unknown fields are rejected")
}

func TestParseConfigInvalid(t *testing.T) {
	base := "[Network]\ntopology = 2, 1\n"
	tests := []struct {
		name string
		ini  string
	}{
		{name: "missing topology", ini: "[Evolution]\npop_size = 5\n"},
		{name: "short topology", ini: "[Network]\ntopology = 2\n"},
		{name: "zero pop", ini: base + "[Evolution]\npop_size = 0\n"},
		{name: "criterion", ini: base + "[Evolution]\nfitness_criterion = median\n"},
		{name: "activation", ini: "[Network]\ntopology = 2, 1\nactivation = softmax\n"},
		{name: "selection", ini: base + "[Reproduction]\nselection = tournament\n"},
		{name: "crossover", ini: base + "[Reproduction]\ncrossover = one_point\n"},
		{name: "mutation", ini: base + "[Reproduction]\nmutation = cauchy\n"},
		{name: "chance", ini: base + "[Reproduction]\nmutation_chance = 1.5\n"},
		{name: "magnitude", ini: base + "[Reproduction]\nmutation_magnitude = -1\n"},
		{name: "elitism", ini: base + "[Evolution]\npop_size = 4\n[Reproduction]\nelitism = 5\n"},
		{name: "workers", ini: base + "[Evolution]\neval_workers = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.ini), FormatINI)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseConfig([]byte(base), Format("toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	iniPath := filepath.Join(dir, "run.ini")
	require.NoError(t, os.WriteFile(iniPath, []byte(testINI), 0o600))
	config, err := LoadConfig(iniPath)
	require.NoError(t, err)
	assert.Equal(t, 20, config.Evolution.PopSize)

	yamlPath := filepath.Join(dir, "run.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(testYAML), 0o600))
	config, err = LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 12, config.Evolution.PopSize)

	_, err = LoadConfig(filepath.Join(dir, "missing.ini"))
	assert.Error(t, err)
}

func TestReproductionOptions(t *testing.T) {
	config := DefaultConfig()
	config.Network.Topology = []int{2, 1}
	require.NoError(t, config.Validate())

	opts, err := config.Reproduction.Options()
	require.NoError(t, err)
	ga, err := New[*testIndividual](opts...)
	require.NoError(t, err)
	assert.Equal(t, RouletteWheelSelection{}, ga.selection)
	assert.Equal(t, UniformCrossover{}, ga.crossover)
	assert.Equal(t, PerturbMutation{Distribution: Uniform}, ga.mutation)
}
