package evo

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neuroevo-go/evo/nn"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("config error")

// Format is a configuration file syntax.
type Format string

const (
	FormatINI  Format = "ini"
	FormatYAML Format = "yaml"
)

// Config stores the configuration parameters for an evolutionary run.
type Config struct {
	Evolution    EvolutionConfig    `yaml:"evolution"`
	Network      NetworkConfig      `yaml:"network"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
}

// EvolutionConfig holds parameters of the generation loop itself.
type EvolutionConfig struct {
	PopSize              int     `ini:"pop_size" yaml:"pop_size"`
	Seed                 uint64  `ini:"seed" yaml:"seed"`
	FitnessCriterion     string  `ini:"fitness_criterion" yaml:"fitness_criterion"` // "max", "min" or "mean"
	FitnessThreshold     float64 `ini:"fitness_threshold" yaml:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination" yaml:"no_fitness_termination"`
	MaxStagnation        int     `ini:"max_stagnation" yaml:"max_stagnation"`
	ResetOnStagnation    bool    `ini:"reset_on_stagnation" yaml:"reset_on_stagnation"`
	EvalWorkers          int     `ini:"eval_workers" yaml:"eval_workers"` // 0 or 1 evaluates sequentially
}

// NetworkConfig describes the shape of every network in the population.
type NetworkConfig struct {
	Topology         []int  `ini:"topology" delim:"," yaml:"topology"`
	Activation       string `ini:"activation" yaml:"activation"`
	OutputActivation string `ini:"output_activation" yaml:"output_activation"`
}

// ReproductionConfig selects the breeding strategies and their parameters.
type ReproductionConfig struct {
	Selection         string  `ini:"selection" yaml:"selection"`
	Crossover         string  `ini:"crossover" yaml:"crossover"`
	Mutation          string  `ini:"mutation" yaml:"mutation"`
	MutationChance    float64 `ini:"mutation_chance" yaml:"mutation_chance"`
	MutationMagnitude float64 `ini:"mutation_magnitude" yaml:"mutation_magnitude"`
	Elitism           int     `ini:"elitism" yaml:"elitism"`
}

// DefaultConfig returns the values used for any key a config file omits.
func DefaultConfig() *Config {
	return &Config{
		Evolution: EvolutionConfig{
			PopSize:          50,
			Seed:             1,
			FitnessCriterion: "max",
			MaxStagnation:    15,
			EvalWorkers:      1,
		},
		Network: NetworkConfig{
			Activation:       nn.DefaultActivation,
			OutputActivation: nn.DefaultActivation,
		},
		Reproduction: ReproductionConfig{
			Selection:         "roulette",
			Crossover:         "uniform",
			Mutation:          string(Uniform),
			MutationChance:    DefaultMutationChance,
			MutationMagnitude: DefaultMutationMagnitude,
		},
	}
}

// LoadConfig loads and validates a configuration file. Files ending in .yaml
// or .yml are parsed as YAML, anything else as INI.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	format := FormatINI
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	config, err := ParseConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("config file '%s': %w", filePath, err)
	}
	return config, nil
}

// ParseConfig parses and validates configuration data in the given format.
func ParseConfig(data []byte, format Format) (*Config, error) {
	config := DefaultConfig()

	switch format {
	case FormatINI:
		if err := mapINI(data, config); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format '%s'", ErrInvalidConfig, format)
	}

	config.Evolution.FitnessCriterion = strings.ToLower(cleanIniString(config.Evolution.FitnessCriterion))
	config.Network.Activation = cleanIniString(config.Network.Activation)
	config.Network.OutputActivation = cleanIniString(config.Network.OutputActivation)
	config.Reproduction.Selection = cleanIniString(config.Reproduction.Selection)
	config.Reproduction.Crossover = cleanIniString(config.Reproduction.Crossover)
	config.Reproduction.Mutation = cleanIniString(config.Reproduction.Mutation)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func mapINI(data []byte, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return fmt.Errorf("failed to parse ini: %w", err)
	}

	if err := cfg.Section("Evolution").MapTo(&config.Evolution); err != nil {
		return fmt.Errorf("failed to map [Evolution] section: %w", err)
	}
	if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
		return fmt.Errorf("failed to map [Network] section: %w", err)
	}
	if err := cfg.Section("Reproduction").MapTo(&config.Reproduction); err != nil {
		return fmt.Errorf("failed to map [Reproduction] section: %w", err)
	}
	return nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	ev := c.Evolution
	if ev.PopSize <= 0 {
		return fmt.Errorf("%w: pop_size must be positive", ErrInvalidConfig)
	}
	switch ev.FitnessCriterion {
	case "max", "min", "mean":
	default:
		return fmt.Errorf("%w: invalid fitness_criterion '%s', must be one of 'max', 'min', 'mean'", ErrInvalidConfig, ev.FitnessCriterion)
	}
	if math.IsNaN(ev.FitnessThreshold) {
		return fmt.Errorf("%w: fitness_threshold is NaN", ErrInvalidConfig)
	}
	if ev.MaxStagnation < 0 {
		return fmt.Errorf("%w: max_stagnation cannot be negative", ErrInvalidConfig)
	}
	if ev.EvalWorkers < 0 {
		return fmt.Errorf("%w: eval_workers cannot be negative", ErrInvalidConfig)
	}

	if err := nn.Topology(c.Network.Topology).Validate(); err != nil {
		return fmt.Errorf("%w: topology: %w", ErrInvalidConfig, err)
	}
	if _, err := nn.GetActivation(c.Network.Activation); err != nil {
		return fmt.Errorf("%w: activation: %w", ErrInvalidConfig, err)
	}
	if _, err := nn.GetActivation(c.Network.OutputActivation); err != nil {
		return fmt.Errorf("%w: output_activation: %w", ErrInvalidConfig, err)
	}

	if c.Reproduction.Elitism < 0 || c.Reproduction.Elitism > ev.PopSize {
		return fmt.Errorf("%w: elitism must be between 0 and pop_size", ErrInvalidConfig)
	}
	if _, err := c.Reproduction.Options(); err != nil {
		return err
	}
	return nil
}

// Options resolves strategy names into GeneticAlgorithm options.
func (rc *ReproductionConfig) Options() ([]Option, error) {
	var selection SelectionMethod
	switch rc.Selection {
	case "roulette", "roulette_wheel":
		selection = RouletteWheelSelection{}
	default:
		return nil, fmt.Errorf("%w: unknown selection '%s'", ErrInvalidConfig, rc.Selection)
	}

	var crossover CrossoverMethod
	switch rc.Crossover {
	case "uniform":
		crossover = UniformCrossover{}
	default:
		return nil, fmt.Errorf("%w: unknown crossover '%s'", ErrInvalidConfig, rc.Crossover)
	}

	dist, err := ParseDistribution(rc.Mutation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if math.IsNaN(rc.MutationChance) || rc.MutationChance < 0 || rc.MutationChance > 1 {
		return nil, fmt.Errorf("%w: mutation_chance must be between 0 and 1", ErrInvalidConfig)
	}
	if math.IsNaN(rc.MutationMagnitude) || math.IsInf(rc.MutationMagnitude, 0) || rc.MutationMagnitude < 0 {
		return nil, fmt.Errorf("%w: mutation_magnitude must be finite and non-negative", ErrInvalidConfig)
	}

	return []Option{
		WithSelection(selection),
		WithCrossover(crossover),
		WithMutation(PerturbMutation{Distribution: dist}, rc.MutationChance, rc.MutationMagnitude),
		WithElitism(rc.Elitism),
	}, nil
}

// NetworkOptions returns the nn options matching the configured activations.
func (nc *NetworkConfig) NetworkOptions() []nn.Option {
	return []nn.Option{nn.WithActivation(nc.Activation), nn.WithOutputActivation(nc.OutputActivation)}
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
