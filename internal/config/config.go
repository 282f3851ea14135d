package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InvalidErr marks a configuration value outside its allowed range.
var InvalidErr = errors.New("invalid configuration")

const (
	DefaultTestFraction = 0.2
	DefaultSeed         = 44111342

	// TrackerEnv overrides the tracking service address, so that the
	// composed deployment can point the pipeline at its tracker container.
	TrackerEnv = "TRACKING_URL"
)

// Config carries the full pipeline configuration.
type Config struct {
	Data     Data     `yaml:"data"`
	Tracking Tracking `yaml:"tracking"`
	Artifact Artifact `yaml:"artifact"`
}

// Data configures the processor split.
// TestFraction is the fraction of rows held out for evaluation.
// Seed fixes the split permutation and the model training randomness.
type Data struct {
	TestFraction float64 `yaml:"test_fraction"`
	Seed         int64   `yaml:"random_seed"`
}

type Tracking struct {
	URL        string `yaml:"url"`
	Experiment string `yaml:"experiment"`
}

type Artifact struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// New returns the documented defaults.
func New() Config {
	return Config{
		Data: Data{
			TestFraction: DefaultTestFraction,
			Seed:         DefaultSeed,
		},
		Tracking: Tracking{
			Experiment: "iris-pipeline",
		},
		Artifact: Artifact{
			Name: "iris",
		},
	}
}

// Load reads the config file, if any, on top of the defaults and applies
// the environment override for the tracker address.
func Load(path string) (Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("could not read config '%s': %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("could not parse config '%s': %v: %w", path, err, InvalidErr)
		}
	}

	if url := os.Getenv(TrackerEnv); url != "" {
		cfg.Tracking.URL = url
	}

	if err := cfg.Check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Check validates the loaded values.
func (c Config) Check() error {
	if c.Data.TestFraction <= 0 || c.Data.TestFraction >= 1 {
		return fmt.Errorf("test fraction %v outside (0,1): %w", c.Data.TestFraction, InvalidErr)
	}
	if c.Artifact.Name == "" {
		return fmt.Errorf("artifact name is empty: %w", InvalidErr)
	}
	return nil
}
