package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Config is the top-level configuration file.
type Config struct {
	Alphabet alphabet.Pools `yaml:"alphabet"`
	Sampling Sampling       `yaml:"sampling"`
}

// Sampling controls how datasets are drawn from a corpus.
type Sampling struct {
	SampleSize    int     `yaml:"sample_size"`     // characters per sample window
	SamplesPerDoc int     `yaml:"samples_per_doc"` // windows drawn from each document
	Seed          int64   `yaml:"seed"`
	TestFraction  float64 `yaml:"test_fraction"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Alphabet: alphabet.DefaultPools(),
		Sampling: Sampling{
			SampleSize:    140,
			SamplesPerDoc: 100,
			Seed:          42,
			TestFraction:  0.2,
		},
	}
}

// fileConfig mirrors Config but lets us tell an absent alphabet section
// from an empty one. yaml.v3 merges into existing maps, so decoding straight
// over the default pools would keep languages the file never listed.
type fileConfig struct {
	Alphabet *alphabet.Pools `yaml:"alphabet"`
	Sampling Sampling        `yaml:"sampling"`
}

// Load reads a YAML config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	def := Default()
	fc := fileConfig{Sampling: def.Sampling}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := Config{Alphabet: def.Alphabet, Sampling: fc.Sampling}
	if fc.Alphabet != nil {
		cfg.Alphabet = *fc.Alphabet
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks sampling parameters.
func (c Config) Validate() error {
	s := c.Sampling
	if s.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d: %w", s.SampleSize, internalerr.ErrInvalidConfig)
	}
	if s.SamplesPerDoc <= 0 {
		return fmt.Errorf("samples_per_doc must be positive, got %d: %w", s.SamplesPerDoc, internalerr.ErrInvalidConfig)
	}
	if s.TestFraction < 0 || s.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in [0,1), got %g: %w", s.TestFraction, internalerr.ErrInvalidConfig)
	}
	return nil
}
