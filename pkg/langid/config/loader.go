package config

import (
	"fmt"

	"github.com/cognicore/langid/pkg/langid/alphabet"
)

// Loader loads the configuration file and constructs components
type Loader struct {
	ConfigPath string
}

// Components holds all loaded configuration components
type Components struct {
	Config   Config
	Alphabet *alphabet.Alphabet
}

// Load reads the config file (or uses defaults when no path is set) and
// builds the alphabet once for the whole run.
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = *loaded
	}

	alpha, err := alphabet.New(cfg.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("build alphabet: %w", err)
	}

	return &Components{Config: cfg, Alphabet: alpha}, nil
}
