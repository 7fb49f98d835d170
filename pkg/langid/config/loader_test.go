package config

import (
	"errors"
	"testing"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

func TestLoaderEmptyPathUsesDefaults(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if comp.Alphabet == nil {
		t.Fatal("Should have alphabet")
	}
	if comp.Config.Sampling != Default().Sampling {
		t.Errorf("Expected default sampling, got %+v", comp.Config.Sampling)
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/langid.yaml"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoaderCustomAlphabet(t *testing.T) {
	path := writeConfig(t, `alphabet:
  base: ab
  punctuation: " "
`)
	comp, err := (&Loader{ConfigPath: path}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := comp.Alphabet.Display(); got != "ab AB" {
		t.Errorf("Display = %q, want %q", got, "ab AB")
	}
}

func TestLoaderRejectsCollidingPunctuation(t *testing.T) {
	path := writeConfig(t, `alphabet:
  base: ab
  punctuation: "a"
`)
	_, err := (&Loader{ConfigPath: path}).Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
