package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Size int    `env:"DUNGEONCRAWL_TEST_SIZE" envDefault:"25"`
	Name string `env:"DUNGEONCRAWL_TEST_NAME" envDefault:"Adventurer"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Size != 25 {
		t.Fatalf("expected default size 25, got %d", cfg.Size)
	}
	if cfg.Name != "Adventurer" {
		t.Fatalf("expected default name, got %q", cfg.Name)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DUNGEONCRAWL_TEST_SIZE", "11")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Size != 11 {
		t.Fatalf("expected size 11, got %d", cfg.Size)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DUNGEONCRAWL_TEST_SIZE", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
