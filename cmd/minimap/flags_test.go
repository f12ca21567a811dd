package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesSeedOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  seed: 5\n  columns: 64\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, got, err := loadConfig(options{configPath: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != path || cfg.Terrain.Seed != 5 || cfg.Terrain.Columns != 64 {
		t.Fatalf("unexpected config from file: path=%s terrain=%+v", got, cfg.Terrain)
	}

	cfg, _, err = loadConfig(options{configPath: path, seed: 42})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Terrain.Seed != 42 {
		t.Fatalf("expected seed override, got %d", cfg.Terrain.Seed)
	}
}

func TestLoadConfigRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("minimap:\n  colour: red\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := loadConfig(options{configPath: path}); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestRunWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.yaml")
	_, _, start, err := run(options{configPath: path, writeConfig: true, seed: 7})
	if err != nil || start {
		t.Fatalf("expected write-only run, got start=%v err=%v", start, err)
	}
	cfg, _, err := loadConfig(options{configPath: path})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Terrain.Seed != 7 {
		t.Fatalf("expected written seed 7, got %d", cfg.Terrain.Seed)
	}
}
