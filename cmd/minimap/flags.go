package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/appengine-ltd/minimap/internal/config"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	classic     bool
	writeConfig bool
	configPath  string
	seed        int64
}

func parseFlags() options {
	var opts options
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.BoolVar(&opts.classic, "classic", false, "run in the terminal instead of a window")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "write the effective config to -config and exit")
	flag.StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")
	flag.Int64Var(&opts.seed, "seed", 0, "override the terrain seed")
	flag.Parse()
	return opts
}

// loadConfig resolves the config path and applies command line overrides.
// A missing default path only disables reloading.
func loadConfig(opts options) (config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, "", err
		}
		cfg = loaded
	}
	if opts.seed != 0 {
		cfg.Terrain.Seed = opts.seed
	}
	return cfg, path, nil
}

// run handles the flags shared by every build; it reports whether the
// caller should go on to start a frontend.
func run(opts options) (config.Config, string, bool, error) {
	if opts.showVersion {
		fmt.Printf("minimap %s (%s) %s\n", version, commit, date)
		return config.Config{}, "", false, nil
	}
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return config.Config{}, "", false, err
	}
	if opts.writeConfig {
		if path == "" {
			return config.Config{}, "", false, errors.New("no config path; pass -config")
		}
		if err := config.Save(path, cfg); err != nil {
			return config.Config{}, "", false, fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", path)
		return config.Config{}, "", false, nil
	}
	return cfg, path, true, nil
}
