package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/seawar/internal/config"
	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/games/seawar"
	"github.com/vovakirdan/seawar/internal/storage"
)

// loadConfig reads --config, applies --difficulty and hands the result to
// the game package.
func loadConfig() (config.SeaWarConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SeaWarConfig{}, err
	}

	cfg, err := config.LoadSeaWar(flagConfig)
	if err != nil {
		return config.SeaWarConfig{}, err
	}
	config.ApplySeaWarPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.SeaWarConfig{}, fmt.Errorf("difficulty %s: %w", preset, err)
	}

	seawar.UseConfig(cfg)
	return cfg, nil
}

// terminalConfig sizes the runtime config to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagTPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens --db. A failure is reported and play continues without
// the patrol log.
func openStore() storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
