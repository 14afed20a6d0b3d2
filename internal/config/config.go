// Package config loads board generation and game settings from a YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"hexclave/internal/session"
	"hexclave/pkg/maps"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings.
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Map   MapConfig   `yaml:"map"`
	Split SplitConfig `yaml:"split"`
	Stats StatsConfig `yaml:"stats"`
}

// GameConfig holds table settings.
type GameConfig struct {
	Players int    `yaml:"players" env:"HEXCLAVE_PLAYERS"`
	WinGoal int    `yaml:"win_goal" env:"HEXCLAVE_WIN_GOAL"`
	Seed    *int64 `yaml:"seed" env:"HEXCLAVE_SEED"` // unset draws a fresh seed
}

// MapConfig holds landmass generation settings.
type MapConfig struct {
	Width           int     `yaml:"width" env:"HEXCLAVE_MAP_WIDTH"`
	Height          int     `yaml:"height" env:"HEXCLAVE_MAP_HEIGHT"`
	LandRatio       float64 `yaml:"land_ratio" env:"HEXCLAVE_LAND_RATIO"`
	SmoothingPasses int     `yaml:"smoothing_passes" env:"HEXCLAVE_SMOOTHING_PASSES"`
}

// SplitConfig holds territory split settings.
type SplitConfig struct {
	MinTerritorySize int `yaml:"min_territory_size" env:"HEXCLAVE_MIN_TERRITORY"`
}

// StatsConfig holds the generation statistics store location.
type StatsConfig struct {
	DBPath string `yaml:"db_path" env:"HEXCLAVE_DB_PATH"`
}

// Default returns the built-in settings.
func Default() *Config {
	m := maps.DefaultOptions()
	return &Config{
		Game: GameConfig{
			Players: 2,
			WinGoal: 3,
		},
		Map: MapConfig{
			Width:           m.Width,
			Height:          m.Height,
			LandRatio:       m.LandRatio,
			SmoothingPasses: m.SmoothingPasses,
		},
		Split: SplitConfig{
			MinTerritorySize: maps.DefaultSplitOptions(2).MinTerritorySize,
		},
		Stats: StatsConfig{
			DBPath: "data/mapgen.db",
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults, then
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings can produce a game.
func (c *Config) Validate() error {
	switch {
	case c.Game.Players < 2 || c.Game.Players > 3:
		return fmt.Errorf("%w: players must be 2 or 3, got %d", ErrInvalid, c.Game.Players)
	case c.Game.WinGoal < 1:
		return fmt.Errorf("%w: win goal must be at least 1, got %d", ErrInvalid, c.Game.WinGoal)
	case c.Map.Width < 1 || c.Map.Height < 1:
		return fmt.Errorf("%w: map must be at least 1x1, got %dx%d", ErrInvalid, c.Map.Width, c.Map.Height)
	case c.Map.LandRatio <= 0 || c.Map.LandRatio > 1:
		return fmt.Errorf("%w: land ratio must be in (0, 1], got %g", ErrInvalid, c.Map.LandRatio)
	case c.Map.SmoothingPasses < 0:
		return fmt.Errorf("%w: smoothing passes must not be negative", ErrInvalid)
	case c.Split.MinTerritorySize < 1:
		return fmt.Errorf("%w: min territory size must be at least 1", ErrInvalid)
	}
	return nil
}

// GeneratorOptions converts the map settings for the landmass generator.
func (c *Config) GeneratorOptions() maps.GeneratorOptions {
	return maps.GeneratorOptions{
		Width:           c.Map.Width,
		Height:          c.Map.Height,
		LandRatio:       c.Map.LandRatio,
		SmoothingPasses: c.Map.SmoothingPasses,
	}
}

// SplitOptions converts the split settings for the configured table.
func (c *Config) SplitOptions() maps.SplitOptions {
	return maps.SplitOptions{
		PlayerCount:      c.Game.Players,
		MinTerritorySize: c.Split.MinTerritorySize,
	}
}

// SessionOptions converts the settings into options for a new game.
func (c *Config) SessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.PlayerCount = c.Game.Players
	opts.WinGoal = c.Game.WinGoal
	opts.Seed = c.Game.Seed
	opts.Map = c.GeneratorOptions()
	opts.MinTerritorySize = c.Split.MinTerritorySize
	return opts
}
