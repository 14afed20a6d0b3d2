package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"hexclave/internal/config"
	"hexclave/internal/database"
	"hexclave/internal/game"
	"hexclave/pkg/maps"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	runs := flag.Int("runs", 20, "Number of boards to generate")
	seedBase := flag.Int64("seed-base", 1, "Seed of the first board")
	players := flag.Int("players", 0, "Player count (overrides config)")
	dbPath := flag.String("db", "", "Statistics database path (overrides config)")
	show := flag.Bool("show", false, "Print every board")
	summary := flag.Bool("summary", false, "Print stored statistics and exit")
	play := flag.Bool("play", false, "Play a random game on the first board")
	preset := flag.String("preset", "", "Play on this preset board instead (with -play)")
	export := flag.String("export", "", "Write the first board as JSON to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *players != 0 {
		cfg.Game.Players = *players
	}
	if *dbPath != "" {
		cfg.Stats.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	db, err := database.New(cfg.Stats.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *summary {
		if err := printSummary(db); err != nil {
			log.Fatalf("Failed to read summary: %v", err)
		}
		return
	}

	if cfg.Game.Seed != nil {
		*seedBase = *cfg.Game.Seed
	}

	failures := 0
	exported := false
	for i := 0; i < *runs; i++ {
		seed := *seedBase + int64(i)
		run, cells, err := generate(cfg, seed)
		if err != nil && !errors.Is(err, maps.ErrInsufficientLand) {
			log.Fatalf("Seed %d: %v", seed, err)
		}
		if run.Failed() {
			failures++
			log.Printf("Seed %d: %s", seed, run.Error)
		} else {
			if *show {
				fmt.Printf("Seed %d\n%s\n", seed, maps.Debug(cells, cfg.Game.Players))
			}
			if *export != "" && !exported {
				if err := exportBoard(*export, seed, cells); err != nil {
					log.Fatalf("Failed to export board: %v", err)
				}
				exported = true
				log.Printf("Board for seed %d written to %s", seed, *export)
			}
		}

		if err := db.RecordRun(run); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
	}
	log.Printf("Generated %d boards (%d failed), stats in %s", *runs, failures, cfg.Stats.DBPath)

	if *play {
		opts := cfg.SessionOptions()
		opts.Seed = seedBase
		if err := autoplay(opts, *preset, maxAutoplayRounds); err != nil {
			log.Fatalf("Autoplay failed: %v", err)
		}
	}
}

// generate builds one board from seed and describes it as a run. A board
// that cannot be split is still returned as a failed run alongside the error.
func generate(cfg *config.Config, seed int64) (*database.Run, []game.Cell, error) {
	run := &database.Run{
		Seed:      seed,
		Players:   cfg.Game.Players,
		Width:     cfg.Map.Width,
		Height:    cfg.Map.Height,
		LandRatio: cfg.Map.LandRatio,
	}

	rng := rand.New(rand.NewSource(seed))
	land := maps.GenerateLandmass(cfg.GeneratorOptions(), rng)
	cells, err := maps.SplitTerritory(maps.GenerateCells(land), cfg.SplitOptions(), rng)
	if err != nil {
		run.Error = err.Error()
		run.Stats.LandHexes = len(land)
		return run, nil, err
	}

	run.Stats = maps.Analyze(cells, cfg.Game.Players)
	return run, cells, nil
}

// exportBoard writes cells in the preset board format.
func exportBoard(path string, seed int64, cells []game.Cell) error {
	data, err := maps.EncodeBoard(fmt.Sprintf("seed-%d", seed), fmt.Sprintf("Seed %d", seed), cells)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(db *database.DB) error {
	summary, err := db.Summary()
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}
	for _, s := range summary {
		fmt.Printf("%d players: %d runs, %d failed, avg %.1f land hexes, avg imbalance %.1f, worst %d\n",
			s.Players, s.Runs, s.Failures, s.AvgLandHexes, s.AvgImbalance, s.WorstImbalance)
	}
	return nil
}
