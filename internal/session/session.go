// Package session runs a single hot-seat game: it builds the board for a new
// game and sequences player actions through the rules engine.
package session

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"math/rand"

	"hexclave/internal/game"
	"hexclave/pkg/maps"
)

// Options configures a new game.
type Options struct {
	PlayerCount      int
	WinGoal          int
	Seed             *int64 // nil draws a fresh seed
	Map              maps.GeneratorOptions
	MinTerritorySize int

	Roller game.Roller // nil rolls from the game's seeded source
	Logger *log.Logger // nil uses log.Default()
}

// DefaultOptions returns options for a two-player game.
func DefaultOptions() Options {
	return Options{
		PlayerCount:      2,
		WinGoal:          3,
		Map:              maps.DefaultOptions(),
		MinTerritorySize: maps.DefaultSplitOptions(2).MinTerritorySize,
	}
}

// Session owns the live state of one game. It is not safe for concurrent use;
// the caller feeds it one action at a time.
type Session struct {
	state  *game.GameState
	seed   int64
	roller game.Roller
	logger *log.Logger
}

// New generates a board and starts a game on it.
func New(opts Options) (*Session, error) {
	seed, err := resolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	land := maps.GenerateLandmass(opts.Map, rng)
	cells, err := maps.SplitTerritory(maps.GenerateCells(land), maps.SplitOptions{
		PlayerCount:      opts.PlayerCount,
		MinTerritorySize: opts.MinTerritorySize,
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to split territory (seed %d): %w", seed, err)
	}

	state, err := game.NewGame(cells, opts.PlayerCount, opts.WinGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	roller := opts.Roller
	if roller == nil {
		roller = game.NewRandRoller(rng)
	}

	s := &Session{
		state:  state,
		seed:   seed,
		roller: roller,
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.logger.Printf("game %s: %d players, %d land hexes, seed %d, win goal %d",
		state.ID, opts.PlayerCount, len(cells), seed, opts.WinGoal)
	return s, nil
}

// FromBoard starts a game on a preset board instead of a generated one.
func FromBoard(b *maps.Board, winGoal int, roller game.Roller, logger *log.Logger) (*Session, error) {
	state, err := game.NewGame(b.Cells, b.Players, winGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to start game on board %s: %w", b.ID, err)
	}
	s := Resume(state, roller, logger)
	if s.roller == nil {
		seed, err := resolveSeed(nil)
		if err != nil {
			return nil, err
		}
		s.seed = seed
		s.roller = game.NewRandRoller(rand.New(rand.NewSource(seed)))
	}
	s.logger.Printf("game %s: board %s, %d players, win goal %d", state.ID, b.ID, b.Players, winGoal)
	return s, nil
}

// Resume wraps an existing state, e.g. a hand-built scenario.
func Resume(state *game.GameState, roller game.Roller, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{state: state, roller: roller, logger: logger}
}

// resolveSeed returns the requested seed or a fresh one from crypto/rand.
func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// State returns the current state. Callers must treat it as read-only.
func (s *Session) State() *game.GameState {
	return s.state
}

// Seed returns the seed the board was generated from.
func (s *Session) Seed() int64 {
	return s.seed
}
