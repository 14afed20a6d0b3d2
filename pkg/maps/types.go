// Package maps handles procedural board generation: the landmass itself and
// its division into one territory per player.
package maps

import "errors"

// ErrInsufficientLand is returned when the landmass is too small to give
// every player a territory. An invalid player count is game.ErrInvalidPlayers.
var ErrInsufficientLand = errors.New("insufficient land for territories")

// GeneratorOptions contains settings for landmass generation.
type GeneratorOptions struct {
	Width           int     // columns (axial q)
	Height          int     // rows (axial r)
	LandRatio       float64 // share of the bounds to cover with blobs, 0-1
	SmoothingPasses int     // cellular-automaton passes, at most 2 are run
}

// SplitOptions contains settings for territory splitting.
type SplitOptions struct {
	PlayerCount      int
	MinTerritorySize int
}

// DefaultOptions returns default generator options.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Width:           14,
		Height:          12,
		LandRatio:       0.55,
		SmoothingPasses: 2,
	}
}

// DefaultSplitOptions returns default split options for n players.
func DefaultSplitOptions(n int) SplitOptions {
	return SplitOptions{
		PlayerCount:      n,
		MinTerritorySize: 8,
	}
}
