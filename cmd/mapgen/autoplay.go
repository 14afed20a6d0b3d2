package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"hexclave/internal/game"
	"hexclave/internal/session"
	"hexclave/pkg/maps"
)

const (
	maxAutoplayRounds = 50
	actionOdds        = 0.8
)

// option is an attack, or a move when move is set.
type option struct {
	move     bool
	from, to int
}

// autoplay runs a game on a generated board, or on the named preset board
// when preset is set.
func autoplay(opts session.Options, preset string, maxRounds int) error {
	var s *session.Session
	var err error
	if preset != "" {
		if err := maps.LoadAll(); err != nil {
			return err
		}
		b := maps.Get(preset)
		if b == nil {
			return fmt.Errorf("unknown board %q", preset)
		}
		s, err = session.FromBoard(b, opts.WinGoal, nil, opts.Logger)
	} else {
		s, err = session.New(opts)
	}
	if err != nil {
		return err
	}

	_, err = playRandom(os.Stdout, s, rand.New(rand.NewSource(s.Seed())), maxRounds)
	return err
}

// playRandom has every seat pick uniformly among its legal attacks and moves, stopping
// at a winner or after maxRounds rounds.
func playRandom(w io.Writer, s *session.Session, rng *rand.Rand, maxRounds int) (*game.GameState, error) {
	for !s.State().IsGameOver() && s.State().Round <= maxRounds {
		if err := step(s, rng); err != nil {
			return s.State(), err
		}
	}

	g := s.State()
	fmt.Fprintf(w, "Final board after %d round(s)\n%s\n", g.Round, maps.Render(g.Cells))
	for _, p := range g.Summarize() {
		fmt.Fprintf(w, "%s: %d hexes, %d units, %d exclave(s)\n", p.Player, p.Territories, p.Units, p.Score)
	}
	if winner, ok := g.GetWinner(); ok {
		fmt.Fprintf(w, "%s wins\n", winner)
	}
	return g, nil
}

// step performs one action for the current player.
func step(s *session.Session, rng *rand.Rand) error {
	g := s.State()

	if g.Phase == game.PhaseReinforce {
		targets := g.ValidReinforcementTargets()
		if len(targets) == 0 {
			return s.EndTurn()
		}
		return s.Reinforce(targets[rng.Intn(len(targets))])
	}

	var options []option
	if g.ActionsLeft > 0 {
		for _, c := range g.Cells {
			if c.Owner != g.Current {
				continue
			}
			for _, to := range g.ValidAttackTargets(c.ID) {
				options = append(options, option{from: c.ID, to: to})
			}
			for _, to := range g.ValidMoveTargets(c.ID) {
				options = append(options, option{move: true, from: c.ID, to: to})
			}
		}
	}
	if len(options) == 0 || rng.Float64() >= actionOdds {
		return s.EndTurn()
	}

	o := options[rng.Intn(len(options))]
	if o.move {
		return s.Move(o.from, o.to, 1+rng.Intn(game.MaxUnits))
	}
	roll, err := s.Attack(o.from, o.to)
	if err != nil {
		return err
	}
	if roll != nil {
		return s.ApplyPendingCombat()
	}
	return nil
}
