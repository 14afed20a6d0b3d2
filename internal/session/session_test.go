package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"testing"

	"hexclave/internal/game"
	"hexclave/pkg/hex"
	"hexclave/pkg/maps"
)

var quiet = log.New(io.Discard, "", 0)

func seeded(seed int64, players, goal int, roller game.Roller) Options {
	opts := DefaultOptions()
	opts.PlayerCount = players
	opts.WinGoal = goal
	opts.Seed = &seed
	opts.Roller = roller
	opts.Logger = quiet
	return opts
}

// stripGame builds a two-row board: row 0 for player 1, row 1 for player 2.
func stripGame(t *testing.T, goal int) *game.GameState {
	t.Helper()
	cells := make([]game.Cell, 0, 8)
	for i := 0; i < 8; i++ {
		owner := game.Player1
		if i >= 4 {
			owner = game.Player2
		}
		cells = append(cells, game.Cell{ID: i, Q: i % 4, R: i / 4, Owner: owner, Units: 3, Land: true})
	}
	g, err := game.NewGame(cells, 2, goal)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// newSession starts a game, skipping the test if the seed's landmass is too
// small to split.
func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(opts)
	if errors.Is(err, maps.ErrInsufficientLand) {
		t.Skipf("seed %d: %v", *opts.Seed, err)
	}
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_Deterministic(t *testing.T) {
	a := newSession(t, seeded(42, 3, 3, nil))
	b := newSession(t, seeded(42, 3, 3, nil))

	if a.Seed() != 42 {
		t.Errorf("Expected seed 42, got %d", a.Seed())
	}
	ca, cb := a.State().Cells, b.State().Cells
	if len(ca) != len(cb) {
		t.Fatalf("Expected same board size, got %d and %d", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("Expected identical boards, cell %d differs", i)
		}
	}
	if a.State().ID == b.State().ID {
		t.Error("Expected distinct game IDs")
	}
}

func TestNew_OpeningState(t *testing.T) {
	g := newSession(t, seeded(7, 2, 5, nil)).State()
	if g.Current != game.Player1 || g.Phase != game.PhaseReinforce || g.Round != 1 {
		t.Errorf("Unexpected opening: %v %v round %d", g.Current, g.Phase, g.Round)
	}
	if g.WinGoal != 5 || len(g.Players) != 2 {
		t.Errorf("Expected 2 players and goal 5, got %d and %d", len(g.Players), g.WinGoal)
	}
	for _, p := range g.Players {
		if g.Scores[p] != 0 {
			t.Errorf("Expected contiguous territories to score 0, %v has %d", p, g.Scores[p])
		}
	}
}

func TestNew_RandomSeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = quiet
	if _, err := New(opts); err != nil && !errors.Is(err, maps.ErrInsufficientLand) {
		t.Fatalf("New: %v", err)
	}
}

func TestNew_Failures(t *testing.T) {
	opts := seeded(1, 2, 3, nil)
	opts.Map = maps.GeneratorOptions{Width: 2, Height: 2, LandRatio: 1, SmoothingPasses: 0}
	if _, err := New(opts); !errors.Is(err, maps.ErrInsufficientLand) {
		t.Errorf("Expected ErrInsufficientLand, got %v", err)
	}

	opts = seeded(1, 4, 3, nil)
	if _, err := New(opts); !errors.Is(err, game.ErrInvalidPlayers) {
		t.Errorf("Expected ErrInvalidPlayers, got %v", err)
	}
}

func TestSession_ActionErrors(t *testing.T) {
	roller := &game.SequenceRoller{Values: []int{6, 6, 6, 1, 1, 1}}
	s := Resume(stripGame(t, 3), roller, quiet)

	if err := s.ApplyPendingCombat(); !errors.Is(err, game.ErrNoPendingCombat) {
		t.Errorf("Expected ErrNoPendingCombat, got %v", err)
	}
	if err := s.Reinforce(5); !errors.Is(err, game.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction reinforcing an enemy cell, got %v", err)
	}
	if _, err := s.Attack(0, 4); !errors.Is(err, game.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction attacking in reinforce phase, got %v", err)
	}
	if err := s.EndTurn(); !errors.Is(err, game.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction ending turn early, got %v", err)
	}

	if err := s.Reinforce(0); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if s.State().Phase != game.PhaseAttack {
		t.Fatalf("Expected attack phase, got %v", s.State().Phase)
	}

	// Cell 1 at (1,0) attacks cell 5 at (1,1).
	roll, err := s.Attack(1, 5)
	if err != nil || roll == nil {
		t.Fatalf("Attack: %v %v", roll, err)
	}
	if err := s.Move(0, 2, 1); !errors.Is(err, game.ErrCombatPending) {
		t.Errorf("Expected ErrCombatPending, got %v", err)
	}
	if err := s.EndTurn(); !errors.Is(err, game.ErrCombatPending) {
		t.Errorf("Expected ErrCombatPending, got %v", err)
	}
	if err := s.ApplyPendingCombat(); err != nil {
		t.Fatalf("ApplyPendingCombat: %v", err)
	}
	if c, _ := s.State().Cell(5); c.Owner != game.Player1 || c.Units != 2 {
		t.Errorf("Expected cell 5 captured with 2 units, got %+v", c)
	}
	if err := s.Move(0, 2, 1); err != nil {
		t.Errorf("Move: %v", err)
	}
}

func TestSession_TurnRotation(t *testing.T) {
	s := Resume(stripGame(t, 3), &game.SequenceRoller{}, quiet)

	if err := s.Reinforce(0); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if err := s.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g := s.State(); g.Current != game.Player2 || g.Round != 1 {
		t.Errorf("Expected player 2 in round 1, got %v round %d", g.Current, g.Round)
	}

	if err := s.Reinforce(4); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if err := s.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g := s.State(); g.Current != game.Player1 || g.Round != 2 {
		t.Errorf("Expected player 1 in round 2, got %v round %d", g.Current, g.Round)
	}
}

func TestSession_GameOverBlocksActions(t *testing.T) {
	// One exclave wins. Player 1 loses cell 1, splitting row 0.
	roller := &game.SequenceRoller{Values: []int{1, 1, 1, 1, 6, 6, 6}}
	s := Resume(stripGame(t, 1), roller, quiet)
	if err := s.Reinforce(1); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if _, err := s.Attack(1, 5); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if err := s.ApplyPendingCombat(); err != nil {
		t.Fatalf("ApplyPendingCombat: %v", err)
	}

	g := s.State()
	if !g.IsGameOver() {
		t.Fatal("Expected game over")
	}
	if winner, ok := g.GetWinner(); !ok || winner != game.Player1 {
		t.Errorf("Expected player 1 to win, got %v", winner)
	}
	if err := s.EndTurn(); !errors.Is(err, game.ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestSession_Selection(t *testing.T) {
	s := Resume(stripGame(t, 3), nil, quiet)
	if err := s.Select(2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel := s.State().Selected; sel == nil || *sel != 2 {
		t.Error("Expected cell 2 selected")
	}
	if err := s.Select(99); !errors.Is(err, game.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}
	s.ClearSelection()
	if s.State().Selected != nil {
		t.Error("Expected selection cleared")
	}
}

// cutCell finds a cell of p next to a defended enemy cell whose loss would
// split p's land, returning the cell, the target, and the resulting number of
// pieces.
func cutCell(g *game.GameState, p game.PlayerID) (from, to, pieces int, ok bool) {
	for _, c := range g.Cells {
		if c.Owner != p || c.Units < 1 {
			continue
		}
		var rest []hex.Coord
		for _, o := range g.Cells {
			if o.Owner == p && o.ID != c.ID {
				rest = append(rest, o.Coord())
			}
		}
		n := len(hex.ConnectedComponents(rest, nil))
		if n < 2 {
			continue
		}
		for _, id := range g.ValidAttackTargets(c.ID) {
			if target, _ := g.Cell(id); target.Units > 0 {
				return c.ID, id, n, true
			}
		}
	}
	return 0, 0, 0, false
}

// TestEndToEnd_LossCreatesExclave plays a generated two-player game: the
// first player reinforces, loses an attack on purpose, and the broken
// territory scores an exclave.
func TestEndToEnd_LossCreatesExclave(t *testing.T) {
	roller := &game.SequenceRoller{}

	for seed := int64(1); seed <= 200; seed++ {
		s, err := New(seeded(seed, 2, 5, roller))
		if err != nil {
			continue
		}

		for s.State().Phase == game.PhaseReinforce {
			targets := s.State().ValidReinforcementTargets()
			if len(targets) == 0 {
				break
			}
			if err := s.Reinforce(targets[0]); err != nil {
				t.Fatalf("seed %d: Reinforce: %v", seed, err)
			}
		}
		if s.State().Phase != game.PhaseAttack {
			continue
		}

		g := s.State()
		from, to, pieces, ok := cutCell(g, game.Player1)
		if !ok {
			continue
		}
		src, _ := g.Cell(from)
		dst, _ := g.Cell(to)

		// Attacker throws all ones, defender all sixes.
		roller.Values = make([]int, 0, src.Units+dst.Units)
		for i := 0; i < src.Units; i++ {
			roller.Values = append(roller.Values, 1)
		}
		for i := 0; i < dst.Units; i++ {
			roller.Values = append(roller.Values, 6)
		}

		roll, err := s.Attack(from, to)
		if err != nil {
			t.Fatalf("seed %d: Attack: %v", seed, err)
		}
		if roll == nil || roll.AttackerWins {
			t.Fatalf("seed %d: expected a scripted loss, got %+v", seed, roll)
		}
		if err := s.ApplyPendingCombat(); err != nil {
			t.Fatalf("seed %d: ApplyPendingCombat: %v", seed, err)
		}

		g = s.State()
		origin, _ := g.Cell(from)
		if origin.Owner != dst.Owner || origin.Units != src.Units {
			t.Errorf("seed %d: expected origin to flip to %v with %d units, got %+v", seed, dst.Owner, src.Units, origin)
		}
		if got := g.Scores[game.Player1]; got != pieces-1 {
			t.Errorf("seed %d: expected %d exclave(s), got %d", seed, pieces-1, got)
		}

		if err := s.EndTurn(); err != nil {
			t.Fatalf("seed %d: EndTurn: %v", seed, err)
		}
		g = s.State()
		if g.Current != game.Player2 || g.Scores[game.Player1] != pieces-1 {
			t.Errorf("seed %d: expected player 2 to move with player 1 on %d, got %v / %d",
				seed, pieces-1, g.Current, g.Scores[game.Player1])
		}
		if g.IsGameOver() != (pieces-1 >= 5) {
			t.Errorf("seed %d: unexpected game-over state", seed)
		}
		return
	}
	t.Fatal("no seed produced a board with a cut cell")
}

func TestFromBoard(t *testing.T) {
	b, err := maps.Load("triad.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := FromBoard(b, 2, nil, quiet)
	if err != nil {
		t.Fatalf("FromBoard: %v", err)
	}

	g := s.State()
	if len(g.Players) != 3 || g.WinGoal != 2 || len(g.Cells) != len(b.Cells) {
		t.Errorf("Unexpected game: %d players, goal %d, %d cells", len(g.Players), g.WinGoal, len(g.Cells))
	}
	// Player 1 holds 8 hexes: one reinforcement.
	if g.ReinfLeft != 1 {
		t.Errorf("Expected 1 reinforcement, got %d", g.ReinfLeft)
	}
	if err := s.Reinforce(0); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}

	// Cell 1 at (1,0) borders cell 2 at (2,0); the roll must resolve either way.
	if _, err := s.Attack(1, 2); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if err := s.ApplyPendingCombat(); err != nil {
		t.Fatalf("ApplyPendingCombat: %v", err)
	}
	if s.State().ActionsLeft != game.ActionsPerTurn-1 {
		t.Errorf("Expected one action spent, got %d left", s.State().ActionsLeft)
	}
}

// checkInvariants fails the test if g breaks a board invariant: unit counts
// in range, no negative budgets, and scores equal to exclave counts.
func checkInvariants(t *testing.T, step int, g *game.GameState) {
	t.Helper()
	for _, c := range g.Cells {
		if c.Units < 0 || c.Units > game.MaxUnits {
			t.Fatalf("step %d: cell %d has %d units", step, c.ID, c.Units)
		}
	}
	if g.ReinfLeft < 0 || g.ActionsLeft < 0 {
		t.Fatalf("step %d: negative budget, %d reinforcements and %d actions", step, g.ReinfLeft, g.ActionsLeft)
	}
	for _, p := range g.Players {
		var owned []hex.Coord
		for _, c := range g.Cells {
			if c.Land && c.Owner == p {
				owned = append(owned, c.Coord())
			}
		}
		want := max(len(hex.ConnectedComponents(owned, nil))-1, 0)
		if g.Scores[p] != want {
			t.Fatalf("step %d: %v scored %d, expected %d", step, p, g.Scores[p], want)
		}
	}
}

// randomAction performs one random legal action. Combat is left pending.
func randomAction(s *Session, rng *rand.Rand) error {
	g := s.State()
	if g.Phase == game.PhaseReinforce {
		targets := g.ValidReinforcementTargets()
		if len(targets) == 0 {
			return s.EndTurn()
		}
		return s.Reinforce(targets[rng.Intn(len(targets))])
	}

	var attacks, moves [][2]int
	for _, c := range g.Cells {
		if c.Owner != g.Current {
			continue
		}
		for _, to := range g.ValidAttackTargets(c.ID) {
			attacks = append(attacks, [2]int{c.ID, to})
		}
		for _, to := range g.ValidMoveTargets(c.ID) {
			moves = append(moves, [2]int{c.ID, to})
		}
	}

	switch rng.Intn(3) {
	case 0:
		if len(attacks) > 0 {
			a := attacks[rng.Intn(len(attacks))]
			_, err := s.Attack(a[0], a[1])
			return err
		}
	case 1:
		if len(moves) > 0 {
			m := moves[rng.Intn(len(moves))]
			return s.Move(m[0], m[1], 1+rng.Intn(game.MaxUnits))
		}
	}
	return s.EndTurn()
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		players := 2 + int(seed%2)
		t.Run(fmt.Sprintf("seed %d players %d", seed, players), func(t *testing.T) {
			s := newSession(t, seeded(seed, players, 4, nil))
			rng := rand.New(rand.NewSource(seed))
			checkInvariants(t, 0, s.State())

			for step := 1; step <= 500 && !s.State().IsGameOver(); step++ {
				if err := randomAction(s, rng); err != nil {
					t.Fatalf("step %d: %v", step, err)
				}
				g := s.State()
				checkInvariants(t, step, g)

				if g.HasPendingCombat() {
					checkInvariants(t, step, g.PendingCombatResult)
					if err := s.ApplyPendingCombat(); err != nil {
						t.Fatalf("step %d: apply: %v", step, err)
					}
					checkInvariants(t, step, s.State())
				}
			}
		})
	}
}
