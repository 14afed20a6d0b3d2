package game

import (
	"reflect"
	"testing"
)

// queryBoard: player 1 holds (0,0) and (1,0) plus a cut-off (3,0); player 2
// holds (2,0) and an empty (0,1).
func queryBoard() *GameState {
	return createTestGameState(2,
		cs{0, 0, Player1, 3},
		cs{1, 0, Player1, 8},
		cs{3, 0, Player1, 2},
		cs{2, 0, Player2, 2},
		cs{0, 1, Player2, 0},
	)
}

func TestValidAttackTargets(t *testing.T) {
	g := queryBoard()

	if got := g.ValidAttackTargets(0); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Expected [4] from (0,0), got %v", got)
	}
	if got := g.ValidAttackTargets(1); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("Expected [3 4] from (1,0), got %v", got)
	}
	if got := g.ValidAttackTargets(3); len(got) != 0 {
		t.Errorf("Expected no targets from an enemy cell, got %v", got)
	}
	if got := g.ValidAttackTargets(99); len(got) != 0 {
		t.Errorf("Expected no targets from an unknown cell, got %v", got)
	}
}

func TestValidMoveTargets(t *testing.T) {
	g := queryBoard()

	// (1,0) is full, so only the exclave can take units from (0,0).
	if got := g.ValidMoveTargets(0); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Expected [2], got %v", got)
	}
	if got := g.ValidMoveTargets(2); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Expected [0], got %v", got)
	}
}

func TestValidReinforcementTargets(t *testing.T) {
	g := queryBoard()
	if got := g.ValidReinforcementTargets(); len(got) != 0 {
		t.Errorf("Expected no targets in the attack phase, got %v", got)
	}

	g.Phase = PhaseReinforce
	g.ReinfLeft = 1
	if got := g.ValidReinforcementTargets(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Expected [0 2], got %v", got)
	}
}

func TestHasValidMoves(t *testing.T) {
	if !queryBoard().HasValidMoves() {
		t.Error("Expected moves on the query board")
	}

	stuck := createTestGameState(2,
		cs{0, 0, Player1, 1},
		cs{5, 5, Player2, 3},
	)
	if stuck.HasValidMoves() {
		t.Error("Expected a lone single unit far from the enemy to have no moves")
	}

	full := createTestGameState(2,
		cs{0, 0, Player1, MaxUnits},
		cs{5, 5, Player2, 3},
	)
	full.Phase = PhaseReinforce
	full.ReinfLeft = 2
	if full.HasValidMoves() {
		t.Error("Expected no reinforcement targets when every cell is full")
	}
	if !full.CanEndTurn() {
		t.Error("Expected a player with nothing to do to be allowed to pass")
	}
}

func TestSummarize(t *testing.T) {
	g := queryBoard()

	if g.PlayerTerritoryCount(Player1) != 3 || g.TotalUnits(Player1) != 13 {
		t.Errorf("Expected 3 hexes and 13 units, got %d and %d",
			g.PlayerTerritoryCount(Player1), g.TotalUnits(Player1))
	}

	got := g.Summarize()
	want := []PlayerSummary{
		{Player: Player1, Territories: 3, Units: 13, Score: 1, RegionSizes: []int{2, 1}, IsCurrent: true},
		{Player: Player2, Territories: 2, Units: 2, Score: 1, RegionSizes: []int{1, 1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
