// Package game contains the rules engine: the board state, turn phases,
// combat, movement, and exclave scoring.
//
// Every transition takes a *GameState and returns a new one; the input is
// never modified. An illegal action returns the input state unchanged.
package game

import (
	"github.com/google/uuid"
)

// Per-turn constants.
const (
	ActionsPerTurn   = 5
	HexesPerReinf    = 6
	MinReinforcement = 1
)

// GameState represents the complete state of a game.
type GameState struct {
	ID          string           `json:"id"`
	Cells       []Cell           `json:"cells"`
	Players     []PlayerID       `json:"players"` // turn order
	Current     PlayerID         `json:"current"`
	Phase       Phase            `json:"phase"`
	ReinfLeft   int              `json:"reinfLeft"`
	ActionsLeft int              `json:"actionsLeft"`
	Scores      map[PlayerID]int `json:"scores"`
	Round       int              `json:"round"`
	Selected    *int             `json:"selected,omitempty"`
	WinGoal     int              `json:"winGoal"`

	LastDiceRoll        *DiceRoll  `json:"lastDiceRoll,omitempty"`
	PendingCombatResult *GameState `json:"pendingCombatResult,omitempty"`
}

// NewGame creates the opening state from split cells. Player 1 starts in the
// reinforce phase of round 1.
func NewGame(cells []Cell, playerCount, winGoal int) (*GameState, error) {
	players, err := PlayersFor(playerCount)
	if err != nil {
		return nil, err
	}

	g := &GameState{
		ID:          uuid.New().String(),
		Cells:       make([]Cell, len(cells)),
		Players:     players,
		Current:     players[0],
		Phase:       PhaseReinforce,
		ActionsLeft: ActionsPerTurn,
		Scores:      make(map[PlayerID]int, len(players)),
		Round:       1,
		WinGoal:     winGoal,
	}
	copy(g.Cells, cells)
	for i := range g.Cells {
		g.Cells[i].Units = ClampUnits(g.Cells[i].Units)
	}

	g.ReinfLeft = g.reinforcementsFor(g.Current)
	g.recomputeScores()
	return g, nil
}

// Clone returns a deep copy of the state.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Cells = make([]Cell, len(g.Cells))
	copy(c.Cells, g.Cells)
	c.Players = make([]PlayerID, len(g.Players))
	copy(c.Players, g.Players)
	c.Scores = make(map[PlayerID]int, len(g.Scores))
	for p, s := range g.Scores {
		c.Scores[p] = s
	}
	if g.Selected != nil {
		sel := *g.Selected
		c.Selected = &sel
	}
	if g.LastDiceRoll != nil {
		c.LastDiceRoll = g.LastDiceRoll.Clone()
	}
	if g.PendingCombatResult != nil {
		c.PendingCombatResult = g.PendingCombatResult.Clone()
	}
	return &c
}

// Cell returns the cell with the given id.
func (g *GameState) Cell(id int) (Cell, bool) {
	i := g.cellIndex(id)
	if i < 0 {
		return Cell{}, false
	}
	return g.Cells[i], true
}

// cellIndex finds a cell's slot. Generated boards use id == index, so that
// is tried first.
func (g *GameState) cellIndex(id int) int {
	if id >= 0 && id < len(g.Cells) && g.Cells[id].ID == id {
		return id
	}
	for i := range g.Cells {
		if g.Cells[i].ID == id {
			return i
		}
	}
	return -1
}

// HasPendingCombat reports whether a rolled combat awaits ApplyPendingCombat.
func (g *GameState) HasPendingCombat() bool {
	return g.PendingCombatResult != nil
}

// IsGameOver checks if any player has reached the win goal.
func (g *GameState) IsGameOver() bool {
	for _, p := range g.Players {
		if g.Scores[p] >= g.WinGoal {
			return true
		}
	}
	return false
}

// GetWinner returns the first player in turn order whose score meets the win
// goal. If nobody has, it falls back to the highest score and reports false.
// A state without players has no winner.
func (g *GameState) GetWinner() (PlayerID, bool) {
	if len(g.Players) == 0 {
		return 0, false
	}
	for _, p := range g.Players {
		if g.Scores[p] >= g.WinGoal {
			return p, true
		}
	}

	best := g.Players[0]
	for _, p := range g.Players[1:] {
		if g.Scores[p] > g.Scores[best] {
			best = p
		}
	}
	return best, false
}

// reinforcementsFor returns a player's allotment for a fresh turn.
func (g *GameState) reinforcementsFor(p PlayerID) int {
	n := g.PlayerTerritoryCount(p) / HexesPerReinf
	if n < MinReinforcement {
		return MinReinforcement
	}
	return n
}

// recomputeScores refreshes every player's exclave count.
func (g *GameState) recomputeScores() {
	for _, p := range g.Players {
		g.Scores[p] = g.ExclaveCount(p)
	}
}
