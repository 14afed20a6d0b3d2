package game

import "strconv"

// PlayerID identifies a seat at the table.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
	Player3
)

// MaxPlayers is the largest supported table.
const MaxPlayers = 3

// String returns a 1-based display name.
func (p PlayerID) String() string {
	return "Player " + strconv.Itoa(int(p)+1)
}

// Phase represents the current phase of a player's turn.
type Phase int

const (
	PhaseReinforce Phase = iota
	PhaseAttack
	// PhaseMove is reserved; movement happens inside the attack phase.
	PhaseMove
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReinforce:
		return "Reinforce"
	case PhaseAttack:
		return "Attack"
	case PhaseMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// PlayersFor returns the turn order for a table of n players.
func PlayersFor(n int) ([]PlayerID, error) {
	if n < 2 || n > MaxPlayers {
		return nil, ErrInvalidPlayers
	}
	players := make([]PlayerID, n)
	for i := range players {
		players[i] = PlayerID(i)
	}
	return players, nil
}
