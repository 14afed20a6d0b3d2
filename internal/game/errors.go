package game

import "errors"

// Game errors
var (
	ErrInvalidAction   = errors.New("invalid action for current state")
	ErrCombatPending   = errors.New("combat result awaiting acknowledgement")
	ErrNoPendingCombat = errors.New("no combat result to apply")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPlayers  = errors.New("player count must be 2 or 3")
)
