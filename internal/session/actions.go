package session

import "hexclave/internal/game"

// checkOpen rejects actions once the game is decided or while a combat
// result waits to be applied.
func (s *Session) checkOpen() error {
	if s.state.IsGameOver() {
		return game.ErrGameOver
	}
	if s.state.HasPendingCombat() {
		return game.ErrCombatPending
	}
	return nil
}

// commit swaps in next, reporting ErrInvalidAction if the engine refused the
// action and left the state as it was.
func (s *Session) commit(next *game.GameState) error {
	if next == s.state {
		return game.ErrInvalidAction
	}
	s.state = next
	return nil
}

// Reinforce adds a unit to one of the current player's cells.
func (s *Session) Reinforce(cellID int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.commit(game.Reinforce(s.state, cellID)); err != nil {
		return err
	}
	if s.state.Phase == game.PhaseAttack {
		s.logger.Printf("%s: reinforcements placed, attack phase", s.state.Current)
	}
	return nil
}

// Attack rolls an attack. When dice are thrown the outcome is held until
// ApplyPendingCombat; the returned roll is what the players should see.
// Capturing an empty cell applies at once and returns a nil roll.
func (s *Session) Attack(fromID, toID int) (*game.DiceRoll, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	next, roll := game.BeginAttack(s.state, fromID, toID, s.roller)
	if err := s.commit(next); err != nil {
		return nil, err
	}

	if roll == nil {
		s.logger.Printf("%s: captured empty cell %d", s.state.Current, toID)
		s.checkWinner()
		return nil, nil
	}
	s.logger.Printf("%s attacks %d -> %d: %d vs %d", roll.AttackerID, fromID, toID, roll.AttackerTotal, roll.DefenderTotal)
	return roll, nil
}

// ApplyPendingCombat commits the held combat outcome.
func (s *Session) ApplyPendingCombat() error {
	if !s.state.HasPendingCombat() {
		return game.ErrNoPendingCombat
	}
	roll := s.state.LastDiceRoll
	s.state = game.ApplyPendingCombat(s.state)

	if roll != nil {
		if roll.AttackerWins {
			s.logger.Printf("%s wins the battle against %s", roll.AttackerID, roll.DefenderID)
		} else {
			s.logger.Printf("%s repels %s and takes the attacking cell", roll.DefenderID, roll.AttackerID)
		}
	}
	s.checkWinner()
	return nil
}

// Move shifts up to count units between two of the current player's cells.
func (s *Session) Move(fromID, toID, count int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.commit(game.Move(s.state, fromID, toID, count))
}

// EndTurn passes play to the next player.
func (s *Session) EndTurn() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.commit(game.EndTurn(s.state)); err != nil {
		return err
	}
	s.logger.Printf("round %d: %s to play, %d reinforcements", s.state.Round, s.state.Current, s.state.ReinfLeft)
	return nil
}

// Select marks a cell for the UI.
func (s *Session) Select(cellID int) error {
	return s.commit(game.Select(s.state, cellID))
}

// ClearSelection drops the UI selection.
func (s *Session) ClearSelection() {
	s.state = game.ClearSelection(s.state)
}

// checkWinner logs the result once the game is decided.
func (s *Session) checkWinner() {
	if !s.state.IsGameOver() {
		return
	}
	winner, _ := s.state.GetWinner()
	s.logger.Printf("game %s over: %s wins with %d exclave(s)", s.state.ID, winner, s.state.Scores[winner])
}
