package service

import (
	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/logging"
)

// HandleTimedOutBattle force-ends the planning phase of a battle whose
// action deadline passed without the turn completing. Invoked by the server
// scanner; a battle that already moved on is left alone.
func (s *Service) HandleTimedOutBattle(battleID uint) {
	s.mu.Lock()
	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil || b.Status != game.StatusInProgress {
		s.mu.Unlock()
		return
	}
	turn := b.TurnIndex
	s.mu.Unlock()

	logging.Info("battle action deadline passed, forcing turn end", logging.Fields{
		"battle_id":  battleID,
		"turn_index": turn,
	})
	if _, err := s.EndTurn(battleID, turn); err != nil {
		logging.Error("forced turn end failed", err, logging.Fields{"battle_id": battleID})
	}
}
