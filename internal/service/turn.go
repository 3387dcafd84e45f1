package service

import (
	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/logging"
)

// scheduleTurnEnd arms the cancellable auto turn-end task. Any later action
// in the same turn cancels and re-arms it, so the turn only ends after the
// configured quiet period. Callers hold s.mu.
func (s *Service) scheduleTurnEnd(battleID uint, turnIndex int) {
	rt := s.runtime(battleID)
	if rt.endTurnTask != nil {
		rt.endTurnTask.Cancel()
	}
	rt.endTurnTask = s.sched.Schedule(s.cfg.TurnEndDelay, func() {
		if _, err := s.EndTurn(battleID, turnIndex); err != nil {
			logging.Error("auto turn end failed", err, logging.Fields{"battle_id": battleID})
		}
	})
}

// EndTurn closes the given turn: the turn index advances, action budgets
// reset, expired buffs and debuffs decay, and live combo attempts age
// against the new turn. A stale expectedTurn is a no-op so a cancelled
// timer that already fired cannot end a later turn.
func (s *Service) EndTurn(battleID uint, expectedTurn int) (*game.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	if expectedTurn >= 0 && b.TurnIndex != expectedTurn {
		return b, nil
	}

	b.TurnIndex++
	for i := range b.Players {
		p := &b.Players[i]
		p.ActionsTaken = 0
		p.ExtraActions = 0
		if p.AttackBuffValue > 0 && p.AttackBuffUntilTurn < b.TurnIndex {
			p.AttackBuffValue = 0
			p.AttackBuffUntilTurn = 0
		}
	}
	for i := range b.Enemies {
		e := &b.Enemies[i]
		if e.DebuffValue > 0 && e.DebuffUntilTurn < b.TurnIndex {
			e.DebuffValue = 0
			e.DebuffUntilTurn = 0
		}
	}

	rt := s.runtime(battleID)
	rt.matcher.AdvanceTurn(b.TurnIndex)
	if rt.endTurnTask != nil {
		rt.endTurnTask.Cancel()
		rt.endTurnTask = nil
	}

	b.Phase = game.PhasePlanning
	s.armDeadline(b)
	if err := s.repo.UpdateBattle(b); err != nil {
		logging.Error("failed to update battle on turn end", err, logging.Fields{"battle_id": b.ID})
		return nil, err
	}
	return b, nil
}
