package service

import (
	"github.com/avencia/gatefall/internal/combo"
	"github.com/avencia/gatefall/internal/game"
)

// InterruptOutcome reports whether a combo in progress survived an
// interruption attempt.
type InterruptOutcome struct {
	ProgressID  uint64 `json:"progress_id"`
	Interrupted bool   `json:"interrupted"`
}

// InterruptCombo attempts to break one live combo progress. Resistance is
// rolled by the matcher; a surviving progress keeps its state untouched.
func (s *Service) InterruptCombo(battleID uint, progressID uint64) (*InterruptOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}

	rt := s.runtime(battleID)
	interrupted, err := rt.matcher.Interrupt(progressID)
	if err != nil {
		switch err {
		case combo.ErrProgressNotFound:
			return nil, ErrComboProgressNotFound
		case combo.ErrNotInterruptible:
			return nil, ErrComboNotInterruptible
		}
		return nil, err
	}
	return &InterruptOutcome{ProgressID: progressID, Interrupted: interrupted}, nil
}

// ComboProgressView is the read model for one live progress entry.
type ComboProgressView struct {
	ProgressID    uint64  `json:"progress_id"`
	ComboName     string  `json:"combo_name"`
	ComboType     string  `json:"combo_type"`
	Priority      int     `json:"priority"`
	MatchedCount  int     `json:"matched_count"`
	RequiredCount int     `json:"required_count"`
	Ratio         float64 `json:"ratio"`
	Interruptible bool    `json:"interruptible"`
}

// ComboProgressList returns the live progress entries for a battle in
// library order.
func (s *Service) ComboProgressList(battleID uint) ([]ComboProgressView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}

	rt := s.runtime(battleID)
	live := rt.matcher.Live()
	views := make([]ComboProgressView, 0, len(live))
	for i := range live {
		p := &live[i]
		views = append(views, ComboProgressView{
			ProgressID:    p.ID,
			ComboName:     p.Definition.Name,
			ComboType:     string(p.Definition.ComboType),
			Priority:      p.Definition.Priority,
			MatchedCount:  p.MatchedCount,
			RequiredCount: p.Definition.RequiredWeaponCount,
			Ratio:         p.Ratio(),
			Interruptible: p.Definition.CanInterrupt,
		})
	}
	return views, nil
}
