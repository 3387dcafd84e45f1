package service

import (
	"errors"
	"strings"

	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/logging"
)

var (
	ErrBattleNameRequired = errors.New("battle name is required")
	ErrAlreadyInBattle    = errors.New("player already joined this battle")
	ErrBattleNotWaiting   = errors.New("battle is not accepting players")
)

const (
	maxBattlePlayers = 2
	defaultPlayerHP  = 100
)

// CreateBattleRequest carries the creator's identity and battle settings.
type CreateBattleRequest struct {
	Name        string
	Description string
	Private     bool
	JoinCode    string

	PlayerUUID  string
	PlayerName  string
	PlayerEmail string
}

// CreateBattle seeds a new battle from the configured encounter and enrolls
// the creator. The battle waits for a start call before accepting actions.
func (s *Service) CreateBattle(req CreateBattleRequest) (*game.Battle, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrBattleNameRequired
	}

	b := &game.Battle{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Private:     req.Private,
		JoinCode:    req.JoinCode,
		Status:      game.StatusWaiting,
		Phase:       game.PhasePlanning,
		TurnIndex:   1,
	}
	for _, e := range s.cfg.Encounter.Enemies {
		b.Enemies = append(b.Enemies, e)
	}
	for _, g := range s.cfg.Encounter.Gates {
		b.Gates = append(b.Gates, g)
	}
	b.Players = append(b.Players, newBattlePlayer(req.PlayerUUID, req.PlayerName, req.PlayerEmail))

	if err := s.repo.CreateBattle(b); err != nil {
		logging.Error("failed to create battle", err, logging.Fields{"name": b.Name})
		return nil, err
	}
	return b, nil
}

// JoinBattle enrolls another player into a waiting battle.
func (s *Service) JoinBattle(battleID uint, playerUUID, playerName, playerEmail string) (*game.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusWaiting {
		return nil, ErrBattleNotWaiting
	}
	if s.findPlayer(b, playerEmail) != nil {
		return nil, ErrAlreadyInBattle
	}
	if len(b.Players) >= maxBattlePlayers {
		return nil, ErrBattleFull
	}
	b.Players = append(b.Players, newBattlePlayer(playerUUID, playerName, playerEmail))
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// StartBattle moves a waiting battle into its first planning phase.
func (s *Service) StartBattle(battleID uint, playerEmail string) (*game.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusWaiting {
		return nil, ErrBattleNotWaiting
	}
	if s.findPlayer(b, playerEmail) == nil {
		return nil, ErrPlayerNotInBattle
	}
	b.Status = game.StatusInProgress
	b.Phase = game.PhasePlanning
	b.TurnIndex = 1
	s.armDeadline(b)
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Resign ends an in-progress battle by forfeit. With another player present
// they take the win; stats are counted once.
func (s *Service) Resign(battleID uint, playerEmail string) (*game.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	resigning := s.findPlayer(b, playerEmail)
	if resigning == nil {
		return nil, ErrPlayerNotInBattle
	}

	b.Status = game.StatusFinished
	b.Phase = game.PhaseResolved
	b.Message = resigning.PlayerName + " resigned"
	for i := range b.Players {
		if b.Players[i].PlayerEmail != playerEmail {
			b.Winner = b.Players[i].PlayerName
			b.Message += "; " + b.Winner + " wins"
			break
		}
	}
	if !b.StatsCounted {
		if err := s.repo.UpdateStatsOnBattleEnd(b, playerEmail); err != nil {
			logging.Error("failed to update stats on resign", err, logging.Fields{"battle_id": b.ID})
		}
		b.StatsCounted = true
	}
	s.dropRuntime(b.ID)
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

func newBattlePlayer(uuid, name, email string) game.BattlePlayer {
	return game.BattlePlayer{
		PlayerUUID:   uuid,
		PlayerName:   name,
		PlayerEmail:  email,
		HitPoints:    defaultPlayerHP,
		MaxHitPoints: defaultPlayerHP,
	}
}
