// Package service orchestrates combat resolution: it feeds weapon uses
// through the recorder/matcher pair, applies resolved combo effects, runs
// target resolution and the damage pipeline, and persists the outcome.
package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/avencia/gatefall/internal/combo"
	"github.com/avencia/gatefall/internal/config"
	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/scheduler"
)

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrPlayerNotInBattle   = errors.New("player not in battle")
	ErrNoActionsLeft       = errors.New("no actions left this turn")
	ErrBattleFull          = errors.New("battle is full")

	ErrComboProgressNotFound = errors.New("combo progress not found")
	ErrComboNotInterruptible = errors.New("combo is not interruptible")
)

// BattleRepo is the storage surface the service needs. The concrete
// repository implements more; handlers use that directly for reads.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	CreateBattle(b *game.Battle) error
	UpdateBattle(b *game.Battle) error
	AppendCombatLog(entries []game.CombatLogEntry) error
	RecordComboCompletion(email, comboName string) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
}

// battleRuntime is the per-battle in-memory state owned by the service: the
// rolling history, live combo progress and the pending turn-end task.
// Progress does not survive a process restart; persisted battle state does.
type battleRuntime struct {
	recorder    *combo.Recorder
	matcher     *combo.Matcher
	endTurnTask *scheduler.Task
}

// Service resolves combat for all battles. All operations are serialized by
// an internal mutex: combat resolution never runs concurrently with itself.
type Service struct {
	repo  BattleRepo
	cfg   *config.LoadedConfig
	bus   *events.Bus
	sched *scheduler.Scheduler
	rng   *rand.Rand

	mu       sync.Mutex
	runtimes map[uint]*battleRuntime
}

// NewService validates the combo library up front (a bad library is a
// config error, not a mid-battle surprise) and returns the service.
func NewService(repo BattleRepo, cfg *config.LoadedConfig, bus *events.Bus, sched *scheduler.Scheduler, rng *rand.Rand) (*Service, error) {
	if _, err := combo.NewMatcher(cfg.Combos, events.NewBus(), rand.New(rand.NewSource(0))); err != nil {
		return nil, err
	}
	return &Service{
		repo:     repo,
		cfg:      cfg,
		bus:      bus,
		sched:    sched,
		rng:      rng,
		runtimes: make(map[uint]*battleRuntime),
	}, nil
}

// Bus exposes the lifecycle bus for presentation subscribers.
func (s *Service) Bus() *events.Bus { return s.bus }

// runtime returns the battle's recorder/matcher pair, creating it on first
// use. Callers hold s.mu.
func (s *Service) runtime(battleID uint) *battleRuntime {
	rt, ok := s.runtimes[battleID]
	if !ok {
		m, _ := combo.NewMatcher(s.cfg.Combos, s.bus, s.rng)
		rt = &battleRuntime{
			matcher:  m,
			recorder: combo.NewRecorder(m, s.bus),
		}
		s.runtimes[battleID] = rt
	}
	return rt
}

// dropRuntime forgets a finished battle's in-memory state.
func (s *Service) dropRuntime(battleID uint) {
	if rt, ok := s.runtimes[battleID]; ok {
		if rt.endTurnTask != nil {
			rt.endTurnTask.Cancel()
		}
		delete(s.runtimes, battleID)
	}
}

func (s *Service) findPlayer(b *game.Battle, email string) *game.BattlePlayer {
	for i := range b.Players {
		if b.Players[i].PlayerEmail == email {
			return &b.Players[i]
		}
	}
	return nil
}

// armDeadline resets the planning deadline for the next action.
func (s *Service) armDeadline(b *game.Battle) {
	b.ActionDeadline = time.Now().Add(s.cfg.ActionTimeout)
}
