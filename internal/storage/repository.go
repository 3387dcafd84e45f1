package storage

import (
	"time"

	"github.com/avencia/gatefall/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	GetPublicBattles() ([]game.Battle, error)
	UpdateBattle(b *game.Battle) error

	// Combat log
	AppendCombatLog(entries []game.CombatLogEntry) error
	GetCombatLog(battleID uint, limit int) ([]game.CombatLogEntry, error)

	// Player identity and aggregate stats
	UpsertProfile(email, uuid, name string) error
	GetProfileByEmail(email string) (*game.PlayerProfile, error)
	SaveProfile(p *game.PlayerProfile) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)

	// Per-combo completion counters keyed by the canonical combo key.
	RecordComboCompletion(email, comboName string) error
	GetComboStats() ([]game.ComboStat, error)

	// FindTimedOutBattles returns battles that are currently in-progress,
	// in the planning phase and whose action deadline is at or before the
	// provided time. The caller decides how to resolve them.
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
