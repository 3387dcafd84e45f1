package storage

import (
	"time"

	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/keys"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
	// publicTTL bounds how long a public battle stays listed.
	publicTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, publicTTL time.Duration) Repository {
	return &sqliteRepository{db: db, publicTTL: publicTTL}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Players").Preload("Enemies").Preload("Gates").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Players").Preload("Enemies").Preload("Gates").
		Where("join_code = ?", code).First(&b).Error
	return &b, err
}

func (r *sqliteRepository) GetPublicBattles() ([]game.Battle, error) {
	var battles []game.Battle
	cutoff := time.Now().Add(-r.publicTTL)
	if err := r.db.Preload("Players").
		Where("private = ? AND created_at > ?", false, cutoff).
		Order("created_at desc").Find(&battles).Error; err != nil {
		return nil, err
	}
	// Only list battles with at least one player
	filtered := make([]game.Battle, 0, len(battles))
	for i := range battles {
		if len(battles[i].Players) >= 1 {
			filtered = append(filtered, battles[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) AppendCombatLog(entries []game.CombatLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *sqliteRepository) GetCombatLog(battleID uint, limit int) ([]game.CombatLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []game.CombatLogEntry
	if err := r.db.Where("battle_id = ?", battleID).
		Order("created_at desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sqliteRepository) UpsertProfile(email, uuid, name string) error {
	var p game.PlayerProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = game.PlayerProfile{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	p.PlayerName = name
	p.PlayerUUID = uuid
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfileByEmail(email string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.PlayerProfile{Email: email}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.PlayerProfile) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error {
	// Helper to upsert and add deltas
	upsert := func(email, uuid, name string, played, won, resigned int) error {
		if email == "" {
			return nil
		}
		var ps game.PlayerProfile
		if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				ps = game.PlayerProfile{Email: email, PlayerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		ps.PlayerName = name
		ps.PlayerUUID = uuid
		ps.BattlesPlayed += played
		ps.Victories += won
		ps.Resignations += resigned
		return r.db.Save(&ps).Error
	}
	for i := range b.Players {
		p := &b.Players[i]
		won := 0
		if b.Winner != "" && b.Winner == p.PlayerName {
			won = 1
		}
		resigned := 0
		if resignedEmail != "" && resignedEmail == p.PlayerEmail {
			resigned = 1
		}
		if err := upsert(p.PlayerEmail, p.PlayerUUID, p.PlayerName, 1, won, resigned); err != nil {
			return err
		}
	}
	return nil
}

// GetTopPlayers returns top N players ordered by Victories desc, then
// BattlesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.PlayerProfile
	if err := r.db.Model(&game.PlayerProfile{}).
		Order("victories DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) RecordComboCompletion(email, comboName string) error {
	key := keys.ComboKey(comboName)
	stat := game.ComboStat{ComboKey: key, Name: comboName, Completions: 1}
	// Upsert keyed by combo_key so concurrent completions accumulate.
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "combo_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completions": gorm.Expr("completions + 1")}),
	}).Create(&stat).Error; err != nil {
		return err
	}
	if email == "" {
		return nil
	}
	var p game.PlayerProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = game.PlayerProfile{Email: email}
		} else {
			return err
		}
	}
	p.CombosCompleted++
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetComboStats() ([]game.ComboStat, error) {
	var stats []game.ComboStat
	if err := r.db.Order("completions DESC").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Preload("Players").
		Where("status = ? AND phase = ? AND action_deadline != ? AND action_deadline <= ?",
			game.StatusInProgress, game.PhasePlanning, time.Time{}, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
