package storage

import (
	"github.com/avencia/gatefall/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. Authored content (weapons, combo library, balance) lives in
// the config file and is never persisted; only battles, combat history and
// player stats reach the database.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.Battle{},
		&game.BattlePlayer{},
		&game.Enemy{},
		&game.Gate{},
		&game.CombatLogEntry{},
		&game.PlayerProfile{},
		&game.ComboStat{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
