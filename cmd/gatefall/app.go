package main

import (
	"time"

	"github.com/avencia/gatefall/internal/config"
	"github.com/avencia/gatefall/internal/logging"
	"github.com/avencia/gatefall/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid gatefall configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, publicBattlesTTL time.Duration) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, publicBattlesTTL)
}
