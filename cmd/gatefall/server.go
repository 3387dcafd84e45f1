package main

import (
	"time"

	"github.com/avencia/gatefall/internal/logging"
	"github.com/avencia/gatefall/internal/service"
	"github.com/avencia/gatefall/internal/storage"
)

// startTimeoutScanner periodically finds battles whose action deadline has
// passed and delegates handling to the combat service. SQLite keeps this
// single-process; no cross-worker claiming is needed.
func startTimeoutScanner(repo storage.Repository, svc *service.Service) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			battles, err := repo.FindTimedOutBattles(now)
			if err != nil {
				logging.Error("timeout scanner failed to list battles", err, nil)
				continue
			}
			for i := range battles {
				svc.HandleTimedOutBattle(battles[i].ID)
			}
		}
	}()
}
