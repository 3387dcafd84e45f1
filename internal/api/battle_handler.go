package api

import (
	"github.com/avencia/gatefall/internal/service"
	"github.com/avencia/gatefall/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers. Reads go straight
// to the repository; anything that mutates combat state goes through the
// service so resolution stays serialized.
type BattleHandler struct {
	repo storage.Repository
	svc  *service.Service
}

// NewBattleHandler creates a new BattleHandler.
func NewBattleHandler(repo storage.Repository, svc *service.Service) *BattleHandler {
	return &BattleHandler{repo: repo, svc: svc}
}
