package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/avencia/gatefall/internal/api"
	"github.com/avencia/gatefall/internal/constants"
	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/logging"
	"github.com/avencia/gatefall/internal/scheduler"
	"github.com/avencia/gatefall/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Combat content (weapons, combo library, balance, encounter) comes from
	// a required JSON config file. Path may be provided via GATEFALL_CONFIG
	// or defaults to ./gatefall_config.json.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./gatefall_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/gatefall.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.PublicBattlesTTL)

	bus := events.NewBus()
	bus.Subscribe(events.NameComboCompleted, func(e events.Event) {
		if ev, ok := e.(events.ComboCompleted); ok {
			logging.Info("combo completed", logging.Fields{constants.LogFieldCombo: ev.Result.ComboName})
		}
	})
	bus.Subscribe(events.NameComboFailed, func(e events.Event) {
		if ev, ok := e.(events.ComboFailed); ok {
			logging.Info("combo failed", logging.Fields{
				constants.LogFieldCombo:  ev.Definition.Name,
				constants.LogFieldReason: ev.Reason,
			})
		}
	})

	sched := scheduler.New()
	defer sched.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc, err := service.NewService(repo, cfg, bus, sched, rng)
	if err != nil {
		logging.Fatal("Invalid combo library", err, nil)
	}

	startTimeoutScanner(repo, svc)

	handler := api.NewBattleHandler(repo, svc)
	contentHandler := api.NewContentHandler(cfg.Weapons, cfg.Combos)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteWeapons, contentHandler.ListWeapons)
		apiRoutes.GET(constants.RouteCombos, contentHandler.ListCombos)
		apiRoutes.GET(constants.RouteComboStats, handler.ListComboStats)
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET("/version", api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.GET(constants.RouteBattleLog, handler.GetCombatLog)
		protected.POST(constants.RouteBattleStart, handler.StartBattle)
		protected.POST(constants.RouteBattleEnd, handler.EndBattle)
		protected.POST(constants.RouteTurnEnd, handler.EndTurn)
		protected.POST(constants.RouteWeaponUse, handler.UseWeapon)
		protected.POST(constants.RouteDamagePreview, handler.PreviewDamage)
		protected.POST(constants.RouteComboInterrupt, handler.InterruptCombo)
		protected.GET(constants.RouteComboProgress, handler.ComboProgress)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
