package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/avencia/gatefall/internal/constants"
	"github.com/avencia/gatefall/internal/dedupe"
	"github.com/avencia/gatefall/internal/game"

	"github.com/gin-gonic/gin"
)

// GetBattle returns a battle by join code with full battlefield state.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	b, err := h.repo.GetBattleByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListPublicBattles returns recent public battles with at least one player.
func (h *BattleHandler) ListPublicBattles(c *gin.Context) {
	battles, err := h.repo.GetPublicBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := MarshalForContext(c, battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetCombatLog returns the most recent combat log entries for a battle.
func (h *BattleHandler) GetCombatLog(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	entries, err := h.repo.GetCombatLog(short.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCombatLog})
		return
	}
	out, err := MarshalForContext(c, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCombatLog})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns top players by victories. Concurrent requests for
// the same limit share one query via singleflight.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.LeaderboardGroup.Do("leaderboard:"+strconv.Itoa(limit), func() (interface{}, error) {
		return h.repo.GetTopPlayers(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListComboStats returns global completion counts per combo.
func (h *BattleHandler) ListComboStats(c *gin.Context) {
	v, err, _ := dedupe.StatsGroup.Do("combo-stats", func() (interface{}, error) {
		return h.repo.GetComboStats()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, v)
}

// GetPlayerStats returns the aggregated profile for the session player, or
// for ?email= when given.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		if v, ok := c.Get("userEmail"); ok {
			email, _ = v.(string)
		}
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err, _ := dedupe.StatsGroup.Do("profile:"+email, func() (interface{}, error) {
		return h.repo.GetProfileByEmail(email)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

// UpdatePlayerProfile updates the authenticated player's display name.
func (h *BattleHandler) UpdatePlayerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := ""
	if v, ok := c.Get("userEmail"); ok {
		email, _ = v.(string)
	}
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	trimmed := strings.TrimSpace(body.Name)
	if !playerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Invalid player name"})
		return
	}
	ps, err := h.repo.GetProfileByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	ps.PlayerName = trimmed
	if err := h.repo.SaveProfile(ps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// ContentHandler serves the authored weapon and combo catalogs loaded from
// configuration.
type ContentHandler struct {
	weapons []game.Weapon
	combos  []*game.ComboDefinition
}

func NewContentHandler(weapons []game.Weapon, combos []*game.ComboDefinition) *ContentHandler {
	return &ContentHandler{weapons: weapons, combos: combos}
}

// ListWeapons returns the authored weapon catalog.
func (h *ContentHandler) ListWeapons(c *gin.Context) {
	c.JSON(http.StatusOK, h.weapons)
}

// ListCombos returns the authored combo library, conditions and effects
// included, so clients can render discovery hints.
func (h *ContentHandler) ListCombos(c *gin.Context) {
	c.JSON(http.StatusOK, h.combos)
}
