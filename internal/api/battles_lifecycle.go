package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/avencia/gatefall/internal/constants"
	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	PlayerName  string `json:"player_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// CreateBattle creates a new battle seeded from the configured encounter and
// returns its ID and join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name := sessionIdentity(c, req.PlayerName)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionExceeds})
		return
	}

	uuid := h.playerUUID(email)
	_ = h.repo.UpsertProfile(email, uuid, name)

	b, err := h.svc.CreateBattle(service.CreateBattleRequest{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		JoinCode:    generateJoinCode(),
		PlayerUUID:  uuid,
		PlayerName:  name,
		PlayerEmail: email,
	})
	if err != nil {
		if err == service.ErrBattleNameRequired {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
	})
}

type JoinBattlePayload struct {
	JoinCode   string `json:"join_code"`
	PlayerName string `json:"player_name"`
}

// JoinBattle enrolls another player into a waiting battle via join code.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name := sessionIdentity(c, req.PlayerName)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	uuid := h.playerUUID(email)
	_ = h.repo.UpsertProfile(email, uuid, name)

	b, err := h.svc.JoinBattle(short.ID, uuid, name, email)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		case service.ErrBattleNotWaiting, service.ErrAlreadyInBattle:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"message":   "Successfully joined battle",
	})
}

// StartBattle moves a waiting battle into its first planning phase.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	b, email, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	started, err := h.svc.StartBattle(b.ID, email)
	if err != nil {
		switch err {
		case service.ErrBattleNotWaiting:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case service.ErrPlayerNotInBattle:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Battle started", "turn_index": started.TurnIndex})
}

// EndBattle lets a participant resign the battle on their behalf.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	b, email, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	if _, err := h.svc.Resign(b.ID, email); err != nil {
		switch err {
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case service.ErrPlayerNotInBattle:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndBattle})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Battle ended"})
}

// sessionIdentity extracts the authenticated email and display name from the
// gin context; fallbackName is used when the session carries no name.
func sessionIdentity(c *gin.Context, fallbackName string) (email, name string) {
	if v, ok := c.Get("userEmail"); ok {
		email, _ = v.(string)
	}
	name = fallbackName
	if v, ok := c.Get("userName"); ok {
		if s, _ := v.(string); s != "" && name == "" {
			name = s
		}
	}
	return email, name
}

// playerUUID returns the stored UUID for a profile, minting one on first use.
func (h *BattleHandler) playerUUID(email string) string {
	if p, err := h.repo.GetProfileByEmail(email); err == nil && p.PlayerUUID != "" {
		return p.PlayerUUID
	}
	return generateJoinCode() + generateJoinCode()
}

// battleFromPath resolves the :battleCode path param to a battle and returns
// the session email alongside. Writes the error response itself on failure.
func (h *BattleHandler) battleFromPath(c *gin.Context) (b *game.Battle, email string, ok bool) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return nil, "", false
	}
	found, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return nil, "", false
	}
	if v, okk := c.Get("userEmail"); okk {
		email, _ = v.(string)
	}
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return nil, "", false
	}
	return found, email, true
}
