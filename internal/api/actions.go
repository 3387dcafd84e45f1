package api

import (
	"net/http"
	"strconv"

	"github.com/avencia/gatefall/internal/constants"
	"github.com/avencia/gatefall/internal/service"

	"github.com/gin-gonic/gin"
)

type WeaponUsePayload struct {
	WeaponName string `json:"weapon_name"`
	Column     int    `json:"column"`
	TargetKind string `json:"target_kind"`
	TargetID   uint   `json:"target_id"`
}

// UseWeapon records one weapon use for the session player and returns the
// resolved outcome: completed combos, per-target damage and battle state.
func (h *BattleHandler) UseWeapon(c *gin.Context) {
	b, email, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	var req WeaponUsePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := h.svc.RecordWeaponUse(b.ID, service.UseWeaponRequest{
		PlayerEmail: email,
		WeaponName:  req.WeaponName,
		Column:      req.Column,
		Target:      service.TargetRef{Kind: req.TargetKind, ID: req.TargetID},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out, err := MarshalForContext(c, res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRecordUse})
		return
	}
	c.JSON(http.StatusOK, out)
}

// PreviewDamage returns expected damage for a weapon use without committing
// anything: no variance, no critical roll, no state change.
func (h *BattleHandler) PreviewDamage(c *gin.Context) {
	b, email, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	var req WeaponUsePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	info, err := h.svc.PreviewDamage(b.ID, service.UseWeaponRequest{
		PlayerEmail: email,
		WeaponName:  req.WeaponName,
		Column:      req.Column,
		Target:      service.TargetRef{Kind: req.TargetKind, ID: req.TargetID},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type InterruptPayload struct {
	ProgressID uint64 `json:"progress_id"`
}

// InterruptCombo attempts to break one live combo attempt; the outcome says
// whether the attempt survived its resistance roll.
func (h *BattleHandler) InterruptCombo(c *gin.Context) {
	b, _, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	var req InterruptPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	outcome, err := h.svc.InterruptCombo(b.ID, req.ProgressID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ComboProgress lists the live combo attempts for a battle.
func (h *BattleHandler) ComboProgress(c *gin.Context) {
	b, _, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	views, err := h.svc.ComboProgressList(b.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// EndTurn explicitly closes the current turn instead of waiting for the
// auto turn-end delay. The expected turn index guards against racing the
// timer.
func (h *BattleHandler) EndTurn(c *gin.Context) {
	b, email, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	found := false
	for i := range b.Players {
		if b.Players[i].PlayerEmail == email {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		return
	}
	expected := -1
	if s := c.Query("turn"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			expected = n
		}
	}
	updated, err := h.svc.EndTurn(b.ID, expected)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Turn ended", "turn_index": updated.TurnIndex})
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrBattleNotInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case service.ErrPlayerNotInBattle:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
	case service.ErrNoActionsLeft:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActionsLeft})
	case service.ErrComboProgressNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrComboNotFound})
	case service.ErrComboNotInterruptible:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrComboNotInterruptible})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRecordUse})
	}
}
