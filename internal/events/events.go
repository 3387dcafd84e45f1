package events

import "github.com/avencia/gatefall/internal/game"

// Event names used with Bus.Subscribe.
const (
	NameWeaponUseRecorded   = "weapon_use_recorded"
	NameComboStarted        = "combo_started"
	NameComboProgressUpdate = "combo_progress_updated"
	NameComboCompleted      = "combo_completed"
	NameComboFailed         = "combo_failed"
	NameComboInterrupted    = "combo_interrupted"
	NameDamageDealt         = "damage_dealt"
)

// WeaponUseRecorded is published after the recorder stores a weapon use.
type WeaponUseRecorded struct {
	Event game.WeaponUseEvent
}

func (WeaponUseRecorded) EventName() string { return NameWeaponUseRecorded }

// ComboStarted is published when a weapon use opens a new combo attempt.
type ComboStarted struct {
	Definition *game.ComboDefinition
}

func (ComboStarted) EventName() string { return NameComboStarted }

// ComboProgressUpdated is published when an attempt advances a step.
type ComboProgressUpdated struct {
	Definition   *game.ComboDefinition
	ProgressID   uint64
	MatchedCount int
	Required     int
	Ratio        float64
}

func (ComboProgressUpdated) EventName() string { return NameComboProgressUpdate }

// ComboCompleted carries the execution result of a completed combo.
type ComboCompleted struct {
	Result *game.ComboExecutionResult
}

func (ComboCompleted) EventName() string { return NameComboCompleted }

// ComboFailed reports a terminal failure ("timeout" or "roll-failed").
type ComboFailed struct {
	Definition *game.ComboDefinition
	Reason     string
}

func (ComboFailed) EventName() string { return NameComboFailed }

// ComboInterrupted reports an externally triggered interruption that beat the
// definition's resistance.
type ComboInterrupted struct {
	Definition *game.ComboDefinition
}

func (ComboInterrupted) EventName() string { return NameComboInterrupted }

// DamageDealt is published once per resolved weapon-use/target pair.
type DamageDealt struct {
	BattleID    uint
	TurnIndex   int
	WeaponName  string
	TargetName  string
	Calculation game.DamageCalculation
}

func (DamageDealt) EventName() string { return NameDamageDealt }
