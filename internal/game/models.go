package game

import (
	"time"

	"gorm.io/gorm"
)

// Battle status and phase values.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	PhasePlanning  = "planning"
	PhaseResolving = "resolving"
	PhaseResolved  = "resolved"
)

// Battle is one persisted encounter: the enemy grid, the gates and the
// participating players, plus turn bookkeeping.
type Battle struct {
	gorm.Model
	Name        string         `json:"name" gorm:"size:32"`
	Description string         `json:"description" gorm:"size:256"`
	Private     bool           `json:"private"`
	JoinCode    string         `json:"join_code" gorm:"unique"`
	Players     []BattlePlayer `json:"players"`
	Enemies     []Enemy        `json:"enemies"`
	Gates       []Gate         `json:"gates"`
	TurnIndex   int            `json:"turn_index"`
	Status      string         `json:"status"`
	Phase       string         `json:"phase"` // planning | resolving | resolved
	Winner      string         `json:"winner"`
	Message     string         `json:"message"`
	// LastTurnSummary is a human-readable log of the most recent turn,
	// rebuilt by the resolver on every weapon use.
	LastTurnSummary string `json:"last_turn_summary"`
	// ActionDeadline is when the current planning phase times out. Zero when
	// no deadline is armed.
	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// Battlefield builds the aliased in-memory view used by the target resolver.
func (b *Battle) Battlefield() *Battlefield {
	f := &Battlefield{
		Enemies: make([]*Enemy, 0, len(b.Enemies)),
		Gates:   make([]*Gate, 0, len(b.Gates)),
	}
	for i := range b.Enemies {
		f.Enemies = append(f.Enemies, &b.Enemies[i])
	}
	for i := range b.Gates {
		f.Gates = append(f.Gates, &b.Gates[i])
	}
	return f
}

// AliveEnemyCount counts enemies still standing.
func (b *Battle) AliveEnemyCount() int {
	n := 0
	for i := range b.Enemies {
		if b.Enemies[i].Alive() {
			n++
		}
	}
	return n
}

// BattlePlayer is one participant of a battle.
type BattlePlayer struct {
	gorm.Model
	BattleID     uint   `json:"-"`
	PlayerUUID   string `json:"player_uuid"`
	PlayerName   string `json:"player_name"`
	PlayerEmail  string `json:"player_email"`
	HitPoints    int    `json:"hit_points"`
	MaxHitPoints int    `json:"max_hit_points"`

	FlatAttackBonus        int     `json:"flat_attack_bonus"`
	LuckModifier           int     `json:"luck_modifier"`
	CriticalDamageModifier float64 `json:"critical_damage_modifier"`

	// Per-turn action budget: 1 plus any AdditionalAction combo effects.
	ActionsTaken int `json:"actions_taken"`
	ExtraActions int `json:"extra_actions"`

	AttackBuffValue     int `json:"attack_buff_value"`
	AttackBuffUntilTurn int `json:"attack_buff_until_turn"`
}

func (BattlePlayer) TableName() string { return "battle_players" }

// BattlePlayer satisfies Target so Self-range weapons resolve to the acting
// entity without an enemy lookup.
func (p *BattlePlayer) TargetName() string { return p.PlayerName }

func (p *BattlePlayer) Alive() bool { return p.HitPoints > 0 }

func (p *BattlePlayer) Mitigation() Mitigation {
	return Mitigation{FlatDefense: 0, Factor: 1.0}
}

func (p *BattlePlayer) ApplyDamage(amount int) {
	p.HitPoints -= amount
	if p.HitPoints < 0 {
		p.HitPoints = 0
	}
}

// Modifiers assembles the attacker-side damage inputs for the current turn.
func (p *BattlePlayer) Modifiers(turn int) AttackerModifiers {
	m := AttackerModifiers{
		FlatAttackBonus:        p.FlatAttackBonus,
		LuckModifier:           p.LuckModifier,
		CriticalDamageModifier: p.CriticalDamageModifier,
	}
	if p.AttackBuffValue > 0 && p.AttackBuffUntilTurn >= turn {
		m.FlatAttackBonus += p.AttackBuffValue
	}
	return m
}

// CombatLogEntry records one resolved hit for history and presentation.
type CombatLogEntry struct {
	gorm.Model
	BattleID    uint   `json:"-"`
	TurnIndex   int    `json:"turn_index"`
	PlayerEmail string `json:"-"`
	WeaponName  string `json:"weapon_name"`
	TargetName  string `json:"target_name"`
	FinalDamage int    `json:"final_damage"`
	IsCritical  bool   `json:"is_critical"`
	ComboName   string `json:"combo_name"`
}

func (CombatLogEntry) TableName() string { return "combat_log" }

// PlayerProfile stores unique player identity and aggregate stats.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID      string `gorm:"index"`
	PlayerName      string
	Email           string `gorm:"uniqueIndex"`
	BattlesPlayed   int
	Victories       int
	Resignations    int
	CombosCompleted int
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// ComboStat counts global completions per combo definition, keyed by the
// canonical combo key (see internal/keys).
type ComboStat struct {
	gorm.Model
	ComboKey    string `json:"combo_key" gorm:"uniqueIndex"`
	Name        string `json:"name"`
	Completions int    `json:"completions"`
}

func (ComboStat) TableName() string { return "combo_stats" }
