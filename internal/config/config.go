package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avencia/gatefall/internal/game"
)

type comboEntry struct {
	Name                string             `json:"name"`
	ComboType           string             `json:"combo_type"`
	Priority            int                `json:"priority"`
	RequiredWeaponCount int                `json:"required_weapon_count"`
	CanInterrupt        bool               `json:"can_interrupt"`
	InterruptResistance float64            `json:"interrupt_resistance"`
	SuccessRate         *float64           `json:"success_rate"`
	MaxTurnInterval     int                `json:"max_turn_interval"`
	Condition           comboConditionJSON `json:"condition"`
	Effects             []game.ComboEffect `json:"effects"`
}

type comboConditionJSON struct {
	Attributes []game.AttackAttribute `json:"attributes"`
	Weapons    []game.WeaponType      `json:"weapons"`
	MinPower   int                    `json:"min_power"`
	Sequence   []game.SequenceStep    `json:"sequence"`
}

type encounterEntry struct {
	Enemies []enemyEntry `json:"enemies"`
	Gates   []gateEntry  `json:"gates"`
}

type enemyEntry struct {
	Name      string `json:"name"`
	Column    int    `json:"column"`
	Row       int    `json:"row"`
	HitPoints int    `json:"hit_points"`
	Defense   int    `json:"defense"`
}

type gateEntry struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	HitPoints int    `json:"hit_points"`
}

type rawConfig struct {
	WeaponList []game.Weapon  `json:"weapon_list"`
	ComboList  []comboEntry   `json:"combo_list"`
	Balance    *game.Balance  `json:"balance"`
	Encounter  encounterEntry `json:"encounter"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	ActionTimeoutSeconds  int `json:"action_timeout_seconds"`
	TurnEndDelaySeconds   int `json:"turn_end_delay_seconds"`
	PublicBattlesTTLHours int `json:"public_battles_ttl_hours"`
}

// LoadedConfig contains the authored combat content and server settings.
type LoadedConfig struct {
	Weapons       []game.Weapon
	Combos        []*game.ComboDefinition
	Balance       game.Balance
	Encounter     Encounter
	ServerAddress string
	// ActionTimeout bounds the planning phase of a turn.
	ActionTimeout time.Duration
	// TurnEndDelay is the pause after the last action before the turn
	// auto-ends (cancelled when another action arrives).
	TurnEndDelay     time.Duration
	PublicBattlesTTL time.Duration
}

// Encounter is the default battlefield seeded into new battles.
type Encounter struct {
	Enemies []game.Enemy
	Gates   []game.Gate
}

// LoadConfig reads the configuration file at path and returns the weapon
// list, the validated combo library and balance numbers. It requires the
// keys `weapon_list` and `combo_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.WeaponList) == 0 {
		return nil, fmt.Errorf("config file %s: weapon_list is empty (provide 'weapon_list' array)", path)
	}
	if len(rc.ComboList) == 0 {
		return nil, fmt.Errorf("config file %s: combo_list is empty (provide 'combo_list' array)", path)
	}

	// Cross-entry validation: unique weapon names (case-insensitive).
	weaponSet := make(map[string]struct{}, len(rc.WeaponList))
	for _, w := range rc.WeaponList {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("config file %s: weapon entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(w.Name))
		if _, exists := weaponSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate weapon name '%s'", path, w.Name)
		}
		weaponSet[ln] = struct{}{}
		if w.BasePower <= 0 {
			return nil, fmt.Errorf("config file %s: weapon '%s' requires base_power > 0", path, w.Name)
		}
	}

	// Build combo definitions through the validating builder so authored
	// content is rejected at load, not mid-battle.
	comboSet := make(map[string]struct{}, len(rc.ComboList))
	combos := make([]*game.ComboDefinition, 0, len(rc.ComboList))
	for _, e := range rc.ComboList {
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := comboSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate combo name '%s'", path, e.Name)
		}
		comboSet[ln] = struct{}{}

		builder := game.NewDefinitionBuilder(e.Name).
			Type(game.ComboType(e.ComboType)).
			Priority(e.Priority).
			RequiredCount(e.RequiredWeaponCount).
			Window(e.MaxTurnInterval)
		if e.SuccessRate != nil {
			builder.SuccessRate(*e.SuccessRate)
		}
		if e.CanInterrupt {
			builder.Interruptible(e.InterruptResistance)
		}
		if len(e.Condition.Attributes) > 0 {
			builder.Attributes(e.Condition.Attributes...)
		}
		if len(e.Condition.Weapons) > 0 {
			builder.Weapons(e.Condition.Weapons...)
		}
		if e.Condition.MinPower > 0 {
			builder.MinPower(e.Condition.MinPower)
		}
		if len(e.Condition.Sequence) > 0 {
			builder.Sequence(e.Condition.Sequence...)
		}
		for _, eff := range e.Effects {
			builder.Effect(eff)
		}
		def, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		combos = append(combos, def)
	}

	bal := game.Balance{
		VarianceEnabled:        false,
		VarianceRange:          0,
		BaseCriticalChance:     0.05,
		BaseCriticalMultiplier: 1.5,
	}
	if rc.Balance != nil {
		bal = *rc.Balance
		if bal.VarianceRange < 0 || bal.VarianceRange >= 1 {
			return nil, fmt.Errorf("config file %s: balance.variance_range must be within [0,1)", path)
		}
		if bal.BaseCriticalChance < 0 || bal.BaseCriticalChance > 1 {
			return nil, fmt.Errorf("config file %s: balance.base_critical_chance must be within [0,1]", path)
		}
		if bal.BaseCriticalMultiplier < 1 {
			return nil, fmt.Errorf("config file %s: balance.base_critical_multiplier must be >= 1", path)
		}
	}

	enc, err := buildEncounter(path, rc.Encounter)
	if err != nil {
		return nil, err
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	actionTimeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		actionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	turnEndDelay := 3 * time.Second
	if rc.TurnEndDelaySeconds > 0 {
		turnEndDelay = time.Duration(rc.TurnEndDelaySeconds) * time.Second
	}
	publicTTL := 24 * time.Hour
	if rc.PublicBattlesTTLHours > 0 {
		publicTTL = time.Duration(rc.PublicBattlesTTLHours) * time.Hour
	}

	return &LoadedConfig{
		Weapons:          rc.WeaponList,
		Combos:           combos,
		Balance:          bal,
		Encounter:        enc,
		ServerAddress:    addr,
		ActionTimeout:    actionTimeout,
		TurnEndDelay:     turnEndDelay,
		PublicBattlesTTL: publicTTL,
	}, nil
}

func buildEncounter(path string, e encounterEntry) (Encounter, error) {
	var enc Encounter
	for _, en := range e.Enemies {
		if en.Name == "" {
			return enc, fmt.Errorf("config file %s: encounter enemy missing 'name'", path)
		}
		if en.Row < 0 || en.Row >= game.RowCount {
			return enc, fmt.Errorf("config file %s: enemy '%s' row %d out of range", path, en.Name, en.Row)
		}
		if en.HitPoints <= 0 {
			return enc, fmt.Errorf("config file %s: enemy '%s' requires hit_points > 0", path, en.Name)
		}
		enc.Enemies = append(enc.Enemies, game.Enemy{
			Name:              en.Name,
			Column:            en.Column,
			Row:               en.Row,
			HitPoints:         en.HitPoints,
			MaxHitPoints:      en.HitPoints,
			Defense:           en.Defense,
			DefenseBuffFactor: 1.0,
		})
	}
	for _, g := range e.Gates {
		kind := game.GateKind(g.Kind)
		switch kind {
		case game.GateFortress, game.GateElite, game.GateNormal:
		default:
			return enc, fmt.Errorf("config file %s: gate '%s' has unknown kind '%s'", path, g.Name, g.Kind)
		}
		if g.HitPoints <= 0 {
			return enc, fmt.Errorf("config file %s: gate '%s' requires hit_points > 0", path, g.Name)
		}
		name := g.Name
		if name == "" {
			name = strings.ToUpper(g.Kind[:1]) + g.Kind[1:] + " Gate"
		}
		enc.Gates = append(enc.Gates, game.Gate{
			Name:         name,
			Kind:         kind,
			HitPoints:    g.HitPoints,
			MaxHitPoints: g.HitPoints,
		})
	}
	return enc, nil
}

// FindWeapon returns the authored weapon by name (case-insensitive), or nil.
func (c *LoadedConfig) FindWeapon(name string) *game.Weapon {
	ln := strings.ToLower(strings.TrimSpace(name))
	for i := range c.Weapons {
		if strings.ToLower(c.Weapons[i].Name) == ln {
			return &c.Weapons[i]
		}
	}
	return nil
}
