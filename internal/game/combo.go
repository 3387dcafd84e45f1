package game

import (
	"errors"
	"fmt"
	"strings"
)

// ComboType tags the condition variant of a definition.
type ComboType string

const (
	ComboAttribute ComboType = "attribute"
	ComboSequence  ComboType = "sequence"
	ComboWeapon    ComboType = "weapon"
	ComboPower     ComboType = "power"
	ComboMixed     ComboType = "mixed"
)

// SequenceStep is one required element of an ordered sequence condition.
// Either Attribute or Weapon (or both) must be set; a step matches an event
// when every set field matches.
type SequenceStep struct {
	Attribute AttackAttribute `json:"attribute,omitempty"`
	Weapon    WeaponType      `json:"weapon,omitempty"`
}

// Matches reports whether the event satisfies this step.
func (s SequenceStep) Matches(ev WeaponUseEvent) bool {
	if s.Attribute == "" && s.Weapon == "" {
		return false
	}
	if s.Attribute != "" && ev.AttackAttribute != s.Attribute {
		return false
	}
	if s.Weapon != "" && ev.WeaponType != s.Weapon {
		return false
	}
	return true
}

// ComboCondition describes what a definition requires from the weapon-use
// history. Which fields are meaningful depends on the combo type; Mixed may
// combine any of them.
type ComboCondition struct {
	Attributes []AttackAttribute `json:"attributes,omitempty"`
	Weapons    []WeaponType      `json:"weapons,omitempty"`
	MinPower   int               `json:"min_power,omitempty"`
	Sequence   []SequenceStep    `json:"sequence,omitempty"`

	// MaxTurnInterval is the maximum number of turns allowed between two
	// matching uses within one attempt.
	MaxTurnInterval int `json:"max_turn_interval"`
	// SuccessRate is the probability that a fully matched combo resolves.
	SuccessRate float64 `json:"success_rate"`
}

// EffectKind tags the effect variant.
type EffectKind string

const (
	EffectDamageMultiplier EffectKind = "damage_multiplier"
	EffectStatus           EffectKind = "status_effect"
	EffectAdditionalAction EffectKind = "additional_action"
	EffectSpecialAttack    EffectKind = "special_attack"
	EffectBuffPlayer       EffectKind = "buff_player"
	EffectDebuffEnemy      EffectKind = "debuff_enemy"
	EffectHealing          EffectKind = "healing"
)

// ComboEffect is one declared effect of a completed combo. Only the fields
// relevant to the kind are set.
type ComboEffect struct {
	Kind      EffectKind      `json:"kind"`
	Factor    float64         `json:"factor,omitempty"`    // damage_multiplier
	Value     int             `json:"value,omitempty"`     // buff_player / debuff_enemy
	Duration  int             `json:"duration,omitempty"`  // status / buff / debuff, in turns
	Count     int             `json:"count,omitempty"`     // additional_action
	Amount    int             `json:"amount,omitempty"`    // healing
	Attribute AttackAttribute `json:"attribute,omitempty"` // status_effect
	Special   string          `json:"special,omitempty"`   // special_attack kind
}

// ComboDefinition is the authored, read-only description of a combo. Build
// instances through DefinitionBuilder so invalid content is rejected at
// construction rather than discovered mid-battle.
type ComboDefinition struct {
	Name                string         `json:"name"`
	ComboType           ComboType      `json:"combo_type"`
	Condition           ComboCondition `json:"condition"`
	Effects             []ComboEffect  `json:"effects"`
	RequiredWeaponCount int            `json:"required_weapon_count"`
	CanInterrupt        bool           `json:"can_interrupt"`
	// InterruptResistance is the probability of surviving an interruption
	// attempt: a uniform draw strictly above it ends the combo.
	InterruptResistance float64 `json:"interrupt_resistance"`
	// Priority orders simultaneously completed combos for display. It never
	// suppresses another definition's completion.
	Priority int `json:"priority"`
}

// ProgressState is the lifecycle state of one combo attempt.
type ProgressState string

const (
	ProgressActive      ProgressState = "active"
	ProgressCompleted   ProgressState = "completed"
	ProgressFailed      ProgressState = "failed"
	ProgressInterrupted ProgressState = "interrupted"
)

// Failure reasons surfaced on ComboFailed events.
const (
	FailReasonTimeout    = "timeout"
	FailReasonRollFailed = "roll-failed"
)

// ComboProgress tracks one in-flight attempt of a definition. Owned
// exclusively by the matcher; removed from the live set on any terminal state.
type ComboProgress struct {
	ID                  uint64           `json:"id"`
	Definition          *ComboDefinition `json:"-"`
	State               ProgressState    `json:"state"`
	MatchedCount        int              `json:"matched_count"`
	TurnsSinceLastMatch int              `json:"turns_since_last_match"`
	// StepIndex is the next required element for sequence combos only.
	StepIndex     int `json:"step_index"`
	LastMatchTurn int `json:"last_match_turn"`
}

// Ratio returns matched progress as a fraction of the required count.
func (p *ComboProgress) Ratio() float64 {
	if p.Definition == nil || p.Definition.RequiredWeaponCount == 0 {
		return 0
	}
	return float64(p.MatchedCount) / float64(p.Definition.RequiredWeaponCount)
}

// TimedModifier is a value applied for a number of turns (player buffs and
// enemy debuffs resolved from combo effects).
type TimedModifier struct {
	Value    int `json:"value"`
	Duration int `json:"duration"`
}

// AppliedStatus is an elemental status granted by a combo effect.
type AppliedStatus struct {
	Attribute AttackAttribute `json:"attribute"`
	Duration  int             `json:"duration"`
}

// ResolvedEffects is the flattened, machine-consumable form of a completed
// combo's effect list.
type ResolvedEffects struct {
	// ComboMultiplier is the product of all damage multiplier factors,
	// never below 1.0.
	ComboMultiplier float64         `json:"combo_multiplier"`
	ExtraActions    int             `json:"extra_actions"`
	Healing         int             `json:"healing"`
	SpecialAttacks  []string        `json:"special_attacks,omitempty"`
	PlayerBuffs     []TimedModifier `json:"player_buffs,omitempty"`
	EnemyDebuffs    []TimedModifier `json:"enemy_debuffs,omitempty"`
	Statuses        []AppliedStatus `json:"statuses,omitempty"`
}

// ComboExecutionResult is produced once per completion and never mutated.
type ComboExecutionResult struct {
	Definition *ComboDefinition `json:"-"`
	ComboName  string           `json:"combo_name"`
	Resolved   ResolvedEffects  `json:"resolved"`
	Success    bool             `json:"success"`
}

// --- Builder -----------------------------------------------------------

// DefinitionBuilder assembles a ComboDefinition through a typed, validated
// interface. Build returns an error instead of producing a half-formed
// definition.
type DefinitionBuilder struct {
	def ComboDefinition
}

func NewDefinitionBuilder(name string) *DefinitionBuilder {
	b := &DefinitionBuilder{}
	b.def.Name = strings.TrimSpace(name)
	b.def.Condition.SuccessRate = 1.0
	b.def.Condition.MaxTurnInterval = 1
	b.def.InterruptResistance = 0
	return b
}

func (b *DefinitionBuilder) Type(t ComboType) *DefinitionBuilder {
	b.def.ComboType = t
	return b
}

func (b *DefinitionBuilder) Priority(p int) *DefinitionBuilder {
	b.def.Priority = p
	return b
}

func (b *DefinitionBuilder) RequiredCount(n int) *DefinitionBuilder {
	b.def.RequiredWeaponCount = n
	return b
}

func (b *DefinitionBuilder) Attributes(attrs ...AttackAttribute) *DefinitionBuilder {
	b.def.Condition.Attributes = append(b.def.Condition.Attributes, attrs...)
	return b
}

func (b *DefinitionBuilder) Weapons(ws ...WeaponType) *DefinitionBuilder {
	b.def.Condition.Weapons = append(b.def.Condition.Weapons, ws...)
	return b
}

func (b *DefinitionBuilder) MinPower(p int) *DefinitionBuilder {
	b.def.Condition.MinPower = p
	return b
}

func (b *DefinitionBuilder) Sequence(steps ...SequenceStep) *DefinitionBuilder {
	b.def.Condition.Sequence = append(b.def.Condition.Sequence, steps...)
	return b
}

func (b *DefinitionBuilder) Window(maxTurnInterval int) *DefinitionBuilder {
	b.def.Condition.MaxTurnInterval = maxTurnInterval
	return b
}

func (b *DefinitionBuilder) SuccessRate(rate float64) *DefinitionBuilder {
	b.def.Condition.SuccessRate = rate
	return b
}

func (b *DefinitionBuilder) Interruptible(resistance float64) *DefinitionBuilder {
	b.def.CanInterrupt = true
	b.def.InterruptResistance = resistance
	return b
}

func (b *DefinitionBuilder) Effect(e ComboEffect) *DefinitionBuilder {
	b.def.Effects = append(b.def.Effects, e)
	return b
}

var (
	ErrDefinitionName      = errors.New("combo definition requires a name")
	ErrDefinitionNoEffects = errors.New("combo definition requires at least one effect")
)

// Build validates the assembled definition and returns it. The returned
// definition is independent of the builder and safe to keep read-only.
func (b *DefinitionBuilder) Build() (*ComboDefinition, error) {
	d := b.def
	if d.Name == "" {
		return nil, ErrDefinitionName
	}
	if d.ComboType == "" {
		return nil, fmt.Errorf("combo '%s': missing combo_type", d.Name)
	}
	if d.RequiredWeaponCount < 1 {
		return nil, fmt.Errorf("combo '%s': required_weapon_count must be >= 1", d.Name)
	}
	if d.Condition.MaxTurnInterval < 1 {
		return nil, fmt.Errorf("combo '%s': max_turn_interval must be >= 1", d.Name)
	}
	if d.Condition.SuccessRate < 0 || d.Condition.SuccessRate > 1 {
		return nil, fmt.Errorf("combo '%s': success_rate must be within [0,1]", d.Name)
	}
	if d.InterruptResistance < 0 || d.InterruptResistance > 1 {
		return nil, fmt.Errorf("combo '%s': interrupt_resistance must be within [0,1]", d.Name)
	}
	if len(d.Effects) == 0 {
		return nil, ErrDefinitionNoEffects
	}
	switch d.ComboType {
	case ComboAttribute:
		if len(d.Condition.Attributes) == 0 {
			return nil, fmt.Errorf("combo '%s': attribute combo requires attributes", d.Name)
		}
	case ComboWeapon:
		if len(d.Condition.Weapons) == 0 {
			return nil, fmt.Errorf("combo '%s': weapon combo requires weapons", d.Name)
		}
	case ComboPower:
		if d.Condition.MinPower <= 0 {
			return nil, fmt.Errorf("combo '%s': power combo requires min_power > 0", d.Name)
		}
	case ComboSequence:
		if len(d.Condition.Sequence) == 0 {
			return nil, fmt.Errorf("combo '%s': sequence combo requires a sequence", d.Name)
		}
		if len(d.Condition.Sequence) != d.RequiredWeaponCount {
			return nil, fmt.Errorf("combo '%s': sequence length %d must equal required_weapon_count %d",
				d.Name, len(d.Condition.Sequence), d.RequiredWeaponCount)
		}
	case ComboMixed:
		if len(d.Condition.Attributes) == 0 && len(d.Condition.Weapons) == 0 && d.Condition.MinPower <= 0 {
			return nil, fmt.Errorf("combo '%s': mixed combo requires at least one sub-condition", d.Name)
		}
	default:
		return nil, fmt.Errorf("combo '%s': unknown combo_type '%s'", d.Name, d.ComboType)
	}
	for i, e := range d.Effects {
		if err := validateEffect(e); err != nil {
			return nil, fmt.Errorf("combo '%s': effect %d: %w", d.Name, i, err)
		}
	}
	return &d, nil
}

func validateEffect(e ComboEffect) error {
	switch e.Kind {
	case EffectDamageMultiplier:
		if e.Factor < 1 {
			return fmt.Errorf("damage multiplier factor %.2f must be >= 1", e.Factor)
		}
	case EffectStatus:
		if e.Attribute == "" || e.Duration < 1 {
			return errors.New("status effect requires attribute and duration >= 1")
		}
	case EffectAdditionalAction:
		if e.Count < 1 {
			return errors.New("additional action requires count >= 1")
		}
	case EffectSpecialAttack:
		if e.Special == "" {
			return errors.New("special attack requires a kind")
		}
	case EffectBuffPlayer, EffectDebuffEnemy:
		if e.Value == 0 || e.Duration < 1 {
			return errors.New("buff/debuff requires value and duration >= 1")
		}
	case EffectHealing:
		if e.Amount < 1 {
			return errors.New("healing requires amount >= 1")
		}
	default:
		return fmt.Errorf("unknown effect kind '%s'", e.Kind)
	}
	return nil
}
