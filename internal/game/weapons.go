package game

// WeaponType identifies the broad weapon category used by combo conditions.
// Using a dedicated type instead of plain string makes code safer and self-documenting.
type WeaponType string

const (
	WeaponSword    WeaponType = "sword"
	WeaponAxe      WeaponType = "axe"
	WeaponSpear    WeaponType = "spear"
	WeaponBow      WeaponType = "bow"
	WeaponCannon   WeaponType = "cannon"
	WeaponGrimoire WeaponType = "grimoire"
	WeaponShield   WeaponType = "shield"
)

// AttackAttribute is the elemental attribute carried by a weapon use.
type AttackAttribute string

const (
	AttributeNone      AttackAttribute = "none"
	AttributeFire      AttackAttribute = "fire"
	AttributeIce       AttackAttribute = "ice"
	AttributeLightning AttackAttribute = "lightning"
	AttributeWind      AttackAttribute = "wind"
	AttributeLight     AttackAttribute = "light"
	AttributeDark      AttackAttribute = "dark"
)

// AttackRange is the targeting category of a weapon.
type AttackRange string

const (
	RangeSingleFront  AttackRange = "single_front"
	RangeSingleTarget AttackRange = "single_target"
	RangeRow1         AttackRange = "row1"
	RangeRow2         AttackRange = "row2"
	RangeColumn       AttackRange = "column"
	RangeAll          AttackRange = "all"
	RangeSelf         AttackRange = "self"
)

// Weapon is an authored weapon card. Stats come from the server config
// (gatefall_config.json) and are never persisted.
type Weapon struct {
	Name            string          `json:"name"`
	WeaponType      WeaponType      `json:"weapon_type"`
	AttackAttribute AttackAttribute `json:"attack_attribute"`
	BasePower       int             `json:"base_power"`
	AttackRange     AttackRange     `json:"attack_range"`
	// AttachmentDamage is a flat non-combo bonus granted by fitted attachments.
	AttachmentDamage int `json:"attachment_damage"`
	// EffectivenessFactor scales damage by weapon-vs-target matchup.
	// Zero means "unset" and is treated as 1.0 by the damage pipeline.
	EffectivenessFactor float64 `json:"effectiveness_factor"`
}

// WeaponUseEvent records a single weapon use. Immutable once recorded; the
// recorder keeps it only while some combo definition could still reference it.
type WeaponUseEvent struct {
	WeaponType      WeaponType      `json:"weapon_type"`
	AttackAttribute AttackAttribute `json:"attack_attribute"`
	BasePower       int             `json:"base_power"`
	TurnIndex       int             `json:"turn_index"`
}

// AttackerModifiers carries the attacker-side numbers the damage pipeline
// consumes. All fields default to neutral values.
type AttackerModifiers struct {
	FlatAttackBonus        int     `json:"flat_attack_bonus"`
	LuckModifier           int     `json:"luck_modifier"`
	CriticalDamageModifier float64 `json:"critical_damage_modifier"`
}

// Balance holds the tunable combat numbers loaded from config.
type Balance struct {
	VarianceEnabled        bool    `json:"variance_enabled"`
	VarianceRange          float64 `json:"variance_range"`
	BaseCriticalChance     float64 `json:"base_critical_chance"`
	BaseCriticalMultiplier float64 `json:"base_critical_multiplier"`
}
