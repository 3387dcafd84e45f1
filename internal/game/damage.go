package game

// DamageCalculation is the structured breakdown of one weapon-use/target
// pair. Constructed by the damage pipeline and immutable afterwards; owned by
// the caller that requested the computation.
type DamageCalculation struct {
	BaseDamage         int     `json:"base_damage"`
	ComboMultiplier    float64 `json:"combo_multiplier"`
	ComboDamage        int     `json:"combo_damage"`
	OtherMultiplier    float64 `json:"other_multiplier"`
	OtherDamage        int     `json:"other_damage"`
	FinalDamage        int     `json:"final_damage"`
	IsCritical         bool    `json:"is_critical"`
	CriticalMultiplier float64 `json:"critical_multiplier"`
	// Valid is false when weapon or card data was missing; the calculation is
	// then zero/neutral and must not be applied.
	Valid bool `json:"valid"`
}

// InvalidCalculation is the tagged zero/neutral result returned for missing
// or malformed input. Callers inspect Valid instead of handling errors.
func InvalidCalculation() DamageCalculation {
	return DamageCalculation{ComboMultiplier: 1, OtherMultiplier: 1, CriticalMultiplier: 1}
}

// DamagePreviewInfo is the non-committing preview of a weapon use against the
// targets it would currently resolve to. Produced by the same pipeline with
// variance and critical rolls disabled; computing it mutates nothing.
type DamagePreviewInfo struct {
	WeaponName     string              `json:"weapon_name"`
	Targets        []TargetPreview     `json:"targets"`
	NoValidTargets bool                `json:"no_valid_targets"`
}

// TargetPreview pairs one resolved target with its projected damage.
type TargetPreview struct {
	TargetName  string            `json:"target_name"`
	Calculation DamageCalculation `json:"calculation"`
}
