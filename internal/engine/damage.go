package engine

import (
	"math"
	"math/rand"

	"github.com/avencia/gatefall/internal/game"
)

// DamageInput carries everything one weapon-use/target computation needs.
// ComboMultiplier is supplied by the effect resolver, never computed here.
type DamageInput struct {
	BasePower       int
	Attacker        game.AttackerModifiers
	ComboMultiplier float64
	// AttachmentDamage is the flat non-combo bonus from weapon attachments.
	AttachmentDamage int
	// EffectivenessFactor scales damage by weapon-vs-target matchup; zero is
	// treated as neutral 1.0.
	EffectivenessFactor float64
	Target              game.Target
}

// ComputeDamage is the pure damage pipeline. Deterministic for a fixed
// random source. Missing weapon or target data yields a zero/neutral
// calculation tagged invalid; the function never fails.
//
// Ordered steps: flat attack bonus, optional variance, flat-defense
// mitigation (floored at 1 before any multiplier), combo damage for
// multipliers above 1, other flat/multiplicative sources, critical roll,
// and a hard floor of 1 on the final value.
func ComputeDamage(in DamageInput, bal game.Balance, rng *rand.Rand) game.DamageCalculation {
	return compute(in, bal, rng, true)
}

// ComputePreviewDamage runs the same pipeline without variance or critical
// rolls. It mutates nothing and is safe to call repeatedly; identical inputs
// produce identical results.
func ComputePreviewDamage(in DamageInput, bal game.Balance) game.DamageCalculation {
	return compute(in, bal, nil, false)
}

func compute(in DamageInput, bal game.Balance, rng *rand.Rand, committing bool) game.DamageCalculation {
	if in.BasePower <= 0 || in.Target == nil {
		return game.InvalidCalculation()
	}

	base := float64(in.BasePower + in.Attacker.FlatAttackBonus)
	if committing && bal.VarianceEnabled && bal.VarianceRange > 0 {
		spread := 1.0 - bal.VarianceRange + rng.Float64()*2*bal.VarianceRange
		base = math.Round(base * spread)
	}

	mit := in.Target.Mitigation()
	mitigated := base - float64(mit.FlatDefense)
	if mitigated < 1 {
		mitigated = 1
	}

	comboMultiplier := in.ComboMultiplier
	if comboMultiplier < 1 {
		comboMultiplier = 1
	}
	comboDamage := 0.0
	if comboMultiplier > 1 {
		comboDamage = math.Round(mitigated * (comboMultiplier - 1))
	}

	otherDamage := float64(in.AttachmentDamage)
	otherMultiplier := mit.Factor
	if otherMultiplier <= 0 {
		otherMultiplier = 1
	}
	if in.EffectivenessFactor > 0 {
		otherMultiplier *= in.EffectivenessFactor
	}

	total := math.Round((mitigated + comboDamage + otherDamage) * otherMultiplier)

	isCritical := false
	criticalMultiplier := 1.0
	if committing {
		chance := clamp01(bal.BaseCriticalChance + float64(in.Attacker.LuckModifier)*0.01)
		if rng.Float64() < chance {
			isCritical = true
			criticalMultiplier = bal.BaseCriticalMultiplier + in.Attacker.CriticalDamageModifier
			total = math.Round(total * criticalMultiplier)
		}
	}

	if total < 1 {
		total = 1
	}

	return game.DamageCalculation{
		BaseDamage:         int(mitigated),
		ComboMultiplier:    comboMultiplier,
		ComboDamage:        int(comboDamage),
		OtherMultiplier:    otherMultiplier,
		OtherDamage:        int(otherDamage),
		FinalDamage:        int(total),
		IsCritical:         isCritical,
		CriticalMultiplier: criticalMultiplier,
		Valid:              true,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
