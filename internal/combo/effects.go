package combo

import "github.com/avencia/gatefall/internal/game"

// ResolveEffects flattens a completed definition's declared effects into the
// inputs the damage pipeline and the turn layer consume. The multiplier is
// the product of all damage-multiplier factors and never drops below 1.0.
func ResolveEffects(def *game.ComboDefinition) *game.ComboExecutionResult {
	resolved := game.ResolvedEffects{ComboMultiplier: 1.0}
	for _, e := range def.Effects {
		switch e.Kind {
		case game.EffectDamageMultiplier:
			resolved.ComboMultiplier *= e.Factor
		case game.EffectAdditionalAction:
			resolved.ExtraActions += e.Count
		case game.EffectHealing:
			resolved.Healing += e.Amount
		case game.EffectSpecialAttack:
			resolved.SpecialAttacks = append(resolved.SpecialAttacks, e.Special)
		case game.EffectBuffPlayer:
			resolved.PlayerBuffs = append(resolved.PlayerBuffs, game.TimedModifier{Value: e.Value, Duration: e.Duration})
		case game.EffectDebuffEnemy:
			resolved.EnemyDebuffs = append(resolved.EnemyDebuffs, game.TimedModifier{Value: e.Value, Duration: e.Duration})
		case game.EffectStatus:
			resolved.Statuses = append(resolved.Statuses, game.AppliedStatus{Attribute: e.Attribute, Duration: e.Duration})
		}
	}
	if resolved.ComboMultiplier < 1.0 {
		resolved.ComboMultiplier = 1.0
	}
	return &game.ComboExecutionResult{
		Definition: def,
		ComboName:  def.Name,
		Resolved:   resolved,
		Success:    true,
	}
}
