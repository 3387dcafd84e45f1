package combo

import (
	"testing"

	"github.com/avencia/gatefall/internal/game"
)

func TestResolveEffectsMultiplierProduct(t *testing.T) {
	def := &game.ComboDefinition{
		Name: "Stacked",
		Effects: []game.ComboEffect{
			{Kind: game.EffectDamageMultiplier, Factor: 1.5},
			{Kind: game.EffectDamageMultiplier, Factor: 2.0},
		},
	}
	res := ResolveEffects(def)
	if res.Resolved.ComboMultiplier != 3.0 {
		t.Errorf("multiplier = %v, want 3.0", res.Resolved.ComboMultiplier)
	}
	if !res.Success || res.ComboName != "Stacked" {
		t.Errorf("result = %+v, want successful Stacked", res)
	}
}

func TestResolveEffectsMultiplierNeverBelowOne(t *testing.T) {
	def := &game.ComboDefinition{
		Name: "Weak",
		Effects: []game.ComboEffect{
			{Kind: game.EffectDamageMultiplier, Factor: 0.5},
		},
	}
	if got := ResolveEffects(def).Resolved.ComboMultiplier; got != 1.0 {
		t.Errorf("multiplier = %v, want floor of 1.0", got)
	}
}

func TestResolveEffectsAggregatesAllKinds(t *testing.T) {
	def := &game.ComboDefinition{
		Name: "Everything",
		Effects: []game.ComboEffect{
			{Kind: game.EffectAdditionalAction, Count: 1},
			{Kind: game.EffectAdditionalAction, Count: 2},
			{Kind: game.EffectHealing, Amount: 15},
			{Kind: game.EffectSpecialAttack, Special: "meteor"},
			{Kind: game.EffectBuffPlayer, Value: 10, Duration: 2},
			{Kind: game.EffectDebuffEnemy, Value: 5, Duration: 3},
			{Kind: game.EffectStatus, Attribute: game.AttributeFire, Duration: 2},
		},
	}
	res := ResolveEffects(def).Resolved

	if res.ExtraActions != 3 {
		t.Errorf("ExtraActions = %d, want 3", res.ExtraActions)
	}
	if res.Healing != 15 {
		t.Errorf("Healing = %d, want 15", res.Healing)
	}
	if len(res.SpecialAttacks) != 1 || res.SpecialAttacks[0] != "meteor" {
		t.Errorf("SpecialAttacks = %v", res.SpecialAttacks)
	}
	if len(res.PlayerBuffs) != 1 || res.PlayerBuffs[0].Value != 10 || res.PlayerBuffs[0].Duration != 2 {
		t.Errorf("PlayerBuffs = %+v", res.PlayerBuffs)
	}
	if len(res.EnemyDebuffs) != 1 || res.EnemyDebuffs[0].Value != 5 {
		t.Errorf("EnemyDebuffs = %+v", res.EnemyDebuffs)
	}
	if len(res.Statuses) != 1 || res.Statuses[0].Attribute != game.AttributeFire {
		t.Errorf("Statuses = %+v", res.Statuses)
	}
	if res.ComboMultiplier != 1.0 {
		t.Errorf("multiplier = %v, want neutral 1.0", res.ComboMultiplier)
	}
}
