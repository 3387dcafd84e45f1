package game

import "testing"

func validBuilder(name string) *DefinitionBuilder {
	return NewDefinitionBuilder(name).
		Type(ComboAttribute).
		Attributes(AttributeFire).
		RequiredCount(2).
		Window(2).
		Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})
}

func TestDefinitionBuilderValid(t *testing.T) {
	def, err := validBuilder("Blaze").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if def.Name != "Blaze" || def.RequiredWeaponCount != 2 {
		t.Errorf("definition = %+v", def)
	}
	if def.Condition.SuccessRate != 1.0 {
		t.Errorf("default success rate = %v, want 1.0", def.Condition.SuccessRate)
	}
}

func TestDefinitionBuilderRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		builder *DefinitionBuilder
	}{
		{"empty name", validBuilder("  ")},
		{"missing type", NewDefinitionBuilder("X").
			RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"zero required count", NewDefinitionBuilder("X").
			Type(ComboAttribute).Attributes(AttributeFire).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"no effects", NewDefinitionBuilder("X").
			Type(ComboAttribute).Attributes(AttributeFire).RequiredCount(1)},
		{"success rate above one", validBuilder("X").SuccessRate(1.5)},
		{"negative success rate", validBuilder("X").SuccessRate(-0.1)},
		{"resistance above one", validBuilder("X").Interruptible(1.5)},
		{"attribute combo without attributes", NewDefinitionBuilder("X").
			Type(ComboAttribute).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"weapon combo without weapons", NewDefinitionBuilder("X").
			Type(ComboWeapon).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"power combo without min power", NewDefinitionBuilder("X").
			Type(ComboPower).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"sequence length mismatch", NewDefinitionBuilder("X").
			Type(ComboSequence).RequiredCount(3).
			Sequence(SequenceStep{Weapon: WeaponSword}).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"mixed combo without sub-conditions", NewDefinitionBuilder("X").
			Type(ComboMixed).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"unknown type", NewDefinitionBuilder("X").
			Type(ComboType("fusion")).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 1.5})},
		{"multiplier factor below one", NewDefinitionBuilder("X").
			Type(ComboAttribute).Attributes(AttributeFire).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectDamageMultiplier, Factor: 0.5})},
		{"status without duration", NewDefinitionBuilder("X").
			Type(ComboAttribute).Attributes(AttributeFire).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectStatus, Attribute: AttributeIce})},
		{"unknown effect kind", NewDefinitionBuilder("X").
			Type(ComboAttribute).Attributes(AttributeFire).RequiredCount(1).
			Effect(ComboEffect{Kind: EffectKind("teleport")})},
	}
	for _, tc := range cases {
		if _, err := tc.builder.Build(); err == nil {
			t.Errorf("%s: Build succeeded, want error", tc.name)
		}
	}
}

func TestSequenceStepMatches(t *testing.T) {
	ev := WeaponUseEvent{WeaponType: WeaponSword, AttackAttribute: AttributeFire}

	if !(SequenceStep{Weapon: WeaponSword}).Matches(ev) {
		t.Errorf("weapon-only step should match")
	}
	if !(SequenceStep{Attribute: AttributeFire}).Matches(ev) {
		t.Errorf("attribute-only step should match")
	}
	if !(SequenceStep{Weapon: WeaponSword, Attribute: AttributeFire}).Matches(ev) {
		t.Errorf("both-field step should match")
	}
	if (SequenceStep{Weapon: WeaponAxe}).Matches(ev) {
		t.Errorf("wrong weapon should not match")
	}
	if (SequenceStep{Weapon: WeaponSword, Attribute: AttributeIce}).Matches(ev) {
		t.Errorf("wrong attribute should not match even with right weapon")
	}
	if (SequenceStep{}).Matches(ev) {
		t.Errorf("empty step must never match")
	}
}

func TestProgressRatio(t *testing.T) {
	def := &ComboDefinition{Name: "X", RequiredWeaponCount: 4}
	p := &ComboProgress{Definition: def, MatchedCount: 1}
	if got := p.Ratio(); got != 0.25 {
		t.Errorf("Ratio = %v, want 0.25", got)
	}
	if got := (&ComboProgress{}).Ratio(); got != 0 {
		t.Errorf("nil definition Ratio = %v, want 0", got)
	}
}

func TestGateKindFactor(t *testing.T) {
	if GateFortress.Factor() != 0.5 {
		t.Errorf("fortress factor = %v", GateFortress.Factor())
	}
	if GateElite.Factor() != 0.8 {
		t.Errorf("elite factor = %v", GateElite.Factor())
	}
	if GateNormal.Factor() != 1.0 {
		t.Errorf("normal factor = %v", GateNormal.Factor())
	}
	if GateKind("unknown").Factor() != 1.0 {
		t.Errorf("unknown kind must default to 1.0")
	}
}
