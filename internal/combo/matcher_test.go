package combo

import (
	"math/rand"
	"testing"

	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
)

func mustBuild(t *testing.T, b *game.DefinitionBuilder) *game.ComboDefinition {
	t.Helper()
	def, err := b.Build()
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}
	return def
}

func fireDef(t *testing.T, name string, required, window int) *game.ComboDefinition {
	return mustBuild(t, game.NewDefinitionBuilder(name).
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(required).
		Window(window).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 1.5}))
}

func fireEvent(turn int) game.WeaponUseEvent {
	return game.WeaponUseEvent{
		WeaponType:      game.WeaponSword,
		AttackAttribute: game.AttributeFire,
		BasePower:       50,
		TurnIndex:       turn,
	}
}

func newTestMatcher(t *testing.T, bus *events.Bus, defs ...*game.ComboDefinition) *Matcher {
	t.Helper()
	m, err := NewMatcher(defs, bus, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}
	return m
}

func TestNewMatcherValidatesLibrary(t *testing.T) {
	bus := events.NewBus()
	if _, err := NewMatcher(nil, bus, rand.New(rand.NewSource(1))); err != ErrNoDefinitions {
		t.Errorf("empty library: got %v, want ErrNoDefinitions", err)
	}
	d := fireDef(t, "Blaze", 2, 1)
	if _, err := NewMatcher([]*game.ComboDefinition{d, d}, bus, rand.New(rand.NewSource(1))); err != ErrDuplicateComboName {
		t.Errorf("duplicate names: got %v, want ErrDuplicateComboName", err)
	}
}

func TestMatcherProgressAndCompletion(t *testing.T) {
	bus := events.NewBus()
	var published []events.Event
	bus.SubscribeAll(func(e events.Event) { published = append(published, e) })

	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 2, 2))

	res := m.OnWeaponUse(fireEvent(1))
	if len(res) != 0 {
		t.Fatalf("first event completed %d combos, want 0", len(res))
	}
	live := m.Live()
	if len(live) != 1 || live[0].MatchedCount != 1 {
		t.Fatalf("expected one live attempt with 1 match, got %+v", live)
	}

	res = m.OnWeaponUse(fireEvent(2))
	if len(res) != 1 || res[0].ComboName != "Blaze" {
		t.Fatalf("second event: got %+v, want Blaze completion", res)
	}
	if res[0].Resolved.ComboMultiplier != 1.5 {
		t.Errorf("multiplier = %v, want 1.5", res[0].Resolved.ComboMultiplier)
	}
	if len(m.Live()) != 0 {
		t.Errorf("completed attempt still live")
	}

	// Lifecycle: started, progress at 0.5 for the filling step, completed.
	var names []string
	for _, e := range published {
		names = append(names, e.EventName())
	}
	want := []string{
		events.NameComboStarted,
		events.NameComboProgressUpdate,
		events.NameComboCompleted,
	}
	if len(names) != len(want) {
		t.Fatalf("published %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("published %v, want %v", names, want)
		}
	}
	prog := published[1].(events.ComboProgressUpdated)
	if prog.Ratio != 0.5 {
		t.Errorf("progress ratio = %v, want 0.5", prog.Ratio)
	}
}

func TestMatcherTimeoutBeforeStepMatch(t *testing.T) {
	bus := events.NewBus()
	var failed []events.ComboFailed
	bus.Subscribe(events.NameComboFailed, func(e events.Event) {
		failed = append(failed, e.(events.ComboFailed))
	})

	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 2, 1))
	m.OnWeaponUse(fireEvent(1))

	// Turn 3 is outside the 1-turn window: the attempt fails on timeout and
	// the same event does not restart the definition.
	res := m.OnWeaponUse(fireEvent(3))
	if len(res) != 0 {
		t.Fatalf("timed-out attempt completed: %+v", res)
	}
	if len(failed) != 1 || failed[0].Reason != game.FailReasonTimeout {
		t.Fatalf("failed events = %+v, want one timeout", failed)
	}
	if len(m.Live()) != 0 {
		t.Errorf("timed-out attempt still live")
	}

	// The next matching use starts a fresh attempt.
	m.OnWeaponUse(fireEvent(4))
	if len(m.Live()) != 1 {
		t.Errorf("expected fresh attempt after timeout")
	}
}

func TestMatcherAdvanceTurnFailsLapsedWindows(t *testing.T) {
	bus := events.NewBus()
	var failed []events.ComboFailed
	bus.Subscribe(events.NameComboFailed, func(e events.Event) {
		failed = append(failed, e.(events.ComboFailed))
	})

	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 3, 1))
	m.OnWeaponUse(fireEvent(1))

	m.AdvanceTurn(2)
	if len(failed) != 0 {
		t.Fatalf("attempt failed inside its window")
	}
	m.AdvanceTurn(3)
	if len(failed) != 1 || failed[0].Reason != game.FailReasonTimeout {
		t.Fatalf("failed events = %+v, want one timeout", failed)
	}
}

func TestMatcherSuccessRateRoll(t *testing.T) {
	bus := events.NewBus()
	var failed []events.ComboFailed
	bus.Subscribe(events.NameComboFailed, func(e events.Event) {
		failed = append(failed, e.(events.ComboFailed))
	})

	def := mustBuild(t, game.NewDefinitionBuilder("Gamble").
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(1).
		Window(1).
		SuccessRate(0).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 2.0}))
	m := newTestMatcher(t, bus, def)

	res := m.OnWeaponUse(fireEvent(1))
	if len(res) != 0 {
		t.Fatalf("zero success rate completed a combo")
	}
	if len(failed) != 1 || failed[0].Reason != game.FailReasonRollFailed {
		t.Fatalf("failed events = %+v, want one roll-failed", failed)
	}
	if len(m.Live()) != 0 {
		t.Errorf("roll-failed attempt still live")
	}
}

func TestMatcherSequenceOrder(t *testing.T) {
	bus := events.NewBus()
	def := mustBuild(t, game.NewDefinitionBuilder("One-Two").
		Type(game.ComboSequence).
		Sequence(
			game.SequenceStep{Weapon: game.WeaponSword},
			game.SequenceStep{Weapon: game.WeaponAxe},
		).
		RequiredCount(2).
		Window(2).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 1.3}))
	m := newTestMatcher(t, bus, def)

	axe := game.WeaponUseEvent{WeaponType: game.WeaponAxe, BasePower: 40, TurnIndex: 1}
	sword := game.WeaponUseEvent{WeaponType: game.WeaponSword, BasePower: 40, TurnIndex: 1}

	// Out of order: the axe cannot open the sequence.
	if m.OnWeaponUse(axe); len(m.Live()) != 0 {
		t.Fatalf("sequence started on wrong first step")
	}
	m.OnWeaponUse(sword)
	if len(m.Live()) != 1 {
		t.Fatalf("sequence did not start on its first step")
	}
	axe.TurnIndex = 2
	res := m.OnWeaponUse(axe)
	if len(res) != 1 || res[0].ComboName != "One-Two" {
		t.Fatalf("ordered steps did not complete the sequence: %+v", res)
	}
}

func TestMatcherNonExclusiveCompletionOrderedByPriority(t *testing.T) {
	bus := events.NewBus()
	low := mustBuild(t, game.NewDefinitionBuilder("Ember").
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(1).
		Priority(1).
		Window(1).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 1.1}))
	high := mustBuild(t, game.NewDefinitionBuilder("Inferno").
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(1).
		Priority(5).
		Window(1).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 2.0}))
	m := newTestMatcher(t, bus, low, high)

	res := m.OnWeaponUse(fireEvent(1))
	if len(res) != 2 {
		t.Fatalf("got %d completions, want both definitions", len(res))
	}
	if res[0].ComboName != "Inferno" || res[1].ComboName != "Ember" {
		t.Errorf("completions not ordered by priority: %s, %s", res[0].ComboName, res[1].ComboName)
	}
}

func TestMatcherInterrupt(t *testing.T) {
	bus := events.NewBus()
	fragile := mustBuild(t, game.NewDefinitionBuilder("Fragile").
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(3).
		Window(3).
		Interruptible(0).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 1.5}))
	m := newTestMatcher(t, bus, fragile)

	var interrupted []events.ComboInterrupted
	bus.Subscribe(events.NameComboInterrupted, func(e events.Event) {
		interrupted = append(interrupted, e.(events.ComboInterrupted))
	})

	m.OnWeaponUse(fireEvent(1))
	id := m.Live()[0].ID

	ok, err := m.Interrupt(id)
	if err != nil || !ok {
		t.Fatalf("Interrupt = %v, %v; want ended attempt", ok, err)
	}
	if len(interrupted) != 1 {
		t.Errorf("no ComboInterrupted event published")
	}
	if len(m.Live()) != 0 {
		t.Errorf("interrupted attempt still live")
	}

	if _, err := m.Interrupt(id); err != ErrProgressNotFound {
		t.Errorf("stale id: got %v, want ErrProgressNotFound", err)
	}
}

func TestMatcherInterruptResistanceSurvives(t *testing.T) {
	bus := events.NewBus()
	tough := mustBuild(t, game.NewDefinitionBuilder("Tough").
		Type(game.ComboAttribute).
		Attributes(game.AttributeFire).
		RequiredCount(3).
		Window(3).
		Interruptible(1.0).
		Effect(game.ComboEffect{Kind: game.EffectDamageMultiplier, Factor: 1.5}))
	m := newTestMatcher(t, bus, tough)

	m.OnWeaponUse(fireEvent(1))
	id := m.Live()[0].ID

	// Resistance 1.0 means every draw survives.
	ok, err := m.Interrupt(id)
	if err != nil {
		t.Fatalf("Interrupt: %v", err)
	}
	if ok {
		t.Fatalf("fully resistant attempt was interrupted")
	}
	live := m.Live()
	if len(live) != 1 || live[0].MatchedCount != 1 {
		t.Errorf("surviving attempt lost state: %+v", live)
	}
}

func TestMatcherInterruptNotInterruptible(t *testing.T) {
	bus := events.NewBus()
	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 3, 3))
	m.OnWeaponUse(fireEvent(1))
	id := m.Live()[0].ID

	if _, err := m.Interrupt(id); err != ErrNotInterruptible {
		t.Errorf("got %v, want ErrNotInterruptible", err)
	}
}

func TestMatcherCompletionAlwaysPublishesResult(t *testing.T) {
	bus := events.NewBus()
	var completed []events.ComboCompleted
	bus.Subscribe(events.NameComboCompleted, func(e events.Event) {
		completed = append(completed, e.(events.ComboCompleted))
	})

	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 1, 1))
	res := m.OnWeaponUse(fireEvent(1))

	if len(res) != 1 || len(completed) != 1 {
		t.Fatalf("results %d, events %d; want 1 and 1", len(res), len(completed))
	}
	if completed[0].Result != res[0] {
		t.Errorf("published result differs from returned result")
	}
	if !res[0].Success {
		t.Errorf("completed result not marked successful")
	}
}
