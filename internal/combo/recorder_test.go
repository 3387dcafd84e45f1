package combo

import (
	"testing"

	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
)

func TestRecorderTrimsHistoryToLargestWindow(t *testing.T) {
	bus := events.NewBus()
	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 3, 2))
	r := NewRecorder(m, bus)

	r.RecordUse(fireEvent(1))
	r.RecordUse(fireEvent(2))
	r.RecordUse(fireEvent(5))

	hist := r.History()
	// Events more than 2 turns older than turn 5 are gone.
	if len(hist) != 1 || hist[0].TurnIndex != 5 {
		t.Fatalf("history = %+v, want only the turn-5 event", hist)
	}
}

func TestRecorderKeepsEventsInsideWindow(t *testing.T) {
	bus := events.NewBus()
	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 5, 3))
	r := NewRecorder(m, bus)

	for turn := 1; turn <= 4; turn++ {
		r.RecordUse(fireEvent(turn))
	}
	if got := len(r.History()); got != 4 {
		t.Fatalf("history length = %d, want 4 (all within window)", got)
	}
}

func TestRecorderPublishesAndReturnsCompletions(t *testing.T) {
	bus := events.NewBus()
	var recorded []events.WeaponUseRecorded
	bus.Subscribe(events.NameWeaponUseRecorded, func(e events.Event) {
		recorded = append(recorded, e.(events.WeaponUseRecorded))
	})

	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 1, 1))
	r := NewRecorder(m, bus)

	res := r.RecordUse(fireEvent(1))
	if len(res) != 1 || res[0].ComboName != "Blaze" {
		t.Fatalf("completions = %+v, want Blaze", res)
	}
	if len(recorded) != 1 || recorded[0].Event.TurnIndex != 1 {
		t.Fatalf("recorded events = %+v, want the turn-1 use", recorded)
	}
}

func TestRecorderAcceptsUnknownWeaponData(t *testing.T) {
	bus := events.NewBus()
	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 1, 1))
	r := NewRecorder(m, bus)

	// Unknown weapon: empty type and attribute, zero power. Recording never
	// fails and the event matches nothing.
	res := r.RecordUse(game.WeaponUseEvent{TurnIndex: 1})
	if len(res) != 0 {
		t.Fatalf("neutral event completed combos: %+v", res)
	}
	if len(r.History()) != 1 {
		t.Fatalf("neutral event was not recorded")
	}
	if len(m.Live()) != 0 {
		t.Fatalf("neutral event started an attempt")
	}
}

func TestRecorderHistoryReturnsCopy(t *testing.T) {
	bus := events.NewBus()
	m := newTestMatcher(t, bus, fireDef(t, "Blaze", 5, 3))
	r := NewRecorder(m, bus)
	r.RecordUse(fireEvent(1))

	hist := r.History()
	hist[0].TurnIndex = 99
	if r.History()[0].TurnIndex != 1 {
		t.Errorf("mutating the returned history leaked into the recorder")
	}
}
