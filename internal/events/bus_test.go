package events

import "testing"

func TestBusDeliversInSubscribeOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	bus.Subscribe(NameComboStarted, func(Event) { order = append(order, 1) })
	bus.Subscribe(NameComboStarted, func(Event) { order = append(order, 2) })
	bus.Subscribe(NameComboFailed, func(Event) { order = append(order, 99) })

	bus.Publish(ComboStarted{})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("delivery order = %v, want [1 2]", order)
	}
}

func TestBusWildcardSeesEverything(t *testing.T) {
	bus := NewBus()
	var seen []string
	bus.SubscribeAll(func(e Event) { seen = append(seen, e.EventName()) })

	bus.Publish(ComboStarted{})
	bus.Publish(ComboFailed{Reason: "timeout"})

	if len(seen) != 2 || seen[0] != NameComboStarted || seen[1] != NameComboFailed {
		t.Fatalf("wildcard saw %v", seen)
	}
}

func TestBusPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	// Must not panic.
	bus.Publish(DamageDealt{})
}
