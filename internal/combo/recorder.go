package combo

import (
	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
)

// Recorder keeps the bounded rolling history of weapon uses and forwards
// each one to the matcher. The history and the live progress set are owned
// exclusively by this recorder/matcher pair.
type Recorder struct {
	history []game.WeaponUseEvent
	window  int
	matcher *Matcher
	bus     *events.Bus
}

// NewRecorder sizes the rolling window from the matcher's library: an event
// is retained only while some definition could still reference it.
func NewRecorder(m *Matcher, bus *events.Bus) *Recorder {
	return &Recorder{
		history: make([]game.WeaponUseEvent, 0, 32),
		window:  m.MaxTurnWindow(),
		matcher: m,
		bus:     bus,
	}
}

// RecordUse appends the event and runs it through the matcher, returning the
// combos it completed. Recording never fails: an event with an unknown
// weapon or attribute is stored as-is and simply matches nothing downstream.
func (r *Recorder) RecordUse(ev game.WeaponUseEvent) []*game.ComboExecutionResult {
	r.history = append(r.history, ev)
	r.trim(ev.TurnIndex)
	r.bus.Publish(events.WeaponUseRecorded{Event: ev})
	return r.matcher.OnWeaponUse(ev)
}

// History returns a copy of the retained events in recording order.
func (r *Recorder) History() []game.WeaponUseEvent {
	out := make([]game.WeaponUseEvent, len(r.history))
	copy(out, r.history)
	return out
}

// trim discards events older than the largest combo window relative to the
// given turn. History is recorded in turn order, so a single scan from the
// front suffices.
func (r *Recorder) trim(turnIndex int) {
	cut := 0
	for cut < len(r.history) && turnIndex-r.history[cut].TurnIndex > r.window {
		cut++
	}
	if cut > 0 {
		r.history = append(r.history[:0], r.history[cut:]...)
	}
}
