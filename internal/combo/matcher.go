// Package combo implements the combo-matching engine: a rolling weapon-use
// history, per-definition progress tracking with timing windows, and
// resolution of completed combos into concrete effects.
package combo

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
)

var (
	ErrProgressNotFound   = errors.New("combo progress not found")
	ErrNotInterruptible   = errors.New("combo cannot be interrupted")
	ErrNoDefinitions      = errors.New("combo library is empty")
	ErrDuplicateComboName = errors.New("duplicate combo name in library")
)

// Matcher evaluates the authored combo library against incoming weapon uses.
// Definitions are evaluated independently and in library order; matching is
// non-exclusive, so one event may start, advance or complete any number of
// unrelated definitions. At most one live attempt exists per definition.
type Matcher struct {
	library []*game.ComboDefinition
	live    map[string]*game.ComboProgress
	bus     *events.Bus
	rng     *rand.Rand
	nextID  uint64
}

// NewMatcher validates the library (non-empty, unique names) and returns a
// matcher publishing lifecycle events on bus. The random source drives
// success and interruption rolls; inject a seeded one in tests.
func NewMatcher(library []*game.ComboDefinition, bus *events.Bus, rng *rand.Rand) (*Matcher, error) {
	if len(library) == 0 {
		return nil, ErrNoDefinitions
	}
	seen := make(map[string]struct{}, len(library))
	for _, d := range library {
		if _, dup := seen[d.Name]; dup {
			return nil, ErrDuplicateComboName
		}
		seen[d.Name] = struct{}{}
	}
	return &Matcher{
		library: library,
		live:    make(map[string]*game.ComboProgress),
		bus:     bus,
		rng:     rng,
	}, nil
}

// MaxTurnWindow returns the largest MaxTurnInterval across the library; the
// recorder uses it to bound the rolling history.
func (m *Matcher) MaxTurnWindow() int {
	max := 1
	for _, d := range m.library {
		if d.Condition.MaxTurnInterval > max {
			max = d.Condition.MaxTurnInterval
		}
	}
	return max
}

// Live returns snapshots of all in-flight attempts.
func (m *Matcher) Live() []game.ComboProgress {
	out := make([]game.ComboProgress, 0, len(m.live))
	for _, d := range m.library {
		if p, ok := m.live[d.Name]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// OnWeaponUse runs one event through every definition and returns the
// execution results of combos completed by it, highest display priority
// first. Lifecycle events are published as a side effect.
func (m *Matcher) OnWeaponUse(ev game.WeaponUseEvent) []*game.ComboExecutionResult {
	var completed []*game.ComboExecutionResult
	for _, def := range m.library {
		p, exists := m.live[def.Name]
		if !exists {
			if !stepMatches(def, 0, ev) {
				continue
			}
			m.nextID++
			p = &game.ComboProgress{
				ID:            m.nextID,
				Definition:    def,
				State:         game.ProgressActive,
				MatchedCount:  1,
				StepIndex:     1,
				LastMatchTurn: ev.TurnIndex,
			}
			m.live[def.Name] = p
			m.bus.Publish(events.ComboStarted{Definition: def})
			if res := m.tryComplete(p); res != nil {
				completed = append(completed, res)
			}
			continue
		}

		// Window expiry is checked before any step matching; a timed-out
		// attempt fails and this event is not re-evaluated for the
		// definition (a fresh start may happen on the next use).
		p.TurnsSinceLastMatch = ev.TurnIndex - p.LastMatchTurn
		if p.TurnsSinceLastMatch > def.Condition.MaxTurnInterval {
			m.fail(p, game.FailReasonTimeout)
			continue
		}

		if !stepMatches(def, p.StepIndex, ev) {
			continue
		}
		p.MatchedCount++
		p.StepIndex++
		p.LastMatchTurn = ev.TurnIndex
		p.TurnsSinceLastMatch = 0
		if p.MatchedCount < def.RequiredWeaponCount {
			m.publishProgress(p, p.Ratio())
			continue
		}
		// Acknowledge the step that filled the combo with the ratio held
		// going into resolution, then roll for completion.
		m.publishProgress(p, float64(p.MatchedCount-1)/float64(def.RequiredWeaponCount))
		if res := m.tryComplete(p); res != nil {
			completed = append(completed, res)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Definition.Priority > completed[j].Definition.Priority
	})
	return completed
}

// AdvanceTurn ages every live attempt to the given turn and fails the ones
// whose window has lapsed without a matching use.
func (m *Matcher) AdvanceTurn(turnIndex int) {
	for _, def := range m.library {
		p, ok := m.live[def.Name]
		if !ok {
			continue
		}
		p.TurnsSinceLastMatch = turnIndex - p.LastMatchTurn
		if p.TurnsSinceLastMatch > def.Condition.MaxTurnInterval {
			m.fail(p, game.FailReasonTimeout)
		}
	}
}

// Interrupt applies an external disruption to the attempt with the given ID.
// Returns true when the attempt was ended. A draw at or below the
// definition's resistance leaves the attempt active and unaffected.
func (m *Matcher) Interrupt(progressID uint64) (bool, error) {
	var p *game.ComboProgress
	for _, cand := range m.live {
		if cand.ID == progressID {
			p = cand
			break
		}
	}
	if p == nil {
		return false, ErrProgressNotFound
	}
	def := p.Definition
	if !def.CanInterrupt {
		return false, ErrNotInterruptible
	}
	if m.rng.Float64() <= def.InterruptResistance {
		return false, nil
	}
	p.State = game.ProgressInterrupted
	delete(m.live, def.Name)
	m.bus.Publish(events.ComboInterrupted{Definition: def})
	return true, nil
}

// tryComplete resolves a fully matched attempt: a success-rate roll decides
// between completion and "roll-failed". The attempt leaves the live set
// either way.
func (m *Matcher) tryComplete(p *game.ComboProgress) *game.ComboExecutionResult {
	def := p.Definition
	if p.MatchedCount < def.RequiredWeaponCount {
		return nil
	}
	if m.rng.Float64() >= def.Condition.SuccessRate {
		m.fail(p, game.FailReasonRollFailed)
		return nil
	}
	p.State = game.ProgressCompleted
	delete(m.live, def.Name)
	res := ResolveEffects(def)
	m.bus.Publish(events.ComboCompleted{Result: res})
	return res
}

func (m *Matcher) fail(p *game.ComboProgress, reason string) {
	p.State = game.ProgressFailed
	delete(m.live, p.Definition.Name)
	m.bus.Publish(events.ComboFailed{Definition: p.Definition, Reason: reason})
}

func (m *Matcher) publishProgress(p *game.ComboProgress, ratio float64) {
	m.bus.Publish(events.ComboProgressUpdated{
		Definition:   p.Definition,
		ProgressID:   p.ID,
		MatchedCount: p.MatchedCount,
		Required:     p.Definition.RequiredWeaponCount,
		Ratio:        ratio,
	})
}

// stepMatches tests whether the event satisfies the definition's next
// required element. Sequences demand order; every other combo type accepts
// membership in the unordered required set.
func stepMatches(def *game.ComboDefinition, stepIndex int, ev game.WeaponUseEvent) bool {
	switch def.ComboType {
	case game.ComboSequence:
		if stepIndex >= len(def.Condition.Sequence) {
			return false
		}
		return def.Condition.Sequence[stepIndex].Matches(ev)
	case game.ComboAttribute:
		return containsAttribute(def.Condition.Attributes, ev.AttackAttribute)
	case game.ComboWeapon:
		return containsWeapon(def.Condition.Weapons, ev.WeaponType)
	case game.ComboPower:
		return ev.BasePower >= def.Condition.MinPower
	case game.ComboMixed:
		if len(def.Condition.Attributes) > 0 && containsAttribute(def.Condition.Attributes, ev.AttackAttribute) {
			return true
		}
		if len(def.Condition.Weapons) > 0 && containsWeapon(def.Condition.Weapons, ev.WeaponType) {
			return true
		}
		return def.Condition.MinPower > 0 && ev.BasePower >= def.Condition.MinPower
	default:
		return false
	}
}

func containsAttribute(set []game.AttackAttribute, a game.AttackAttribute) bool {
	for _, s := range set {
		if s == a {
			return true
		}
	}
	return false
}

func containsWeapon(set []game.WeaponType, w game.WeaponType) bool {
	for _, s := range set {
		if s == w {
			return true
		}
	}
	return false
}
