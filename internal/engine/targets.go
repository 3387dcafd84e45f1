// Package engine holds the numeric combat pipeline: target resolution over
// the battlefield grid and the damage computation it feeds.
package engine

import "github.com/avencia/gatefall/internal/game"

// TargetRequest selects targets for one weapon use. Column is consulted for
// SingleFront and Column ranges; Explicit for SingleTarget; Actor for Self.
type TargetRequest struct {
	Range    game.AttackRange
	Column   int
	Explicit game.Target
	Actor    game.Target
}

// ResolveTargets maps the weapon's attack-range category onto the concrete
// set of alive targets. Only entities with HP > 0 are included; an empty
// result is a valid outcome, not an error.
func ResolveTargets(field *game.Battlefield, req TargetRequest) []game.Target {
	switch req.Range {
	case game.RangeSingleFront:
		return singleFront(field, req.Column)
	case game.RangeSingleTarget:
		if req.Explicit != nil && req.Explicit.Alive() {
			return []game.Target{req.Explicit}
		}
		return nil
	case game.RangeRow1:
		return enemiesInRow(field, game.RowFront)
	case game.RangeRow2:
		return enemiesInRow(field, game.RowBack)
	case game.RangeColumn:
		return enemiesInColumn(field, req.Column)
	case game.RangeAll:
		out := make([]game.Target, 0, len(field.Enemies))
		for _, e := range field.Enemies {
			if e.Alive() {
				out = append(out, e)
			}
		}
		return out
	case game.RangeSelf:
		if req.Actor != nil {
			return []game.Target{req.Actor}
		}
		return nil
	default:
		return nil
	}
}

// singleFront scans the column front-to-back and returns the nearest alive
// enemy, if any.
func singleFront(field *game.Battlefield, column int) []game.Target {
	for row := 0; row < game.RowCount; row++ {
		for _, e := range field.Enemies {
			if e.Column == column && e.Row == row && e.Alive() {
				return []game.Target{e}
			}
		}
	}
	return nil
}

func enemiesInRow(field *game.Battlefield, row int) []game.Target {
	var out []game.Target
	for _, e := range field.Enemies {
		if e.Row == row && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

func enemiesInColumn(field *game.Battlefield, column int) []game.Target {
	var out []game.Target
	for _, e := range field.Enemies {
		if e.Column == column && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}
