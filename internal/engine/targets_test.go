package engine

import (
	"testing"

	"github.com/avencia/gatefall/internal/game"
)

func testField() *game.Battlefield {
	return &game.Battlefield{
		Enemies: []*game.Enemy{
			{Name: "FrontLeft", Column: 0, Row: game.RowFront, HitPoints: 50},
			{Name: "BackLeft", Column: 0, Row: game.RowBack, HitPoints: 50},
			{Name: "FrontRight", Column: 1, Row: game.RowFront, HitPoints: 50},
			{Name: "Fallen", Column: 2, Row: game.RowFront, HitPoints: 0},
		},
		Gates: []*game.Gate{
			{Name: "North Gate", Kind: game.GateFortress, HitPoints: 500},
		},
	}
}

func targetNames(ts []game.Target) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.TargetName())
	}
	return out
}

func TestResolveTargetsSingleFront(t *testing.T) {
	field := testField()
	ts := ResolveTargets(field, TargetRequest{Range: game.RangeSingleFront, Column: 0})
	if len(ts) != 1 || ts[0].TargetName() != "FrontLeft" {
		t.Fatalf("got %v, want [FrontLeft]", targetNames(ts))
	}
}

func TestResolveTargetsSingleFrontFallsBack(t *testing.T) {
	field := testField()
	field.Enemies[0].HitPoints = 0
	ts := ResolveTargets(field, TargetRequest{Range: game.RangeSingleFront, Column: 0})
	if len(ts) != 1 || ts[0].TargetName() != "BackLeft" {
		t.Fatalf("got %v, want [BackLeft]", targetNames(ts))
	}
}

func TestResolveTargetsSingleFrontEmptyColumn(t *testing.T) {
	ts := ResolveTargets(testField(), TargetRequest{Range: game.RangeSingleFront, Column: 9})
	if len(ts) != 0 {
		t.Fatalf("got %v, want none", targetNames(ts))
	}
}

func TestResolveTargetsRows(t *testing.T) {
	field := testField()
	front := ResolveTargets(field, TargetRequest{Range: game.RangeRow1})
	if len(front) != 2 {
		t.Fatalf("front row: got %v, want 2 alive enemies", targetNames(front))
	}
	back := ResolveTargets(field, TargetRequest{Range: game.RangeRow2})
	if len(back) != 1 || back[0].TargetName() != "BackLeft" {
		t.Fatalf("back row: got %v, want [BackLeft]", targetNames(back))
	}
}

func TestResolveTargetsColumn(t *testing.T) {
	ts := ResolveTargets(testField(), TargetRequest{Range: game.RangeColumn, Column: 0})
	if len(ts) != 2 {
		t.Fatalf("got %v, want both column-0 enemies", targetNames(ts))
	}
}

func TestResolveTargetsAllExcludesDead(t *testing.T) {
	ts := ResolveTargets(testField(), TargetRequest{Range: game.RangeAll})
	if len(ts) != 3 {
		t.Fatalf("got %v, want the 3 alive enemies", targetNames(ts))
	}
	for _, tgt := range ts {
		if tgt.TargetName() == "Fallen" {
			t.Fatalf("dead enemy included in All targets")
		}
	}
}

func TestResolveTargetsExplicit(t *testing.T) {
	field := testField()
	gate := field.Gates[0]
	ts := ResolveTargets(field, TargetRequest{Range: game.RangeSingleTarget, Explicit: gate})
	if len(ts) != 1 || ts[0].TargetName() != "North Gate" {
		t.Fatalf("got %v, want [North Gate]", targetNames(ts))
	}

	gate.HitPoints = 0
	ts = ResolveTargets(field, TargetRequest{Range: game.RangeSingleTarget, Explicit: gate})
	if len(ts) != 0 {
		t.Fatalf("dead explicit target must resolve to nothing")
	}
}

func TestResolveTargetsSelf(t *testing.T) {
	actor := &game.BattlePlayer{PlayerName: "Kara", HitPoints: 80}
	ts := ResolveTargets(testField(), TargetRequest{Range: game.RangeSelf, Actor: actor})
	if len(ts) != 1 || ts[0].TargetName() != "Kara" {
		t.Fatalf("got %v, want [Kara]", targetNames(ts))
	}
}

func TestResolveTargetsUnknownRange(t *testing.T) {
	ts := ResolveTargets(testField(), TargetRequest{Range: game.AttackRange("orbital")})
	if ts != nil {
		t.Fatalf("unknown range must resolve to nothing, got %v", targetNames(ts))
	}
}
