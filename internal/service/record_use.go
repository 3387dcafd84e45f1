package service

import (
	"strconv"
	"strings"

	"github.com/avencia/gatefall/internal/engine"
	"github.com/avencia/gatefall/internal/events"
	"github.com/avencia/gatefall/internal/game"
	"github.com/avencia/gatefall/internal/logging"
)

// TargetRef optionally names an explicit target for SingleTarget weapons.
type TargetRef struct {
	Kind string `json:"kind"` // "enemy" | "gate"
	ID   uint   `json:"id"`
}

// UseWeaponRequest is one weapon use issued by the turn orchestrator.
type UseWeaponRequest struct {
	PlayerEmail string
	WeaponName  string
	Column      int
	Target      TargetRef
}

// UseWeaponResult is everything the caller needs to present one resolved
// weapon use.
type UseWeaponResult struct {
	Battle          *game.Battle                 `json:"battle"`
	Event           game.WeaponUseEvent          `json:"event"`
	CompletedCombos []*game.ComboExecutionResult `json:"completed_combos"`
	Hits            []game.TargetPreview         `json:"hits"`
	NoValidTargets  bool                         `json:"no_valid_targets"`
	// Invalid marks a use with unknown weapon data: it is recorded as-is,
	// matches no combo and deals no damage.
	Invalid bool `json:"invalid"`
}

// RecordWeaponUse runs one weapon use through the full pipeline: record,
// match combos, resolve effects, resolve targets, compute and apply damage,
// persist, and re-arm the turn-end timer.
func (s *Service) RecordWeaponUse(battleID uint, req UseWeaponRequest) (*UseWeaponResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	player := s.findPlayer(b, req.PlayerEmail)
	if player == nil {
		return nil, ErrPlayerNotInBattle
	}
	if player.ActionsTaken >= 1+player.ExtraActions {
		return nil, ErrNoActionsLeft
	}

	// An unknown weapon is not an error: the use is recorded with neutral
	// data, matches nothing and damages nothing. Callers inspect the tag.
	weapon := s.cfg.FindWeapon(req.WeaponName)
	ev := game.WeaponUseEvent{TurnIndex: b.TurnIndex}
	invalid := weapon == nil
	if weapon != nil {
		ev.WeaponType = weapon.WeaponType
		ev.AttackAttribute = weapon.AttackAttribute
		ev.BasePower = weapon.BasePower
	}

	rt := s.runtime(battleID)
	completions := rt.recorder.RecordUse(ev)

	summary := make([]string, 0, 8)
	multiplier := s.applyCompletions(b, player, completions, &summary)

	res := &UseWeaponResult{
		Battle:          b,
		Event:           ev,
		CompletedCombos: completions,
		Invalid:         invalid,
	}

	if weapon != nil {
		s.resolveHits(b, player, weapon, req, multiplier, res, &summary)
	} else {
		summary = append(summary, player.PlayerName+" used an unknown weapon - no effect")
	}

	player.ActionsTaken++
	s.finalizeUse(b, player, res, summary)
	return res, nil
}

// applyCompletions folds completed combos into player and battlefield state
// and returns the aggregate damage multiplier for this use.
func (s *Service) applyCompletions(b *game.Battle, player *game.BattlePlayer, completions []*game.ComboExecutionResult, summary *[]string) float64 {
	multiplier := 1.0
	for _, c := range completions {
		r := c.Resolved
		multiplier *= r.ComboMultiplier
		if r.ExtraActions > 0 {
			player.ExtraActions += r.ExtraActions
			*summary = append(*summary, c.ComboName+": +"+strconv.Itoa(r.ExtraActions)+" action(s)")
		}
		if r.Healing > 0 {
			player.HitPoints += r.Healing
			if player.MaxHitPoints > 0 && player.HitPoints > player.MaxHitPoints {
				player.HitPoints = player.MaxHitPoints
			}
			*summary = append(*summary, c.ComboName+": heals "+strconv.Itoa(r.Healing)+" HP")
		}
		for _, buff := range r.PlayerBuffs {
			player.AttackBuffValue += buff.Value
			until := b.TurnIndex + buff.Duration - 1
			if until > player.AttackBuffUntilTurn {
				player.AttackBuffUntilTurn = until
			}
			*summary = append(*summary, c.ComboName+": +"+strconv.Itoa(buff.Value)+" Attack for "+strconv.Itoa(buff.Duration)+" turn(s)")
		}
		for _, debuff := range r.EnemyDebuffs {
			for i := range b.Enemies {
				e := &b.Enemies[i]
				if !e.Alive() {
					continue
				}
				e.DebuffValue += debuff.Value
				until := b.TurnIndex + debuff.Duration - 1
				if until > e.DebuffUntilTurn {
					e.DebuffUntilTurn = until
				}
			}
			*summary = append(*summary, c.ComboName+": -"+strconv.Itoa(debuff.Value)+" enemy Defense for "+strconv.Itoa(debuff.Duration)+" turn(s)")
		}
		for _, st := range r.Statuses {
			*summary = append(*summary, c.ComboName+": applies "+string(st.Attribute)+" for "+strconv.Itoa(st.Duration)+" turn(s)")
		}
		for _, sp := range r.SpecialAttacks {
			*summary = append(*summary, c.ComboName+": unleashes "+sp)
		}
		if err := s.repo.RecordComboCompletion(player.PlayerEmail, c.ComboName); err != nil {
			logging.Error("failed to record combo completion", err, logging.Fields{"combo": c.ComboName})
		}
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	return multiplier
}

// resolveHits runs target resolution and the damage pipeline for one use.
func (s *Service) resolveHits(b *game.Battle, player *game.BattlePlayer, weapon *game.Weapon, req UseWeaponRequest, multiplier float64, res *UseWeaponResult, summary *[]string) {
	field := b.Battlefield()
	targets := engine.ResolveTargets(field, engine.TargetRequest{
		Range:    weapon.AttackRange,
		Column:   req.Column,
		Explicit: s.lookupExplicit(field, req.Target),
		Actor:    player,
	})
	if len(targets) == 0 {
		res.NoValidTargets = true
		*summary = append(*summary, player.PlayerName+" used "+weapon.Name+" - no valid targets")
		return
	}

	comboName := ""
	if len(res.CompletedCombos) > 0 {
		comboName = res.CompletedCombos[0].ComboName
	}
	logEntries := make([]game.CombatLogEntry, 0, len(targets))
	for _, t := range targets {
		calc := engine.ComputeDamage(engine.DamageInput{
			BasePower:           weapon.BasePower,
			Attacker:            player.Modifiers(b.TurnIndex),
			ComboMultiplier:     multiplier,
			AttachmentDamage:    weapon.AttachmentDamage,
			EffectivenessFactor: weapon.EffectivenessFactor,
			Target:              t,
		}, s.cfg.Balance, s.rng)
		if calc.Valid {
			t.ApplyDamage(calc.FinalDamage)
		}
		res.Hits = append(res.Hits, game.TargetPreview{TargetName: t.TargetName(), Calculation: calc})
		s.bus.Publish(events.DamageDealt{
			BattleID:    b.ID,
			TurnIndex:   b.TurnIndex,
			WeaponName:  weapon.Name,
			TargetName:  t.TargetName(),
			Calculation: calc,
		})
		logEntries = append(logEntries, game.CombatLogEntry{
			BattleID:    b.ID,
			TurnIndex:   b.TurnIndex,
			PlayerEmail: player.PlayerEmail,
			WeaponName:  weapon.Name,
			TargetName:  t.TargetName(),
			FinalDamage: calc.FinalDamage,
			IsCritical:  calc.IsCritical,
			ComboName:   comboName,
		})
		*summary = append(*summary, hitSummary(player.PlayerName, weapon.Name, t.TargetName(), calc))
	}
	if err := s.repo.AppendCombatLog(logEntries); err != nil {
		logging.Error("failed to append combat log", err, logging.Fields{"battle_id": b.ID})
	}
}

func (s *Service) lookupExplicit(field *game.Battlefield, ref TargetRef) game.Target {
	switch ref.Kind {
	case "enemy":
		for _, e := range field.Enemies {
			if e.ID == ref.ID {
				return e
			}
		}
	case "gate":
		for _, g := range field.Gates {
			if g.ID == ref.ID {
				return g
			}
		}
	}
	return nil
}

// finalizeUse checks victory/defeat, stores the summary and re-arms the
// cancellable turn-end timer.
func (s *Service) finalizeUse(b *game.Battle, player *game.BattlePlayer, res *UseWeaponResult, summary []string) {
	gatesDown := true
	for i := range b.Gates {
		if b.Gates[i].Alive() {
			gatesDown = false
			break
		}
	}
	switch {
	case b.AliveEnemyCount() == 0 && gatesDown:
		b.Status = game.StatusFinished
		b.Phase = game.PhaseResolved
		b.Winner = player.PlayerName
		b.Message = "Victory for player " + player.PlayerName
		if !b.StatsCounted {
			if err := s.repo.UpdateStatsOnBattleEnd(b, ""); err != nil {
				logging.Error("failed to update stats on battle end", err, logging.Fields{"battle_id": b.ID})
			}
			b.StatsCounted = true
		}
		s.dropRuntime(b.ID)
	case !player.Alive():
		b.Status = game.StatusFinished
		b.Phase = game.PhaseResolved
		b.Message = player.PlayerName + " has fallen"
		if !b.StatsCounted {
			if err := s.repo.UpdateStatsOnBattleEnd(b, ""); err != nil {
				logging.Error("failed to update stats on battle end", err, logging.Fields{"battle_id": b.ID})
			}
			b.StatsCounted = true
		}
		s.dropRuntime(b.ID)
	default:
		s.armDeadline(b)
		s.scheduleTurnEnd(b.ID, b.TurnIndex)
	}
	b.LastTurnSummary = strings.Join(summary, "\n")
	if err := s.repo.UpdateBattle(b); err != nil {
		logging.Error("failed to update battle", err, logging.Fields{"battle_id": b.ID})
	}
}

func hitSummary(playerName, weaponName, targetName string, calc game.DamageCalculation) string {
	if !calc.Valid {
		return playerName + " " + weaponName + " - invalid weapon data, no damage"
	}
	parts := playerName + " " + weaponName + " - Calculation: base " + strconv.Itoa(calc.BaseDamage)
	if calc.ComboDamage > 0 {
		parts += ", combo +" + strconv.Itoa(calc.ComboDamage)
	}
	if calc.OtherDamage > 0 {
		parts += ", other +" + strconv.Itoa(calc.OtherDamage)
	}
	if calc.IsCritical {
		parts += ", CRITICAL"
	}
	parts += "; " + targetName + " takes " + strconv.Itoa(calc.FinalDamage) + " damage"
	return parts
}
