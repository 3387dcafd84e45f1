package service

import (
	"github.com/avencia/gatefall/internal/engine"
	"github.com/avencia/gatefall/internal/game"
)

// PreviewDamage computes expected damage without mutating anything: no
// variance, no critical roll, no state change on battle or targets. The
// combo multiplier is always 1.0 because previews never complete combos.
func (s *Service) PreviewDamage(battleID uint, req UseWeaponRequest) (*game.DamagePreviewInfo, error) {
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

	weapon := s.cfg.FindWeapon(req.WeaponName)
	info := &game.DamagePreviewInfo{WeaponName: req.WeaponName}
	if weapon == nil {
		// Unknown weapon previews as a single invalid-tagged calculation.
		info.Targets = append(info.Targets, game.TargetPreview{
			Calculation: game.InvalidCalculation(),
		})
		return info, nil
	}
	info.WeaponName = weapon.Name

	field := b.Battlefield()
	targets := engine.ResolveTargets(field, engine.TargetRequest{
		Range:    weapon.AttackRange,
		Column:   req.Column,
		Explicit: s.lookupExplicit(field, req.Target),
		Actor:    player,
	})
	if len(targets) == 0 {
		info.NoValidTargets = true
		return info, nil
	}
	for _, t := range targets {
		calc := engine.ComputePreviewDamage(engine.DamageInput{
			BasePower:           weapon.BasePower,
			Attacker:            player.Modifiers(b.TurnIndex),
			ComboMultiplier:     1.0,
			AttachmentDamage:    weapon.AttachmentDamage,
			EffectivenessFactor: weapon.EffectivenessFactor,
			Target:              t,
		}, s.cfg.Balance)
		info.Targets = append(info.Targets, game.TargetPreview{
			TargetName:  t.TargetName(),
			Calculation: calc,
		})
	}
	return info, nil
}
