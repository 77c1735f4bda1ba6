package simulation

import (
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
)

const neutralRating = 50.0

// FormationModifier scales line composites for a shape.
type FormationModifier struct {
	Attack   float64
	Midfield float64
	Defense  float64
}

var neutralFormation = FormationModifier{Attack: 1, Midfield: 1, Defense: 1}

var formationModifiers = map[string]FormationModifier{
	"4-4-2":   {Attack: 1.0, Midfield: 1.0, Defense: 1.0},
	"4-3-3":   {Attack: 1.04, Midfield: 0.98, Defense: 0.98},
	"4-2-3-1": {Attack: 1.02, Midfield: 1.02, Defense: 0.99},
	"3-5-2":   {Attack: 1.0, Midfield: 1.04, Defense: 0.96},
	"5-3-2":   {Attack: 0.95, Midfield: 0.98, Defense: 1.06},
	"4-5-1":   {Attack: 0.94, Midfield: 1.05, Defense: 1.02},
}

// FormationModifierFor returns the modifier of a formation, neutral when unknown.
func FormationModifierFor(formation string) FormationModifier {
	if mod, ok := formationModifiers[formation]; ok {
		return mod
	}
	return neutralFormation
}

// ComposeStrength derives the attack, defense, midfield and goalkeeper
// composites of a lineup.
func ComposeStrength(s team.State) match.Composites {
	var attack, midfield, defense, outfield []float64
	for _, p := range s.Roster {
		pos, ok := s.PositionOf(p.ID)
		if !ok {
			continue
		}
		rating := Rate(p, pos)
		switch pos.Role() {
		case player.RoleAttack:
			attack = append(attack, rating)
		case player.RoleMidfield:
			midfield = append(midfield, rating)
		case player.RoleDefense:
			defense = append(defense, rating)
		}
		if pos.Role() != player.RoleGoalkeeper {
			outfield = append(outfield, rating)
		}
	}

	fallback := meanOr(outfield, neutralRating)
	attackMean := meanOr(attack, fallback)
	midfieldMean := meanOr(midfield, fallback)
	defenseMean := meanOr(defense, fallback)

	mod := FormationModifierFor(s.Formation)
	out := match.Composites{
		Attack:     clamp((0.7*attackMean+0.3*midfieldMean)*mod.Attack, 0, 100),
		Defense:    clamp((0.7*defenseMean+0.3*midfieldMean)*mod.Defense, 0, 100),
		Midfield:   clamp(midfieldMean*mod.Midfield, 0, 100),
		Goalkeeper: neutralRating,
	}
	if gk, ok := s.Goalkeeper(); ok {
		out.Goalkeeper = clamp(Rate(gk, player.PositionGoalkeeper), 0, 100)
	}

	return out
}

func meanOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
