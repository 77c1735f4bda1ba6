package simulation

import "github.com/riskibarqy/match-engine/internal/domain/team"

// Possession football creates fewer but cleaner chances; the composite
// quality already rewards it, so the volume scalar sits below neutral.
var attackingStyleXG = map[team.AttackingStyle]float64{
	team.StylePossession: 0.97,
	team.StyleDirect:     1.05,
	team.StyleCounter:    1.02,
}

// High pressing wins the ball back but leaves space behind.
var pressingConcededXG = map[team.Pressing]float64{
	team.PressingHigh:     1.08,
	team.PressingBalanced: 1.0,
	team.PressingLow:      0.93,
}

func styleScalar(style team.AttackingStyle) float64 {
	if v, ok := attackingStyleXG[style]; ok {
		return v
	}
	return 1.0
}

func pressingScalar(p team.Pressing) float64 {
	if v, ok := pressingConcededXG[p]; ok {
		return v
	}
	return 1.0
}

// ComputeXG returns the expected goals of an attack facing the given
// defense and goalkeeper. The result is never below MinXGFactor of the base.
func ComputeXG(
	cal Calibration,
	attack, defense, goalkeeper float64,
	style team.AttackingStyle,
	opponentPressing team.Pressing,
	isHome bool,
) float64 {
	attackNorm := clamp(attack, 0, 100) / 100
	defenseNorm := clamp(defense, 0, 100) / 100
	gkNorm := clamp(goalkeeper, 0, 100) / 100

	opposition := cal.OppositionDefWgt*defenseNorm + (1-cal.OppositionDefWgt)*gkNorm
	advantage := attackNorm - opposition

	multiplier := 1 + cal.AdvantageScale*advantage
	multiplier *= styleScalar(style)
	multiplier *= pressingScalar(opponentPressing)
	if isHome {
		multiplier *= cal.HomeAdvantage
	}
	if multiplier < cal.MinXGFactor {
		multiplier = cal.MinXGFactor
	}

	return cal.BaseExpectedGoals * multiplier
}
