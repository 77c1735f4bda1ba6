package simulation

import (
	"math"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

// ProcessShots expands an xG value into resolved on-target shots against
// the defending goalkeeper.
func ProcessShots(rng random.Source, cal Calibration, xg float64, shooting, defending team.State) match.ShotResult {
	gk, ok := defending.Goalkeeper()
	if !ok {
		goals := int(math.Round(math.Max(xg, 0)))
		return match.ShotResult{
			Goals:         goals,
			ShotsOnTarget: goals + cal.FallbackSaves,
			Saves:         cal.FallbackSaves,
			Details:       []match.ShotDetail{},
		}
	}
	gkRating := Rate(gk, player.PositionGoalkeeper)

	// A side with no expected goals creates no chances at all.
	opportunities := 0
	if xg > 0 {
		noise := random.Uniform(rng, -cal.OpportunityNoise, cal.OpportunityNoise)
		opportunities = max(int(math.Round(xg*cal.ShotOpportunityMultiplier+noise)), 0)
	}

	result := match.ShotResult{Details: make([]match.ShotDetail, 0, opportunities)}
	for i := 0; i < opportunities; i++ {
		if !random.Chance(rng, cal.OnTargetRate) {
			continue
		}

		quality := shotQuality(rng, cal, xg)
		shooter := selectScorer(rng, cal, shooting)
		minute := random.Between(rng, 1, 90)
		saved := random.Chance(rng, saveChance(cal, gkRating, quality))

		result.ShotsOnTarget++
		if saved {
			result.Saves++
		} else {
			result.Goals++
		}
		result.Details = append(result.Details, match.ShotDetail{
			Minute:  minute,
			Quality: quality,
			Saved:   saved,
			Shooter: shooter.Ref(),
		})
	}

	if result.ShotsOnTarget < result.Goals+1 {
		result.ShotsOnTarget = result.Goals + 1
	}
	result.Saves = result.ShotsOnTarget - result.Goals

	return result
}

func shotQuality(rng random.Source, cal Calibration, xg float64) match.ShotQuality {
	shift := clamp((xg-cal.BaseExpectedGoals)*cal.QualityShiftScale, cal.QualityShiftMin, cal.QualityShiftMax)
	fullThreshold := cal.FullChanceBase + shift
	halfThreshold := cal.HalfChanceBase + shift/2

	roll := rng.Float64()
	switch {
	case roll < fullThreshold:
		return match.QualityFullChance
	case roll < halfThreshold:
		return match.QualityHalfChance
	default:
		return match.QualityLongRange
	}
}

func qualitySaveScalar(cal Calibration, q match.ShotQuality) float64 {
	switch q {
	case match.QualityFullChance:
		return cal.FullChanceSave
	case match.QualityLongRange:
		return cal.LongRangeSave
	default:
		return cal.HalfChanceSave
	}
}

func saveChance(cal Calibration, gkRating float64, q match.ShotQuality) float64 {
	base := cal.BaseSaveRate + (gkRating-50)*cal.GoalkeeperImpact
	return clamp(base*qualitySaveScalar(cal, q), cal.MinSaveChance, cal.MaxSaveChance)
}
