// Package simulation resolves a soccer match as a sequence of discrete
// probabilistic events: team composites feed expected goals, expected goals
// expand into shots, shots resolve into goals and saves, and the resulting
// timeline is summarised into a box score and commentary.
package simulation

import "fmt"

// Calibration holds the tunable constants of the probability model.
type Calibration struct {
	// BaseExpectedGoals is the xG of an average side against an average side.
	BaseExpectedGoals float64
	// MinXGFactor floors the xG multiplier.
	MinXGFactor float64
	// AdvantageScale converts the normalised attack/opposition gap into
	// an xG multiplier offset.
	AdvantageScale   float64
	HomeAdvantage    float64
	OppositionDefWgt float64

	ShotOpportunityMultiplier float64
	OpportunityNoise          float64
	OnTargetRate              float64

	BaseSaveRate      float64
	GoalkeeperImpact  float64
	MinSaveChance     float64
	MaxSaveChance     float64
	FullChanceSave    float64
	HalfChanceSave    float64
	LongRangeSave     float64
	FullChanceBase    float64
	HalfChanceBase    float64
	QualityShiftScale float64
	QualityShiftMin   float64
	QualityShiftMax   float64

	// FallbackSaves is the placeholder save count used when the defending
	// side has no goalkeeper at all.
	FallbackSaves int

	AssistProbability  float64
	SecondHalfBias     float64
	HotStreakChance    float64
	HotStreakFactor    float64
	ColdStreakChance   float64
	ColdStreakFactor   float64
	MinAttributionWgt  float64
	PossessionPerPoint float64
}

func DefaultCalibration() Calibration {
	return Calibration{
		BaseExpectedGoals: 1.35,
		MinXGFactor:       0.3,
		AdvantageScale:    1.5,
		HomeAdvantage:     1.1,
		OppositionDefWgt:  0.7,

		ShotOpportunityMultiplier: 8,
		OpportunityNoise:          2,
		OnTargetRate:              0.35,

		BaseSaveRate:      0.68,
		GoalkeeperImpact:  0.006,
		MinSaveChance:     0.15,
		MaxSaveChance:     0.85,
		FullChanceSave:    0.55,
		HalfChanceSave:    1.0,
		LongRangeSave:     1.25,
		FullChanceBase:    0.2,
		HalfChanceBase:    0.65,
		QualityShiftScale: 0.1,
		QualityShiftMin:   -0.1,
		QualityShiftMax:   0.15,

		FallbackSaves: 3,

		AssistProbability:  0.75,
		SecondHalfBias:     0.55,
		HotStreakChance:    0.08,
		HotStreakFactor:    1.35,
		ColdStreakChance:   0.05,
		ColdStreakFactor:   0.7,
		MinAttributionWgt:  0.01,
		PossessionPerPoint: 0.5,
	}
}

func (c Calibration) Validate() error {
	if c.BaseExpectedGoals <= 0 {
		return fmt.Errorf("base expected goals must be > 0")
	}
	if c.HomeAdvantage <= 0 {
		return fmt.Errorf("home advantage must be > 0")
	}
	if c.ShotOpportunityMultiplier <= 0 {
		return fmt.Errorf("shot opportunity multiplier must be > 0")
	}
	if c.OnTargetRate <= 0 || c.OnTargetRate > 1 {
		return fmt.Errorf("on-target rate must be within (0, 1]")
	}
	if c.MinSaveChance < 0 || c.MaxSaveChance > 1 || c.MinSaveChance > c.MaxSaveChance {
		return fmt.Errorf("save chance bounds must satisfy 0 <= min <= max <= 1")
	}
	if c.BaseSaveRate < 0 || c.BaseSaveRate > 1 {
		return fmt.Errorf("base save rate must be within [0, 1]")
	}
	if c.AssistProbability < 0 || c.AssistProbability > 1 {
		return fmt.Errorf("assist probability must be within [0, 1]")
	}
	if c.FallbackSaves < 0 {
		return fmt.Errorf("fallback saves must be >= 0")
	}
	if c.HotStreakChance < 0 || c.ColdStreakChance < 0 || c.HotStreakChance+c.ColdStreakChance > 1 {
		return fmt.Errorf("streak chances must be >= 0 and sum to at most 1")
	}
	if c.FullChanceBase > c.HalfChanceBase {
		return fmt.Errorf("full chance base must not exceed half chance base")
	}
	if c.MinXGFactor < 0 {
		return fmt.Errorf("min xg factor must be >= 0")
	}
	if c.OpportunityNoise < 0 {
		return fmt.Errorf("opportunity noise must be >= 0")
	}
	if c.SecondHalfBias < 0 || c.SecondHalfBias > 1 {
		return fmt.Errorf("second half bias must be within [0, 1]")
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
