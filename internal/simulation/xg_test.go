package simulation

import (
	"math"
	"testing"

	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

func TestComputeXG_EvenSidesAway(t *testing.T) {
	cal := DefaultCalibration()
	xg := ComputeXG(cal, 60, 60, 60, "", "", false)
	if math.Abs(xg-cal.BaseExpectedGoals) > 1e-9 {
		t.Fatalf("expected base xg %v, got %v", cal.BaseExpectedGoals, xg)
	}
}

func TestComputeXG_HomeAdvantage(t *testing.T) {
	cal := DefaultCalibration()
	home := ComputeXG(cal, 60, 60, 60, team.StylePossession, team.PressingBalanced, true)
	away := ComputeXG(cal, 60, 60, 60, team.StylePossession, team.PressingBalanced, false)
	if math.Abs(home-away*cal.HomeAdvantage) > 1e-9 {
		t.Fatalf("expected home xg %v, got %v", away*cal.HomeAdvantage, home)
	}
}

func TestComputeXG_Floor(t *testing.T) {
	cal := DefaultCalibration()
	xg := ComputeXG(cal, 0, 100, 100, team.StylePossession, team.PressingLow, false)
	want := cal.BaseExpectedGoals * cal.MinXGFactor
	if math.Abs(xg-want) > 1e-9 {
		t.Fatalf("expected floored xg %v, got %v", want, xg)
	}
}

func TestComputeXG_TacticsScalars(t *testing.T) {
	cal := DefaultCalibration()
	direct := ComputeXG(cal, 60, 60, 60, team.StyleDirect, team.PressingHigh, false)
	patient := ComputeXG(cal, 60, 60, 60, team.StylePossession, team.PressingLow, false)
	if direct <= patient {
		t.Fatalf("direct high press should beat patient low block: %v <= %v", direct, patient)
	}
	if styleScalar("unknown") != 1 || pressingScalar("unknown") != 1 {
		t.Fatalf("unknown tactics should be neutral")
	}
}

func TestSimulateMatch_HomeAverageXGHigherForMirroredSides(t *testing.T) {
	engine := newTestEngine()
	in := sampleInput()

	var homeXG, awayXG float64
	const trials = 50
	for i := 0; i < trials; i++ {
		res, err := engine.SimulateMatch(random.New(int64(i)), in)
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		homeXG += res.HomeXG
		awayXG += res.AwayXG
	}
	if homeXG <= awayXG {
		t.Fatalf("home xg %v should exceed away xg %v", homeXG, awayXG)
	}
	if ratio := homeXG / awayXG; math.Abs(ratio-DefaultCalibration().HomeAdvantage) > 1e-9 {
		t.Fatalf("expected xg ratio %v, got %v", DefaultCalibration().HomeAdvantage, ratio)
	}
}
