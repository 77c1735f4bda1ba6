package simulation

import (
	"math"
	"testing"

	"github.com/riskibarqy/match-engine/internal/domain/player"
)

func TestValidateTables(t *testing.T) {
	if err := validateTables(); err != nil {
		t.Fatalf("rating tables invalid: %v", err)
	}
}

func TestRate_UniformPlayerRatesFlat(t *testing.T) {
	p := player.Player{ID: "p", Name: "p", Attributes: player.Uniform(72)}
	for _, pos := range player.AllPositions {
		if got := Rate(p, pos); math.Abs(got-72) > 1e-9 {
			t.Fatalf("position %s: expected 72, got %v", pos, got)
		}
	}
}

func TestRate_UnknownPosition(t *testing.T) {
	p := player.Player{ID: "p", Name: "p", Attributes: player.Uniform(72)}
	if got := Rate(p, player.Position("SW")); got != 0 {
		t.Fatalf("expected 0 for unknown position, got %v", got)
	}
}

func TestRate_StrikerRewardsFinishing(t *testing.T) {
	poacher := player.Player{ID: "a", Name: "a", Attributes: player.Uniform(50)}
	poacher.Attributes.Finishing = 95

	stopper := player.Player{ID: "b", Name: "b", Attributes: player.Uniform(50)}
	stopper.Attributes.Tackling = 95

	if Rate(poacher, player.PositionStriker) <= Rate(stopper, player.PositionStriker) {
		t.Fatalf("finisher should rate higher as a striker")
	}
	if Rate(stopper, player.PositionCenterBack) <= Rate(poacher, player.PositionCenterBack) {
		t.Fatalf("tackler should rate higher as a center back")
	}
}
