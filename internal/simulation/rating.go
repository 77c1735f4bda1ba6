package simulation

import (
	"fmt"

	"github.com/riskibarqy/match-engine/internal/domain/player"
)

type profile map[player.Attribute]int

// Archetype profiles. Each sums to 100.
var (
	goalkeeperProfile = profile{
		player.AttrDiving:       20,
		player.AttrHandling:     18,
		player.AttrReflexes:     22,
		player.AttrPositioning:  12,
		player.AttrDistribution: 8,
		player.AttrReactions:    10,
		player.AttrComposure:    6,
		player.AttrAgility:      4,
	}
	centerBackProfile = profile{
		player.AttrMarking:       18,
		player.AttrTackling:      18,
		player.AttrInterceptions: 14,
		player.AttrHeading:       10,
		player.AttrStrength:      10,
		player.AttrPositioning:   8,
		player.AttrPace:          4,
		player.AttrReactions:     6,
		player.AttrComposure:     4,
		player.AttrShortPassing:  4,
		player.AttrAcceleration:  2,
		player.AttrLongPassing:   2,
	}
	fullBackProfile = profile{
		player.AttrTackling:      14,
		player.AttrMarking:       12,
		player.AttrInterceptions: 10,
		player.AttrPace:          12,
		player.AttrAcceleration:  8,
		player.AttrStamina:       10,
		player.AttrCrossing:      10,
		player.AttrShortPassing:  8,
		player.AttrPositioning:   6,
		player.AttrReactions:     4,
		player.AttrDribbling:     6,
	}
	wingBackProfile = profile{
		player.AttrPace:          12,
		player.AttrAcceleration:  10,
		player.AttrStamina:       14,
		player.AttrCrossing:      14,
		player.AttrDribbling:     8,
		player.AttrShortPassing:  8,
		player.AttrTackling:      10,
		player.AttrMarking:       8,
		player.AttrInterceptions: 6,
		player.AttrPositioning:   4,
		player.AttrReactions:     4,
		player.AttrAgility:       2,
	}
	holdingProfile = profile{
		player.AttrInterceptions: 16,
		player.AttrTackling:      14,
		player.AttrMarking:       10,
		player.AttrShortPassing:  12,
		player.AttrLongPassing:   10,
		player.AttrPositioning:   8,
		player.AttrStrength:      8,
		player.AttrStamina:       8,
		player.AttrComposure:     6,
		player.AttrReactions:     4,
		player.AttrVision:        4,
	}
	centralProfile = profile{
		player.AttrShortPassing:  16,
		player.AttrLongPassing:   12,
		player.AttrVision:        14,
		player.AttrTechnique:     10,
		player.AttrDribbling:     8,
		player.AttrStamina:       10,
		player.AttrComposure:     6,
		player.AttrReactions:     6,
		player.AttrInterceptions: 6,
		player.AttrTackling:      4,
		player.AttrLongShots:     4,
		player.AttrPositioning:   4,
	}
	wideMidProfile = profile{
		player.AttrCrossing:     14,
		player.AttrPace:         12,
		player.AttrAcceleration: 10,
		player.AttrDribbling:    12,
		player.AttrShortPassing: 10,
		player.AttrStamina:      12,
		player.AttrVision:       8,
		player.AttrTechnique:    8,
		player.AttrAgility:      6,
		player.AttrShotAccuracy: 4,
		player.AttrReactions:    4,
	}
	playmakerProfile = profile{
		player.AttrVision:       16,
		player.AttrShortPassing: 14,
		player.AttrTechnique:    12,
		player.AttrDribbling:    12,
		player.AttrShotAccuracy: 8,
		player.AttrLongShots:    8,
		player.AttrFinishing:    8,
		player.AttrAgility:      6,
		player.AttrComposure:    6,
		player.AttrReactions:    6,
		player.AttrPositioning:  4,
	}
	wingerProfile = profile{
		player.AttrDribbling:    16,
		player.AttrPace:         14,
		player.AttrAcceleration: 12,
		player.AttrAgility:      8,
		player.AttrCrossing:     10,
		player.AttrFinishing:    10,
		player.AttrShotAccuracy: 8,
		player.AttrTechnique:    8,
		player.AttrShortPassing: 6,
		player.AttrReactions:    4,
		player.AttrComposure:    4,
	}
	strikerProfile = profile{
		player.AttrFinishing:    20,
		player.AttrShotAccuracy: 12,
		player.AttrShotPower:    10,
		player.AttrPositioning:  12,
		player.AttrHeading:      8,
		player.AttrComposure:    8,
		player.AttrReactions:    8,
		player.AttrPace:         6,
		player.AttrAcceleration: 4,
		player.AttrStrength:     6,
		player.AttrDribbling:    4,
		player.AttrTechnique:    2,
	}
)

var positionProfiles = map[player.Position]profile{
	player.PositionGoalkeeper:          goalkeeperProfile,
	player.PositionCenterBack:          centerBackProfile,
	player.PositionLeftBack:            fullBackProfile,
	player.PositionRightBack:           fullBackProfile,
	player.PositionLeftWingBack:        wingBackProfile,
	player.PositionRightWingBack:       wingBackProfile,
	player.PositionDefensiveMidfielder: holdingProfile,
	player.PositionCentralMidfielder:   centralProfile,
	player.PositionLeftMidfielder:      wideMidProfile,
	player.PositionRightMidfielder:     wideMidProfile,
	player.PositionAttackingMidfielder: playmakerProfile,
	player.PositionLeftWinger:          wingerProfile,
	player.PositionRightWinger:         wingerProfile,
	player.PositionStriker:             strikerProfile,
}

// Per-position likelihood of finishing and creating moves, 0..1.
var (
	goalPositionWeights = map[player.Position]float64{
		player.PositionGoalkeeper:          0.01,
		player.PositionCenterBack:          0.12,
		player.PositionLeftBack:            0.1,
		player.PositionRightBack:           0.1,
		player.PositionLeftWingBack:        0.15,
		player.PositionRightWingBack:       0.15,
		player.PositionDefensiveMidfielder: 0.15,
		player.PositionCentralMidfielder:   0.3,
		player.PositionLeftMidfielder:      0.45,
		player.PositionRightMidfielder:     0.45,
		player.PositionAttackingMidfielder: 0.6,
		player.PositionLeftWinger:          0.75,
		player.PositionRightWinger:         0.75,
		player.PositionStriker:             1.0,
	}
	assistPositionWeights = map[player.Position]float64{
		player.PositionGoalkeeper:          0.05,
		player.PositionCenterBack:          0.1,
		player.PositionLeftBack:            0.35,
		player.PositionRightBack:           0.35,
		player.PositionLeftWingBack:        0.5,
		player.PositionRightWingBack:       0.5,
		player.PositionDefensiveMidfielder: 0.3,
		player.PositionCentralMidfielder:   0.6,
		player.PositionLeftMidfielder:      0.7,
		player.PositionRightMidfielder:     0.7,
		player.PositionAttackingMidfielder: 1.0,
		player.PositionLeftWinger:          0.85,
		player.PositionRightWinger:         0.85,
		player.PositionStriker:             0.5,
	}
	// Share of fouls committed, used to pick the booked player.
	foulPositionWeights = map[player.Position]float64{
		player.PositionGoalkeeper:          0.05,
		player.PositionCenterBack:          1.0,
		player.PositionLeftBack:            0.8,
		player.PositionRightBack:           0.8,
		player.PositionLeftWingBack:        0.7,
		player.PositionRightWingBack:       0.7,
		player.PositionDefensiveMidfielder: 1.0,
		player.PositionCentralMidfielder:   0.7,
		player.PositionLeftMidfielder:      0.5,
		player.PositionRightMidfielder:     0.5,
		player.PositionAttackingMidfielder: 0.4,
		player.PositionLeftWinger:          0.35,
		player.PositionRightWinger:         0.35,
		player.PositionStriker:             0.5,
	}
)

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

func validateTables() error {
	for _, pos := range player.AllPositions {
		prof, ok := positionProfiles[pos]
		if !ok {
			return fmt.Errorf("simulation: no rating profile for position %s", pos)
		}
		sum := 0
		for _, w := range prof {
			sum += w
		}
		if sum != 100 {
			return fmt.Errorf("simulation: profile for %s sums to %d, want 100", pos, sum)
		}
		for name, table := range map[string]map[player.Position]float64{
			"goal":   goalPositionWeights,
			"assist": assistPositionWeights,
			"foul":   foulPositionWeights,
		} {
			if _, ok := table[pos]; !ok {
				return fmt.Errorf("simulation: %s weight missing for position %s", name, pos)
			}
		}
	}
	return nil
}

// Rate returns the 0..100 rating of p playing at pos.
func Rate(p player.Player, pos player.Position) float64 {
	prof, ok := positionProfiles[pos]
	if !ok {
		return 0
	}
	total := 0
	for attr, w := range prof {
		total += p.Attributes.Get(attr) * w
	}
	return float64(total) / 100
}
