package simulation

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

type weighted[T any] struct {
	item   T
	weight float64
}

// weightedPick draws one item proportionally to its weight. An empty
// candidate list means an empty roster reached the engine and panics.
func weightedPick[T any](rng random.Source, items []weighted[T]) T {
	if len(items) == 0 {
		panic(crerr.AssertionFailedf("weighted selection over an empty candidate list"))
	}

	total := 0.0
	for _, it := range items {
		if it.weight > 0 {
			total += it.weight
		}
	}
	if total <= 0 {
		return items[random.IntN(rng, len(items))].item
	}

	remaining := rng.Float64() * total
	for _, it := range items {
		if it.weight <= 0 {
			continue
		}
		remaining -= it.weight
		if remaining <= 0 {
			return it.item
		}
	}
	return items[len(items)-1].item
}

// formModifier is the short-term swing applied to one attribution roll.
func formModifier(rng random.Source, cal Calibration, p player.Player) float64 {
	roll := rng.Float64()
	switch {
	case roll < cal.HotStreakChance:
		return cal.HotStreakFactor
	case roll < cal.HotStreakChance+cal.ColdStreakChance:
		return cal.ColdStreakFactor
	}

	band := clamp(0.2*(1.5-float64(p.Consistency)/100), 0.05, 0.2)
	return 1 + (rng.Float64()*2-1)*band
}

func positionOrDefault(s team.State, p player.Player) player.Position {
	if pos, ok := s.PositionOf(p.ID); ok && pos.Valid() {
		return pos
	}
	return player.PositionCentralMidfielder
}

func goalWeight(rng random.Source, cal Calibration, s team.State, p player.Player) float64 {
	pos := positionOrDefault(s, p)
	skill := Rate(p, pos)
	w := (skill*0.6 + goalPositionWeights[pos]*50*0.4) * formModifier(rng, cal, p)
	if w < cal.MinAttributionWgt {
		return cal.MinAttributionWgt
	}
	return w
}

func creativityBonus(p player.Player) float64 {
	creativity := float64(p.Attributes.Vision+p.Attributes.ShortPassing) / 200
	return 0.7 + 0.6*clamp(creativity, 0, 1)
}

func assistWeight(rng random.Source, cal Calibration, s team.State, p player.Player) float64 {
	pos := positionOrDefault(s, p)
	skill := Rate(p, pos) * creativityBonus(p)
	w := (skill*0.6 + assistPositionWeights[pos]*50*0.4) * formModifier(rng, cal, p)
	if w < cal.MinAttributionWgt {
		return cal.MinAttributionWgt
	}
	return w
}

// selectScorer picks a finisher from the whole roster.
func selectScorer(rng random.Source, cal Calibration, s team.State) player.Player {
	candidates := make([]weighted[player.Player], 0, len(s.Roster))
	for _, p := range s.Roster {
		candidates = append(candidates, weighted[player.Player]{item: p, weight: goalWeight(rng, cal, s, p)})
	}
	return weightedPick(rng, candidates)
}

// selectAssister returns the provider of a goal, or false when the goal
// was unassisted or nobody else is on the roster.
func selectAssister(rng random.Source, cal Calibration, s team.State, scorerID string) (player.Player, bool) {
	if !random.Chance(rng, cal.AssistProbability) {
		return player.Player{}, false
	}

	candidates := make([]weighted[player.Player], 0, len(s.Roster))
	for _, p := range s.Roster {
		if p.ID == scorerID {
			continue
		}
		candidates = append(candidates, weighted[player.Player]{item: p, weight: assistWeight(rng, cal, s, p)})
	}
	if len(candidates) == 0 {
		return player.Player{}, false
	}
	return weightedPick(rng, candidates), true
}
