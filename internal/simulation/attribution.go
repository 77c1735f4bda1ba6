package simulation

import (
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

// AttributeShots turns a side's resolved shots into goal and save events.
// Every unsaved shot becomes a goal credited to its shooter with an
// optional assist; saved shots become save events for the opposing keeper.
func AttributeShots(
	rng random.Source,
	cal Calibration,
	side match.Side,
	shooting, defending team.State,
	shots match.ShotResult,
) []match.Event {
	events := make([]match.Event, 0, len(shots.Details))
	keeper, hasKeeper := defending.Goalkeeper()

	byID := make(map[string]player.Player, len(shooting.Roster))
	for _, p := range shooting.Roster {
		byID[p.ID] = p
	}

	goals := 0
	for _, shot := range shots.Details {
		if shot.Saved {
			if !hasKeeper {
				continue
			}
			shooter := shot.Shooter
			keeperRef := keeper.Ref()
			events = append(events, match.Event{
				Minute:      shot.Minute,
				Type:        match.EventSave,
				Side:        side.Opponent(),
				Player:      &keeperRef,
				Assist:      nil,
				Description: describeSave(rng, shooter.Name, keeper.Name),
			})
			continue
		}
		if goals >= shots.Goals {
			continue
		}

		scorer, ok := byID[shot.Shooter.ID]
		if !ok {
			scorer = selectScorer(rng, cal, shooting)
		}
		events = append(events, goalEvent(rng, cal, side, shooting, scorer, shot.Minute, shot.Quality))
		goals++
	}

	for ; goals < shots.Goals; goals++ {
		scorer := selectScorer(rng, cal, shooting)
		events = append(events, goalEvent(rng, cal, side, shooting, scorer, syntheticMinute(rng, cal), match.QualityHalfChance))
	}

	return events
}

func goalEvent(
	rng random.Source,
	cal Calibration,
	side match.Side,
	shooting team.State,
	scorer player.Player,
	minute int,
	quality match.ShotQuality,
) match.Event {
	scorerRef := scorer.Ref()
	event := match.Event{
		Minute: minute,
		Type:   match.EventGoal,
		Side:   side,
		Player: &scorerRef,
	}

	assistName := ""
	if assister, ok := selectAssister(rng, cal, shooting, scorer.ID); ok {
		ref := assister.Ref()
		event.Assist = &ref
		assistName = assister.Name
	}
	event.Description = describeGoal(rng, quality, scorer.Name, assistName)
	return event
}

// syntheticMinute places a goal with no originating shot, leaning towards
// the second half.
func syntheticMinute(rng random.Source, cal Calibration) int {
	if random.Chance(rng, cal.SecondHalfBias) {
		return random.Between(rng, 46, 90)
	}
	return random.Between(rng, 1, 45)
}
