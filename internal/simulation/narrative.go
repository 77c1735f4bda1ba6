package simulation

import (
	"fmt"

	"github.com/riskibarqy/match-engine/internal/domain/match"
)

// Narrate renders the timeline as display lines, followed by the kicks of
// the shootout when there was one. It draws no randomness,
// so the same events always produce the same lines.
func Narrate(events []match.Event, homeName, awayName string, shootout *match.Shootout) []string {
	lines := make([]string, 0, len(events)+8)
	lines = append(lines,
		fmt.Sprintf("%s vs %s", homeName, awayName),
		fmt.Sprintf("Kick-off! %s get us underway against %s.", homeName, awayName),
	)

	teamName := func(side match.Side) string {
		if side == match.SideAway {
			return awayName
		}
		return homeName
	}
	scoreline := func(home, away int) string {
		return fmt.Sprintf("%s %d-%d %s", homeName, home, away, awayName)
	}

	home, away := 0, 0
	for _, e := range events {
		switch e.Type {
		case match.EventGoal:
			if e.Side == match.SideAway {
				away++
			} else {
				home++
			}
			lines = append(lines, fmt.Sprintf("%d' GOAL! %s: %s [%s]", e.Minute, teamName(e.Side), e.Description, scoreline(home, away)))
		case match.EventSave:
			lines = append(lines, fmt.Sprintf("%d' Save! %s", e.Minute, e.Description))
		case match.EventYellowCard:
			lines = append(lines, fmt.Sprintf("%d' Yellow card, %s. %s", e.Minute, teamName(e.Side), e.Description))
		case match.EventSecondYellow, match.EventRedCard:
			lines = append(lines, fmt.Sprintf("%d' Red card, %s. %s", e.Minute, teamName(e.Side), e.Description))
		case match.EventHalfTime:
			lines = append(lines, "", "Half-time: "+scoreline(home, away), "")
		case match.EventFullTime:
			lines = append(lines, "", "Full-time: "+scoreline(home, away), "")
		case match.EventPenaltyScored, match.EventPenaltySaved, match.EventPenaltyMissed:
			lines = append(lines, fmt.Sprintf("Penalty, %s: %s", teamName(e.Side), e.Description))
		default:
			lines = append(lines, fmt.Sprintf("%d' %s", e.Minute, e.Description))
		}
	}

	if shootout != nil {
		winner := homeName
		if shootout.AwayScore > shootout.HomeScore {
			winner = awayName
		}
		lines = append(lines, "Penalty shootout.")
		for _, e := range shootout.Events {
			lines = append(lines, fmt.Sprintf("Penalty, %s: %s", teamName(e.Side), e.Description))
		}
		lines = append(lines,
			fmt.Sprintf("Penalties: %s %d-%d %s", homeName, shootout.HomeScore, shootout.AwayScore, awayName),
			fmt.Sprintf("%s win the shootout.", winner),
		)
	}
	return lines
}
