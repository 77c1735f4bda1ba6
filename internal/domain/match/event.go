package match

import "github.com/riskibarqy/match-engine/internal/domain/player"

type EventType string

const (
	EventGoal          EventType = "goal"
	EventSave          EventType = "save"
	EventYellowCard    EventType = "yellow_card"
	EventSecondYellow  EventType = "second_yellow"
	EventRedCard       EventType = "red_card"
	EventHalfTime      EventType = "half_time"
	EventFullTime      EventType = "full_time"
	EventPenaltyScored EventType = "penalty_scored"
	EventPenaltySaved  EventType = "penalty_saved"
	EventPenaltyMissed EventType = "penalty_missed"
)

// Event is one entry of the match timeline. Player and Assist are nil
// when the event has no such participant.
type Event struct {
	Minute      int         `json:"minute"`
	Type        EventType   `json:"type"`
	Side        Side        `json:"side,omitempty"`
	Player      *player.Ref `json:"player,omitempty"`
	Assist      *player.Ref `json:"assist,omitempty"`
	Description string      `json:"description"`
}

// IsDismissal reports whether the event sends a player off.
func (e Event) IsDismissal() bool {
	return e.Type == EventRedCard || e.Type == EventSecondYellow
}

// CountGoals returns the goal events per side.
func CountGoals(events []Event) (home, away int) {
	for _, e := range events {
		if e.Type != EventGoal {
			continue
		}
		if e.Side == SideHome {
			home++
		} else {
			away++
		}
	}
	return home, away
}
