package simulation

import (
	"sort"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

// Discipline produces the card events of a match. Returned events must
// already carry their minute.
type Discipline interface {
	GenerateCardEvents(rng random.Source, home, away team.State, homeGoals, awayGoals int) []match.Event
}

// DefaultDiscipline books a handful of fouls per side, more for a side
// that is chasing the game or pressing high.
type DefaultDiscipline struct {
	MinBookings     int
	MaxBookings     int
	StraightRedRate float64
	// TrailingBonus is the extra booking chance per goal of deficit.
	TrailingBonus float64
}

func NewDefaultDiscipline() DefaultDiscipline {
	return DefaultDiscipline{
		MinBookings:     0,
		MaxBookings:     3,
		StraightRedRate: 0.05,
		TrailingBonus:   0.25,
	}
}

type booking struct {
	minute int
	player player.Player
	red    bool
}

func (d DefaultDiscipline) GenerateCardEvents(rng random.Source, home, away team.State, homeGoals, awayGoals int) []match.Event {
	events := d.sideCards(rng, match.SideHome, home, awayGoals-homeGoals)
	events = append(events, d.sideCards(rng, match.SideAway, away, homeGoals-awayGoals)...)
	return events
}

func (d DefaultDiscipline) sideCards(rng random.Source, side match.Side, s team.State, deficit int) []match.Event {
	if len(s.Roster) == 0 {
		return nil
	}

	count := random.Between(rng, d.MinBookings, d.MaxBookings)
	if s.Tactics.Pressing == team.PressingHigh && random.Chance(rng, 0.5) {
		count++
	}
	for i := 0; i < deficit; i++ {
		if random.Chance(rng, d.TrailingBonus) {
			count++
		}
	}

	bookings := make([]booking, 0, count)
	for i := 0; i < count; i++ {
		bookings = append(bookings, booking{
			minute: random.Between(rng, 1, 90),
			player: d.pickOffender(rng, s),
			red:    random.Chance(rng, d.StraightRedRate),
		})
	}
	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].minute < bookings[j].minute })

	yellows := make(map[string]int, len(bookings))
	sentOff := make(map[string]bool, len(bookings))
	events := make([]match.Event, 0, len(bookings))
	for _, b := range bookings {
		if sentOff[b.player.ID] {
			continue
		}

		kind := match.EventYellowCard
		switch {
		case b.red:
			kind = match.EventRedCard
		case yellows[b.player.ID] == 1:
			kind = match.EventSecondYellow
		}
		if kind == match.EventYellowCard {
			yellows[b.player.ID]++
		} else {
			sentOff[b.player.ID] = true
		}

		ref := b.player.Ref()
		events = append(events, match.Event{
			Minute:      b.minute,
			Type:        kind,
			Side:        side,
			Player:      &ref,
			Description: describeCard(rng, kind, b.player.Name),
		})
	}
	return events
}

func (d DefaultDiscipline) pickOffender(rng random.Source, s team.State) player.Player {
	candidates := make([]weighted[player.Player], 0, len(s.Roster))
	for _, p := range s.Roster {
		aggression := 0.5 + float64(p.Attributes.Tackling+p.Attributes.Strength)/400
		candidates = append(candidates, weighted[player.Player]{
			item:   p,
			weight: foulPositionWeights[positionOrDefault(s, p)] * aggression,
		})
	}
	return weightedPick(rng, candidates)
}
