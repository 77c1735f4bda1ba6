package simulation

import (
	"sort"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

const halfTimeMinute = 45

// Engine simulates matches. It holds no per-match state and is safe for
// concurrent use as long as each call gets its own random source.
type Engine struct {
	cal        Calibration
	discipline Discipline
	logger     *logging.Logger
}

func NewEngine(cal Calibration, discipline Discipline, logger *logging.Logger) (*Engine, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if discipline == nil {
		discipline = NewDefaultDiscipline()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		cal:        cal,
		discipline: discipline,
		logger:     logger.With("component", "simulation_engine"),
	}, nil
}

func (e *Engine) Calibration() Calibration {
	return e.cal
}

// SimulateMatch plays one full match between the two sides of in.
func (e *Engine) SimulateMatch(rng random.Source, in match.Input) (match.Result, error) {
	if err := in.Validate(); err != nil {
		return match.Result{}, err
	}
	home, away := in.Home, in.Away

	homeComp := ComposeStrength(home)
	awayComp := ComposeStrength(away)

	homeXG := ComputeXG(e.cal, homeComp.Attack, awayComp.Defense, awayComp.Goalkeeper,
		home.Tactics.AttackingStyle, away.Tactics.Pressing, true)
	awayXG := ComputeXG(e.cal, awayComp.Attack, homeComp.Defense, homeComp.Goalkeeper,
		away.Tactics.AttackingStyle, home.Tactics.Pressing, false)

	homeShots := ProcessShots(rng, e.cal, homeXG, home, away)
	awayShots := ProcessShots(rng, e.cal, awayXG, away, home)

	events := AttributeShots(rng, e.cal, match.SideHome, home, away, homeShots)
	events = append(events, AttributeShots(rng, e.cal, match.SideAway, away, home, awayShots)...)
	events = append(events, e.discipline.GenerateCardEvents(rng, home, away, homeShots.Goals, awayShots.Goals)...)

	events = markHalves(events)
	halfTime := halfTimeScore(events)
	homeScore, awayScore := match.CountGoals(events)

	box := BuildBoxScore(rng, e.cal, in, events, homeComp, awayComp, ResolvedShots{Home: homeShots, Away: awayShots})

	result := match.Result{
		HomeTeamID:     home.ID,
		AwayTeamID:     away.ID,
		HomeTeamName:   home.Name,
		AwayTeamName:   away.Name,
		HomeScore:      homeScore,
		AwayScore:      awayScore,
		HalfTime:       halfTime,
		HomeXG:         homeXG,
		AwayXG:         awayXG,
		HomeComposites: homeComp,
		AwayComposites: awayComp,
		Events:         events,
		BoxScore:       box,
	}

	switch {
	case homeScore > awayScore:
		result.WinnerTeamID = home.ID
	case awayScore > homeScore:
		result.WinnerTeamID = away.ID
	default:
		kicks := make([]match.Event, 0, 2*regulationKicks)
		shootout := e.SimulatePenaltyShootout(rng, home, away, &kicks)
		result.Shootout = &shootout
		result.WinnerTeamID = shootout.WinnerTeamID
	}

	result.Narrative = Narrate(events, home.Name, away.Name, result.Shootout)

	e.logger.Debug("match simulated",
		"home_team_id", home.ID,
		"away_team_id", away.ID,
		"home_score", homeScore,
		"away_score", awayScore,
		"home_xg", homeXG,
		"away_xg", awayXG,
		"shootout", result.Shootout != nil,
	)
	return result, nil
}

// SimulatePenaltyShootout resolves a tie from the spot. Kick events are
// appended to events as they are taken.
func (e *Engine) SimulatePenaltyShootout(rng random.Source, home, away team.State, events *[]match.Event) match.Shootout {
	return resolveShootout(rng, home, away, events)
}

// markHalves sorts the timeline by minute and adds the half_time and
// full_time markers.
func markHalves(events []match.Event) []match.Event {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Minute < events[j].Minute })

	at := len(events)
	for i, ev := range events {
		if ev.Minute > halfTimeMinute {
			at = i
			break
		}
	}

	out := make([]match.Event, 0, len(events)+2)
	out = append(out, events[:at]...)
	out = append(out, match.Event{Minute: halfTimeMinute, Type: match.EventHalfTime, Description: "Half-time"})
	out = append(out, events[at:]...)
	out = append(out, match.Event{Minute: fullMatch, Type: match.EventFullTime, Description: "Full-time"})
	return out
}

func halfTimeScore(events []match.Event) match.Score {
	for i, ev := range events {
		if ev.Type == match.EventHalfTime {
			home, away := match.CountGoals(events[:i])
			return match.Score{Home: home, Away: away}
		}
	}
	return match.Score{}
}
