package httpapi

import (
	"time"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
)

type tacticsRequest struct {
	AttackingStyle string `json:"attacking_style" validate:"omitempty,oneof=possession direct counter"`
	Pressing       string `json:"pressing" validate:"omitempty,oneof=high balanced low"`
}

type playerRequest struct {
	ID          string            `json:"id" validate:"required,max=64"`
	Name        string            `json:"name" validate:"required,max=100"`
	Position    string            `json:"position" validate:"required,oneof=GK CB LB RB LWB RWB CDM CM LM RM CAM LW RW ST"`
	Consistency int               `json:"consistency" validate:"min=0,max=100"`
	Attributes  player.Attributes `json:"attributes"`
}

type teamRequest struct {
	ID        string          `json:"id" validate:"required,max=64"`
	Name      string          `json:"name" validate:"required,max=100"`
	Formation string          `json:"formation" validate:"omitempty,max=16"`
	Tactics   tacticsRequest  `json:"tactics"`
	Players   []playerRequest `json:"players" validate:"required,min=1,max=30,dive"`
}

type fixtureRequest struct {
	Home teamRequest `json:"home" validate:"required"`
	Away teamRequest `json:"away" validate:"required"`
}

type simulateMatchRequest struct {
	fixtureRequest
	Seed *int64 `json:"seed"`
}

type simulateRoundRequest struct {
	Fixtures []fixtureRequest `json:"fixtures" validate:"required,min=1,max=64,dive"`
	Seed     *int64           `json:"seed"`
}

type forecastRequest struct {
	fixtureRequest
	Iterations int    `json:"iterations" validate:"required,min=1"`
	Seed       *int64 `json:"seed"`
}

func (t teamRequest) toState() team.State {
	state := team.State{
		ID:        t.ID,
		Name:      t.Name,
		Roster:    make([]player.Player, 0, len(t.Players)),
		Positions: make(map[string]player.Position, len(t.Players)),
		Formation: t.Formation,
		Tactics: team.Tactics{
			AttackingStyle: team.AttackingStyle(t.Tactics.AttackingStyle),
			Pressing:       team.Pressing(t.Tactics.Pressing),
		},
	}
	for _, p := range t.Players {
		state.Roster = append(state.Roster, player.Player{
			ID:          p.ID,
			Name:        p.Name,
			Attributes:  p.Attributes,
			Consistency: p.Consistency,
		})
		state.Positions[p.ID] = player.Position(p.Position)
	}
	return state
}

func (f fixtureRequest) toInput() match.Input {
	return match.Input{Home: f.Home.toState(), Away: f.Away.toState()}
}

// matchSummaryDTO is the list view of a stored simulation.
type matchSummaryDTO struct {
	ID                string `json:"id"`
	Seed              int64  `json:"seed"`
	HomeTeamID        string `json:"home_team_id"`
	HomeTeamName      string `json:"home_team_name"`
	AwayTeamID        string `json:"away_team_id"`
	AwayTeamName      string `json:"away_team_name"`
	HomeScore         int    `json:"home_score"`
	AwayScore         int    `json:"away_score"`
	WinnerTeamID      string `json:"winner_team_id"`
	DecidedByShootout bool   `json:"decided_by_shootout"`
	SimulatedAt       string `json:"simulated_at"`
}

func matchSummaryToDTO(r match.Record) matchSummaryDTO {
	return matchSummaryDTO{
		ID:                r.ID,
		Seed:              r.Seed,
		HomeTeamID:        r.Result.HomeTeamID,
		HomeTeamName:      r.Result.HomeTeamName,
		AwayTeamID:        r.Result.AwayTeamID,
		AwayTeamName:      r.Result.AwayTeamName,
		HomeScore:         r.Result.HomeScore,
		AwayScore:         r.Result.AwayScore,
		WinnerTeamID:      r.Result.WinnerTeamID,
		DecidedByShootout: r.Result.Shootout != nil,
		SimulatedAt:       r.SimulatedAt.UTC().Format(time.RFC3339),
	}
}

func matchSummariesToDTO(records []match.Record) []matchSummaryDTO {
	out := make([]matchSummaryDTO, 0, len(records))
	for _, r := range records {
		out = append(out, matchSummaryToDTO(r))
	}
	return out
}
