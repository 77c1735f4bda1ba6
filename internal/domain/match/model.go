package match

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
)

var ErrInvalidInput = errors.New("invalid match input")

// Side marks which team an event or stat belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Input is the pair of lineups for one simulation.
type Input struct {
	Home team.State `json:"home"`
	Away team.State `json:"away"`
}

func (in Input) Validate() error {
	if err := in.Home.Validate(); err != nil {
		return fmt.Errorf("%w: home: %v", ErrInvalidInput, err)
	}
	if err := in.Away.Validate(); err != nil {
		return fmt.Errorf("%w: away: %v", ErrInvalidInput, err)
	}
	if in.Home.ID == in.Away.ID {
		return fmt.Errorf("%w: home and away share team id %s", ErrInvalidInput, in.Home.ID)
	}
	for _, p := range in.Away.Roster {
		if _, ok := in.Home.PositionOf(p.ID); ok {
			return fmt.Errorf("%w: player %s is on both rosters", ErrInvalidInput, p.ID)
		}
	}
	return nil
}

func (in Input) Team(side Side) team.State {
	if side == SideAway {
		return in.Away
	}
	return in.Home
}

// Composites are the 0..100 strength ratings of one side.
type Composites struct {
	Attack     float64 `json:"attack"`
	Defense    float64 `json:"defense"`
	Midfield   float64 `json:"midfield"`
	Goalkeeper float64 `json:"goalkeeper"`
}

type ShotQuality string

const (
	QualityFullChance ShotQuality = "full_chance"
	QualityHalfChance ShotQuality = "half_chance"
	QualityLongRange  ShotQuality = "long_range"
)

// ShotDetail is one resolved on-target shot.
type ShotDetail struct {
	Minute  int         `json:"minute"`
	Quality ShotQuality `json:"quality"`
	Saved   bool        `json:"saved"`
	Shooter player.Ref  `json:"shooter"`
}

// ShotResult is one team's resolved shooting for a match.
// Saves+Goals always equals ShotsOnTarget.
type ShotResult struct {
	Goals         int          `json:"goals"`
	ShotsOnTarget int          `json:"shots_on_target"`
	Saves         int          `json:"saves"`
	Details       []ShotDetail `json:"details"`
}

type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Result is the assembled outcome of one simulated match.
type Result struct {
	HomeTeamID     string     `json:"home_team_id"`
	AwayTeamID     string     `json:"away_team_id"`
	HomeTeamName   string     `json:"home_team_name"`
	AwayTeamName   string     `json:"away_team_name"`
	HomeScore      int        `json:"home_score"`
	AwayScore      int        `json:"away_score"`
	WinnerTeamID   string     `json:"winner_team_id"`
	HalfTime       Score      `json:"half_time"`
	HomeXG         float64    `json:"home_xg"`
	AwayXG         float64    `json:"away_xg"`
	HomeComposites Composites `json:"home_composites"`
	AwayComposites Composites `json:"away_composites"`
	Events         []Event    `json:"events"`
	BoxScore       BoxScore   `json:"box_score"`
	Narrative      []string   `json:"narrative"`
	Shootout       *Shootout  `json:"shootout,omitempty"`
}

// Shootout holds the kick sequences of a tie decided from the spot.
type Shootout struct {
	HomeKicks    []bool  `json:"home_kicks"`
	AwayKicks    []bool  `json:"away_kicks"`
	HomeScore    int     `json:"home_score"`
	AwayScore    int     `json:"away_score"`
	WinnerTeamID string  `json:"winner_team_id"`
	Events       []Event `json:"events"`
}
