package simulation

import (
	"fmt"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
)

var lineup442 = []player.Position{
	player.PositionGoalkeeper,
	player.PositionLeftBack,
	player.PositionCenterBack,
	player.PositionCenterBack,
	player.PositionRightBack,
	player.PositionLeftMidfielder,
	player.PositionCentralMidfielder,
	player.PositionCentralMidfielder,
	player.PositionRightMidfielder,
	player.PositionStriker,
	player.PositionStriker,
}

func buildTeam(id string, rating int) team.State {
	s := team.State{
		ID:        id,
		Name:      "Team " + id,
		Positions: make(map[string]player.Position, len(lineup442)),
		Formation: "4-4-2",
		Tactics:   team.Tactics{AttackingStyle: team.StylePossession, Pressing: team.PressingBalanced},
	}
	for i, pos := range lineup442 {
		p := player.Player{
			ID:          fmt.Sprintf("%s-%02d", id, i+1),
			Name:        fmt.Sprintf("%s Player %d", id, i+1),
			Attributes:  player.Uniform(rating),
			Consistency: 70,
		}
		s.Roster = append(s.Roster, p)
		s.Positions[p.ID] = pos
	}
	return s
}

func loneKeeper(id string) team.State {
	p := player.Player{ID: id + "-gk", Name: "Lone Keeper", Attributes: player.Uniform(60), Consistency: 50}
	return team.State{
		ID:        id,
		Name:      "Team " + id,
		Roster:    []player.Player{p},
		Positions: map[string]player.Position{p.ID: player.PositionGoalkeeper},
	}
}

func sampleInput() match.Input {
	return match.Input{Home: buildTeam("home", 65), Away: buildTeam("away", 65)}
}

func newTestEngine() *Engine {
	engine, err := NewEngine(DefaultCalibration(), nil, nil)
	if err != nil {
		panic(err)
	}
	return engine
}
