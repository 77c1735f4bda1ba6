package team

import (
	"fmt"

	"github.com/riskibarqy/match-engine/internal/domain/player"
)

// AttackingStyle is the team's plan in possession.
type AttackingStyle string

const (
	StylePossession AttackingStyle = "possession"
	StyleDirect     AttackingStyle = "direct"
	StyleCounter    AttackingStyle = "counter"
)

// Pressing is the team's plan out of possession.
type Pressing string

const (
	PressingHigh     Pressing = "high"
	PressingBalanced Pressing = "balanced"
	PressingLow      Pressing = "low"
)

type Tactics struct {
	AttackingStyle AttackingStyle `json:"attacking_style"`
	Pressing       Pressing       `json:"pressing"`
}

// State is one side's lineup as handed to the simulation.
type State struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Roster    []player.Player            `json:"roster"`
	Positions map[string]player.Position `json:"positions"`
	Formation string                     `json:"formation"`
	Tactics   Tactics                    `json:"tactics"`
}

// PositionOf returns the assigned position of a rostered player.
func (s State) PositionOf(playerID string) (player.Position, bool) {
	pos, ok := s.Positions[playerID]
	return pos, ok
}

// Goalkeeper returns the player tagged GK, falling back to the first
// roster entry. ok is false only for an empty roster.
func (s State) Goalkeeper() (player.Player, bool) {
	for _, p := range s.Roster {
		if s.Positions[p.ID] == player.PositionGoalkeeper {
			return p, true
		}
	}
	if len(s.Roster) == 0 {
		return player.Player{}, false
	}
	return s.Roster[0], true
}

// Outfield returns every rostered player except the goalkeeper.
func (s State) Outfield() []player.Player {
	gk, ok := s.Goalkeeper()
	out := make([]player.Player, 0, len(s.Roster))
	for _, p := range s.Roster {
		if ok && p.ID == gk.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s State) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(s.Roster) == 0 {
		return fmt.Errorf("team %s roster is empty", s.ID)
	}

	seen := make(map[string]struct{}, len(s.Roster))
	for _, p := range s.Roster {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", s.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("team %s: duplicate player %s", s.ID, p.ID)
		}
		seen[p.ID] = struct{}{}

		pos, ok := s.Positions[p.ID]
		if !ok {
			return fmt.Errorf("team %s: player %s has no position", s.ID, p.ID)
		}
		if !pos.Valid() {
			return fmt.Errorf("team %s: player %s has invalid position %q", s.ID, p.ID, pos)
		}
	}
	if len(s.Positions) != len(s.Roster) {
		return fmt.Errorf("team %s: positions assigned to players outside the roster", s.ID)
	}

	switch s.Tactics.AttackingStyle {
	case StylePossession, StyleDirect, StyleCounter, "":
	default:
		return fmt.Errorf("team %s: unknown attacking style %q", s.ID, s.Tactics.AttackingStyle)
	}
	switch s.Tactics.Pressing {
	case PressingHigh, PressingBalanced, PressingLow, "":
	default:
		return fmt.Errorf("team %s: unknown pressing %q", s.ID, s.Tactics.Pressing)
	}

	return nil
}
