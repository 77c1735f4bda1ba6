package player

import "fmt"

// Position is the slot a player occupies in a lineup.
type Position string

const (
	PositionGoalkeeper          Position = "GK"
	PositionCenterBack          Position = "CB"
	PositionLeftBack            Position = "LB"
	PositionRightBack           Position = "RB"
	PositionLeftWingBack        Position = "LWB"
	PositionRightWingBack       Position = "RWB"
	PositionDefensiveMidfielder Position = "CDM"
	PositionCentralMidfielder   Position = "CM"
	PositionLeftMidfielder      Position = "LM"
	PositionRightMidfielder     Position = "RM"
	PositionAttackingMidfielder Position = "CAM"
	PositionLeftWinger          Position = "LW"
	PositionRightWinger         Position = "RW"
	PositionStriker             Position = "ST"
)

// Role groups positions into the buckets used by team composites.
type Role string

const (
	RoleGoalkeeper Role = "goalkeeper"
	RoleDefense    Role = "defense"
	RoleMidfield   Role = "midfield"
	RoleAttack     Role = "attack"
)

var positionRoles = map[Position]Role{
	PositionGoalkeeper:          RoleGoalkeeper,
	PositionCenterBack:          RoleDefense,
	PositionLeftBack:            RoleDefense,
	PositionRightBack:           RoleDefense,
	PositionLeftWingBack:        RoleDefense,
	PositionRightWingBack:       RoleDefense,
	PositionDefensiveMidfielder: RoleMidfield,
	PositionCentralMidfielder:   RoleMidfield,
	PositionLeftMidfielder:      RoleMidfield,
	PositionRightMidfielder:     RoleMidfield,
	PositionAttackingMidfielder: RoleAttack,
	PositionLeftWinger:          RoleAttack,
	PositionRightWinger:         RoleAttack,
	PositionStriker:             RoleAttack,
}

// AllPositions lists every position in lineup order, goalkeeper first.
var AllPositions = []Position{
	PositionGoalkeeper,
	PositionCenterBack,
	PositionLeftBack,
	PositionRightBack,
	PositionLeftWingBack,
	PositionRightWingBack,
	PositionDefensiveMidfielder,
	PositionCentralMidfielder,
	PositionLeftMidfielder,
	PositionRightMidfielder,
	PositionAttackingMidfielder,
	PositionLeftWinger,
	PositionRightWinger,
	PositionStriker,
}

func (p Position) Valid() bool {
	_, ok := positionRoles[p]
	return ok
}

func (p Position) Role() Role {
	return positionRoles[p]
}

// Player is a rostered athlete with the attributes the simulation reads.
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Attributes  Attributes `json:"attributes"`
	Consistency int        `json:"consistency"`
}

// Ref is the lightweight identity attached to events and shots.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p Player) Ref() Ref {
	return Ref{ID: p.ID, Name: p.Name}
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Consistency < 0 || p.Consistency > 100 {
		return fmt.Errorf("player %s consistency must be within 0..100", p.ID)
	}
	if err := p.Attributes.Validate(); err != nil {
		return fmt.Errorf("player %s: %w", p.ID, err)
	}

	return nil
}
