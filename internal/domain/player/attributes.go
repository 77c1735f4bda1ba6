package player

import "fmt"

// Attribute identifies one rated skill.
type Attribute int

const (
	AttrFinishing Attribute = iota
	AttrShotAccuracy
	AttrShotPower
	AttrLongShots
	AttrHeading
	AttrCrossing
	AttrShortPassing
	AttrLongPassing
	AttrVision
	AttrDribbling
	AttrTechnique
	AttrAcceleration
	AttrPace
	AttrAgility
	AttrStamina
	AttrStrength
	AttrMarking
	AttrTackling
	AttrInterceptions
	AttrPositioning
	AttrComposure
	AttrReactions
	AttrDiving
	AttrHandling
	AttrReflexes
	AttrDistribution

	attributeCount
)

// AttributeCount is the number of rated skills per player.
const AttributeCount = int(attributeCount)

// Attributes holds 0..100 ratings for every skill.
type Attributes struct {
	Finishing     int `json:"finishing"`
	ShotAccuracy  int `json:"shot_accuracy"`
	ShotPower     int `json:"shot_power"`
	LongShots     int `json:"long_shots"`
	Heading       int `json:"heading"`
	Crossing      int `json:"crossing"`
	ShortPassing  int `json:"short_passing"`
	LongPassing   int `json:"long_passing"`
	Vision        int `json:"vision"`
	Dribbling     int `json:"dribbling"`
	Technique     int `json:"technique"`
	Acceleration  int `json:"acceleration"`
	Pace          int `json:"pace"`
	Agility       int `json:"agility"`
	Stamina       int `json:"stamina"`
	Strength      int `json:"strength"`
	Marking       int `json:"marking"`
	Tackling      int `json:"tackling"`
	Interceptions int `json:"interceptions"`
	Positioning   int `json:"positioning"`
	Composure     int `json:"composure"`
	Reactions     int `json:"reactions"`
	Diving        int `json:"diving"`
	Handling      int `json:"handling"`
	Reflexes      int `json:"reflexes"`
	Distribution  int `json:"distribution"`
}

// Get returns the rating of one attribute.
func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case AttrFinishing:
		return a.Finishing
	case AttrShotAccuracy:
		return a.ShotAccuracy
	case AttrShotPower:
		return a.ShotPower
	case AttrLongShots:
		return a.LongShots
	case AttrHeading:
		return a.Heading
	case AttrCrossing:
		return a.Crossing
	case AttrShortPassing:
		return a.ShortPassing
	case AttrLongPassing:
		return a.LongPassing
	case AttrVision:
		return a.Vision
	case AttrDribbling:
		return a.Dribbling
	case AttrTechnique:
		return a.Technique
	case AttrAcceleration:
		return a.Acceleration
	case AttrPace:
		return a.Pace
	case AttrAgility:
		return a.Agility
	case AttrStamina:
		return a.Stamina
	case AttrStrength:
		return a.Strength
	case AttrMarking:
		return a.Marking
	case AttrTackling:
		return a.Tackling
	case AttrInterceptions:
		return a.Interceptions
	case AttrPositioning:
		return a.Positioning
	case AttrComposure:
		return a.Composure
	case AttrReactions:
		return a.Reactions
	case AttrDiving:
		return a.Diving
	case AttrHandling:
		return a.Handling
	case AttrReflexes:
		return a.Reflexes
	case AttrDistribution:
		return a.Distribution
	default:
		return 0
	}
}

func (a Attributes) Validate() error {
	for attr := Attribute(0); attr < attributeCount; attr++ {
		v := a.Get(attr)
		if v < 0 || v > 100 {
			return fmt.Errorf("attribute %d out of range: %d", attr, v)
		}
	}
	return nil
}

// Uniform returns attributes with every skill set to v.
func Uniform(v int) Attributes {
	return Attributes{
		Finishing: v, ShotAccuracy: v, ShotPower: v, LongShots: v, Heading: v,
		Crossing: v, ShortPassing: v, LongPassing: v, Vision: v, Dribbling: v,
		Technique: v, Acceleration: v, Pace: v, Agility: v, Stamina: v,
		Strength: v, Marking: v, Tackling: v, Interceptions: v, Positioning: v,
		Composure: v, Reactions: v, Diving: v, Handling: v, Reflexes: v,
		Distribution: v,
	}
}
