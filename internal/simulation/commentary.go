package simulation

import (
	"strings"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

var goalTemplates = map[match.ShotQuality][]string{
	match.QualityFullChance: {
		"{player} is left unmarked and slots it past the keeper.",
		"{player} taps in from six yards.",
		"{player} rounds the goalkeeper and rolls it into an empty net.",
		"{player} sweeps it first time into the bottom corner from close range.",
	},
	match.QualityHalfChance: {
		"{player} twists inside the box and fires low into the corner.",
		"{player} gets on the end of it and glances a header home.",
		"{player} finds a yard of space and drills it through a crowd of bodies.",
		"{player} steers a difficult volley beyond the dive.",
	},
	match.QualityLongRange: {
		"{player} lets fly from 25 yards and it flies into the top corner!",
		"{player} unleashes a thunderbolt from distance that the keeper never sees.",
		"{player} curls a sublime effort in off the post from outside the area.",
		"{player} tries his luck from range and it dips under the bar!",
	},
}

var assistTemplates = []string{
	" {assist} with the assist.",
	" Superb delivery from {assist}.",
	" {assist} picked him out perfectly.",
	" Great vision from {assist} to set it up.",
}

var saveTemplates = []string{
	"{keeper} gets down well to keep out {player}'s effort.",
	"Brilliant reflex save by {keeper} to deny {player}.",
	"{player} forces {keeper} into a smart stop.",
	"{keeper} tips {player}'s shot over the bar.",
	"{player} goes for goal but {keeper} holds on comfortably.",
}

var missTemplates = []string{
	"{player} blazes it over the bar.",
	"{player} drags it wide of the post.",
	"{player} hits the woodwork!",
	"{player} skies it into the stands.",
}

var yellowCardTemplates = []string{
	"{player} is booked for a cynical foul.",
	"{player} goes into the book after a late challenge.",
	"{player} sees yellow for dissent.",
	"{player} is cautioned for pulling back his man.",
}

var redCardTemplates = []string{
	"{player} is sent off for a dangerous tackle!",
	"Straight red for {player} after denying a clear goalscoring opportunity!",
	"{player} sees red for violent conduct!",
}

var secondYellowTemplates = []string{
	"{player} picks up a second yellow and is sent off!",
	"A second booking for {player}, and he has to go!",
	"{player} is off! Two yellows make a red.",
}

var penaltyScoredTemplates = []string{
	"{player} sends the keeper the wrong way.",
	"{player} smashes it into the roof of the net.",
	"{player} rolls it calmly into the corner.",
}

var penaltySavedTemplates = []string{
	"{keeper} guesses right and saves from {player}!",
	"{keeper} stands tall and blocks {player}'s penalty!",
}

func renderTemplate(tpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

func describeGoal(rng random.Source, quality match.ShotQuality, scorer string, assist string) string {
	pool, ok := goalTemplates[quality]
	if !ok {
		pool = goalTemplates[match.QualityHalfChance]
	}
	text := renderTemplate(random.Pick(rng, pool), map[string]string{"player": scorer})
	if assist != "" {
		text += renderTemplate(random.Pick(rng, assistTemplates), map[string]string{"assist": assist})
	}
	return text
}

func describeSave(rng random.Source, shooter, keeper string) string {
	return renderTemplate(random.Pick(rng, saveTemplates), map[string]string{"player": shooter, "keeper": keeper})
}

func describeCard(rng random.Source, kind match.EventType, name string) string {
	pool := yellowCardTemplates
	switch kind {
	case match.EventRedCard:
		pool = redCardTemplates
	case match.EventSecondYellow:
		pool = secondYellowTemplates
	}
	return renderTemplate(random.Pick(rng, pool), map[string]string{"player": name})
}

// describePenalty picks kick commentary by index so the shootout does not
// consume extra random draws.
func describePenalty(kind match.EventType, kick int, taker, keeper string) string {
	pool := penaltyScoredTemplates
	switch kind {
	case match.EventPenaltySaved:
		pool = penaltySavedTemplates
	case match.EventPenaltyMissed:
		pool = missTemplates
	}
	return renderTemplate(pool[kick%len(pool)], map[string]string{"player": taker, "keeper": keeper})
}
