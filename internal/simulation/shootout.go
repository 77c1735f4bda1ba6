package simulation

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

const (
	regulationKicks      = 5
	MaxSuddenDeathRounds = 20
	shootoutMinute       = 90

	basePenaltyConversion = 0.75
	minPenaltyConversion  = 0.5
	maxPenaltyConversion  = 0.9
	// Share of failed kicks the keeper saves; the rest miss the target.
	penaltySaveShare = 0.6
)

type shootoutSide struct {
	side    match.Side
	state   team.State
	kickers []player.Player
	keeper  player.Player
	gk      float64
	kicks   []bool
	score   int
}

func newShootoutSide(side match.Side, s, opponent team.State) *shootoutSide {
	out := &shootoutSide{side: side, state: s, kickers: penaltyOrder(s), gk: 50}
	if keeper, ok := opponent.Goalkeeper(); ok {
		out.keeper = keeper
		out.gk = Rate(keeper, player.PositionGoalkeeper)
	}
	return out
}

// penaltyOrder ranks outfield players by composure plus shot accuracy.
// The goalkeeper only kicks when nobody else is available.
func penaltyOrder(s team.State) []player.Player {
	kickers := s.Outfield()
	if len(kickers) == 0 {
		kickers = append(kickers, s.Roster...)
	}
	if len(kickers) == 0 {
		panic(crerr.AssertionFailedf("penalty shootout for team %s with an empty roster", s.ID))
	}
	sort.SliceStable(kickers, func(i, j int) bool {
		a := kickers[i].Attributes.Composure + kickers[i].Attributes.ShotAccuracy
		b := kickers[j].Attributes.Composure + kickers[j].Attributes.ShotAccuracy
		return a > b
	})
	return kickers
}

func penaltyConversion(kicker player.Player, gkRating float64) float64 {
	a := kicker.Attributes
	p := basePenaltyConversion +
		float64(a.Composure-50)/500 +
		float64(a.ShotAccuracy-50)/400 +
		float64(a.Technique-50)/600 -
		(gkRating-50)/300
	return clamp(p, minPenaltyConversion, maxPenaltyConversion)
}

func (s *shootoutSide) nextKicker() player.Player {
	return s.kickers[len(s.kicks)%len(s.kickers)]
}

// kick takes one penalty. A forced outcome skips the conversion roll.
func (s *shootoutSide) kick(rng random.Source, events *[]match.Event, forced *bool) {
	kicker := s.nextKicker()
	kind := match.EventPenaltyScored

	if forced != nil {
		if !*forced {
			kind = match.EventPenaltySaved
		}
	} else {
		p := penaltyConversion(kicker, s.gk)
		roll := rng.Float64()
		switch {
		case roll < p:
		case roll < p+(1-p)*penaltySaveShare:
			kind = match.EventPenaltySaved
		default:
			kind = match.EventPenaltyMissed
		}
	}

	scored := kind == match.EventPenaltyScored
	if scored {
		s.score++
	}
	ref := kicker.Ref()
	*events = append(*events, match.Event{
		Minute:      shootoutMinute,
		Type:        kind,
		Side:        s.side,
		Player:      &ref,
		Description: describePenalty(kind, len(s.kicks), kicker.Name, s.keeper.Name),
	})
	s.kicks = append(s.kicks, scored)
}

// decided reports whether either side can no longer be caught within the
// regulation kicks.
func decided(home, away *shootoutSide) bool {
	homeLeft := regulationKicks - len(home.kicks)
	awayLeft := regulationKicks - len(away.kicks)
	return home.score > away.score+awayLeft || away.score > home.score+homeLeft
}

// resolveShootout plays a penalty shootout between two sides, home kicking
// first, and appends every kick to events.
func resolveShootout(rng random.Source, home, away team.State, events *[]match.Event) match.Shootout {
	if events == nil {
		events = &[]match.Event{}
	}
	start := len(*events)
	h := newShootoutSide(match.SideHome, home, away)
	a := newShootoutSide(match.SideAway, away, home)

	for round := 0; round < regulationKicks; round++ {
		h.kick(rng, events, nil)
		if decided(h, a) {
			break
		}
		a.kick(rng, events, nil)
		if decided(h, a) {
			break
		}
	}

	for round := 0; h.score == a.score && round < MaxSuddenDeathRounds; round++ {
		h.kick(rng, events, nil)
		a.kick(rng, events, nil)
	}

	if h.score == a.score {
		homeWins := random.Chance(rng, 0.5)
		awayWins := !homeWins
		h.kick(rng, events, &homeWins)
		a.kick(rng, events, &awayWins)
	}

	out := match.Shootout{
		HomeKicks: h.kicks,
		AwayKicks: a.kicks,
		HomeScore: h.score,
		AwayScore: a.score,
		Events:    append([]match.Event(nil), (*events)[start:]...),
	}
	if h.score > a.score {
		out.WinnerTeamID = home.ID
	} else {
		out.WinnerTeamID = away.ID
	}
	return out
}
