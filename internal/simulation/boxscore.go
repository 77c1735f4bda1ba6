package simulation

import (
	"math"
	"sort"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

// ShotData tells the box score where shot counts come from. It is either
// ResolvedShots or SynthesizedShots.
type ShotData interface {
	shotData()
}

// ResolvedShots carries the shots actually simulated for both sides.
type ResolvedShots struct {
	Home match.ShotResult
	Away match.ShotResult
}

// SynthesizedShots asks the box score to estimate shot counts from the
// composites and the goal count.
type SynthesizedShots struct{}

func (ResolvedShots) shotData()    {}
func (SynthesizedShots) shotData() {}

var stylePossession = map[team.AttackingStyle]float64{
	team.StylePossession: 5,
	team.StyleDirect:     -3,
	team.StyleCounter:    -5,
}

var pressingPossession = map[team.Pressing]float64{
	team.PressingHigh: 3,
	team.PressingLow:  -3,
}

const (
	possessionNoise = 3
	minPossession   = 30
	maxPossession   = 70
	minCorners      = 1
	maxCorners      = 12
	minFouls        = 5
	maxFouls        = 20
	fullMatch       = 90
)

// BuildBoxScore aggregates team and player statistics for a match whose
// timeline is events. events must not include shootout kicks.
func BuildBoxScore(
	rng random.Source,
	cal Calibration,
	in match.Input,
	events []match.Event,
	homeComp, awayComp match.Composites,
	shots ShotData,
) match.BoxScore {
	var box match.BoxScore
	box.Home.Goals, box.Away.Goals = match.CountGoals(events)

	switch data := shots.(type) {
	case ResolvedShots:
		fillResolved(cal, &box.Home, data.Home, data.Away)
		fillResolved(cal, &box.Away, data.Away, data.Home)
	default:
		fillSynthesized(rng, cal, &box.Home, homeComp, awayComp)
		fillSynthesized(rng, cal, &box.Away, awayComp, homeComp)
		// Each side's keeper faces the other side's on-target shots.
		box.Home.Saves, box.Away.Saves = box.Away.ShotsOnTarget-box.Away.Goals, box.Home.ShotsOnTarget-box.Home.Goals
	}

	box.Home.Possession = possession(rng, cal, in, homeComp, awayComp)
	box.Away.Possession = 100 - box.Home.Possession

	box.Home.Corners = corners(rng, box.Home, box.Away)
	box.Away.Corners = corners(rng, box.Away, box.Home)
	box.Home.Fouls = fouls(rng, box.Home, in.Home.Tactics.Pressing)
	box.Away.Fouls = fouls(rng, box.Away, in.Away.Tactics.Pressing)

	for _, e := range events {
		stats := &box.Home
		if e.Side == match.SideAway {
			stats = &box.Away
		}
		switch e.Type {
		case match.EventYellowCard:
			stats.YellowCards++
		case match.EventSecondYellow:
			stats.YellowCards++
			stats.RedCards++
		case match.EventRedCard:
			stats.RedCards++
		}
	}

	box.Players = playerStats(in, events, box, shots)
	return box
}

func fillResolved(cal Calibration, stats *match.TeamStats, own, opponent match.ShotResult) {
	stats.ShotsOnTarget = own.ShotsOnTarget
	stats.Shots = own.ShotsOnTarget
	if derived := int(math.Round(float64(own.ShotsOnTarget) / cal.OnTargetRate)); derived > stats.Shots {
		stats.Shots = derived
	}
	stats.Saves = opponent.Saves
	for _, d := range own.Details {
		if d.Quality == match.QualityFullChance {
			stats.Chances++
		}
	}
}

func fillSynthesized(rng random.Source, cal Calibration, stats *match.TeamStats, own, opponent match.Composites) {
	diff := (own.Attack - opponent.Defense) / 10
	base := cal.ShotOpportunityMultiplier * cal.BaseExpectedGoals
	shots := int(math.Round(base + diff + random.Uniform(rng, -3, 3)))
	stats.Shots = clampInt(shots, max(stats.Goals, 1), 35)

	onTarget := int(math.Round(float64(stats.Shots)*cal.OnTargetRate + random.Uniform(rng, -1, 1)))
	stats.ShotsOnTarget = clampInt(onTarget, stats.Goals, stats.Shots)

	chances := stats.Goals + random.Between(rng, 0, 3)
	stats.Chances = clampInt(chances, stats.Goals, stats.Shots)
}

func possession(rng random.Source, cal Calibration, in match.Input, home, away match.Composites) int {
	value := 50 + (home.Midfield-away.Midfield)*cal.PossessionPerPoint
	value += stylePossession[in.Home.Tactics.AttackingStyle] - stylePossession[in.Away.Tactics.AttackingStyle]
	value += pressingPossession[in.Home.Tactics.Pressing] - pressingPossession[in.Away.Tactics.Pressing]
	value += random.Uniform(rng, -possessionNoise, possessionNoise)
	return clampInt(int(math.Round(value)), minPossession, maxPossession)
}

func corners(rng random.Source, own, opponent match.TeamStats) int {
	value := 5 + float64(own.Possession-50)/10 + float64(own.Shots-opponent.Shots)/4
	value += random.Uniform(rng, -2, 2)
	return clampInt(int(math.Round(value)), minCorners, maxCorners)
}

func fouls(rng random.Source, own match.TeamStats, pressing team.Pressing) int {
	value := 12 - float64(own.Possession-50)/8
	if pressing == team.PressingHigh {
		value += 2
	}
	value += random.Uniform(rng, -3, 3)
	return clampInt(int(math.Round(value)), minFouls, maxFouls)
}

func playerStats(in match.Input, events []match.Event, box match.BoxScore, shots ShotData) map[string]match.PlayerStats {
	players := make(map[string]match.PlayerStats, len(in.Home.Roster)+len(in.Away.Roster))
	for _, side := range []match.Side{match.SideHome, match.SideAway} {
		for _, p := range in.Team(side).Roster {
			players[p.ID] = match.PlayerStats{Side: side, Name: p.Name, MinutesPlayed: fullMatch}
		}
	}

	update := func(id string, fn func(*match.PlayerStats)) {
		stats, ok := players[id]
		if !ok {
			return
		}
		fn(&stats)
		players[id] = stats
	}

	// Cards come from the discipline collaborator after goals and saves are
	// resolved, so a dismissed player may still appear later in the match.
	lastInvolved := make(map[string]int)
	involve := func(ref *player.Ref, minute int) {
		if ref != nil && minute > lastInvolved[ref.ID] {
			lastInvolved[ref.ID] = minute
		}
	}
	dismissedAt := make(map[string]int)

	for _, e := range events {
		if e.Player == nil {
			continue
		}
		switch e.Type {
		case match.EventGoal, match.EventSave:
			involve(e.Player, e.Minute)
			involve(e.Assist, e.Minute)
		}
		switch e.Type {
		case match.EventGoal:
			update(e.Player.ID, func(s *match.PlayerStats) {
				s.Goals++
				s.Shots++
				s.ShotsOnTarget++
			})
			if e.Assist != nil {
				update(e.Assist.ID, func(s *match.PlayerStats) { s.Assists++ })
			}
		case match.EventYellowCard:
			update(e.Player.ID, func(s *match.PlayerStats) { s.YellowCards++ })
		case match.EventSecondYellow, match.EventRedCard:
			update(e.Player.ID, func(s *match.PlayerStats) {
				if e.Type == match.EventSecondYellow {
					s.YellowCards++
				}
				s.RedCards++
			})
			if _, seen := dismissedAt[e.Player.ID]; !seen {
				dismissedAt[e.Player.ID] = e.Minute
			}
		}
	}

	if resolved, ok := shots.(ResolvedShots); ok {
		for _, result := range []match.ShotResult{resolved.Home, resolved.Away} {
			for _, d := range result.Details {
				if !d.Saved {
					continue
				}
				update(d.Shooter.ID, func(s *match.PlayerStats) {
					s.Shots++
					s.ShotsOnTarget++
				})
				involve(&d.Shooter, d.Minute)
			}
		}
	}

	for id, minute := range dismissedAt {
		update(id, func(s *match.PlayerStats) {
			s.MinutesPlayed = max(minute, lastInvolved[id])
		})
	}

	for _, side := range []match.Side{match.SideHome, match.SideAway} {
		s := in.Team(side)
		stats := box.Team(side)
		distributeResidualShots(s, stats, players)
		if gk, ok := s.Goalkeeper(); ok {
			update(gk.ID, func(ps *match.PlayerStats) { ps.Saves = stats.Saves })
		}
	}
	return players
}

// distributeResidualShots hands out the team shots no event accounted for,
// on-target first, so player totals add up to the team line.
func distributeResidualShots(s team.State, stats match.TeamStats, players map[string]match.PlayerStats) {
	if len(s.Roster) == 0 {
		return
	}

	assignedShots, assignedOnTarget := 0, 0
	weights := make([]float64, len(s.Roster))
	for i, p := range s.Roster {
		ps := players[p.ID]
		assignedShots += ps.Shots
		assignedOnTarget += ps.ShotsOnTarget
		weights[i] = goalPositionWeights[positionOrDefault(s, p)]
	}

	onTarget := largestRemainder(max(stats.ShotsOnTarget-assignedOnTarget, 0), weights)
	for i, p := range s.Roster {
		ps := players[p.ID]
		ps.ShotsOnTarget += onTarget[i]
		ps.Shots += onTarget[i]
		players[p.ID] = ps
		assignedShots += onTarget[i]
	}

	offTarget := largestRemainder(max(stats.Shots-assignedShots, 0), weights)
	for i, p := range s.Roster {
		ps := players[p.ID]
		ps.Shots += offTarget[i]
		players[p.ID] = ps
	}
}

// largestRemainder splits total into integer shares proportional to weights.
func largestRemainder(total int, weights []float64) []int {
	shares := make([]int, len(weights))
	if total == 0 || len(weights) == 0 {
		return shares
	}

	sum := 0.0
	for _, w := range weights {
		sum += math.Max(w, 0)
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, len(weights))
	allocated := 0
	for i, w := range weights {
		exact := float64(total) / float64(len(weights))
		if sum > 0 {
			exact = float64(total) * math.Max(w, 0) / sum
		}
		shares[i] = int(math.Floor(exact))
		allocated += shares[i]
		rems[i] = remainder{index: i, frac: exact - float64(shares[i])}
	}

	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; allocated < total; i++ {
		shares[rems[i%len(rems)].index]++
		allocated++
	}
	return shares
}
