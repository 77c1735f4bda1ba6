package simulation

import (
	"slices"
	"testing"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/platform/random"
)

func goalEventFor(side match.Side, id string, minute int) match.Event {
	ref := player.Ref{ID: id, Name: id}
	return match.Event{Minute: minute, Type: match.EventGoal, Side: side, Player: &ref}
}

func checkPlayerTotals(t *testing.T, box match.BoxScore) {
	t.Helper()
	for _, side := range []match.Side{match.SideHome, match.SideAway} {
		shots, onTarget, goals := 0, 0, 0
		for id, ps := range box.Players {
			if ps.Side != side {
				continue
			}
			if ps.ShotsOnTarget > ps.Shots {
				t.Fatalf("%s: on target %d exceeds shots %d", id, ps.ShotsOnTarget, ps.Shots)
			}
			shots += ps.Shots
			onTarget += ps.ShotsOnTarget
			goals += ps.Goals
		}
		stats := box.Team(side)
		if stats.Shots != shots || stats.ShotsOnTarget != onTarget || stats.Goals != goals {
			t.Fatalf("%s player totals %d/%d/%d do not match team line %d/%d/%d",
				side, shots, onTarget, goals, stats.Shots, stats.ShotsOnTarget, stats.Goals)
		}
	}
}

func TestBuildBoxScore_ResolvedShots(t *testing.T) {
	in := sampleInput()
	homeShots := match.ShotResult{Goals: 2, ShotsOnTarget: 6, Saves: 4}
	awayShots := match.ShotResult{Goals: 0, ShotsOnTarget: 2, Saves: 2}
	events := []match.Event{
		goalEventFor(match.SideHome, "home-10", 20),
		goalEventFor(match.SideHome, "home-11", 80),
	}
	comp := ComposeStrength(in.Home)

	for seed := int64(0); seed < 100; seed++ {
		box := BuildBoxScore(random.New(seed), DefaultCalibration(), in, events, comp, comp,
			ResolvedShots{Home: homeShots, Away: awayShots})

		if box.Home.Shots < 8 {
			t.Fatalf("seed %d: expected at least 8 home shots, got %d", seed, box.Home.Shots)
		}
		if box.Home.ShotsOnTarget != 6 || box.Home.Goals != 2 {
			t.Fatalf("seed %d: unexpected home line %+v", seed, box.Home)
		}
		if box.Home.Saves != 2 || box.Away.Saves != 4 {
			t.Fatalf("seed %d: saves should mirror the opponent's shots, got home %d away %d", seed, box.Home.Saves, box.Away.Saves)
		}
		if box.Home.Possession+box.Away.Possession != 100 {
			t.Fatalf("seed %d: possession sums to %d", seed, box.Home.Possession+box.Away.Possession)
		}
		for _, stats := range []match.TeamStats{box.Home, box.Away} {
			if stats.Possession < 30 || stats.Possession > 70 {
				t.Fatalf("seed %d: possession %d out of range", seed, stats.Possession)
			}
			if stats.Corners < 1 || stats.Corners > 12 {
				t.Fatalf("seed %d: corners %d out of range", seed, stats.Corners)
			}
			if stats.Fouls < 5 || stats.Fouls > 20 {
				t.Fatalf("seed %d: fouls %d out of range", seed, stats.Fouls)
			}
		}
		checkPlayerTotals(t, box)
		if got := box.Players["home-01"].Saves; got != 2 {
			t.Fatalf("seed %d: home keeper saves = %d, want 2", seed, got)
		}
	}
}

func TestBuildBoxScore_SynthesizedShots(t *testing.T) {
	in := sampleInput()
	events := []match.Event{
		goalEventFor(match.SideAway, "away-10", 5),
		goalEventFor(match.SideAway, "away-10", 55),
		goalEventFor(match.SideAway, "away-11", 88),
	}
	comp := ComposeStrength(in.Home)

	for seed := int64(0); seed < 100; seed++ {
		box := BuildBoxScore(random.New(seed), DefaultCalibration(), in, events, comp, comp, SynthesizedShots{})

		if box.Away.ShotsOnTarget < 3 || box.Away.Shots < box.Away.ShotsOnTarget {
			t.Fatalf("seed %d: inconsistent away line %+v", seed, box.Away)
		}
		if box.Home.Saves != box.Away.ShotsOnTarget-3 {
			t.Fatalf("seed %d: home saves %d, want %d", seed, box.Home.Saves, box.Away.ShotsOnTarget-3)
		}
		if got := box.Players["away-10"].Goals; got != 2 {
			t.Fatalf("seed %d: away-10 goals = %d, want 2", seed, got)
		}
		checkPlayerTotals(t, box)
	}
}

func TestBuildBoxScore_CardsAndMinutes(t *testing.T) {
	in := sampleInput()
	booked := player.Ref{ID: "home-03", Name: "home-03"}
	events := []match.Event{
		{Minute: 20, Type: match.EventYellowCard, Side: match.SideHome, Player: &booked},
		{Minute: 61, Type: match.EventSecondYellow, Side: match.SideHome, Player: &booked},
	}
	comp := ComposeStrength(in.Home)
	box := BuildBoxScore(random.New(1), DefaultCalibration(), in, events, comp, comp, SynthesizedShots{})

	if box.Home.YellowCards != 2 || box.Home.RedCards != 1 {
		t.Fatalf("expected 2 yellows and 1 red, got %d and %d", box.Home.YellowCards, box.Home.RedCards)
	}
	if got := box.Players["home-03"].MinutesPlayed; got != 61 {
		t.Fatalf("sent-off player minutes = %d, want 61", got)
	}
	if got := box.Players["home-04"].MinutesPlayed; got != 90 {
		t.Fatalf("unbooked player minutes = %d, want 90", got)
	}
	if len(box.Players) != 22 {
		t.Fatalf("expected 22 player lines, got %d", len(box.Players))
	}
}

func TestBuildBoxScore_MinutesCoverInvolvementAfterDismissal(t *testing.T) {
	in := sampleInput()
	scorer := player.Ref{ID: "away-08", Name: "away-08"}
	provider := player.Ref{ID: "away-09", Name: "away-09"}
	keeper := player.Ref{ID: "home-01", Name: "home-01"}
	goal := goalEventFor(match.SideAway, scorer.ID, 67)
	goal.Assist = &provider
	events := []match.Event{
		{Minute: 7, Type: match.EventRedCard, Side: match.SideAway, Player: &scorer},
		{Minute: 12, Type: match.EventRedCard, Side: match.SideAway, Player: &provider},
		{Minute: 30, Type: match.EventRedCard, Side: match.SideHome, Player: &keeper},
		{Minute: 74, Type: match.EventSave, Side: match.SideHome, Player: &keeper},
		goal,
	}
	comp := ComposeStrength(in.Home)
	box := BuildBoxScore(random.New(3), DefaultCalibration(), in, events, comp, comp, SynthesizedShots{})

	cases := map[string]int{"away-08": 67, "away-09": 67, "home-01": 74}
	for id, want := range cases {
		if got := box.Players[id].MinutesPlayed; got != want {
			t.Fatalf("%s minutes = %d, want %d", id, got, want)
		}
	}
	if box.Players["away-08"].Goals != 1 || box.Players["away-08"].RedCards != 1 {
		t.Fatalf("unexpected line for away-08: %+v", box.Players["away-08"])
	}
}

func TestLargestRemainder(t *testing.T) {
	cases := []struct {
		total   int
		weights []float64
		want    []int
	}{
		{3, []float64{2, 1, 0}, []int{2, 1, 0}},
		{2, []float64{0, 0}, []int{1, 1}},
		{0, []float64{1, 1}, []int{0, 0}},
	}
	for _, tc := range cases {
		if got := largestRemainder(tc.total, tc.weights); !slices.Equal(got, tc.want) {
			t.Fatalf("largestRemainder(%d, %v) = %v, want %v", tc.total, tc.weights, got, tc.want)
		}
	}

	shares := largestRemainder(7, []float64{0.3, 0.3, 0.3})
	if sum := shares[0] + shares[1] + shares[2]; sum != 7 {
		t.Fatalf("shares %v sum to %d, want 7", shares, sum)
	}
}
