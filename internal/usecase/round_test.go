package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/match-engine/internal/mocks/domain/match"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
	"github.com/stretchr/testify/mock"
)

func roundFixtures(n int) []match.Input {
	out := make([]match.Input, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, match.Input{
			Home: testTeam(fmt.Sprintf("h%d", i), 60+i),
			Away: testTeam(fmt.Sprintf("a%d", i), 64-i),
		})
	}
	return out
}

func TestSimulateRound_ReproducibleAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	fixtures := roundFixtures(6)

	serial := newTestService(t, memory.NewMatchRepository(), nil, nil)
	serial.cfg.WorkerCount = 1
	parallel := newTestService(t, memory.NewMatchRepository(), nil, nil)
	parallel.cfg.WorkerCount = 6

	a, err := serial.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: fixtures, Seed: seedPtr(21)})
	if err != nil {
		t.Fatalf("serial round: %v", err)
	}
	b, err := parallel.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: fixtures, Seed: seedPtr(21)})
	if err != nil {
		t.Fatalf("parallel round: %v", err)
	}

	if len(a.Matches) != 6 || len(b.Matches) != 6 {
		t.Fatalf("expected 6 matches each, got %d and %d", len(a.Matches), len(b.Matches))
	}
	for i := range a.Matches {
		if a.Matches[i].Seed != b.Matches[i].Seed {
			t.Fatalf("fixture %d seed mismatch: %d vs %d", i, a.Matches[i].Seed, b.Matches[i].Seed)
		}
		if !reflect.DeepEqual(a.Matches[i].Result, b.Matches[i].Result) {
			t.Fatalf("fixture %d result differs between worker counts", i)
		}
		if a.Matches[i].Result.HomeTeamID != fixtures[i].Home.ID {
			t.Fatalf("fixture %d out of order: got home %s", i, a.Matches[i].Result.HomeTeamID)
		}
	}
	if !reflect.DeepEqual(a.Standings, b.Standings) {
		t.Fatalf("standings differ between worker counts")
	}
}

func TestSimulateRound_StandingsCoverEveryTeam(t *testing.T) {
	t.Parallel()

	m := metrics.NewMock()
	svc := newTestService(t, memory.NewMatchRepository(), nil, m)

	res, err := svc.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: roundFixtures(4), Seed: seedPtr(5)})
	if err != nil {
		t.Fatalf("simulate round: %v", err)
	}

	if len(res.Standings) != 8 {
		t.Fatalf("expected 8 standings rows, got %d", len(res.Standings))
	}
	if got := m.MatchesSimulated(); got != 4 {
		t.Fatalf("expected 4 simulated matches, got %d", got)
	}
	if got := m.DurationsObserved("round"); got != 1 {
		t.Fatalf("expected 1 round duration, got %d", got)
	}

	points := 0
	for i, row := range res.Standings {
		if row.Played != 1 {
			t.Fatalf("%s played %d", row.TeamID, row.Played)
		}
		if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
			t.Fatalf("%s goal difference %d inconsistent", row.TeamID, row.GoalDifference)
		}
		points += row.Points
		if i > 0 && res.Standings[i-1].Points < row.Points {
			t.Fatalf("standings not ordered by points at row %d", i)
		}
	}
	if points < 8 || points > 12 {
		t.Fatalf("four fixtures should award 8 to 12 points, got %d", points)
	}
}

func TestSimulateRound_RejectsTeamInTwoFixtures(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	svc := newTestService(t, repo, nil, nil)

	fixtures := roundFixtures(2)
	fixtures[1].Home = testTeam("h0", 60)

	_, err := svc.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: fixtures, Seed: seedPtr(1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulateRound_RejectsEmptyAndOversizedRounds(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, memory.NewMatchRepository(), nil, nil)

	if _, err := svc.SimulateRound(context.Background(), SimulateRoundInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty round: expected ErrInvalidInput, got %v", err)
	}
	_, err := svc.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: roundFixtures(maxRoundFixtures + 1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized round: expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulateRound_SaveFailureFailsRound(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	svc := newTestService(t, repo, nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.SimulateRound(context.Background(), SimulateRoundInput{Fixtures: roundFixtures(3), Seed: seedPtr(1)})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestBuildStandings_ShootoutRecordedAsDraw(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		{Result: match.Result{HomeTeamID: "a", AwayTeamID: "b", HomeScore: 1, AwayScore: 1, WinnerTeamID: "b", Shootout: &match.Shootout{WinnerTeamID: "b"}}},
		{Result: match.Result{HomeTeamID: "c", AwayTeamID: "d", HomeScore: 3, AwayScore: 0, WinnerTeamID: "c"}},
	}

	rows := buildStandings(records)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0].TeamID != "c" || rows[0].Points != 3 || rows[0].GoalDifference != 3 {
		t.Fatalf("unexpected leader %+v", rows[0])
	}
	if rows[1].TeamID != "a" || rows[1].Drawn != 1 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	if rows[2].TeamID != "b" || rows[2].Points != 1 {
		t.Fatalf("shootout winner should take a draw point, got %+v", rows[2])
	}
	if rows[3].TeamID != "d" || rows[3].Lost != 1 {
		t.Fatalf("unexpected last row %+v", rows[3])
	}
}
