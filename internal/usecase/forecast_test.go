package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
)

func TestForecast_ProbabilitiesSumToOne(t *testing.T) {
	t.Parallel()

	m := metrics.NewMock()
	svc := newTestService(t, memory.NewMatchRepository(), nil, m)

	out, err := svc.Forecast(context.Background(), ForecastInput{
		Input:      match.Input{Home: testTeam("home", 72), Away: testTeam("away", 58)},
		Iterations: 200,
		Seed:       seedPtr(17),
	})
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}

	sum := out.HomeWinProbability + out.DrawProbability + out.AwayWinProbability
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("regulation probabilities sum to %v", sum)
	}
	if adv := out.HomeAdvance + out.AwayAdvance; math.Abs(adv-1) > 1e-9 {
		t.Fatalf("advance probabilities sum to %v", adv)
	}
	if out.HomeWinProbability <= out.AwayWinProbability {
		t.Fatalf("stronger home side should be favoured: %v <= %v", out.HomeWinProbability, out.AwayWinProbability)
	}
	if out.AverageHomeXG <= out.AverageAwayXG {
		t.Fatalf("stronger home side should create more xg")
	}
	if len(out.TopScorelines) == 0 || len(out.TopScorelines) > topScorelines {
		t.Fatalf("unexpected scoreline count %d", len(out.TopScorelines))
	}
	if out.TopScorelines[0] != out.MostLikelyScoreline {
		t.Fatalf("most likely scoreline should lead the list")
	}
	if got := m.ForecastIterations(); got != 200 {
		t.Fatalf("expected 200 recorded iterations, got %d", got)
	}
	if out.HomeTeamID != "home" {
		t.Fatalf("unexpected home team %q", out.HomeTeamID)
	}
}

func TestForecast_IndependentOfBatchLayout(t *testing.T) {
	t.Parallel()

	in := ForecastInput{
		Input:      match.Input{Home: testTeam("home", 65), Away: testTeam("away", 65)},
		Iterations: 90,
		Seed:       seedPtr(3),
	}

	one := newTestService(t, memory.NewMatchRepository(), nil, nil)
	one.cfg.WorkerCount = 1
	many := newTestService(t, memory.NewMatchRepository(), nil, nil)
	many.cfg.WorkerCount = 7

	a, err := one.Forecast(context.Background(), in)
	if err != nil {
		t.Fatalf("single worker forecast: %v", err)
	}
	b, err := many.Forecast(context.Background(), in)
	if err != nil {
		t.Fatalf("multi worker forecast: %v", err)
	}

	if a.HomeWinProbability != b.HomeWinProbability || a.DrawProbability != b.DrawProbability {
		t.Fatalf("probabilities differ between worker counts")
	}
	if !reflect.DeepEqual(a.TopScorelines, b.TopScorelines) {
		t.Fatalf("scorelines differ between worker counts")
	}
	if math.Abs(a.AverageHomeXG-b.AverageHomeXG) > 1e-9 {
		t.Fatalf("average xg differs: %v vs %v", a.AverageHomeXG, b.AverageHomeXG)
	}
}

func TestForecast_IterationBounds(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, memory.NewMatchRepository(), nil, nil)
	in := match.Input{Home: testTeam("home", 65), Away: testTeam("away", 65)}

	for _, n := range []int{0, -1, 501} {
		_, err := svc.Forecast(context.Background(), ForecastInput{Input: in, Iterations: n, Seed: seedPtr(1)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("iterations=%d: expected ErrInvalidInput, got %v", n, err)
		}
	}
}

func TestForecast_CancelledContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, memory.NewMatchRepository(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Forecast(ctx, ForecastInput{
		Input:      match.Input{Home: testTeam("home", 65), Away: testTeam("away", 65)},
		Iterations: 100,
		Seed:       seedPtr(1),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSummarise_OrdersScorelines(t *testing.T) {
	t.Parallel()

	tally := forecastTally{
		homeWins: 2, draws: 1, awayWins: 1,
		homeAdvance: 3, awayAdvance: 1,
		homeGoals: 6, awayGoals: 3,
		scorelines: map[match.Score]int{
			{Home: 2, Away: 0}: 2,
			{Home: 1, Away: 1}: 1,
			{Home: 0, Away: 1}: 1,
		},
	}

	out := summarise(tally, 4)
	if out.HomeWinProbability != 0.5 || out.HomeAdvance != 0.75 || out.AverageHomeGoals != 1.5 {
		t.Fatalf("unexpected summary %+v", out)
	}
	if want := (ScorelineProbability{Home: 2, Away: 0, Probability: 0.5}); out.MostLikelyScoreline != want {
		t.Fatalf("expected most likely %+v, got %+v", want, out.MostLikelyScoreline)
	}
	if len(out.TopScorelines) != 3 {
		t.Fatalf("expected 3 scorelines, got %d", len(out.TopScorelines))
	}
	if want := (ScorelineProbability{Home: 0, Away: 1, Probability: 0.25}); out.TopScorelines[1] != want {
		t.Fatalf("ties should order by home goals ascending: got %+v", out.TopScorelines[1])
	}
}
