package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/platform/random"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const topScorelines = 5

type ForecastInput struct {
	Input      match.Input
	Iterations int
	Seed       *int64
}

type ScorelineProbability struct {
	Home        int     `json:"home"`
	Away        int     `json:"away"`
	Probability float64 `json:"probability"`
}

// Forecast summarises repeated simulations of one fixture. Win and draw
// probabilities refer to regulation; advance probabilities include shootouts.
type Forecast struct {
	HomeTeamID          string                 `json:"home_team_id"`
	AwayTeamID          string                 `json:"away_team_id"`
	Seed                int64                  `json:"seed"`
	Iterations          int                    `json:"iterations"`
	HomeWinProbability  float64                `json:"home_win_probability"`
	DrawProbability     float64                `json:"draw_probability"`
	AwayWinProbability  float64                `json:"away_win_probability"`
	HomeAdvance         float64                `json:"home_advance_probability"`
	AwayAdvance         float64                `json:"away_advance_probability"`
	AverageHomeGoals    float64                `json:"average_home_goals"`
	AverageAwayGoals    float64                `json:"average_away_goals"`
	AverageHomeXG       float64                `json:"average_home_xg"`
	AverageAwayXG       float64                `json:"average_away_xg"`
	MostLikelyScoreline ScorelineProbability   `json:"most_likely_scoreline"`
	TopScorelines       []ScorelineProbability `json:"top_scorelines"`
}

type forecastTally struct {
	homeWins, draws, awayWins int
	homeAdvance, awayAdvance  int
	homeGoals, awayGoals      int
	homeXG, awayXG            float64
	scorelines                map[match.Score]int
}

func (t *forecastTally) merge(other forecastTally) {
	t.homeWins += other.homeWins
	t.draws += other.draws
	t.awayWins += other.awayWins
	t.homeAdvance += other.homeAdvance
	t.awayAdvance += other.awayAdvance
	t.homeGoals += other.homeGoals
	t.awayGoals += other.awayGoals
	t.homeXG += other.homeXG
	t.awayXG += other.awayXG
	for score, n := range other.scorelines {
		t.scorelines[score] += n
	}
}

// Forecast runs a Monte Carlo simulation of one fixture across worker
// batches. Iteration i always draws from stream Derive(seed, i), so the
// result does not depend on the batch layout.
func (s *SimulationService) Forecast(ctx context.Context, input ForecastInput) (Forecast, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Forecast",
		attribute.Int("forecast.iterations", input.Iterations))
	defer span.End()

	if input.Iterations < 1 || input.Iterations > s.cfg.ForecastMaxIterations {
		err := fmt.Errorf("%w: iterations must be within 1..%d", ErrInvalidInput, s.cfg.ForecastMaxIterations)
		recordSpanError(span, err)
		return Forecast{}, err
	}
	if err := input.Input.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
		recordSpanError(span, err)
		return Forecast{}, err
	}
	seed, err := s.resolveSeed(input.Seed)
	if err != nil {
		recordSpanError(span, err)
		return Forecast{}, err
	}

	start := s.now()
	batches := min(s.cfg.WorkerCount, input.Iterations)
	p := pool.NewWithResults[forecastTally]().
		WithContext(ctx).
		WithMaxGoroutines(batches).
		WithCancelOnError()
	for b := 0; b < batches; b++ {
		from := b * input.Iterations / batches
		to := (b + 1) * input.Iterations / batches
		p.Go(func(ctx context.Context) (forecastTally, error) {
			return s.forecastBatch(ctx, input.Input, seed, from, to)
		})
	}
	partials, err := p.Wait()
	if err != nil {
		recordSpanError(span, err)
		return Forecast{}, err
	}

	total := forecastTally{scorelines: make(map[match.Score]int)}
	for _, partial := range partials {
		total.merge(partial)
	}
	s.metrics.AddForecastIterations(input.Iterations)
	s.metrics.ObserveSimulationDuration("forecast", s.now().Sub(start).Seconds())

	out := summarise(total, input.Iterations)
	out.HomeTeamID = input.Input.Home.ID
	out.AwayTeamID = input.Input.Away.ID
	out.Seed = seed
	return out, nil
}

func (s *SimulationService) forecastBatch(ctx context.Context, in match.Input, seed int64, from, to int) (forecastTally, error) {
	tally := forecastTally{scorelines: make(map[match.Score]int)}
	for i := from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return forecastTally{}, err
		}
		res, err := s.engine.SimulateMatch(random.New(random.Derive(seed, i)), in)
		if err != nil {
			return forecastTally{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		switch {
		case res.HomeScore > res.AwayScore:
			tally.homeWins++
		case res.AwayScore > res.HomeScore:
			tally.awayWins++
		default:
			tally.draws++
		}
		if res.WinnerTeamID == in.Home.ID {
			tally.homeAdvance++
		} else {
			tally.awayAdvance++
		}
		tally.homeGoals += res.HomeScore
		tally.awayGoals += res.AwayScore
		tally.homeXG += res.HomeXG
		tally.awayXG += res.AwayXG
		tally.scorelines[match.Score{Home: res.HomeScore, Away: res.AwayScore}]++
	}
	return tally, nil
}

func summarise(t forecastTally, iterations int) Forecast {
	n := float64(iterations)
	out := Forecast{
		Iterations:         iterations,
		HomeWinProbability: float64(t.homeWins) / n,
		DrawProbability:    float64(t.draws) / n,
		AwayWinProbability: float64(t.awayWins) / n,
		HomeAdvance:        float64(t.homeAdvance) / n,
		AwayAdvance:        float64(t.awayAdvance) / n,
		AverageHomeGoals:   float64(t.homeGoals) / n,
		AverageAwayGoals:   float64(t.awayGoals) / n,
		AverageHomeXG:      t.homeXG / n,
		AverageAwayXG:      t.awayXG / n,
	}

	lines := make([]ScorelineProbability, 0, len(t.scorelines))
	for score, count := range t.scorelines {
		lines = append(lines, ScorelineProbability{Home: score.Home, Away: score.Away, Probability: float64(count) / n})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Probability != lines[j].Probability {
			return lines[i].Probability > lines[j].Probability
		}
		if lines[i].Home != lines[j].Home {
			return lines[i].Home < lines[j].Home
		}
		return lines[i].Away < lines[j].Away
	})
	if len(lines) > topScorelines {
		lines = lines[:topScorelines]
	}
	if len(lines) > 0 {
		out.MostLikelyScoreline = lines[0]
	}
	out.TopScorelines = lines
	return out
}
