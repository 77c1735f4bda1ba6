package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/platform/random"
	"go.opentelemetry.io/otel/attribute"
)

const maxRoundFixtures = 64

type SimulateRoundInput struct {
	Fixtures []match.Input
	Seed     *int64
}

// StandingRow is one team's line in a round table. Shootouts decide the
// match winner but the table records a draw.
type StandingRow struct {
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type RoundResult struct {
	Seed      int64          `json:"seed"`
	Matches   []match.Record `json:"matches"`
	Standings []StandingRow  `json:"standings"`
}

// SimulateRound plays every fixture in parallel. Fixture i always draws
// from stream Derive(seed, i), so a seed reproduces the whole round.
func (s *SimulationService) SimulateRound(ctx context.Context, input SimulateRoundInput) (RoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateRound",
		attribute.Int("round.fixtures", len(input.Fixtures)))
	defer span.End()

	if err := validateFixtures(input.Fixtures); err != nil {
		recordSpanError(span, err)
		return RoundResult{}, err
	}
	seed, err := s.resolveSeed(input.Seed)
	if err != nil {
		recordSpanError(span, err)
		return RoundResult{}, err
	}

	workerCount := min(s.cfg.WorkerCount, len(input.Fixtures))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RoundResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := s.now()
	records := make([]match.Record, len(input.Fixtures))
	var (
		workers  sync.WaitGroup
		errMu    sync.Mutex
		failures []error
	)
	fail := func(err error) {
		errMu.Lock()
		failures = append(failures, err)
		errMu.Unlock()
	}

	for i, fixture := range input.Fixtures {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}

			record, err := s.play(random.Derive(seed, i), fixture)
			if err != nil {
				fail(fmt.Errorf("fixture %d: %w", i, err))
				return
			}
			if err := s.repo.Save(ctx, record); err != nil {
				fail(fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrapf(err, "save fixture %d", i)))
				return
			}
			if s.cache != nil {
				s.cache.Set(ctx, matchCachePrefix+record.ID, record)
			}
			records[i] = record
		}); err != nil {
			workers.Done()
			return RoundResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}
	workers.Wait()

	if len(failures) > 0 {
		err := errors.Join(failures...)
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "round simulation failed", "failures", len(failures), "error", err)
		return RoundResult{}, err
	}
	s.metrics.ObserveSimulationDuration("round", s.now().Sub(start).Seconds())

	s.logger.InfoContext(ctx, "round simulated", "fixtures", len(records), "seed", seed)
	return RoundResult{
		Seed:      seed,
		Matches:   records,
		Standings: buildStandings(records),
	}, nil
}

func validateFixtures(fixtures []match.Input) error {
	if len(fixtures) == 0 {
		return fmt.Errorf("%w: round has no fixtures", ErrInvalidInput)
	}
	if len(fixtures) > maxRoundFixtures {
		return fmt.Errorf("%w: round has %d fixtures, max %d", ErrInvalidInput, len(fixtures), maxRoundFixtures)
	}

	seen := make(map[string]int, 2*len(fixtures))
	for i, fixture := range fixtures {
		if err := fixture.Validate(); err != nil {
			return fmt.Errorf("%w: fixture %d: %v", ErrInvalidInput, i, err)
		}
		for _, teamID := range []string{fixture.Home.ID, fixture.Away.ID} {
			if prev, dup := seen[teamID]; dup {
				return fmt.Errorf("%w: team %s plays in fixtures %d and %d", ErrInvalidInput, teamID, prev, i)
			}
			seen[teamID] = i
		}
	}
	return nil
}

func buildStandings(records []match.Record) []StandingRow {
	rows := make(map[string]*StandingRow, 2*len(records))
	row := func(id, name string) *StandingRow {
		r, ok := rows[id]
		if !ok {
			r = &StandingRow{TeamID: id, TeamName: name}
			rows[id] = r
		}
		return r
	}

	for _, record := range records {
		res := record.Result
		home := row(res.HomeTeamID, res.HomeTeamName)
		away := row(res.AwayTeamID, res.AwayTeamName)
		applyResult(home, res.HomeScore, res.AwayScore)
		applyResult(away, res.AwayScore, res.HomeScore)
	}

	out := make([]StandingRow, 0, len(rows))
	for _, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	return out
}

func applyResult(r *StandingRow, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
		r.Points += 3
	case scored == conceded:
		r.Drawn++
		r.Points++
	default:
		r.Lost++
	}
}
