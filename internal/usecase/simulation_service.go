package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/team"
	"github.com/riskibarqy/match-engine/internal/platform/cache"
	idgen "github.com/riskibarqy/match-engine/internal/platform/id"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
	"github.com/riskibarqy/match-engine/internal/platform/random"
	"github.com/riskibarqy/match-engine/internal/simulation"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
	matchCachePrefix   = "match:"
)

type SimulationServiceConfig struct {
	WorkerCount           int
	ForecastMaxIterations int
}

type SimulationService struct {
	engine  *simulation.Engine
	repo    match.Repository
	cache   *cache.Store[match.Record]
	ids     idgen.Generator
	metrics metrics.Metrics
	logger  *logging.Logger
	cfg     SimulationServiceConfig
	now     func() time.Time
	newSeed func() (int64, error)
}

// NewSimulationService wires the engine to persistence. store may be nil
// to disable read caching.
func NewSimulationService(
	engine *simulation.Engine,
	repo match.Repository,
	store *cache.Store[match.Record],
	ids idgen.Generator,
	m metrics.Metrics,
	logger *logging.Logger,
	cfg SimulationServiceConfig,
) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	if m == nil {
		m = metrics.Nop{}
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.ForecastMaxIterations < 1 {
		cfg.ForecastMaxIterations = 10000
	}
	return &SimulationService{
		engine:  engine,
		repo:    repo,
		cache:   store,
		ids:     ids,
		metrics: m,
		logger:  logger.With("component", "simulation_service"),
		cfg:     cfg,
		now:     time.Now,
		newSeed: random.NewSeed,
	}
}

type SimulateMatchInput struct {
	Input match.Input
	// Seed reproduces an earlier simulation. A fresh seed is drawn when nil.
	Seed *int64
}

// SimulateMatch plays and stores one match.
func (s *SimulationService) SimulateMatch(ctx context.Context, input SimulateMatchInput) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateMatch",
		attribute.String("match.home_team_id", input.Input.Home.ID),
		attribute.String("match.away_team_id", input.Input.Away.ID),
	)
	defer span.End()

	seed, err := s.resolveSeed(input.Seed)
	if err != nil {
		recordSpanError(span, err)
		return match.Record{}, err
	}

	record, err := s.play(seed, input.Input)
	if err != nil {
		recordSpanError(span, err)
		return match.Record{}, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		err = fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrap(err, "save simulated match"))
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "save simulated match failed", "match_id", record.ID, "error", err)
		return match.Record{}, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, matchCachePrefix+record.ID, record)
	}

	span.SetAttributes(attribute.String("match.id", record.ID), attribute.Int64("match.seed", seed))
	s.logger.InfoContext(ctx, "match simulated",
		"match_id", record.ID,
		"seed", seed,
		"home_score", record.Result.HomeScore,
		"away_score", record.Result.AwayScore,
	)
	return record, nil
}

// play runs the engine without touching persistence.
func (s *SimulationService) play(seed int64, in match.Input) (match.Record, error) {
	start := s.now()
	result, err := s.engine.SimulateMatch(random.New(seed), in)
	if err != nil {
		if errors.Is(err, match.ErrInvalidInput) {
			return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return match.Record{}, crerr.Wrap(err, "simulate match")
	}
	s.metrics.ObserveSimulationDuration("match", s.now().Sub(start).Seconds())
	s.recordOutcome(result)

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Record{}, crerr.Wrap(err, "generate match id")
	}

	return match.Record{
		ID:          matchID,
		Seed:        seed,
		Result:      result,
		SimulatedAt: s.now().UTC(),
	}, nil
}

func (s *SimulationService) recordOutcome(result match.Result) {
	outcome := "draw"
	switch {
	case result.HomeScore > result.AwayScore:
		outcome = "home"
	case result.AwayScore > result.HomeScore:
		outcome = "away"
	}
	s.metrics.IncMatchesSimulated(outcome)
	s.metrics.ObserveGoals(result.HomeScore + result.AwayScore)
	if result.Shootout != nil {
		s.metrics.IncShootouts()
	}
}

// GetMatch loads a stored simulation, serving repeats from the cache.
func (s *SimulationService) GetMatch(ctx context.Context, matchID string) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.GetMatch", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Record{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (match.Record, error) {
		record, found, err := s.repo.GetByID(ctx, matchID)
		if err != nil {
			return match.Record{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrapf(err, "get match %s", matchID))
		}
		if !found {
			return match.Record{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
		}
		return record, nil
	}

	if s.cache == nil {
		record, err := load(ctx)
		recordSpanError(span, err)
		return record, err
	}

	key := matchCachePrefix + matchID
	if record, ok := s.cache.Get(ctx, key); ok {
		s.metrics.IncCacheLookup(true)
		return record, nil
	}
	s.metrics.IncCacheLookup(false)

	record, err := s.cache.GetOrLoad(ctx, key, load)
	recordSpanError(span, err)
	return record, err
}

// ListRecent returns the latest simulations, newest first.
func (s *SimulationService) ListRecent(ctx context.Context, limit int) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.ListRecent")
	defer span.End()

	records, err := s.repo.ListRecent(ctx, clampLimit(limit))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrap(err, "list recent matches"))
		recordSpanError(span, err)
		return nil, err
	}
	return records, nil
}

// ListByTeam returns the latest simulations involving teamID on either side.
func (s *SimulationService) ListByTeam(ctx context.Context, teamID string, limit int) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.ListByTeam", attribute.String("team.id", teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	records, err := s.repo.ListByTeam(ctx, teamID, clampLimit(limit))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrapf(err, "list matches for team %s", teamID))
		recordSpanError(span, err)
		return nil, err
	}
	return records, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultRecentLimit
	case limit > maxRecentLimit:
		return maxRecentLimit
	}
	return limit
}

type ShootoutOutcome struct {
	Seed     int64          `json:"seed"`
	Shootout match.Shootout `json:"shootout"`
}

// SimulateShootout resolves a tie from the spot without playing a match.
func (s *SimulationService) SimulateShootout(ctx context.Context, home, away team.State, seed *int64) (ShootoutOutcome, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateShootout")
	defer span.End()

	if err := (match.Input{Home: home, Away: away}).Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
		recordSpanError(span, err)
		return ShootoutOutcome{}, err
	}
	resolved, err := s.resolveSeed(seed)
	if err != nil {
		recordSpanError(span, err)
		return ShootoutOutcome{}, err
	}

	start := s.now()
	var kicks []match.Event
	shootout := s.engine.SimulatePenaltyShootout(random.New(resolved), home, away, &kicks)
	s.metrics.ObserveSimulationDuration("shootout", s.now().Sub(start).Seconds())
	s.metrics.IncShootouts()

	return ShootoutOutcome{Seed: resolved, Shootout: shootout}, nil
}

func (s *SimulationService) resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	value, err := s.newSeed()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDependencyUnavailable, crerr.Wrap(err, "draw seed"))
	}
	return value, nil
}
