// Package guarded wraps repositories with a circuit breaker so a failing
// database is shed quickly instead of stalling every request.
package guarded

import (
	"context"

	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/platform/resilience"
)

type MatchRepository struct {
	next    match.Repository
	breaker *resilience.Breaker
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository(next match.Repository, breaker *resilience.Breaker) *MatchRepository {
	return &MatchRepository{next: next, breaker: breaker}
}

func (r *MatchRepository) Save(ctx context.Context, record match.Record) error {
	return r.breaker.Execute(func() error {
		return r.next.Save(ctx, record)
	})
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Record, bool, error) {
	var (
		record match.Record
		found  bool
	)
	err := r.breaker.Execute(func() error {
		var err error
		record, found, err = r.next.GetByID(ctx, id)
		return err
	})
	return record, found, err
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]match.Record, error) {
	var records []match.Record
	err := r.breaker.Execute(func() error {
		var err error
		records, err = r.next.ListRecent(ctx, limit)
		return err
	})
	return records, err
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]match.Record, error) {
	var records []match.Record
	err := r.breaker.Execute(func() error {
		var err error
		records, err = r.next.ListByTeam(ctx, teamID, limit)
		return err
	})
	return records, err
}
