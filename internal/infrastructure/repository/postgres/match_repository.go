package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	qb "github.com/riskibarqy/match-engine/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var simulatedMatchSelectColumns = qb.Columns(simulatedMatchTableModel{})

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Save(ctx context.Context, record match.Record) error {
	model, err := newSimulatedMatchInsertModel(record)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(simulatedMatchesTable, model, "")
	if err != nil {
		return fmt.Errorf("build insert simulated match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("simulated match %s already stored: %w", record.ID, err)
		}
		return fmt.Errorf("insert simulated match: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Record, bool, error) {
	query, args, err := qb.Select(simulatedMatchSelectColumns...).
		From(simulatedMatchesTable).
		Where(qb.Eq("public_id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Record{}, false, fmt.Errorf("build select simulated match query: %w", err)
	}

	var row simulatedMatchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, fmt.Errorf("get simulated match: %w", err)
	}

	record, err := row.toRecord()
	if err != nil {
		return match.Record{}, false, err
	}
	return record, true, nil
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]match.Record, error) {
	return r.list(ctx, limit)
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]match.Record, error) {
	return r.list(ctx, limit, qb.Or(
		qb.Eq("home_team_public_id", teamID),
		qb.Eq("away_team_public_id", teamID),
	))
}

func (r *MatchRepository) list(ctx context.Context, limit int, where ...qb.Condition) ([]match.Record, error) {
	query, args, err := qb.Select(simulatedMatchSelectColumns...).
		From(simulatedMatchesTable).
		Where(where...).
		OrderBy("simulated_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list simulated matches query: %w", err)
	}

	var rows []simulatedMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list simulated matches: %w", err)
	}

	out := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}
