package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/match-engine/internal/domain/match"
)

const simulatedMatchesTable = "simulated_matches"

type simulatedMatchTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	Seed              int64     `db:"seed"`
	HomeTeamID        string    `db:"home_team_public_id"`
	AwayTeamID        string    `db:"away_team_public_id"`
	HomeScore         int       `db:"home_score"`
	AwayScore         int       `db:"away_score"`
	WinnerTeamID      string    `db:"winner_team_public_id"`
	DecidedByShootout bool      `db:"decided_by_shootout"`
	Result            string    `db:"result"`
	SimulatedAt       time.Time `db:"simulated_at"`
	CreatedAt         time.Time `db:"created_at"`
}

// simulatedMatchInsertModel leaves id and created_at to the database.
type simulatedMatchInsertModel struct {
	PublicID          string    `db:"public_id"`
	Seed              int64     `db:"seed"`
	HomeTeamID        string    `db:"home_team_public_id"`
	AwayTeamID        string    `db:"away_team_public_id"`
	HomeScore         int       `db:"home_score"`
	AwayScore         int       `db:"away_score"`
	WinnerTeamID      string    `db:"winner_team_public_id"`
	DecidedByShootout bool      `db:"decided_by_shootout"`
	Result            string    `db:"result"`
	SimulatedAt       time.Time `db:"simulated_at"`
}

func newSimulatedMatchInsertModel(record match.Record) (simulatedMatchInsertModel, error) {
	payload, err := sonic.MarshalString(record.Result)
	if err != nil {
		return simulatedMatchInsertModel{}, fmt.Errorf("encode match %s result: %w", record.ID, err)
	}
	res := record.Result
	return simulatedMatchInsertModel{
		PublicID:          record.ID,
		Seed:              record.Seed,
		HomeTeamID:        res.HomeTeamID,
		AwayTeamID:        res.AwayTeamID,
		HomeScore:         res.HomeScore,
		AwayScore:         res.AwayScore,
		WinnerTeamID:      res.WinnerTeamID,
		DecidedByShootout: res.Shootout != nil,
		Result:            payload,
		SimulatedAt:       record.SimulatedAt.UTC(),
	}, nil
}

func (m simulatedMatchTableModel) toRecord() (match.Record, error) {
	var result match.Result
	if err := sonic.UnmarshalString(m.Result, &result); err != nil {
		return match.Record{}, fmt.Errorf("decode match %s result: %w", m.PublicID, err)
	}
	return match.Record{
		ID:          m.PublicID,
		Seed:        m.Seed,
		Result:      result,
		SimulatedAt: m.SimulatedAt.UTC(),
	}, nil
}
