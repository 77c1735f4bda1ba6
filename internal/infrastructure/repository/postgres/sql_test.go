package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/match-engine/internal/domain/match"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("pq: relation simulated_matches does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected false for undefined table")
		}
		if isUniqueViolation(errors.New("plain")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestSimulatedMatchModel(t *testing.T) {
	at := time.Date(2026, 4, 12, 19, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	record := match.Record{
		ID:   "match_1",
		Seed: 77,
		Result: match.Result{
			HomeTeamID:   "home",
			AwayTeamID:   "away",
			HomeScore:    1,
			AwayScore:    1,
			WinnerTeamID: "away",
			Shootout:     &match.Shootout{HomeScore: 3, AwayScore: 4, WinnerTeamID: "away"},
		},
		SimulatedAt: at,
	}

	insert, err := newSimulatedMatchInsertModel(record)
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if !insert.DecidedByShootout || insert.WinnerTeamID != "away" {
		t.Fatalf("unexpected summary columns: %+v", insert)
	}
	if insert.SimulatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", insert.SimulatedAt.Location())
	}
	if !strings.Contains(insert.Result, `"winner_team_id":"away"`) {
		t.Fatalf("payload missing winner: %s", insert.Result)
	}

	row := simulatedMatchTableModel{PublicID: insert.PublicID, Seed: insert.Seed, Result: insert.Result, SimulatedAt: insert.SimulatedAt}
	got, err := row.toRecord()
	if err != nil {
		t.Fatalf("decode row: %v", err)
	}
	if got.ID != "match_1" || got.Seed != 77 || got.Result.Shootout == nil || got.Result.Shootout.AwayScore != 4 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.SimulatedAt.Equal(at) {
		t.Fatalf("unexpected simulated_at: %s", got.SimulatedAt)
	}
}

func TestSimulatedMatchModel_CorruptPayload(t *testing.T) {
	row := simulatedMatchTableModel{PublicID: "m", Result: "{not json"}
	if _, err := row.toRecord(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSimulatedMatchSelectColumns(t *testing.T) {
	want := []string{"id", "public_id", "seed", "home_team_public_id", "away_team_public_id", "home_score", "away_score", "winner_team_public_id", "decided_by_shootout", "result", "simulated_at", "created_at"}
	if strings.Join(simulatedMatchSelectColumns, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected columns: %v", simulatedMatchSelectColumns)
	}
}
