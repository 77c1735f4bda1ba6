package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/match-engine/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Record
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Record)}
}

func (r *MatchRepository) Save(_ context.Context, record match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[record.ID] = cloneRecord(record)
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[id]
	if !ok {
		return match.Record{}, false, nil
	}

	return cloneRecord(record), true, nil
}

func (r *MatchRepository) ListRecent(_ context.Context, limit int) ([]match.Record, error) {
	return r.list(limit, func(match.Record) bool { return true }), nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string, limit int) ([]match.Record, error) {
	return r.list(limit, func(record match.Record) bool {
		return record.Result.HomeTeamID == teamID || record.Result.AwayTeamID == teamID
	}), nil
}

// list returns matching records newest first.
func (r *MatchRepository) list(limit int, keep func(match.Record) bool) []match.Record {
	r.mu.RLock()
	out := make([]match.Record, 0, len(r.items))
	for _, record := range r.items {
		if keep(record) {
			out = append(out, cloneRecord(record))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SimulatedAt.Equal(out[j].SimulatedAt) {
			return out[i].SimulatedAt.After(out[j].SimulatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// cloneRecord copies the slices and maps a caller could mutate.
func cloneRecord(r match.Record) match.Record {
	copied := r
	res := &copied.Result
	res.Events = append([]match.Event(nil), r.Result.Events...)
	res.Narrative = append([]string(nil), r.Result.Narrative...)
	if r.Result.BoxScore.Players != nil {
		res.BoxScore.Players = make(map[string]match.PlayerStats, len(r.Result.BoxScore.Players))
		for id, stats := range r.Result.BoxScore.Players {
			res.BoxScore.Players[id] = stats
		}
	}
	if r.Result.Shootout != nil {
		shootout := *r.Result.Shootout
		shootout.HomeKicks = append([]bool(nil), shootout.HomeKicks...)
		shootout.AwayKicks = append([]bool(nil), shootout.AwayKicks...)
		shootout.Events = append([]match.Event(nil), shootout.Events...)
		res.Shootout = &shootout
	}
	return copied
}
