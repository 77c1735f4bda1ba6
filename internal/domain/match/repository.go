package match

import (
	"context"
	"time"
)

// Record is a stored simulation with the seed that reproduces it.
type Record struct {
	ID          string    `json:"id"`
	Seed        int64     `json:"seed"`
	Result      Result    `json:"result"`
	SimulatedAt time.Time `json:"simulated_at"`
}

// Repository describes simulated match persistence needs from use cases.
type Repository interface {
	Save(ctx context.Context, record Record) error
	GetByID(ctx context.Context, id string) (Record, bool, error)
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]Record, error)
}
