// Package store persists pipeline run records keyed by their provenance
// input hash, so identical matchup snapshots can be served from cache and
// audited later. It does not persist raw historical snapshots; that belongs
// to the upstream data layer.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// RunRecord is one cached pipeline run.
type RunRecord struct {
	ID        string          `json:"id"`
	GameID    string          `json:"game_id"`
	InputHash string          `json:"input_hash"`
	Model     string          `json:"model"`
	Fallback  bool            `json:"fallback"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store defines persistence for pipeline runs.
type Store interface {
	SaveRun(ctx context.Context, rec RunRecord) error
	GetRunByInputHash(ctx context.Context, inputHash string) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Migrate(ctx context.Context) error
	Close() error
}
