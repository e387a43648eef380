package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	game_id    TEXT NOT NULL,
	input_hash TEXT NOT NULL,
	model      TEXT NOT NULL,
	fallback   INTEGER NOT NULL DEFAULT 0,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);
CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, rec RunRecord) error {
	fallback := 0
	if rec.Fallback {
		fallback = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, game_id, input_hash, model, fallback, result, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.InputHash, rec.Model, fallback, string(rec.Result), rec.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert run %s", rec.ID)
}

func (s *SQLiteStore) GetRunByInputHash(ctx context.Context, inputHash string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, game_id, input_hash, model, fallback, result, created_at
		 FROM runs WHERE input_hash = ? ORDER BY created_at DESC LIMIT 1`,
		inputHash,
	)
	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get run by input hash %s", inputHash)
	}
	return rec, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, input_hash, model, fallback, result, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list runs")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var rec RunRecord
	var fallback int
	var result string
	var createdAt time.Time
	if err := row.Scan(&rec.ID, &rec.GameID, &rec.InputHash, &rec.Model, &fallback, &result, &createdAt); err != nil {
		return nil, err
	}
	rec.Fallback = fallback != 0
	rec.Result = []byte(result)
	rec.CreatedAt = createdAt
	return &rec, nil
}
