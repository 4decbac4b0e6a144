// Package postgres provides a PostgreSQL-backed game record store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/splendor/service/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
    id UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    agent_names JSONB NOT NULL,
    warnings JSONB NOT NULL,
    forfeit_agent INTEGER NOT NULL,
    scores JSONB NOT NULL,
    log JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS games_created_at ON games (created_at DESC);
`

// uniqueViolation is the SQLSTATE for a unique or primary key conflict.
const uniqueViolation = "23505"

// Store persists game records in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// SaveRecord inserts one game record.
func (s *Store) SaveRecord(ctx context.Context, r storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	gameLog, err := json.Marshal(r.Log)
	if err != nil {
		return fmt.Errorf("encode game log: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (id, created_at, agent_names, warnings, forfeit_agent, scores, log)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.CreatedAt.UTC(), r.AgentNames, r.Warnings, r.ForfeitAgent, r.Scores, gameLog,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("save game record: %w", err)
	}
	return nil
}

// GetRecord returns one game record by id.
func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil || s.pool == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	if id == uuid.Nil {
		return storage.GameRecord{}, fmt.Errorf("record id is required")
	}

	r := storage.GameRecord{ID: id}
	var gameLog []byte
	err := s.pool.QueryRow(ctx,
		`SELECT created_at, agent_names, warnings, forfeit_agent, scores, log
		   FROM games
		  WHERE id = $1`,
		id,
	).Scan(&r.CreatedAt, &r.AgentNames, &r.Warnings, &r.ForfeitAgent, &r.Scores, &gameLog)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game record: %w", err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	if err := json.Unmarshal(gameLog, &r.Log); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode game log: %w", err)
	}
	return r, nil
}

// ListRecords returns up to limit record summaries, newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]storage.RecordSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, agent_names, scores
		   FROM games
		  ORDER BY created_at DESC, id
		  LIMIT $1`,
		storage.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.RecordSummary, error) {
		var sum storage.RecordSummary
		var createdAt time.Time
		if err := row.Scan(&sum.ID, &createdAt, &sum.AgentNames, &sum.Scores); err != nil {
			return storage.RecordSummary{}, err
		}
		sum.CreatedAt = createdAt.UTC()
		return sum, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	return out, nil
}

var _ storage.Store = (*Store)(nil)
