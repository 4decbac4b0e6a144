// Package sqlite provides a SQLite-backed game record store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/splendor/service/internal/storage"
	"github.com/jason-s-yu/splendor/service/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists game records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer at a time; concurrent games share this handle.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// applyMigrations executes every embedded .sql file in name order. The
// files are idempotent.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRecord inserts one game record.
func (s *Store) SaveRecord(ctx context.Context, r storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := r.Validate(); err != nil {
		return err
	}

	names, err := json.Marshal(r.AgentNames)
	if err != nil {
		return fmt.Errorf("encode agent names: %w", err)
	}
	warnings, err := json.Marshal(r.Warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	gameLog, err := json.Marshal(r.Log)
	if err != nil {
		return fmt.Errorf("encode game log: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (id, created_at, agent_names, warnings, forfeit_agent, scores, log)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(),
		toMillis(r.CreatedAt),
		string(names),
		string(warnings),
		r.ForfeitAgent,
		string(scores),
		string(gameLog),
	)
	if err != nil {
		if isUniqueViolation(err) {
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
	if s == nil || s.sqlDB == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	if id == uuid.Nil {
		return storage.GameRecord{}, fmt.Errorf("record id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT created_at, agent_names, warnings, forfeit_agent, scores, log
		   FROM games
		  WHERE id = ?`,
		id.String(),
	)

	r := storage.GameRecord{ID: id}
	var createdAt int64
	var names, warnings, scores, gameLog string
	if err := row.Scan(&createdAt, &names, &warnings, &r.ForfeitAgent, &scores, &gameLog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game record: %w", err)
	}
	r.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(names), &r.AgentNames); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode agent names: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &r.Warnings); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode warnings: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &r.Scores); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode scores: %w", err)
	}
	if err := json.Unmarshal([]byte(gameLog), &r.Log); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode game log: %w", err)
	}
	return r, nil
}

// ListRecords returns up to limit record summaries, newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]storage.RecordSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, created_at, agent_names, scores
		   FROM games
		  ORDER BY created_at DESC, id
		  LIMIT ?`,
		storage.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	defer rows.Close()

	var out []storage.RecordSummary
	for rows.Next() {
		var sum storage.RecordSummary
		var id, names, scores string
		var createdAt int64
		if err := rows.Scan(&id, &createdAt, &names, &scores); err != nil {
			return nil, fmt.Errorf("list game records: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse record id %q: %w", id, err)
		}
		sum.CreatedAt = fromMillis(createdAt)
		if err := json.Unmarshal([]byte(names), &sum.AgentNames); err != nil {
			return nil, fmt.Errorf("decode agent names: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &sum.Scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
