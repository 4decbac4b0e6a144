// Package storage defines persistence contracts for finished game records.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
)

var (
	// ErrNotFound indicates a requested game record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a record with the same id is already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// NoForfeit is the ForfeitAgent value of a game played to its end.
const NoForfeit = -1

// GameRecord is one finished game: who played, how it went, and the log
// that replays it.
type GameRecord struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	AgentNames   []string
	Warnings     []int
	ForfeitAgent int
	// Scores are the result scores, forfeit adjustments included.
	Scores []float64
	Log    engine.GameLog
}

// RecordSummary is the listing view of a GameRecord.
type RecordSummary struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	AgentNames []string
	Scores     []float64
}

// Summary returns the listing view of r.
func (r GameRecord) Summary() RecordSummary {
	return RecordSummary{ID: r.ID, CreatedAt: r.CreatedAt, AgentNames: r.AgentNames, Scores: r.Scores}
}

// Validate checks r is complete enough to persist.
func (r GameRecord) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("record id is required")
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("record created time is required")
	}
	n := r.Log.NumAgents
	if n < 2 || n > engine.MaxAgents {
		return fmt.Errorf("record has %d agents", n)
	}
	if len(r.AgentNames) != n || len(r.Warnings) != n || len(r.Scores) != n {
		return fmt.Errorf("record fields disagree on the number of agents")
	}
	for _, name := range r.AgentNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("agent name is required")
		}
	}
	if r.ForfeitAgent != NoForfeit && (r.ForfeitAgent < 0 || r.ForfeitAgent >= n) {
		return fmt.Errorf("forfeit agent %d out of range", r.ForfeitAgent)
	}
	return nil
}

// Store persists game records.
type Store interface {
	SaveRecord(ctx context.Context, r GameRecord) error
	GetRecord(ctx context.Context, id uuid.UUID) (GameRecord, error)
	// ListRecords returns up to limit summaries, newest first.
	ListRecords(ctx context.Context, limit int) ([]RecordSummary, error)
	Close() error
}

// DefaultListLimit caps ListRecords when the caller passes a non-positive limit.
const DefaultListLimit = 50

// ClampLimit normalizes a ListRecords limit.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return DefaultListLimit
	}
	return limit
}
