// Package storagetest holds a conformance suite shared by the Store backends.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
	"github.com/jason-s-yu/splendor/service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Record builds a valid record of a short two-agent game created at at.
func Record(t *testing.T, at time.Time) storage.GameRecord {
	t.Helper()
	g, err := engine.Initialize(2, 7)
	require.NoError(t, err)
	gameLog := engine.NewGameLog(&g)
	for i := 0; i < 6; i++ {
		mover := g.Mover()
		turn := int(g.Turn)
		a := g.LegalActions(mover)[0]
		require.NoError(t, g.ApplyAction(a))
		gameLog.Append(turn, mover, a)
	}
	gameLog.Scores = g.Scores()
	return storage.GameRecord{
		ID:           uuid.New(),
		CreatedAt:    at.UTC().Truncate(time.Millisecond),
		AgentNames:   []string{"greedy", "random"},
		Warnings:     []int{0, 1},
		ForfeitAgent: storage.NoForfeit,
		Scores:       gameLog.Scores,
		Log:          gameLog,
	}
}

// Run exercises s against the Store contract. s must start empty.
func Run(t *testing.T, s storage.Store) {
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		r := Record(t, base)
		require.NoError(t, s.SaveRecord(ctx, r))

		got, err := s.GetRecord(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
		assert.True(t, r.CreatedAt.Equal(got.CreatedAt), "created %v, want %v", got.CreatedAt, r.CreatedAt)
		assert.Equal(t, r.AgentNames, got.AgentNames)
		assert.Equal(t, r.Warnings, got.Warnings)
		assert.Equal(t, r.ForfeitAgent, got.ForfeitAgent)
		assert.Equal(t, r.Scores, got.Scores)
		assert.Equal(t, r.Log, got.Log)

		_, err = engine.Replay(got.Log)
		assert.NoError(t, err, "stored log no longer replays")
	})

	t.Run("duplicate", func(t *testing.T) {
		r := Record(t, base.Add(time.Minute))
		require.NoError(t, s.SaveRecord(ctx, r))
		err := s.SaveRecord(ctx, r)
		assert.True(t, errors.Is(err, storage.ErrAlreadyExists), "err = %v", err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetRecord(ctx, uuid.New())
		assert.True(t, errors.Is(err, storage.ErrNotFound), "err = %v", err)
	})

	t.Run("invalid", func(t *testing.T) {
		r := Record(t, base)
		r.ID = uuid.Nil
		assert.Error(t, s.SaveRecord(ctx, r))

		r = Record(t, base)
		r.AgentNames = r.AgentNames[:1]
		assert.Error(t, s.SaveRecord(ctx, r))
	})

	t.Run("list newest first", func(t *testing.T) {
		var ids []uuid.UUID
		for i := 0; i < 3; i++ {
			r := Record(t, base.Add(time.Duration(10+i)*time.Hour))
			require.NoError(t, s.SaveRecord(ctx, r))
			ids = append(ids, r.ID)
		}
		got, err := s.ListRecords(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ids[2], got[0].ID)
		assert.Equal(t, ids[1], got[1].ID)
		assert.Equal(t, []string{"greedy", "random"}, got[0].AgentNames)
		assert.Len(t, got[0].Scores, 2)
	})

	t.Run("concurrent saves", func(t *testing.T) {
		const n = 8
		records := make([]storage.GameRecord, n)
		for i := range records {
			records[i] = Record(t, base.Add(-time.Duration(i+1)*time.Hour))
		}
		var g errgroup.Group
		for _, r := range records {
			g.Go(func() error { return s.SaveRecord(ctx, r) })
		}
		require.NoError(t, g.Wait())

		got, err := s.ListRecords(ctx, storage.DefaultListLimit)
		require.NoError(t, err)
		listed := make(map[uuid.UUID]bool, len(got))
		for _, sum := range got {
			listed[sum.ID] = true
		}
		for _, r := range records {
			assert.True(t, listed[r.ID], "record %s not listed", r.ID)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.SaveRecord(cctx, Record(t, base)), context.Canceled)
		_, err := s.GetRecord(cctx, uuid.New())
		assert.ErrorIs(t, err, context.Canceled)
		_, err = s.ListRecords(cctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
