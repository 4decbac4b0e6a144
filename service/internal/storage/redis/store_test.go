package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/splendor/service/internal/storage"
	"github.com/jason-s-yu/splendor/service/internal/storage/storagetest"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to the server named by SPLENDOR_TEST_REDIS_ADDR and
// returns a store under a fresh key prefix whose keys are removed afterwards.
func newTestStore(t *testing.T) (*Store, *goredis.Client) {
	t.Helper()
	addr := os.Getenv("SPLENDOR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPLENDOR_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(ctx).Err())

	prefix := "splendor-test-" + uuid.NewString()
	s := NewStore(rdb, prefix)
	t.Cleanup(func() {
		keys, _ := rdb.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
		_ = s.Close()
	})
	return s, rdb
}

func TestStore(t *testing.T) {
	s, _ := newTestStore(t)
	storagetest.Run(t, s)
}

// TestSaveIndexesOnce checks a record is indexed as it is stored and that a
// rejected duplicate leaves the index untouched.
func TestSaveIndexesOnce(t *testing.T) {
	s, rdb := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.April, 3, 8, 0, 0, 0, time.UTC)

	r := storagetest.Record(t, at)
	require.NoError(t, s.SaveRecord(ctx, r))
	score, err := rdb.ZScore(ctx, s.indexKey(), r.ID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(at.UnixMilli()), score)

	later := r
	later.CreatedAt = at.Add(time.Hour)
	err = s.SaveRecord(ctx, later)
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists), "err = %v", err)

	score, err = rdb.ZScore(ctx, s.indexKey(), r.ID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(at.UnixMilli()), score)
	n, err := rdb.ZCard(ctx, s.indexKey()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOpenRequiresAddr(t *testing.T) {
	_, err := Open(context.Background(), "", 0)
	require.Error(t, err)
}
