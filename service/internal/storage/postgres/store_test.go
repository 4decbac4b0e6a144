package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jason-s-yu/splendor/service/internal/storage/storagetest"
	"github.com/stretchr/testify/require"
)

// TestStore runs against a disposable database named by
// SPLENDOR_TEST_POSTGRES_DSN. The games table is dropped first.
func TestStore(t *testing.T) {
	dsn := os.Getenv("SPLENDOR_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SPLENDOR_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	_, err = s.pool.Exec(ctx, `DROP TABLE games`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	storagetest.Run(t, s)
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), " ")
	require.Error(t, err)
}
