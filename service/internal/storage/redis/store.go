// Package redis provides a Redis-backed game record store. Each record is a
// JSON string keyed by game id, indexed by a sorted set scored by creation
// time.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
	"github.com/jason-s-yu/splendor/service/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "splendor"

// saveScript stores a record and indexes it in one step, or does nothing and
// returns 0 when the id is taken.
var saveScript = goredis.NewScript(`
if redis.call("SET", KEYS[1], ARGV[1], "NX") then
	redis.call("ZADD", KEYS[2], ARGV[2], ARGV[3])
	return 1
end
return 0
`)

// Store persists game records in Redis.
type Store struct {
	rdb    *goredis.Client
	prefix string
}

type recordDoc struct {
	ID           uuid.UUID      `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	AgentNames   []string       `json:"agent_names"`
	Warnings     []int          `json:"warnings"`
	ForfeitAgent int            `json:"forfeit_agent"`
	Scores       []float64      `json:"scores"`
	Log          engine.GameLog `json:"log"`
}

// Open connects to addr, selects db and verifies the connection.
func Open(ctx context.Context, addr string, db int) (*Store, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewStore(rdb, DefaultPrefix), nil
}

// NewStore wraps an existing client. Keys are written under prefix.
func NewStore(rdb *goredis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) recordKey(id uuid.UUID) string { return s.prefix + ":game:" + id.String() }

func (s *Store) indexKey() string { return s.prefix + ":games" }

// Close closes the client.
func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// SaveRecord stores one game record and indexes it atomically.
func (s *Store) SaveRecord(ctx context.Context, r storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.rdb == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(recordDoc(r))
	if err != nil {
		return fmt.Errorf("encode game record: %w", err)
	}

	created, err := saveScript.Run(ctx, s.rdb,
		[]string{s.recordKey(r.ID), s.indexKey()},
		data, r.CreatedAt.UTC().UnixMilli(), r.ID.String(),
	).Int()
	if err != nil {
		return fmt.Errorf("save game record: %w", err)
	}
	if created == 0 {
		return storage.ErrAlreadyExists
	}
	return nil
}

// GetRecord returns one game record by id.
func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil || s.rdb == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	if id == uuid.Nil {
		return storage.GameRecord{}, fmt.Errorf("record id is required")
	}

	data, err := s.rdb.Get(ctx, s.recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game record: %w", err)
	}
	return decode(data)
}

// ListRecords returns up to limit record summaries, newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]storage.RecordSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	ids, err := s.rdb.ZRevRange(ctx, s.indexKey(), 0, int64(storage.ClampLimit(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + ":game:" + id
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}

	out := make([]storage.RecordSummary, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Indexed but missing; skip.
			continue
		}
		r, err := decode([]byte(str))
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", ids[i], err)
		}
		out = append(out, r.Summary())
	}
	return out, nil
}

func decode(data []byte) (storage.GameRecord, error) {
	var doc recordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return storage.GameRecord{}, fmt.Errorf("decode game record: %w", err)
	}
	r := storage.GameRecord(doc)
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

var _ storage.Store = (*Store)(nil)
