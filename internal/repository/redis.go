package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vaultpass/passforge-go/internal/model"
)

// RedisStore persists records as JSON values under <prefix>:record:<id>,
// indexed by a sorted set scored by ID.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a RedisStore using keys under prefix.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) seqKey() string      { return s.prefix + ":record:seq" }
func (s *RedisStore) indexKey() string    { return s.prefix + ":records" }
func (s *RedisStore) key(id int64) string { return s.prefix + ":record:" + strconv.FormatInt(id, 10) }

// Save stores a single record and sets its ID.
func (s *RedisStore) Save(ctx context.Context, record *model.PasswordRecord) error {
	return s.SaveBatch(ctx, []*model.PasswordRecord{record})
}

// SaveBatch reserves a block of IDs with INCRBY, then writes every value and
// index entry in one MULTI/EXEC transaction. A failed transaction leaves the
// reserved IDs unused and the records unchanged.
func (s *RedisStore) SaveBatch(ctx context.Context, records []*model.PasswordRecord) error {
	if len(records) == 0 {
		return nil
	}

	last, err := s.rdb.IncrBy(ctx, s.seqKey(), int64(len(records))).Result()
	if err != nil {
		return fmt.Errorf("reserving record ids: %w", err)
	}
	first := last - int64(len(records)) + 1

	now := time.Now().UTC()
	values := make([][]byte, len(records))
	for i, record := range records {
		rec := *record
		rec.ID = first + int64(i)
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if values[i], err = json.Marshal(rec); err != nil {
			return fmt.Errorf("encoding record %d: %w", rec.ID, err)
		}
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		members := make([]redis.Z, len(records))
		for i := range records {
			id := first + int64(i)
			pipe.Set(ctx, s.key(id), values[i], 0)
			members[i] = redis.Z{Score: float64(id), Member: id}
		}
		pipe.ZAdd(ctx, s.indexKey(), members...)
		return nil
	})
	if err != nil {
		return err
	}

	for i, record := range records {
		record.ID = first + int64(i)
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
	}
	return nil
}

// Get retrieves a record by its ID.
func (s *RedisStore) Get(ctx context.Context, id int64) (*model.PasswordRecord, error) {
	data, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var record model.PasswordRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record %d: %w", id, err)
	}
	return &record, nil
}

// List returns all records ordered by ID.
func (s *RedisStore) List(ctx context.Context) ([]model.PasswordRecord, error) {
	ids, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]model.PasswordRecord, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + ":record:" + id
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a value; skip it.
			continue
		}
		var record model.PasswordRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", ids[i], err)
		}
		records = append(records, record)
	}

	return records, nil
}
