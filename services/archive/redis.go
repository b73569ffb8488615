package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sopwriter/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const archivePrefix = "sop:archive:"

// RedisStore keeps records as JSON with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, rec models.ArchiveRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("archive: failed to marshal record: %w", err)
	}
	if err := s.client.Set(ctx, archivePrefix+rec.ID, b, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("archive: failed to save record: %w", err)
	}
	return rec.ID, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.ArchiveRecord, error) {
	data, err := s.client.Get(ctx, archivePrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: failed to load record: %w", err)
	}
	var rec models.ArchiveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("archive: failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Enabled() bool { return true }

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
