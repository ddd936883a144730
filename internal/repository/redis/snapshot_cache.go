package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/conn4/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conn4:session:"

// SnapshotCache stores live session records as JSON with a TTL.
type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (c *SnapshotCache) Save(ctx context.Context, rec *domain.SessionRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", rec.ID, err)
	}
	if err := c.client.Set(ctx, sessionKey(rec.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session %s: %w", rec.ID, err)
	}
	return nil
}

// Load returns (nil, nil) when the key does not exist or has expired.
func (c *SnapshotCache) Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &rec, nil
}

func (c *SnapshotCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKey(sessionID)).Err()
}
