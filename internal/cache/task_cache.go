package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "task:list:"

// ListKey builds the cache key for a user's filtered listing. Also used by
// the service as a singleflight key.
func ListKey(userID uuid.UUID, f dom.TaskFilter) string {
	var sb strings.Builder
	sb.WriteString(keyPrefix)
	sb.WriteString(userID.String())
	sb.WriteByte(':')
	if f.Status != nil {
		sb.WriteString(string(*f.Status))
	}
	sb.WriteByte(':')
	if f.Priority != nil {
		sb.WriteString(string(*f.Priority))
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(f.Page))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(f.PerPage))
	return sb.String()
}

// TaskCache caches per-user filtered task listings in Redis.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID uuid.UUID, f dom.TaskFilter) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, ListKey(userID, f)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing.
func (c *TaskCache) SetList(ctx context.Context, userID uuid.UUID, f dom.TaskFilter, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ListKey(userID, f), b, c.ttl).Err()
}

// InvalidateUser removes every cached listing for the user (invalidation on
// write).
func (c *TaskCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+userID.String()+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
