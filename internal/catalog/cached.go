package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rhyrak/course-planner/pkg/model"
)

// CachedSource keeps catalogs of another Source in Redis. Cache failures
// are logged and the underlying source is used instead.
type CachedSource struct {
	next   Source
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSource(next Source, client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{next: next, client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *CachedSource) key(semester string) string {
	return c.prefix + "catalog:" + semester
}

func (c *CachedSource) Courses(ctx context.Context, semester string) ([]model.Course, error) {
	key := c.key(semester)
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var courses []model.Course
		if err := json.Unmarshal(data, &courses); err == nil {
			return courses, nil
		}
		c.logger.Warn("dropping unreadable cached catalog", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		c.logger.Debug("catalog cache miss", slog.String("semester", semester))
	default:
		c.logger.Warn("catalog cache unavailable", slog.String("error", err.Error()))
	}

	courses, err := c.next.Courses(ctx, semester)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(courses); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", slog.String("error", err.Error()))
		}
	}
	return courses, nil
}

// Invalidate drops the cached catalog of semester.
func (c *CachedSource) Invalidate(ctx context.Context, semester string) error {
	return c.client.Del(ctx, c.key(semester)).Err()
}
