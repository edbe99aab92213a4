package redis

import (
	"context"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/timeline"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	CacheTimeline(ctx context.Context, date string, data *timeline.DayTimeline, ttl time.Duration) error
	GetTimeline(ctx context.Context, date string) (*timeline.DayTimeline, error)
	InvalidateTimeline(ctx context.Context, date string) error
	InvalidateAllTimelines(ctx context.Context) error

	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Health(ctx context.Context) error
	Close() error
}
