package memo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Redis stores summaries as JSON strings so several app instances can
// share computed results.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedis wraps an existing client. ttl of zero means no expiry.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, ttl: ttl, log: logger}
}

func (r *Redis) Get(ctx context.Context, key string) (metrics.Summary, bool) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return metrics.Summary{}, false
	}
	if err != nil {
		r.log.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		return metrics.Summary{}, false
	}

	var s metrics.Summary
	if err := json.Unmarshal(b, &s); err != nil {
		r.log.Warn("summary cache entry undecodable", zap.String("key", key), zap.Error(err))
		return metrics.Summary{}, false
	}
	return s, true
}

func (r *Redis) Put(ctx context.Context, key string, s metrics.Summary) {
	b, err := json.Marshal(s)
	if err != nil {
		r.log.Warn("summary encode failed", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		r.log.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}
