package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-storefront-search/internal/config"
	"github.com/tbourn/go-storefront-search/internal/domain"
)

// zsetClient is the subset of *redis.Client the tracker needs.
type zsetClient interface {
	ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
	Close() error
}

// RedisTracker keeps counters in a sorted set so several instances share
// one ranking.
type RedisTracker struct {
	client zsetClient
	key    string
}

// NewRedisTracker connects to Redis and verifies the connection.
func NewRedisTracker(cfg config.RedisConfig) (*RedisTracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisTracker{client: client, key: cfg.Key}, nil
}

// Track adds one to term's score.
func (t *RedisTracker) Track(ctx context.Context, term string) error {
	if err := t.client.ZIncrBy(ctx, t.key, 1, term).Err(); err != nil {
		return fmt.Errorf("failed to increment search term: %w", err)
	}
	return nil
}

// Top returns the highest-scored terms. LastSearchedAt is not tracked in
// Redis and stays zero.
func (t *RedisTracker) Top(ctx context.Context, limit int) ([]domain.SearchTerm, error) {
	if limit <= 0 {
		return []domain.SearchTerm{}, nil
	}
	zs, err := t.client.ZRevRangeWithScores(ctx, t.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read search terms: %w", err)
	}
	out := make([]domain.SearchTerm, 0, len(zs))
	for _, z := range zs {
		out = append(out, domain.SearchTerm{Term: fmt.Sprint(z.Member), Count: int64(z.Score)})
	}
	return out, nil
}

// Close releases the Redis connection pool.
func (t *RedisTracker) Close() error {
	return t.client.Close()
}
