package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 24 * time.Hour

// FanoutGuard reserves the single notification fan-out slot for an article
// approval, backed by Redis. Key format: fanout:<article_id>
type FanoutGuard struct {
	client *redis.Client
}

// NewFanoutGuard creates a FanoutGuard wrapping the given Redis client.
func NewFanoutGuard(client *redis.Client) *FanoutGuard {
	return &FanoutGuard{client: client}
}

// Acquire atomically claims the fan-out for the article. It returns false
// when a previous approval already dispatched notifications within the
// guard window.
func (g *FanoutGuard) Acquire(ctx context.Context, articleID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(articleID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("fanout guard: %w", err)
	}
	return ok, nil
}

func (g *FanoutGuard) key(articleID string) string {
	return "fanout:" + articleID
}
