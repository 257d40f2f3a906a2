package redis

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"papertrader/internal/application/port"
)

// Queue drains manual-sell symbols from a Redis set, so sells can be
// requested remotely: SADD papertrader:sells AAPL MSFT.
type Queue struct {
	rdb *redis.Client
	key string
}

func New(rdb *redis.Client, key string) *Queue {
	return &Queue{rdb: rdb, key: key}
}

func (q *Queue) Drain(ctx context.Context) ([]string, error) {
	members, err := q.rdb.SPopN(ctx, q.key, 1024).Result()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		u := strings.ToUpper(strings.TrimSpace(m))
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

var _ port.SellQueue = (*Queue)(nil)
