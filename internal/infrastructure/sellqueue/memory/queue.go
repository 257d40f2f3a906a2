package memory

import (
	"context"
	"strings"
	"sync"

	"papertrader/internal/application/port"
)

// Queue is the in-process manual-sell queue. Producers push symbols from
// their own goroutine; the trader loop drains at cycle start. Duplicates
// collapse, symbols normalize to upper case.
type Queue struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func New() *Queue {
	return &Queue{pending: make(map[string]struct{})}
}

func (q *Queue) Push(symbols ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, s := range symbols {
		u := strings.ToUpper(strings.TrimSpace(s))
		if u == "" {
			continue
		}
		q.pending[u] = struct{}{}
	}
}

func (q *Queue) Drain(ctx context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(q.pending))
	for s := range q.pending {
		out = append(out, s)
	}
	q.pending = make(map[string]struct{})
	return out, nil
}

var _ port.SellQueue = (*Queue)(nil)
