package port

import "context"

// SellQueue is the manual-override channel: an external producer enqueues
// symbols, the runner drains them at the start of the next cycle. Drain is
// a non-blocking poll and returns nil when nothing is queued.
type SellQueue interface {
	Drain(ctx context.Context) ([]string, error)
}
