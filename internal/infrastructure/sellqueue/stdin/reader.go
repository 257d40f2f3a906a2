package stdin

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// Pusher is the queue side the reader feeds.
type Pusher interface {
	Push(symbols ...string)
}

// Reader accepts comma-separated symbol lines on an input stream and
// enqueues them for the next cycle. It replaces the keyboard-interrupt
// prompt of older setups: type "AAPL,MSFT" and press enter.
type Reader struct {
	in    io.Reader
	queue Pusher
}

func New(in io.Reader, queue Pusher) *Reader {
	return &Reader{in: in, queue: queue}
}

// Run blocks until the input stream ends or the context is cancelled.
// Meant to be started as a goroutine next to the trader loop.
func (r *Reader) Run(ctx context.Context) {
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		symbols := strings.Split(line, ",")
		r.queue.Push(symbols...)
		log.Info().Str("input", line).Msg("sell request queued for next cycle")
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("sell input reader stopped")
	}
}
