// Package latency provides the simulated network delay that the catalog and
// order services apply in front of the in-memory store, so that callers see
// the same async behavior a real campus backend would give them.
package latency

import (
	"context"
	"time"
)

type Simulator struct {
	read  time.Duration
	write time.Duration
}

func New(read, write time.Duration) Simulator {
	return Simulator{read: read, write: write}
}

// Read blocks for the configured read delay, or until ctx is done.
func (s Simulator) Read(ctx context.Context) error {
	return wait(ctx, s.read)
}

// Write blocks for the configured write delay, or until ctx is done.
func (s Simulator) Write(ctx context.Context) error {
	return wait(ctx, s.write)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
