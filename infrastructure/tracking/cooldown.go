package tracking

import (
	"context"
	"io"
	"sync"
	"time"
)

// Ensure Cooldown implements both Reporter and io.Closer.
var (
	_ Reporter  = (*Cooldown)(nil)
	_ io.Closer = (*Cooldown)(nil)
)

// Cooldown wraps a Reporter and limits how frequently updates are delivered
// for each step. Finished statuses are always delivered immediately.
// Intermediate updates are delivered at most once per interval; the latest
// pending status is flushed when the interval elapses or the step finishes.
type Cooldown struct {
	inner    Reporter
	interval time.Duration
	mu       sync.Mutex
	entries  map[Step]*cooldownEntry
}

type cooldownEntry struct {
	lastFlush time.Time
	pending   *Status
	timer     *time.Timer
}

// NewCooldown creates a Cooldown wrapping the given reporter with the
// specified minimum interval between deliveries per step.
func NewCooldown(inner Reporter, interval time.Duration) *Cooldown {
	return &Cooldown{
		inner:    inner,
		interval: interval,
		entries:  make(map[Step]*cooldownEntry),
	}
}

// OnChange receives a progress update. Finished statuses flush immediately.
// Intermediate statuses are throttled to at most one delivery per interval.
func (c *Cooldown) OnChange(ctx context.Context, status Status) error {
	step := status.Step()

	c.mu.Lock()

	if status.Finished() {
		if entry := c.entries[step]; entry != nil {
			if entry.timer != nil {
				entry.timer.Stop()
			}
			delete(c.entries, step)
		}
		c.mu.Unlock()
		return c.inner.OnChange(ctx, status)
	}

	entry, exists := c.entries[step]
	if !exists {
		entry = &cooldownEntry{}
		c.entries[step] = entry
	}

	elapsed := time.Since(entry.lastFlush)
	if elapsed >= c.interval {
		if entry.timer != nil {
			entry.timer.Stop()
			entry.timer = nil
		}
		entry.pending = nil
		entry.lastFlush = time.Now()
		c.mu.Unlock()
		return c.inner.OnChange(ctx, status)
	}

	// Throttled: store as pending, schedule flush if no timer is running.
	statusCopy := status
	entry.pending = &statusCopy

	if entry.timer == nil {
		remaining := c.interval - elapsed
		entry.timer = time.AfterFunc(remaining, func() {
			c.flushPending(step)
		})
	}

	c.mu.Unlock()
	return nil
}

// Close flushes all pending statuses and stops all timers.
func (c *Cooldown) Close() error {
	c.mu.Lock()
	entries := make(map[Step]*cooldownEntry, len(c.entries))
	for k, v := range c.entries {
		entries[k] = v
	}
	c.entries = make(map[Step]*cooldownEntry)
	c.mu.Unlock()

	for _, entry := range entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		if entry.pending != nil {
			_ = c.inner.OnChange(context.Background(), *entry.pending)
		}
	}
	return nil
}

func (c *Cooldown) flushPending(step Step) {
	c.mu.Lock()
	entry, ok := c.entries[step]
	if !ok || entry.pending == nil {
		if ok {
			entry.timer = nil
		}
		c.mu.Unlock()
		return
	}

	status := *entry.pending
	entry.pending = nil
	entry.timer = nil
	entry.lastFlush = time.Now()
	c.mu.Unlock()

	_ = c.inner.OnChange(context.Background(), status)
}
