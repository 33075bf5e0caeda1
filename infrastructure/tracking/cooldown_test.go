package tracking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/typedrill/typedrill/infrastructure/tracking"
)

// fakeReporter records all statuses delivered to it.
type fakeReporter struct {
	mu       sync.Mutex
	statuses []tracking.Status
}

func (f *fakeReporter) OnChange(_ context.Context, status tracking.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeReporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statuses)
}

func (f *fakeReporter) last() tracking.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[len(f.statuses)-1]
}

func TestCooldown_FirstUpdatePassesThrough(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, time.Second)
	defer func() { _ = cooldown.Close() }()

	ctx := context.Background()
	status := tracking.NewStatus(tracking.StepExtracting).WithProgress(1, 10, "main.go")

	if err := cooldown.OnChange(ctx, status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.count() != 1 {
		t.Fatalf("expected 1 delivery, got %d", fake.count())
	}
}

func TestCooldown_ThrottlesRapidUpdates(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, 500*time.Millisecond)
	defer func() { _ = cooldown.Close() }()

	ctx := context.Background()
	status := tracking.NewStatus(tracking.StepExtracting)

	for i := 1; i <= 5; i++ {
		if err := cooldown.OnChange(ctx, status.WithProgress(i, 10, "")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if fake.count() != 1 {
		t.Fatalf("expected only the first delivery, got %d", fake.count())
	}
}

func TestCooldown_FinishedFlushesImmediately(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, time.Hour)
	defer func() { _ = cooldown.Close() }()

	ctx := context.Background()
	status := tracking.NewStatus(tracking.StepExtracting)

	_ = cooldown.OnChange(ctx, status.WithProgress(1, 10, ""))
	_ = cooldown.OnChange(ctx, status.WithProgress(5, 10, ""))
	_ = cooldown.OnChange(ctx, status.WithProgress(10, 10, "").Finish())

	if fake.count() != 2 {
		t.Fatalf("expected finished status to bypass the cooldown, got %d deliveries", fake.count())
	}
	if !fake.last().Finished() {
		t.Fatalf("expected last delivery to be finished")
	}
}

func TestCooldown_PendingFlushesWhenIntervalElapses(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, 50*time.Millisecond)
	defer func() { _ = cooldown.Close() }()

	ctx := context.Background()
	status := tracking.NewStatus(tracking.StepExtracting)

	_ = cooldown.OnChange(ctx, status.WithProgress(1, 10, ""))
	_ = cooldown.OnChange(ctx, status.WithProgress(7, 10, ""))

	deadline := time.Now().Add(2 * time.Second)
	for fake.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if fake.count() != 2 {
		t.Fatalf("expected pending status to flush after the interval, got %d deliveries", fake.count())
	}
	if fake.last().Current() != 7 {
		t.Fatalf("expected latest pending status, got current=%d", fake.last().Current())
	}
}

func TestCooldown_StepsThrottleIndependently(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, time.Hour)
	defer func() { _ = cooldown.Close() }()

	ctx := context.Background()
	_ = cooldown.OnChange(ctx, tracking.NewStatus(tracking.StepScanning).WithProgress(1, 2, ""))
	_ = cooldown.OnChange(ctx, tracking.NewStatus(tracking.StepExtracting).WithProgress(1, 2, ""))

	if fake.count() != 2 {
		t.Fatalf("expected one delivery per step, got %d", fake.count())
	}
}

func TestCooldown_CloseFlushesPending(t *testing.T) {
	fake := &fakeReporter{}
	cooldown := tracking.NewCooldown(fake, time.Hour)

	ctx := context.Background()
	status := tracking.NewStatus(tracking.StepExtracting)

	_ = cooldown.OnChange(ctx, status.WithProgress(1, 10, ""))
	_ = cooldown.OnChange(ctx, status.WithProgress(8, 10, ""))

	if err := cooldown.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.count() != 2 {
		t.Fatalf("expected Close to flush the pending status, got %d deliveries", fake.count())
	}
	if fake.last().Current() != 8 {
		t.Fatalf("expected pending status, got current=%d", fake.last().Current())
	}
}
