package tracking_test

import (
	"testing"

	"github.com/typedrill/typedrill/infrastructure/tracking"
)

func TestStatus_WithProgressIsImmutable(t *testing.T) {
	base := tracking.NewStatus(tracking.StepScanning)
	updated := base.WithProgress(3, 10, "main.go")

	if base.Current() != 0 || base.Total() != 0 {
		t.Fatalf("base status mutated: current=%d total=%d", base.Current(), base.Total())
	}
	if updated.Current() != 3 || updated.Total() != 10 || updated.Label() != "main.go" {
		t.Fatalf("unexpected updated status: %+v", updated)
	}
}

func TestStatus_Finish(t *testing.T) {
	status := tracking.NewStatus(tracking.StepCaching)
	if status.Finished() {
		t.Fatal("new status must not be finished")
	}
	if !status.Finish().Finished() {
		t.Fatal("Finish must mark the status finished")
	}
	if status.Finished() {
		t.Fatal("Finish must not mutate the receiver")
	}
}

func TestStatus_CompletionPercent(t *testing.T) {
	status := tracking.NewStatus(tracking.StepGenerating)

	if got := status.CompletionPercent(); got != 0 {
		t.Fatalf("unknown total should report 0, got %f", got)
	}
	if got := status.WithProgress(5, 10, "").CompletionPercent(); got != 50 {
		t.Fatalf("expected 50, got %f", got)
	}
	if got := status.WithProgress(10, 10, "").CompletionPercent(); got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}
}
