package orders

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimulatedSucceedsAfterLatency(t *testing.T) {
	t.Parallel()

	proc := NewSimulated(10 * time.Millisecond)
	if err := proc.ProcessOrder(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSimulatedHonorsCancellation(t *testing.T) {
	t.Parallel()

	proc := NewSimulated(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := proc.ProcessOrder(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSimulatedFailureHook(t *testing.T) {
	t.Parallel()

	boom := errors.New("gateway down")
	proc := NewSimulated(0).WithFailure(func() error { return boom })

	if err := proc.ProcessOrder(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected hook error, got %v", err)
	}
}
