// Package orders supplies the external order-processing collaborator. In
// production this is a payment gateway; here a simulated processor models
// its latency and failure modes.
package orders

import (
	"context"
	"time"
)

// Processor settles an order with the outside world.
type Processor interface {
	ProcessOrder(ctx context.Context) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context) error

func (f ProcessorFunc) ProcessOrder(ctx context.Context) error {
	return f(ctx)
}

// Simulated sleeps for the configured latency and then succeeds, unless a
// failure hook is installed. It honors context cancellation during the
// sleep, which is how checkout timeouts reach it.
type Simulated struct {
	latency time.Duration
	fail    func() error
}

// NewSimulated builds the simulated processor.
func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{latency: latency}
}

// WithFailure installs a hook consulted after the latency elapses; a non-nil
// return fails the order.
func (s *Simulated) WithFailure(fail func() error) *Simulated {
	s.fail = fail
	return s
}

func (s *Simulated) ProcessOrder(ctx context.Context) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.fail != nil {
		return s.fail()
	}
	return nil
}
