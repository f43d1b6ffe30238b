package batch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate bounds how many pipelines run their network-bound phases at once.
// There is no fairness guarantee: some waiter is eventually admitted, but
// starvation of an individual waiter is accepted.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate returns a gate admitting up to capacity holders. Capacities
// below one are clamped to one.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(capacity))}
}

// Acquire blocks until a slot is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release frees a slot, admitting at most one waiter.
func (g *Gate) Release() {
	g.sem.Release(1)
}
