package batch

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Rand is a mutex-guarded random source shared by concurrent pipelines.
// Seeding it explicitly makes account ordering, task-alternative choices
// and pacing reproducible under test.
type Rand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a Rand seeded with the given value.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform value in [0, n).
func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// Between returns a uniform value in [min, max].
func (r *Rand) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Shuffle randomizes the order of n elements via swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src.Shuffle(n, swap)
}

// Range is an inclusive pause interval in whole seconds.
type Range struct {
	Min int
	Max int
}

// Duration samples a pause uniformly from the range.
func (p Range) Duration(rng *Rand) time.Duration {
	return time.Duration(rng.Between(p.Min, p.Max)) * time.Second
}

// Pacing groups the randomized pauses applied around and inside pipelines.
type Pacing struct {
	// InitPause is the warm-up before an account's initialize phase.
	InitPause Range
	// BetweenAccounts is the cooldown after an account reports its outcome.
	BetweenAccounts Range
	// BetweenTasks is the pause after each task inside the flow.
	BetweenTasks Range
}

// Sleeper pauses for d or until ctx is done. Tests substitute a recording
// no-op so pipelines run without real sleeps.
type Sleeper func(ctx context.Context, d time.Duration)

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
