package batch

import "context"

// Policy bounds a retryable operation.
type Policy struct {
	// MaxAttempts is the total attempt budget, including the first try.
	// Values below one behave as one.
	MaxAttempts int
	// Pause is sampled uniformly between attempts. It is never applied
	// after the final attempt.
	Pause Range
	// Retryable decides whether a failed attempt may be retried. When nil
	// every failure is retried, permanent and transient alike. Callers
	// wanting stricter classification plug one in.
	Retryable func(error) bool
}

// Operation is one attemptable unit of remote work. An attempt counts as
// successful only when it returns (true, nil): a true result paired with
// a non-nil error is still a failed attempt.
type Operation func(ctx context.Context) (bool, error)

// Executor reruns failed operations with a randomized pause between
// attempts. It is shared by every pipeline in a run.
type Executor struct {
	Rand  *Rand
	Sleep Sleeper
}

// Retry runs op until it succeeds or the attempt budget is spent,
// reporting whether any attempt succeeded. onFail, when non-nil, is
// invoked after each failed attempt that will be retried.
func (e *Executor) Retry(ctx context.Context, op Operation, policy Policy, onFail func(attempt int, err error)) bool {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		ok, err := op(ctx)
		if ok && err == nil {
			return true
		}
		if err != nil && policy.Retryable != nil && !policy.Retryable(err) {
			return false
		}
		if attempt == attempts {
			break
		}
		if onFail != nil {
			onFail(attempt, err)
		}
		e.Sleep(ctx, policy.Pause.Duration(e.Rand))
	}
	return false
}
