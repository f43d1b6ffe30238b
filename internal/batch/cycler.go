package batch

import "errors"

// ErrEmptySource reports that a resource list cannot be stretched because
// it has no elements. Callers with genuinely optional inputs substitute a
// slice of empty placeholders instead of calling Cycle.
var ErrEmptySource = errors.New("cycle: empty source")

// Cycle stretches src to length n by repeating its elements in order:
// out[i] == src[i % len(src)].
func Cycle(src []string, n int) ([]string, error) {
	if len(src) == 0 {
		return nil, ErrEmptySource
	}
	out := make([]string, n)
	for i := range out {
		out[i] = src[i%len(src)]
	}
	return out, nil
}
