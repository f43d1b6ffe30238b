package batch

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SelectOptions narrows which accounts a run processes.
//
// A degenerate Range of (0,0) combined with an empty Exact list selects
// every account. A non-empty Exact list picks those 1-based indices that
// exist, silently dropping out-of-range entries. Otherwise Range selects
// the inclusive 1-based slice [Start, End]; an End of zero extends the
// slice to the last account.
type SelectOptions struct {
	Range [2]int
	Exact []int
}

// Select resolves the subset of secrets to process and shuffles it into
// launch order. Each input keeps the 1-based index of its original
// position, so ledger entries stay meaningful regardless of the applied
// permutation. An empty result is not an error at this layer; the
// orchestrator treats it as a fatal setup failure.
func Select(secrets []string, rng *Rand, opts SelectOptions) Batch {
	start, end := opts.Range[0], opts.Range[1]

	type picked struct {
		label  int
		secret string
	}
	var subset []picked

	switch {
	case start == 0 && end == 0 && len(opts.Exact) == 0:
		start, end = 1, len(secrets)
		for i, s := range secrets {
			subset = append(subset, picked{label: i + 1, secret: s})
		}

	case start == 0 && end == 0:
		for _, idx := range opts.Exact {
			if idx >= 1 && idx <= len(secrets) {
				subset = append(subset, picked{label: idx, secret: secrets[idx-1]})
			}
		}
		// Start/End mirror the configured list, not the filtered result.
		start, end = minInt(opts.Exact), maxInt(opts.Exact)

	default:
		// An End of zero means "to the last account".
		if end == 0 || end > len(secrets) {
			end = len(secrets)
		}
		lo := start - 1
		if lo < 0 {
			lo = 0
		}
		for i := lo; i < end; i++ {
			subset = append(subset, picked{label: i + 1, secret: secrets[i]})
		}
	}

	rng.Shuffle(len(subset), func(i, j int) {
		subset[i], subset[j] = subset[j], subset[i]
	})

	inputs := make([]AccountInput, 0, len(subset))
	labels := make([]string, 0, len(subset))
	for _, p := range subset {
		inputs = append(inputs, AccountInput{Index: p.label, Secret: p.secret})
		labels = append(labels, strconv.Itoa(p.label))
	}

	return Batch{
		RunID:  uuid.NewString(),
		Inputs: inputs,
		Start:  start,
		End:    end,
		Order:  strings.Join(labels, " "),
	}
}

func minInt(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxInt(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
