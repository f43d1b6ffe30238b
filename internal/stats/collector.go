// Package stats accumulates per-account statistics reported by tasks
// during a run and renders them as a table once the batch completes.
package stats

import (
	"sort"
	"sync"
)

// Row is one account's collected numbers.
type Row struct {
	AccountIndex int
	Label        string
	Balance      float64
	Operations   int
}

// Collector is a mutex-guarded, append-only sink. Tasks record rows
// concurrently; the orchestrator reads the result once, after every
// pipeline has finished.
type Collector struct {
	mu   sync.Mutex
	rows []Row
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one account's numbers.
func (c *Collector) Record(r Row) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, r)
}

// Rows returns a copy of the collected rows sorted by account index.
func (c *Collector) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountIndex < out[j].AccountIndex
	})
	return out
}
