package stats

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRowsSortedByIndex(t *testing.T) {
	c := NewCollector()
	c.Record(Row{AccountIndex: 3, Label: "c***3", Balance: 1.5, Operations: 2})
	c.Record(Row{AccountIndex: 1, Label: "a***1", Balance: 0.25, Operations: 7})
	c.Record(Row{AccountIndex: 2, Label: "b***2", Balance: 3.0, Operations: 1})

	rows := c.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].AccountIndex, rows[1].AccountIndex, rows[2].AccountIndex})
	assert.Equal(t, "a***1", rows[0].Label)
}

func TestCollectorConcurrentRecord(t *testing.T) {
	c := NewCollector()
	const n = 100

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Record(Row{AccountIndex: i, Balance: float64(i), Operations: i})
		}(i)
	}
	wg.Wait()

	rows := c.Rows()
	require.Len(t, rows, n)
	for i, r := range rows {
		assert.Equal(t, i+1, r.AccountIndex)
	}
}

func TestCollectorRowsReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Record(Row{AccountIndex: 1, Label: "orig"})

	rows := c.Rows()
	rows[0].Label = "mutated"

	assert.Equal(t, "orig", c.Rows()[0].Label)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "No account statistics available", Render(nil))
}

func TestRenderTotalsAndAverages(t *testing.T) {
	out := Render([]Row{
		{AccountIndex: 1, Label: "a***1", Balance: 1.5, Operations: 4},
		{AccountIndex: 2, Label: "b***2", Balance: 2.5, Operations: 6},
	})

	assert.Contains(t, out, "Account Statistics (2 accounts)")
	assert.Contains(t, out, "a***1")
	assert.Contains(t, out, "b***2")
	assert.Contains(t, out, fmt.Sprintf("Total balance: %.4f", 4.0))
	assert.Contains(t, out, "Total operations: 10")
	assert.Contains(t, out, fmt.Sprintf("Average balance: %.4f", 2.0))
	assert.Contains(t, out, "Average operations: 5.0")
}

func TestRenderOneLinePerRow(t *testing.T) {
	out := Render([]Row{
		{AccountIndex: 1, Label: "a***1", Balance: 1, Operations: 1},
		{AccountIndex: 2, Label: "b***2", Balance: 2, Operations: 2},
	})

	// title + header + 2 rows + 4 summary lines
	assert.Len(t, strings.Split(out, "\n"), 8)
}
