package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleWrapsSource(t *testing.T) {
	cases := []struct {
		name string
		src  []string
		n    int
	}{
		{"shorter source", []string{"a", "b", "c"}, 8},
		{"equal lengths", []string{"a", "b"}, 2},
		{"longer source", []string{"a", "b", "c", "d", "e"}, 3},
		{"zero target", []string{"a"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Cycle(tc.src, tc.n)
			require.NoError(t, err)
			require.Len(t, out, tc.n)
			for i := range out {
				assert.Equal(t, tc.src[i%len(tc.src)], out[i], "position %d", i)
			}
		})
	}
}

func TestCycleEmptySource(t *testing.T) {
	_, err := Cycle(nil, 5)
	assert.ErrorIs(t, err, ErrEmptySource)
}
