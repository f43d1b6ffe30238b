package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fleetflow/internal/batch"
)

func testSession() *Session {
	return &Session{Account: batch.AccountInput{Index: 1, Secret: "secret-a"}}
}

func TestRunnerExecutesWholePlan(t *testing.T) {
	first := &fakeTask{name: "probe", result: true}
	second := &fakeTask{name: "sweep", result: true}
	r := NewRunner(NewRegistry(first, second),
		[]Spec{{"probe"}, {"sweep"}},
		batch.Range{}, batch.NewRand(1), nil, zap.NewNop())

	ok, err := r.Run(context.Background(), testSession())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestRunnerIsolatesTaskFailures(t *testing.T) {
	failing := &fakeTask{name: "probe", result: false}
	following := &fakeTask{name: "sweep", result: true}
	r := NewRunner(NewRegistry(failing, following),
		[]Spec{{"probe"}, {"sweep"}},
		batch.Range{}, batch.NewRand(1), nil, zap.NewNop())

	ok, err := r.Run(context.Background(), testSession())
	require.NoError(t, err)
	assert.True(t, ok, "task failures do not fail the flow")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, following.calls, "remaining tasks still run after a failure")
}

func TestRunnerPausesAfterEveryTask(t *testing.T) {
	var pauses int
	sleep := func(ctx context.Context, d time.Duration) { pauses++ }

	r := NewRunner(
		NewRegistry(&fakeTask{name: "probe", result: false}, &fakeTask{name: "sweep", result: true}),
		[]Spec{{"probe"}, {"sweep"}},
		batch.Range{Min: 1, Max: 3}, batch.NewRand(1), sleep, zap.NewNop())

	_, err := r.Run(context.Background(), testSession())
	require.NoError(t, err)
	// The pause applies after each task regardless of its outcome.
	assert.Equal(t, 2, pauses)
}

func TestRunnerFailsOnUnresolvablePlan(t *testing.T) {
	r := NewRunner(NewRegistry(&fakeTask{name: "probe"}),
		[]Spec{{"ghost"}},
		batch.Range{}, batch.NewRand(1), nil, zap.NewNop())

	ok, err := r.Run(context.Background(), testSession())
	assert.False(t, ok)
	assert.Error(t, err)
}
