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

func TestDriverInitializeBuildsSession(t *testing.T) {
	acct := batch.AccountInput{Index: 2, Secret: "s", EgressPath: "user:pass@127.0.0.1:8080"}
	runner := NewRunner(NewRegistry(&fakeTask{name: "probe", result: true}),
		[]Spec{{"probe"}}, batch.Range{}, batch.NewRand(1), nil, zap.NewNop())
	d := NewDriver(acct, "http://service.local", time.Second, runner, zap.NewNop())

	ok, err := d.Initialize(context.Background(), acct)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, d.session)
	assert.Equal(t, "http://service.local", d.session.BaseURL)
}

func TestDriverInitializeRejectsBadEgress(t *testing.T) {
	acct := batch.AccountInput{Index: 2, Secret: "s", EgressPath: "ftp://nope"}
	d := NewDriver(acct, "http://service.local", time.Second, nil, zap.NewNop())

	ok, err := d.Initialize(context.Background(), acct)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestDriverFlowRequiresSession(t *testing.T) {
	acct := batch.AccountInput{Index: 2, Secret: "s"}
	d := NewDriver(acct, "http://service.local", time.Second, nil, zap.NewNop())

	ok, err := d.Flow(context.Background(), acct)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestDriverInitializeThenFlow(t *testing.T) {
	acct := batch.AccountInput{Index: 2, Secret: "s"}
	task := &fakeTask{name: "probe", result: true}
	runner := NewRunner(NewRegistry(task), []Spec{{"probe"}},
		batch.Range{}, batch.NewRand(1),
		func(ctx context.Context, d time.Duration) {}, zap.NewNop())
	d := NewDriver(acct, "http://service.local", time.Second, runner, zap.NewNop())

	ok, err := d.Initialize(context.Background(), acct)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = d.Flow(context.Background(), acct)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, task.calls)
}
