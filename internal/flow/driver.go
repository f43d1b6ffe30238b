package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetflow/internal/batch"
	"fleetflow/internal/netx"
)

// Driver owns one account's remote session and implements the pipeline's
// initialize and flow operations.
type Driver struct {
	acct    batch.AccountInput
	baseURL string
	timeout time.Duration
	runner  *Runner
	log     *zap.Logger

	session *Session
}

// NewDriver binds a driver to a single account.
func NewDriver(acct batch.AccountInput, baseURL string, timeout time.Duration, runner *Runner, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		acct:    acct,
		baseURL: baseURL,
		timeout: timeout,
		runner:  runner,
		log:     log.With(zap.Int("account", acct.Index)),
	}
}

// Initialize builds the account's HTTP client over its egress path.
func (d *Driver) Initialize(ctx context.Context, acct batch.AccountInput) (bool, error) {
	client, err := netx.Dial(acct.EgressPath, d.timeout)
	if err != nil {
		return false, fmt.Errorf("dial egress: %w", err)
	}
	d.session = &Session{Account: acct, Client: client, BaseURL: d.baseURL}
	d.log.Info("Session initialized")
	return true, nil
}

// Flow executes the resolved task plan over the initialized session.
func (d *Driver) Flow(ctx context.Context, acct batch.AccountInput) (bool, error) {
	if d.session == nil {
		return false, errors.New("session not initialized")
	}
	return d.runner.Run(ctx, d.session)
}
