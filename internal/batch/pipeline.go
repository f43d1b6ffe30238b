package batch

import (
	"context"

	"go.uber.org/zap"
)

// Initializer prepares an account's session with the remote service.
type Initializer func(ctx context.Context, acct AccountInput) (bool, error)

// FlowRunner executes the account's resolved task sequence.
type FlowRunner func(ctx context.Context, acct AccountInput) (bool, error)

// OpsFactory builds the initialize and flow operations bound to one
// account. The orchestrator calls it once per pipeline.
type OpsFactory func(acct AccountInput) (Initializer, FlowRunner)

// Pipeline drives one account through warm-up, initialize, flow,
// reporting and cooldown. It holds a gate slot from before the warm-up
// until its outcome has been reported; the cooldown happens outside the
// gate so it never blocks other pipelines.
type Pipeline struct {
	acct     AccountInput
	init     Initializer
	flow     FlowRunner
	gate     *Gate
	retry    *Executor
	policy   Policy
	pacing   Pacing
	reporter *Reporter
	log      *zap.Logger

	state    State
	reported bool
}

// NewPipeline wires a pipeline for a single account.
func NewPipeline(acct AccountInput, init Initializer, flow FlowRunner, gate *Gate,
	retry *Executor, policy Policy, pacing Pacing, reporter *Reporter, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		acct:     acct,
		init:     init,
		flow:     flow,
		gate:     gate,
		retry:    retry,
		policy:   policy,
		pacing:   pacing,
		reporter: reporter,
		log:      log.With(zap.Int("account", acct.Index)),
		state:    StateCreated,
	}
}

// Run drives the pipeline to a terminal state. It never returns an error
// or propagates a panic to the orchestrator: every failure is demoted to
// a failed outcome before the pipeline terminates.
func (p *Pipeline) Run(ctx context.Context) PipelineResult {
	succeeded := p.execute(ctx)

	if p.state != StateAborted {
		p.pause(ctx, p.pacing.BetweenAccounts, "Next account")
		p.state = StateCooledDown
	}
	return PipelineResult{AccountIndex: p.acct.Index, Succeeded: succeeded}
}

// State reports the pipeline's current lifecycle position.
func (p *Pipeline) State() State {
	return p.state
}

// execute runs the gate-held phases: warm-up, initialize, flow and
// reporting. A panic anywhere inside is recovered at this boundary and
// recorded as a failed outcome.
func (p *Pipeline) execute(ctx context.Context) (succeeded bool) {
	if err := p.gate.Acquire(ctx); err != nil {
		p.state = StateAborted
		p.log.Error("Admission aborted", zap.Error(err))
		p.report(false)
		return false
	}
	defer p.gate.Release()

	defer func() {
		if r := recover(); r != nil {
			p.state = StateAborted
			p.log.Error("Pipeline aborted", zap.Any("panic", r))
			p.report(false)
			succeeded = false
		}
	}()

	p.state = StateInitializing
	p.pause(ctx, p.pacing.InitPause, "Starting")

	initOK := p.retry.Retry(ctx, p.wrap(p.init), p.policy, p.onAttemptFailure("initialization"))
	flowOK := false
	if initOK {
		p.state = StateRunning
		flowOK = p.retry.Retry(ctx, p.wrap(p.flow), p.policy, p.onAttemptFailure("flow"))
	} else {
		p.log.Error("Initialization failed, skipping flow")
	}

	succeeded = initOK && flowOK
	p.state = StateReporting
	p.report(succeeded)
	return succeeded
}

func (p *Pipeline) wrap(op func(ctx context.Context, acct AccountInput) (bool, error)) Operation {
	return func(ctx context.Context) (bool, error) {
		return op(ctx, p.acct)
	}
}

func (p *Pipeline) onAttemptFailure(phase string) func(attempt int, err error) {
	return func(attempt int, err error) {
		p.log.Info("Attempt failed, retrying",
			zap.String("phase", phase),
			zap.Int("attempt", attempt),
			zap.Int("budget", p.policy.MaxAttempts),
			zap.Error(err))
	}
}

// report records the outcome exactly once, even when the panic recovery
// path fires after a report has already been written.
func (p *Pipeline) report(succeeded bool) {
	if p.reported {
		return
	}
	p.reported = true
	if err := p.reporter.Report(succeeded, p.acct.EgressPath, p.acct.Aux[AuxToken], p.acct.Index); err != nil {
		p.log.Error("Outcome report failed", zap.Error(err))
	}
}

func (p *Pipeline) pause(ctx context.Context, r Range, reason string) {
	d := r.Duration(p.retry.Rand)
	if d > 0 {
		p.log.Info(reason+" | sleeping", zap.Duration("pause", d))
	}
	p.retry.Sleep(ctx, d)
}
