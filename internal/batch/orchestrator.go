package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fatal setup errors. When one is returned no pipeline has launched and
// no ledger entry has been written.
var (
	ErrNoAccounts  = errors.New("no accounts selected for processing")
	ErrNoResources = errors.New("no egress paths available")
)

// Options wires an orchestrator's collaborators and tuning together.
type Options struct {
	Threads int
	Select  SelectOptions
	Retry   Policy
	Pacing  Pacing

	// Ops builds the per-account initialize and flow operations.
	Ops OpsFactory
	// Reporter receives every pipeline's outcome.
	Reporter *Reporter
	// Summary runs once after every pipeline has reached a terminal
	// state, regardless of the mix of outcomes. Optional.
	Summary func()

	Rand   *Rand
	Sleep  Sleeper
	Logger *zap.Logger
}

// Orchestrator composes account selection, resource cycling, admission
// control and per-account pipelines into a single batch run.
type Orchestrator struct {
	opts Options
	log  *zap.Logger
}

// New validates and applies defaults to opts and returns an orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(time.Now().UnixNano())
	}
	if opts.Sleep == nil {
		opts.Sleep = SleepContext
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Orchestrator{opts: opts, log: opts.Logger}
}

// RunBatch drives every selected account to a terminal state and then
// runs the summary step. Egress paths are required; token and email
// lists are optional and blank-padded when absent. Individual pipeline
// failures never abort the batch: RunBatch returns an error only when
// setup fails before any pipeline launches.
func (o *Orchestrator) RunBatch(ctx context.Context, secrets, egressPaths, tokens, emails []string) error {
	b := Select(secrets, o.opts.Rand, o.opts.Select)
	if len(b.Inputs) == 0 {
		return ErrNoAccounts
	}

	n := len(b.Inputs)
	egress, err := Cycle(egressPaths, n)
	if err != nil {
		return ErrNoResources
	}
	tokens = cycleOrBlank(tokens, n)
	emails = cycleOrBlank(emails, n)

	for i := range b.Inputs {
		b.Inputs[i].EgressPath = egress[i]
		b.Inputs[i].Aux = map[string]string{
			AuxToken: tokens[i],
			AuxEmail: emails[i],
		}
	}

	log := o.log.With(zap.String("run_id", b.RunID))
	log.Info("Starting accounts in random order",
		zap.Int("count", n),
		zap.Int("start", b.Start),
		zap.Int("end", b.End),
		zap.String("order", b.Order))

	gate := NewGate(o.opts.Threads)
	exec := &Executor{Rand: o.opts.Rand, Sleep: o.opts.Sleep}

	var (
		mu      sync.Mutex
		results []PipelineResult
	)
	var g errgroup.Group
	for _, acct := range b.Inputs {
		init, flow := o.opts.Ops(acct)
		p := NewPipeline(acct, init, flow, gate, exec, o.opts.Retry, o.opts.Pacing, o.opts.Reporter, log)
		g.Go(func() error {
			res := p.Run(ctx)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // pipelines never return errors

	succeeded := 0
	for _, res := range results {
		if res.Succeeded {
			succeeded++
		}
	}
	log.Info("All accounts processed",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", n-succeeded))

	if o.opts.Summary != nil {
		o.opts.Summary()
	}
	return nil
}

// cycleOrBlank stretches an optional list to n entries, substituting
// empty placeholders when the list is absent.
func cycleOrBlank(src []string, n int) []string {
	out, err := Cycle(src, n)
	if err != nil {
		return make([]string, n)
	}
	return out
}
