package flow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fleetflow/internal/batch"
)

// Runner executes an account session's task plan with per-task failure
// isolation: a failed task is logged and swallowed, the remaining tasks
// still run, and the randomized inter-task pause applies after every task
// regardless of its outcome.
type Runner struct {
	registry *Registry
	specs    []Spec
	pause    batch.Range
	rng      *batch.Rand
	sleep    batch.Sleeper
	log      *zap.Logger
}

// NewRunner builds a runner shared by all pipelines of a run.
func NewRunner(registry *Registry, specs []Spec, pause batch.Range, rng *batch.Rand, sleep batch.Sleeper, log *zap.Logger) *Runner {
	if sleep == nil {
		sleep = batch.SleepContext
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		registry: registry,
		specs:    specs,
		pause:    pause,
		rng:      rng,
		sleep:    sleep,
		log:      log,
	}
}

// Run resolves the plan for this session and executes it in order. It
// returns false only when the plan itself cannot be resolved; individual
// task failures do not fail the flow.
func (r *Runner) Run(ctx context.Context, s *Session) (bool, error) {
	plan, err := r.registry.Resolve(r.specs, r.rng)
	if err != nil {
		return false, fmt.Errorf("resolve task plan: %w", err)
	}

	labels := make([]string, len(plan))
	for i, t := range plan {
		labels[i] = fmt.Sprintf("%d. %s", i+1, t.Name())
	}
	log := r.log.With(zap.Int("account", s.Account.Index))
	log.Info("Task execution plan", zap.String("plan", strings.Join(labels, " | ")))

	for _, t := range plan {
		if ok := t.Run(ctx, s); !ok {
			log.Warn("Task failed", zap.String("task", t.Name()))
		}
		d := r.pause.Duration(r.rng)
		if d > 0 {
			log.Info("Sleeping after task", zap.String("task", t.Name()), zap.Duration("pause", d))
		}
		r.sleep(ctx, d)
	}
	return true, nil
}
