package flow

import (
	"fmt"

	"fleetflow/internal/batch"
)

// Registry is the closed set of runnable tasks, built once at startup.
// Plans can only reference registered tasks; unknown names are rejected
// when the configuration is validated, not skipped mid-run.
type Registry struct {
	tasks map[string]Task
}

// NewRegistry indexes the given tasks by name.
func NewRegistry(tasks ...Task) *Registry {
	m := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		m[t.Name()] = t
	}
	return &Registry{tasks: m}
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Validate checks that every name a plan could draw is registered.
func (r *Registry) Validate(specs []Spec) error {
	for i, spec := range specs {
		if len(spec) == 0 {
			return fmt.Errorf("task slot %d is empty", i+1)
		}
		for _, name := range spec {
			if _, ok := r.tasks[name]; !ok {
				return fmt.Errorf("unknown task %q in slot %d", name, i+1)
			}
		}
	}
	return nil
}

// Resolve fixes the plan for one pipeline run, drawing one alternative
// per ambiguous slot. The returned order never changes for the lifetime
// of the pipeline.
func (r *Registry) Resolve(specs []Spec, rng *batch.Rand) ([]Task, error) {
	plan := make([]Task, 0, len(specs))
	for i, spec := range specs {
		if len(spec) == 0 {
			return nil, fmt.Errorf("task slot %d is empty", i+1)
		}
		name := spec[0]
		if len(spec) > 1 {
			name = spec[rng.Intn(len(spec))]
		}
		t, ok := r.tasks[name]
		if !ok {
			return nil, fmt.Errorf("unknown task %q in slot %d", name, i+1)
		}
		plan = append(plan, t)
	}
	return plan, nil
}
