// Package flow resolves and executes the per-account task plan: the
// ordered sequence of remote actions a pipeline performs once its session
// is initialized. Task failures are isolated to the task itself; the rest
// of the plan always runs.
package flow

import (
	"context"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"

	"fleetflow/internal/batch"
)

// Session is one account's live connection state, created by the
// initialize phase and shared by every task in the plan.
type Session struct {
	Account batch.AccountInput
	Client  *http.Client
	BaseURL string
}

// Task is one remote action performed against the service on behalf of an
// account. Run reports whether the action succeeded; a false return never
// aborts the remaining plan.
type Task interface {
	Name() string
	Run(ctx context.Context, s *Session) bool
}

// Spec names the task for one plan slot. A slot with several entries is
// ambiguous: exactly one alternative is drawn, uniformly, when the plan
// is resolved at pipeline start, and the choice is never re-rolled on
// retry.
type Spec []string

// UnmarshalYAML accepts either a bare task name or a list of alternative
// names for a plan slot.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*s = Spec{name}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*s = Spec(names)
		return nil
	default:
		return fmt.Errorf("task spec must be a name or a list of names (line %d)", node.Line)
	}
}
