// Package batch drives a fleet of independent accounts through the remote
// task flow: it selects and shuffles the accounts to run, bounds how many
// pipelines execute at once, retries failed operations with randomized
// pauses, and aggregates per-account outcomes into on-disk ledgers.
package batch

// Aux credential keys carried alongside an account's primary secret.
const (
	AuxToken = "token"
	AuxEmail = "email"
)

// AccountInput is the fixed per-account work order: a 1-based index that is
// stable for the whole run, the account's credential, its network egress
// path, and any optional auxiliary credentials. It is constructed once by
// the orchestrator and owned exclusively by its pipeline.
type AccountInput struct {
	Index      int
	Secret     string
	EgressPath string
	Aux        map[string]string
}

// Batch is the resolved set of accounts for one run. Inputs are already in
// launch order; Order records the applied permutation as a human-readable
// sequence of account labels. Start and End are the resolved selection
// bounds: an open-ended or oversized configured range ends at the last
// account, while an exact list keeps its configured min and max.
type Batch struct {
	RunID  string
	Inputs []AccountInput
	Start  int
	End    int
	Order  string
}

// PipelineResult is produced exactly once per pipeline.
type PipelineResult struct {
	AccountIndex int
	Succeeded    bool
}

// State identifies a pipeline's position in its lifecycle.
type State string

const (
	StateCreated      State = "created"
	StateInitializing State = "initializing"
	StateRunning      State = "running"
	StateReporting    State = "reporting"
	StateCooledDown   State = "cooled_down"
	StateAborted      State = "aborted"
)
