package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Ledger file names, one per outcome category.
const (
	indexLedger  = "account_indices.txt"
	egressLedger = "proxies.txt"
	credLedger   = "tokens.txt"
)

// Outcome root directories under the reporter's base path.
const (
	successDir = "success"
	failureDir = "failure"
)

// Reporter appends per-account outcomes to category ledgers on disk.
// A single mutex serializes all three category appends of one call
// against concurrent reporters, so two accounts' records never
// interleave. The three files are not updated atomically as a group: a
// crash mid-call can leave them out of step, which is acceptable for an
// observability log.
type Reporter struct {
	mu   sync.Mutex
	root string
	log  *zap.Logger
}

// NewReporter writes ledgers under root/success and root/failure.
func NewReporter(root string, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{root: root, log: log}
}

// Report appends the account's index, egress path and auxiliary
// credential to the success or failure ledgers. Empty values are skipped
// rather than written as blank lines.
func (r *Reporter) Report(succeeded bool, egress, credential string, index int) error {
	dir := filepath.Join(r.root, failureDir)
	if succeeded {
		dir = filepath.Join(r.root, successDir)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	entries := []struct {
		file  string
		value string
	}{
		{indexLedger, strconv.Itoa(index)},
		{egressLedger, egress},
		{credLedger, credential},
	}
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		if err := appendLine(filepath.Join(dir, e.file), e.value); err != nil {
			return err
		}
	}

	r.log.Info("Outcome recorded",
		zap.Int("account", index),
		zap.Bool("succeeded", succeeded),
		zap.String("egress", egress))
	return nil
}

func appendLine(path, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	_, werr := f.WriteString(value + "\n")
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("append ledger: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close ledger: %w", cerr)
	}
	return nil
}
