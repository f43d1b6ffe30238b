// Package inputs loads the plain-text data files that feed a run:
// account secrets, egress paths and optional auxiliary credentials, one
// value per line.
package inputs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ReadLines loads the non-empty, whitespace-trimmed lines of path. kind
// is a descriptive name used only for logging.
func ReadLines(log *zap.Logger, kind, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	log.Info("Loaded input file",
		zap.String("kind", kind),
		zap.String("path", path),
		zap.Int("count", len(lines)))
	return lines, nil
}

// ReadOptional is like ReadLines but treats a missing file as empty.
func ReadOptional(log *zap.Logger, kind, path string) []string {
	lines, err := ReadLines(log, kind, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Optional input unreadable", zap.String("kind", kind), zap.Error(err))
		}
		return nil
	}
	return lines
}
