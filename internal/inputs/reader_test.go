package inputs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadLinesTrimsAndSkipsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.txt")
	content := "  alpha  \n\nbeta\n   \n\tgamma\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := ReadLines(zap.NewNop(), "secrets", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(zap.NewNop(), "secrets", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestReadOptionalMissingFile(t *testing.T) {
	lines := ReadOptional(zap.NewNop(), "tokens", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Nil(t, lines)
}

func TestReadOptionalExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.txt")
	require.NoError(t, os.WriteFile(path, []byte("tok-1\ntok-2\n"), 0o644))

	lines := ReadOptional(zap.NewNop(), "tokens", path)
	assert.Equal(t, []string{"tok-1", "tok-2"}, lines)
}
