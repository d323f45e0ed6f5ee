package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// EndsWithACSV guesses which 'a' is the last symbol of the input. It has two
// rules for (q0, a), so every 'a' doubles the frontier.
const EndsWithACSV = `ends with a
q0,q1,qa,qr
a,b
a,b,_
q0
qa
qr
q0,a,q0,a,R
q0,a,q1,a,R
q0,b,q0,b,R
q1,_,qa,_,R
`

// WriteFile writes content to dir/name and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create fixture dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture")
	return path
}

// SeedDir creates a temporary directory holding files, keyed by relative path.
func SeedDir(t *testing.T, files map[string]string) string {
	t.Helper()

	// Loam prefers absolute paths, though t.TempDir usually returns one.
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}
