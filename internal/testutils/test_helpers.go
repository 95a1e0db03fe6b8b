// Package testutils provides recording collaborators and helpers for iscript tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// CreateTempDir creates a temporary directory holding files, keyed by
// relative path.
func CreateTempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for filename, content := range files {
		filePath := filepath.Join(tmpDir, filename)

		dir := filepath.Dir(filePath)
		if dir != tmpDir {
			err := os.MkdirAll(dir, 0755)
			require.NoError(t, err, "Should create directory %s", dir)
		}

		err := os.WriteFile(filePath, []byte(content), 0644)
		require.NoError(t, err, "Should create file %s", filename)
	}

	return tmpDir
}

// NewSession opens a test mode session working in workDir with tools, closed
// when the test ends.
func NewSession(t *testing.T, workDir string, tools *FakeToolchain) *session.Session {
	t.Helper()
	opts := session.Options{WorkDir: workDir, TempDir: t.TempDir(), TestMode: true}
	if tools != nil {
		opts.Tools = tools.Toolchain()
	}
	s, err := session.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// AddMedia writes content into the session directory and registers it as name.
func AddMedia(t *testing.T, s *session.Session, name, filename, content string) string {
	t.Helper()
	file := s.Path(filename)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	s.Media.Append(mediaEntry(name, file))
	return file
}

// AssertVariableEquals checks a session variable.
func AssertVariableEquals(t *testing.T, s *session.Session, name string, expected scripttypes.Value) {
	t.Helper()
	actual, ok := s.Vars[name]
	require.True(t, ok, "Variable %s should exist", name)
	assert.Equal(t, expected, actual, "Variable %s should have expected value", name)
}

// AssertFileContent checks the content of a file.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Should read %s", path)
	assert.Equal(t, expected, string(data))
}
