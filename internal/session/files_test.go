package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/pkg/scripttypes"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dst := filepath.Join(dir, "dst.mp4")
	require.NoError(t, os.WriteFile(src, []byte("frames"), 0o640))
	past := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, past, past))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}

func TestCopyFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("older and longer"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	var resErr *scripttypes.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "open", resErr.Op)

	err = CopyFile(dir, filepath.Join(dir, "dst"))
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "copy", resErr.Op)
}
