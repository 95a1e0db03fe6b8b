package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/internal/media"
	"iscript/pkg/scripttypes"
)

func openTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(Options{WorkDir: t.TempDir(), TempDir: t.TempDir(), TestMode: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	work := t.TempDir()
	parent := t.TempDir()

	s, err := Open(Options{WorkDir: work, TempDir: parent, TestMode: true})
	require.NoError(t, err)

	assert.Equal(t, work, s.OriginalDir)
	assert.DirExists(t, s.Dir)
	assert.Equal(t, parent, filepath.Dir(s.Dir))
	assert.True(t, strings.HasPrefix(filepath.Base(s.Dir), "iscript-"))
	assert.Equal(t, scripttypes.StateInit, s.State)
	assert.Equal(t, "session_000001", s.ID)
	assert.NotNil(t, s.Tools)
	assert.Equal(t, 0, s.Media.Len())

	require.NoError(t, s.Close())
	assert.NoDirExists(t, s.Dir)

	// Closing twice tolerates the missing directory.
	assert.NoError(t, s.Close())
}

func TestOpen_DistinctDirectories(t *testing.T) {
	parent := t.TempDir()
	a, err := Open(Options{WorkDir: t.TempDir(), TempDir: parent})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	b, err := Open(Options{WorkDir: t.TempDir(), TempDir: parent})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	assert.NotEqual(t, a.Dir, b.Dir)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestOpen_BadTempDir(t *testing.T) {
	_, err := Open(Options{WorkDir: t.TempDir(), TempDir: filepath.Join(t.TempDir(), "missing", "deeper")})
	require.Error(t, err)
	var resErr *scripttypes.ResourceError
	assert.True(t, errors.As(err, &resErr))
}

func TestSession_Paths(t *testing.T) {
	s := openTestSession(t)

	assert.Equal(t, filepath.Join(s.Dir, "a.mp4"), s.Path("a.mp4"))
	assert.Equal(t, filepath.Join(s.Dir, "a.mp4"), s.Path("../x/a.mp4"))

	p := s.NewPath("clone", "/somewhere/cat.png")
	assert.Equal(t, filepath.Join(s.Dir, "clone_000002_cat.png"), p)
	assert.Equal(t, filepath.Join(s.Dir, "tti_000003"), s.NewPath("tti", ""))

	assert.Equal(t, filepath.Join(s.OriginalDir, "in", "cat.png"), s.ResolvePath("in/cat.png"))
	assert.Equal(t, "/abs/cat.png", s.ResolvePath("/abs/cat.png"))
}

func TestSession_ReplaceOver(t *testing.T) {
	s := openTestSession(t)
	oldFile := s.Path("old.mp4")
	newFile := s.Path("new.mp4")
	require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(newFile, []byte("new"), 0o644))

	require.NoError(t, s.ReplaceOver(newFile, oldFile))
	data, err := os.ReadFile(oldFile)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, newFile)

	err = s.ReplaceOver(s.Path("missing"), oldFile)
	var resErr *scripttypes.ResourceError
	assert.True(t, errors.As(err, &resErr))
}

func TestSession_MediaFile(t *testing.T) {
	s := openTestSession(t)
	s.Media.Append(media.Entry{Name: "cat", File: "/tmp/cat.png"})

	file, err := s.MediaFile("cat", "invert")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cat.png", file)

	_, err = s.MediaFile("dog", "invert")
	var notFound *scripttypes.MediaNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "dog", notFound.Name)
	assert.Equal(t, "invert", notFound.Command)
}

func TestSession_VariablesAndNumbers(t *testing.T) {
	s := openTestSession(t)
	s.SetVar("x", scripttypes.Number(3))

	assert.Equal(t, scripttypes.Number(4), s.Evaluate("x + 1"))
	assert.Equal(t, scripttypes.String("/a/b"), s.Evaluate("/a/b"))

	f, err := s.Number("blur", "scale", "x * 2")
	require.NoError(t, err)
	assert.Equal(t, 6.0, f)

	_, err = s.Number("blur", "scale", "soft")
	var argErr *scripttypes.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "scale", argErr.Argument)
}

func TestSession_AttachAndTransition(t *testing.T) {
	s := openTestSession(t)
	s.Attach("/tmp/out.mp4", "out")
	assert.Equal(t, []scripttypes.Attachment{{File: "/tmp/out.mp4", Name: "out"}}, s.Attachments)

	s.Transition(scripttypes.StateRunning)
	assert.Equal(t, scripttypes.StateRunning, s.State)
}
