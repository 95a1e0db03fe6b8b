// Package session holds the per-run state of a script execution: its private
// working directory, variables, media registry and attachments.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"iscript/internal/evaluator"
	"iscript/internal/logger"
	"iscript/internal/media"
	"iscript/internal/services"
	"iscript/pkg/scripttypes"
)

// Options configures a new Session.
type Options struct {
	// WorkDir is the caller directory loadfile reads from and attachments are
	// copied back to. Empty means the process working directory.
	WorkDir string
	// TempDir is the parent of the session directory. Empty means os.TempDir.
	TempDir string
	// Tools are the external collaborators available to commands.
	Tools *services.Toolchain
	// TestMode makes generated identifiers deterministic.
	TestMode bool
}

// Session is the exclusive state of one script run. Sessions share nothing
// and are not safe for concurrent use.
type Session struct {
	ID          string
	OriginalDir string
	Dir         string
	Vars        map[string]scripttypes.Value
	Media       *media.Registry
	Attachments []scripttypes.Attachment
	State       scripttypes.State
	Tools       *services.Toolchain

	testMode bool
	counter  int
}

// Open allocates a uniquely named session directory and returns a session in
// the Init state. Callers must Close it.
func Open(opts Options) (*Session, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	dir, err := os.MkdirTemp(opts.TempDir, "iscript-*")
	if err != nil {
		return nil, &scripttypes.ResourceError{Op: "mkdir", Path: opts.TempDir, Err: err}
	}

	tools := opts.Tools
	if tools == nil {
		tools = &services.Toolchain{}
	}

	s := &Session{
		OriginalDir: workDir,
		Dir:         dir,
		Vars:        make(map[string]scripttypes.Value),
		Media:       media.NewRegistry(),
		State:       scripttypes.StateInit,
		Tools:       tools,
		testMode:    opts.TestMode,
	}
	s.ID = "session_" + s.NewID()

	logger.Debug("Session opened", "id", s.ID, "dir", dir, "workdir", workDir)
	return s, nil
}

// Close removes the session directory. Already missing files are not an error.
func (s *Session) Close() error {
	if s.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(s.Dir); err != nil {
		return &scripttypes.ResourceError{Op: "remove", Path: s.Dir, Err: err}
	}
	logger.Debug("Session closed", "id", s.ID)
	return nil
}

// NewID returns a short unique identifier, sequential in test mode.
func (s *Session) NewID() string {
	s.counter++
	if s.testMode {
		return fmt.Sprintf("%06d", s.counter)
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Path returns the absolute path of name inside the session directory.
func (s *Session) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}

// NewPath returns a fresh path inside the session directory named
// prefix_<id>_base. An empty base is omitted.
func (s *Session) NewPath(prefix, base string) string {
	name := prefix + "_" + s.NewID()
	if base != "" {
		name += "_" + filepath.Base(base)
	}
	return s.Path(name)
}

// ResolvePath resolves a caller supplied path against the original directory.
func (s *Session) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.OriginalDir, p)
}

// ReplaceOver renames newFile onto oldFile, discarding the previous bytes.
func (s *Session) ReplaceOver(newFile, oldFile string) error {
	if err := os.Rename(newFile, oldFile); err != nil {
		return &scripttypes.ResourceError{Op: "rename", Path: newFile, Err: err}
	}
	return nil
}

// MediaFile returns the file of the named media, or a MediaNotFoundError
// attributed to command.
func (s *Session) MediaFile(name, command string) (string, error) {
	file, ok := s.Media.Lookup(name)
	if !ok {
		return "", &scripttypes.MediaNotFoundError{Name: name, Command: command}
	}
	return file, nil
}

// Evaluate resolves an argument against the session variables.
func (s *Session) Evaluate(arg string) scripttypes.Value {
	return evaluator.Evaluate(arg, s.Vars)
}

// Number evaluates arg and requires a numeric result.
func (s *Session) Number(command, name, arg string) (float64, error) {
	v := s.Evaluate(arg)
	if f, ok := v.Float(); ok {
		return f, nil
	}
	return 0, &scripttypes.ArgumentError{Command: command, Argument: name, Value: arg, Reason: "is not a number"}
}

// SetVar stores value under name.
func (s *Session) SetVar(name string, value scripttypes.Value) {
	s.Vars[name] = value
	logger.VariableOperation("set", name, value.String())
}

// Attach records a file as a session output.
func (s *Session) Attach(file, name string) {
	s.Attachments = append(s.Attachments, scripttypes.Attachment{File: file, Name: name})
}

// Transition moves the session to state.
func (s *Session) Transition(state scripttypes.State) {
	logger.Debug("Session state", "id", s.ID, "from", s.State.String(), "to", state.String())
	s.State = state
}
