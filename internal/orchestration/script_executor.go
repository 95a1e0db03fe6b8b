// Package orchestration runs complete iscript programs: it opens a session,
// dispatches every line, and always copies the outputs back and releases the
// session workspace.
package orchestration

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"iscript/internal/commands"
	"iscript/internal/config"
	"iscript/internal/logger"
	"iscript/internal/parser"
	"iscript/internal/schema"
	"iscript/internal/services"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"

	// Built-in commands register themselves with commands.GlobalRegistry.
	_ "iscript/internal/commands/builtin"
)

// Options configures one script execution. Zero values select the embedded
// schema, the global command registry, the production toolchain and the
// process working directory.
type Options struct {
	// Play plays every copied attachment after the run.
	Play bool
	// WorkDir is where loadfile paths resolve and attachments are copied to.
	WorkDir string
	// TempDir is the parent of the session workspace.
	TempDir string
	// Schema declares the valid commands and their arity.
	Schema *schema.Schema
	// Tools are the external collaborators.
	Tools *services.Toolchain
	// Registry supplies the command executors.
	Registry *commands.Registry
	// TestMode makes generated names deterministic.
	TestMode bool
}

// ExecuteScript runs script and returns the elapsed processing time and the
// attachments copied into the working directory.
//
// Only configuration problems and ScriptErrors are returned as errors; other
// command failures are logged and resolved by the command's policy. When a
// ScriptError ends the run, the partial Result is returned with it. The
// session workspace is removed in every case.
func ExecuteScript(ctx context.Context, script string, opts Options) (result *scripttypes.Result, err error) {
	start := time.Now()
	logger.Debug("Starting script execution", "bytes", len(script), "play", opts.Play)

	// Phase 1: resolve schema, executors and collaborators
	sch := opts.Schema
	if sch == nil {
		if sch, err = schema.Default(); err != nil {
			return nil, err
		}
	}
	registry := opts.Registry
	if registry == nil {
		registry = commands.GlobalRegistry
	}
	dispatcher := commands.NewDispatcher(sch, registry)
	if err := dispatcher.Validate(); err != nil {
		return nil, err
	}
	tools := opts.Tools
	if tools == nil {
		tools = services.NewToolchain(config.Default())
	}

	// Phase 2: open the session workspace
	s, err := session.Open(session.Options{
		WorkDir:  opts.WorkDir,
		TempDir:  opts.TempDir,
		Tools:    tools,
		TestMode: opts.TestMode,
	})
	if err != nil {
		return nil, err
	}

	result = &scripttypes.Result{}
	defer func() {
		s.Transition(scripttypes.StateCleanup)
		result.Attachments = finalize(ctx, s, opts.Play)
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn("Failed to remove session workspace", "dir", s.Dir, "error", closeErr)
		}
		s.Transition(scripttypes.StateDone)
		logger.Info("Script execution finished", "elapsed", result.Elapsed, "attachments", len(result.Attachments))
	}()

	// Phase 3: dispatch every line in order
	s.Transition(scripttypes.StateRunning)
	commandCount, runErr := run(ctx, dispatcher, s, script)
	result.Elapsed = time.Since(start)

	if runErr != nil {
		s.Transition(scripttypes.StateFailed)
		logger.Error("Script execution failed", "commands_executed", commandCount, "error", runErr)
		return result, runErr
	}

	s.Transition(scripttypes.StateCompleted)
	logger.Debug("Script processing completed", "commands_executed", commandCount)
	return result, nil
}

// run dispatches lines until the script ends, a command stops or aborts it,
// or a ScriptError occurs.
func run(ctx context.Context, dispatcher *commands.Dispatcher, s *session.Session, script string) (int, error) {
	commandCount := 0
	for _, line := range parser.Lines(script) {
		if err := ctx.Err(); err != nil {
			return commandCount, fmt.Errorf("script interrupted before line %d: %w", line.Number, err)
		}

		commandCount++
		signal, err := dispatcher.Dispatch(ctx, s, line)
		if err != nil {
			return commandCount, err
		}

		switch signal {
		case scripttypes.SignalStop:
			logger.Debug("Script stopped", "line", line.Number)
			return commandCount, nil
		case scripttypes.SignalAbort:
			logger.Debug("Script aborted", "line", line.Number)
			return commandCount, nil
		}
	}
	return commandCount, nil
}

// finalize selects the default attachment, copies every attachment into the
// caller directory and optionally plays the copies. Copy failures are logged
// and the attachment dropped.
func finalize(ctx context.Context, s *session.Session, play bool) []scripttypes.Attachment {
	if len(s.Attachments) == 0 {
		if first, ok := s.Media.First(); ok {
			s.Attach(first.File, first.Name)
		}
	}

	copied := make([]scripttypes.Attachment, 0, len(s.Attachments))
	for _, a := range s.Attachments {
		dest := filepath.Join(s.OriginalDir, filepath.Base(a.File))
		if err := session.CopyFile(a.File, dest); err != nil {
			logger.Error("Failed to copy attachment", "file", a.File, "error", err)
			continue
		}
		copied = append(copied, scripttypes.Attachment{File: dest, Name: a.Name})
	}

	if play {
		for _, a := range copied {
			if s.Tools.Player == nil {
				logger.Warn("No player configured", "file", a.File)
				break
			}
			if err := s.Tools.Player.Play(ctx, a.File); err != nil {
				logger.Warn("Playback failed", "file", a.File, "error", err)
			}
		}
	}
	return copied
}
