// Package builtin provides the iscript commands. Each command registers
// itself with commands.GlobalRegistry during initialization.
package builtin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"iscript/internal/commands"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// errNoCollaborator marks a session without the collaborator a command needs.
var errNoCollaborator = errors.New("collaborator not configured")

// register adds cmd to the global registry, panicking on duplicates.
func register(cmd commands.Command) {
	if err := commands.GlobalRegistry.Register(cmd); err != nil {
		panic(fmt.Sprintf("failed to register %s command: %v", cmd.Name(), err))
	}
}

// optional returns args[i], or fallback when the argument was omitted.
func optional(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

// transcodeInPlace runs the transcoder from file into <command>_<base> and
// renames the result over file, so the media entry keeps its path.
func transcodeInPlace(ctx context.Context, s *session.Session, command, file string, args []string) error {
	if s.Tools.Transcoder == nil {
		return &scripttypes.ResourceError{Op: command, Path: file, Err: errNoCollaborator}
	}

	output := filepath.Join(filepath.Dir(file), command+"_"+filepath.Base(file))
	if err := s.Tools.Transcoder.Transcode(ctx, file, args, output); err != nil {
		_ = os.Remove(output)
		return err
	}
	return s.ReplaceOver(output, file)
}
