package builtin

import (
	"context"
	"path/filepath"

	"iscript/internal/media"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// CloneCommand duplicates a media under a new name with its own file.
type CloneCommand struct{}

// Name returns the command name "clone" for registration and lookup.
func (c *CloneCommand) Name() string {
	return "clone"
}

// Description returns a brief description of what the clone command does.
func (c *CloneCommand) Description() string {
	return "Copy a media under a new name"
}

// Policy continues the script on failure.
func (c *CloneCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute copies the file to clone_<id>_<name><ext> and registers it.
func (c *CloneCommand) Execute(_ context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	original, newName := args[0], args[1]

	file, err := s.MediaFile(original, c.Name())
	if err != nil {
		return scripttypes.SignalNext, err
	}

	dest := s.NewPath("clone", newName+filepath.Ext(file))
	if err := session.CopyFile(file, dest); err != nil {
		return scripttypes.SignalNext, err
	}

	s.Media.Append(media.Entry{Name: newName, File: dest})
	return scripttypes.SignalNext, nil
}

func init() {
	register(&CloneCommand{})
}
