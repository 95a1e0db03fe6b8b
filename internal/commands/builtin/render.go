package builtin

import (
	"context"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// RenderCommand marks a media as the script output and ends the script.
type RenderCommand struct{}

// Name returns the command name "render" for registration and lookup.
func (c *RenderCommand) Name() string {
	return "render"
}

// Description returns a brief description of what the render command does.
func (c *RenderCommand) Description() string {
	return "Attach a media as output and stop"
}

// Policy aborts the script when the media is missing.
func (c *RenderCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyAbort
}

// Execute attaches the media under label, defaulting to the media name,
// and signals the end of the script.
func (c *RenderCommand) Execute(_ context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	file, err := s.MediaFile(args[0], c.Name())
	if err != nil {
		return scripttypes.SignalAbort, err
	}
	s.Attach(file, optional(args, 1, args[0]))
	return scripttypes.SignalStop, nil
}

func init() {
	register(&RenderCommand{})
}
