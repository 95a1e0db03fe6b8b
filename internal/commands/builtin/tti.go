package builtin

import (
	"context"

	"iscript/internal/media"
	"iscript/internal/services"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// TextToImageCommand renders a caption into a new image media.
type TextToImageCommand struct{}

// Name returns the command name "tti" for registration and lookup.
func (c *TextToImageCommand) Name() string {
	return "tti"
}

// Description returns a brief description of what the tti command does.
func (c *TextToImageCommand) Description() string {
	return "Render text into a transparent image"
}

// Policy continues the script on failure.
func (c *TextToImageCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute renders args: name size bounds color text. Lines are centered.
func (c *TextToImageCommand) Execute(_ context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	name, color, text := args[0], args[3], args[4]

	size, err := s.Number(c.Name(), "size", args[1])
	if err != nil {
		return scripttypes.SignalNext, err
	}
	bounds, err := s.Number(c.Name(), "bounds", args[2])
	if err != nil {
		return scripttypes.SignalNext, err
	}
	if s.Tools.Text == nil {
		return scripttypes.SignalNext, &scripttypes.ResourceError{Op: c.Name(), Path: name, Err: errNoCollaborator}
	}

	output := s.NewPath("tti", name) + ".png"
	file, err := s.Tools.Text.RenderText(text, output, size, color, bounds, services.AlignCenter)
	if err != nil {
		return scripttypes.SignalNext, err
	}

	s.Media.Append(media.Entry{Name: name, File: file})
	return scripttypes.SignalNext, nil
}

func init() {
	register(&TextToImageCommand{})
}
