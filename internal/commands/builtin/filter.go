package builtin

import (
	"context"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// filterBuilder returns the transcoder arguments for one invocation on file.
// args are the command arguments after the media name.
type filterBuilder func(ctx context.Context, s *session.Session, file string, args []string) ([]string, error)

// FilterCommand transforms one media entry in place through the transcoder.
type FilterCommand struct {
	name        string
	description string
	policy      scripttypes.Policy
	build       filterBuilder
}

// Name returns the canonical command name.
func (c *FilterCommand) Name() string {
	return c.name
}

// Description returns a brief description of the transform.
func (c *FilterCommand) Description() string {
	return c.description
}

// Policy reports how a failure of this command affects the script.
func (c *FilterCommand) Policy() scripttypes.Policy {
	return c.policy
}

// Execute resolves the media named by the first argument, builds the filter
// arguments and replaces the media file with the transcoded output.
func (c *FilterCommand) Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	file, err := s.MediaFile(args[0], c.name)
	if err != nil {
		return scripttypes.SignalAbort, err
	}

	filterArgs, err := c.build(ctx, s, file, args[1:])
	if err != nil {
		return scripttypes.SignalAbort, err
	}

	if err := transcodeInPlace(ctx, s, c.name, file, filterArgs); err != nil {
		return scripttypes.SignalAbort, err
	}
	return scripttypes.SignalNext, nil
}

// static returns a builder for arguments that do not depend on the line.
func static(args ...string) filterBuilder {
	return func(context.Context, *session.Session, string, []string) ([]string, error) {
		return args, nil
	}
}

// numeric returns a builder that evaluates the first argument and formats it
// into the arguments produced by format.
func numeric(command, argName string, format func(v float64) []string) filterBuilder {
	return func(_ context.Context, s *session.Session, _ string, args []string) ([]string, error) {
		v, err := s.Number(command, argName, args[0])
		if err != nil {
			return nil, err
		}
		return format(v), nil
	}
}
