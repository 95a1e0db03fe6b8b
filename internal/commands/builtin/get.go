package builtin

import (
	"context"

	"iscript/internal/logger"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// GetCommand probes a numeric media property into a variable.
type GetCommand struct{}

// Name returns the command name "get" for registration and lookup.
func (c *GetCommand) Name() string {
	return "get"
}

// Description returns a brief description of what the get command does.
func (c *GetCommand) Description() string {
	return "Probe a media property into a variable"
}

// Policy continues the script on failure.
func (c *GetCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute stores the probed value. A failed probe stores 0 with a warning.
func (c *GetCommand) Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	mediaName, property, variable := args[0], args[1], args[2]

	file, err := s.MediaFile(mediaName, c.Name())
	if err != nil {
		return scripttypes.SignalNext, err
	}

	var value float64
	if s.Tools.Prober == nil {
		logger.Warn("No prober configured, storing 0", "media", mediaName, "property", property)
	} else if value, err = s.Tools.Prober.Probe(ctx, file, property); err != nil {
		logger.Warn("Could not probe property, storing 0", "media", mediaName, "property", property, "error", err)
		value = 0
	}

	s.SetVar(variable, scripttypes.Number(value))
	return scripttypes.SignalNext, nil
}

func init() {
	register(&GetCommand{})
}
