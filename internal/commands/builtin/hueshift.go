package builtin

import (
	"context"
	"os"

	"iscript/internal/logger"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// HueShiftCommand rotates the hue of a media through a generated HALD
// colour lookup table.
type HueShiftCommand struct{}

// Name returns the command name "hueshifthsv".
func (c *HueShiftCommand) Name() string {
	return "hueshifthsv"
}

// Description returns a brief description of the command.
func (c *HueShiftCommand) Description() string {
	return "Rotate the hue of a media by degrees"
}

// Policy aborts the script on failure.
func (c *HueShiftCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyAbort
}

// Execute generates the lookup table, applies it and removes it again.
func (c *HueShiftCommand) Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	file, err := s.MediaFile(args[0], c.Name())
	if err != nil {
		return scripttypes.SignalAbort, err
	}
	hue, err := s.Number(c.Name(), "hue", args[1])
	if err != nil {
		return scripttypes.SignalAbort, err
	}
	if s.Tools.Hald == nil {
		return scripttypes.SignalAbort, &scripttypes.ResourceError{Op: c.Name(), Path: file, Err: errNoCollaborator}
	}

	table, err := s.Tools.Hald.Generate(hue, s.NewPath("hue", "")+".png")
	if err != nil {
		return scripttypes.SignalAbort, err
	}
	defer func() {
		if err := os.Remove(table); err != nil && !os.IsNotExist(err) {
			logger.Debug("Could not remove lookup table", "path", table, "error", err)
		}
	}()

	filter := []string{"-vf", "movie=" + table + ",[in]haldclut,format=yuv420p"}
	if err := transcodeInPlace(ctx, s, c.Name(), file, filter); err != nil {
		return scripttypes.SignalAbort, err
	}
	return scripttypes.SignalNext, nil
}

func init() {
	register(&HueShiftCommand{})
}
