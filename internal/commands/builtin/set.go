package builtin

import (
	"context"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// SetCommand evaluates an expression and stores the result in a variable.
// Expressions that do not evaluate are stored verbatim as strings.
type SetCommand struct{}

// Name returns the command name "set" for registration and lookup.
func (c *SetCommand) Name() string {
	return "set"
}

// Description returns a brief description of what the set command does.
func (c *SetCommand) Description() string {
	return "Evaluate an expression and store it in a variable"
}

// Policy continues the script on failure.
func (c *SetCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute assigns the evaluated expression, replacing any previous value.
func (c *SetCommand) Execute(_ context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	s.SetVar(args[0], s.Evaluate(args[1]))
	return scripttypes.SignalNext, nil
}

func init() {
	register(&SetCommand{})
}
