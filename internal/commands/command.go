package commands

import (
	"context"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// Command is one executor. Execute receives the arguments already split to
// the declared arity; optional trailing arguments may be absent.
//
// A returned error is reported and then resolved through Policy: abort ends
// the script, continue moves to the next line. A nil error with a signal
// other than SignalNext ends the script on the executor's own terms.
type Command interface {
	Name() string
	Description() string
	Policy() scripttypes.Policy
	Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error)
}
