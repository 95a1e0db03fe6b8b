package commands

import (
	"context"
	"fmt"
	"sort"

	"iscript/internal/logger"
	"iscript/internal/parser"
	"iscript/internal/schema"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// Dispatcher turns script lines into command executions. The schema decides
// which names are valid and how many arguments each consumes; the registry
// supplies the executors.
type Dispatcher struct {
	schema   *schema.Schema
	registry *Registry
}

// NewDispatcher creates a Dispatcher over sch and registry.
func NewDispatcher(sch *schema.Schema, registry *Registry) *Dispatcher {
	return &Dispatcher{schema: sch, registry: registry}
}

// Schema returns the schema the dispatcher resolves names against.
func (d *Dispatcher) Schema() *schema.Schema {
	return d.schema
}

// Registry returns the registry supplying the executors.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Undeclared returns the registered executors the schema does not name.
// They are unreachable from scripts.
func (d *Dispatcher) Undeclared() []string {
	var names []string
	for _, cmd := range d.registry.GetAll() {
		if !d.schema.Has(cmd.Name()) {
			names = append(names, cmd.Name())
		}
	}
	return names
}

// Validate checks that every schema command has an executor. Executors the
// schema leaves out are only logged, so a reduced schema can disable
// commands.
func (d *Dispatcher) Validate() error {
	if undeclared := d.Undeclared(); len(undeclared) > 0 {
		logger.Debug("Executors not declared in schema", "commands", undeclared)
	}

	var missing []string
	for _, desc := range d.schema.Commands() {
		if !d.registry.IsValidCommand(desc.Name) {
			missing = append(missing, desc.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &scripttypes.ConfigurationError{
			Source: "schema",
			Err:    fmt.Errorf("no executor for commands: %v", missing),
		}
	}
	return nil
}

// Resolve maps a line to its command descriptor and split arguments. An
// unknown name is a ScriptError.
func (d *Dispatcher) Resolve(line parser.Line) (schema.CommandDescriptor, []string, error) {
	name := line.Name
	if name == "" {
		fields := parser.Fields(line.Text)
		if len(fields) == 0 {
			return schema.CommandDescriptor{}, nil, &scripttypes.ScriptError{Reason: scripttypes.ReasonMalformedLine, Line: line.Number, Text: line.Text}
		}
		name = fields[0]
	}

	canonical := d.schema.ResolveAlias(name)
	desc, ok := d.schema.Lookup(canonical)
	if !ok {
		return schema.CommandDescriptor{}, nil, &scripttypes.ScriptError{
			Reason:  scripttypes.ReasonUnknownCommand,
			Line:    line.Number,
			Command: name,
			Text:    line.Text,
		}
	}

	fields := parser.SplitN(line.Text, desc.Arity())
	return desc, fields[1:], nil
}

// Dispatch executes one line. Only ScriptErrors are returned; every other
// failure is reported and converted to a signal through the command policy.
func (d *Dispatcher) Dispatch(ctx context.Context, s *session.Session, line parser.Line) (scripttypes.Signal, error) {
	desc, args, err := d.Resolve(line)
	if err != nil {
		return scripttypes.SignalAbort, err
	}

	cmd, ok := d.registry.Get(desc.Name)
	if !ok {
		return scripttypes.SignalAbort, &scripttypes.ScriptError{
			Reason:  scripttypes.ReasonUnknownCommand,
			Line:    line.Number,
			Command: desc.Name,
			Text:    line.Text,
		}
	}

	logger.CommandExecution(line.Number, desc.Name, args)

	if len(args) < desc.Required() {
		missing := desc.Args[len(args)].Name
		err := &scripttypes.ArgumentError{Command: desc.Name, Argument: missing, Reason: "is required"}
		return d.fail(cmd, line, err), nil
	}

	signal, err := cmd.Execute(ctx, s, args)
	if err != nil {
		return d.fail(cmd, line, err), nil
	}
	return signal, nil
}

// fail reports err and maps it through the command policy.
func (d *Dispatcher) fail(cmd Command, line parser.Line, err error) scripttypes.Signal {
	policy := cmd.Policy()
	if policy == scripttypes.PolicyContinue {
		logger.Warn("Command failed, continuing", "line", line.Number, "command", cmd.Name(), "error", err)
		return scripttypes.SignalNext
	}
	logger.Error("Command failed, stopping script", "line", line.Number, "command", cmd.Name(), "error", err)
	return scripttypes.SignalAbort
}
