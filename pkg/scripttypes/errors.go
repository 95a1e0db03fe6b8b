package scripttypes

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a missing or malformed command schema or
// configuration. It is fatal and raised before any script line runs.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ScriptReason identifies why a script line was rejected.
type ScriptReason int

const (
	// ReasonUnknownCommand - the command name (after alias resolution) is not in the schema
	ReasonUnknownCommand ScriptReason = iota
	// ReasonMalformedLine - the line could not be tokenized
	ReasonMalformedLine
)

// String returns a human-readable representation of the reason.
func (r ScriptReason) String() string {
	switch r {
	case ReasonUnknownCommand:
		return "UnknownCommand"
	case ReasonMalformedLine:
		return "MalformedLine"
	default:
		return "Unknown"
	}
}

// ScriptError aborts the whole run. Cleanup still happens.
type ScriptError struct {
	Reason  ScriptReason
	Line    int
	Command string
	Text    string
}

func (e *ScriptError) Error() string {
	switch e.Reason {
	case ReasonUnknownCommand:
		return fmt.Sprintf("line %d: %s is not a valid command", e.Line, e.Command)
	default:
		return fmt.Sprintf("line %d: malformed line %q", e.Line, e.Text)
	}
}

// MediaNotFoundError reports a media name absent from the registry.
type MediaNotFoundError struct {
	Name    string
	Command string
}

func (e *MediaNotFoundError) Error() string {
	return fmt.Sprintf("media '%s' not found for %s", e.Name, e.Command)
}

// ExternalToolError reports a non-zero exit of an external process.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s process failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s process failed with error: %s", e.Tool, stderr)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// ResourceError reports a failed download, copy or other file operation.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ArgumentError reports a missing or non-numeric command argument.
type ArgumentError struct {
	Command  string
	Argument string
	Value    string
	Reason   string
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: argument %s %s", e.Command, e.Argument, e.Reason)
	}
	return fmt.Sprintf("%s: argument %s=%q %s", e.Command, e.Argument, e.Value, e.Reason)
}
