// Package shell provides the interactive iscript prompt. Lines are checked as
// they are typed and buffered; the buffer runs as one script in a fresh
// session when the user enters .run or a render line.
package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"iscript/internal/commands"
	"iscript/internal/logger"
	"iscript/internal/output"
	"iscript/internal/parser"
	"iscript/pkg/scripttypes"
)

// Meta commands understood by the prompt itself.
const (
	MetaRun   = ".run"
	MetaClear = ".clear"
	MetaShow  = ".show"
	MetaHelp  = ".help"
	MetaQuit  = ".quit"
)

// Runner executes a complete script.
type Runner func(ctx context.Context, script string) (*scripttypes.Result, error)

// Action tells the read loop what to do after a line.
type Action int

const (
	// ActionContinue reads the next line
	ActionContinue Action = iota
	// ActionExit leaves the prompt
	ActionExit
)

// Shell holds the buffered script of an interactive session.
type Shell struct {
	dispatcher *commands.Dispatcher
	run        Runner
	printer    *output.Printer
	log        *log.Logger
	buffer     []string
}

// New creates a Shell that validates lines with dispatcher and executes the
// buffer with run.
func New(dispatcher *commands.Dispatcher, run Runner, printer *output.Printer) *Shell {
	if printer == nil {
		printer = output.GetGlobalPrinter()
	}
	return &Shell{dispatcher: dispatcher, run: run, printer: printer, log: logger.NewStyledLogger("REPL")}
}

// Buffer returns a copy of the buffered lines.
func (s *Shell) Buffer() []string {
	out := make([]string, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// HandleLine processes one line of input.
func (s *Shell) HandleLine(ctx context.Context, input string) Action {
	if parser.IsSkippable(strings.TrimRight(input, "\r\n")) {
		return ActionContinue
	}
	text := strings.TrimSpace(input)

	switch text {
	case MetaQuit, ".exit":
		return ActionExit
	case MetaClear:
		s.buffer = nil
		s.printer.Info("buffer cleared")
		return ActionContinue
	case MetaShow:
		if len(s.buffer) == 0 {
			s.printer.Info("buffer is empty")
		}
		for i, line := range s.buffer {
			name := parser.Fields(line)[0]
			s.printer.Printf("%3d  ", i+1)
			s.printer.Command(name)
			s.printer.Println(strings.TrimPrefix(line, name))
		}
		return ActionContinue
	case MetaHelp:
		s.printer.Markdown(output.CommandsMarkdown(s.dispatcher.Schema(), s.dispatcher.Registry()))
		return ActionContinue
	case MetaRun:
		s.execute(ctx)
		return ActionContinue
	}

	line := parser.Line{Number: len(s.buffer) + 1, Text: text, Name: parser.Fields(text)[0]}
	desc, _, err := s.dispatcher.Resolve(line)
	if err != nil {
		s.log.Debug("Rejected line", "command", line.Name, "error", err)
		s.printer.Error(err.Error())
		return ActionContinue
	}

	s.buffer = append(s.buffer, text)
	if desc.Name == "render" {
		s.execute(ctx)
	}
	return ActionContinue
}

func (s *Shell) execute(ctx context.Context) {
	if len(s.buffer) == 0 {
		s.printer.Warning("nothing to run")
		return
	}

	script := strings.Join(s.buffer, "\n")
	s.buffer = nil
	s.log.Debug("Running buffered script", "lines", strings.Count(script, "\n")+1)

	result, err := s.run(ctx, script)
	if err == nil {
		s.printer.Success("script finished")
	} else {
		var cfgErr *scripttypes.ConfigurationError
		if errors.As(err, &cfgErr) {
			s.printer.Error("configuration: " + err.Error())
		} else {
			s.printer.Error(err.Error())
		}
	}
	if result != nil {
		s.printer.Markdown(output.Summary(result))
	}
}
