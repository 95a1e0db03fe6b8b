package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"iscript/internal/logger"
)

// PromptOptions configures the interactive prompt.
type PromptOptions struct {
	Prompt      string
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
}

type readAction int

const (
	readContinue readAction = iota
	readExit
	readUnhandled
)

// classifyReadError maps a readline error to the loop action. Ctrl-C drops
// the current line; Ctrl-D on an empty line leaves.
func classifyReadError(line string, err error) readAction {
	switch {
	case err == nil:
		return readUnhandled
	case errors.Is(err, readline.ErrInterrupt):
		return readContinue
	case errors.Is(err, io.EOF):
		if strings.TrimSpace(line) == "" {
			return readExit
		}
		return readContinue
	default:
		return readUnhandled
	}
}

// Completer builds a prefix completer over the command words and the meta
// commands.
func (s *Shell) Completer() *readline.PrefixCompleter {
	words := s.dispatcher.Schema().Words()
	items := make([]readline.PrefixCompleterInterface, 0, len(words)+5)
	for _, word := range words {
		items = append(items, readline.PcItem(word))
	}
	for _, meta := range []string{MetaRun, MetaClear, MetaShow, MetaHelp, MetaQuit} {
		items = append(items, readline.PcItem(meta))
	}
	return readline.NewPrefixCompleter(items...)
}

// Run reads lines until .quit, EOF or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, opts PromptOptions) error {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "iscript> "
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    s.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       MetaQuit,
		Stdin:           opts.Stdin,
		Stdout:          opts.Stdout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.printer.Info("iscript interactive mode; .help lists commands, .run executes the buffer")

	for ctx.Err() == nil {
		line, err := rl.Readline()
		switch classifyReadError(line, err) {
		case readContinue:
			continue
		case readExit:
			logger.Debug("Prompt closed by EOF")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		if s.HandleLine(ctx, line) == ActionExit {
			return nil
		}
	}
	return ctx.Err()
}
