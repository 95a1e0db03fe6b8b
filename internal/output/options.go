package output

import (
	"fmt"
	"io"
)

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithStyles configures the printer to use the provided StyleProvider for styling.
// If the provider is nil or not available, the printer will fall back to plain text.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styleProvider = provider
		}
	}
}

// WithWriter configures the printer to write output to the specified writer.
// Default is os.Stdout if not specified.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// WithMode configures the printer to operate in a specific output mode.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
	}
}

// PlainText forces plain text output, ignoring any StyleProvider. Output is
// the same on every terminal, which tests rely on.
func PlainText() Option {
	return func(p *Printer) {
		p.mode = ModePlain
		p.forcePlain = true
	}
}

// JSON configures the printer for one JSON object per message.
func JSON() Option {
	return func(p *Printer) {
		p.mode = ModeJSON
	}
}

// Silent configures the printer to suppress all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}

// ParseMode maps a --output value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "auto":
		return ModeAuto, nil
	case "styled":
		return ModeStyled, nil
	case "plain":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeAuto, fmt.Errorf("unknown output mode '%s' (auto, styled, plain, json)", name)
	}
}
