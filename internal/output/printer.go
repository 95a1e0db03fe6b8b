package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes semantic output in plain, styled or JSON form.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Command outputs a command name.
func (p *Printer) Command(text string) {
	p.output(SemanticCommand, text, false)
}

// Markdown renders markdown through glamour when styling is possible and
// writes the source unchanged otherwise.
func (p *Printer) Markdown(markdown string) {
	text := markdown
	if p.IsStylable() && p.mode != ModeJSON {
		if rendered, err := RenderMarkdown(markdown); err == nil {
			text = rendered
		}
	}
	p.output(SemanticPlain, text, true)
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = p.renderJSON(semantic, text)
	case ModeStyled:
		finalText = p.renderStyled(semantic, text, addNewline)
	default:
		finalText = p.renderText(semantic, text, addNewline)
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

func (p *Printer) renderText(semantic SemanticType, text string, addNewline bool) string {
	var style TextStyle
	if !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable() {
		style = p.styleProvider.GetStyle(string(semantic))
	} else {
		style = NewPlainStyleProvider().GetStyle(string(semantic))
	}
	return withNewline(style.Render(text), addNewline)
}

func (p *Printer) renderStyled(semantic SemanticType, text string, addNewline bool) string {
	if p.styleProvider != nil && p.styleProvider.IsAvailable() {
		return withNewline(p.styleProvider.GetStyle(string(semantic)).Render(text), addNewline)
	}
	return p.renderText(semantic, text, addNewline)
}

func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	data, err := json.Marshal(map[string]interface{}{
		"type":    semantic,
		"message": strings.TrimSuffix(text, "\n"),
	})
	if err != nil {
		return text + "\n"
	}
	return string(data) + "\n"
}

func withNewline(text string, addNewline bool) string {
	if addNewline && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
