package output

import (
	"sync"

	"github.com/mattn/go-isatty"
)

var (
	globalPrinter *Printer
	globalMu      sync.RWMutex
)

func init() {
	globalPrinter = NewPrinter()
}

// GetGlobalPrinter returns the current global printer instance.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal replaces the global printer with one built from options.
func ConfigureGlobal(options ...Option) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = NewPrinter(options...)
}

// Println outputs text with newline using the global printer.
func Println(text string) {
	GetGlobalPrinter().Println(text)
}

// Success outputs success text using the global printer.
func Success(text string) {
	GetGlobalPrinter().Success(text)
}

// Markdown renders markdown using the global printer.
func Markdown(markdown string) {
	GetGlobalPrinter().Markdown(markdown)
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
