// Package output provides the console output of the iscript CLI and REPL:
// semantic printing with optional lipgloss styling and glamour markdown.
package output

// StyleProvider supplies styles for semantic output types. The printer falls
// back to plain text when no provider is available.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(text ...string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto styles output when a provider is available
	ModeAuto Mode = iota

	// ModeStyled forces styled output
	ModeStyled

	// ModePlain forces plain text output
	ModePlain

	// ModeJSON outputs one JSON object per message
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
	// SemanticCommand represents an iscript command name.
	SemanticCommand SemanticType = "command"
)
