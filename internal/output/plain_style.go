package output

import "strings"

// PlainTextStyle renders text with an optional prefix and no escape codes.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render joins text and adds the prefix.
func (p *PlainTextStyle) Render(text ...string) string {
	return p.prefix + strings.Join(text, " ")
}

// PlainStyleProvider marks semantic output with text prefixes.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle returns the prefix style for semantic.
func (p *PlainStyleProvider) GetStyle(semantic string) TextStyle {
	switch SemanticType(semantic) {
	case SemanticSuccess:
		return NewPlainTextStyle("✓ ")
	case SemanticWarning:
		return NewPlainTextStyle("⚠ ")
	case SemanticError:
		return NewPlainTextStyle("✗ ")
	case SemanticInfo:
		return NewPlainTextStyle("ℹ ")
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable always reports true.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}
