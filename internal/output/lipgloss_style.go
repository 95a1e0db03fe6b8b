package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LipglossStyleProvider styles semantic output with lipgloss colours.
type LipglossStyleProvider struct {
	profile termenv.Profile
	styles  map[SemanticType]lipgloss.Style
}

// NewLipglossStyleProvider creates a provider for the colour profile of the
// environment. NO_COLOR and dumb terminals yield the ASCII profile, which
// makes the provider unavailable.
func NewLipglossStyleProvider() *LipglossStyleProvider {
	return NewLipglossStyleProviderWithProfile(termenv.EnvColorProfile())
}

// NewLipglossStyleProviderWithProfile creates a provider for profile.
func NewLipglossStyleProviderWithProfile(profile termenv.Profile) *LipglossStyleProvider {
	return &LipglossStyleProvider{
		profile: profile,
		styles: map[SemanticType]lipgloss.Style{
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			SemanticSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			SemanticCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		},
	}
}

// GetStyle returns the style for semantic, or an empty style.
func (l *LipglossStyleProvider) GetStyle(semantic string) TextStyle {
	if style, ok := l.styles[SemanticType(semantic)]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable reports whether the terminal can show colour.
func (l *LipglossStyleProvider) IsAvailable() bool {
	return l.profile != termenv.Ascii
}
