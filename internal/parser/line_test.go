package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitN(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxSplit int
		expected []string
	}{
		{"plain", "flip clip", 1, []string{"flip", "clip"}},
		{"fewer fields than allowed", "render clip", 2, []string{"render", "clip"}},
		{"free text remainder", "tti title 48 600 white Hello   big world", 5,
			[]string{"tti", "title", "48", "600", "white", "Hello   big world"}},
		{"trailing whitespace kept in remainder", "set x 1 + 2  ", 2, []string{"set", "x", "1 + 2  "}},
		{"leading whitespace ignored", "   flip\tclip", 1, []string{"flip", "clip"}},
		{"tabs between fields", "join\ta\tb", 3, []string{"join", "a", "b"}},
		{"zero splits", "render clip out", 0, []string{"render clip out"}},
		{"unlimited", "a  b c", -1, []string{"a", "b", "c"}},
		{"empty", "   ", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitN(tt.text, tt.maxSplit))
		})
	}
}

func TestLines(t *testing.T) {
	script := "# header comment\r\n" +
		"loadfile sample.mp4 clip\r\n" +
		"\n" +
		"   \t\n" +
		"  # indented comment\n" +
		"flip clip\n" +
		"render clip out"

	lines := Lines(script)

	assert.Equal(t, []Line{
		{Number: 2, Text: "loadfile sample.mp4 clip", Name: "loadfile"},
		{Number: 5, Text: "  # indented comment", Name: "#"},
		{Number: 6, Text: "flip clip", Name: "flip"},
		{Number: 7, Text: "render clip out", Name: "render"},
	}, lines)
}

func TestIsSkippable(t *testing.T) {
	assert.True(t, IsSkippable(""))
	assert.True(t, IsSkippable("   "))
	assert.True(t, IsSkippable("#comment"))
	assert.True(t, IsSkippable("#"))
	assert.False(t, IsSkippable("set x 1"))
	assert.False(t, IsSkippable("  # indented"))
	assert.False(t, IsSkippable("\t#tabbed"))
}
