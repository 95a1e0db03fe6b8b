package output

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/internal/commands"
	"iscript/internal/schema"
	"iscript/internal/session"
	"iscript/internal/testutils"
	"iscript/pkg/scripttypes"
)

// taggedStyles wraps text in tags naming the semantic type.
type taggedStyles struct {
	available bool
}

type taggedStyle string

func (s taggedStyle) Render(text ...string) string {
	return "[" + string(s) + "]" + strings.Join(text, " ") + "[/" + string(s) + "]"
}

func (p taggedStyles) GetStyle(semantic string) TextStyle { return taggedStyle(semantic) }
func (p taggedStyles) IsAvailable() bool                  { return p.available }

type stubCommand struct {
	name        string
	description string
	policy      scripttypes.Policy
}

func (c stubCommand) Name() string               { return c.name }
func (c stubCommand) Description() string        { return c.description }
func (c stubCommand) Policy() scripttypes.Policy { return c.policy }
func (c stubCommand) Execute(context.Context, *session.Session, []string) (scripttypes.Signal, error) {
	return scripttypes.SignalNext, nil
}

func newTestPrinter(options ...Option) (*Printer, *testutils.CaptureBuffer) {
	buffer := testutils.NewCaptureBuffer()
	return NewPrinter(append([]Option{WithWriter(buffer)}, options...)...), buffer
}

func TestPrinterBasicOutput(t *testing.T) {
	printer, buffer := newTestPrinter(PlainText())

	printer.Printf("number: %d", 42)
	printer.Println(" and more")

	assert.Equal(t, "number: 42 and more\n", buffer.String())
}

func TestPrinterSemanticOutput(t *testing.T) {
	printer, buffer := newTestPrinter(PlainText())

	printer.Info("information")
	printer.Success("completed")
	printer.Warning("careful")
	printer.Error("failed")

	assert.Equal(t, []string{
		"ℹ information",
		"✓ completed",
		"⚠ careful",
		"✗ failed",
	}, buffer.Lines())
}

func TestPrinterWithStyles(t *testing.T) {
	printer, buffer := newTestPrinter(WithStyles(taggedStyles{available: true}))
	assert.True(t, printer.IsStylable())

	printer.Command("flip")
	printer.Success("done")

	assert.Equal(t, "[command]flip[/command][success]done[/success]\n", buffer.String())
}

func TestPrinterUnavailableProviderFallsBack(t *testing.T) {
	printer, buffer := newTestPrinter(WithStyles(taggedStyles{available: false}), WithMode(ModeStyled))
	assert.False(t, printer.IsStylable())

	printer.Error("broken")

	assert.Equal(t, "✗ broken\n", buffer.String())
}

func TestPrinterPlainTextIgnoresStyles(t *testing.T) {
	printer, buffer := newTestPrinter(WithStyles(taggedStyles{available: true}), PlainText())
	assert.False(t, printer.IsStylable())

	printer.Command("flip")
	assert.Equal(t, "flip", buffer.String())
}

func TestPrinterJSONMode(t *testing.T) {
	printer, buffer := newTestPrinter(JSON())

	printer.Warning("careful")
	printer.Markdown("# Title")

	lines := buffer.Lines()
	require.Len(t, lines, 2)

	var first map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "warning", first["type"])
	assert.Equal(t, "careful", first["message"])

	var second map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "plain", second["type"])
	assert.Equal(t, "# Title", second["message"])
}

func TestPrinterSilent(t *testing.T) {
	printer, buffer := newTestPrinter(Silent())
	printer.Info("hidden")
	printer.Markdown("# hidden")
	assert.Equal(t, 0, buffer.Len())
}

func TestPrinterMarkdownPlain(t *testing.T) {
	printer, buffer := newTestPrinter(PlainText())
	printer.Markdown("# Title")
	assert.Equal(t, "# Title\n", buffer.String())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"styled", ModeStyled},
		{"plain", ModePlain},
		{"json", ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	_, err := ParseMode("xml")
	assert.Error(t, err)
}

func TestLipglossStyleProvider(t *testing.T) {
	ascii := NewLipglossStyleProviderWithProfile(termenv.Ascii)
	assert.False(t, ascii.IsAvailable())

	color := NewLipglossStyleProviderWithProfile(termenv.ANSI256)
	assert.True(t, color.IsAvailable())
	assert.Contains(t, color.GetStyle(string(SemanticError)).Render("boom"), "boom")
	assert.Equal(t, "x", strings.TrimSpace(color.GetStyle("unknown").Render("x")))
}

func TestCommandsMarkdown(t *testing.T) {
	sch, err := schema.Load([]byte(`
version: "1.0.0"
commands:
  - name: flip
    aliases: [mirrorv]
    description: Mirror vertically
    args: [media]
  - name: render
    description: Declare output | stop
    args: [media, {name: label, optional: true}]
  - name: clone
    args: [media, name]
`), "test")
	require.NoError(t, err)

	registry := commands.NewRegistry()
	require.NoError(t, registry.Register(stubCommand{name: "flip", policy: scripttypes.PolicyAbort}))
	require.NoError(t, registry.Register(stubCommand{name: "clone", description: "Copy a media", policy: scripttypes.PolicyContinue}))

	md := CommandsMarkdown(sch, registry)

	assert.Contains(t, md, "schema 1.0.0")
	assert.Contains(t, md, "| flip | mirrorv | `flip media` | abort | Mirror vertically |")
	assert.Contains(t, md, "| render |  | `render media [label]` | no executor | Declare output \\| stop |")
	assert.Contains(t, md, "| clone |  | `clone media name` | continue | Copy a media |")
}

func TestSummary(t *testing.T) {
	empty := Summary(&scripttypes.Result{Elapsed: 1500 * time.Millisecond})
	assert.Contains(t, empty, "**1.50s**")
	assert.Contains(t, empty, "No attachments.")

	full := Summary(&scripttypes.Result{
		Elapsed:     time.Second,
		Attachments: []scripttypes.Attachment{{File: "/tmp/out.mp4", Name: "final"}},
	})
	assert.Contains(t, full, "| final | /tmp/out.mp4 |")
}

func TestRenderMarkdownRejectsEmpty(t *testing.T) {
	_, err := RenderMarkdown("   ")
	assert.Error(t, err)
}
