package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"iscript/internal/commands"
	"iscript/internal/schema"
	"iscript/pkg/scripttypes"
)

// MarkdownWrap is the word wrap width used for rendered markdown.
const MarkdownWrap = 80

// RenderMarkdown renders markdown to ANSI terminal output with glamour.
func RenderMarkdown(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(MarkdownWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// CommandsMarkdown renders the command table of sch. Executor details come
// from registry: the failure policy, and the description when the schema
// gives none.
func CommandsMarkdown(sch *schema.Schema, registry *commands.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# iscript commands (schema %s)\n\n", sch.Version())
	b.WriteString("| Command | Aliases | Usage | On failure | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, desc := range sch.Commands() {
		policy := "no executor"
		description := desc.Description
		if cmd, ok := registry.Get(desc.Name); ok {
			policy = cmd.Policy().String()
			if description == "" {
				description = cmd.Description()
			}
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s | %s |\n",
			desc.Name,
			strings.Join(desc.Aliases, ", "),
			desc.Usage(),
			policy,
			escapeCell(description))
	}
	return b.String()
}

// Summary renders a finished run as markdown.
func Summary(result *scripttypes.Result) string {
	var b strings.Builder
	b.WriteString("## Run finished\n\n")
	fmt.Fprintf(&b, "Elapsed: **%.2fs**\n\n", result.ElapsedSeconds())
	if len(result.Attachments) == 0 {
		b.WriteString("No attachments.\n")
		return b.String()
	}
	b.WriteString("| Name | File |\n|---|---|\n")
	for _, a := range result.Attachments {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(a.Name), escapeCell(a.File))
	}
	return b.String()
}

func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}
