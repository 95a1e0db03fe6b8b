package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/internal/commands"
	"iscript/internal/logger"
	"iscript/internal/output"
	"iscript/internal/schema"
	"iscript/internal/testutils"
	"iscript/pkg/scripttypes"
)

const shellSchema = `
version: 1.0.0
commands:
  - name: flip
    aliases: [mirrorv]
    args: [media]
  - name: render
    args:
      - media
      - name: label
        optional: true
`

type recordingRunner struct {
	scripts []string
	result  *scripttypes.Result
	err     error
}

func (r *recordingRunner) run(_ context.Context, script string) (*scripttypes.Result, error) {
	r.scripts = append(r.scripts, script)
	return r.result, r.err
}

func newTestShell(t *testing.T, runner *recordingRunner) (*Shell, *testutils.CaptureBuffer) {
	t.Helper()
	sch, err := schema.Load([]byte(shellSchema), "test")
	require.NoError(t, err)

	buffer := testutils.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(buffer), output.PlainText())
	return New(commands.NewDispatcher(sch, commands.NewRegistry()), runner.run, printer), buffer
}

func TestShell_BuffersValidLines(t *testing.T) {
	runner := &recordingRunner{}
	sh, _ := newTestShell(t, runner)
	ctx := context.Background()

	assert.Equal(t, ActionContinue, sh.HandleLine(ctx, "flip video"))
	assert.Equal(t, ActionContinue, sh.HandleLine(ctx, "  mirrorv video  "))
	assert.Equal(t, ActionContinue, sh.HandleLine(ctx, "# comment"))
	assert.Equal(t, ActionContinue, sh.HandleLine(ctx, ""))

	assert.Equal(t, []string{"flip video", "mirrorv video"}, sh.Buffer())
	assert.Empty(t, runner.scripts)
}

func TestShell_UnknownCommandKeepsBuffer(t *testing.T) {
	runner := &recordingRunner{}
	sh, out := newTestShell(t, runner)
	ctx := context.Background()

	sh.HandleLine(ctx, "flip video")
	sh.HandleLine(ctx, "explode video")

	assert.Equal(t, []string{"flip video"}, sh.Buffer())
	assert.Contains(t, out.String(), "✗ ")
	assert.Contains(t, out.String(), "explode")
}

func TestShell_IndentedHashIsNotComment(t *testing.T) {
	runner := &recordingRunner{}
	sh, out := newTestShell(t, runner)
	ctx := context.Background()

	assert.Equal(t, ActionContinue, sh.HandleLine(ctx, "  # not a comment"))

	assert.Empty(t, sh.Buffer())
	assert.Contains(t, out.String(), "✗ ")
	assert.Empty(t, runner.scripts)
}

func TestShell_LogsRejectedLines(t *testing.T) {
	logs := testutils.NewCaptureBuffer()
	logger.SetOutput(logs)
	logger.Logger.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.Logger.SetLevel(log.InfoLevel)
	})

	sh, _ := newTestShell(t, &recordingRunner{})
	sh.HandleLine(context.Background(), "explode video")

	assert.Contains(t, logs.String(), "REPL")
	assert.Contains(t, logs.String(), "Rejected line")
	assert.Contains(t, logs.String(), "explode")
}

func TestShell_RenderRunsBuffer(t *testing.T) {
	runner := &recordingRunner{result: &scripttypes.Result{
		Elapsed:     time.Second,
		Attachments: []scripttypes.Attachment{{File: "out.mp4", Name: "final"}},
	}}
	sh, out := newTestShell(t, runner)
	ctx := context.Background()

	sh.HandleLine(ctx, "flip video")
	sh.HandleLine(ctx, "render video final")

	require.Len(t, runner.scripts, 1)
	assert.Equal(t, "flip video\nrender video final", runner.scripts[0])
	assert.Empty(t, sh.Buffer())
	assert.Contains(t, out.String(), "✓ script finished")
	assert.Contains(t, out.String(), "| final | out.mp4 |")
}

func TestShell_MetaCommands(t *testing.T) {
	runner := &recordingRunner{result: &scripttypes.Result{}}
	sh, out := newTestShell(t, runner)
	ctx := context.Background()

	sh.HandleLine(ctx, MetaRun)
	assert.Empty(t, runner.scripts)
	assert.Contains(t, out.String(), "nothing to run")

	sh.HandleLine(ctx, "flip video")
	sh.HandleLine(ctx, MetaShow)
	assert.Contains(t, out.String(), "  1  flip video")

	sh.HandleLine(ctx, MetaClear)
	assert.Empty(t, sh.Buffer())

	sh.HandleLine(ctx, "flip video")
	sh.HandleLine(ctx, MetaRun)
	assert.Equal(t, []string{"flip video"}, runner.scripts)

	sh.HandleLine(ctx, MetaHelp)
	assert.Contains(t, out.String(), "| render |")

	assert.Equal(t, ActionExit, sh.HandleLine(ctx, MetaQuit))
}

func TestShell_RunErrorReported(t *testing.T) {
	runner := &recordingRunner{
		result: &scripttypes.Result{},
		err:    &scripttypes.ScriptError{Reason: scripttypes.ReasonUnknownCommand, Line: 1, Command: "bogus"},
	}
	sh, out := newTestShell(t, runner)

	sh.HandleLine(context.Background(), "flip video")
	sh.HandleLine(context.Background(), MetaRun)

	assert.Contains(t, out.String(), "✗ ")
	assert.Contains(t, out.String(), "No attachments.")
}

func TestShell_Completer(t *testing.T) {
	sh, _ := newTestShell(t, &recordingRunner{})

	var names []string
	for _, child := range sh.Completer().GetChildren() {
		names = append(names, string(child.GetName()))
	}

	assert.Contains(t, names, "flip ")
	assert.Contains(t, names, "mirrorv ")
	assert.Contains(t, names, ".run ")
}

func TestClassifyReadError(t *testing.T) {
	assert.Equal(t, readUnhandled, classifyReadError("x", nil))
	assert.Equal(t, readContinue, classifyReadError("x", readline.ErrInterrupt))
	assert.Equal(t, readExit, classifyReadError("  ", io.EOF))
	assert.Equal(t, readContinue, classifyReadError("partial", io.EOF))
	assert.Equal(t, readUnhandled, classifyReadError("", errors.New("boom")))
}
