package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"iscript/internal/logger"
	"iscript/pkg/scripttypes"
)

// runTool executes an external program and waits for it. A non-zero exit is
// reported as an ExternalToolError carrying the program's stderr. A positive
// timeout bounds the run.
func runTool(ctx context.Context, tool string, path string, args []string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.ToolInvocation(tool, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	toolErr := &scripttypes.ExternalToolError{
		Tool:     tool,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
	}
	if ctx.Err() != nil {
		toolErr.Err = fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return stdout.Bytes(), toolErr
}
