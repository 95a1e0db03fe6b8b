package services

import (
	"context"
	"fmt"
	"time"
)

// defaultFFmpegArgs precede every invocation: quiet logging, overwrite output.
var defaultFFmpegArgs = []string{"-v", "error", "-y"}

// TranscodeService runs ffmpeg as a subprocess.
type TranscodeService struct {
	path    string
	timeout time.Duration
}

// NewTranscodeService creates a TranscodeService using the ffmpeg binary at path.
func NewTranscodeService(path string, timeout time.Duration) *TranscodeService {
	return &TranscodeService{path: path, timeout: timeout}
}

// Name returns the service name "transcode".
func (t *TranscodeService) Name() string {
	return "transcode"
}

// Args builds the full ffmpeg argument list for one invocation.
func (t *TranscodeService) Args(input string, args []string, output string) []string {
	full := make([]string, 0, len(defaultFFmpegArgs)+len(args)+3)
	full = append(full, defaultFFmpegArgs...)
	full = append(full, "-i", input)
	full = append(full, args...)
	full = append(full, output)
	return full
}

// Transcode runs ffmpeg -i input args... output and waits for it to finish.
func (t *TranscodeService) Transcode(ctx context.Context, input string, args []string, output string) error {
	if input == "" || output == "" {
		return fmt.Errorf("transcode requires an input and an output path")
	}
	_, err := runTool(ctx, "ffmpeg", t.path, t.Args(input, args, output), t.timeout)
	return err
}
