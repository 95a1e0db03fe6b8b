package builtin

import (
	"context"
	"os"
	"strings"

	"iscript/internal/logger"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// mimeExtensions maps the MIME types convert knows to file extensions.
var mimeExtensions = map[string]string{
	"audio/wav":        ".wav",
	"audio/mpeg":       ".mp3",
	"audio/ogg":        ".ogg",
	"video/mp4":        ".mp4",
	"video/x-matroska": ".mkv",
	"image/png":        ".png",
	"image/jpeg":       ".jpg",
}

// ExtensionFor returns the extension for mimeType. Unknown types use their
// subtype, so "video/webm" becomes ".webm".
func ExtensionFor(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	parts := strings.Split(mimeType, "/")
	return "." + parts[len(parts)-1]
}

// ConvertCommand re-encodes a media into another container.
type ConvertCommand struct{}

// Name returns the command name "convert" for registration and lookup.
func (c *ConvertCommand) Name() string {
	return "convert"
}

// Description returns a brief description of what the convert command does.
func (c *ConvertCommand) Description() string {
	return "Convert a media to another format by MIME type"
}

// Policy continues the script on failure.
func (c *ConvertCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute writes conv_<id><ext>, points the media at it and removes the
// previous file.
func (c *ConvertCommand) Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	mediaName, mimeType := args[0], strings.TrimSpace(args[1])

	file, err := s.MediaFile(mediaName, c.Name())
	if err != nil {
		return scripttypes.SignalNext, err
	}
	if s.Tools.Transcoder == nil {
		return scripttypes.SignalNext, &scripttypes.ResourceError{Op: c.Name(), Path: file, Err: errNoCollaborator}
	}

	output := s.NewPath("conv", "") + ExtensionFor(mimeType)
	if err := s.Tools.Transcoder.Transcode(ctx, file, []string{"-q:a", "0", "-preset", "fast"}, output); err != nil {
		_ = os.Remove(output)
		return scripttypes.SignalNext, err
	}

	s.Media.ReplaceFile(mediaName, output)
	if err := os.Remove(file); err != nil {
		logger.Debug("Could not remove converted source", "path", file, "error", err)
	}
	return scripttypes.SignalNext, nil
}

func init() {
	register(&ConvertCommand{})
}
