package builtin

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"iscript/internal/media"
	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// DownloadFilename derives a local file name from the URL path, falling
// back to a time based name.
func DownloadFilename(rawURL string, now time.Time) string {
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		if base != "" && base != "." && base != "/" {
			return base
		}
	}
	return fmt.Sprintf("video_%d.mp4", now.Unix())
}

// LoadCommand downloads a URL into the session as a new media.
type LoadCommand struct{}

// Name returns the command name "load" for registration and lookup.
func (c *LoadCommand) Name() string {
	return "load"
}

// Description returns a brief description of what the load command does.
func (c *LoadCommand) Description() string {
	return "Download a URL into the session"
}

// Policy continues the script on failure.
func (c *LoadCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute downloads and registers the media. Nothing is registered when
// the download fails.
func (c *LoadCommand) Execute(ctx context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	rawURL := args[0]
	if s.Tools.Downloader == nil {
		return scripttypes.SignalNext, &scripttypes.ResourceError{Op: "download", Path: rawURL, Err: errNoCollaborator}
	}

	filename := DownloadFilename(rawURL, time.Now())
	dest := s.Path(filename)
	if _, err := os.Stat(dest); err == nil {
		dest = s.NewPath("load", filename)
	}

	if err := s.Tools.Downloader.Download(ctx, rawURL, dest); err != nil {
		return scripttypes.SignalNext, err
	}

	s.Media.Append(media.Entry{Name: optional(args, 1, filename), File: dest})
	return scripttypes.SignalNext, nil
}

// LoadFileCommand copies a local file into the session as a new media.
type LoadFileCommand struct{}

// Name returns the command name "loadfile" for registration and lookup.
func (c *LoadFileCommand) Name() string {
	return "loadfile"
}

// Description returns a brief description of what the loadfile command does.
func (c *LoadFileCommand) Description() string {
	return "Copy a local file into the session"
}

// Policy continues the script on failure.
func (c *LoadFileCommand) Policy() scripttypes.Policy {
	return scripttypes.PolicyContinue
}

// Execute copies the file, resolved against the caller directory, so that
// later transforms never touch the original.
func (c *LoadFileCommand) Execute(_ context.Context, s *session.Session, args []string) (scripttypes.Signal, error) {
	src := s.ResolvePath(args[0])
	dest := s.NewPath("loaded", src)

	if err := session.CopyFile(src, dest); err != nil {
		return scripttypes.SignalNext, err
	}

	s.Media.Append(media.Entry{Name: optional(args, 1, filepath.Base(src)), File: dest})
	return scripttypes.SignalNext, nil
}

func init() {
	register(&LoadCommand{})
	register(&LoadFileCommand{})
}
