// Package services provides the external collaborators the interpreter drives:
// the ffmpeg transcoder, the ffprobe metadata probe, the HTTP downloader, the
// text-to-image renderer, the HALD colour table generator and the ffplay player.
package services

import (
	"context"

	"iscript/internal/config"
)

// Transcoder runs one transcoder invocation: input, filter arguments, output.
type Transcoder interface {
	Transcode(ctx context.Context, input string, args []string, output string) error
}

// Prober reads one numeric property of a media file.
type Prober interface {
	Probe(ctx context.Context, file string, property string) (float64, error)
}

// Downloader fetches a URL into a local file.
type Downloader interface {
	Download(ctx context.Context, url string, destination string) error
}

// TextRenderer draws text into an image file and returns its path.
type TextRenderer interface {
	RenderText(text string, output string, size float64, color string, wrapWidth float64, align Alignment) (string, error)
}

// HaldGenerator writes a hue-rotated HALD colour lookup table and returns its path.
type HaldGenerator interface {
	Generate(hue float64, output string) (string, error)
}

// Player plays a media file and blocks until playback ends.
type Player interface {
	Play(ctx context.Context, file string) error
}

// Toolchain bundles the collaborators of a session. Any nil field makes the
// commands that need it fail with a resource error.
type Toolchain struct {
	Transcoder Transcoder
	Prober     Prober
	Downloader Downloader
	Text       TextRenderer
	Hald       HaldGenerator
	Player     Player
}

// NewToolchain wires the production collaborators from cfg.
func NewToolchain(cfg *config.Config) *Toolchain {
	return &Toolchain{
		Transcoder: NewTranscodeService(cfg.FFmpegPath, cfg.ToolTimeout),
		Prober:     NewProbeService(cfg.FFprobePath, cfg.ToolTimeout),
		Downloader: NewDownloadService(cfg.UserAgent, cfg.DownloadTimeout),
		Text:       NewTextRenderService(cfg.FontPath),
		Hald:       NewHaldService(),
		Player:     NewPlayerService(cfg.FFplayPath),
	}
}
