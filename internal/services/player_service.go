package services

import (
	"context"
)

// PlayerService plays attachments through ffplay.
type PlayerService struct {
	path string
}

// NewPlayerService creates a PlayerService using the ffplay binary at path.
func NewPlayerService(path string) *PlayerService {
	return &PlayerService{path: path}
}

// Name returns the service name "player".
func (p *PlayerService) Name() string {
	return "player"
}

// Play blocks until ffplay exits at the end of the file.
func (p *PlayerService) Play(ctx context.Context, file string) error {
	_, err := runTool(ctx, "ffplay", p.path, []string{"-autoexit", "-loglevel", "error", file}, 0)
	return err
}
