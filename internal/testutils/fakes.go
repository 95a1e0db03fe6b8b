package testutils

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"iscript/internal/media"
	"iscript/internal/services"
)

func mediaEntry(name, file string) media.Entry {
	return media.Entry{Name: name, File: file}
}

// TranscodeCall is one recorded transcoder invocation.
type TranscodeCall struct {
	Input  string
	Args   []string
	Output string
}

// FakeTranscoder records invocations and writes the input bytes followed by
// "|" and the space joined arguments to the output.
type FakeTranscoder struct {
	mu    sync.Mutex
	Calls []TranscodeCall
	// Err, when set, is returned by every call.
	Err error
	// FailOn returns an error for the invocations that should fail.
	FailOn func(args []string) error
}

// Transcode implements services.Transcoder.
func (f *FakeTranscoder) Transcode(_ context.Context, input string, args []string, output string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, TranscodeCall{Input: input, Args: append([]string(nil), args...), Output: output})

	if f.Err != nil {
		return f.Err
	}
	if f.FailOn != nil {
		if err := f.FailOn(args); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	return os.WriteFile(output, append(data, []byte("|"+strings.Join(args, " "))...), 0644)
}

// Recorded returns a copy of the recorded calls.
func (f *FakeTranscoder) Recorded() []TranscodeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TranscodeCall(nil), f.Calls...)
}

// FakeProber answers probes from a property table.
type FakeProber struct {
	mu         sync.Mutex
	Properties map[string]float64
	Calls      []string
	Err        error
}

// Probe implements services.Prober.
func (f *FakeProber) Probe(_ context.Context, file string, property string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, property)
	if f.Err != nil {
		return 0, f.Err
	}
	v, ok := f.Properties[property]
	if !ok {
		return 0, fmt.Errorf("property '%s' not available", property)
	}
	return v, nil
}

// FakeDownloader serves URL bodies from a table.
type FakeDownloader struct {
	mu     sync.Mutex
	Bodies map[string]string
	Calls  []string
}

// Download implements services.Downloader.
func (f *FakeDownloader) Download(_ context.Context, url string, destination string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, url)
	body, ok := f.Bodies[url]
	if !ok {
		return fmt.Errorf("404 not found: %s", url)
	}
	return os.WriteFile(destination, []byte(body), 0644)
}

// TextCall is one recorded text rendering.
type TextCall struct {
	Text   string
	Size   float64
	Color  string
	Bounds float64
	Align  services.Alignment
}

// FakeTextRenderer writes the text itself as the image content.
type FakeTextRenderer struct {
	mu    sync.Mutex
	Calls []TextCall
	Err   error
}

// RenderText implements services.TextRenderer.
func (f *FakeTextRenderer) RenderText(text string, output string, size float64, color string, wrapWidth float64, align services.Alignment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, TextCall{Text: text, Size: size, Color: color, Bounds: wrapWidth, Align: align})
	if f.Err != nil {
		return "", f.Err
	}
	return output, os.WriteFile(output, []byte(text), 0644)
}

// FakeHald writes a placeholder table and records the requested hues.
type FakeHald struct {
	mu   sync.Mutex
	Hues []float64
}

// Generate implements services.HaldGenerator.
func (f *FakeHald) Generate(hue float64, output string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Hues = append(f.Hues, hue)
	return output, os.WriteFile(output, []byte("hald"), 0644)
}

// FakePlayer records played files.
type FakePlayer struct {
	mu     sync.Mutex
	Played []string
}

// Play implements services.Player.
func (f *FakePlayer) Play(_ context.Context, file string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Played = append(f.Played, file)
	return nil
}

// FakeToolchain groups one fake of every collaborator.
type FakeToolchain struct {
	Transcoder *FakeTranscoder
	Prober     *FakeProber
	Downloader *FakeDownloader
	Text       *FakeTextRenderer
	Hald       *FakeHald
	Player     *FakePlayer
}

// NewFakeToolchain creates fakes with empty tables.
func NewFakeToolchain() *FakeToolchain {
	return &FakeToolchain{
		Transcoder: &FakeTranscoder{},
		Prober:     &FakeProber{Properties: map[string]float64{}},
		Downloader: &FakeDownloader{Bodies: map[string]string{}},
		Text:       &FakeTextRenderer{},
		Hald:       &FakeHald{},
		Player:     &FakePlayer{},
	}
}

// Toolchain exposes the fakes as a services.Toolchain.
func (f *FakeToolchain) Toolchain() *services.Toolchain {
	return &services.Toolchain{
		Transcoder: f.Transcoder,
		Prober:     f.Prober,
		Downloader: f.Downloader,
		Text:       f.Text,
		Hald:       f.Hald,
		Player:     f.Player,
	}
}
