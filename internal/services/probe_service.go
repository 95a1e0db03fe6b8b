package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// probeOutput is the subset of ffprobe's JSON output the probe reads.
// Entries are kept loose since any property name may be requested.
type probeOutput struct {
	Streams []map[string]any `json:"streams"`
	Format  map[string]any   `json:"format"`
}

// ProbeService reads media metadata through ffprobe.
type ProbeService struct {
	path    string
	timeout time.Duration
}

// NewProbeService creates a ProbeService using the ffprobe binary at path.
func NewProbeService(path string, timeout time.Duration) *ProbeService {
	return &ProbeService{path: path, timeout: timeout}
}

// Name returns the service name "probe".
func (p *ProbeService) Name() string {
	return "probe"
}

// Args builds the ffprobe argument list. Duration is read from the container
// format, every other property from the first video stream.
func (p *ProbeService) Args(file, property string) []string {
	section := "stream"
	if property == "duration" {
		section = "format"
	}
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", section + "=" + property,
		"-of", "json",
		file,
	}
}

// Probe returns the numeric value of property for file.
func (p *ProbeService) Probe(ctx context.Context, file string, property string) (float64, error) {
	out, err := runTool(ctx, "ffprobe", p.path, p.Args(file, property), p.timeout)
	if err != nil {
		return 0, err
	}
	return ParseProbeOutput(out, property)
}

// ParseProbeOutput extracts property from raw ffprobe JSON output.
func ParseProbeOutput(data []byte, property string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var raw any
	var ok bool
	if property == "duration" {
		raw, ok = parsed.Format[property]
	} else if len(parsed.Streams) > 0 {
		raw, ok = parsed.Streams[0][property]
	}
	if !ok {
		return 0, fmt.Errorf("property '%s' not available", property)
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse %s '%s': %w", property, v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("property '%s' is not numeric", property)
	}
}
