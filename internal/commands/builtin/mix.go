package builtin

import (
	"context"
	"strings"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// second resolves the media named by args[0] as a second transcoder input.
func second(s *session.Session, command string, args []string) (string, error) {
	return s.MediaFile(args[0], command)
}

func init() {
	register(&FilterCommand{
		name:        "audioputmix",
		description: "Mix the audio of another media into a media",
		policy:      scripttypes.PolicyAbort,
		build: func(_ context.Context, s *session.Session, _ string, args []string) ([]string, error) {
			other, err := second(s, "audioputmix", args)
			if err != nil {
				return nil, err
			}
			return []string{
				"-i", other,
				"-filter_complex", "[0:a][1:a]amix=2:duration=shortest[a]",
				"-map", "0:v", "-map", "[a]",
			}, nil
		},
	})
	register(&FilterCommand{
		name:        "join",
		description: "Stack two media side by side, or vertically",
		policy:      scripttypes.PolicyAbort,
		build: func(_ context.Context, s *session.Session, _ string, args []string) ([]string, error) {
			other, err := second(s, "join", args)
			if err != nil {
				return nil, err
			}
			stack := "hstack"
			if strings.EqualFold(optional(args, 1, "false"), "true") {
				stack = "vstack"
			}
			return []string{
				"-i", other,
				"-filter_complex", "[0:v][1:v]" + stack + "=inputs=2[v];[0:a][1:a]amix=2:duration=shortest[a]",
				"-map", "[v]", "-map", "[a]",
			}, nil
		},
	})
	register(&FilterCommand{
		name:        "overlay",
		description: "Place a media on top of another at x, y",
		policy:      scripttypes.PolicyContinue,
		build: func(_ context.Context, s *session.Session, _ string, args []string) ([]string, error) {
			top, err := second(s, "overlay", args)
			if err != nil {
				return nil, err
			}
			x := s.Evaluate(optional(args, 1, "0")).String()
			y := s.Evaluate(optional(args, 2, "0")).String()
			return []string{
				"-i", top,
				"-filter_complex", "[0:a][1:a]amix=2:duration=shortest[a];[0:v][1:v]overlay=" + x + ":" + y + "[v]",
				"-map", "[v]", "-map", "[a]",
			}, nil
		},
	})
}
