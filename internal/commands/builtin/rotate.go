package builtin

import (
	"context"
	"math"
	"strings"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// rotateExpand grows the frame to the bounding box of the rotated input.
const rotateExpand = ":ow='ceil(iw*cos(PI/4)+ih*sin(PI/4))':oh='ceil(iw*sin(PI/4)+ih*cos(PI/4))'"

// RotateFilter builds the rotate filter for degrees, filling uncovered
// pixels with color. Without crop the frame is enlarged.
func RotateFilter(degrees float64, color string, crop bool) string {
	filter := "rotate=" + num(degrees*math.Pi/180)
	if !crop {
		filter += rotateExpand
	}
	return filter + ":c=" + color
}

func init() {
	register(&FilterCommand{
		name:        "rotate",
		description: "Rotate a media by degrees",
		policy:      scripttypes.PolicyContinue,
		build: func(_ context.Context, s *session.Session, _ string, args []string) ([]string, error) {
			degrees, err := s.Number("rotate", "degrees", args[0])
			if err != nil {
				return nil, err
			}
			color := optional(args, 1, "black")
			crop := strings.EqualFold(optional(args, 2, "false"), "true")
			return []string{"-vf", RotateFilter(degrees, color, crop)}, nil
		},
	})
}
