package builtin

import (
	"context"
	"fmt"
	"strings"

	"iscript/internal/session"
	"iscript/pkg/scripttypes"
)

// The radial distortions square the frame to its height, remap pixels with
// geq around the centre and scale back to the probed size.
const (
	radius   = "hypot(X-W*0.5,Y-H*0.5)"
	halfSide = "min(W,H)*0.5"

	swirlTemplate = "format=yuv444p,scale={h}:{h},geq='p(" +
		"W*0.5+({r}+1e-6)*cos((atan2(Y-H*0.5,X-W*0.5))+(({v})/180*PI)*(if(lt({r}+1e-6,{m}),1-({r}+1e-6)/({m}),0)^2))," +
		"H*0.5+({r}+1e-6)*sin((atan2(Y-H*0.5,X-W*0.5))+(({v})/180*PI)*(if(lt({r}+1e-6,{m}),1-({r}+1e-6)/({m}),0)^2)))'" +
		",scale={w}:{h},setsar=1:1,format=yuv420p"

	explodeTemplate = "format=yuv444p,scale={h}:{h},geq='p(" +
		"(W*0.5)+(X-W*0.5)/(lte(({r}),({m}))*(1+({v})*2*atan(atan(atan(atan(1-({r})/({m}))^2))))+gt(({r}),({m}))*1)," +
		"(H*0.5)+(Y-H*0.5)/(lte(({r}),({m}))*(1+({v})*2*atan(atan(atan(atan(1-({r})/({m}))^2))))+gt(({r}),({m}))*1))'" +
		",scale={w}:{h},setsar=1:1,format=yuv420p"
)

// SwirlFilter twists the frame by degrees at the centre, fading to none at
// the inscribed circle.
func SwirlFilter(degrees, width, height float64) string {
	return expandDistortion(swirlTemplate, degrees, width, height)
}

// ExplodeFilter bulges the inscribed circle outward by amount.
func ExplodeFilter(amount, width, height float64) string {
	return expandDistortion(explodeTemplate, amount, width, height)
}

func expandDistortion(template string, v, width, height float64) string {
	return strings.NewReplacer(
		"{r}", radius,
		"{m}", halfSide,
		"{v}", num(v),
		"{w}", num(width),
		"{h}", num(height),
	).Replace(template)
}

// frameSize probes the width and height of file.
func frameSize(ctx context.Context, s *session.Session, command, file string) (float64, float64, error) {
	if s.Tools.Prober == nil {
		return 0, 0, &scripttypes.ResourceError{Op: command, Path: file, Err: errNoCollaborator}
	}
	width, err := s.Tools.Prober.Probe(ctx, file, "width")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe width: %w", err)
	}
	height, err := s.Tools.Prober.Probe(ctx, file, "height")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe height: %w", err)
	}
	return width, height, nil
}

func init() {
	register(&FilterCommand{
		name:        "swirl",
		description: "Twist a media around its centre",
		policy:      scripttypes.PolicyAbort,
		build: func(ctx context.Context, s *session.Session, file string, args []string) ([]string, error) {
			degrees, err := s.Number("swirl", "degrees", args[0])
			if err != nil {
				return nil, err
			}
			width, height, err := frameSize(ctx, s, "swirl", file)
			if err != nil {
				return nil, err
			}
			return []string{"-vf", SwirlFilter(degrees, width, height)}, nil
		},
	})
	register(&FilterCommand{
		name:        "explode",
		description: "Bulge the centre of a media outward",
		policy:      scripttypes.PolicyAbort,
		build: func(ctx context.Context, s *session.Session, file string, args []string) ([]string, error) {
			amount, err := s.Number("explode", "amount", optional(args, 0, "1"))
			if err != nil {
				return nil, err
			}
			width, height, err := frameSize(ctx, s, "explode", file)
			if err != nil {
				return nil, err
			}
			return []string{"-vf", ExplodeFilter(amount, width, height)}, nil
		},
	})
}
