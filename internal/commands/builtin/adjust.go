package builtin

import (
	"math"

	"iscript/pkg/scripttypes"
)

// rubberbandFormant is passed to every rubberband invocation.
const rubberbandFormant = "712923000"

var num = scripttypes.FormatNumber

func init() {
	register(&FilterCommand{
		name:        "speed",
		description: "Change playback speed, keeping the pitch",
		policy:      scripttypes.PolicyAbort,
		build: numeric("speed", "factor", func(f float64) []string {
			return []string{
				"-vf", "setpts=1/" + num(f) + "*PTS,fps=30",
				"-af", "rubberband=tempo=" + num(f) + ":formant=" + rubberbandFormant,
			}
		}),
	})
	register(&FilterCommand{
		name:        "contrast",
		description: "Adjust contrast",
		policy:      scripttypes.PolicyAbort,
		build: numeric("contrast", "value", func(v float64) []string {
			return []string{"-vf", "eq=contrast=" + num(v)}
		}),
	})
	register(&FilterCommand{
		name:        "brightness",
		description: "Raise brightness",
		policy:      scripttypes.PolicyAbort,
		build: numeric("brightness", "value", func(v float64) []string {
			return []string{"-vf", "eq=brightness=" + num(math.Max(v, 0))}
		}),
	})
	register(&FilterCommand{
		name:        "darken",
		description: "Lower brightness",
		policy:      scripttypes.PolicyAbort,
		build: numeric("darken", "value", func(v float64) []string {
			return []string{"-vf", "eq=brightness=" + num(math.Max(-v, -100))}
		}),
	})
	register(&FilterCommand{
		name:        "blur",
		description: "Box blur",
		policy:      scripttypes.PolicyAbort,
		build: numeric("blur", "scale", func(v float64) []string {
			return []string{"-vf", "boxblur=" + num(v)}
		}),
	})
	register(&FilterCommand{
		name:        "volume",
		description: "Scale audio volume",
		policy:      scripttypes.PolicyAbort,
		build: numeric("volume", "value", func(v float64) []string {
			return []string{"-af", "volume=" + num(v)}
		}),
	})
	register(&FilterCommand{
		name:        "audiopitch",
		description: "Shift audio pitch, keeping the tempo",
		policy:      scripttypes.PolicyAbort,
		build: numeric("audiopitch", "pitch", func(v float64) []string {
			return []string{"-af", "rubberband=pitch=" + num(v) + ":formant=" + rubberbandFormant}
		}),
	})
}
