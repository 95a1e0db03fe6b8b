package builtin

import (
	"iscript/pkg/scripttypes"
)

func init() {
	register(&FilterCommand{
		name:        "invert",
		description: "Invert the colors of a media",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "negate"),
	})
	register(&FilterCommand{
		name:        "flip",
		description: "Flip a media vertically",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "vflip"),
	})
	register(&FilterCommand{
		name:        "flop",
		description: "Flip a media horizontally",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "hflip"),
	})
	register(&FilterCommand{
		name:        "haah",
		description: "Mirror the left half onto the right",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "crop=iw/2:ih:0:0,split[left][tmp];[tmp]hflip[right];[left][right]hstack"),
	})
	register(&FilterCommand{
		name:        "waaw",
		description: "Mirror the right half onto the left",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "crop=iw/2:ih:iw/2:0,split[right][tmp];[tmp]hflip[left];[left][right]hstack"),
	})
	register(&FilterCommand{
		name:        "woow",
		description: "Mirror the top half onto the bottom",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "crop=iw:ih/2:0:0,split[top][tmp];[tmp]vflip[bottom];[top][bottom]vstack"),
	})
	register(&FilterCommand{
		name:        "hooh",
		description: "Mirror the bottom half onto the top",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "crop=iw:ih/2:0:ih/2,split[bottom][tmp];[tmp]vflip[top];[top][bottom]vstack"),
	})
	register(&FilterCommand{
		name:        "reverse",
		description: "Play a media backwards",
		policy:      scripttypes.PolicyAbort,
		build:       static("-vf", "reverse", "-af", "areverse"),
	})
}
