// Package parser splits iscript source into lines and lines into fields.
package parser

import (
	"strings"
	"unicode"
)

// Line is one executable script line.
type Line struct {
	// Number is the 1-based line number in the script
	Number int
	// Text is the raw line without the line terminator
	Text string
	// Name is the first whitespace-delimited token, before alias resolution
	Name string
}

// Lines returns the executable lines of a script: blank lines and lines
// starting with '#' in the first column are dropped. CRLF endings are
// accepted.
func Lines(script string) []Line {
	var lines []Line
	for i, raw := range strings.Split(script, "\n") {
		text := strings.TrimRight(raw, "\r")
		if IsSkippable(text) {
			continue
		}
		lines = append(lines, Line{
			Number: i + 1,
			Text:   text,
			Name:   Fields(text)[0],
		})
	}
	return lines
}

// IsSkippable reports whether a line carries no command. Only a '#' in the
// first column starts a comment; an indented '#' is parsed as a command name.
func IsSkippable(text string) bool {
	return strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#")
}

// Fields splits on runs of whitespace.
func Fields(text string) []string {
	return strings.Fields(text)
}

// SplitN splits text on runs of whitespace into at most maxSplit+1 fields.
// Leading whitespace is ignored; the final field keeps the rest of the line
// verbatim, inner and trailing whitespace included. A negative maxSplit
// splits everywhere.
func SplitN(text string, maxSplit int) []string {
	if maxSplit < 0 {
		return strings.Fields(text)
	}

	var fields []string
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	for rest != "" {
		if len(fields) == maxSplit {
			fields = append(fields, rest)
			break
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			fields = append(fields, rest)
			break
		}
		fields = append(fields, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	return fields
}
