// Package scripttypes defines the shared data types of the iscript interpreter.
// This file contains the tagged value stored in the variable environment.
package scripttypes

import (
	"strconv"
)

// ValueKind distinguishes numeric values from pass-through strings.
type ValueKind int

const (
	// KindString marks a value that could not be evaluated as a number
	KindString ValueKind = iota
	// KindNumber marks a numeric value
	KindNumber
)

// String returns a human-readable representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a variable value: either a number or a string.
// The zero value is the empty string.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number creates a numeric Value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// String creates a string Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Float returns the numeric form of the value. Strings that parse as
// floats are accepted, anything else reports false.
func (v Value) Float() (float64, bool) {
	if v.Kind == KindNumber {
		return v.Num, true
	}
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String formats the value the way it is spliced into filter arguments.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return FormatNumber(v.Num)
	}
	return v.Str
}

// FormatNumber renders a float with the shortest exact representation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
