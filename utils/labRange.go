package utils

import (
	"strconv"
	"strings"
)

// ReferenceKind tells how a lab reference string constrains a value.
type ReferenceKind int

const (
	ReferenceNone    ReferenceKind = iota // non-numeric, e.g. "Negative"
	ReferenceRange                        // "min-max", bounds inclusive
	ReferenceBelow                        // "<max"
	ReferenceAbove                        // ">min"
)

// Reference is a parsed lab reference.
type Reference struct {
	Kind ReferenceKind
	Min  float64
	Max  float64
}

// ParseReference parses "min-max", "<max" and ">min". Anything else yields
// ReferenceNone.
func ParseReference(ref string) Reference {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), " ", "")
	if ref == "" {
		return Reference{}
	}

	switch ref[0] {
	case '<':
		if max, err := strconv.ParseFloat(ref[1:], 64); err == nil {
			return Reference{Kind: ReferenceBelow, Max: max}
		}
		return Reference{}
	case '>':
		if min, err := strconv.ParseFloat(ref[1:], 64); err == nil {
			return Reference{Kind: ReferenceAbove, Min: min}
		}
		return Reference{}
	}

	// Skip a leading sign so "-5-5" splits at the second dash.
	idx := strings.Index(ref[1:], "-")
	if idx < 0 {
		return Reference{}
	}
	idx++
	min, errMin := strconv.ParseFloat(ref[:idx], 64)
	max, errMax := strconv.ParseFloat(ref[idx+1:], 64)
	if errMin != nil || errMax != nil {
		return Reference{}
	}
	return Reference{Kind: ReferenceRange, Min: min, Max: max}
}

// IsOutOfRange reports whether value falls outside reference. Non-numeric
// values and references are never flagged.
func IsOutOfRange(value, reference string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}

	ref := ParseReference(reference)
	switch ref.Kind {
	case ReferenceRange:
		return v < ref.Min || v > ref.Max
	case ReferenceBelow:
		return v >= ref.Max
	case ReferenceAbove:
		return v <= ref.Min
	}
	return false
}
