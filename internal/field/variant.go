package field

import (
	"errors"
	"strings"
)

// Variant selects how many fields a deployment exposes.
type Variant uint8

const (
	// Basic exposes HeatDots through Feed.
	Basic Variant = iota
	// Extended adds charset, code page, the print trigger and the mesh identity strings.
	Extended
)

// ErrUnknownVariant is returned by ParseVariant for anything but "basic" or "extended".
var ErrUnknownVariant = errors.New("unknown field variant")

// basicCount is the number of fields of the basic variant.
const basicCount = int(Feed) + 1

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return Basic, nil
	case "extended", "":
		return Extended, nil
	default:
		return Basic, ErrUnknownVariant
	}
}

// Len returns the number of fields exposed by v.
func (v Variant) Len() int {
	if v == Basic {
		return basicCount
	}

	return int(Count)
}

// Contains reports whether f is exposed by v.
func (v Variant) Contains(f Field) bool {
	return int(f) < v.Len()
}

// Fields returns the descriptors exposed by v, in enumeration order.
func (v Variant) Fields() []Descriptor {
	return All()[:v.Len()]
}

func (v Variant) String() string {
	if v == Basic {
		return "basic"
	}

	return "extended"
}
