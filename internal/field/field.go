// Package field holds the static descriptor table of every remotely addressable printer setting.
//
// The table is plain data indexed by Field. It has no dependencies and is safe for concurrent use.
package field

import (
	"strconv"
	"strings"
)

// Field identifies one remotely addressable setting or trigger.
type Field uint8

// Field enumeration. The order is part of the wire contract: it defines the characteristic
// UUID of each field and the split between the basic and the extended variant.
const (
	HeatDots Field = iota
	HeatTime
	HeatInterval
	Density
	BreakTime
	LineHeight
	FontSelect
	SizeSelect
	JustifySelect
	Decorations
	Feed
	Charset
	CodePage
	PrintText
	MeshName
	MeshPin

	// Count is the number of fields of the extended variant.
	Count
)

// Kind tells which kind of slot backs a field.
type Kind uint8

const (
	// Numeric fields hold one clamped unsigned byte.
	Numeric Kind = iota
	// Text fields hold a bounded byte string.
	Text
	// Trigger fields have no slot at all.
	Trigger
)

// Range is the inclusive clamp range of a numeric field.
type Range struct {
	Min uint8
	Max uint8
}

// Descriptor is the metadata of one field.
type Descriptor struct {
	Field Field
	Label string
	Key   string // persistence key, empty if the field is never persisted
	Kind  Kind
	Range Range // numeric fields only
	// Capacity is the text buffer size including the terminator, text fields only.
	Capacity int
}

// Persisted reports whether the field has a persistence key.
func (d Descriptor) Persisted() bool {
	return d.Key != ""
}

// HasSlot reports whether the field is backed by a stored value.
func (d Descriptor) HasSlot() bool {
	return d.Kind != Trigger
}

// MaxLen is the maximum number of visible bytes a text field can hold.
func (d Descriptor) MaxLen() int {
	if d.Kind != Text || d.Capacity == 0 {
		return 0
	}

	return d.Capacity - 1
}

var table = [Count]Descriptor{
	HeatDots:      {Field: HeatDots, Label: "HEAT_DOTS", Key: "heatDots", Kind: Numeric, Range: Range{0, 15}},
	HeatTime:      {Field: HeatTime, Label: "HEAT_TIME", Key: "heatTime", Kind: Numeric, Range: Range{0, 255}},
	HeatInterval:  {Field: HeatInterval, Label: "HEAT_INTERVAL", Key: "heatInterval", Kind: Numeric, Range: Range{0, 255}},
	Density:       {Field: Density, Label: "DENSITY", Key: "density", Kind: Numeric, Range: Range{0, 31}},
	BreakTime:     {Field: BreakTime, Label: "BREAK", Key: "breakTime", Kind: Numeric, Range: Range{0, 7}},
	LineHeight:    {Field: LineHeight, Label: "LINE_HEIGHT", Key: "lineHeight", Kind: Numeric, Range: Range{24, 64}},
	FontSelect:    {Field: FontSelect, Label: "FONT", Key: "font", Kind: Numeric, Range: Range{0, 1}},
	SizeSelect:    {Field: SizeSelect, Label: "SIZE", Key: "size", Kind: Numeric, Range: Range{0, 2}},
	JustifySelect: {Field: JustifySelect, Label: "JUSTIFY", Key: "justify", Kind: Numeric, Range: Range{0, 2}},
	Decorations:   {Field: Decorations, Label: "DECOR", Key: "decorations", Kind: Numeric, Range: Range{0, 15}},
	Feed:          {Field: Feed, Label: "FEED", Kind: Numeric, Range: Range{0, 50}},
	Charset:       {Field: Charset, Label: "CHARSET", Key: "charset", Kind: Numeric, Range: Range{0, 15}},
	CodePage:      {Field: CodePage, Label: "CODEPAGE", Key: "codePage", Kind: Numeric, Range: Range{0, 47}},
	PrintText:     {Field: PrintText, Label: "PRINT", Kind: Trigger},
	MeshName:      {Field: MeshName, Label: "MESH_NAME", Key: "meshName", Kind: Text, Capacity: 32},
	MeshPin:       {Field: MeshPin, Label: "MESH_PIN", Key: "meshPin", Kind: Text, Capacity: 16},
}

// Lookup returns the descriptor of f. The boolean is false for any index outside the enumeration.
func Lookup(f Field) (Descriptor, bool) {
	if f >= Count {
		return Descriptor{}, false
	}

	return table[f], true
}

// Clamp restricts v to the range of f. Fields without a numeric range clamp to zero.
func Clamp(f Field, v int) uint8 {
	d, ok := Lookup(f)
	if !ok || d.Kind != Numeric {
		return 0
	}

	switch {
	case v < int(d.Range.Min):
		return d.Range.Min
	case v > int(d.Range.Max):
		return d.Range.Max
	default:
		return uint8(v) //nolint:gosec // bounded by the range above
	}
}

// All returns the descriptors of every field, in enumeration order.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table[:])

	return out
}

// ByName resolves a label, a persistence key (both case-insensitive) or a decimal index.
func ByName(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n >= int(Count) {
			return 0, false
		}

		return Field(n), true
	}

	for _, d := range table {
		if strings.EqualFold(d.Label, name) || (d.Key != "" && strings.EqualFold(d.Key, name)) {
			return d.Field, true
		}
	}

	return 0, false
}

// String returns the label of f.
func (f Field) String() string {
	if d, ok := Lookup(f); ok {
		return d.Label
	}

	return "FIELD(" + strconv.Itoa(int(f)) + ")"
}
