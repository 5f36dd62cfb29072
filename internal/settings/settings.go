// Package settings implements the in-memory printer settings record and its slot accessors.
package settings

import (
	"bytes"
	"strconv"

	"github.com/bontastic/printerctl/internal/field"
)

// Text is a bounded byte string. It never contains a NUL byte.
type Text string

// Settings is the current value of every printer setting.
type Settings struct {
	HeatDots     uint8
	HeatTime     uint8
	HeatInterval uint8
	Density      uint8
	BreakTime    uint8
	LineHeight   uint8
	Font         uint8
	Size         uint8
	Justify      uint8
	Decorations  uint8
	FeedRows     uint8
	Charset      uint8
	CodePage     uint8
	MeshName     Text
	MeshPin      Text
}

// Defaults returns the compiled-in settings.
func Defaults() Settings {
	return Settings{
		HeatDots:     11,
		HeatTime:     120,
		HeatInterval: 40,
		Density:      10,
		BreakTime:    2,
		LineHeight:   30,
		Charset:      2,
		CodePage:     23,
		MeshName:     "MO1_1dfd",
		MeshPin:      "123456",
	}
}

var numericSlots = [field.Count]func(*Settings) *uint8{
	field.HeatDots:      func(s *Settings) *uint8 { return &s.HeatDots },
	field.HeatTime:      func(s *Settings) *uint8 { return &s.HeatTime },
	field.HeatInterval:  func(s *Settings) *uint8 { return &s.HeatInterval },
	field.Density:       func(s *Settings) *uint8 { return &s.Density },
	field.BreakTime:     func(s *Settings) *uint8 { return &s.BreakTime },
	field.LineHeight:    func(s *Settings) *uint8 { return &s.LineHeight },
	field.FontSelect:    func(s *Settings) *uint8 { return &s.Font },
	field.SizeSelect:    func(s *Settings) *uint8 { return &s.Size },
	field.JustifySelect: func(s *Settings) *uint8 { return &s.Justify },
	field.Decorations:   func(s *Settings) *uint8 { return &s.Decorations },
	field.Feed:          func(s *Settings) *uint8 { return &s.FeedRows },
	field.Charset:       func(s *Settings) *uint8 { return &s.Charset },
	field.CodePage:      func(s *Settings) *uint8 { return &s.CodePage },
}

var textSlots = [field.Count]func(*Settings) *Text{
	field.MeshName: func(s *Settings) *Text { return &s.MeshName },
	field.MeshPin:  func(s *Settings) *Text { return &s.MeshPin },
}

// Numeric returns the slot of a numeric field.
// The boolean is false for unknown fields and fields that are not numeric.
func Numeric(s *Settings, f field.Field) (*uint8, bool) {
	if s == nil || f >= field.Count || numericSlots[f] == nil {
		return nil, false
	}

	return numericSlots[f](s), true
}

// TextSlot returns the slot of a text field.
// The boolean is false for unknown fields and fields that are not text.
func TextSlot(s *Settings, f field.Field) (*Text, bool) {
	if s == nil || f >= field.Count || textSlots[f] == nil {
		return nil, false
	}

	return textSlots[f](s), true
}

// Bound copies payload into a Text of the given buffer capacity.
// Copying stops at the first NUL byte and keeps at most capacity-1 bytes.
func Bound(payload []byte, capacity int) Text {
	if capacity <= 1 {
		return ""
	}

	if i := bytes.IndexByte(payload, 0); i >= 0 {
		payload = payload[:i]
	}

	if len(payload) > capacity-1 {
		payload = payload[:capacity-1]
	}

	return Text(payload)
}

// Encode returns the readable representation of f:
// decimal ASCII for numeric fields, raw bytes for text fields.
// The boolean is false if f has no slot.
func Encode(s *Settings, f field.Field) ([]byte, bool) {
	if p, ok := Numeric(s, f); ok {
		return strconv.AppendUint(nil, uint64(*p), 10), true
	}

	if p, ok := TextSlot(s, f); ok {
		return []byte(*p), true
	}

	return nil, false
}
