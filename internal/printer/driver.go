// Package printer drives an Adafruit style serial thermal printer and applies the settings record to it.
package printer

// Font is the printer character font.
type Font uint8

// Fonts.
const (
	FontA Font = iota
	FontB
)

// Size is the character size.
type Size uint8

// Sizes.
const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Justification is the line alignment.
type Justification uint8

// Justifications.
const (
	Left Justification = iota
	Center
	Right
)

// Driver is the set of printer operations the settings engine consumes.
type Driver interface {
	SetHeatConfig(dots, heatTime, interval uint8) error
	SetPrintDensity(density, breakTime uint8) error
	SetLineHeight(dots uint8) error
	SetCharset(n uint8) error
	SetCodePage(n uint8) error
	SetFont(f Font) error
	SetSize(s Size) error
	Justify(j Justification) error
	Bold(on bool) error
	Inverse(on bool) error
	Strike(on bool) error
	DoubleWidth(on bool) error
	Feed(rows uint8) error
	Print(text []byte) error
	Println(text []byte) error
	Reset() error
}

// FontOf maps the font setting to a Font. Anything but 0 selects font B.
func FontOf(v uint8) Font {
	if v != 0 {
		return FontB
	}

	return FontA
}

// SizeOf maps the size setting to a Size.
func SizeOf(v uint8) Size {
	switch v {
	case 0:
		return SizeSmall
	case 1:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// JustificationOf maps the justify setting to a Justification.
func JustificationOf(v uint8) Justification {
	switch v {
	case 0:
		return Left
	case 1:
		return Center
	default:
		return Right
	}
}

func (f Font) String() string {
	if f == FontB {
		return "B"
	}

	return "A"
}

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "S"
	case SizeMedium:
		return "M"
	default:
		return "L"
	}
}

func (j Justification) String() string {
	switch j {
	case Left:
		return "L"
	case Center:
		return "C"
	default:
		return "R"
	}
}
