package printer

import (
	"io"
	"sync"
)

const (
	esc = 0x1B
	gs  = 0x1D
	dc2 = 0x12
)

// Print mode bits of ESC !.
const (
	modeFontB       byte = 1 << 0
	modeInverse     byte = 1 << 1
	modeBold        byte = 1 << 3
	modeDoubleWidth byte = 1 << 5
	modeStrike      byte = 1 << 6
)

// Character size values of GS !.
var sizeBytes = [...]byte{SizeSmall: 0x00, SizeMedium: 0x01, SizeLarge: 0x11}

const (
	maxCharset   = 15
	maxCodePage  = 47
	minLineDots  = 24
	maxBreakTime = 7
	maxDensity   = 31
)

// Thermal writes printer command bytes to w. It tracks the print mode byte so
// independent toggles do not clear each other.
type Thermal struct {
	mu   sync.Mutex
	w    io.Writer
	mode byte
}

// NewThermal returns a driver writing to w.
func NewThermal(w io.Writer) *Thermal {
	return &Thermal{w: w}
}

func (t *Thermal) write(b ...byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.w.Write(b)

	return err //nolint:wrapcheck
}

// setMode sets or clears mask and sends the whole mode byte.
func (t *Thermal) setMode(mask byte, on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if on {
		t.mode |= mask
	} else {
		t.mode &^= mask
	}

	_, err := t.w.Write([]byte{esc, '!', t.mode})

	return err //nolint:wrapcheck
}

// SetHeatConfig sends ESC 7: heating dots (units of 8), heating time and interval (units of 10us).
func (t *Thermal) SetHeatConfig(dots, heatTime, interval uint8) error {
	return t.write(esc, '7', dots, heatTime, interval)
}

// SetPrintDensity sends DC2 #, density in the low five bits and break time in the high three.
func (t *Thermal) SetPrintDensity(density, breakTime uint8) error {
	return t.write(dc2, '#', min(breakTime, maxBreakTime)<<5|min(density, maxDensity))
}

// SetLineHeight sends ESC 3. The printer needs at least 24 dots.
func (t *Thermal) SetLineHeight(dots uint8) error {
	return t.write(esc, '3', max(dots, minLineDots))
}

// SetCharset sends ESC R.
func (t *Thermal) SetCharset(n uint8) error {
	return t.write(esc, 'R', min(n, maxCharset))
}

// SetCodePage sends ESC t.
func (t *Thermal) SetCodePage(n uint8) error {
	return t.write(esc, 't', min(n, maxCodePage))
}

// SetFont selects font A or B.
func (t *Thermal) SetFont(f Font) error {
	return t.setMode(modeFontB, f == FontB)
}

// SetSize sends GS !.
func (t *Thermal) SetSize(s Size) error {
	if int(s) >= len(sizeBytes) {
		s = SizeLarge
	}

	return t.write(gs, '!', sizeBytes[s])
}

// Justify sends ESC a.
func (t *Thermal) Justify(j Justification) error {
	return t.write(esc, 'a', byte(min(j, Right)))
}

// Bold toggles emphasized printing.
func (t *Thermal) Bold(on bool) error {
	return t.setMode(modeBold, on)
}

// Inverse toggles white on black printing.
func (t *Thermal) Inverse(on bool) error {
	return t.setMode(modeInverse, on)
}

// Strike toggles strike-through.
func (t *Thermal) Strike(on bool) error {
	return t.setMode(modeStrike, on)
}

// DoubleWidth toggles double width characters.
func (t *Thermal) DoubleWidth(on bool) error {
	return t.setMode(modeDoubleWidth, on)
}

// Feed advances the paper by rows lines with ESC d.
func (t *Thermal) Feed(rows uint8) error {
	return t.write(esc, 'd', rows)
}

// Print sends raw text.
func (t *Thermal) Print(text []byte) error {
	if len(text) == 0 {
		return nil
	}

	return t.write(text...)
}

// Println sends text and a line feed.
func (t *Thermal) Println(text []byte) error {
	line := make([]byte, 0, len(text)+1)
	line = append(line, text...)

	return t.write(append(line, '\n')...)
}

// Reset sends ESC @ and forgets the print mode.
func (t *Thermal) Reset() error {
	t.mu.Lock()
	t.mode = 0
	t.mu.Unlock()

	return t.write(esc, '@')
}
