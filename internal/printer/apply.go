package printer

import (
	"errors"

	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/settings"
)

// Decoration bits of the decorations setting.
const (
	DecorBold        = 1 << 0
	DecorInverse     = 1 << 1
	DecorStrike      = 1 << 2
	DecorDoubleWidth = 1 << 3
)

// Apply sends the whole record to d in a fixed order. Every toggle is sent explicitly
// on or off, so applying the same record twice leaves the printer in the same state.
// Charset and code page are only sent for the extended variant. All calls are issued
// even if some fail; the failures are joined.
func Apply(d Driver, s settings.Settings, v field.Variant) error {
	errs := []error{
		d.SetHeatConfig(s.HeatDots, s.HeatTime, s.HeatInterval),
		d.SetPrintDensity(s.Density, s.BreakTime),
		d.SetLineHeight(s.LineHeight),
	}

	if v.Contains(field.CodePage) {
		errs = append(errs,
			d.SetCharset(s.Charset),
			d.SetCodePage(s.CodePage),
		)
	}

	errs = append(errs,
		d.SetFont(FontOf(s.Font)),
		d.SetSize(SizeOf(s.Size)),
		d.Justify(JustificationOf(s.Justify)),
		d.Bold(s.Decorations&DecorBold != 0),
		d.Inverse(s.Decorations&DecorInverse != 0),
		d.Strike(s.Decorations&DecorStrike != 0),
		d.DoubleWidth(s.Decorations&DecorDoubleWidth != 0),
	)

	return errors.Join(errs...)
}
