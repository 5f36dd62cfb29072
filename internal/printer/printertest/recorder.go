// Package printertest provides a printer.Driver that records every call.
package printertest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bontastic/printerctl/internal/printer"
)

// Recorder implements printer.Driver by recording calls as text, e.g. "Feed(2)".
// Err, when set, is returned by every call after it has been recorded.
type Recorder struct {
	mu    sync.Mutex
	calls []string
	Err   error
}

var _ printer.Driver = (*Recorder)(nil)

func (r *Recorder) record(format string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, fmt.Sprintf(format, args...))

	return r.Err
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0

	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}

	return n
}

// Reset records a printer reset. Use Clear to forget recorded calls.
func (r *Recorder) Reset() error {
	return r.record("Reset()")
}

// Clear forgets the recorded calls.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = nil
}

func (r *Recorder) SetHeatConfig(dots, heatTime, interval uint8) error { //nolint:revive
	return r.record("SetHeatConfig(%d,%d,%d)", dots, heatTime, interval)
}

func (r *Recorder) SetPrintDensity(density, breakTime uint8) error { //nolint:revive
	return r.record("SetPrintDensity(%d,%d)", density, breakTime)
}

func (r *Recorder) SetLineHeight(dots uint8) error { //nolint:revive
	return r.record("SetLineHeight(%d)", dots)
}

func (r *Recorder) SetCharset(n uint8) error { //nolint:revive
	return r.record("SetCharset(%d)", n)
}

func (r *Recorder) SetCodePage(n uint8) error { //nolint:revive
	return r.record("SetCodePage(%d)", n)
}

func (r *Recorder) SetFont(f printer.Font) error { //nolint:revive
	return r.record("SetFont(%s)", f)
}

func (r *Recorder) SetSize(s printer.Size) error { //nolint:revive
	return r.record("SetSize(%s)", s)
}

func (r *Recorder) Justify(j printer.Justification) error { //nolint:revive
	return r.record("Justify(%s)", j)
}

func (r *Recorder) Bold(on bool) error { //nolint:revive
	return r.record("Bold(%t)", on)
}

func (r *Recorder) Inverse(on bool) error { //nolint:revive
	return r.record("Inverse(%t)", on)
}

func (r *Recorder) Strike(on bool) error { //nolint:revive
	return r.record("Strike(%t)", on)
}

func (r *Recorder) DoubleWidth(on bool) error { //nolint:revive
	return r.record("DoubleWidth(%t)", on)
}

func (r *Recorder) Feed(rows uint8) error { //nolint:revive
	return r.record("Feed(%d)", rows)
}

func (r *Recorder) Print(text []byte) error { //nolint:revive
	return r.record("Print(%q)", text)
}

func (r *Recorder) Println(text []byte) error { //nolint:revive
	return r.record("Println(%q)", text)
}
