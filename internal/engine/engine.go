// Package engine keeps the printer settings record, the readable value of every field
// and the printer in step.
//
// Every transport (BLE, MQTT, HTTP) calls HandleRead and HandleWrite. A write is one
// atomic unit: parse, clamp, store, notify, apply to the printer and persist happen
// under a single lock, so the printer never sees a half updated record.
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/printer"
	"github.com/bontastic/printerctl/internal/settings"
	"github.com/bontastic/printerctl/internal/transcode"
)

// printFeedRows is the feed after every printed text.
const printFeedRows = 2

// Persister loads the record at boot and writes single fields through.
type Persister interface {
	Load(s *settings.Settings)
	PersistField(s *settings.Settings, f field.Field) bool
}

// Listener receives the readable value of a field whenever the engine refreshes it.
// notify tells whether subscribers must be told about the change.
type Listener interface {
	Refresh(f field.Field, value []byte, notify bool)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(f field.Field, value []byte, notify bool)

// Refresh implements Listener.
func (fn ListenerFunc) Refresh(f field.Field, value []byte, notify bool) {
	fn(f, value, notify)
}

// Options tune the engine.
type Options struct {
	// Variant limits the addressable fields. Fields outside it are unknown.
	Variant field.Variant
	// Placeholder is the readable value of fields without a slot.
	Placeholder []byte
	// EchoChanges prints every accepted change on paper.
	EchoChanges bool
	// Banner prints the boot banner in Boot.
	Banner bool
	// Metrics defaults to unregistered counters.
	Metrics *Metrics
}

// Engine is the field synchronization engine.
type Engine struct {
	mu        sync.Mutex
	opts      Options
	store     settings.Settings
	cache     [field.Count][]byte
	driver    printer.Driver
	persister Persister
	listeners []Listener
	metrics   *Metrics
}

// New returns an engine holding the compiled defaults. Call Boot before serving transports.
func New(d printer.Driver, p Persister, opts Options, listeners ...Listener) *Engine {
	m := opts.Metrics
	if m == nil {
		m = NewMetrics(nil)
	}

	return &Engine{
		opts:      opts,
		store:     settings.Defaults(),
		driver:    d,
		persister: p,
		listeners: listeners,
		metrics:   m,
	}
}

// AddListener registers l for all following refreshes.
func (e *Engine) AddListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = append(e.listeners, l)
}

// Variant returns the active field variant.
func (e *Engine) Variant() field.Variant {
	return e.opts.Variant
}

// Settings returns a copy of the current record.
func (e *Engine) Settings() settings.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store
}

// Boot loads the persisted record, prints the banner if enabled, applies the record
// to the printer and publishes every readable value without notifying.
func (e *Engine) Boot() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.persister != nil {
		e.persister.Load(&e.store)
	}

	if e.opts.Banner {
		if err := printer.Banner(e.driver); err != nil {
			log.Error().Err(err).Msg("boot banner failed")
		}
	}

	e.apply()

	for _, d := range e.opts.Variant.Fields() {
		e.refresh(d.Field, false)
	}

	log.Info().Str("variant", e.opts.Variant.String()).Int("fields", e.opts.Variant.Len()).Msg("settings engine ready")
}

// HandleRead returns the readable value of f and caches it. It never notifies and never
// changes the record. Unknown fields return nil.
func (e *Engine) HandleRead(f field.Field) []byte {
	if _, ok := e.lookup(f); !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.encode(f)
	e.cache[f] = v

	return clone(v)
}

// HandleWrite applies a remote write of payload to f.
//
// Empty payloads and unknown fields are ignored. The print trigger prints the payload.
// Text fields always store, notify and persist. Numeric fields are parsed, clamped and
// only stored, notified, applied and persisted when the value changes; the feed field
// feeds the paper and falls back to zero.
func (e *Engine) HandleWrite(f field.Field, payload []byte) {
	if len(payload) == 0 {
		return
	}

	d, ok := e.lookup(f)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch d.Kind {
	case field.Trigger:
		e.printText(payload)
		e.metrics.write(f, OutcomePrinted)
	case field.Text:
		e.writeText(d, payload)
		e.metrics.write(f, OutcomeStored)
	case field.Numeric:
		e.metrics.write(f, e.writeNumeric(d, parseDecimal(payload)))
	}
}

func (e *Engine) lookup(f field.Field) (field.Descriptor, bool) {
	d, ok := field.Lookup(f)
	if !ok || !e.opts.Variant.Contains(f) {
		return field.Descriptor{}, false
	}

	return d, true
}

func (e *Engine) printText(payload []byte) {
	text := transcode.ToLatin1(payload)

	if err := e.driver.Println(text); err != nil {
		log.Error().Err(err).Msg("print text failed")
	}

	if err := e.driver.Feed(printFeedRows); err != nil {
		log.Error().Err(err).Msg("feed after print failed")
	}

	log.Debug().Int("bytes", len(text)).Msg("text printed")
}

func (e *Engine) writeText(d field.Descriptor, payload []byte) {
	slot, ok := settings.TextSlot(&e.store, d.Field)
	if !ok {
		return
	}

	*slot = settings.Bound(payload, d.Capacity)

	e.refresh(d.Field, true)
	e.persist(d.Field)
	e.logChange(d, string(*slot))
}

func (e *Engine) writeNumeric(d field.Descriptor, value int) string {
	slot, ok := settings.Numeric(&e.store, d.Field)
	if !ok {
		return OutcomeEcho
	}

	v := field.Clamp(d.Field, value)

	if d.Field == field.Feed {
		return e.feed(d, slot, v)
	}

	if *slot == v {
		e.refresh(d.Field, false)

		return OutcomeEcho
	}

	*slot = v

	e.refresh(d.Field, true)
	e.apply()
	e.persist(d.Field)
	e.logChange(d, string(e.cache[d.Field]))

	return OutcomeStored
}

// feed publishes the requested rows, feeds the paper and falls back to zero.
func (e *Engine) feed(d field.Descriptor, slot *uint8, rows uint8) string {
	*slot = rows

	if rows == 0 {
		e.refresh(d.Field, false)
		e.logChange(d, "0")

		return OutcomeEcho
	}

	e.refresh(d.Field, true)
	e.logChange(d, string(e.cache[d.Field]))

	if err := e.driver.Feed(rows); err != nil {
		log.Error().Err(err).Uint8("rows", rows).Msg("feed failed")
	}

	*slot = 0
	e.refresh(d.Field, true)

	return OutcomeFed
}

func (e *Engine) apply() {
	if err := printer.Apply(e.driver, e.store, e.opts.Variant); err != nil {
		log.Error().Err(err).Msg("apply printer config failed")
	}
}

func (e *Engine) persist(f field.Field) {
	if e.persister != nil && e.persister.PersistField(&e.store, f) {
		e.metrics.persisted(f)
	}
}

// refresh caches the readable value of f and hands it to every listener.
func (e *Engine) refresh(f field.Field, notify bool) {
	v := e.encode(f)
	e.cache[f] = v

	for _, l := range e.listeners {
		l.Refresh(f, clone(v), notify)
	}

	if notify {
		e.metrics.notified(f)
	}
}

func (e *Engine) encode(f field.Field) []byte {
	if v, ok := settings.Encode(&e.store, f); ok {
		return v
	}

	return clone(e.opts.Placeholder)
}

func (e *Engine) logChange(d field.Descriptor, value string) {
	log.Info().Str("field", d.Label).Str("value", value).Msg("setting changed")

	if !e.opts.EchoChanges {
		return
	}

	if err := printer.Info(e.driver, d.Label, value); err != nil {
		log.Error().Err(err).Str("field", d.Label).Msg("echo change failed")
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	return append([]byte(nil), b...)
}
