package persist

import (
	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/settings"
)

// Store is the key/value surface the Adapter needs. *Prefs implements it.
type Store interface {
	Available() bool
	GetUint8(key string, def uint8) uint8
	PutUint8(key string, v uint8)
	GetString(key, def string, maxLen int) string
	PutString(key, v string)
}

// Adapter loads the whole record at boot and writes single fields through on change.
type Adapter struct {
	store    Store
	degraded bool
}

// NewAdapter returns an adapter over store. A nil store behaves as permanently unavailable.
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Degraded reports whether the last Load ran without a store.
func (a *Adapter) Degraded() bool {
	return a.degraded
}

// Load resets s to the compiled defaults and overlays every persisted field.
// Numeric values are clamped on the way in, text is bounded to its capacity.
func (a *Adapter) Load(s *settings.Settings) {
	if s == nil {
		return
	}

	*s = settings.Defaults()
	defaults := settings.Defaults()

	if a.store == nil || !a.store.Available() {
		a.degraded = true

		log.Warn().Msg("settings store unavailable, using defaults")

		return
	}

	a.degraded = false

	for _, d := range field.All() {
		if !d.Persisted() {
			continue
		}

		switch d.Kind {
		case field.Numeric:
			p, _ := settings.Numeric(s, d.Field)
			*p = field.Clamp(d.Field, int(a.store.GetUint8(d.Key, *p)))
		case field.Text:
			p, _ := settings.TextSlot(s, d.Field)
			def, _ := settings.TextSlot(&defaults, d.Field)
			*p = settings.Bound([]byte(a.store.GetString(d.Key, string(*def), d.MaxLen())), d.Capacity)
		case field.Trigger:
		}
	}

	log.Debug().Msg("settings loaded")
}

// PersistField writes the current value of f. Unknown and unpersisted fields are ignored.
// It reports whether a write was issued.
func (a *Adapter) PersistField(s *settings.Settings, f field.Field) bool {
	d, ok := field.Lookup(f)
	if !ok || !d.Persisted() || s == nil || a.store == nil || !a.store.Available() {
		return false
	}

	if p, ok := settings.Numeric(s, f); ok {
		a.store.PutUint8(d.Key, *p)

		return true
	}

	if p, ok := settings.TextSlot(s, f); ok {
		a.store.PutString(d.Key, string(*p))

		return true
	}

	return false
}
