// Package persist keeps the printer settings across restarts.
//
// Prefs is a small key/value namespace on top of the settings table. Adapter maps
// the field table onto it. Storage failures never reach the caller: they are logged
// and the in-memory value stays authoritative.
package persist

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/bontastic/printerctl/internal/db/controller/setting"
	"github.com/bontastic/printerctl/internal/db/models"
)

// ErrUnavailable is returned by the maintenance calls when the database cannot be opened.
var ErrUnavailable = errors.New("preferences unavailable")

// Opener connects to the backing database.
type Opener func() (*gorm.DB, error)

// Prefs is one persisted namespace. The database is opened on first use and every
// call re-checks availability, so a store that comes up late is picked up.
type Prefs struct {
	namespace string
	open      Opener

	mu sync.Mutex
	db *gorm.DB
}

// NewPrefs returns the namespace without touching the database.
func NewPrefs(namespace string, open Opener) *Prefs {
	return &Prefs{namespace: namespace, open: open}
}

// Namespace returns the namespace name.
func (p *Prefs) Namespace() string {
	return p.namespace
}

// ensure returns an open, migrated database or nil.
func (p *Prefs) ensure() *gorm.DB {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db
	}

	if p.open == nil {
		return nil
	}

	db, err := p.open()
	if err != nil {
		log.Debug().Err(err).Str("namespace", p.namespace).Msg("preferences unavailable")

		return nil
	}

	if err = db.AutoMigrate(&models.Setting{}); err != nil {
		log.Debug().Err(err).Str("namespace", p.namespace).Msg("preferences migration failed")

		return nil
	}

	p.db = db

	return db
}

// Available reports whether the namespace can be opened right now.
func (p *Prefs) Available() bool {
	return p.ensure() != nil
}

// GetUint8 returns the byte stored under key, or def if missing, unreadable or not a single byte.
func (p *Prefs) GetUint8(key string, def uint8) uint8 {
	v, ok := p.get(key)
	if !ok || len(v) != 1 {
		return def
	}

	return v[0]
}

// PutUint8 stores one byte under key.
func (p *Prefs) PutUint8(key string, v uint8) {
	p.put(key, []byte{v})
}

// GetString returns at most maxLen bytes stored under key, or def if missing or unreadable.
func (p *Prefs) GetString(key, def string, maxLen int) string {
	v, ok := p.get(key)
	if !ok {
		return def
	}

	if maxLen >= 0 && len(v) > maxLen {
		v = v[:maxLen]
	}

	return string(v)
}

// PutString stores v under key.
func (p *Prefs) PutString(key, v string) {
	p.put(key, []byte(v))
}

// Entries returns every stored entry of the namespace, ordered by key.
func (p *Prefs) Entries() ([]models.Setting, error) {
	db := p.ensure()
	if db == nil {
		return nil, ErrUnavailable
	}

	return setting.GetAll(db, p.namespace) //nolint:wrapcheck
}

// Remove deletes one stored key. The next boot falls back to its compiled default.
func (p *Prefs) Remove(key string) error {
	db := p.ensure()
	if db == nil {
		return ErrUnavailable
	}

	return setting.Delete(db, p.namespace, key) //nolint:wrapcheck
}

// Clear deletes the whole namespace and returns the number of removed keys.
func (p *Prefs) Clear() (int64, error) {
	db := p.ensure()
	if db == nil {
		return 0, ErrUnavailable
	}

	return setting.Clear(db, p.namespace) //nolint:wrapcheck
}

// Close releases the database connection. The namespace reopens on the next call.
func (p *Prefs) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return
	}

	if sqlDB, err := p.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	p.db = nil
}

func (p *Prefs) get(key string) ([]byte, bool) {
	db := p.ensure()
	if db == nil {
		return nil, false
	}

	s, err := setting.Get(db, p.namespace, key)
	if err != nil {
		log.Trace().Err(err).Str("namespace", p.namespace).Str("key", key).Msg("preference not read")

		return nil, false
	}

	return s.Value, true
}

func (p *Prefs) put(key string, v []byte) {
	db := p.ensure()
	if db == nil {
		return
	}

	if _, err := setting.Set(db, p.namespace, key, v); err != nil {
		log.Debug().Err(err).Str("namespace", p.namespace).Str("key", key).Msg("preference not written")
	}
}
