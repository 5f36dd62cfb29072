// Package ble exposes every printer field as one read/write/notify GATT characteristic.
package ble

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"tinygo.org/x/bluetooth"

	"github.com/bontastic/printerctl/internal/field"
)

// ServiceUUID identifies the printer control service. Field i uses the same UUID with 0x0002+i in the second group.
const ServiceUUID = "5a1a0001-8f19-4a86-9a9e-7b4f7f9b0002"

// DefaultName is advertised when no device name is configured.
const DefaultName = "Bontastic Printer"

const fieldUUIDFormat = "5a1a%04x-8f19-4a86-9a9e-7b4f7f9b0002"

// Handler is the engine side of the peripheral.
type Handler interface {
	HandleWrite(f field.Field, payload []byte)
}

// FieldUUID returns the characteristic UUID of f.
func FieldUUID(f field.Field) string {
	return fmt.Sprintf(fieldUUIDFormat, int(f)+2) //nolint:mnd
}

// Peripheral is the GATT server of the printer.
type Peripheral struct {
	adapter *bluetooth.Adapter
	handler Handler
	variant field.Variant
	name    string

	mu    sync.Mutex
	ready bool
	chars [field.Count]bluetooth.Characteristic
}

// New returns a peripheral for the given adapter. An empty name falls back to DefaultName.
func New(adapter *bluetooth.Adapter, h Handler, variant field.Variant, name string) *Peripheral {
	if name == "" {
		name = DefaultName
	}

	return &Peripheral{adapter: adapter, handler: h, variant: variant, name: name}
}

// Name returns the advertised device name.
func (p *Peripheral) Name() string {
	return p.name
}

// service describes one characteristic per field of the variant.
func (p *Peripheral) service() (*bluetooth.Service, error) {
	svcUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return nil, errors.Wrap(err, "parse service uuid")
	}

	svc := &bluetooth.Service{UUID: svcUUID}

	for _, d := range p.variant.Fields() {
		u, err := bluetooth.ParseUUID(FieldUUID(d.Field))
		if err != nil {
			return nil, errors.Wrap(err, "parse uuid of "+d.Label)
		}

		f := d.Field

		svc.Characteristics = append(svc.Characteristics, bluetooth.CharacteristicConfig{
			Handle: &p.chars[f],
			UUID:   u,
			Flags: bluetooth.CharacteristicReadPermission |
				bluetooth.CharacteristicWritePermission |
				bluetooth.CharacteristicNotifyPermission,
			WriteEvent: func(_ bluetooth.Connection, _ int, value []byte) {
				p.handler.HandleWrite(f, value)
			},
		})
	}

	return svc, nil
}

// Register enables the adapter and adds the service. Refreshes before Register are dropped.
func (p *Peripheral) Register() error {
	if err := p.adapter.Enable(); err != nil {
		return errors.Wrap(err, "enable bluetooth adapter")
	}

	svc, err := p.service()
	if err != nil {
		return err
	}

	if err = p.adapter.AddService(svc); err != nil {
		return errors.Wrap(err, "add printer service")
	}

	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()

	return nil
}

// Advertise starts advertising the device name and the service UUID.
func (p *Peripheral) Advertise() error {
	svcUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return errors.Wrap(err, "parse service uuid")
	}

	adv := p.adapter.DefaultAdvertisement()

	if err = adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    p.name,
		ServiceUUIDs: []bluetooth.UUID{svcUUID},
	}); err != nil {
		return errors.Wrap(err, "configure advertisement")
	}

	if err = adv.Start(); err != nil {
		return errors.Wrap(err, "start advertisement")
	}

	log.Info().Str("name", p.name).Str("service", ServiceUUID).Msg("ble advertising")

	return nil
}

// Stop ends advertising.
func (p *Peripheral) Stop() error {
	return p.adapter.DefaultAdvertisement().Stop() //nolint:wrapcheck
}

// Refresh implements engine.Listener. The stack serves reads from the stored value
// and a write also notifies subscribed centrals, so value and notification cannot be split.
func (p *Peripheral) Refresh(f field.Field, value []byte, notify bool) {
	if !p.variant.Contains(f) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}

	if _, err := p.chars[f].Write(value); err != nil {
		log.Debug().Err(err).Str("field", f.String()).Bool("notify", notify).Msg("ble value update failed")
	}
}
