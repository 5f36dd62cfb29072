// Package daemon wires the settings engine to the printer, the store and the enabled transports.
package daemon

import (
	"context"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"tinygo.org/x/bluetooth"

	"github.com/bontastic/printerctl/internal/ble"
	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/db/dsn"
	"github.com/bontastic/printerctl/internal/engine"
	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/mqtt"
	"github.com/bontastic/printerctl/internal/persist"
	"github.com/bontastic/printerctl/internal/printer"
	"github.com/bontastic/printerctl/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg    *config.Config
	engine *engine.Engine
	port   io.WriteCloser
	prefs  *persist.Prefs

	peripheral *ble.Peripheral
	bridge     *mqtt.Bridge
	webService *web.Service
}

// New opens the printer, boots the engine and connects the enabled transports.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	variant, err := field.ParseVariant(cfg.Printer.Variant)
	if err != nil {
		return nil, errors.Wrap(err, "printer variant")
	}

	port, err := printer.OpenSerial(cfg.Printer.Port, cfg.Printer.Baud)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		cfg:  cfg,
		port: port,
		prefs: persist.NewPrefs(cfg.Printer.Namespace, func() (*gorm.DB, error) {
			return dsn.Open(cfg.DB)
		}),
	}

	d.engine = engine.New(
		printer.NewThermal(port),
		persist.NewAdapter(d.prefs),
		engine.Options{
			Variant:     variant,
			EchoChanges: cfg.Printer.EchoChanges,
			Banner:      cfg.Printer.Banner,
			Metrics:     engine.NewMetrics(prometheus.DefaultRegisterer),
		},
	)

	// the GATT service must exist before boot publishes the initial values
	if cfg.BLE.Enabled {
		d.peripheral = ble.New(bluetooth.DefaultAdapter, d.engine, variant, cfg.BLE.DeviceName)
		if err = d.peripheral.Register(); err != nil {
			d.Close()

			return nil, err
		}

		d.engine.AddListener(d.peripheral)
	}

	d.engine.Boot()

	if d.peripheral != nil {
		if err = d.peripheral.Advertise(); err != nil {
			d.Close()

			return nil, err
		}
	}

	if cfg.MQTT.Enabled {
		d.bridge = mqtt.New(cfg.MQTT, d.engine, variant)
		d.engine.AddListener(d.bridge)

		if err = d.bridge.Connect(); err != nil {
			d.Close()

			return nil, err
		}
	}

	if cfg.Webserver.Enabled {
		d.webService = web.New(cfg, d.engine)
	}

	return d, nil
}

// Start serves until SIGINT or SIGTERM, or until the http server fails.
func (d *Daemon) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)

	if d.webService != nil {
		go func() {
			errc <- d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
		}()
	}

	var err error

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown requested")
	case err = <-errc:
		if err != nil {
			err = errors.Wrap(err, "http server")
		}
	}

	d.Close()

	return err
}

// Close stops the transports and releases the printer port and the store.
func (d *Daemon) Close() {
	if d.webService != nil {
		d.webService.Shutdown()
	}

	if d.bridge != nil {
		d.bridge.Close()
	}

	if d.peripheral != nil {
		if err := d.peripheral.Stop(); err != nil {
			log.Debug().Err(err).Msg("ble stop")
		}
	}

	if d.port != nil {
		if err := d.port.Close(); err != nil {
			log.Error().Err(err).Msg("close printer port")
		}
	}

	d.prefs.Close()

	log.Info().Msg("printerctl stopped ... good bye...")
}
