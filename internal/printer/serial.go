package printer

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"
)

// DefaultBaud is the factory baud rate of the printer.
const DefaultBaud = 9600

const writeTimeout = 2 * time.Second

// OpenSerial opens the printer port 8N1. An empty port returns a writer that only logs the bytes at debug level.
func OpenSerial(port string, baud int) (io.WriteCloser, error) {
	if port == "" {
		log.Warn().Msg("no printer port configured, printer commands are logged only")

		return debugPort{}, nil
	}

	if baud <= 0 {
		baud = DefaultBaud
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        port,
		Baud:        baud,
		ReadTimeout: writeTimeout,
		Size:        serial.DefaultSize,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open printer port "+port)
	}

	log.Info().Str("port", port).Int("baud", baud).Msg("printer port open")

	return p, nil
}

// debugPort stands in for a printer that is not attached.
type debugPort struct{}

func (debugPort) Write(p []byte) (int, error) {
	log.Debug().Hex("bytes", p).Msg("printer")

	return len(p), nil
}

func (debugPort) Close() error {
	return nil
}
