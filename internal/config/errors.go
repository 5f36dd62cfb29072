package config

import (
	"errors"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoTransport error if neither ble, mqtt nor the webserver is enabled.
	ErrNoTransport = errors.New("toml config needs at least one of BLE, MQTT or Webserver enabled")
)
