// Package main provides the entry point of printerctl.
// printerctl exposes the configuration of a serial thermal printer as remote
// control fields over BLE, MQTT and HTTP. Every accepted change is applied to
// the printer immediately and persisted through gorm (sqlite, mysql or postgres).
package main
