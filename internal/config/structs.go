package config

import (
	"github.com/bontastic/printerctl/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Printer   Printer
	BLE       BLE
	MQTT      MQTT
	Webserver Webserver
}

// Printer holds the thermal printer and field table settings.
type Printer struct {
	Variant     string `validate:"omitempty,oneof=basic extended"` // basic = 11 fields, extended = 16
	Port        string // serial device, empty = log commands only
	Baud        int    `validate:"gte=0"`
	EchoChanges bool   // print every accepted change on paper
	Banner      bool   // print the boot banner
	Namespace   string `validate:"required,max=32"` // persistence namespace
}

// BLE holds the bluetooth peripheral settings.
type BLE struct {
	Enabled    bool
	DeviceName string `validate:"max=29"` // advertised verbatim
}

// MQTT holds the broker settings of the mqtt transport.
type MQTT struct {
	Enabled     bool
	Broker      string `validate:"required_if=Enabled true"`
	ClientID    string // empty = printerctl-<uuid>
	Username    string
	Password    string
	TopicPrefix string `validate:"required_if=Enabled true"`
	QoS         byte   `validate:"lte=2"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Enabled        bool
	DisableRecover bool // disable recover middleware
	Port           int  `validate:"required_if=Enabled true,gte=0,lte=65535"` // listening port for the webserver
	ShutDownTime   int  // wait time for shutdown in seconds
}
