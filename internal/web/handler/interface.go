package handler

import (
	"github.com/bontastic/printerctl/internal/field"
)

// Engine is the settings engine as seen by the http handlers.
type Engine interface {
	HandleRead(f field.Field) []byte
	HandleWrite(f field.Field, payload []byte)
	Variant() field.Variant
}
