// Package models contains database model definitions.
package models

// Setting is one persisted entry of a namespace, keyed by Name.
// Numeric printer fields are stored as a single byte, text fields as their raw bytes.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Namespace string `gorm:"size:32;uniqueIndex:idx_namespace_name"`
	Name      string `gorm:"size:64;uniqueIndex:idx_namespace_name"`
	Value     []byte
}
