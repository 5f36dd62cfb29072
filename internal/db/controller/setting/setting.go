// Package setting provides namespace scoped key/value operations over persisted settings.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bontastic/printerctl/internal/db/models"
)

const (
	keyQueryPattern       = "namespace = ? AND name = ?"
	namespaceQueryPattern = "namespace = ?"
)

var (
	// ErrSettingNotFound is returned when a key does not exist in the namespace.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when a key or namespace is empty.
	ErrSettingKeyEmpty = errors.New("setting namespace and key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, namespace, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if namespace == "" || key == "" {
		return ErrSettingKeyEmpty
	}

	return nil
}

// Get retrieves one entry of a namespace.
func Get(db *gorm.DB, namespace, key string) (*models.Setting, error) {
	if err := check(db, namespace, key); err != nil {
		return nil, err
	}

	var s models.Setting

	result := db.Where(keyQueryPattern, namespace, key).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// GetAll retrieves every entry of a namespace.
func GetAll(db *gorm.DB, namespace string) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if namespace == "" {
		return nil, ErrSettingKeyEmpty
	}

	var out []models.Setting

	result := db.Where(namespaceQueryPattern, namespace).Order("name").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// Set creates or updates one entry (upsert).
func Set(db *gorm.DB, namespace, key string, value []byte) (*models.Setting, error) {
	if err := check(db, namespace, key); err != nil {
		return nil, err
	}

	var s models.Setting

	result := db.Where(keyQueryPattern, namespace, key).First(&s)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		s = models.Setting{
			Namespace: namespace,
			Name:      key,
			Value:     value,
		}

		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}

		return &s, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	s.Value = value
	if err := db.Save(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// Delete removes one entry of a namespace.
func Delete(db *gorm.DB, namespace, key string) error {
	if err := check(db, namespace, key); err != nil {
		return err
	}

	result := db.Where(keyQueryPattern, namespace, key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// Clear removes every entry of a namespace and returns how many were deleted.
func Clear(db *gorm.DB, namespace string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	if namespace == "" {
		return 0, ErrSettingKeyEmpty
	}

	result := db.Where(namespaceQueryPattern, namespace).Delete(&models.Setting{})

	return result.RowsAffected, result.Error
}
