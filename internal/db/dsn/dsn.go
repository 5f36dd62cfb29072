// Package dsn provides Data Source Name construction and driver selection for database connections.
package dsn

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bontastic/printerctl/internal/config"
)

// Supported drivers.
const (
	DriverSqlite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned for a DB.Driver other than sqlite, mysql or postgres.
var ErrUnknownDriver = errors.New("unknown database driver")

// Create builds the Data Source Name from the configuration.
func Create(db config.DB) (string, error) {
	switch db.Driver {
	case DriverSqlite, "":
		if db.Extras == "" {
			return db.Path, nil
		}

		return db.Path + "?" + db.Extras, nil
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
			db.Extras,
		), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, db.Driver)
	}
}

// Dialector returns the gorm dialector matching db.Driver.
func Dialector(db config.DB) (gorm.Dialector, error) {
	out, err := Create(db)
	if err != nil {
		return nil, err
	}

	switch db.Driver {
	case DriverMySQL:
		return mysql.Open(out), nil
	case DriverPostgres:
		return postgres.Open(out), nil
	default:
		return sqlite.Open(out), nil
	}
}

// Open connects to the configured database. Gorm's own logger is silenced, callers log failures.
func Open(db config.DB) (*gorm.DB, error) {
	d, err := Dialector(db)
	if err != nil {
		return nil, err
	}

	return gorm.Open(d, &gorm.Config{Logger: gormlogger.Discard}) //nolint:wrapcheck
}
