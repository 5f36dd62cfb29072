package config

// DB holds the database configuration settings.
type DB struct {
	Driver   string `validate:"omitempty,oneof=sqlite mysql postgres"` // sqlite (default), mysql, postgres
	Path     string // sqlite database file
	Extras   string // driver specific DSN parameters
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
