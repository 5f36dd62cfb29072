package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// Rotation describes one lumberjack rolling file.
type Rotation struct {
	File       string `toml:"file"`
	MaxSize    int    `toml:"maxSize"` // megabytes
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"` // days
}

// LogFile implements a file based logger with one rolling file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access Rotation `toml:"access"`
	Error  Rotation `toml:"error"`
	Info   Rotation `toml:"info"`
	Trace  Rotation `toml:"trace"`
	Warn   Rotation `toml:"warn"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.

	// EnableAccessLogToConsole if true the http control surface logs every request to console.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	File LogFile `toml:"file"`
}
