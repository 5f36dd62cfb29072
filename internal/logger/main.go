// Package logger sets up the global zerolog logger of printerctl.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter splits log output by level.
// Trace, warn and error-and-up each get their own writer; debug and info share InfoWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init the zerolog logger.
// Depending on the config it enables console output, rolling files, both or nothing.
func Init(cfg Log) error {
	var (
		logLevel, err = zerolog.ParseLevel(cfg.LogLevel)
		writers       []io.Writer
	)

	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := logLevel == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(logLevel)

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, err := newRollingLevelFiles(cfg.File)
		if err != nil {
			return err
		}

		writers = append(writers, fw)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

// Rolling returns a lumberjack logger for r below dir.
func Rolling(dir string, r Rotation) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, r.File),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
	}
}

// newRollingLevelFiles creates the log directory and one rolling file per level group.
func newRollingLevelFiles(f LogFile) (io.Writer, error) {
	if f.Path != "" {
		if err := os.MkdirAll(f.Path, 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrap(err, "can't create log directory "+f.Path)
		}
	}

	return &LevelWriter{
		ErrorWriter: Rolling(f.Path, f.Error),
		InfoWriter:  Rolling(f.Path, f.Info),
		TraceWriter: Rolling(f.Path, f.Trace),
		WarnWriter:  Rolling(f.Path, f.Warn),
	}, nil
}

// NewConsoleWriter sends info and debug to stdout, everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(w io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return w
		}

		return zerolog.ConsoleWriter{Out: w, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
