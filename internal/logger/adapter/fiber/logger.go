// Package fiber provides a zerolog access log middleware for the http control surface.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/logger"
)

// LocalField is the ctx.Locals key handlers use to attach the addressed field label to the access log.
const LocalField = "field"

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	Next func(c *fiber.Ctx) bool

	// Log selects the outputs: console (when EnableAccessLogToConsole) and the access rolling file.
	Log logger.Log

	// Output replaces the outputs derived from Log when set.
	Output io.Writer

	// CheckAliveURI is not logged when Log.DisableCheckAlive is set.
	CheckAliveURI string
}

// New creates a new fiber access logging middleware using zerolog.
func New(cfg Config) fiber.Handler {
	accessLogger := zerolog.New(accessWriter(cfg)).With().Timestamp().Logger()

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if err := ctx.App().ErrorHandler(ctx, chainErr); err != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64))

		if cfg.Log.DisableCheckAlive && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		// ctx.Path is the raw path, fasthttp only normalizes the routing copy.
		uri := ctx.Path()
		if q := ctx.Request().URI().QueryString(); len(q) > 0 {
			uri += "?" + string(q)
		}

		ev := accessLogger.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent))

		if f, ok := ctx.Locals(LocalField).(string); ok {
			ev = ev.Str("field", f)
		}

		if chainErr != nil {
			ev = ev.Err(chainErr)
		}

		ev.Send()

		return nil
	}
}

func accessWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}

	var writers []io.Writer

	if cfg.Log.File.Enabled {
		if cfg.Log.File.Path != "" {
			if err := os.MkdirAll(cfg.Log.File.Path, 0o750); err != nil { //nolint:mnd
				log.Error().Err(err).Str("path", cfg.Log.File.Path).Msg("can't create log directory")
			}
		}

		writers = append(writers, logger.Rolling(cfg.Log.File.Path, cfg.Log.File.Access))
	}

	if cfg.Log.Console.Enabled && cfg.Log.EnableAccessLogToConsole {
		if cfg.Log.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return zerolog.MultiLevelWriter(writers...)
}
