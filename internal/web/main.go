// Package web serves the http control surface: field api, health check and metrics.
package web

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/config"
	accesslog "github.com/bontastic/printerctl/internal/logger/adapter/fiber"
	"github.com/bontastic/printerctl/internal/web/handler"
	fieldhandler "github.com/bontastic/printerctl/internal/web/handler/field"
)

const (
	// CheckAlivePath answers 200 while serving and 503 while shutting down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus default registry.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// New creates the fiber app and registers every route.
func New(cfg *config.Config, engine handler.Engine) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if engine == nil {
		panic("engine cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			AppName:               cfg.Title,
			CaseSensitive:         false,
			DisableStartupMessage: true,
			BodyLimit:             4 * 1024, //nolint:mnd
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(accesslog.New(accesslog.Config{
		Log:           cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	fieldhandler.Handler.Init(app, cfg, engine)

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// Start listens on addr until Shutdown.
func (s *Service) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("http control surface listening")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// Shutdown fails the health check for Webserver.ShutDownTime seconds so load balancers
// drain the instance, then stops the server. Dev mode skips the wait.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let LB remove this instance",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
