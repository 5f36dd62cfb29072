package web

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/engine"
	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/printer/printertest"
)

func newService(t *testing.T) *Service {
	t.Helper()

	eng := engine.New(&printertest.Recorder{}, nil, engine.Options{Variant: field.Extended})
	eng.Boot()

	return New(&config.Config{Title: "printerctl", DevMode: true}, eng)
}

func TestCheckAlive(t *testing.T) {
	s := newService(t)

	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	s.alive.Store(false)

	resp, err = s.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	s := newService(t)

	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, MetricsPath, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestFieldRoutesRegistered(t *testing.T) {
	s := newService(t)

	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/fields/heatTime", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
