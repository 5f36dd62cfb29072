package field_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/engine"
	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/printer/printertest"
	fieldhandler "github.com/bontastic/printerctl/internal/web/handler/field"
)

func setupApp(t *testing.T, variant field.Variant) (*fiber.App, *engine.Engine, *printertest.Recorder) {
	t.Helper()

	driver := &printertest.Recorder{}
	eng := engine.New(driver, nil, engine.Options{Variant: variant})
	eng.Boot()
	driver.Clear()

	app := fiber.New()

	var svc fieldhandler.Service
	svc.Init(app, &config.Config{}, eng)

	return app, eng, driver
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	resp, err := app.Test(httptest.NewRequest(method, target, r), -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}

func TestList(t *testing.T) {
	testCases := []struct {
		name    string
		variant field.Variant
		want    int
	}{
		{"basic", field.Basic, 11},
		{"extended", field.Extended, 16},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _, _ := setupApp(t, tc.variant)

			status, body := do(t, app, fiber.MethodGet, "/api/fields", "")
			require.Equal(t, fiber.StatusOK, status)

			var views []fieldhandler.View
			require.NoError(t, json.Unmarshal([]byte(body), &views))
			require.Len(t, views, tc.want)

			assert.Equal(t, "HEAT_DOTS", views[0].Label)
			assert.Equal(t, "11", views[0].Value)
			require.NotNil(t, views[5].Max)
			assert.Equal(t, uint8(64), *views[5].Max)
		})
	}
}

func TestGet(t *testing.T) {
	app, _, _ := setupApp(t, field.Extended)

	testCases := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"by key", "/api/fields/lineHeight", fiber.StatusOK, "30"},
		{"by label", "/api/fields/MESH_NAME", fiber.StatusOK, "MO1_1dfd"},
		{"by index", "/api/fields/12", fiber.StatusOK, "23"},
		{"trigger has empty value", "/api/fields/print", fiber.StatusOK, ""},
		{"unknown", "/api/fields/nope", fiber.StatusNotFound, ""},
		{"index out of range", "/api/fields/16", fiber.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, fiber.MethodGet, tc.target, "")
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantStatus == fiber.StatusOK {
				assert.Equal(t, tc.wantBody, body)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	app, eng, driver := setupApp(t, field.Extended)

	status, _ := do(t, app, fiber.MethodPut, "/api/fields/lineHeight", "10")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Equal(t, uint8(24), eng.Settings().LineHeight)

	status, _ = do(t, app, fiber.MethodPost, "/api/fields/feed", "3")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Equal(t, 1, driver.Count("Feed(3)"))

	_, body := do(t, app, fiber.MethodGet, "/api/fields/feed", "")
	assert.Equal(t, "0", body)

	status, _ = do(t, app, fiber.MethodPut, "/api/fields/print", "hello")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Equal(t, 1, driver.Count(`Println("hello")`))

	status, _ = do(t, app, fiber.MethodPut, "/api/fields/meshPin", "")
	assert.Equal(t, fiber.StatusNoContent, status, "empty writes are accepted and ignored")
	assert.Equal(t, "123456", string(eng.Settings().MeshPin))
}

func TestWriteOutsideVariant(t *testing.T) {
	app, eng, _ := setupApp(t, field.Basic)

	status, _ := do(t, app, fiber.MethodPut, "/api/fields/charset", "5")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, uint8(2), eng.Settings().Charset)
}
