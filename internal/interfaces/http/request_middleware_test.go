package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

func newRequestIDApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Get("/rid", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRequestID(c))
	})
	return app
}

func TestRequestID_GeneradoQuedaEnLocals(t *testing.T) {
	app := newRequestIDApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rid", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	rid := resp.Header.Get(apphttp.HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, string(body))
}

func TestRequestID_EntranteQuedaEnLocals(t *testing.T) {
	app := newRequestIDApp()
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-42")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "req-42", string(body))
	assert.Equal(t, "req-42", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestGetRequestID_SinMiddlewareVacio(t *testing.T) {
	app := fiber.New()
	app.Get("/rid", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rid", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, string(body))
}
