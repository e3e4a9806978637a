package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/inventory-system/internal/interfaces/http"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

// buildActorApp aplicación mínima con RequestLog + ActorMiddleware y rutas dummy.
func buildActorApp(log *logger.Logger) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestLog(log))
	app.Use(apphttp.ActorMiddleware())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"actor": apphttp.GetActorID(c)})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("falla inesperada")
	})
	return app
}

func TestActorMiddleware_GuardaHeader(t *testing.T) {
	app := buildActorApp(logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(apphttp.HeaderActorID, "  user-42 ")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-42", body["actor"])
}

func TestActorMiddleware_SinHeaderEsVacio(t *testing.T) {
	app := buildActorApp(logger.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["actor"])
}

func TestRequestLog_RegistraStatusYErrores(t *testing.T) {
	var buf bytes.Buffer
	app := buildActorApp(logger.NewWriter(&buf, "info"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(apphttp.HeaderActorID, "u-1")
	_, err := app.Test(req, -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "/whoami", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "u-1", first["actor"])
	assert.Equal(t, "/boom", second["path"])
	assert.EqualValues(t, 500, second["status"])
	assert.Equal(t, "error", second["level"])
}
