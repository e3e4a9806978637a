package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

type appConfig struct {
	name         string
	log          *logger.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
	middleware   []fiber.Handler
	health       func(context.Context) error
}

// AppOption configura NewApp.
type AppOption func(*appConfig)

// WithLogger activa el log por petición.
func WithLogger(log *logger.Logger) AppOption {
	return func(c *appConfig) { c.log = log }
}

// WithTimeouts fija los timeouts del servidor.
func WithTimeouts(read, write, idle time.Duration) AppOption {
	return func(c *appConfig) {
		c.readTimeout, c.writeTimeout, c.idleTimeout = read, write, idle
	}
}

// WithMiddleware agrega middleware global (ej. Swagger UI) antes de las rutas.
func WithMiddleware(h ...fiber.Handler) AppOption {
	return func(c *appConfig) { c.middleware = append(c.middleware, h...) }
}

// WithHealthCheck hace que /health verifique el almacenamiento.
func WithHealthCheck(check func(context.Context) error) AppOption {
	return func(c *appConfig) { c.health = check }
}

func recoverer() fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: true})
}

// errorHandler errores propios de fiber (ruta inexistente, pánico recuperado) en el formato de la API.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = CodeInvalidBody
		case fiber.StatusMethodNotAllowed:
			code = CodeValidation
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return fail(c, err)
}
