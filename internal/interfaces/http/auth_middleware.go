package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-system/pkg/logger"
)

// Locals keys.
const (
	LocalActorID = "actor_id"
	LocalLogger  = "logger"
)

// HeaderActorID identifica al usuario que origina la petición. La autenticación la resuelve
// quien esté delante del servicio; aquí solo se registra.
const HeaderActorID = "X-User-ID"

// ActorMiddleware guarda X-User-ID en c.Locals para registrarlo como user_id de los movimientos.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actor := strings.TrimSpace(c.Get(HeaderActorID)); actor != "" {
			c.Locals(LocalActorID, actor)
		}
		return c.Next()
	}
}

// GetActorID devuelve el actor de la petición o "" si no vino el header.
func GetActorID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalActorID).(string)
	return s
}

// RequestLog registra método, ruta, status y duración de cada petición.
func RequestLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(LocalLogger, log)
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de registrar
			if hErr := c.App().Config().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		ev := log.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Str("actor", GetActorID(c)).
			Msg("petición HTTP")
		return nil
	}
}

// RequestLogger devuelve el logger de la petición (Nop si no pasó por RequestLog).
func RequestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}
