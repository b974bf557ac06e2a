package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/catalogo-api/pkg/logger"
)

const (
	HeaderRequestID = fiber.HeaderXRequestID
	LocalRequestID  = "request_id"
)

// RequestID genera o propaga X-Request-ID, lo guarda en Locals y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     HeaderRequestID,
		ContextKey: LocalRequestID,
	})
}

// GetRequestID devuelve el id de la petición actual ("" fuera de RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// AccessLog registra método, ruta, status, latencia e IP de cada petición.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler fija el status definitivo
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		rl := log.ForRequest(GetRequestID(c))
		ev := rl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = rl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = rl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("ip", c.IP()).
			Msg("request completed")
		return nil
	}
}
