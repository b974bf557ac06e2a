package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// RequireRole deja pasar si el token tiene alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRoles).
//
// Comportamiento:
//   - 401 MISSING_ROLE → el token no trae roles.
//   - 403 FORBIDDEN    → ninguno de los roles del token está permitido.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no contiene roles",
			})
		}
		for _, r := range roles {
			if slices.Contains(allowed, r) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para este recurso",
		})
	}
}
