package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

// firmChecker es el contrato mínimo que necesita el middleware para verificar el despacho.
// Lo implementa *usecase.FirmUseCase.
type firmChecker interface {
	IsActive(ctx context.Context, firmID string) (bool, error)
}

// RequireActiveFirm corta las peticiones de despachos suspendidos o eliminados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalFirmID).
//
// Comportamiento:
//   - 401 si el token no trae firm_id.
//   - 403 FIRM_INACTIVE si el despacho no existe o no está activo.
//   - 503 si no se pudo consultar la base de datos.
func RequireActiveFirm(checker firmChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		firmID := GetFirmID(c)
		if firmID == "" {
			return unauthorized(c)
		}
		active, err := checker.IsActive(c.UserContext(), firmID)
		if err != nil {
			c.Locals(localInternalError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FIRM_CHECK_FAILED",
				Message: "no se pudo verificar el despacho, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FIRM_INACTIVE",
				Message: "el despacho no está activo",
			})
		}
		return c.Next()
	}
}
