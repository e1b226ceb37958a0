package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type dashboardService interface {
	GetSummary(ctx context.Context, firmID string) (*dto.DashboardSummaryDTO, error)
}

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc dashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc dashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Indicadores del despacho
// @Description  Clientes, oportunidades activas, valor del embudo, tasa de conversión, documentos por vencer y últimas 5 oportunidades.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Security     BearerAuth
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), firmID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
