package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type firmService interface {
	Create(ctx context.Context, in dto.CreateFirmRequest) (*dto.FirmResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FirmResponse, error)
}

// FirmHandler maneja el alta y consulta de despachos.
type FirmHandler struct {
	uc firmService
}

// NewFirmHandler construye el handler.
func NewFirmHandler(uc firmService) *FirmHandler {
	return &FirmHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar despacho
// @Tags         firms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFirmRequest  true  "name, tax_id"
// @Success      201   {object}  dto.FirmResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/firms [post]
func (h *FirmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Despacho del token
// @Tags         firms
// @Produce      json
// @Success      200  {object}  dto.FirmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/firm [get]
func (h *FirmHandler) Current(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), firmID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
