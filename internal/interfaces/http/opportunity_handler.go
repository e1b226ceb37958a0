package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/crm"
	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type opportunityService interface {
	Create(ctx context.Context, firmID, userID string, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error)
	Get(ctx context.Context, firmID, id string) (*dto.OpportunityResponse, error)
	List(ctx context.Context, firmID, search, status string, page dto.PageRequest) (*dto.OpportunityListResponse, error)
	ChangeStatus(ctx context.Context, firmID, userID, id, target string) (*dto.StatusChangeResponse, error)
}

// OpportunityHandler maneja el embudo comercial (protegido).
type OpportunityHandler struct {
	uc opportunityService
}

// NewOpportunityHandler construye el handler.
func NewOpportunityHandler(uc opportunityService) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oportunidad
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOpportunityRequest  true  "title obligatorio"
// @Success      201   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/opportunities [post]
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), firmID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar oportunidades
// @Tags         opportunities
// @Produce      json
// @Param        q       query  string  false  "busca en título, cliente y área"
// @Param        status  query  string  false  "estado"
// @Param        limit   query  int     false  "por defecto 20, máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.OpportunityListResponse
// @Security     BearerAuth
// @Router       /api/opportunities [get]
func (h *OpportunityHandler) List(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), firmID, c.Query("q"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener oportunidad
// @Description  Incluye historial y siguientes estados permitidos.
// @Tags         opportunities
// @Produce      json
// @Param        id  path  string  true  "ID de la oportunidad"
// @Success      200  {object}  dto.OpportunityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una oportunidad
// @Description  Solo se aceptan los siguientes estados permitidos. Pasar a "won" crea el asunto.
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la oportunidad"
// @Param        body  body  dto.ChangeStatusRequest  true  "estado destino"
// @Success      200   {object}  dto.StatusChangeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/opportunities/{id}/status [patch]
func (h *OpportunityHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetFirmID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statuses godoc
// @Summary      Estados del embudo
// @Description  Estados en orden del embudo con etiqueta y color.
// @Tags         opportunities
// @Produce      json
// @Success      200  {array}  dto.StatusMeta
// @Security     BearerAuth
// @Router       /api/opportunities/statuses [get]
func (h *OpportunityHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(crm.StatusCatalog())
}
