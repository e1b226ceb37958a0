package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type clientService interface {
	Create(ctx context.Context, firmID, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, firmID, id string) (*dto.ClientResponse, error)
	List(ctx context.Context, firmID, search, status string, page dto.PageRequest) ([]*dto.ClientResponse, error)
	Update(ctx context.Context, firmID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Deactivate(ctx context.Context, firmID, id string) error
}

// ClientHandler maneja las peticiones HTTP de clientes del despacho (protegido).
type ClientHandler struct {
	uc clientService
}

// NewClientHandler construye el handler.
func NewClientHandler(uc clientService) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "name obligatorio"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	var in dto.CreateClientRequest
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
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Param        q       query  string  false  "busca en nombre, email y empresa"
// @Param        status  query  string  false  "active | inactive"
// @Param        limit   query  int     false  "por defecto 20, máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ClientResponse
// @Security     BearerAuth
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.UserContext(), firmID, c.Query("q"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "campos a modificar"
// @Success      200  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetFirmID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar cliente
// @Description  Solo socio o admin. Los clientes no se borran.
// @Tags         clients
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetFirmID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
