package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type matterService interface {
	Create(ctx context.Context, firmID, userID string, in dto.CreateMatterRequest) (*dto.MatterResponse, error)
	Get(ctx context.Context, firmID, id string) (*dto.MatterResponse, error)
	List(ctx context.Context, firmID string, page dto.PageRequest) ([]dto.MatterResponse, error)
	ChangeStatus(ctx context.Context, firmID, id, status string) (*dto.MatterResponse, error)
	CreateTask(ctx context.Context, firmID, matterID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, firmID, taskID, status string) (*dto.TaskResponse, error)
	LogTime(ctx context.Context, firmID, taskID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error)
	ListTimeEntries(ctx context.Context, firmID, taskID string) ([]dto.TimeEntryResponse, error)
	ReportPDF(ctx context.Context, firmID, id string) ([]byte, error)
}

// MatterHandler maneja asuntos, tareas y registros de tiempo (protegido).
type MatterHandler struct {
	uc matterService
}

// NewMatterHandler construye el handler.
func NewMatterHandler(uc matterService) *MatterHandler {
	return &MatterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear asunto
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMatterRequest  true  "name obligatorio"
// @Success      201  {object}  dto.MatterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/matters [post]
func (h *MatterHandler) Create(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	var in dto.CreateMatterRequest
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
// @Summary      Listar asuntos
// @Tags         matters
// @Produce      json
// @Param        limit   query  int  false  "por defecto 20, máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MatterResponse
// @Security     BearerAuth
// @Router       /api/matters [get]
func (h *MatterHandler) List(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), firmID, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener asunto
// @Description  Incluye tareas y resumen de avance.
// @Tags         matters
// @Produce      json
// @Param        id  path  string  true  "ID del asunto"
// @Success      200  {object}  dto.MatterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/matters/{id} [get]
func (h *MatterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de un asunto
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del asunto"
// @Param        body  body  dto.ChangeStatusRequest  true  "estado destino"
// @Success      200  {object}  dto.MatterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/matters/{id}/status [patch]
func (h *MatterHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetFirmID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF del asunto
// @Tags         matters
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del asunto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/matters/{id}/report.pdf [get]
func (h *MatterHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.ReportPDF(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="asunto-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}

// CreateTask godoc
// @Summary      Crear tarea en un asunto
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del asunto"
// @Param        body  body  dto.CreateTaskRequest  true  "title obligatorio"
// @Success      201  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/matters/{id}/tasks [post]
func (h *MatterHandler) CreateTask(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTask(c.UserContext(), GetFirmID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTaskStatus godoc
// @Summary      Cambiar estado de una tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la tarea"
// @Param        body  body  dto.ChangeStatusRequest  true  "estado destino"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tasks/{id}/status [patch]
func (h *MatterHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTaskStatus(c.UserContext(), GetFirmID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LogTime godoc
// @Summary      Registrar horas en una tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la tarea"
// @Param        body  body  dto.LogTimeRequest  true  "hours_spent > 0, user_name"
// @Success      201   {object}  dto.LogTimeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tasks/{id}/time-entries [post]
func (h *MatterHandler) LogTime(c *fiber.Ctx) error {
	var in dto.LogTimeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LogTime(c.UserContext(), GetFirmID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTimeEntries godoc
// @Summary      Registros de tiempo de una tarea
// @Tags         tasks
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {array}  dto.TimeEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tasks/{id}/time-entries [get]
func (h *MatterHandler) ListTimeEntries(c *fiber.Ctx) error {
	out, err := h.uc.ListTimeEntries(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
