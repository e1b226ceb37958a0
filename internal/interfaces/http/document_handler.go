package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
)

type documentService interface {
	Upload(ctx context.Context, firmID, userID, clientID string, in dto.UploadDocumentInput) (*dto.DocumentResponse, error)
	List(ctx context.Context, firmID, clientID string) ([]dto.DocumentResponse, error)
	Download(ctx context.Context, firmID, id string) (*dto.DownloadedDocument, error)
	Delete(ctx context.Context, firmID, id string) error
	Expiring(ctx context.Context, firmID string) ([]dto.DocumentResponse, error)
}

// DocumentHandler maneja los documentos de clientes (protegido).
type DocumentHandler struct {
	uc documentService
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc documentService) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir documento de un cliente
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        id               path      string  true   "ID del cliente"
// @Param        file             formData  file    true   "archivo"
// @Param        name             formData  string  false  "nombre visible (por defecto el nombre del archivo)"
// @Param        expiration_date  formData  string  false  "YYYY-MM-DD"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, err)
	}

	in := dto.UploadDocumentInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}
	if in.Name == "" {
		in.Name = fh.Filename
	}
	if raw := strings.TrimSpace(c.FormValue("expiration_date")); raw != "" {
		exp, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiration_date debe ser YYYY-MM-DD"})
		}
		in.ExpirationDate = &exp
	}

	out, err := h.uc.Upload(c.UserContext(), firmID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Documentos de un cliente
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/clients/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar documento
// @Description  Adjunto con el nombre visible del documento y la extensión del archivo guardado.
// @Tags         documents
// @Produce      octet-stream
// @Param        id  path  string  true  "ID del documento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	doc, err := h.uc.Download(c.UserContext(), GetFirmID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(doc.FileName))
	return c.Send(doc.Content)
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Solo socio o admin.
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetFirmID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expiring godoc
// @Summary      Documentos vencidos y por vencer
// @Tags         documents
// @Produce      json
// @Success      200  {array}  dto.DocumentResponse
// @Security     BearerAuth
// @Router       /api/documents/expiring [get]
func (h *DocumentHandler) Expiring(c *fiber.Ctx) error {
	firmID := GetFirmID(c)
	if firmID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Expiring(c.UserContext(), firmID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// contentDisposition arma el header de descarga con filename* para nombres no ASCII.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(name))
}
