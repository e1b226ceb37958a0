package documents

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/documents"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// DocumentUseCase sube, lista y descarga documentos de clientes.
// El estado de vencimiento se deriva en cada lectura con documents.Classify.
type DocumentUseCase struct {
	repo          repository.DocumentRepository
	clientRepo    repository.ClientRepository
	storage       Storage
	warningWindow int
	maxBytes      int64
	now           func() time.Time
}

// Option configura DocumentUseCase.
type Option func(*DocumentUseCase)

// WithWarningWindow fija la ventana de aviso en días (por defecto 30).
func WithWarningWindow(days int) Option {
	return func(uc *DocumentUseCase) { uc.warningWindow = days }
}

// WithMaxBytes limita el tamaño de subida; 0 = sin límite.
func WithMaxBytes(n int64) Option {
	return func(uc *DocumentUseCase) { uc.maxBytes = n }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *DocumentUseCase) { uc.now = now }
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	repo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	storage Storage,
	opts ...Option,
) *DocumentUseCase {
	uc := &DocumentUseCase{
		repo:          repo,
		clientRepo:    clientRepo,
		storage:       storage,
		warningWindow: documents.DefaultWarningWindowDays,
		now:           time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Upload guarda el contenido en <usuario>/<cliente>/<unix-millis>-<uuid>.<ext> y persiste los metadatos.
// Si la inserción de metadatos falla se elimina el blob ya escrito.
func (uc *DocumentUseCase) Upload(ctx context.Context, firmID, userID, clientID string, in dto.UploadDocumentInput) (*dto.DocumentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(in.FileName)
	}
	if name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	if len(in.Content) == 0 {
		return nil, fmt.Errorf("archivo vacío: %w", domain.ErrInvalidInput)
	}
	if uc.maxBytes > 0 && int64(len(in.Content)) > uc.maxBytes {
		return nil, fmt.Errorf("archivo de %d bytes supera el máximo de %d: %w", len(in.Content), uc.maxBytes, domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(ctx, firmID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", clientID, domain.ErrNotFound)
	}

	now := uc.now()
	docID := uuid.New().String()
	key := storageKey(userID, client.ID, docID, in.FileName, now)
	if err := uc.storage.Put(ctx, key, in.Content); err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}

	doc := &entity.Document{
		ID:             docID,
		FirmID:         firmID,
		ClientID:       client.ID,
		UserID:         userID,
		Name:           name,
		FilePath:       key,
		FileSize:       int64(len(in.Content)),
		FileType:       in.ContentType,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("no se pudo eliminar el archivo huérfano")
		}
		return nil, err
	}
	out := uc.toResponse(doc, now)
	return &out, nil
}

// List documentos de un cliente con su estado de vencimiento.
func (uc *DocumentUseCase) List(ctx context.Context, firmID, clientID string) ([]dto.DocumentResponse, error) {
	list, err := uc.repo.ListByClient(ctx, firmID, clientID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, uc.toResponse(d, now))
	}
	return out, nil
}

// Download devuelve el contenido y los metadatos de un documento.
func (uc *DocumentUseCase) Download(ctx context.Context, firmID, id string) (*dto.DownloadedDocument, error) {
	d, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.storage.Get(ctx, d.FilePath)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return &dto.DownloadedDocument{
		Name:        d.Name,
		FileName:    downloadName(d.Name, d.FilePath),
		ContentType: d.FileType,
		Content:     content,
	}, nil
}

// Delete elimina primero el blob y después la fila.
func (uc *DocumentUseCase) Delete(ctx context.Context, firmID, id string) error {
	d, err := uc.load(ctx, firmID, id)
	if err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, d.FilePath); err != nil {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return uc.repo.Delete(ctx, firmID, d.ID)
}

// Expiring documentos del despacho vencidos o que vencen dentro de la ventana de aviso.
func (uc *DocumentUseCase) Expiring(ctx context.Context, firmID string) ([]dto.DocumentResponse, error) {
	now := uc.now()
	before := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, max(uc.warningWindow, 0))
	list, err := uc.repo.ListExpiringBefore(ctx, firmID, before)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		switch documents.Classify(d.ExpirationDate, now, uc.warningWindow) {
		case documents.ExpiryExpired, documents.ExpiryExpiringSoon:
			out = append(out, uc.toResponse(d, now))
		}
	}
	return out, nil
}

// CountExpiring número de documentos vencidos o por vencer (dashboard).
func (uc *DocumentUseCase) CountExpiring(ctx context.Context, firmID string) (int, error) {
	list, err := uc.Expiring(ctx, firmID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (uc *DocumentUseCase) load(ctx context.Context, firmID, id string) (*entity.Document, error) {
	d, err := uc.repo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *DocumentUseCase) toResponse(d *entity.Document, now time.Time) dto.DocumentResponse {
	status := documents.Classify(d.ExpirationDate, now, uc.warningWindow)
	disp, _ := documents.ExpiryDisplay(status)
	out := dto.DocumentResponse{
		ID:             d.ID,
		ClientID:       d.ClientID,
		Name:           d.Name,
		FileType:       d.FileType,
		FileSize:       d.FileSize,
		FileSizeLabel:  documents.FormatFileSize(d.FileSize),
		ExpirationDate: dto.FormatDate(d.ExpirationDate),
		Expiry:         dto.StatusMeta{Value: string(status), Label: disp.Label, Color: disp.Color},
		CreatedAt:      d.CreatedAt,
	}
	if d.ExpirationDate != nil {
		days := documents.DaysUntil(*d.ExpirationDate, now)
		out.DaysToExpire = &days
	}
	return out
}

// storageKey arma la clave del blob; la extensión sale del nombre original.
// El id del documento hace única la clave aunque dos subidas caigan en el mismo milisegundo.
func storageKey(userID, clientID, docID, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(userID, clientID, fmt.Sprintf("%d-%s%s", now.UnixMilli(), docID, ext))
}

// downloadName nombre de descarga: el nombre visible con la extensión del archivo guardado.
func downloadName(name, key string) string {
	ext := path.Ext(key)
	if ext == "" || strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}
