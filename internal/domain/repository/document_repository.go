package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para metadatos de documentos.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Document, error)
	// ListByClient ordena por fecha de creación descendente.
	ListByClient(ctx context.Context, firmID, clientID string) ([]*entity.Document, error)
	// ListExpiringBefore devuelve documentos con expiration_date < before.
	ListExpiringBefore(ctx context.Context, firmID string, before time.Time) ([]*entity.Document, error)
	Delete(ctx context.Context, firmID, id string) error
}
