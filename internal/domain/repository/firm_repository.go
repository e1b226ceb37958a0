package repository

import (
	"context"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// FirmRepository define el puerto de persistencia para Firm (DIP).
// La implementación vive en infrastructure.
type FirmRepository interface {
	Create(ctx context.Context, firm *entity.Firm) error
	GetByID(ctx context.Context, id string) (*entity.Firm, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Firm, error)
}
