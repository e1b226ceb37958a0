package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// FirmUseCase aplica reglas de negocio para despachos.
type FirmUseCase struct {
	repo repository.FirmRepository
}

// NewFirmUseCase construye el caso de uso con el puerto de persistencia.
func NewFirmUseCase(repo repository.FirmRepository) *FirmUseCase {
	return &FirmUseCase{repo: repo}
}

// Create registra un despacho. Devuelve domain.ErrDuplicate si el TaxID ya existe.
func (uc *FirmUseCase) Create(ctx context.Context, in dto.CreateFirmRequest) (*dto.FirmResponse, error) {
	name := strings.TrimSpace(in.Name)
	taxID := strings.TrimSpace(in.TaxID)
	if name == "" || taxID == "" {
		return nil, fmt.Errorf("name y tax_id requeridos: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	firm := &entity.Firm{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     taxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, firm); err != nil {
		return nil, err
	}
	return toFirmResponse(firm), nil
}

// GetByID obtiene un despacho. ErrNotFound si no existe.
func (uc *FirmUseCase) GetByID(ctx context.Context, id string) (*dto.FirmResponse, error) {
	firm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return nil, domain.ErrNotFound
	}
	return toFirmResponse(firm), nil
}

// IsActive informa si el despacho existe y está activo. Un despacho inexistente
// devuelve false sin error; el error queda para fallos de infraestructura.
func (uc *FirmUseCase) IsActive(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("firm: id obligatorio: %w", domain.ErrInvalidInput)
	}
	firm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return firm != nil && firm.Status == "active", nil
}

func toFirmResponse(f *entity.Firm) *dto.FirmResponse {
	return &dto.FirmResponse{
		ID:        f.ID,
		Name:      f.Name,
		TaxID:     f.TaxID,
		Address:   f.Address,
		Phone:     f.Phone,
		Email:     f.Email,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}
