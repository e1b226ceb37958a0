package crm

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	"github.com/jhoicas/bufete-crm/internal/domain/entity"
	"github.com/jhoicas/bufete-crm/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes del despacho.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente activo. Name es obligatorio; Email, si viene, debe ser válido.
func (uc *ClientUseCase) Create(ctx context.Context, firmID, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		UserID:    userID,
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Company:   in.Company,
		Address:   in.Address,
		Notes:     in.Notes,
		Status:    entity.ClientStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get obtiene un cliente del despacho. ErrNotFound si no existe.
func (uc *ClientUseCase) Get(ctx context.Context, firmID, id string) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes con búsqueda por nombre, email o empresa.
func (uc *ClientUseCase) List(ctx context.Context, firmID, search, status string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, firmID, repository.ClientFilter{
		Search: strings.TrimSpace(search),
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update aplica los campos informados.
func (uc *ClientUseCase) Update(ctx context.Context, firmID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("name vacío: %w", domain.ErrInvalidInput)
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Company != nil {
		c.Company = *in.Company
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.Status != nil {
		if *in.Status != entity.ClientStatusActive && *in.Status != entity.ClientStatusInactive {
			return nil, fmt.Errorf("status %q: %w", *in.Status, domain.ErrInvalidInput)
		}
		c.Status = *in.Status
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Deactivate marca el cliente como inactivo. Los clientes no se borran.
func (uc *ClientUseCase) Deactivate(ctx context.Context, firmID, id string) error {
	status := entity.ClientStatusInactive
	_, err := uc.Update(ctx, firmID, id, dto.UpdateClientRequest{Status: &status})
	return err
}

func (uc *ClientUseCase) load(ctx context.Context, firmID, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email %q: %w", email, domain.ErrInvalidInput)
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		Notes:     c.Notes,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
