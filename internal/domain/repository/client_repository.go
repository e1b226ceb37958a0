package repository

import (
	"context"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	Search string // coincidencia parcial, sin mayúsculas, en nombre, email o empresa
	Status string // vacío = todos
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
// GetByID devuelve (nil, nil) si no existe en el despacho.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Client, error)
	List(ctx context.Context, firmID string, f ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Count(ctx context.Context, firmID string) (int, error)
}
