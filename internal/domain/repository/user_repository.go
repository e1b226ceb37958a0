package repository

import (
	"context"

	"github.com/jhoicas/bufete-crm/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca en todos los despachos (el email es único global).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
