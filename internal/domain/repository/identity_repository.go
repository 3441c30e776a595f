package repository

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// IdentityRepository credenciales del proveedor de identidad local.
type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity) error
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
	GetByEmail(ctx context.Context, email string) (*entity.Identity, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ConfirmEmail(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
