package repository

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles de usuario (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*entity.User, error)
	AssignHotel(ctx context.Context, userID, hotelID string) error
	CompletePasswordSetup(ctx context.Context, userID string) error
	MarkEmailVerified(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
