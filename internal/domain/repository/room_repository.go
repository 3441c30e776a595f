package repository

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// RoomRepository define el puerto de persistencia para Room.
// Create/UpdateCode devuelven domain.ErrDuplicate ante colisión de código o de número.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, hotelID, id string) (*entity.Room, error)
	GetByCode(ctx context.Context, hotelID, code string) (*entity.Room, error)
	ListByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*entity.Room, error)
	UpdateCode(ctx context.Context, hotelID, id, code string) error
}
