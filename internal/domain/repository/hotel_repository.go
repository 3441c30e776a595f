package repository

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// HotelRepository define el puerto de persistencia para Hotel (DIP).
// Create/UpdateCode devuelven domain.ErrDuplicate si el código ya existe.
type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	GetByID(ctx context.Context, id string) (*entity.Hotel, error)
	GetByCode(ctx context.Context, code string) (*entity.Hotel, error)
	GetCode(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, hotel *entity.Hotel) error
	UpdateCode(ctx context.Context, id, code string) error
}
