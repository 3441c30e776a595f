package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRoomRequest alta de habitación. El código se genera en el servidor.
type CreateRoomRequest struct {
	Number   string          `json:"number" validate:"required,min=1,max=20"`
	Floor    int             `json:"floor" validate:"min=0,max=300"`
	BaseRate decimal.Decimal `json:"base_rate"`
}

// RoomResponse salida de una habitación.
type RoomResponse struct {
	ID        string          `json:"id"`
	HotelID   string          `json:"hotel_id"`
	Number    string          `json:"number"`
	Code      string          `json:"code"`
	Floor     int             `json:"floor"`
	BaseRate  decimal.Decimal `json:"base_rate"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RoomListResponse listado paginado.
type RoomListResponse struct {
	Items []RoomResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RoomLookupQuery código escaneado o tipeado.
type RoomLookupQuery struct {
	Code string `query:"code" validate:"required,min=4,max=16"`
}
