package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una habitación.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room habitación de un hotel con su código de acceso (QR / autoservicio del huésped).
type Room struct {
	ID        string
	HotelID   string
	Number    string
	Code      string // único global, ver codes.GenerateRoomCode
	Floor     int
	BaseRate  decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
