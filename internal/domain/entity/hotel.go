package entity

import "time"

// Estados de un hotel.
const (
	HotelStatusActive    = "active"
	HotelStatusSuspended = "suspended"
)

// Hotel representa una propiedad/tenant del sistema (multi-tenant).
type Hotel struct {
	ID        string
	Name      string
	Code      string // código público que el huésped o el staff ingresa
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
