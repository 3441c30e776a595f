package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/hotelops-api/internal/domain"
)

// Role identifica el rol base de un usuario.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleGuest Role = "guest"
)

// ParseRole valida un rol textual (columna users.role, claim del JWT).
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStaff, RoleGuest:
		return r, nil
	default:
		return "", domain.ErrInvalidRole
	}
}

// Grant es la variante cerrada rol+capacidades. Solo las tres implementaciones de este
// paquete la satisfacen, así que un admin no puede perder capacidades por un flag ausente.
type Grant interface {
	Role() Role
	grant()
}

// AdminGrant administra el hotel; implica todas las capacidades.
type AdminGrant struct{}

// StaffGrant personal del hotel con capacidades opcionales.
type StaffGrant struct {
	CanManageRooms bool
	CanManageStaff bool
}

// GuestGrant huésped asociado a una habitación.
type GuestGrant struct {
	RoomNumber string
}

func (AdminGrant) Role() Role { return RoleAdmin }
func (StaffGrant) Role() Role { return RoleStaff }
func (GuestGrant) Role() Role { return RoleGuest }

func (AdminGrant) grant() {}
func (StaffGrant) grant() {}
func (GuestGrant) grant() {}

// NewGrant construye la variante a partir de las columnas persistidas.
// Un huésped sin habitación, o un admin/staff con habitación, es un error.
func NewGrant(role Role, canManageRooms, canManageStaff bool, roomNumber string) (Grant, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	switch role {
	case RoleAdmin:
		if roomNumber != "" {
			return nil, domain.ErrInvalidInput
		}
		return AdminGrant{}, nil
	case RoleStaff:
		if roomNumber != "" {
			return nil, domain.ErrInvalidInput
		}
		return StaffGrant{CanManageRooms: canManageRooms, CanManageStaff: canManageStaff}, nil
	case RoleGuest:
		if roomNumber == "" {
			return nil, domain.ErrInvalidInput
		}
		return GuestGrant{RoomNumber: roomNumber}, nil
	default:
		return nil, domain.ErrInvalidRole
	}
}

// User perfil de aplicación resuelto después de autenticar (pertenece opcionalmente a un Hotel).
type User struct {
	ID                 string
	Email              string
	Name               string
	HotelID            *string // nil = admin que aún no completó el asistente de hotel
	Grant              Grant
	NeedsPasswordSetup bool
	EmailVerified      bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Role devuelve el rol derivado de la variante; vacío si el usuario no tiene Grant.
func (u *User) Role() Role {
	if u == nil || u.Grant == nil {
		return ""
	}
	return u.Grant.Role()
}

// RoomNumber devuelve la habitación del huésped, vacío para admin/staff.
func (u *User) RoomNumber() string {
	if u == nil {
		return ""
	}
	if g, ok := u.Grant.(GuestGrant); ok {
		return g.RoomNumber
	}
	return ""
}

// HasHotel informa si el usuario ya tiene hotel asociado.
func (u *User) HasHotel() bool {
	return u != nil && u.HotelID != nil && *u.HotelID != ""
}

// HotelIDValue devuelve el hotel asociado o "".
func (u *User) HotelIDValue() string {
	if !u.HasHotel() {
		return ""
	}
	return *u.HotelID
}
