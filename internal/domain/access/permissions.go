// Package access contiene la lógica pura de autorización y navegación:
// predicados de permisos, la tabla de decisión de rutas post-login y el modo de login.
// No depende de HTTP ni de persistencia.
package access

import "github.com/jhoicas/hotelops-api/internal/domain/entity"

// IsAdmin informa si u es administrador. nil → false.
func IsAdmin(u *entity.User) bool { return u.Role() == entity.RoleAdmin }

// IsStaff informa si u es staff. nil → false.
func IsStaff(u *entity.User) bool { return u.Role() == entity.RoleStaff }

// IsGuest informa si u es huésped. nil → false.
func IsGuest(u *entity.User) bool { return u.Role() == entity.RoleGuest }

// CanManageRooms: admin siempre; staff solo con el flag.
func CanManageRooms(u *entity.User) bool {
	if u == nil {
		return false
	}
	switch g := u.Grant.(type) {
	case entity.AdminGrant:
		return true
	case entity.StaffGrant:
		return g.CanManageRooms
	default:
		return false
	}
}

// CanManageStaff: admin siempre; staff solo con el flag.
func CanManageStaff(u *entity.User) bool {
	if u == nil {
		return false
	}
	switch g := u.Grant.(type) {
	case entity.AdminGrant:
		return true
	case entity.StaffGrant:
		return g.CanManageStaff
	default:
		return false
	}
}

// HasAnyRole informa si el rol de u está en roles.
func HasAnyRole(u *entity.User, roles ...entity.Role) bool {
	r := u.Role()
	if r == "" {
		return false
	}
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// Predicate firma común para usar los predicados como guardas de ruta.
type Predicate func(*entity.User) bool
