package entity

import "time"

// Identity credencial del proveedor de identidad. El perfil de aplicación (User) se
// crea aparte mediante la función de aprovisionamiento y comparte el mismo ID.
type Identity struct {
	ID               string
	Email            string
	PasswordHash     string // bcrypt
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Confirmed informa si el email fue verificado.
func (i *Identity) Confirmed() bool {
	return i != nil && i.EmailConfirmedAt != nil && !i.EmailConfirmedAt.IsZero()
}
