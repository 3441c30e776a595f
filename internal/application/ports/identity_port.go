package ports

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

// IdentityProvider operaciones del proveedor de identidad que consumen los hooks de sesión.
// Lo implementa *auth.AuthUseCase; el uso de interfaz evita el import circular.
type IdentityProvider interface {
	// ResendVerification envía un nuevo email de verificación.
	ResendVerification(ctx context.Context, email string) error

	// IdentityByID devuelve el registro de credenciales del usuario de la sesión actual.
	IdentityByID(ctx context.Context, userID string) (*entity.Identity, error)

	// SendPasswordReset envía el enlace de restablecimiento de contraseña.
	SendPasswordReset(ctx context.Context, email string) error
}

// HotelTxRunner ejecuta fn dentro de una transacción con repos de hotel y usuarios.
// Lo usa el asistente de configuración: crear hotel y asociarlo al admin es atómico.
type HotelTxRunner interface {
	RunHotelSetup(ctx context.Context, fn func(
		hotelRepo repository.HotelRepository,
		userRepo repository.UserRepository,
	) error) error
}
