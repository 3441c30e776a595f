package session

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// Códigos de HookError.
const (
	HookCodeValidation = "VALIDATION"
	HookCodeNotFound   = "NOT_FOUND"
	HookCodeTimeout    = "TIMEOUT"
	HookCodeProvider   = "PROVIDER_ERROR"
)

// HookError error uniforme que los hooks entregan a los callbacks del llamador.
type HookError struct {
	Code    string
	Message string
	Cause   error
}

func (e *HookError) Error() string { return e.Message }

func (e *HookError) Unwrap() error { return e.Cause }

// Hooks adapta el proveedor de identidad a las operaciones que usa el login.
// Ningún hook propaga errores: los convierte en notificaciones o callbacks.
type Hooks struct {
	provider ports.IdentityProvider
	state    *State
	log      *logger.Logger
}

// NewHooks construye los hooks sobre el estado de la petición.
func NewHooks(provider ports.IdentityProvider, state *State, log *logger.Logger) *Hooks {
	if log == nil {
		log = logger.Nop()
	}
	return &Hooks{provider: provider, state: state, log: log.Component("session")}
}

// ResendVerificationEmail pide un nuevo email de verificación. El flag de "reenviando"
// se limpia siempre. Ante error del proveedor notifica y deja el estado sin cambios.
// Devuelve true si el proveedor aceptó el envío.
func (h *Hooks) ResendVerificationEmail(ctx context.Context, email string) bool {
	h.state.setResending(true)
	defer h.state.setResending(false)

	email = strings.TrimSpace(email)
	if email == "" {
		h.state.Notify(Notification{
			Title:       "Email requerido",
			Description: "Ingrese el email con el que se registró.",
			Variant:     VariantDestructive,
		})
		return false
	}

	err := h.provider.ResendVerification(ctx, email)
	if ctx.Err() != nil {
		// petición cancelada: no se toca el estado
		return false
	}
	if err != nil {
		h.log.Warn().Err(err).Msg("reenvío de verificación falló")
		h.state.Notify(Notification{
			Title:       "No se pudo reenviar el email",
			Description: "Intente de nuevo en unos minutos.",
			Variant:     VariantDestructive,
		})
		return false
	}
	h.state.Notify(Notification{
		Title:       "Email enviado",
		Description: "Revise su bandeja de entrada para verificar la cuenta.",
	})
	return true
}

// CheckEmailVerification informa si el usuario de la sesión tiene el email verificado.
// Cualquier fallo de la consulta devuelve false: "no verificado" es el valor seguro.
func (h *Hooks) CheckEmailVerification(ctx context.Context) bool {
	u := h.state.Snapshot().User
	if u == nil || u.Role() == entity.RoleGuest {
		return false
	}
	identity, err := h.provider.IdentityByID(ctx, u.ID)
	if err != nil {
		h.log.Debug().Err(err).Str("user_id", u.ID).Msg("consulta de verificación falló")
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	return identity.Confirmed()
}

// ResetPassword envía el enlace de restablecimiento a un miembro del staff.
// El resultado se entrega por callbacks; si ctx se cancela no se invoca ninguno.
func (h *Hooks) ResetPassword(ctx context.Context, staff *entity.User, onSuccess func(), onError func(*HookError)) {
	if staff == nil || strings.TrimSpace(staff.Email) == "" {
		onError(&HookError{Code: HookCodeValidation, Message: "el miembro del staff no tiene email"})
		return
	}
	err := h.provider.SendPasswordReset(ctx, staff.Email)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", staff.ID).Msg("reset de contraseña falló")
		onError(normalize(err))
		return
	}
	onSuccess()
}

func normalize(err error) *HookError {
	var he *HookError
	if errors.As(err, &he) {
		return he
	}
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return &HookError{Code: HookCodeNotFound, Message: "usuario no encontrado", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &HookError{Code: HookCodeTimeout, Message: "el proveedor no respondió a tiempo", Cause: err}
	case errors.Is(err, domain.ErrInvalidInput):
		return &HookError{Code: HookCodeValidation, Message: "datos inválidos", Cause: err}
	default:
		return &HookError{Code: HookCodeProvider, Message: "no se pudo enviar el email", Cause: err}
	}
}
