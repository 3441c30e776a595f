package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrHotelNotFound      = errors.New("hotel no encontrado")
	ErrRoomNotFound       = errors.New("no hay habitación con ese código")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrHotelAlreadySetUp  = errors.New("el administrador ya tiene un hotel asociado")
	ErrEmailNotVerified   = errors.New("email sin verificar")
	ErrTokenInvalid       = errors.New("token inválido o expirado")
	ErrCodeExhausted      = errors.New("no se pudo generar un código único")
)
