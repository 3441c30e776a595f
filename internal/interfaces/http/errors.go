package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// apiError par status + cuerpo para un error de dominio.
type apiError struct {
	status int
	body   dto.ErrorResponse
}

var errorTable = []struct {
	target error
	apiError
}{
	{domain.ErrRoomNotFound, apiError{fiber.StatusNotFound, dto.ErrorResponse{Code: "ROOM_NOT_FOUND", Title: "Código no válido", Message: "No encontramos una habitación con ese código."}}},
	{domain.ErrHotelNotFound, apiError{fiber.StatusNotFound, dto.ErrorResponse{Code: "HOTEL_NOT_FOUND", Title: "Hotel no encontrado", Message: "El hotel no existe."}}},
	{domain.ErrUserNotFound, apiError{fiber.StatusNotFound, dto.ErrorResponse{Code: "USER_NOT_FOUND", Title: "Usuario no encontrado", Message: "No hay un usuario con esos datos."}}},
	{domain.ErrNotFound, apiError{fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Title: "No encontrado", Message: "El recurso no existe."}}},
	{domain.ErrEmailAlreadyExists, apiError{fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Title: "Email en uso", Message: "El email ya está registrado."}}},
	{domain.ErrHotelAlreadySetUp, apiError{fiber.StatusConflict, dto.ErrorResponse{Code: "HOTEL_ALREADY_SET_UP", Title: "Hotel ya configurado", Message: "Su cuenta ya tiene un hotel asociado."}}},
	{domain.ErrConflict, apiError{fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Title: "Conflicto", Message: "La operación no es posible en el estado actual."}}},
	{domain.ErrDuplicate, apiError{fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Title: "Duplicado", Message: "El recurso ya existe."}}},
	{domain.ErrCodeExhausted, apiError{fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "CODE_EXHAUSTED", Title: "Intente de nuevo", Message: "No se pudo generar un código único."}}},
	{domain.ErrUnauthorized, apiError{fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Title: "Credenciales inválidas", Message: "Email o contraseña incorrectos."}}},
	{domain.ErrTokenInvalid, apiError{fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_TOKEN", Title: "Enlace inválido", Message: "El token es inválido o expiró."}}},
	{domain.ErrForbidden, apiError{fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Title: "Acceso denegado", Message: "No tiene permiso para esta operación."}}},
	{domain.ErrEmailNotVerified, apiError{fiber.StatusForbidden, dto.ErrorResponse{Code: "EMAIL_NOT_VERIFIED", Title: "Email sin verificar", Message: "Verifique su email para continuar."}}},
	{domain.ErrInvalidRole, apiError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_ROLE", Title: "Rol inválido", Message: "El rol indicado no es válido."}}},
	{domain.ErrInvalidInput, apiError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Title: "Datos inválidos", Message: "Revise los datos enviados."}}},
}

// fail responde con un dto.ErrorResponse.
func fail(c *fiber.Ctx, status int, code, title, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Title: title, Message: message})
}

// writeError traduce err a su respuesta HTTP. Los errores sin traducción se registran
// y devuelven 500 sin filtrar el detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return c.Status(e.status).JSON(e.body)
		}
	}
	if errors.Is(err, context.Canceled) {
		// cliente desconectado: nadie lee la respuesta
		return c.SendStatus(499)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fail(c, fiber.StatusGatewayTimeout, "TIMEOUT", "Tiempo agotado", "El servicio no respondió a tiempo.")
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no controlado")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Error inesperado", "Ocurrió un error, intente más tarde.")
}

// ErrorHandler manejador de errores de fiber: cubre errores devueltos por handlers y los
// panics que recupera el middleware recover.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fail(c, fe.Code, "HTTP_ERROR", "Error", fe.Message)
		}
		return writeError(c, log, err)
	}
}
