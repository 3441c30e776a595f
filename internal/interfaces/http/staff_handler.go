package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/session"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// StaffHandler gestión del personal (requiere CanManageStaff).
type StaffHandler struct {
	uc  *usecase.StaffUseCase
	idp *auth.AuthUseCase
	log *logger.Logger
}

// NewStaffHandler construye el handler. idp se usa para el reset de contraseña.
func NewStaffHandler(uc *usecase.StaffUseCase, idp *auth.AuthUseCase, log *logger.Logger) *StaffHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &StaffHandler{uc: uc, idp: idp, log: log.Component("staff_http")}
}

// List godoc
// @Summary      Listar usuarios del hotel
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.StaffListResponse
// @Router       /api/staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetHotelID(c), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Invitar miembro del staff
// @Description  Crea la cuenta con una contraseña temporal; el invitado deberá configurar la suya al ingresar.
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteStaffRequest  true  "email, name, capacidades"
// @Success      201   {object}  dto.InviteStaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteStaffRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Invite(c.UserContext(), GetUser(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePermissions godoc
// @Summary      Cambiar capacidades de un miembro del staff
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del usuario"
// @Param        body  body  dto.UpdatePermissionsRequest  true  "capacidades"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/permissions [patch]
func (h *StaffHandler) UpdatePermissions(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "Usuario no encontrado", "no hay un usuario con ese id")
	}
	var in dto.UpdatePermissionsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdatePermissions(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Enviar enlace de restablecimiento a un miembro del staff
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/reset-password [post]
func (h *StaffHandler) ResetPassword(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "Usuario no encontrado", "no hay un usuario con ese id")
	}
	ctx := c.UserContext()
	member, err := h.uc.Member(ctx, GetHotelID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}

	hooks := session.NewHooks(h.idp, session.NewState(), h.log)
	var result error
	hooks.ResetPassword(ctx, member,
		func() {
			result = c.JSON(dto.MessageResponse{
				Message: "enlace enviado",
				Notifications: []dto.NotificationDTO{{
					Title:       "Email enviado",
					Description: "Se envió el enlace de restablecimiento a " + member.Email + ".",
					Variant:     session.VariantDefault,
				}},
			})
		},
		func(he *session.HookError) {
			result = fail(c, hookStatus(he.Code), he.Code, "No se pudo enviar el email", he.Message)
		},
	)
	if result == nil {
		// petición cancelada: ningún callback escribió la respuesta
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		return writeError(c, h.log, err)
	}
	return result
}

func hookStatus(code string) int {
	switch code {
	case session.HookCodeValidation:
		return fiber.StatusBadRequest
	case session.HookCodeNotFound:
		return fiber.StatusNotFound
	case session.HookCodeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}
