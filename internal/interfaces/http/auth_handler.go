package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/session"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// AuthHandler maneja registro, login de staff y huéspedes, verificación y contraseñas.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{uc: uc, log: log.Component("auth_http")}
}

// SignUp godoc
// @Summary      Registrar administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password, name"
// @Success      201   {object}  dto.SignUpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión (staff / admin)
// @Description  redirect lo decide la tabla de navegación: /setup, /dashboard o vacío si debe configurar contraseña.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	sess, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// identidad sin perfil aprovisionado
			h.log.Warn().Str("email", in.Email).Msg("login sin perfil de aplicación")
			err = domain.ErrUnauthorized
		}
		return writeError(c, h.log, err)
	}
	redirect, err := redirectAfterLogin(h.log, sess.User)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(loginResponse(sess, redirect))
}

// GuestLogin godoc
// @Summary      Acceso de huésped
// @Description  Código de hotel + código de habitación. Sin coincidencia → 404 ROOM_NOT_FOUND.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GuestLoginRequest  true  "hotel_code, room_code"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/guest-login [post]
func (h *AuthHandler) GuestLogin(c *fiber.Ctx) error {
	var in dto.GuestLoginRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	sess, err := h.uc.GuestSignIn(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	f := newFlow(h.log)
	f.ctrl.NavigateAfterGuestLogin(sess.HotelCode, sess.User.RoomNumber())
	return c.JSON(loginResponse(sess, f.redirect()))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Revoca el token hasta su expiración.
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.SignOut(c.UserContext(), GetClaims(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VerifyEmail godoc
// @Summary      Verificar email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "token del enlace"
// @Success      200   {object}  dto.RedirectResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	redirect, err := h.uc.VerifyEmail(c.UserContext(), in.Token)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RedirectResponse{Redirect: redirect})
}

// ResendVerification godoc
// @Summary      Reenviar email de verificación
// @Description  El resultado llega como notificación; nunca expone el error del proveedor.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      502   {object}  dto.MessageResponse
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	f := newFlow(h.log)
	hooks := session.NewHooks(h.uc, f.state, h.log)
	if !hooks.ResendVerificationEmail(c.UserContext(), in.Email) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.MessageResponse{Message: "reenvío fallido", Notifications: f.notifications()})
	}
	// misma respuesta para emails desconocidos o ya verificados
	return c.JSON(dto.MessageResponse{Message: "si el email está pendiente de verificación recibirá un enlace", Notifications: f.notifications()})
}

// VerificationStatus godoc
// @Summary      Estado de verificación del email de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.VerificationResponse
// @Router       /api/auth/verification [get]
func (h *AuthHandler) VerificationStatus(c *fiber.Ctx) error {
	f := newFlow(h.log)
	if err := f.state.Apply(session.FromUser(GetUser(c))); err != nil {
		return writeError(c, h.log, err)
	}
	hooks := session.NewHooks(h.uc, f.state, h.log)
	return c.JSON(dto.VerificationResponse{Verified: hooks.CheckEmailVerification(c.UserContext())})
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Responde 200 aunque el email no exista.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.SendPasswordReset(c.UserContext(), in.Email); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{
		Message: "si el email está registrado recibirá un enlace",
		Notifications: []dto.NotificationDTO{{
			Title:       "Revise su email",
			Description: "Si el email está registrado recibirá un enlace para restablecer la contraseña.",
			Variant:     session.VariantDefault,
		}},
	})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con el token del enlace
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "token, password"
// @Success      200   {object}  dto.RedirectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.CompletePasswordReset(c.UserContext(), in.Token, in.Password); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RedirectResponse{Redirect: access.LoginURL(access.ModeStaff)})
}

// SetupPassword godoc
// @Summary      Configurar la primera contraseña (staff invitado)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordSetupRequest  true  "password"
// @Success      200   {object}  dto.PasswordSetupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password/setup [post]
func (h *AuthHandler) SetupPassword(c *fiber.Ctx) error {
	var in dto.PasswordSetupRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	user, err := h.uc.SetupPassword(c.UserContext(), GetUser(c).ID, in.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}
	f := newFlow(h.log)
	if err := f.ctrl.NavigateAfterStaffLogin(user); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.PasswordSetupResponse{User: dto.UserToResponse(user), Redirect: f.redirect()})
}

func loginResponse(sess *auth.Session, redirect string) dto.LoginResponse {
	out := dto.LoginResponse{
		Token:              sess.Token,
		User:               dto.UserToResponse(sess.User),
		NeedsPasswordSetup: sess.User.NeedsPasswordSetup,
		Redirect:           redirect,
	}
	if sess.Claims != nil && sess.Claims.ExpiresAt != nil {
		out.ExpiresAt = sess.Claims.ExpiresAt.Time
	}
	return out
}
