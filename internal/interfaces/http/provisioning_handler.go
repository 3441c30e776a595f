package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// HeaderWebhookSecret header con el secreto compartido del webhook.
const HeaderWebhookSecret = "X-Webhook-Secret"

// ProvisioningHandler función de aprovisionamiento que invoca el proveedor de identidad
// al crear una cuenta.
type ProvisioningHandler struct {
	uc     *usecase.ProvisioningUseCase
	secret string
	log    *logger.Logger
}

// NewProvisioningHandler construye el handler. secret vacío = sin verificación.
func NewProvisioningHandler(uc *usecase.ProvisioningUseCase, secret string, log *logger.Logger) *ProvisioningHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProvisioningHandler{uc: uc, secret: secret, log: log.Component("provisioning_http")}
}

// CORS abre la función a cualquier origen. OPTIONS responde 200 con cuerpo vacío.
func (h *ProvisioningHandler) CORS(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "authorization, x-client-info, apikey, content-type, "+strings.ToLower(HeaderWebhookSecret))
	c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")
	if c.Method() == fiber.MethodOptions {
		c.Status(fiber.StatusOK)
		return nil
	}
	return c.Next()
}

// Provision godoc
// @Summary      Aprovisionar perfil de usuario
// @Description  Crea el perfil de aplicación de una identidad nueva. Rol por defecto admin; guest se rechaza.
// @Tags         functions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionRequest  true  "record"
// @Success      200   {object}  dto.ProvisionResponse
// @Failure      400   {object}  dto.ProvisionError
// @Failure      401   {object}  dto.ProvisionError
// @Router       /functions/v1/provision-user [post]
func (h *ProvisioningHandler) Provision(c *fiber.Ctx) error {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(c.Get(HeaderWebhookSecret)), []byte(h.secret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ProvisionError{Error: "secreto inválido"})
	}
	var in dto.ProvisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProvisionError{Error: "cuerpo inválido"})
	}
	if in.Record == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProvisionError{Error: "no se recibió el registro del usuario"})
	}
	if _, err := h.uc.Provision(c.UserContext(), in.Record); err != nil {
		h.log.Warn().Err(err).Str("user_id", in.Record.ID).Msg("aprovisionamiento rechazado")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProvisionError{Error: err.Error()})
	}
	return c.JSON(dto.ProvisionResponse{Success: true})
}
