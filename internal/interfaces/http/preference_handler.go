package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// PreferenceHandler perfil de la sesión, onboarding y tutoriales.
type PreferenceHandler struct {
	uc  *usecase.PreferenceUseCase
	log *logger.Logger
}

// NewPreferenceHandler construye el handler.
func NewPreferenceHandler(uc *usecase.PreferenceUseCase, log *logger.Logger) *PreferenceHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PreferenceHandler{uc: uc, log: log.Component("preferences_http")}
}

// Profile godoc
// @Summary      Perfil de la sesión
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/me [get]
func (h *PreferenceHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CompleteOnboarding godoc
// @Summary      Marcar el onboarding como completado
// @Tags         me
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me/onboarding [post]
func (h *PreferenceHandler) CompleteOnboarding(c *fiber.Ctx) error {
	if err := h.uc.CompleteOnboarding(c.UserContext(), GetUser(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tutorial godoc
// @Summary      Estado de un tutorial
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tutorial"
// @Success      200  {object}  dto.TutorialResponse
// @Router       /api/me/tutorials/{id} [get]
func (h *PreferenceHandler) Tutorial(c *fiber.Ctx) error {
	out, err := h.uc.Tutorial(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MarkTutorialViewed godoc
// @Summary      Marcar un tutorial como visto
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tutorial"
// @Success      200  {object}  dto.TutorialResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me/tutorials/{id} [post]
func (h *PreferenceHandler) MarkTutorialViewed(c *fiber.Ctx) error {
	out, err := h.uc.MarkTutorialViewed(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
