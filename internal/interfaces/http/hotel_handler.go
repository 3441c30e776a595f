package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// HotelHandler asistente de configuración y datos del hotel (solo admin).
type HotelHandler struct {
	uc  *usecase.HotelUseCase
	log *logger.Logger
}

// NewHotelHandler construye el handler.
func NewHotelHandler(uc *usecase.HotelUseCase, log *logger.Logger) *HotelHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HotelHandler{uc: uc, log: log.Component("hotels_http")}
}

// Setup godoc
// @Summary      Configurar hotel
// @Description  Crea el hotel con un código único y lo asocia al administrador.
// @Tags         hotels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHotelRequest  true  "Datos del hotel"
// @Success      201   {object}  dto.HotelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hotels [post]
func (h *HotelHandler) Setup(c *fiber.Ctx) error {
	var in dto.CreateHotelRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Setup(c.UserContext(), GetUser(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Hotel del administrador
// @Tags         hotels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HotelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hotels/me [get]
func (h *HotelHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetHotelID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del hotel
// @Tags         hotels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateHotelRequest  true  "Datos del hotel"
// @Success      200   {object}  dto.HotelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/hotels/me [put]
func (h *HotelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHotelRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetHotelID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Code godoc
// @Summary      Código público del hotel
// @Tags         hotels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HotelCodeResponse
// @Router       /api/hotels/me/code [get]
func (h *HotelHandler) Code(c *fiber.Ctx) error {
	out, err := h.uc.Code(c.UserContext(), GetHotelID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegenerateCode godoc
// @Summary      Regenerar el código del hotel
// @Tags         hotels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HotelCodeResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/hotels/me/code [post]
func (h *HotelHandler) RegenerateCode(c *fiber.Ctx) error {
	out, err := h.uc.RegenerateCode(c.UserContext(), GetHotelID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
