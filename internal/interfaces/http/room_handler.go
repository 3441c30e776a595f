package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// RoomHandler habitaciones del hotel de la sesión.
type RoomHandler struct {
	uc  *usecase.RoomUseCase
	log *logger.Logger
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *usecase.RoomUseCase, log *logger.Logger) *RoomHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RoomHandler{uc: uc, log: log.Component("rooms_http")}
}

// List godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.RoomListResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Crear habitación
// @Description  El código de acceso se genera a partir del código del hotel y el número.
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetHotelID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Lookup godoc
// @Summary      Buscar habitación por código
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  true  "Código escaneado"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/lookup [get]
func (h *RoomHandler) Lookup(c *fiber.Ctx) error {
	var q dto.RoomLookupQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.Lookup(c.UserContext(), GetHotelID(c), q.Code)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegenerateCode godoc
// @Summary      Regenerar el código de una habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/code [post]
func (h *RoomHandler) RegenerateCode(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "No encontrado", "habitación no encontrada")
	}
	out, err := h.uc.RegenerateCode(c.UserContext(), GetHotelID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// pathID parámetro :id. Un valor que no es UUID no puede existir en la base.
func pathID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
