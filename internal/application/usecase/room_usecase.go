package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
	"github.com/jhoicas/hotelops-api/pkg/codes"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// RoomUseCase habitaciones del hotel y sus códigos de acceso.
type RoomUseCase struct {
	rooms   repository.RoomRepository
	codes   *hotelcache.Cache
	log     *logger.Logger
	now     func() time.Time
	newCode func(hotelCode, roomNumber string) string
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(rooms repository.RoomRepository, codeCache *hotelcache.Cache, log *logger.Logger) *RoomUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RoomUseCase{
		rooms:   rooms,
		codes:   codeCache,
		log:     log.Component("rooms"),
		now:     time.Now,
		newCode: codes.GenerateRoomCode,
	}
}

// List habitaciones del hotel.
func (uc *RoomUseCase) List(ctx context.Context, hotelID string, page dto.PageRequest) (*dto.RoomListResponse, error) {
	page.DefaultPage()
	list, err := uc.rooms.ListByHotel(ctx, hotelID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.RoomToResponse(r))
	}
	return &dto.RoomListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Create da de alta la habitación con un código generado a partir del código del hotel.
func (uc *RoomUseCase) Create(ctx context.Context, hotelID string, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" || in.BaseRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	hotelCode, err := uc.codes.Code(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	room := &entity.Room{
		ID:        uuid.New().String(),
		HotelID:   hotelID,
		Number:    number,
		Floor:     in.Floor,
		BaseRate:  in.BaseRate.Round(2),
		Status:    entity.RoomStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	code, err := withUniqueCode(
		func() string { return uc.newCode(hotelCode, number) },
		func(code string) error {
			room.Code = code
			return uc.rooms.Create(ctx, room)
		},
	)
	if err != nil {
		return nil, err
	}
	room.Code = code
	out := dto.RoomToResponse(room)
	return &out, nil
}

// Lookup busca la habitación por el código escaneado o tipeado. Sin coincidencia →
// domain.ErrRoomNotFound (resultado normal, no un fallo).
func (uc *RoomUseCase) Lookup(ctx context.Context, hotelID, code string) (*dto.RoomResponse, error) {
	code = codes.Normalize(code)
	if code == "" {
		return nil, domain.ErrRoomNotFound
	}
	room, err := uc.rooms.GetByCode(ctx, hotelID, code)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	out := dto.RoomToResponse(room)
	return &out, nil
}

// RegenerateCode reemplaza el código de acceso de la habitación.
func (uc *RoomUseCase) RegenerateCode(ctx context.Context, hotelID, roomID string) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	hotelCode, err := uc.codes.Code(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	code, err := withUniqueCode(
		func() string { return uc.newCode(hotelCode, room.Number) },
		func(code string) error { return uc.rooms.UpdateCode(ctx, hotelID, roomID, code) },
	)
	if err != nil {
		return nil, err
	}
	room.Code = code
	room.UpdatedAt = uc.now()
	uc.log.Info().Str("room_id", roomID).Msg("código de habitación regenerado")
	out := dto.RoomToResponse(room)
	return &out, nil
}
