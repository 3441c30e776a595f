package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
	"github.com/jhoicas/hotelops-api/pkg/codes"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// HotelUseCase asistente de configuración y gestión del hotel del administrador.
type HotelUseCase struct {
	hotels  repository.HotelRepository
	tx      ports.HotelTxRunner
	codes   *hotelcache.Cache
	log     *logger.Logger
	now     func() time.Time
	newCode func(name string) string
}

// NewHotelUseCase construye el caso de uso.
func NewHotelUseCase(hotels repository.HotelRepository, tx ports.HotelTxRunner, codeCache *hotelcache.Cache, log *logger.Logger) *HotelUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &HotelUseCase{
		hotels:  hotels,
		tx:      tx,
		codes:   codeCache,
		log:     log.Component("hotels"),
		now:     time.Now,
		newCode: codes.GenerateHotelCode,
	}
}

// Setup crea el hotel y lo asocia al administrador en una sola transacción.
// Solo un admin sin hotel puede ejecutarlo.
func (uc *HotelUseCase) Setup(ctx context.Context, admin *entity.User, in dto.CreateHotelRequest) (*dto.HotelResponse, error) {
	if !access.IsAdmin(admin) {
		return nil, domain.ErrForbidden
	}
	if admin.HasHotel() {
		return nil, domain.ErrHotelAlreadySetUp
	}
	now := uc.now()
	hotel := &entity.Hotel{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Status:    entity.HotelStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	code, err := withUniqueCode(
		func() string { return uc.newCode(hotel.Name) },
		func(code string) error {
			hotel.Code = code
			return uc.tx.RunHotelSetup(ctx, func(hotelRepo repository.HotelRepository, userRepo repository.UserRepository) error {
				if err := hotelRepo.Create(ctx, hotel); err != nil {
					return err
				}
				return userRepo.AssignHotel(ctx, admin.ID, hotel.ID)
			})
		},
	)
	if err != nil {
		return nil, err
	}
	hotel.Code = code
	uc.codes.Store(ctx, hotel.ID, code)
	uc.log.Info().Str("hotel_id", hotel.ID).Str("admin_id", admin.ID).Msg("hotel configurado")
	return dto.HotelToResponse(hotel), nil
}

// Get devuelve el hotel del usuario.
func (uc *HotelUseCase) Get(ctx context.Context, hotelID string) (*dto.HotelResponse, error) {
	hotel, err := uc.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}
	return dto.HotelToResponse(hotel), nil
}

// Code devuelve el código público del hotel desde la caché.
func (uc *HotelUseCase) Code(ctx context.Context, hotelID string) (*dto.HotelCodeResponse, error) {
	code, err := uc.codes.Code(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return &dto.HotelCodeResponse{HotelID: hotelID, Code: code}, nil
}

// Update modifica los datos del hotel e invalida la caché de código.
func (uc *HotelUseCase) Update(ctx context.Context, hotelID string, in dto.UpdateHotelRequest) (*dto.HotelResponse, error) {
	hotel, err := uc.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}
	hotel.Name = strings.TrimSpace(in.Name)
	hotel.Address = strings.TrimSpace(in.Address)
	hotel.Phone = strings.TrimSpace(in.Phone)
	hotel.Email = strings.TrimSpace(in.Email)
	hotel.UpdatedAt = uc.now()
	if err := uc.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, hotelID)
	return dto.HotelToResponse(hotel), nil
}

// RegenerateCode asigna un código nuevo (el anterior deja de servir para el login de huéspedes).
func (uc *HotelUseCase) RegenerateCode(ctx context.Context, hotelID string) (*dto.HotelCodeResponse, error) {
	hotel, err := uc.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}
	code, err := withUniqueCode(
		func() string { return uc.newCode(hotel.Name) },
		func(code string) error { return uc.hotels.UpdateCode(ctx, hotelID, code) },
	)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, hotelID)
	uc.log.Info().Str("hotel_id", hotelID).Msg("código de hotel regenerado")
	return &dto.HotelCodeResponse{HotelID: hotelID, Code: code}, nil
}

func (uc *HotelUseCase) invalidate(ctx context.Context, hotelID string) {
	if err := uc.codes.Invalidate(ctx, hotelID); err != nil {
		uc.log.Warn().Err(err).Str("hotel_id", hotelID).Msg("invalidación de caché falló")
	}
}
