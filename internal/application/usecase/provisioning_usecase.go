package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// ProvisioningUseCase crea el perfil de aplicación de una identidad recién registrada.
// Lo invocan el webhook /functions/v1/provision-user y, en proceso, el registro y la
// invitación de staff.
type ProvisioningUseCase struct {
	users  repository.UserRepository
	hotels repository.HotelRepository
	log    *logger.Logger
	now    func() time.Time
}

// NewProvisioningUseCase construye el caso de uso.
func NewProvisioningUseCase(users repository.UserRepository, hotels repository.HotelRepository, log *logger.Logger) *ProvisioningUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProvisioningUseCase{users: users, hotels: hotels, log: log.Component("provisioning"), now: time.Now}
}

// Provision valida el registro y persiste el perfil. Es idempotente por ID: un reintento
// del webhook con un perfil ya creado no falla.
//   - rol por defecto admin; guest se rechaza (los huéspedes no tienen identidad)
//   - staff requiere hotel y queda con needs_password_setup
func (uc *ProvisioningUseCase) Provision(ctx context.Context, rec *dto.ProvisionRecord) (*entity.User, error) {
	if rec == nil || strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.Email) == "" {
		return nil, fmt.Errorf("registro incompleto: %w", domain.ErrInvalidInput)
	}
	meta := rec.RawUserMetaData

	role := entity.RoleAdmin
	if strings.TrimSpace(meta.Role) != "" {
		parsed, err := entity.ParseRole(meta.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	if role == entity.RoleGuest {
		return nil, fmt.Errorf("los huéspedes no se aprovisionan: %w", domain.ErrInvalidRole)
	}

	existing, err := uc.users.GetByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.log.Debug().Str("user_id", rec.ID).Msg("perfil ya aprovisionado")
		return existing, nil
	}

	var hotelID *string
	if id := strings.TrimSpace(meta.HotelID); id != "" {
		hotel, err := uc.hotels.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if hotel == nil {
			return nil, domain.ErrHotelNotFound
		}
		hotelID = &hotel.ID
	}
	if role == entity.RoleStaff && hotelID == nil {
		return nil, fmt.Errorf("staff sin hotel: %w", domain.ErrInvalidInput)
	}

	grant, err := entity.NewGrant(role, meta.CanManageRooms, meta.CanManageStaff, "")
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		name = rec.Email
	}
	now := uc.now()
	user := &entity.User{
		ID:                 rec.ID,
		Email:              strings.ToLower(strings.TrimSpace(rec.Email)),
		Name:               name,
		HotelID:            hotelID,
		Grant:              grant,
		NeedsPasswordSetup: role == entity.RoleStaff,
		EmailVerified:      rec.EmailConfirmedAt != nil && *rec.EmailConfirmedAt != "",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("perfil aprovisionado")
	return user, nil
}
