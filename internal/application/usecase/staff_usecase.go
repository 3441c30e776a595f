package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
	"github.com/jhoicas/hotelops-api/pkg/logger"
	"github.com/jhoicas/hotelops-api/pkg/password"
)

// StaffUseCase gestión del personal del hotel: invitaciones y capacidades.
type StaffUseCase struct {
	identities  repository.IdentityRepository
	users       repository.UserRepository
	provisioner *ProvisioningUseCase
	mailer      ports.Mailer
	loginURL    string
	log         *logger.Logger
	now         func() time.Time
}

// NewStaffUseCase construye el caso de uso. publicBaseURL es el origen del SPA (enlace de la invitación).
func NewStaffUseCase(
	identities repository.IdentityRepository,
	users repository.UserRepository,
	provisioner *ProvisioningUseCase,
	mailer ports.Mailer,
	publicBaseURL string,
	log *logger.Logger,
) *StaffUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StaffUseCase{
		identities:  identities,
		users:       users,
		provisioner: provisioner,
		mailer:      mailer,
		loginURL:    strings.TrimRight(publicBaseURL, "/") + access.LoginURL(access.ModeStaff),
		log:         log.Component("staff"),
		now:         time.Now,
	}
}

// List usuarios del hotel.
func (uc *StaffUseCase) List(ctx context.Context, hotelID string, page dto.PageRequest) (*dto.StaffListResponse, error) {
	page.DefaultPage()
	list, err := uc.users.ListByHotel(ctx, hotelID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.StaffListResponse{
		Items: dto.UsersToResponse(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Invite crea la identidad con una contraseña temporal, aprovisiona el perfil de staff
// (needs_password_setup) y envía la invitación. Si el aprovisionamiento falla se borra la identidad.
func (uc *StaffUseCase) Invite(ctx context.Context, actor *entity.User, in dto.InviteStaffRequest) (*dto.InviteStaffResponse, error) {
	if !access.CanManageStaff(actor) || !actor.HasHotel() {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	temp := password.Temporary()
	hash, err := password.Hash(temp)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	identity := &entity.Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	user, err := uc.provisioner.Provision(ctx, &dto.ProvisionRecord{
		ID:    identity.ID,
		Email: email,
		RawUserMetaData: dto.ProvisionMetadata{
			Name:           in.Name,
			Role:           string(entity.RoleStaff),
			HotelID:        actor.HotelIDValue(),
			CanManageRooms: in.CanManageRooms,
			CanManageStaff: in.CanManageStaff,
		},
	})
	if err != nil {
		if delErr := uc.identities.Delete(ctx, identity.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("identity_id", identity.ID).Msg("no se pudo revertir la identidad")
		}
		return nil, fmt.Errorf("invite staff: %w", err)
	}

	msg := ports.Message{
		To:      email,
		Subject: "Invitación al equipo del hotel",
		Text: fmt.Sprintf("Hola %s,\n\nFue invitado al panel del hotel. Ingrese en %s con su email y la contraseña temporal %s; "+
			"se le pedirá definir una contraseña nueva.\n", user.Name, uc.loginURL, temp),
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo enviar la invitación")
	}
	uc.log.Info().Str("user_id", user.ID).Str("invited_by", actor.ID).Msg("staff invitado")
	return &dto.InviteStaffResponse{User: dto.UserToResponse(user), TempPassword: temp}, nil
}

// Member obtiene un usuario del hotel. ErrUserNotFound si no existe o es de otro hotel.
func (uc *StaffUseCase) Member(ctx context.Context, hotelID, userID string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.HotelIDValue() != hotelID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// UpdatePermissions cambia las capacidades de un miembro del staff. Los administradores
// tienen todas las capacidades y no se modifican.
func (uc *StaffUseCase) UpdatePermissions(ctx context.Context, actor *entity.User, userID string, in dto.UpdatePermissionsRequest) (*dto.UserResponse, error) {
	if !access.CanManageStaff(actor) {
		return nil, domain.ErrForbidden
	}
	if in.CanManageRooms == nil || in.CanManageStaff == nil {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.Member(ctx, actor.HotelIDValue(), userID)
	if err != nil {
		return nil, err
	}
	if !access.IsStaff(target) {
		return nil, fmt.Errorf("solo se modifican capacidades de staff: %w", domain.ErrConflict)
	}
	target.Grant = entity.StaffGrant{CanManageRooms: *in.CanManageRooms, CanManageStaff: *in.CanManageStaff}
	target.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, target); err != nil {
		return nil, err
	}
	out := dto.UserToResponse(target)
	return &out, nil
}
