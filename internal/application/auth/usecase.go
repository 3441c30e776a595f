package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
	"github.com/jhoicas/hotelops-api/pkg/codes"
	"github.com/jhoicas/hotelops-api/pkg/jwt"
	"github.com/jhoicas/hotelops-api/pkg/logger"
	"github.com/jhoicas/hotelops-api/pkg/password"
)

// Verificar en tiempo de compilación que AuthUseCase implementa IdentityProvider.
var _ ports.IdentityProvider = (*AuthUseCase)(nil)

const revokedPrefix = "revoked_jti:"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	ExpMinutes    int
	LinkTTL       time.Duration
	Issuer        string
	PublicBaseURL string // origen del SPA para los enlaces de los emails
}

// Repos puertos de persistencia que usa el proveedor de identidad.
type Repos struct {
	Identities repository.IdentityRepository
	Users      repository.UserRepository
	Hotels     repository.HotelRepository
	Rooms      repository.RoomRepository
}

// Session resultado de un login: token firmado, sus claims y el perfil resuelto.
type Session struct {
	Token     string
	Claims    *jwt.Claims
	User      *entity.User
	HotelCode string // solo huéspedes
}

// AuthUseCase proveedor de identidad local: registro, login de staff y huéspedes,
// verificación de email, restablecimiento y configuración de contraseña.
type AuthUseCase struct {
	repos       Repos
	provisioner *usecase.ProvisioningUseCase
	mailer      ports.Mailer
	revoked     ports.CacheRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	repos Repos,
	provisioner *usecase.ProvisioningUseCase,
	mailer ports.Mailer,
	revoked ports.CacheRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 60
	}
	if jwtCfg.LinkTTL <= 0 {
		jwtCfg.LinkTTL = 24 * time.Hour
	}
	return &AuthUseCase{
		repos:       repos,
		provisioner: provisioner,
		mailer:      mailer,
		revoked:     revoked,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// SignUp registra un administrador: crea la identidad, aprovisiona el perfil y envía el
// email de verificación. Un fallo del envío no revierte el registro.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.repos.Identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := password.Hash(in.Password)
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
	if err := uc.repos.Identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	user, err := uc.provisioner.Provision(ctx, &dto.ProvisionRecord{
		ID:              identity.ID,
		Email:           email,
		RawUserMetaData: dto.ProvisionMetadata{Name: in.Name, Role: string(entity.RoleAdmin)},
	})
	if err != nil {
		if delErr := uc.repos.Identities.Delete(ctx, identity.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("identity_id", identity.ID).Msg("no se pudo revertir la identidad")
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if err := uc.sendVerification(ctx, identity); err != nil {
		uc.log.Warn().Err(err).Str("user_id", identity.ID).Msg("email de verificación no enviado")
	}
	return &dto.SignUpResponse{User: dto.UserToResponse(user), Redirect: NewAdminRedirect()}, nil
}

// NewAdminRedirect URL del login tras el registro: modo staff con el aviso de cuenta nueva.
func NewAdminRedirect() string {
	q := url.Values{}
	q.Set(access.ModeParam, string(access.ModeStaff))
	q.Set("newAdmin", "true")
	return access.LoginPath + "?" + q.Encode()
}

// SignIn valida credenciales y emite un token de sesión. Email inexistente o contraseña
// incorrecta devuelven el mismo error.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*Session, error) {
	identity, err := uc.repos.Identities.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := password.Compare(identity.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.repos.Users.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.EmailVerified = user.EmailVerified || identity.Confirmed()
	return uc.issue(user, "")
}

// GuestSignIn valida código de hotel + código de habitación. Sin coincidencia →
// domain.ErrRoomNotFound, sin distinguir cuál de los dos códigos falló.
func (uc *AuthUseCase) GuestSignIn(ctx context.Context, in dto.GuestLoginRequest) (*Session, error) {
	hotelCode, roomCode := codes.Normalize(in.HotelCode), codes.Normalize(in.RoomCode)
	if hotelCode == "" || roomCode == "" {
		return nil, domain.ErrRoomNotFound
	}
	hotel, err := uc.repos.Hotels.GetByCode(ctx, hotelCode)
	if err != nil {
		return nil, err
	}
	if hotel == nil || hotel.Status != entity.HotelStatusActive {
		return nil, domain.ErrRoomNotFound
	}
	room, err := uc.repos.Rooms.GetByCode(ctx, hotel.ID, roomCode)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	hotelID := hotel.ID
	guest := &entity.User{
		ID:      room.ID,
		HotelID: &hotelID,
		Grant:   entity.GuestGrant{RoomNumber: room.Number},
	}
	return uc.issue(guest, hotel.Code)
}

// SignOut revoca el token hasta su expiración.
func (uc *AuthUseCase) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.Remaining()
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoked.Set(ctx, revokedPrefix+claims.ID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked informa si el jti fue revocado por SignOut.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	v, err := uc.revoked.Get(ctx, revokedPrefix+jti)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// CurrentUser resuelve el perfil de la sesión. Los huéspedes se reconstruyen desde el token.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, claims *jwt.Claims) (*entity.User, error) {
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.Role == string(entity.RoleGuest) {
		return GuestFromClaims(claims)
	}
	user, err := uc.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// GuestFromClaims perfil de huésped a partir de los claims (no hay fila en users).
func GuestFromClaims(claims *jwt.Claims) (*entity.User, error) {
	grant, err := entity.NewGrant(entity.RoleGuest, false, false, claims.RoomNumber)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	u := &entity.User{ID: claims.UserID, Grant: grant}
	if claims.HotelID != "" {
		hotelID := claims.HotelID
		u.HotelID = &hotelID
	}
	return u, nil
}

// IdentityByID devuelve la identidad (para consultar la verificación del email).
func (uc *AuthUseCase) IdentityByID(ctx context.Context, userID string) (*entity.Identity, error) {
	identity, err := uc.repos.Identities.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domain.ErrUserNotFound
	}
	return identity, nil
}

// ResendVerification envía un nuevo enlace de verificación. Un email desconocido o ya
// verificado no recibe nada y no es error: la respuesta no revela si el email existe.
func (uc *AuthUseCase) ResendVerification(ctx context.Context, email string) error {
	identity, err := uc.repos.Identities.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if identity == nil {
		uc.log.Debug().Msg("reenvío de verificación para un email no registrado")
		return nil
	}
	if identity.Confirmed() {
		return nil
	}
	return uc.sendVerification(ctx, identity)
}

// VerifyEmail confirma el email con el token del enlace y devuelve la URL del login
// con verified=true.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) (string, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.PurposeEmailVerification)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}
	if err := uc.repos.Identities.ConfirmEmail(ctx, claims.UserID); err != nil {
		return "", err
	}
	if err := uc.repos.Users.MarkEmailVerified(ctx, claims.UserID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	q := url.Values{}
	q.Set(access.ModeParam, string(access.ModeStaff))
	q.Set("verified", "true")
	return access.LoginPath + "?" + q.Encode(), nil
}

// SendPasswordReset envía el enlace de restablecimiento.
func (uc *AuthUseCase) SendPasswordReset(ctx context.Context, email string) error {
	identity, err := uc.repos.Identities.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if identity == nil {
		return domain.ErrUserNotFound
	}
	token, _, err := jwt.Generate(uc.jwtCfg.Secret, jwt.PurposePasswordReset,
		jwt.Subject{UserID: identity.ID, Email: identity.Email}, uc.jwtCfg.Issuer, uc.jwtCfg.LinkTTL)
	if err != nil {
		return err
	}
	link := uc.link("/reset-password", token)
	return uc.mailer.Send(ctx, ports.Message{
		To:      identity.Email,
		Subject: "Restablecer contraseña",
		Text:    "Para definir una contraseña nueva abra el siguiente enlace:\n\n" + link + "\n\nSi no lo solicitó, ignore este mensaje.\n",
	})
}

// CompletePasswordReset aplica la contraseña nueva con el token del enlace.
func (uc *AuthUseCase) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.PurposePasswordReset)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return uc.repos.Identities.UpdatePassword(ctx, claims.UserID, hash)
}

// SetupPassword primera contraseña del staff invitado; limpia needs_password_setup y
// devuelve el perfil actualizado.
func (uc *AuthUseCase) SetupPassword(ctx context.Context, userID, newPassword string) (*entity.User, error) {
	if err := checkPassword(newPassword); err != nil {
		return nil, err
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Identities.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, err
	}
	if err := uc.repos.Users.CompletePasswordSetup(ctx, userID); err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ParseSession valida un token de sesión (middleware).
func (uc *AuthUseCase) ParseSession(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.PurposeSession)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (uc *AuthUseCase) issue(u *entity.User, hotelCode string) (*Session, error) {
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, jwt.PurposeSession, jwt.Subject{
		UserID:     u.ID,
		Email:      u.Email,
		HotelID:    u.HotelIDValue(),
		Role:       string(u.Role()),
		RoomNumber: u.RoomNumber(),
	}, uc.jwtCfg.Issuer, ttl)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Claims: claims, User: u, HotelCode: hotelCode}, nil
}

func (uc *AuthUseCase) sendVerification(ctx context.Context, identity *entity.Identity) error {
	token, _, err := jwt.Generate(uc.jwtCfg.Secret, jwt.PurposeEmailVerification,
		jwt.Subject{UserID: identity.ID, Email: identity.Email}, uc.jwtCfg.Issuer, uc.jwtCfg.LinkTTL)
	if err != nil {
		return err
	}
	link := uc.link("/verify-email", token)
	return uc.mailer.Send(ctx, ports.Message{
		To:      identity.Email,
		Subject: "Verifique su email",
		Text:    "Confirme su cuenta abriendo el siguiente enlace:\n\n" + link + "\n",
	})
}

func (uc *AuthUseCase) link(path, token string) string {
	q := url.Values{}
	q.Set("token", token)
	return strings.TrimRight(uc.jwtCfg.PublicBaseURL, "/") + path + "?" + q.Encode()
}

// checkPassword aplica los límites antes de cualquier I/O; bcrypt cuenta bytes.
func checkPassword(plain string) error {
	if utf8.RuneCountInString(plain) < password.MinLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, password.MinLength)
	}
	if len(plain) > password.MaxBytes {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, password.ErrTooLong)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
