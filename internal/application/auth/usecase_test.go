package auth_test

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
	"github.com/jhoicas/hotelops-api/internal/testutil"
	"github.com/jhoicas/hotelops-api/pkg/password"
)

type fixture struct {
	store  *testutil.Store
	outbox *testutil.Outbox
	uc     *auth.AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	outbox := &testutil.Outbox{}
	prov := usecase.NewProvisioningUseCase(store.Users(), store.Hotels(), nil)
	uc := auth.NewAuthUseCase(auth.Repos{
		Identities: store.Identities(),
		Users:      store.Users(),
		Hotels:     store.Hotels(),
		Rooms:      store.Rooms(),
	}, prov, outbox, cache.NewMemoryCache(), auth.JWTConfig{
		Secret:        "test-secret",
		ExpMinutes:    30,
		Issuer:        "hotelops-test",
		PublicBaseURL: "https://app.hotel.co",
	}, nil)
	return &fixture{store: store, outbox: outbox, uc: uc}
}

var linkRe = regexp.MustCompile(`https://\S+`)

// tokenFromLastMail extrae el token del enlace del último email enviado.
func (f *fixture) tokenFromLastMail(t *testing.T, path string) string {
	t.Helper()
	raw := linkRe.FindString(f.outbox.Last().Text)
	require.NotEmpty(t, raw)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, path, u.Path)
	return u.Query().Get("token")
}

func TestSignUp_CreaAdminYEnviaVerificacion(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{Email: " Ana@Hotel.co ", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)
	assert.Nil(t, out.User.HotelID)
	assert.Equal(t, "/login?mode=staff&newAdmin=true", out.Redirect)

	msg := f.outbox.Last()
	assert.Equal(t, "ana@hotel.co", msg.To)
	assert.NotEmpty(t, f.tokenFromLastMail(t, "/verify-email"))
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)

	_, err = f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ANA@hotel.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)

	sess, err := f.uc.SignIn(ctx, dto.LoginRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "admin", sess.Claims.Role)
	assert.False(t, sess.User.HasHotel())

	claims, err := f.uc.ParseSession(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)

	_, err = f.uc.SignIn(ctx, dto.LoginRequest{Email: "ana@hotel.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.SignIn(ctx, dto.LoginRequest{Email: "nadie@hotel.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignOut_RevocaElToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)
	sess, err := f.uc.SignIn(ctx, dto.LoginRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)

	revoked, err := f.uc.IsRevoked(ctx, sess.Claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.uc.SignOut(ctx, sess.Claims))
	revoked, err = f.uc.IsRevoked(ctx, sess.Claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func seedGuestRoom(t *testing.T, f *fixture, status string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Hotels().Create(ctx, &entity.Hotel{ID: "h1", Name: "Sea", Code: "SEA7K2", Status: status}))
	require.NoError(t, f.store.Rooms().Create(ctx, &entity.Room{ID: "r1", HotelID: "h1", Number: "204", Code: "SE204QX"}))
}

func TestGuestSignIn(t *testing.T) {
	f := newFixture(t)
	seedGuestRoom(t, f, entity.HotelStatusActive)
	ctx := context.Background()

	sess, err := f.uc.GuestSignIn(ctx, dto.GuestLoginRequest{HotelCode: "sea7k2", RoomCode: "se204qx"})
	require.NoError(t, err)
	assert.Equal(t, "SEA7K2", sess.HotelCode)
	assert.Equal(t, entity.RoleGuest, sess.User.Role())
	assert.Equal(t, "204", sess.User.RoomNumber())
	assert.Equal(t, "r1", sess.User.ID)

	// el perfil se reconstruye desde el token, sin fila en users
	u, err := f.uc.CurrentUser(ctx, sess.Claims)
	require.NoError(t, err)
	assert.Equal(t, "204", u.RoomNumber())
	assert.Equal(t, "h1", u.HotelIDValue())
}

func TestGuestSignIn_SinCoincidencia(t *testing.T) {
	f := newFixture(t)
	seedGuestRoom(t, f, entity.HotelStatusActive)
	ctx := context.Background()

	cases := []dto.GuestLoginRequest{
		{HotelCode: "SEA7K2", RoomCode: "NOEXISTE"},
		{HotelCode: "OTRO99", RoomCode: "SE204QX"},
		{HotelCode: "", RoomCode: ""},
	}
	for _, in := range cases {
		_, err := f.uc.GuestSignIn(ctx, in)
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	}
}

func TestGuestSignIn_HotelSuspendido(t *testing.T) {
	f := newFixture(t)
	seedGuestRoom(t, f, entity.HotelStatusSuspended)

	_, err := f.uc.GuestSignIn(context.Background(), dto.GuestLoginRequest{HotelCode: "SEA7K2", RoomCode: "SE204QX"})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)
	token := f.tokenFromLastMail(t, "/verify-email")

	redirect, err := f.uc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "/login?mode=staff&verified=true", redirect)

	identity, err := f.uc.IdentityByID(ctx, out.User.ID)
	require.NoError(t, err)
	assert.True(t, identity.Confirmed())

	// ya verificado: el reenvío no manda nada
	sent := len(f.outbox.Sent())
	require.NoError(t, f.uc.ResendVerification(ctx, "ana@hotel.co"))
	assert.Len(t, f.outbox.Sent(), sent)

	_, err = f.uc.VerifyEmail(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResendVerification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)

	require.NoError(t, f.uc.ResendVerification(ctx, "ana@hotel.co"))
	assert.Len(t, f.outbox.Sent(), 2)

	// email desconocido: sin error y sin envío, igual que un email ya verificado
	require.NoError(t, f.uc.ResendVerification(ctx, "nadie@hotel.co"))
	assert.Len(t, f.outbox.Sent(), 2)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "ana@hotel.co", Password: "secreta123"})
	require.NoError(t, err)

	require.NoError(t, f.uc.SendPasswordReset(ctx, "ana@hotel.co"))
	token := f.tokenFromLastMail(t, "/reset-password")

	// un enlace de reset no sirve para verificar el email
	_, err = f.uc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	assert.ErrorIs(t, f.uc.CompletePasswordReset(ctx, token, "corta"), domain.ErrInvalidInput)
	require.NoError(t, f.uc.CompletePasswordReset(ctx, token, "nueva-clave-1"))

	_, err = f.uc.SignIn(ctx, dto.LoginRequest{Email: "ana@hotel.co", Password: "nueva-clave-1"})
	assert.NoError(t, err)
	_, err = f.uc.SignIn(ctx, dto.LoginRequest{Email: "ana@hotel.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, f.uc.SendPasswordReset(ctx, "nadie@hotel.co"), domain.ErrUserNotFound)
}

func TestSetupPassword_LimpiaElFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Hotels().Create(ctx, &entity.Hotel{ID: "h1", Code: "SEA7K2", Status: entity.HotelStatusActive}))

	hash, err := password.Hash("temporal-123")
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, f.store.Identities().Create(ctx, &entity.Identity{ID: "s1", Email: "luis@hotel.co", PasswordHash: hash, CreatedAt: now, UpdatedAt: now}))
	hotelID := "h1"
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{
		ID: "s1", Email: "luis@hotel.co", HotelID: &hotelID,
		Grant: entity.StaffGrant{}, NeedsPasswordSetup: true,
	}))

	sess, err := f.uc.SignIn(ctx, dto.LoginRequest{Email: "luis@hotel.co", Password: "temporal-123"})
	require.NoError(t, err)
	assert.True(t, sess.User.NeedsPasswordSetup)

	u, err := f.uc.SetupPassword(ctx, "s1", "definitiva-1")
	require.NoError(t, err)
	assert.False(t, u.NeedsPasswordSetup)

	_, err = f.uc.SignIn(ctx, dto.LoginRequest{Email: "luis@hotel.co", Password: "definitiva-1"})
	assert.NoError(t, err)

	_, err = f.uc.SetupPassword(ctx, "s1", "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.SetupPassword(ctx, "s1", strings.Repeat("ñ", 40))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignUp_PasswordSuperaLimiteDeBcrypt(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{Email: "ana@hotel.co", Password: strings.Repeat("ñ", 40)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, password.ErrTooLong)
	assert.Empty(t, f.outbox.Sent())
}
