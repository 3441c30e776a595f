package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/hotelops-api/internal/interfaces/http"
	"github.com/jhoicas/hotelops-api/internal/testutil"
	"github.com/jhoicas/hotelops-api/pkg/password"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "secreta-123"
)

// testServer aplicación completa sobre repos en memoria.
type testServer struct {
	app    *fiber.App
	store  *testutil.Store
	outbox *testutil.Outbox
	auth   *auth.AuthUseCase
}

func newTestServer(t *testing.T, webhookSecret string) *testServer {
	t.Helper()
	return newTestServerWith(t, webhookSecret)
}

// newTestServerWith registra pre antes de las rutas.
func newTestServerWith(t *testing.T, webhookSecret string, pre ...fiber.Handler) *testServer {
	t.Helper()
	store := testutil.NewStore()
	outbox := &testutil.Outbox{}
	mem := cache.NewMemoryCache()
	codeCache := hotelcache.New(mem, store.Hotels(), time.Hour, nil)

	prov := usecase.NewProvisioningUseCase(store.Users(), store.Hotels(), nil)
	authUC := auth.NewAuthUseCase(auth.Repos{
		Identities: store.Identities(),
		Users:      store.Users(),
		Hotels:     store.Hotels(),
		Rooms:      store.Rooms(),
	}, prov, outbox, mem, auth.JWTConfig{
		Secret:        testSecret,
		ExpMinutes:    30,
		Issuer:        "hotelops-test",
		PublicBaseURL: "https://app.hotel.co",
	}, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	for _, h := range pre {
		app.Use(h)
	}
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		ProvisioningUC: prov,
		HotelUC:        usecase.NewHotelUseCase(store.Hotels(), store.TxRunner(), codeCache, nil),
		RoomUC:         usecase.NewRoomUseCase(store.Rooms(), codeCache, nil),
		StaffUC:        usecase.NewStaffUseCase(store.Identities(), store.Users(), prov, outbox, "https://app.hotel.co", nil),
		PreferenceUC:   usecase.NewPreferenceUseCase(store.Preferences(), codeCache),
		WebhookSecret:  webhookSecret,
	})
	return &testServer{app: app, store: store, outbox: outbox, auth: authUC}
}

// do lanza la petición y devuelve status y cuerpo.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (s *testServer) seedHotel(t *testing.T, id, code string) {
	t.Helper()
	require.NoError(t, s.store.Hotels().Create(context.Background(), &entity.Hotel{
		ID: id, Name: "Sea Breeze", Code: code, Status: entity.HotelStatusActive,
	}))
}

// seedUser crea identidad + perfil con testPassword.
func (s *testServer) seedUser(t *testing.T, id, email string, grant entity.Grant, hotelID string, needsSetup bool) {
	t.Helper()
	ctx := context.Background()
	hash, err := password.Hash(testPassword)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, s.store.Identities().Create(ctx, &entity.Identity{ID: id, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}))
	u := &entity.User{ID: id, Email: email, Name: email, Grant: grant, NeedsPasswordSetup: needsSetup, CreatedAt: now, UpdatedAt: now}
	if hotelID != "" {
		u.HotelID = &hotelID
	}
	require.NoError(t, s.store.Users().Create(ctx, u))
}

// token inicia sesión por HTTP y devuelve el token.
func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[map[string]any](t, body)["token"].(string)
}
